package department_test

import (
	"context"
	"testing"

	"go-payroll/internal/department"
	departmenterrors "go-payroll/internal/department/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeDepartmentRepository struct {
	createFn   func(ctx context.Context, d *department.Department) error
	findAllFn  func(ctx context.Context) ([]department.Department, error)
	findByIDFn func(ctx context.Context, id string) (*department.Department, error)
	updateFn   func(ctx context.Context, d *department.Department) error
	deleteFn   func(ctx context.Context, id string) error
}

func (f *fakeDepartmentRepository) Create(ctx context.Context, d *department.Department) error {
	if f.createFn != nil {
		return f.createFn(ctx, d)
	}
	return nil
}

func (f *fakeDepartmentRepository) FindAll(ctx context.Context) ([]department.Department, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeDepartmentRepository) FindByID(ctx context.Context, id string) (*department.Department, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeDepartmentRepository) Update(ctx context.Context, d *department.Department) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, d)
	}
	return nil
}

func (f *fakeDepartmentRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func TestDepartmentService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := &fakeDepartmentRepository{}
		svc := department.NewService(repo)

		resp, err := svc.Create(ctx, department.CreateDepartmentRequest{
			Name:        "Engineering",
			Description: "Product engineering",
		})

		assert.NoError(t, err)
		assert.Equal(t, "Engineering", resp.Name)
		assert.NotEmpty(t, resp.ID)
	})

	t.Run("negative duplicate name", func(t *testing.T) {
		repo := &fakeDepartmentRepository{
			createFn: func(ctx context.Context, d *department.Department) error {
				return &pgconn.PgError{Code: "23505", ConstraintName: "uq_department_name"}
			},
		}
		svc := department.NewService(repo)

		_, err := svc.Create(ctx, department.CreateDepartmentRequest{Name: "Engineering"})

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentAlreadyExists)
	})
}

func TestDepartmentService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deptID := uuid.New()
		repo := &fakeDepartmentRepository{
			findByIDFn: func(ctx context.Context, id string) (*department.Department, error) {
				return &department.Department{ID: deptID, Name: "Finance"}, nil
			},
		}
		svc := department.NewService(repo)

		resp, err := svc.GetByID(ctx, deptID.String())

		assert.NoError(t, err)
		assert.Equal(t, "Finance", resp.Name)
	})

	t.Run("negative not found", func(t *testing.T) {
		svc := department.NewService(&fakeDepartmentRepository{})

		_, err := svc.GetByID(ctx, uuid.New().String())

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNotFound)
	})

	t.Run("negative invalid id", func(t *testing.T) {
		svc := department.NewService(&fakeDepartmentRepository{})

		_, err := svc.GetByID(ctx, "nope")

		assert.ErrorIs(t, err, departmenterrors.ErrInvalidDepartmentID)
	})
}

func TestDepartmentService_Update(t *testing.T) {
	ctx := context.Background()
	deptID := uuid.New()

	repo := &fakeDepartmentRepository{
		findByIDFn: func(ctx context.Context, id string) (*department.Department, error) {
			return &department.Department{ID: deptID, Name: "HR", Description: "old"}, nil
		},
	}
	svc := department.NewService(repo)

	resp, err := svc.Update(ctx, deptID.String(), department.UpdateDepartmentRequest{
		Name:        "People Ops",
		Description: "new",
	})

	assert.NoError(t, err)
	assert.Equal(t, "People Ops", resp.Name)
	assert.Equal(t, "new", resp.Description)
}

func TestDepartmentService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("negative not found", func(t *testing.T) {
		repo := &fakeDepartmentRepository{
			deleteFn: func(ctx context.Context, id string) error {
				return gorm.ErrRecordNotFound
			},
		}
		svc := department.NewService(repo)

		err := svc.Delete(ctx, uuid.New().String())

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNotFound)
	})

	t.Run("success", func(t *testing.T) {
		svc := department.NewService(&fakeDepartmentRepository{})

		err := svc.Delete(ctx, uuid.New().String())

		assert.NoError(t, err)
	})
}
