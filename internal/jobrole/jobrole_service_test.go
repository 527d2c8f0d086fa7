package jobrole_test

import (
	"context"
	"testing"
	"time"

	"go-payroll/internal/jobrole"
	jobroleerrors "go-payroll/internal/jobrole/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeJobRoleRepository struct {
	createFn   func(ctx context.Context, role *jobrole.JobRole) error
	findAllFn  func(ctx context.Context) ([]jobrole.JobRole, error)
	findByIDFn func(ctx context.Context, id string) (*jobrole.JobRole, error)
	updateFn   func(ctx context.Context, role *jobrole.JobRole) error
	deleteFn   func(ctx context.Context, id string) error
}

func (f *fakeJobRoleRepository) Create(ctx context.Context, role *jobrole.JobRole) error {
	if f.createFn != nil {
		return f.createFn(ctx, role)
	}
	return nil
}

func (f *fakeJobRoleRepository) FindAll(ctx context.Context) ([]jobrole.JobRole, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeJobRoleRepository) FindByID(ctx context.Context, id string) (*jobrole.JobRole, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeJobRoleRepository) Update(ctx context.Context, role *jobrole.JobRole) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, role)
	}
	return nil
}

func (f *fakeJobRoleRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func storedJobRole(title string) *jobrole.JobRole {
	return &jobrole.JobRole{
		ID:          uuid.New(),
		Title:       title,
		Description: "handles " + title + " duties",
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
}

func TestJobRoleService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := &fakeJobRoleRepository{}
		svc := jobrole.NewService(repo)

		res, err := svc.Create(ctx, jobrole.CreateJobRoleRequest{
			Title:       "Payroll Analyst",
			Description: "prepares monthly payroll runs",
		})

		assert.NoError(t, err)
		assert.Equal(t, "Payroll Analyst", res.Title)
		assert.NotEmpty(t, res.ID)
	})

	t.Run("duplicate title maps to conflict", func(t *testing.T) {
		repo := &fakeJobRoleRepository{
			createFn: func(ctx context.Context, role *jobrole.JobRole) error {
				return &pgconn.PgError{Code: "23505", ConstraintName: "uq_jobrole_title"}
			},
		}
		svc := jobrole.NewService(repo)

		_, err := svc.Create(ctx, jobrole.CreateJobRoleRequest{Title: "Payroll Analyst"})

		assert.ErrorIs(t, err, jobroleerrors.ErrJobRoleAlreadyExists)
	})
}

func TestJobRoleService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		role := storedJobRole("HR Generalist")
		repo := &fakeJobRoleRepository{
			findByIDFn: func(ctx context.Context, id string) (*jobrole.JobRole, error) {
				assert.Equal(t, role.ID.String(), id)
				return role, nil
			},
		}
		svc := jobrole.NewService(repo)

		res, err := svc.GetByID(ctx, role.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, role.Title, res.Title)
		assert.Equal(t, role.CreatedAt.Format(time.RFC3339), res.CreatedAt)
	})

	t.Run("not found", func(t *testing.T) {
		svc := jobrole.NewService(&fakeJobRoleRepository{})

		_, err := svc.GetByID(ctx, uuid.New().String())

		assert.ErrorIs(t, err, jobroleerrors.ErrJobRoleNotFound)
	})

	t.Run("invalid id", func(t *testing.T) {
		svc := jobrole.NewService(&fakeJobRoleRepository{})

		_, err := svc.GetByID(ctx, "not-a-uuid")

		assert.ErrorIs(t, err, jobroleerrors.ErrInvalidJobRoleID)
	})
}

func TestJobRoleService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		role := storedJobRole("HR Generalist")
		var saved *jobrole.JobRole
		repo := &fakeJobRoleRepository{
			findByIDFn: func(ctx context.Context, id string) (*jobrole.JobRole, error) {
				return role, nil
			},
			updateFn: func(ctx context.Context, r *jobrole.JobRole) error {
				saved = r
				return nil
			},
		}
		svc := jobrole.NewService(repo)

		res, err := svc.Update(ctx, role.ID.String(), jobrole.UpdateJobRoleRequest{
			Title:       "Senior HR Generalist",
			Description: "owns onboarding",
		})

		assert.NoError(t, err)
		assert.Equal(t, "Senior HR Generalist", res.Title)
		if assert.NotNil(t, saved) {
			assert.Equal(t, "Senior HR Generalist", saved.Title)
			assert.Equal(t, "owns onboarding", saved.Description)
		}
	})

	t.Run("duplicate title maps to conflict", func(t *testing.T) {
		role := storedJobRole("HR Generalist")
		repo := &fakeJobRoleRepository{
			findByIDFn: func(ctx context.Context, id string) (*jobrole.JobRole, error) {
				return role, nil
			},
			updateFn: func(ctx context.Context, r *jobrole.JobRole) error {
				return &pgconn.PgError{Code: "23505", ConstraintName: "uq_jobrole_title"}
			},
		}
		svc := jobrole.NewService(repo)

		_, err := svc.Update(ctx, role.ID.String(), jobrole.UpdateJobRoleRequest{Title: "Payroll Analyst"})

		assert.ErrorIs(t, err, jobroleerrors.ErrJobRoleAlreadyExists)
	})

	t.Run("not found", func(t *testing.T) {
		svc := jobrole.NewService(&fakeJobRoleRepository{})

		_, err := svc.Update(ctx, uuid.New().String(), jobrole.UpdateJobRoleRequest{Title: "Anything"})

		assert.ErrorIs(t, err, jobroleerrors.ErrJobRoleNotFound)
	})
}

func TestJobRoleService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		var deletedID string
		repo := &fakeJobRoleRepository{
			deleteFn: func(ctx context.Context, id string) error {
				deletedID = id
				return nil
			},
		}
		svc := jobrole.NewService(repo)
		id := uuid.New().String()

		err := svc.Delete(ctx, id)

		assert.NoError(t, err)
		assert.Equal(t, id, deletedID)
	})

	t.Run("missing role", func(t *testing.T) {
		repo := &fakeJobRoleRepository{
			deleteFn: func(ctx context.Context, id string) error {
				return gorm.ErrRecordNotFound
			},
		}
		svc := jobrole.NewService(repo)

		err := svc.Delete(ctx, uuid.New().String())

		assert.ErrorIs(t, err, jobroleerrors.ErrJobRoleNotFound)
	})

	t.Run("invalid id", func(t *testing.T) {
		svc := jobrole.NewService(&fakeJobRoleRepository{})

		err := svc.Delete(ctx, "nope")

		assert.ErrorIs(t, err, jobroleerrors.ErrInvalidJobRoleID)
	})
}
