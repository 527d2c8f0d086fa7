package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-payroll/internal/access"
	"go-payroll/internal/auth"
	autherrors "go-payroll/internal/auth/errors"
	"go-payroll/internal/employee"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepository struct {
	createFn     func(ctx context.Context, user *auth.User) error
	getByEmailFn func(ctx context.Context, email string) (*auth.User, error)
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*auth.User, error)
}

func (f *fakeUserRepository) Create(ctx context.Context, user *auth.User) error {
	if f.createFn != nil {
		return f.createFn(ctx, user)
	}
	return nil
}

func (f *fakeUserRepository) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	if f.getByEmailFn != nil {
		return f.getByEmailFn(ctx, email)
	}
	return nil, errors.New("not found")
}

func (f *fakeUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return nil, errors.New("not found")
}

type fakeEmployeeService struct {
	createFn func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error)
	deleteFn func(ctx context.Context, id string) error
}

func (f *fakeEmployeeService) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if f.createFn != nil {
		return f.createFn(ctx, req)
	}
	return employee.EmployeeResponse{ID: uuid.New().String()}, nil
}
func (f *fakeEmployeeService) GetAll(ctx context.Context) ([]employee.EmployeeResponse, error) {
	return nil, nil
}
func (f *fakeEmployeeService) GetOptions(ctx context.Context) ([]employee.EmployeeOption, error) {
	return nil, nil
}
func (f *fakeEmployeeService) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	return employee.EmployeeResponse{}, nil
}
func (f *fakeEmployeeService) GetByUserID(ctx context.Context, userID string) (employee.EmployeeResponse, error) {
	return employee.EmployeeResponse{}, nil
}
func (f *fakeEmployeeService) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	return employee.EmployeeResponse{}, nil
}
func (f *fakeEmployeeService) CreditLeave(ctx context.Context, id string, days int) (employee.EmployeeResponse, error) {
	return employee.EmployeeResponse{}, nil
}
func (f *fakeEmployeeService) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func activeUser(t *testing.T, password string) *auth.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)

	employeeID := uuid.New()
	return &auth.User{
		ID:         uuid.New(),
		EmployeeID: &employeeID,
		Name:       "Ada Lovelace",
		Email:      "ada@example.com",
		Password:   string(hashed),
		Role:       access.RoleEmployee,
		IsActive:   true,
	}
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("success provisions employee record", func(t *testing.T) {
		var empReq employee.CreateEmployeeRequest
		emps := &fakeEmployeeService{
			createFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				empReq = req
				return employee.EmployeeResponse{ID: uuid.New().String()}, nil
			},
		}

		var createdUser *auth.User
		repo := &fakeUserRepository{
			createFn: func(ctx context.Context, user *auth.User) error {
				createdUser = user
				return nil
			},
		}

		svc := auth.NewService(repo, emps)
		resp, err := svc.Register(ctx, auth.RegisterRequest{
			Name:      "Ada Lovelace",
			Email:     "ada@example.com",
			Password:  "secret123",
			FirstName: "Ada",
			LastName:  "Lovelace",
		})

		assert.NoError(t, err)
		assert.Equal(t, access.RoleEmployee, resp.Role)
		assert.Equal(t, "Ada", empReq.FirstName)
		assert.NotNil(t, empReq.UserID)
		assert.NotNil(t, createdUser)
		assert.True(t, createdUser.IsActive)
		assert.NotEqual(t, "secret123", createdUser.Password)
	})

	t.Run("negative duplicate email", func(t *testing.T) {
		repo := &fakeUserRepository{
			createFn: func(ctx context.Context, user *auth.User) error {
				return errors.New("duplicate key value violates unique constraint")
			},
		}
		svc := auth.NewService(repo, &fakeEmployeeService{})

		_, err := svc.Register(ctx, auth.RegisterRequest{
			Name:      "Ada Lovelace",
			Email:     "ada@example.com",
			Password:  "secret123",
			FirstName: "Ada",
			LastName:  "Lovelace",
		})

		assert.ErrorIs(t, err, autherrors.ErrEmailAlreadyRegistered)
	})

	t.Run("failed user insert removes the provisioned employee", func(t *testing.T) {
		employeeID := uuid.New().String()
		var deletedID string
		emps := &fakeEmployeeService{
			createFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{ID: employeeID}, nil
			},
			deleteFn: func(ctx context.Context, id string) error {
				deletedID = id
				return nil
			},
		}
		repo := &fakeUserRepository{
			createFn: func(ctx context.Context, user *auth.User) error {
				return errors.New("duplicate key value violates unique constraint")
			},
		}
		svc := auth.NewService(repo, emps)

		_, err := svc.Register(ctx, auth.RegisterRequest{
			Name:      "Ada Lovelace",
			Email:     "ada@example.com",
			Password:  "secret123",
			FirstName: "Ada",
			LastName:  "Lovelace",
		})

		assert.ErrorIs(t, err, autherrors.ErrEmailAlreadyRegistered)
		assert.Equal(t, employeeID, deletedID)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("success issues token pair", func(t *testing.T) {
		user := activeUser(t, "secret123")
		repo := &fakeUserRepository{
			getByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
				assert.Equal(t, user.Email, email)
				return user, nil
			},
		}

		svc := auth.NewService(repo, &fakeEmployeeService{})
		accessToken, refreshToken, resp, err := svc.Login(ctx, user.Email, "secret123")

		assert.NoError(t, err)
		assert.NotEmpty(t, accessToken)
		assert.NotEmpty(t, refreshToken)
		assert.Equal(t, user.Email, resp.Email)

		parsed, err := jwt.Parse(accessToken, func(token *jwt.Token) (interface{}, error) {
			return []byte("test-secret"), nil
		})
		assert.NoError(t, err)
		claims := parsed.Claims.(jwt.MapClaims)
		assert.Equal(t, user.ID.String(), claims["user_id"])
		assert.Equal(t, access.RoleEmployee, claims["role"])
		assert.Equal(t, user.EmployeeID.String(), claims["employee_id"])
	})

	t.Run("negative wrong password", func(t *testing.T) {
		user := activeUser(t, "secret123")
		repo := &fakeUserRepository{
			getByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
				return user, nil
			},
		}

		svc := auth.NewService(repo, &fakeEmployeeService{})
		_, _, _, err := svc.Login(ctx, user.Email, "wrong")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("negative unknown email", func(t *testing.T) {
		svc := auth.NewService(&fakeUserRepository{}, &fakeEmployeeService{})

		_, _, _, err := svc.Login(ctx, "nobody@example.com", "secret123")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("negative inactive user", func(t *testing.T) {
		user := activeUser(t, "secret123")
		user.IsActive = false
		repo := &fakeUserRepository{
			getByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
				return user, nil
			},
		}

		svc := auth.NewService(repo, &fakeEmployeeService{})
		_, _, _, err := svc.Login(ctx, user.Email, "secret123")

		assert.ErrorIs(t, err, autherrors.ErrUserInactive)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("success rotates the pair", func(t *testing.T) {
		user := activeUser(t, "secret123")
		repo := &fakeUserRepository{
			getByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
				return user, nil
			},
			getByIDFn: func(ctx context.Context, id uuid.UUID) (*auth.User, error) {
				assert.Equal(t, user.ID, id)
				return user, nil
			},
		}

		svc := auth.NewService(repo, &fakeEmployeeService{})
		_, refreshToken, _, err := svc.Login(ctx, user.Email, "secret123")
		assert.NoError(t, err)

		newAccess, newRefresh, resp, err := svc.RefreshToken(ctx, refreshToken)

		assert.NoError(t, err)
		assert.NotEmpty(t, newAccess)
		assert.NotEmpty(t, newRefresh)
		assert.Equal(t, user.ID.String(), resp.ID)
	})

	t.Run("negative garbage token", func(t *testing.T) {
		svc := auth.NewService(&fakeUserRepository{}, &fakeEmployeeService{})

		_, _, _, err := svc.RefreshToken(ctx, "not.a.token")

		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})

	t.Run("negative expired token", func(t *testing.T) {
		user := activeUser(t, "secret123")
		claims := jwt.MapClaims{
			"user_id": user.ID.String(),
			"role":    user.Role,
			"exp":     time.Now().Add(-time.Hour).Unix(),
		}
		expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		assert.NoError(t, err)

		svc := auth.NewService(&fakeUserRepository{}, &fakeEmployeeService{})
		_, _, _, err = svc.RefreshToken(ctx, expired)

		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})
}

func TestAuthService_GetMe(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		user := activeUser(t, "secret123")
		repo := &fakeUserRepository{
			getByIDFn: func(ctx context.Context, id uuid.UUID) (*auth.User, error) {
				return user, nil
			},
		}

		svc := auth.NewService(repo, &fakeEmployeeService{})
		resp, err := svc.GetMe(ctx, user.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, user.Email, resp.Email)
	})

	t.Run("negative invalid id", func(t *testing.T) {
		svc := auth.NewService(&fakeUserRepository{}, &fakeEmployeeService{})

		_, err := svc.GetMe(ctx, "nope")

		assert.ErrorIs(t, err, autherrors.ErrInvalidUserID)
	})
}
