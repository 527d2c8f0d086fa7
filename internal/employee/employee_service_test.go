package employee_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"go-payroll/internal/employee"
	employeeerrors "go-payroll/internal/employee/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeEmployeeRepository struct {
	createFn   func(ctx context.Context, e *employee.Employee) error
	findAllFn  func(ctx context.Context) ([]employee.Employee, error)
	findByIDFn func(ctx context.Context, id string) (*employee.Employee, error)
	updateFn   func(ctx context.Context, e *employee.Employee) error
	deleteFn   func(ctx context.Context, id string) (bool, error)
	existsFn   func(ctx context.Context, id string) (bool, error)
}

func (f *fakeEmployeeRepository) WithTx(tx *sql.Tx) employee.Repository { return f }

func (f *fakeEmployeeRepository) Create(ctx context.Context, e *employee.Employee) error {
	if f.createFn != nil {
		return f.createFn(ctx, e)
	}
	return nil
}

func (f *fakeEmployeeRepository) FindAll(ctx context.Context) ([]employee.Employee, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, sql.ErrNoRows
}

func (f *fakeEmployeeRepository) FindByUserID(ctx context.Context, userID string) (*employee.Employee, error) {
	return nil, sql.ErrNoRows
}

func (f *fakeEmployeeRepository) Update(ctx context.Context, e *employee.Employee) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, e)
	}
	return nil
}

func (f *fakeEmployeeRepository) Delete(ctx context.Context, id string) (bool, error) {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return true, nil
}

func (f *fakeEmployeeRepository) Exists(ctx context.Context, id string) (bool, error) {
	if f.existsFn != nil {
		return f.existsFn(ctx, id)
	}
	return true, nil
}

type fakeServiceLedger struct {
	balance int
}

func (f *fakeServiceLedger) WithTx(tx *sql.Tx) employee.Ledger { return f }
func (f *fakeServiceLedger) CurrentBalance(ctx context.Context, employeeID string) (int, error) {
	return f.balance, nil
}
func (f *fakeServiceLedger) TryDeduct(ctx context.Context, employeeID string, days int) error {
	if f.balance < days {
		return employeeerrors.ErrInsufficientLeaveBalance
	}
	f.balance -= days
	return nil
}
func (f *fakeServiceLedger) Credit(ctx context.Context, employeeID string, days int) error {
	if days <= 0 {
		return employeeerrors.ErrNonPositiveDays
	}
	f.balance += days
	return nil
}

type fakeCounterRepository struct {
	next int64
}

func (f *fakeCounterRepository) GetNextValue(ctx context.Context, counterType string) (int64, error) {
	f.next++
	return f.next, nil
}

type employeeServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	repo    *fakeEmployeeRepository
	ledger  *fakeServiceLedger
	service employee.Service
}

func setupEmployeeServiceTest(t *testing.T) *employeeServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeEmployeeRepository{}
	ledger := &fakeServiceLedger{balance: employee.DefaultLeaveBalance}
	svc := employee.NewService(db, repo, ledger, &fakeCounterRepository{}, nil)

	return &employeeServiceDeps{db: db, sqlMock: sqlMock, repo: repo, ledger: ledger, service: svc}
}

func expectServiceTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns sequential employee number and default balance", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectServiceTx(t, deps.sqlMock, true)

		var created *employee.Employee
		deps.repo.createFn = func(ctx context.Context, e *employee.Employee) error {
			created = e
			return nil
		}

		resp, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     "ada@example.com",
			HireDate:  "2024-01-15",
		})

		assert.NoError(t, err)
		assert.Equal(t, "EMP-0001", resp.EmployeeNumber)
		assert.Equal(t, employee.DefaultLeaveBalance, resp.LeaveBalance)
		assert.NotNil(t, created)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("explicit starting balance wins over default", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectServiceTx(t, deps.sqlMock, true)

		balance := 30
		resp, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{
			FirstName:    "Grace",
			LastName:     "Hopper",
			Email:        "grace@example.com",
			HireDate:     "2024-01-15",
			LeaveBalance: &balance,
		})

		assert.NoError(t, err)
		assert.Equal(t, 30, resp.LeaveBalance)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("invalid hire date rejected", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     "ada@example.com",
			HireDate:  "15-01-2024",
		})

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidHireDate)
	})

	t.Run("invalid department reference rejected", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectServiceTx(t, deps.sqlMock, false)

		bad := "not-a-uuid"
		_, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{
			FirstName:    "Ada",
			LastName:     "Lovelace",
			Email:        "ada@example.com",
			HireDate:     "2024-01-15",
			DepartmentID: &bad,
		})

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidReference)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestEmployeeService_CreditLeave(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()

	t.Run("raises the balance", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectServiceTx(t, deps.sqlMock, true)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*employee.Employee, error) {
			return &employee.Employee{ID: employeeID, LeaveBalance: deps.ledger.balance}, nil
		}

		resp, err := deps.service.CreditLeave(ctx, employeeID.String(), 5)

		assert.NoError(t, err)
		assert.Equal(t, 25, resp.LeaveBalance)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("non-positive days rejected", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectServiceTx(t, deps.sqlMock, false)

		_, err := deps.service.CreditLeave(ctx, employeeID.String(), 0)

		assert.ErrorIs(t, err, employeeerrors.ErrNonPositiveDays)
		assert.Equal(t, 20, deps.ledger.balance)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestEmployeeService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("missing employee", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectServiceTx(t, deps.sqlMock, false)
		deps.repo.deleteFn = func(ctx context.Context, id string) (bool, error) {
			return false, nil
		}

		err := deps.service.Delete(ctx, uuid.New().String())

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("invalid id", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		err := deps.service.Delete(ctx, "nope")

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidEmployeeID)
	})
}

func TestEmployeeService_GetOptions(t *testing.T) {
	ctx := context.Background()

	t.Run("without cache falls through to the repository", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		deps.repo.findAllFn = func(ctx context.Context) ([]employee.Employee, error) {
			return []employee.Employee{
				{ID: uuid.New(), EmployeeNumber: "EMP-0001", FirstName: "Ada", LastName: "Lovelace"},
				{ID: uuid.New(), EmployeeNumber: "EMP-0002", FirstName: "Grace", LastName: "Hopper"},
			}, nil
		}

		options, err := deps.service.GetOptions(ctx)

		assert.NoError(t, err)
		assert.Len(t, options, 2)
		assert.Equal(t, "Ada Lovelace", options[0].FullName)
		assert.Equal(t, "EMP-0002", options[1].EmployeeNumber)
	})

	t.Run("cache hit skips the repository", func(t *testing.T) {
		db, _, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		rdb, redisMock := redismock.NewClientMock()

		cached := []employee.EmployeeOption{
			{ID: uuid.New().String(), EmployeeNumber: "EMP-0001", FullName: "Ada Lovelace"},
		}
		payload, err := json.Marshal(cached)
		assert.NoError(t, err)
		redisMock.ExpectGet(employee.EmployeeOptionsKey).SetVal(string(payload))

		repo := &fakeEmployeeRepository{
			findAllFn: func(ctx context.Context) ([]employee.Employee, error) {
				t.Fatal("repository must not be queried on a cache hit")
				return nil, nil
			},
		}
		svc := employee.NewService(db, repo, &fakeServiceLedger{}, &fakeCounterRepository{}, rdb)

		options, err := svc.GetOptions(ctx)

		assert.NoError(t, err)
		assert.Equal(t, cached, options)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("cache miss fills the cache", func(t *testing.T) {
		db, _, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		rdb, redisMock := redismock.NewClientMock()
		redisMock.ExpectGet(employee.EmployeeOptionsKey).RedisNil()
		redisMock.Regexp().ExpectSet(employee.EmployeeOptionsKey, `.*EMP-0001.*`, 5*time.Minute).SetVal("OK")

		repo := &fakeEmployeeRepository{
			findAllFn: func(ctx context.Context) ([]employee.Employee, error) {
				return []employee.Employee{
					{ID: uuid.New(), EmployeeNumber: "EMP-0001", FirstName: "Ada", LastName: "Lovelace"},
				}, nil
			},
		}
		svc := employee.NewService(db, repo, &fakeServiceLedger{}, &fakeCounterRepository{}, rdb)

		options, err := svc.GetOptions(ctx)

		assert.NoError(t, err)
		assert.Len(t, options, 1)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})
}
