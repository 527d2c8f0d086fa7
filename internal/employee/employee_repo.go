package employee

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *Employee) error
	FindAll(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindByUserID(ctx context.Context, userID string) (*Employee, error)
	Update(ctx context.Context, e *Employee) error
	Delete(ctx context.Context, id string) (bool, error)
	Exists(ctx context.Context, id string) (bool, error)
}

type repository struct {
	db *sql.DB
	tx *sql.Tx
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

const employeeColumns = `
	id, user_id, employee_number, first_name, last_name, email,
	phone_number, address, hire_date, department_id, job_role_id,
	leave_balance, created_at, updated_at
`

func (r *repository) Create(ctx context.Context, e *Employee) error {
	query := `
INSERT INTO employees (
	id, user_id, employee_number, first_name, last_name, email,
	phone_number, address, hire_date, department_id, job_role_id,
	leave_balance, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, now(), now())
`
	_, err := r.execer().ExecContext(
		ctx, query,
		e.ID, e.UserID, e.EmployeeNumber, e.FirstName, e.LastName, e.Email,
		e.PhoneNumber, e.Address, e.HireDate, e.DepartmentID, e.JobRoleID,
		e.LeaveBalance,
	)
	return err
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	query := `
SELECT ` + employeeColumns + `
FROM employees
WHERE deleted_at IS NULL
ORDER BY employee_number ASC
`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	query := `
SELECT ` + employeeColumns + `
FROM employees
WHERE id = $1 AND deleted_at IS NULL
`
	row := r.querier().QueryRowContext(ctx, query, id)
	e, err := scanEmployeeRow(row)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *repository) FindByUserID(ctx context.Context, userID string) (*Employee, error) {
	query := `
SELECT ` + employeeColumns + `
FROM employees
WHERE user_id = $1 AND deleted_at IS NULL
`
	row := r.querier().QueryRowContext(ctx, query, userID)
	return scanEmployeeRow(row)
}

func (r *repository) Update(ctx context.Context, e *Employee) error {
	query := `
UPDATE employees
SET first_name = $2, last_name = $3, email = $4, phone_number = $5,
	address = $6, hire_date = $7, department_id = $8, job_role_id = $9,
	updated_at = now()
WHERE id = $1 AND deleted_at IS NULL
`
	_, err := r.execer().ExecContext(
		ctx, query,
		e.ID, e.FirstName, e.LastName, e.Email, e.PhoneNumber,
		e.Address, e.HireDate, e.DepartmentID, e.JobRoleID,
	)
	return err
}

func (r *repository) Delete(ctx context.Context, id string) (bool, error) {
	query := `
UPDATE employees
SET deleted_at = now(), updated_at = now()
WHERE id = $1 AND deleted_at IS NULL
`
	res, err := r.execer().ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *repository) Exists(ctx context.Context, id string) (bool, error) {
	query := `SELECT 1 FROM employees WHERE id = $1 AND deleted_at IS NULL`
	var one int
	err := r.querier().QueryRowContext(ctx, query, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (Employee, error) {
	var (
		e            Employee
		userID       sql.Null[uuid.UUID]
		departmentID sql.Null[uuid.UUID]
		jobRoleID    sql.Null[uuid.UUID]
		phone        sql.NullString
		address      sql.NullString
		hireDate     time.Time
	)
	err := row.Scan(
		&e.ID, &userID, &e.EmployeeNumber, &e.FirstName, &e.LastName, &e.Email,
		&phone, &address, &hireDate, &departmentID, &jobRoleID,
		&e.LeaveBalance, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return Employee{}, err
	}
	if userID.Valid {
		e.UserID = &userID.V
	}
	if departmentID.Valid {
		e.DepartmentID = &departmentID.V
	}
	if jobRoleID.Valid {
		e.JobRoleID = &jobRoleID.V
	}
	e.PhoneNumber = phone.String
	e.Address = address.String
	e.HireDate = hireDate
	return e, nil
}

func scanEmployeeRow(row *sql.Row) (*Employee, error) {
	e, err := scanEmployee(row)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *repository) querier() interface {
	QueryRowContext(context.Context, string, ...any) *sql.Row
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}
