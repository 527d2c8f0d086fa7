package payroll

import (
	"context"
	"database/sql"
	"time"
)

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Payroll) error
	FindAll(ctx context.Context) ([]Payroll, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]Payroll, error)
	FindByPeriod(ctx context.Context, month, year int) ([]Payroll, error)
	FindByID(ctx context.Context, id string) (*Payroll, error)
	FindByIDForUpdate(ctx context.Context, id string) (*Payroll, error)
	MarkProcessed(ctx context.Context, id string, processedDate time.Time) (bool, error)
	SetPayslip(ctx context.Context, id, payslipURL string, generatedAt time.Time) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
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

const payrollColumns = `
	id, employee_id, month, year,
	base_salary, allowances, deductions, net_salary,
	status, generated_date, processed_date, payslip_url, payslip_generated_at
`

func (r *repository) Create(ctx context.Context, p *Payroll) error {
	query := `
INSERT INTO payrolls (
	id, employee_id, month, year,
	base_salary, allowances, deductions, net_salary,
	status, generated_date, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now())
`
	_, err := r.execer().ExecContext(
		ctx, query,
		p.ID, p.EmployeeID, p.Month, p.Year,
		p.BaseSalary, p.Allowances, p.Deductions, p.NetSalary,
		p.Status, p.GeneratedDate,
	)
	return err
}

func (r *repository) FindAll(ctx context.Context) ([]Payroll, error) {
	query := `
SELECT ` + payrollColumns + `
FROM payrolls
ORDER BY year DESC, month DESC, generated_date DESC
`
	return r.queryList(ctx, query)
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]Payroll, error) {
	query := `
SELECT ` + payrollColumns + `
FROM payrolls
WHERE employee_id = $1
ORDER BY year DESC, month DESC
`
	return r.queryList(ctx, query, employeeID)
}

func (r *repository) FindByPeriod(ctx context.Context, month, year int) ([]Payroll, error) {
	query := `
SELECT ` + payrollColumns + `
FROM payrolls
WHERE month = $1 AND year = $2
ORDER BY generated_date ASC
`
	return r.queryList(ctx, query, month, year)
}

func (r *repository) FindByID(ctx context.Context, id string) (*Payroll, error) {
	query := `
SELECT ` + payrollColumns + `
FROM payrolls
WHERE id = $1
`
	row := r.querier().QueryRowContext(ctx, query, id)
	p, err := scanPayroll(row)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByIDForUpdate locks the payroll row for the rest of the transaction so
// concurrent process calls on the same record serialize.
func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*Payroll, error) {
	query := `
SELECT ` + payrollColumns + `
FROM payrolls
WHERE id = $1
FOR UPDATE
`
	row := r.querier().QueryRowContext(ctx, query, id)
	p, err := scanPayroll(row)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// MarkProcessed flips PENDING to PROCESSED. The status guard means a retry or
// a lost race reports zero rows instead of re-applying the transition. The
// monetary columns are deliberately untouched.
func (r *repository) MarkProcessed(ctx context.Context, id string, processedDate time.Time) (bool, error) {
	query := `
UPDATE payrolls
SET status = 'PROCESSED', processed_date = $2, updated_at = now()
WHERE id = $1 AND status = 'PENDING'
`
	res, err := r.execer().ExecContext(ctx, query, id, processedDate)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *repository) SetPayslip(ctx context.Context, id, payslipURL string, generatedAt time.Time) (bool, error) {
	query := `
UPDATE payrolls
SET payslip_url = $2, payslip_generated_at = $3, updated_at = now()
WHERE id = $1
`
	res, err := r.execer().ExecContext(ctx, query, id, payslipURL, generatedAt)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *repository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.execer().ExecContext(ctx, `DELETE FROM payrolls WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *repository) queryList(ctx context.Context, query string, args ...any) ([]Payroll, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payrolls []Payroll
	for rows.Next() {
		p, err := scanPayroll(rows)
		if err != nil {
			return nil, err
		}
		payrolls = append(payrolls, p)
	}
	return payrolls, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPayroll(row rowScanner) (Payroll, error) {
	var (
		p                  Payroll
		processedDate      sql.NullTime
		payslipURL         sql.NullString
		payslipGeneratedAt sql.NullTime
	)
	err := row.Scan(
		&p.ID, &p.EmployeeID, &p.Month, &p.Year,
		&p.BaseSalary, &p.Allowances, &p.Deductions, &p.NetSalary,
		&p.Status, &p.GeneratedDate, &processedDate, &payslipURL, &payslipGeneratedAt,
	)
	if err != nil {
		return Payroll{}, err
	}
	if processedDate.Valid {
		p.ProcessedDate = &processedDate.Time
	}
	if payslipURL.Valid {
		p.PayslipURL = &payslipURL.String
	}
	if payslipGeneratedAt.Valid {
		p.PayslipGeneratedAt = &payslipGeneratedAt.Time
	}
	return p, nil
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
