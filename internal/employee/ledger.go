package employee

import (
	"context"
	"database/sql"
	"errors"

	employeeerrors "go-payroll/internal/employee/errors"
)

// Ledger is the only writer of an employee's leave balance. TryDeduct is a
// single conditional decrement, so two transactions racing over the same
// employee serialize on the row and the combined spend can never exceed the
// balance.
//
//go:generate mockgen -source=ledger.go -destination=mock/ledger_mock.go -package=mock
type Ledger interface {
	WithTx(tx *sql.Tx) Ledger
	CurrentBalance(ctx context.Context, employeeID string) (int, error)
	TryDeduct(ctx context.Context, employeeID string, days int) error
	Credit(ctx context.Context, employeeID string, days int) error
}

type ledger struct {
	db *sql.DB
	tx *sql.Tx
}

func NewLedger(db *sql.DB) Ledger {
	return &ledger{db: db}
}

func (l *ledger) WithTx(tx *sql.Tx) Ledger {
	return &ledger{db: l.db, tx: tx}
}

func (l *ledger) CurrentBalance(ctx context.Context, employeeID string) (int, error) {
	query := `
SELECT leave_balance
FROM employees
WHERE id = $1 AND deleted_at IS NULL
`
	var balance int
	err := l.querier().QueryRowContext(ctx, query, employeeID).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, employeeerrors.ErrEmployeeNotFound
	}
	if err != nil {
		return 0, err
	}
	return balance, nil
}

func (l *ledger) TryDeduct(ctx context.Context, employeeID string, days int) error {
	if days <= 0 {
		return employeeerrors.ErrNonPositiveDays
	}

	query := `
UPDATE employees
SET leave_balance = leave_balance - $2, updated_at = now()
WHERE id = $1 AND deleted_at IS NULL AND leave_balance >= $2
`
	res, err := l.execer().ExecContext(ctx, query, employeeID, days)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows > 0 {
		return nil
	}

	// Zero rows means either the employee is gone or the balance is short.
	if _, err := l.CurrentBalance(ctx, employeeID); err != nil {
		return err
	}
	return employeeerrors.ErrInsufficientLeaveBalance
}

func (l *ledger) Credit(ctx context.Context, employeeID string, days int) error {
	if days <= 0 {
		return employeeerrors.ErrNonPositiveDays
	}

	query := `
UPDATE employees
SET leave_balance = leave_balance + $2, updated_at = now()
WHERE id = $1 AND deleted_at IS NULL
`
	res, err := l.execer().ExecContext(ctx, query, employeeID, days)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return employeeerrors.ErrEmployeeNotFound
	}
	return nil
}

func (l *ledger) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if l.tx != nil {
		return l.tx
	}
	return l.db
}

func (l *ledger) querier() interface {
	QueryRowContext(context.Context, string, ...any) *sql.Row
} {
	if l.tx != nil {
		return l.tx
	}
	return l.db
}
