package leave

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	FindAll(ctx context.Context) ([]LeaveRequest, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error)
	FindByStatus(ctx context.Context, status string) ([]LeaveRequest, error)
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	FindByIDForUpdate(ctx context.Context, id string) (*LeaveRequest, error)
	MarkDecided(ctx context.Context, id, status string, processedBy string, processedDate time.Time) (bool, error)
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

const leaveColumns = `
	id, employee_id, leave_type, start_date, end_date, reason,
	status, applied_date, processed_date, processed_by
`

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	query := `
INSERT INTO leave_requests (
	id, employee_id, leave_type, start_date, end_date, reason,
	status, applied_date, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
`
	_, err := r.execer().ExecContext(
		ctx, query,
		l.ID, l.EmployeeID, l.LeaveType, l.StartDate, l.EndDate, l.Reason,
		l.Status, l.AppliedDate,
	)
	return err
}

func (r *repository) FindAll(ctx context.Context) ([]LeaveRequest, error) {
	query := `
SELECT ` + leaveColumns + `
FROM leave_requests
ORDER BY applied_date DESC
`
	return r.queryList(ctx, query)
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error) {
	query := `
SELECT ` + leaveColumns + `
FROM leave_requests
WHERE employee_id = $1
ORDER BY applied_date DESC
`
	return r.queryList(ctx, query, employeeID)
}

func (r *repository) FindByStatus(ctx context.Context, status string) ([]LeaveRequest, error) {
	query := `
SELECT ` + leaveColumns + `
FROM leave_requests
WHERE status = $1
ORDER BY applied_date ASC
`
	return r.queryList(ctx, query, status)
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	query := `
SELECT ` + leaveColumns + `
FROM leave_requests
WHERE id = $1
`
	row := r.querier().QueryRowContext(ctx, query, id)
	l, err := scanLeave(row)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// FindByIDForUpdate locks the request row for the rest of the transaction so
// a concurrent decide on the same request waits behind this one.
func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*LeaveRequest, error) {
	query := `
SELECT ` + leaveColumns + `
FROM leave_requests
WHERE id = $1
FOR UPDATE
`
	row := r.querier().QueryRowContext(ctx, query, id)
	l, err := scanLeave(row)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// MarkDecided flips PENDING to a terminal status. The status guard in the
// WHERE clause means a lost race or a retry reports zero rows instead of
// re-applying the transition.
func (r *repository) MarkDecided(
	ctx context.Context,
	id, status string,
	processedBy string,
	processedDate time.Time,
) (bool, error) {
	query := `
UPDATE leave_requests
SET status = $2, processed_by = $3, processed_date = $4, updated_at = now()
WHERE id = $1 AND status = 'PENDING'
`
	res, err := r.execer().ExecContext(ctx, query, id, status, processedBy, processedDate)
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
	res, err := r.execer().ExecContext(ctx, `DELETE FROM leave_requests WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *repository) queryList(ctx context.Context, query string, args ...any) ([]LeaveRequest, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leaves []LeaveRequest
	for rows.Next() {
		l, err := scanLeave(rows)
		if err != nil {
			return nil, err
		}
		leaves = append(leaves, l)
	}
	return leaves, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLeave(row rowScanner) (LeaveRequest, error) {
	var (
		l             LeaveRequest
		reason        sql.NullString
		processedDate sql.NullTime
		processedBy   sql.Null[uuid.UUID]
	)
	err := row.Scan(
		&l.ID, &l.EmployeeID, &l.LeaveType, &l.StartDate, &l.EndDate, &reason,
		&l.Status, &l.AppliedDate, &processedDate, &processedBy,
	)
	if err != nil {
		return LeaveRequest{}, err
	}
	l.Reason = reason.String
	if processedDate.Valid {
		l.ProcessedDate = &processedDate.Time
	}
	if processedBy.Valid {
		l.ProcessedBy = &processedBy.V
	}
	return l, nil
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
