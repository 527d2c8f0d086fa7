package access

import (
	"context"
	"database/sql"
	"errors"
)

//go:generate mockgen -source=access_repo.go -destination=mock/access_repo_mock.go -package=mock
type Repository interface {
	LeaveOwner(ctx context.Context, leaveID string) (string, error)
	PayrollOwner(ctx context.Context, payrollID string) (string, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) LeaveOwner(ctx context.Context, leaveID string) (string, error) {
	var ownerID string
	err := r.db.QueryRowContext(ctx,
		`SELECT employee_id::text FROM leave_requests WHERE id = $1`,
		leaveID,
	).Scan(&ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return ownerID, nil
}

func (r *repository) PayrollOwner(ctx context.Context, payrollID string) (string, error) {
	var ownerID string
	err := r.db.QueryRowContext(ctx,
		`SELECT employee_id::text FROM payrolls WHERE id = $1`,
		payrollID,
	).Scan(&ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return ownerID, nil
}
