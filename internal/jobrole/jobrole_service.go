package jobrole

import (
	"context"
	"errors"
	"strings"
	"time"

	jobroleerrors "go-payroll/internal/jobrole/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

//go:generate mockgen -source=jobrole_service.go -destination=mock/jobrole_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateJobRoleRequest) (JobRoleResponse, error)
	GetAll(ctx context.Context) ([]JobRoleResponse, error)
	GetByID(ctx context.Context, id string) (JobRoleResponse, error)
	Update(ctx context.Context, id string, req UpdateJobRoleRequest) (JobRoleResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateJobRoleRequest) (JobRoleResponse, error) {
	role := &JobRole{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
	}

	if err := s.repo.Create(ctx, role); err != nil {
		return JobRoleResponse{}, mapRepoError(err)
	}

	return mapToResponse(*role), nil
}

func (s *service) GetAll(ctx context.Context) ([]JobRoleResponse, error) {
	roles, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(roles), nil
}

func (s *service) GetByID(ctx context.Context, id string) (JobRoleResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return JobRoleResponse{}, jobroleerrors.ErrInvalidJobRoleID
	}

	role, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return JobRoleResponse{}, mapRepoError(err)
	}
	return mapToResponse(*role), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateJobRoleRequest) (JobRoleResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return JobRoleResponse{}, jobroleerrors.ErrInvalidJobRoleID
	}

	role, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return JobRoleResponse{}, mapRepoError(err)
	}

	role.Title = req.Title
	role.Description = req.Description

	if err := s.repo.Update(ctx, role); err != nil {
		return JobRoleResponse{}, mapRepoError(err)
	}

	return mapToResponse(*role), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return jobroleerrors.ErrInvalidJobRoleID
	}

	return mapRepoError(s.repo.Delete(ctx, id))
}

func mapRepoError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return jobroleerrors.ErrJobRoleNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return jobroleerrors.ErrJobRoleAlreadyExists
	}
	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return jobroleerrors.ErrJobRoleAlreadyExists
	}
	return err
}

func mapToResponse(role JobRole) JobRoleResponse {
	return JobRoleResponse{
		ID:          role.ID.String(),
		Title:       role.Title,
		Description: role.Description,
		CreatedAt:   role.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   role.UpdatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(roles []JobRole) []JobRoleResponse {
	res := make([]JobRoleResponse, len(roles))
	for i, role := range roles {
		res[i] = mapToResponse(role)
	}
	return res
}
