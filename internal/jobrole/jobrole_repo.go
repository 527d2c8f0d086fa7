package jobrole

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=jobrole_repo.go -destination=mock/jobrole_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, role *JobRole) error
	FindAll(ctx context.Context) ([]JobRole, error)
	FindByID(ctx context.Context, id string) (*JobRole, error)
	Update(ctx context.Context, role *JobRole) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) session(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *repository) Create(ctx context.Context, role *JobRole) error {
	return r.session(ctx).Create(role).Error
}

func (r *repository) FindAll(ctx context.Context) ([]JobRole, error) {
	var roles []JobRole
	err := r.session(ctx).Order("title ASC").Find(&roles).Error
	return roles, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*JobRole, error) {
	var role JobRole
	err := r.session(ctx).First(&role, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *repository) Update(ctx context.Context, role *JobRole) error {
	return r.session(ctx).Save(role).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.session(ctx).Delete(&JobRole{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
