package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gutoberny/BernyFlow/internal/model"
)

type ServiceRepository interface {
	Create(ctx context.Context, s *model.Service) error
	FindByID(ctx context.Context, companyID, id uuid.UUID) (*model.Service, error)
	List(ctx context.Context, companyID uuid.UUID, search string) ([]model.Service, error)
	Update(ctx context.Context, s *model.Service) error
	Delete(ctx context.Context, companyID, id uuid.UUID) error
}

type serviceRepo struct{ db *gorm.DB }

func NewServiceRepository(db *gorm.DB) ServiceRepository { return &serviceRepo{db: db} }

func (r *serviceRepo) Create(ctx context.Context, s *model.Service) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *serviceRepo) FindByID(ctx context.Context, companyID, id uuid.UUID) (*model.Service, error) {
	var s model.Service
	err := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", id, companyID).
		First(&s).Error
	return &s, err
}

func (r *serviceRepo) List(ctx context.Context, companyID uuid.UUID, search string) ([]model.Service, error) {
	var services []model.Service
	q := r.db.WithContext(ctx).Where("company_id = ?", companyID)
	if search != "" {
		q = q.Where("name ILIKE ?", "%"+search+"%")
	}
	err := q.Order("name ASC").Find(&services).Error
	return services, err
}

func (r *serviceRepo) Update(ctx context.Context, s *model.Service) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *serviceRepo) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", id, companyID).
		Delete(&model.Service{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
