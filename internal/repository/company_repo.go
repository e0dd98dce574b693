package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gutoberny/BernyFlow/internal/model"
)

type CompanyRepository interface {
	CreateTx(tx *gorm.DB, c *model.Company) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Company, error)
	Update(ctx context.Context, c *model.Company) error
	UpdatePlan(ctx context.Context, id uuid.UUID, plan model.Plan) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type companyRepo struct{ db *gorm.DB }

func NewCompanyRepository(db *gorm.DB) CompanyRepository { return &companyRepo{db: db} }

func (r *companyRepo) DB() *gorm.DB { return r.db }

func (r *companyRepo) CreateTx(tx *gorm.DB, c *model.Company) error {
	return tx.Create(c).Error
}

func (r *companyRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Company, error) {
	var c model.Company
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *companyRepo) Update(ctx context.Context, c *model.Company) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *companyRepo) UpdatePlan(ctx context.Context, id uuid.UUID, plan model.Plan) error {
	return r.db.WithContext(ctx).Model(&model.Company{}).
		Where("id = ?", id).Update("plan", plan).Error
}
