package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gutoberny/BernyFlow/internal/model"
)

type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, companyID, id uuid.UUID) (*model.Product, error)
	List(ctx context.Context, companyID uuid.UUID, search string) ([]model.Product, error)
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, companyID, id uuid.UUID) error

	// Used inside transactions — callers must pass the tx instance.
	// Delta may be negative; stock is allowed to go below zero.
	AdjustStockTx(tx *gorm.DB, companyID, id uuid.UUID, delta int) error
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) FindByID(ctx context.Context, companyID, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", id, companyID).
		First(&p).Error
	return &p, err
}

func (r *productRepo) List(ctx context.Context, companyID uuid.UUID, search string) ([]model.Product, error) {
	var products []model.Product
	q := r.db.WithContext(ctx).Where("company_id = ?", companyID)
	if search != "" {
		q = q.Where("name ILIKE ?", "%"+search+"%")
	}
	err := q.Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) Update(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productRepo) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", id, companyID).
		Delete(&model.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *productRepo) AdjustStockTx(tx *gorm.DB, companyID, id uuid.UUID, delta int) error {
	return tx.Model(&model.Product{}).
		Where("id = ? AND company_id = ?", id, companyID).
		Update("stock", gorm.Expr("stock + ?", delta)).Error
}
