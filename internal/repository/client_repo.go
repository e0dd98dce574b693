package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gutoberny/BernyFlow/internal/model"
)

// ClientRepository defines the data access contract for clients.
// Every method is scoped by companyID: a record belonging to another company
// behaves exactly like a missing record.
type ClientRepository interface {
	Create(ctx context.Context, c *model.Client) error
	FindByID(ctx context.Context, companyID, id uuid.UUID) (*model.Client, error)
	List(ctx context.Context, companyID uuid.UUID, search string) ([]model.Client, error)
	Update(ctx context.Context, c *model.Client) error
	Delete(ctx context.Context, companyID, id uuid.UUID) error
	CountByCompany(ctx context.Context, companyID uuid.UUID) (int64, error)
}

type clientRepo struct{ db *gorm.DB }

func NewClientRepository(db *gorm.DB) ClientRepository { return &clientRepo{db: db} }

func (r *clientRepo) Create(ctx context.Context, c *model.Client) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *clientRepo) FindByID(ctx context.Context, companyID, id uuid.UUID) (*model.Client, error) {
	var c model.Client
	err := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", id, companyID).
		First(&c).Error
	return &c, err
}

func (r *clientRepo) List(ctx context.Context, companyID uuid.UUID, search string) ([]model.Client, error) {
	var clients []model.Client
	q := r.db.WithContext(ctx).Where("company_id = ?", companyID)
	if search != "" {
		q = q.Where("name ILIKE ?", "%"+search+"%")
	}
	err := q.Order("name ASC").Find(&clients).Error
	return clients, err
}

func (r *clientRepo) Update(ctx context.Context, c *model.Client) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *clientRepo) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", id, companyID).
		Delete(&model.Client{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *clientRepo) CountByCompany(ctx context.Context, companyID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Client{}).
		Where("company_id = ?", companyID).Count(&n).Error
	return n, err
}
