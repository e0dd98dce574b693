package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gutoberny/BernyFlow/internal/model"
)

type ReceiptRepository interface {
	Create(ctx context.Context, rec *model.Receipt) error
	Update(ctx context.Context, rec *model.Receipt) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Receipt, error)
	FindByOrder(ctx context.Context, companyID, orderID uuid.UUID) (*model.Receipt, error)
	// ListPendingRetries returns errored receipts whose backoff has elapsed.
	ListPendingRetries(ctx context.Context, now time.Time, limit int) ([]model.Receipt, error)
}

type receiptRepo struct{ db *gorm.DB }

func NewReceiptRepository(db *gorm.DB) ReceiptRepository { return &receiptRepo{db: db} }

func (r *receiptRepo) Create(ctx context.Context, rec *model.Receipt) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *receiptRepo) Update(ctx context.Context, rec *model.Receipt) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *receiptRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Receipt, error) {
	var rec model.Receipt
	err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	return &rec, err
}

func (r *receiptRepo) FindByOrder(ctx context.Context, companyID, orderID uuid.UUID) (*model.Receipt, error) {
	var rec model.Receipt
	err := r.db.WithContext(ctx).
		Where("service_order_id = ? AND company_id = ?", orderID, companyID).
		First(&rec).Error
	return &rec, err
}

func (r *receiptRepo) ListPendingRetries(ctx context.Context, now time.Time, limit int) ([]model.Receipt, error) {
	var recs []model.Receipt
	err := r.db.WithContext(ctx).
		Where("status = ? AND next_retry_at IS NOT NULL AND next_retry_at <= ?", model.ReceiptError, now).
		Order("next_retry_at ASC").
		Limit(limit).
		Find(&recs).Error
	return recs, err
}
