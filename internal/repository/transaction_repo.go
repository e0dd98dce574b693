package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/gutoberny/BernyFlow/internal/dto"
	"github.com/gutoberny/BernyFlow/internal/model"
)

type TransactionRepository interface {
	Create(ctx context.Context, t *model.FinancialTransaction) error
	CreateTx(tx *gorm.DB, t *model.FinancialTransaction) error
	// CreateBatch inserts installment rows atomically.
	CreateBatch(ctx context.Context, ts []model.FinancialTransaction) error
	FindByID(ctx context.Context, companyID, id uuid.UUID) (*model.FinancialTransaction, error)
	FindByOrderTx(tx *gorm.DB, orderID uuid.UUID) ([]model.FinancialTransaction, error)
	DeleteByOrderTx(tx *gorm.DB, orderID uuid.UUID) error
	Update(ctx context.Context, t *model.FinancialTransaction) error
	Delete(ctx context.Context, companyID, id uuid.UUID) error
	List(ctx context.Context, companyID uuid.UUID, filter dto.TransactionListQuery) ([]model.FinancialTransaction, error)
	// SumByTypeStatus aggregates amounts keyed "TYPE|STATUS".
	SumByTypeStatus(ctx context.Context, companyID uuid.UUID) (map[string]decimal.Decimal, error)

	DB() *gorm.DB
}

type transactionRepo struct{ db *gorm.DB }

func NewTransactionRepository(db *gorm.DB) TransactionRepository { return &transactionRepo{db: db} }

func (r *transactionRepo) DB() *gorm.DB { return r.db }

func (r *transactionRepo) Create(ctx context.Context, t *model.FinancialTransaction) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *transactionRepo) CreateTx(tx *gorm.DB, t *model.FinancialTransaction) error {
	return tx.Create(t).Error
}

func (r *transactionRepo) CreateBatch(ctx context.Context, ts []model.FinancialTransaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&ts).Error
	})
}

func (r *transactionRepo) FindByID(ctx context.Context, companyID, id uuid.UUID) (*model.FinancialTransaction, error) {
	var t model.FinancialTransaction
	err := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", id, companyID).
		First(&t).Error
	return &t, err
}

func (r *transactionRepo) FindByOrderTx(tx *gorm.DB, orderID uuid.UUID) ([]model.FinancialTransaction, error) {
	var ts []model.FinancialTransaction
	err := tx.Where("service_order_id = ?", orderID).Find(&ts).Error
	return ts, err
}

func (r *transactionRepo) DeleteByOrderTx(tx *gorm.DB, orderID uuid.UUID) error {
	return tx.Where("service_order_id = ?", orderID).
		Delete(&model.FinancialTransaction{}).Error
}

func (r *transactionRepo) Update(ctx context.Context, t *model.FinancialTransaction) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *transactionRepo) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", id, companyID).
		Delete(&model.FinancialTransaction{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *transactionRepo) List(ctx context.Context, companyID uuid.UUID, filter dto.TransactionListQuery) ([]model.FinancialTransaction, error) {
	var ts []model.FinancialTransaction
	q := r.db.WithContext(ctx).Where("company_id = ?", companyID)
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.From != "" {
		q = q.Where("date >= ?", filter.From)
	}
	if filter.To != "" {
		q = q.Where("date <= ?", filter.To)
	}
	err := q.Preload("ServiceOrder.Client").
		Order("date DESC").
		Find(&ts).Error
	return ts, err
}

func (r *transactionRepo) SumByTypeStatus(ctx context.Context, companyID uuid.UUID) (map[string]decimal.Decimal, error) {
	type row struct {
		Type   string
		Status string
		Total  decimal.Decimal
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&model.FinancialTransaction{}).
		Select("type, status, COALESCE(SUM(amount), 0) AS total").
		Where("company_id = ?", companyID).
		Group("type, status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	sums := make(map[string]decimal.Decimal, len(rows))
	for _, r := range rows {
		sums[r.Type+"|"+r.Status] = r.Total
	}
	return sums, nil
}
