package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gutoberny/BernyFlow/internal/dto"
	"github.com/gutoberny/BernyFlow/internal/model"
)

type OrderRepository interface {
	Create(ctx context.Context, o *model.ServiceOrder) error
	FindByID(ctx context.Context, companyID, id uuid.UUID) (*model.ServiceOrder, error)
	List(ctx context.Context, companyID uuid.UUID, filter dto.OrderListQuery) ([]model.ServiceOrder, error)
	UpdateTx(tx *gorm.DB, o *model.ServiceOrder) error
	Update(ctx context.Context, o *model.ServiceOrder) error
	Delete(ctx context.Context, companyID, id uuid.UUID) error
	DeleteTx(tx *gorm.DB, companyID, id uuid.UUID) error
	CountByCompany(ctx context.Context, companyID uuid.UUID) (int64, error)

	// Items. FindItem joins through service_orders so the tenant check holds
	// even though items carry no company_id of their own.
	CreateItemTx(tx *gorm.DB, item *model.ServiceOrderItem) error
	FindItem(ctx context.Context, companyID, orderID, itemID uuid.UUID) (*model.ServiceOrderItem, error)
	DeleteItemTx(tx *gorm.DB, itemID uuid.UUID) error
	ListItemsTx(tx *gorm.DB, orderID uuid.UUID) ([]model.ServiceOrderItem, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) OrderRepository { return &orderRepo{db: db} }

func (r *orderRepo) DB() *gorm.DB { return r.db }

func (r *orderRepo) Create(ctx context.Context, o *model.ServiceOrder) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *orderRepo) FindByID(ctx context.Context, companyID, id uuid.UUID) (*model.ServiceOrder, error) {
	var o model.ServiceOrder
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Items.Product").
		Preload("Items.Service").
		Preload("Transactions").
		Where("id = ? AND company_id = ?", id, companyID).
		First(&o).Error
	return &o, err
}

func (r *orderRepo) List(ctx context.Context, companyID uuid.UUID, filter dto.OrderListQuery) ([]model.ServiceOrder, error) {
	var orders []model.ServiceOrder
	q := r.db.WithContext(ctx).Where("company_id = ?", companyID)
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.ClientID != "" {
		q = q.Where("client_id = ?", filter.ClientID)
	}
	err := q.Preload("Client").Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepo) UpdateTx(tx *gorm.DB, o *model.ServiceOrder) error {
	return tx.Save(o).Error
}

func (r *orderRepo) Update(ctx context.Context, o *model.ServiceOrder) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *orderRepo) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", id, companyID).
		Delete(&model.ServiceOrder{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *orderRepo) DeleteTx(tx *gorm.DB, companyID, id uuid.UUID) error {
	res := tx.Where("id = ? AND company_id = ?", id, companyID).
		Delete(&model.ServiceOrder{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *orderRepo) CountByCompany(ctx context.Context, companyID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.ServiceOrder{}).
		Where("company_id = ?", companyID).Count(&n).Error
	return n, err
}

func (r *orderRepo) CreateItemTx(tx *gorm.DB, item *model.ServiceOrderItem) error {
	return tx.Create(item).Error
}

func (r *orderRepo) FindItem(ctx context.Context, companyID, orderID, itemID uuid.UUID) (*model.ServiceOrderItem, error) {
	var item model.ServiceOrderItem
	err := r.db.WithContext(ctx).
		Joins("JOIN service_orders ON service_orders.id = service_order_items.service_order_id").
		Where("service_order_items.id = ? AND service_order_items.service_order_id = ? AND service_orders.company_id = ?",
			itemID, orderID, companyID).
		First(&item).Error
	return &item, err
}

func (r *orderRepo) DeleteItemTx(tx *gorm.DB, itemID uuid.UUID) error {
	return tx.Delete(&model.ServiceOrderItem{}, "id = ?", itemID).Error
}

func (r *orderRepo) ListItemsTx(tx *gorm.DB, orderID uuid.UUID) ([]model.ServiceOrderItem, error) {
	var items []model.ServiceOrderItem
	err := tx.Where("service_order_id = ?", orderID).Find(&items).Error
	return items, err
}
