package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gutoberny/BernyFlow/internal/model"
)

type CreateOrderRequest struct {
	ClientID         string           `json:"client_id" validate:"required,uuid"`
	Description      *string          `json:"description" validate:"omitempty,max=1000"`
	DisplacementCost *decimal.Decimal `json:"displacement_cost" validate:"omitempty,gte=0"`
	StartDate        *time.Time       `json:"start_date"`
}

// UpdateOrderRequest drives the lifecycle: changing Status to COMPLETED
// derives the income transaction, changing back to OPEN reverses it.
// Payment fields are required together when completing an order.
type UpdateOrderRequest struct {
	Status           *model.OrderStatus `json:"status" validate:"omitempty,oneof=OPEN COMPLETED CANCELLED"`
	Description      *string            `json:"description" validate:"omitempty,max=1000"`
	DisplacementCost *decimal.Decimal   `json:"displacement_cost" validate:"omitempty,gte=0"`
	PaymentMethod    *string            `json:"payment_method" validate:"omitempty,max=60"`
	PaymentType      *model.PaymentType `json:"payment_type" validate:"omitempty,oneof=CASH INSTALLMENT"`
	DueDate          *time.Time         `json:"due_date"`
	EndDate          *time.Time         `json:"end_date"`
}

type AddOrderItemRequest struct {
	ProductID   *string         `json:"product_id" validate:"omitempty,uuid"`
	ServiceID   *string         `json:"service_id" validate:"omitempty,uuid"`
	Quantity    decimal.Decimal `json:"quantity" validate:"required,gt=0"`
	UnitPrice   decimal.Decimal `json:"unit_price" validate:"required,gte=0"`
	IsFirstHour bool            `json:"is_first_hour"`
}

type OrderListQuery struct {
	Status   string `form:"status"`
	ClientID string `form:"client_id"`
}
