package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of a service order.
type OrderStatus string

const (
	OrderOpen      OrderStatus = "OPEN"
	OrderCompleted OrderStatus = "COMPLETED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// PaymentType distinguishes single payments from installment plans.
type PaymentType string

const (
	PaymentCash        PaymentType = "CASH"
	PaymentInstallment PaymentType = "INSTALLMENT"
)

// ServiceOrder is a work order for a client: a bag of product/service line
// items plus an optional displacement cost. Completing it derives an income
// transaction; reopening it deletes that transaction again.
type ServiceOrder struct {
	ID               uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Number           int         `gorm:"autoIncrement;uniqueIndex"`
	Status           OrderStatus `gorm:"type:varchar(12);not null;default:'OPEN'"`
	Description      *string
	DisplacementCost decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Total            decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PaymentMethod    *string
	PaymentType      *PaymentType `gorm:"type:varchar(15)"`
	StartDate        time.Time    `gorm:"not null"`
	EndDate          *time.Time
	ClientID         uuid.UUID `gorm:"type:uuid;index;not null"`
	CompanyID        uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Client       *Client                `gorm:"foreignKey:ClientID"`
	Items        []ServiceOrderItem     `gorm:"foreignKey:ServiceOrderID"`
	Transactions []FinancialTransaction `gorm:"foreignKey:ServiceOrderID"`
}

// ServiceOrderItem is a line on an order. Exactly one of ProductID or
// ServiceID is set. TotalPrice is always recomputed server-side as
// Quantity * UnitPrice.
type ServiceOrderItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ServiceOrderID uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductID      *uuid.UUID      `gorm:"type:uuid;index"`
	ServiceID      *uuid.UUID      `gorm:"type:uuid;index"`
	Quantity       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	UnitPrice      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalPrice     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	IsFirstHour    bool            `gorm:"not null;default:false"`
	CreatedAt      time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
	Service *Service `gorm:"foreignKey:ServiceID"`
}
