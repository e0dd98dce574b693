package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionIncome  TransactionType = "INCOME"
	TransactionExpense TransactionType = "EXPENSE"
)

type TransactionStatus string

const (
	TransactionPending TransactionStatus = "PENDING"
	TransactionPaid    TransactionStatus = "PAID"
)

// FinancialTransaction is a ledger entry. Entries linked to a service order
// (ServiceOrderID set) are derived records: only their status may change and
// they cannot be deleted while the order owns them.
type FinancialTransaction struct {
	ID             uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Type           TransactionType   `gorm:"type:varchar(10);not null"`
	Status         TransactionStatus `gorm:"type:varchar(10);not null;default:'PENDING'"`
	Description    string            `gorm:"not null"`
	Amount         decimal.Decimal   `gorm:"type:decimal(12,2);not null"`
	Category       *string
	Date           time.Time `gorm:"index;not null"`
	DueDate        *time.Time
	PaidAt         *time.Time
	ServiceOrderID *uuid.UUID `gorm:"type:uuid;index"`
	CompanyID      uuid.UUID  `gorm:"type:uuid;index;not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	ServiceOrder *ServiceOrder `gorm:"foreignKey:ServiceOrderID"`
}
