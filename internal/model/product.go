package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a stocked good sold through service orders.
// Price is stored as submitted by the client UI; the cost fields
// (CostPrice/Freight/OtherCosts/ProfitMargin) are informational inputs the
// UI uses to suggest a price. The server does not re-derive it.
type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"index;not null"`
	Description *string
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// Stock may go negative on over-consumption; no floor is enforced.
	Stock        int             `gorm:"not null;default:0"`
	CostPrice    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Freight      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	OtherCosts   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	ProfitMargin decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	CompanyID    uuid.UUID       `gorm:"type:uuid;index;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
