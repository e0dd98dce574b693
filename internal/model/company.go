package model

import (
	"time"

	"github.com/google/uuid"
)

// Plan is the subscription tier that gates resource counts.
type Plan string

const (
	PlanFree Plan = "FREE"
	PlanPro  Plan = "PRO"
)

// Company is the tenant: every business record hangs off a company and all
// queries are scoped by its id.
type Company struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name    string    `gorm:"not null"`
	CNPJ    *string
	Address *string
	Phone   *string
	Email   *string
	Plan    Plan `gorm:"type:varchar(10);not null;default:'FREE'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
