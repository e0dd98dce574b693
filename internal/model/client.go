package model

import (
	"time"

	"github.com/google/uuid"
)

// Client is a customer of the company (the tenant's customer, not an API consumer).
type Client struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"index;not null"`
	Email     *string
	Phone     *string
	Address   *string
	CompanyID uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
