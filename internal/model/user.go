package model

import (
	"time"

	"github.com/google/uuid"
)

// Role controls what a team member may do inside their company.
type Role string

const (
	RoleOwner Role = "OWNER"
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// User is a team member. Exactly one OWNER is created at registration;
// ADMIN/USER accounts are invited afterwards.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string    `gorm:"not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Role         Role      `gorm:"type:varchar(10);not null;default:'USER'"`
	CompanyID    uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Company *Company `gorm:"foreignKey:CompanyID"`
}
