package model

import (
	"time"

	"github.com/google/uuid"
)

type ReceiptStatus string

const (
	ReceiptPending ReceiptStatus = "pending"
	ReceiptIssued  ReceiptStatus = "issued"
	ReceiptError   ReceiptStatus = "error"
)

// Receipt tracks the async PDF receipt generated when an order completes.
// Failed receipts are retried by the cron until MaxReceiptRetries, then
// parked on the dead letter queue.
type Receipt struct {
	ID             uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ServiceOrderID uuid.UUID     `gorm:"type:uuid;uniqueIndex;not null"`
	CompanyID      uuid.UUID     `gorm:"type:uuid;index;not null"`
	Status         ReceiptStatus `gorm:"type:varchar(10);not null;default:'pending'"`
	PDFPath        *string
	RetryCount     int `gorm:"not null;default:0"`
	NextRetryAt    *time.Time
	LastError      *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
