package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Sentinel errors mapped to HTTP statuses by the handler layer.
var (
	// ErrNotFound covers both genuinely missing records and records owned by
	// another company, so cross-tenant probes cannot distinguish the two.
	ErrNotFound             = errors.New("record not found")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidClient        = errors.New("client not found")
	ErrInvalidItemTarget    = errors.New("item must reference exactly one product or service")
	ErrImmutableTransaction = errors.New("transactions linked to a service order only allow status changes")
	ErrLinkedTransaction    = errors.New("transactions linked to a service order cannot be deleted")
	ErrInvalidStatus        = errors.New("invalid status transition")
	ErrPaymentRequired      = errors.New("payment method and payment type are required to complete an order")
)

// PlanLimitError is returned when a FREE-plan company hits a resource cap.
type PlanLimitError struct {
	Plan     string
	Resource string
	Limit    int64
}

func (e *PlanLimitError) Error() string {
	return fmt.Sprintf("Limite do plano %s atingido: maximo de %d %s. Faca upgrade para continuar.",
		e.Plan, e.Limit, e.Resource)
}

// asNotFound collapses gorm's record-not-found into the service sentinel so
// handlers never leak storage details.
func asNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
