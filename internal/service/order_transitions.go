package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gutoberny/BernyFlow/internal/model"
)

// TransitionEffects lists the side effects a status change requires. The
// function computing it touches no storage, so the full transition table is
// unit testable without a database.
type TransitionEffects struct {
	// DeleteTransaction: remove any ledger entry linked to the order.
	DeleteTransaction bool
	// ClearPayment: null out payment method, payment type and end date.
	ClearPayment bool
	// CreateTransaction: derive an income entry from the order totals.
	CreateTransaction bool
}

// PlanTransition maps a status change to its side effects.
//
//	→ OPEN (from anything else): delete linked transaction, clear payment.
//	→ COMPLETED (from anything else): create the income transaction.
//	→ CANCELLED: no ledger effect.
//
// Same-status updates are no-ops.
func PlanTransition(current, next model.OrderStatus) TransitionEffects {
	if current == next {
		return TransitionEffects{}
	}
	switch next {
	case model.OrderOpen:
		return TransitionEffects{DeleteTransaction: true, ClearPayment: true}
	case model.OrderCompleted:
		return TransitionEffects{CreateTransaction: true}
	default:
		return TransitionEffects{}
	}
}

// OrderTotal sums the line items plus the displacement cost.
func OrderTotal(items []model.ServiceOrderItem, displacement decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.TotalPrice)
	}
	return total.Add(displacement)
}

// BuildOrderTransaction derives the income ledger entry created when an
// order completes. Installment payments start PENDING with the supplied due
// date; everything else is PAID immediately.
func BuildOrderTransaction(o *model.ServiceOrder, total decimal.Decimal, dueDate *time.Time, now time.Time) model.FinancialTransaction {
	method := ""
	if o.PaymentMethod != nil {
		method = *o.PaymentMethod
	}
	ptype := model.PaymentType("")
	if o.PaymentType != nil {
		ptype = *o.PaymentType
	}

	t := model.FinancialTransaction{
		Type:           model.TransactionIncome,
		Description:    fmt.Sprintf("Receita OS #%d - %s (%s)", o.Number, method, ptype),
		Amount:         total,
		Date:           now,
		ServiceOrderID: &o.ID,
		CompanyID:      o.CompanyID,
	}

	if ptype == model.PaymentInstallment {
		t.Status = model.TransactionPending
		if dueDate != nil {
			t.DueDate = dueDate
		} else {
			d := now
			t.DueDate = &d
		}
	} else {
		t.Status = model.TransactionPaid
		paid := now
		t.PaidAt = &paid
		d := now
		t.DueDate = &d
	}
	return t
}
