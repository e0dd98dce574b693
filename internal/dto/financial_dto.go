package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gutoberny/BernyFlow/internal/model"
)

type CreateTransactionRequest struct {
	Type        model.TransactionType    `json:"type" validate:"required,oneof=INCOME EXPENSE"`
	Status      *model.TransactionStatus `json:"status" validate:"omitempty,oneof=PENDING PAID"`
	Description string                   `json:"description" validate:"required,min=2,max=255"`
	Amount      decimal.Decimal          `json:"amount" validate:"required,gt=0"`
	Category    *string                  `json:"category" validate:"omitempty,max=60"`
	Date        *time.Time               `json:"date"`
	DueDate     *time.Time               `json:"due_date"`
	// Installments > 1 splits the entry into that many monthly records.
	Installments *int `json:"installments" validate:"omitempty,min=1,max=60"`
}

type UpdateTransactionRequest struct {
	Type        *model.TransactionType   `json:"type" validate:"omitempty,oneof=INCOME EXPENSE"`
	Status      *model.TransactionStatus `json:"status" validate:"omitempty,oneof=PENDING PAID"`
	Description *string                  `json:"description" validate:"omitempty,min=2,max=255"`
	Amount      *decimal.Decimal         `json:"amount" validate:"omitempty,gt=0"`
	Category    *string                  `json:"category" validate:"omitempty,max=60"`
	Date        *time.Time               `json:"date"`
	DueDate     *time.Time               `json:"due_date"`
}

type TransactionListQuery struct {
	Type   string `form:"type"`
	Status string `form:"status"`
	From   string `form:"from"`
	To     string `form:"to"`
}

type FinancialSummary struct {
	TotalIncome    decimal.Decimal `json:"total_income"`
	TotalExpense   decimal.Decimal `json:"total_expense"`
	PendingIncome  decimal.Decimal `json:"pending_income"`
	PendingExpense decimal.Decimal `json:"pending_expense"`
	Balance        decimal.Decimal `json:"balance"`
}
