package service

import (
	"fmt"
	"time"

	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gutoberny/BernyFlow/internal/dto"
	"github.com/gutoberny/BernyFlow/internal/model"
	"github.com/gutoberny/BernyFlow/internal/repository"
)

type FinancialService interface {
	Create(ctx context.Context, companyID uuid.UUID, req dto.CreateTransactionRequest) ([]model.FinancialTransaction, error)
	Get(ctx context.Context, companyID, id uuid.UUID) (*model.FinancialTransaction, error)
	List(ctx context.Context, companyID uuid.UUID, filter dto.TransactionListQuery) ([]model.FinancialTransaction, error)
	Update(ctx context.Context, companyID, id uuid.UUID, req dto.UpdateTransactionRequest) (*model.FinancialTransaction, error)
	Delete(ctx context.Context, companyID, id uuid.UUID) error
	Summary(ctx context.Context, companyID uuid.UUID) (*dto.FinancialSummary, error)
}

type financialService struct {
	transactions repository.TransactionRepository
	now          func() time.Time
}

func NewFinancialService(transactions repository.TransactionRepository) FinancialService {
	return &financialService{transactions: transactions, now: time.Now}
}

// Create inserts a manual ledger entry. With installments > 1 the amount is
// repeated (not divided) across N monthly records, each one month after the
// previous, descriptions suffixed "(i/N)". The batch insert is atomic.
func (s *financialService) Create(ctx context.Context, companyID uuid.UUID, req dto.CreateTransactionRequest) ([]model.FinancialTransaction, error) {
	status := model.TransactionPending
	if req.Status != nil {
		status = *req.Status
	}
	date := s.now()
	if req.Date != nil {
		date = *req.Date
	}

	base := model.FinancialTransaction{
		Type:        req.Type,
		Status:      status,
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		Date:        date,
		DueDate:     req.DueDate,
		CompanyID:   companyID,
	}
	if status == model.TransactionPaid {
		paid := s.now()
		base.PaidAt = &paid
	}

	n := 1
	if req.Installments != nil {
		n = *req.Installments
	}
	if n <= 1 {
		if err := s.transactions.Create(ctx, &base); err != nil {
			return nil, err
		}
		return []model.FinancialTransaction{base}, nil
	}

	ts := make([]model.FinancialTransaction, 0, n)
	for i := 0; i < n; i++ {
		t := base
		t.Description = fmt.Sprintf("%s (%d/%d)", req.Description, i+1, n)
		t.Date = date.AddDate(0, i, 0)
		if req.DueDate != nil {
			d := req.DueDate.AddDate(0, i, 0)
			t.DueDate = &d
		}
		ts = append(ts, t)
	}
	if err := s.transactions.CreateBatch(ctx, ts); err != nil {
		return nil, err
	}
	return ts, nil
}

func (s *financialService) Get(ctx context.Context, companyID, id uuid.UUID) (*model.FinancialTransaction, error) {
	t, err := s.transactions.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, asNotFound(err)
	}
	return t, nil
}

func (s *financialService) List(ctx context.Context, companyID uuid.UUID, filter dto.TransactionListQuery) ([]model.FinancialTransaction, error) {
	return s.transactions.List(ctx, companyID, filter)
}

// Update mutates a ledger entry. Entries linked to a service order only
// accept status changes; supplying any other field on one is rejected.
// Status changes derive PaidAt: PAID stamps now, PENDING clears it.
func (s *financialService) Update(ctx context.Context, companyID, id uuid.UUID, req dto.UpdateTransactionRequest) (*model.FinancialTransaction, error) {
	t, err := s.transactions.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, asNotFound(err)
	}

	if t.ServiceOrderID != nil {
		if req.Type != nil || req.Description != nil || req.Amount != nil ||
			req.Category != nil || req.Date != nil || req.DueDate != nil {
			return nil, ErrImmutableTransaction
		}
	}

	if req.Type != nil {
		t.Type = *req.Type
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Amount != nil {
		t.Amount = *req.Amount
	}
	if req.Category != nil {
		t.Category = req.Category
	}
	if req.Date != nil {
		t.Date = *req.Date
	}
	if req.DueDate != nil {
		t.DueDate = req.DueDate
	}
	if req.Status != nil && *req.Status != t.Status {
		t.Status = *req.Status
		switch t.Status {
		case model.TransactionPaid:
			paid := s.now()
			t.PaidAt = &paid
		case model.TransactionPending:
			t.PaidAt = nil
		}
	}

	if err := s.transactions.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *financialService) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	t, err := s.transactions.FindByID(ctx, companyID, id)
	if err != nil {
		return asNotFound(err)
	}
	if t.ServiceOrderID != nil {
		return ErrLinkedTransaction
	}
	return asNotFound(s.transactions.Delete(ctx, companyID, id))
}

// Summary aggregates the company ledger. Absent buckets default to zero, so
// a fresh company reports an all-zero summary rather than nulls.
func (s *financialService) Summary(ctx context.Context, companyID uuid.UUID) (*dto.FinancialSummary, error) {
	sums, err := s.transactions.SumByTypeStatus(ctx, companyID)
	if err != nil {
		return nil, err
	}
	get := func(key string) decimal.Decimal {
		if v, ok := sums[key]; ok {
			return v
		}
		return decimal.Zero
	}
	income := get("INCOME|PAID")
	expense := get("EXPENSE|PAID")
	return &dto.FinancialSummary{
		TotalIncome:    income,
		TotalExpense:   expense,
		PendingIncome:  get("INCOME|PENDING"),
		PendingExpense: get("EXPENSE|PENDING"),
		Balance:        income.Sub(expense),
	}, nil
}
