package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gutoberny/BernyFlow/internal/dto"
	"github.com/gutoberny/BernyFlow/internal/model"
	"github.com/gutoberny/BernyFlow/internal/service"
)

func timeptr(t time.Time) *time.Time { return &t }

func txstatusptr(s model.TransactionStatus) *model.TransactionStatus { return &s }

func txtypeptr(tt model.TransactionType) *model.TransactionType { return &tt }

func newFinancialEnv() (service.FinancialService, *stubTransactionRepo, uuid.UUID) {
	repo := newStubTransactionRepo()
	return service.NewFinancialService(repo), repo, uuid.New()
}

func TestFinancialCreateDefaultsPending(t *testing.T) {
	svc, _, companyID := newFinancialEnv()

	ts, err := svc.Create(context.Background(), companyID, dto.CreateTransactionRequest{
		Type:        model.TransactionExpense,
		Description: "Aluguel",
		Amount:      decimal.NewFromInt(1200),
	})
	require.NoError(t, err)
	require.Len(t, ts, 1)

	assert.Equal(t, model.TransactionPending, ts[0].Status)
	assert.Nil(t, ts[0].PaidAt)
	assert.Equal(t, companyID, ts[0].CompanyID)
	assert.False(t, ts[0].Date.IsZero())
}

func TestFinancialCreatePaidStampsPaidAt(t *testing.T) {
	svc, _, companyID := newFinancialEnv()

	ts, err := svc.Create(context.Background(), companyID, dto.CreateTransactionRequest{
		Type:        model.TransactionIncome,
		Status:      txstatusptr(model.TransactionPaid),
		Description: "Venda avulsa",
		Amount:      decimal.NewFromInt(80),
	})
	require.NoError(t, err)
	require.Len(t, ts, 1)
	assert.NotNil(t, ts[0].PaidAt)
}

func TestFinancialCreateInstallments(t *testing.T) {
	svc, repo, companyID := newFinancialEnv()
	n := 3
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	due := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)

	ts, err := svc.Create(context.Background(), companyID, dto.CreateTransactionRequest{
		Type:         model.TransactionExpense,
		Description:  "Notebook",
		Amount:       decimal.NewFromInt(300),
		Date:         timeptr(date),
		DueDate:      timeptr(due),
		Installments: &n,
	})
	require.NoError(t, err)
	require.Len(t, ts, 3)

	for i, tx := range ts {
		// The full amount repeats on every installment; it is not divided.
		assert.True(t, tx.Amount.Equal(decimal.NewFromInt(300)), "installment %d: got %s", i+1, tx.Amount)
		assert.Equal(t, fmt.Sprintf("Notebook (%d/3)", i+1), tx.Description)
		assert.Equal(t, date.AddDate(0, i, 0), tx.Date)
		if assert.NotNil(t, tx.DueDate) {
			assert.Equal(t, due.AddDate(0, i, 0), *tx.DueDate)
		}
	}

	stored, err := repo.List(context.Background(), companyID, dto.TransactionListQuery{})
	require.NoError(t, err)
	assert.Len(t, stored, 3)
}

func TestFinancialCreateSingleInstallmentIsPlain(t *testing.T) {
	svc, _, companyID := newFinancialEnv()
	n := 1

	ts, err := svc.Create(context.Background(), companyID, dto.CreateTransactionRequest{
		Type:         model.TransactionExpense,
		Description:  "Pneu",
		Amount:       decimal.NewFromInt(450),
		Installments: &n,
	})
	require.NoError(t, err)
	require.Len(t, ts, 1)
	assert.Equal(t, "Pneu", ts[0].Description)
}

func seedTransaction(t *testing.T, repo *stubTransactionRepo, tx model.FinancialTransaction) uuid.UUID {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &tx))
	return tx.ID
}

func TestFinancialUpdateLinkedIsImmutable(t *testing.T) {
	svc, repo, companyID := newFinancialEnv()
	orderID := uuid.New()
	id := seedTransaction(t, repo, model.FinancialTransaction{
		Type:           model.TransactionIncome,
		Status:         model.TransactionPending,
		Description:    "Receita OS #3 - Pix (INSTALLMENT)",
		Amount:         decimal.NewFromInt(500),
		Date:           time.Now(),
		ServiceOrderID: &orderID,
		CompanyID:      companyID,
	})

	_, err := svc.Update(context.Background(), companyID, id, dto.UpdateTransactionRequest{
		Description: strptr("Outra coisa"),
	})
	assert.ErrorIs(t, err, service.ErrImmutableTransaction)

	amount := decimal.NewFromInt(999)
	_, err = svc.Update(context.Background(), companyID, id, dto.UpdateTransactionRequest{
		Amount: &amount,
	})
	assert.ErrorIs(t, err, service.ErrImmutableTransaction)

	_, err = svc.Update(context.Background(), companyID, id, dto.UpdateTransactionRequest{
		Type: txtypeptr(model.TransactionExpense),
	})
	assert.ErrorIs(t, err, service.ErrImmutableTransaction)

	// Status is the one field a linked entry accepts.
	updated, err := svc.Update(context.Background(), companyID, id, dto.UpdateTransactionRequest{
		Status: txstatusptr(model.TransactionPaid),
	})
	require.NoError(t, err)
	assert.Equal(t, model.TransactionPaid, updated.Status)
	assert.NotNil(t, updated.PaidAt)
}

func TestFinancialUpdateManualAllFieldsMutable(t *testing.T) {
	svc, repo, companyID := newFinancialEnv()
	id := seedTransaction(t, repo, model.FinancialTransaction{
		Type:        model.TransactionExpense,
		Status:      model.TransactionPending,
		Description: "Estorno",
		Amount:      decimal.NewFromInt(150),
		Date:        time.Now(),
		CompanyID:   companyID,
	})

	// An entry booked on the wrong side of the ledger can be flipped.
	amount := decimal.NewFromInt(180)
	updated, err := svc.Update(context.Background(), companyID, id, dto.UpdateTransactionRequest{
		Type:        txtypeptr(model.TransactionIncome),
		Description: strptr("Estorno recebido"),
		Amount:      &amount,
	})
	require.NoError(t, err)
	assert.Equal(t, model.TransactionIncome, updated.Type)
	assert.Equal(t, "Estorno recebido", updated.Description)
	assert.True(t, updated.Amount.Equal(amount))
}

func TestFinancialUpdateStatusDerivesPaidAt(t *testing.T) {
	svc, repo, companyID := newFinancialEnv()
	id := seedTransaction(t, repo, model.FinancialTransaction{
		Type:        model.TransactionIncome,
		Status:      model.TransactionPending,
		Description: "Consultoria",
		Amount:      decimal.NewFromInt(100),
		Date:        time.Now(),
		CompanyID:   companyID,
	})

	updated, err := svc.Update(context.Background(), companyID, id, dto.UpdateTransactionRequest{
		Status: txstatusptr(model.TransactionPaid),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.PaidAt)

	updated, err = svc.Update(context.Background(), companyID, id, dto.UpdateTransactionRequest{
		Status: txstatusptr(model.TransactionPending),
	})
	require.NoError(t, err)
	assert.Nil(t, updated.PaidAt)
}

func TestFinancialDelete(t *testing.T) {
	svc, repo, companyID := newFinancialEnv()
	orderID := uuid.New()

	linked := seedTransaction(t, repo, model.FinancialTransaction{
		Type:           model.TransactionIncome,
		Status:         model.TransactionPaid,
		Description:    "Receita OS #1 - Pix (CASH)",
		Amount:         decimal.NewFromInt(200),
		Date:           time.Now(),
		ServiceOrderID: &orderID,
		CompanyID:      companyID,
	})
	manual := seedTransaction(t, repo, model.FinancialTransaction{
		Type:        model.TransactionExpense,
		Status:      model.TransactionPending,
		Description: "Frete",
		Amount:      decimal.NewFromInt(30),
		Date:        time.Now(),
		CompanyID:   companyID,
	})

	assert.ErrorIs(t, svc.Delete(context.Background(), companyID, linked), service.ErrLinkedTransaction)
	assert.NoError(t, svc.Delete(context.Background(), companyID, manual))
	assert.ErrorIs(t, svc.Delete(context.Background(), companyID, manual), service.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), uuid.New(), linked), service.ErrNotFound)
}

func TestFinancialSummary(t *testing.T) {
	svc, repo, companyID := newFinancialEnv()
	now := time.Now()

	seed := func(typ model.TransactionType, status model.TransactionStatus, amount int64) {
		seedTransaction(t, repo, model.FinancialTransaction{
			Type: typ, Status: status,
			Description: "seed", Amount: decimal.NewFromInt(amount),
			Date: now, CompanyID: companyID,
		})
	}
	seed(model.TransactionIncome, model.TransactionPaid, 60)
	seed(model.TransactionIncome, model.TransactionPaid, 40)
	seed(model.TransactionExpense, model.TransactionPaid, 40)
	seed(model.TransactionIncome, model.TransactionPending, 20)

	sum, err := svc.Summary(context.Background(), companyID)
	require.NoError(t, err)

	assert.True(t, sum.TotalIncome.Equal(decimal.NewFromInt(100)), "income %s", sum.TotalIncome)
	assert.True(t, sum.TotalExpense.Equal(decimal.NewFromInt(40)))
	assert.True(t, sum.PendingIncome.Equal(decimal.NewFromInt(20)))
	assert.True(t, sum.PendingExpense.Equal(decimal.Zero))
	assert.True(t, sum.Balance.Equal(decimal.NewFromInt(60)), "balance %s", sum.Balance)
}

func TestFinancialSummaryEmptyCompany(t *testing.T) {
	svc, _, companyID := newFinancialEnv()

	sum, err := svc.Summary(context.Background(), companyID)
	require.NoError(t, err)
	assert.True(t, sum.TotalIncome.Equal(decimal.Zero))
	assert.True(t, sum.TotalExpense.Equal(decimal.Zero))
	assert.True(t, sum.PendingIncome.Equal(decimal.Zero))
	assert.True(t, sum.PendingExpense.Equal(decimal.Zero))
	assert.True(t, sum.Balance.Equal(decimal.Zero))
}
