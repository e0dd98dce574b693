package service_test

import (
	"context"
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

func strptr(s string) *string { return &s }

func decptr(d decimal.Decimal) *decimal.Decimal { return &d }

func statusptr(s model.OrderStatus) *model.OrderStatus { return &s }

func ptypeptr(p model.PaymentType) *model.PaymentType { return &p }

// orderEnv wires an OrderService against the in-memory stubs, with one
// company and one client already seeded.
type orderEnv struct {
	svc          service.OrderService
	orders       *stubOrderRepo
	transactions *stubTransactionRepo
	products     *stubProductRepo
	services     *stubServiceRepo
	clients      *stubClientRepo
	companies    *stubCompanyRepo
	companyID    uuid.UUID
	clientID     uuid.UUID
}

func newOrderEnv(t *testing.T, plan model.Plan) *orderEnv {
	t.Helper()
	env := &orderEnv{
		orders:       newStubOrderRepo(),
		transactions: newStubTransactionRepo(),
		products:     newStubProductRepo(),
		services:     newStubServiceRepo(),
		clients:      newStubClientRepo(),
		companies:    newStubCompanyRepo(),
	}

	company := &model.Company{Name: "Oficina Teste", Plan: plan}
	require.NoError(t, env.companies.CreateTx(nil, company))
	env.companyID = company.ID

	client := &model.Client{Name: "Cliente Teste", CompanyID: company.ID}
	require.NoError(t, env.clients.Create(context.Background(), client))
	env.clientID = client.ID

	plans := service.NewPlanService(env.companies, env.clients, env.orders, newStubUserRepo())
	env.svc = service.NewOrderService(
		env.orders, env.transactions, env.products, env.services,
		env.clients, newStubReceiptRepo(), plans, nil,
	)
	return env
}

func (e *orderEnv) seedProduct(t *testing.T, price decimal.Decimal, stock int) uuid.UUID {
	t.Helper()
	p := &model.Product{Name: "Peca", Price: price, Stock: stock, CompanyID: e.companyID}
	require.NoError(t, e.products.Create(context.Background(), p))
	return p.ID
}

func (e *orderEnv) seedService(t *testing.T, price decimal.Decimal) uuid.UUID {
	t.Helper()
	s := &model.Service{Name: "Mao de obra", Price: price, CompanyID: e.companyID}
	require.NoError(t, e.services.Create(context.Background(), s))
	return s.ID
}

func TestOrderCreate(t *testing.T) {
	env := newOrderEnv(t, model.PlanPro)
	ctx := context.Background()

	o, err := env.svc.Create(ctx, env.companyID, dto.CreateOrderRequest{
		ClientID:         env.clientID.String(),
		Description:      strptr("Troca de oleo"),
		DisplacementCost: decptr(decimal.NewFromInt(10)),
	})
	require.NoError(t, err)

	assert.Equal(t, model.OrderOpen, o.Status)
	assert.Equal(t, 1, o.Number)
	assert.Equal(t, env.clientID, o.ClientID)
	assert.False(t, o.StartDate.IsZero())
	assert.True(t, o.DisplacementCost.Equal(decimal.NewFromInt(10)))
}

func TestOrderCreateInvalidClient(t *testing.T) {
	env := newOrderEnv(t, model.PlanPro)
	ctx := context.Background()

	_, err := env.svc.Create(ctx, env.companyID, dto.CreateOrderRequest{ClientID: uuid.NewString()})
	assert.ErrorIs(t, err, service.ErrInvalidClient)

	// A client belonging to another company is equally invalid.
	other := &model.Client{Name: "Alheio", CompanyID: uuid.New()}
	require.NoError(t, env.clients.Create(ctx, other))
	_, err = env.svc.Create(ctx, env.companyID, dto.CreateOrderRequest{ClientID: other.ID.String()})
	assert.ErrorIs(t, err, service.ErrInvalidClient)
}

func TestOrderCreateFreePlanLimit(t *testing.T) {
	env := newOrderEnv(t, model.PlanFree)
	ctx := context.Background()

	for i := 0; i < service.FreeMaxOrders; i++ {
		_, err := env.svc.Create(ctx, env.companyID, dto.CreateOrderRequest{ClientID: env.clientID.String()})
		require.NoError(t, err)
	}

	_, err := env.svc.Create(ctx, env.companyID, dto.CreateOrderRequest{ClientID: env.clientID.String()})
	var limitErr *service.PlanLimitError
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, "FREE", limitErr.Plan)
	assert.Equal(t, int64(service.FreeMaxOrders), limitErr.Limit)
	assert.Contains(t, limitErr.Error(), "Limite do plano FREE atingido")
}

func TestOrderCompleteDerivesTransaction(t *testing.T) {
	env := newOrderEnv(t, model.PlanPro)
	ctx := context.Background()

	o, err := env.svc.Create(ctx, env.companyID, dto.CreateOrderRequest{
		ClientID:         env.clientID.String(),
		DisplacementCost: decptr(decimal.NewFromInt(10)),
	})
	require.NoError(t, err)

	productID := env.seedProduct(t, decimal.NewFromInt(25), 10)
	serviceID := env.seedService(t, decimal.NewFromInt(50))

	_, err = env.svc.AddItem(ctx, env.companyID, o.ID, dto.AddOrderItemRequest{
		ProductID: strptr(productID.String()),
		Quantity:  decimal.NewFromInt(2),
		UnitPrice: decimal.NewFromInt(25),
	})
	require.NoError(t, err)
	_, err = env.svc.AddItem(ctx, env.companyID, o.ID, dto.AddOrderItemRequest{
		ServiceID: strptr(serviceID.String()),
		Quantity:  decimal.NewFromInt(1),
		UnitPrice: decimal.NewFromInt(50),
	})
	require.NoError(t, err)

	updated, err := env.svc.Update(ctx, env.companyID, o.ID, dto.UpdateOrderRequest{
		Status:        statusptr(model.OrderCompleted),
		PaymentMethod: strptr("Pix"),
		PaymentType:   ptypeptr(model.PaymentCash),
	})
	require.NoError(t, err)

	// 2*25 + 1*50 + 10 displacement
	assert.True(t, updated.Total.Equal(decimal.NewFromInt(110)), "got %s", updated.Total)
	assert.Equal(t, model.OrderCompleted, updated.Status)

	txs, err := env.transactions.FindByOrderTx(nil, o.ID)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, model.TransactionIncome, txs[0].Type)
	assert.Equal(t, model.TransactionPaid, txs[0].Status)
	assert.True(t, txs[0].Amount.Equal(decimal.NewFromInt(110)))
	assert.NotNil(t, txs[0].PaidAt)
}

func TestOrderCompleteEndDateOptional(t *testing.T) {
	env := newOrderEnv(t, model.PlanPro)
	ctx := context.Background()

	o, err := env.svc.Create(ctx, env.companyID, dto.CreateOrderRequest{ClientID: env.clientID.String()})
	require.NoError(t, err)

	// Completion without an end date leaves it unset.
	updated, err := env.svc.Update(ctx, env.companyID, o.ID, dto.UpdateOrderRequest{
		Status:        statusptr(model.OrderCompleted),
		PaymentMethod: strptr("Pix"),
		PaymentType:   ptypeptr(model.PaymentCash),
	})
	require.NoError(t, err)
	assert.Nil(t, updated.EndDate)

	// A supplied end date is stored as-is.
	end := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	updated, err = env.svc.Update(ctx, env.companyID, o.ID, dto.UpdateOrderRequest{
		EndDate: timeptr(end),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.EndDate)
	assert.Equal(t, end, *updated.EndDate)
}

func TestOrderCompleteRequiresPayment(t *testing.T) {
	env := newOrderEnv(t, model.PlanPro)
	ctx := context.Background()

	o, err := env.svc.Create(ctx, env.companyID, dto.CreateOrderRequest{ClientID: env.clientID.String()})
	require.NoError(t, err)

	_, err = env.svc.Update(ctx, env.companyID, o.ID, dto.UpdateOrderRequest{
		Status: statusptr(model.OrderCompleted),
	})
	assert.ErrorIs(t, err, service.ErrPaymentRequired)

	// Method alone is not enough either.
	_, err = env.svc.Update(ctx, env.companyID, o.ID, dto.UpdateOrderRequest{
		Status:        statusptr(model.OrderCompleted),
		PaymentMethod: strptr("Pix"),
	})
	assert.ErrorIs(t, err, service.ErrPaymentRequired)
}

func completeOrder(t *testing.T, env *orderEnv, orderID uuid.UUID) *model.ServiceOrder {
	t.Helper()
	o, err := env.svc.Update(context.Background(), env.companyID, orderID, dto.UpdateOrderRequest{
		Status:        statusptr(model.OrderCompleted),
		PaymentMethod: strptr("Dinheiro"),
		PaymentType:   ptypeptr(model.PaymentCash),
	})
	require.NoError(t, err)
	return o
}

func TestOrderCompleteIsIdempotent(t *testing.T) {
	env := newOrderEnv(t, model.PlanPro)
	ctx := context.Background()

	o, err := env.svc.Create(ctx, env.companyID, dto.CreateOrderRequest{ClientID: env.clientID.String()})
	require.NoError(t, err)

	completeOrder(t, env, o.ID)
	completeOrder(t, env, o.ID)

	txs, err := env.transactions.FindByOrderTx(nil, o.ID)
	require.NoError(t, err)
	assert.Len(t, txs, 1)
}

func TestOrderReopenReversesCompletion(t *testing.T) {
	env := newOrderEnv(t, model.PlanPro)
	ctx := context.Background()

	o, err := env.svc.Create(ctx, env.companyID, dto.CreateOrderRequest{ClientID: env.clientID.String()})
	require.NoError(t, err)
	completeOrder(t, env, o.ID)

	reopened, err := env.svc.Update(ctx, env.companyID, o.ID, dto.UpdateOrderRequest{
		Status: statusptr(model.OrderOpen),
	})
	require.NoError(t, err)

	assert.Equal(t, model.OrderOpen, reopened.Status)
	assert.Nil(t, reopened.PaymentMethod)
	assert.Nil(t, reopened.PaymentType)
	assert.Nil(t, reopened.EndDate)

	txs, err := env.transactions.FindByOrderTx(nil, o.ID)
	require.NoError(t, err)
	assert.Empty(t, txs)

	// A fresh completion derives the transaction again.
	completeOrder(t, env, o.ID)
	txs, err = env.transactions.FindByOrderTx(nil, o.ID)
	require.NoError(t, err)
	assert.Len(t, txs, 1)
}

func TestOrderAddItemStockRoundTrip(t *testing.T) {
	env := newOrderEnv(t, model.PlanPro)
	ctx := context.Background()

	o, err := env.svc.Create(ctx, env.companyID, dto.CreateOrderRequest{ClientID: env.clientID.String()})
	require.NoError(t, err)
	productID := env.seedProduct(t, decimal.NewFromInt(20), 10)

	item, err := env.svc.AddItem(ctx, env.companyID, o.ID, dto.AddOrderItemRequest{
		ProductID: strptr(productID.String()),
		Quantity:  decimal.NewFromInt(3),
		UnitPrice: decimal.NewFromInt(20),
	})
	require.NoError(t, err)
	assert.True(t, item.TotalPrice.Equal(decimal.NewFromInt(60)))

	p, err := env.products.FindByID(ctx, env.companyID, productID)
	require.NoError(t, err)
	assert.Equal(t, 7, p.Stock)

	require.NoError(t, env.svc.RemoveItem(ctx, env.companyID, o.ID, item.ID))
	p, err = env.products.FindByID(ctx, env.companyID, productID)
	require.NoError(t, err)
	assert.Equal(t, 10, p.Stock)
}

func TestOrderAddItemAllowsNegativeStock(t *testing.T) {
	env := newOrderEnv(t, model.PlanPro)
	ctx := context.Background()

	o, err := env.svc.Create(ctx, env.companyID, dto.CreateOrderRequest{ClientID: env.clientID.String()})
	require.NoError(t, err)
	productID := env.seedProduct(t, decimal.NewFromInt(20), 2)

	_, err = env.svc.AddItem(ctx, env.companyID, o.ID, dto.AddOrderItemRequest{
		ProductID: strptr(productID.String()),
		Quantity:  decimal.NewFromInt(5),
		UnitPrice: decimal.NewFromInt(20),
	})
	require.NoError(t, err)

	p, err := env.products.FindByID(ctx, env.companyID, productID)
	require.NoError(t, err)
	assert.Equal(t, -3, p.Stock)
}

func TestOrderAddItemTargetValidation(t *testing.T) {
	env := newOrderEnv(t, model.PlanPro)
	ctx := context.Background()

	o, err := env.svc.Create(ctx, env.companyID, dto.CreateOrderRequest{ClientID: env.clientID.String()})
	require.NoError(t, err)

	_, err = env.svc.AddItem(ctx, env.companyID, o.ID, dto.AddOrderItemRequest{
		Quantity:  decimal.NewFromInt(1),
		UnitPrice: decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, service.ErrInvalidItemTarget)

	productID := env.seedProduct(t, decimal.NewFromInt(20), 5)
	serviceID := env.seedService(t, decimal.NewFromInt(50))
	_, err = env.svc.AddItem(ctx, env.companyID, o.ID, dto.AddOrderItemRequest{
		ProductID: strptr(productID.String()),
		ServiceID: strptr(serviceID.String()),
		Quantity:  decimal.NewFromInt(1),
		UnitPrice: decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, service.ErrInvalidItemTarget)
}

func TestOrderCrossTenantIsNotFound(t *testing.T) {
	env := newOrderEnv(t, model.PlanPro)
	ctx := context.Background()

	o, err := env.svc.Create(ctx, env.companyID, dto.CreateOrderRequest{ClientID: env.clientID.String()})
	require.NoError(t, err)

	otherCompany := uuid.New()
	_, err = env.svc.Get(ctx, otherCompany, o.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, err = env.svc.Update(ctx, otherCompany, o.ID, dto.UpdateOrderRequest{Description: strptr("x")})
	assert.ErrorIs(t, err, service.ErrNotFound)

	assert.ErrorIs(t, env.svc.Delete(ctx, otherCompany, o.ID), service.ErrNotFound)
}

func TestOrderDeleteRestoresStockAndLedger(t *testing.T) {
	env := newOrderEnv(t, model.PlanPro)
	ctx := context.Background()

	o, err := env.svc.Create(ctx, env.companyID, dto.CreateOrderRequest{ClientID: env.clientID.String()})
	require.NoError(t, err)
	productID := env.seedProduct(t, decimal.NewFromInt(30), 8)

	_, err = env.svc.AddItem(ctx, env.companyID, o.ID, dto.AddOrderItemRequest{
		ProductID: strptr(productID.String()),
		Quantity:  decimal.NewFromInt(2),
		UnitPrice: decimal.NewFromInt(30),
	})
	require.NoError(t, err)
	completeOrder(t, env, o.ID)

	require.NoError(t, env.svc.Delete(ctx, env.companyID, o.ID))

	_, err = env.svc.Get(ctx, env.companyID, o.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)

	p, err := env.products.FindByID(ctx, env.companyID, productID)
	require.NoError(t, err)
	assert.Equal(t, 8, p.Stock)

	txs, err := env.transactions.FindByOrderTx(nil, o.ID)
	require.NoError(t, err)
	assert.Empty(t, txs)
}
