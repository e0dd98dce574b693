package service_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/gutoberny/BernyFlow/internal/dto"
	"github.com/gutoberny/BernyFlow/internal/model"
	"github.com/gutoberny/BernyFlow/internal/repository"
)

// ── In-memory stubs ───────────────────────────────────────────────────────────
// All stubs return gorm.ErrRecordNotFound for missing or cross-tenant records
// so the services translate them to their not-found sentinel.

type stubCompanyRepo struct {
	companies map[uuid.UUID]*model.Company
}

func newStubCompanyRepo() *stubCompanyRepo {
	return &stubCompanyRepo{companies: make(map[uuid.UUID]*model.Company)}
}

func (r *stubCompanyRepo) CreateTx(_ *gorm.DB, c *model.Company) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.companies[c.ID] = c
	return nil
}

func (r *stubCompanyRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Company, error) {
	c, ok := r.companies[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCompanyRepo) Update(_ context.Context, c *model.Company) error {
	r.companies[c.ID] = c
	return nil
}

func (r *stubCompanyRepo) UpdatePlan(_ context.Context, id uuid.UUID, plan model.Plan) error {
	c, ok := r.companies[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Plan = plan
	return nil
}

func (r *stubCompanyRepo) DB() *gorm.DB { return nil }

var _ repository.CompanyRepository = (*stubCompanyRepo)(nil)

type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) CreateTx(_ *gorm.DB, u *model.User) error {
	return r.Create(context.Background(), u)
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, companyID, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok || u.CompanyID != companyID {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUserRepo) ListByCompany(_ context.Context, companyID uuid.UUID) ([]model.User, error) {
	var out []model.User
	for _, u := range r.users {
		if u.CompanyID == companyID {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) CountByCompany(_ context.Context, companyID uuid.UUID) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.CompanyID == companyID {
			n++
		}
	}
	return n, nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

type stubClientRepo struct {
	clients map[uuid.UUID]*model.Client
}

func newStubClientRepo() *stubClientRepo {
	return &stubClientRepo{clients: make(map[uuid.UUID]*model.Client)}
}

func (r *stubClientRepo) Create(_ context.Context, c *model.Client) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.clients[c.ID] = c
	return nil
}

func (r *stubClientRepo) FindByID(_ context.Context, companyID, id uuid.UUID) (*model.Client, error) {
	c, ok := r.clients[id]
	if !ok || c.CompanyID != companyID {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubClientRepo) List(_ context.Context, companyID uuid.UUID, _ string) ([]model.Client, error) {
	var out []model.Client
	for _, c := range r.clients {
		if c.CompanyID == companyID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubClientRepo) Update(_ context.Context, c *model.Client) error {
	r.clients[c.ID] = c
	return nil
}

func (r *stubClientRepo) Delete(_ context.Context, companyID, id uuid.UUID) error {
	c, ok := r.clients[id]
	if !ok || c.CompanyID != companyID {
		return gorm.ErrRecordNotFound
	}
	delete(r.clients, id)
	return nil
}

func (r *stubClientRepo) CountByCompany(_ context.Context, companyID uuid.UUID) (int64, error) {
	var n int64
	for _, c := range r.clients {
		if c.CompanyID == companyID {
			n++
		}
	}
	return n, nil
}

var _ repository.ClientRepository = (*stubClientRepo)(nil)

type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, companyID, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok || p.CompanyID != companyID {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) List(_ context.Context, companyID uuid.UUID, _ string) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if p.CompanyID == companyID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, companyID, id uuid.UUID) error {
	p, ok := r.products[id]
	if !ok || p.CompanyID != companyID {
		return gorm.ErrRecordNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) AdjustStockTx(_ *gorm.DB, companyID, id uuid.UUID, delta int) error {
	p, ok := r.products[id]
	if !ok || p.CompanyID != companyID {
		return gorm.ErrRecordNotFound
	}
	p.Stock += delta
	return nil
}

var _ repository.ProductRepository = (*stubProductRepo)(nil)

type stubServiceRepo struct {
	services map[uuid.UUID]*model.Service
}

func newStubServiceRepo() *stubServiceRepo {
	return &stubServiceRepo{services: make(map[uuid.UUID]*model.Service)}
}

func (r *stubServiceRepo) Create(_ context.Context, s *model.Service) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.services[s.ID] = s
	return nil
}

func (r *stubServiceRepo) FindByID(_ context.Context, companyID, id uuid.UUID) (*model.Service, error) {
	s, ok := r.services[id]
	if !ok || s.CompanyID != companyID {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubServiceRepo) List(_ context.Context, companyID uuid.UUID, _ string) ([]model.Service, error) {
	var out []model.Service
	for _, s := range r.services {
		if s.CompanyID == companyID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *stubServiceRepo) Update(_ context.Context, s *model.Service) error {
	r.services[s.ID] = s
	return nil
}

func (r *stubServiceRepo) Delete(_ context.Context, companyID, id uuid.UUID) error {
	s, ok := r.services[id]
	if !ok || s.CompanyID != companyID {
		return gorm.ErrRecordNotFound
	}
	delete(r.services, id)
	return nil
}

var _ repository.ServiceRepository = (*stubServiceRepo)(nil)

type stubOrderRepo struct {
	orders map[uuid.UUID]*model.ServiceOrder
	items  map[uuid.UUID]*model.ServiceOrderItem
	seq    int
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{
		orders: make(map[uuid.UUID]*model.ServiceOrder),
		items:  make(map[uuid.UUID]*model.ServiceOrderItem),
	}
}

func (r *stubOrderRepo) Create(_ context.Context, o *model.ServiceOrder) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	r.seq++
	o.Number = r.seq
	r.orders[o.ID] = o
	return nil
}

// FindByID returns a copy, matching gorm: mutations on the result are not
// visible until an explicit Update.
func (r *stubOrderRepo) FindByID(_ context.Context, companyID, id uuid.UUID) (*model.ServiceOrder, error) {
	stored, ok := r.orders[id]
	if !ok || stored.CompanyID != companyID {
		return nil, gorm.ErrRecordNotFound
	}
	o := *stored
	o.Items = nil
	for _, it := range r.items {
		if it.ServiceOrderID == o.ID {
			o.Items = append(o.Items, *it)
		}
	}
	return &o, nil
}

func (r *stubOrderRepo) List(_ context.Context, companyID uuid.UUID, _ dto.OrderListQuery) ([]model.ServiceOrder, error) {
	var out []model.ServiceOrder
	for _, o := range r.orders {
		if o.CompanyID == companyID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *stubOrderRepo) UpdateTx(_ *gorm.DB, o *model.ServiceOrder) error {
	r.orders[o.ID] = o
	return nil
}

func (r *stubOrderRepo) Update(_ context.Context, o *model.ServiceOrder) error {
	r.orders[o.ID] = o
	return nil
}

func (r *stubOrderRepo) Delete(_ context.Context, companyID, id uuid.UUID) error {
	o, ok := r.orders[id]
	if !ok || o.CompanyID != companyID {
		return gorm.ErrRecordNotFound
	}
	delete(r.orders, id)
	return nil
}

func (r *stubOrderRepo) DeleteTx(_ *gorm.DB, companyID, id uuid.UUID) error {
	return r.Delete(context.Background(), companyID, id)
}

func (r *stubOrderRepo) CountByCompany(_ context.Context, companyID uuid.UUID) (int64, error) {
	var n int64
	for _, o := range r.orders {
		if o.CompanyID == companyID {
			n++
		}
	}
	return n, nil
}

func (r *stubOrderRepo) CreateItemTx(_ *gorm.DB, item *model.ServiceOrderItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	r.items[item.ID] = item
	return nil
}

func (r *stubOrderRepo) FindItem(_ context.Context, companyID, orderID, itemID uuid.UUID) (*model.ServiceOrderItem, error) {
	item, ok := r.items[itemID]
	if !ok || item.ServiceOrderID != orderID {
		return nil, gorm.ErrRecordNotFound
	}
	o, ok := r.orders[orderID]
	if !ok || o.CompanyID != companyID {
		return nil, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (r *stubOrderRepo) DeleteItemTx(_ *gorm.DB, itemID uuid.UUID) error {
	delete(r.items, itemID)
	return nil
}

func (r *stubOrderRepo) ListItemsTx(_ *gorm.DB, orderID uuid.UUID) ([]model.ServiceOrderItem, error) {
	var out []model.ServiceOrderItem
	for _, it := range r.items {
		if it.ServiceOrderID == orderID {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (r *stubOrderRepo) DB() *gorm.DB { return nil }

var _ repository.OrderRepository = (*stubOrderRepo)(nil)

type stubTransactionRepo struct {
	transactions map[uuid.UUID]*model.FinancialTransaction
}

func newStubTransactionRepo() *stubTransactionRepo {
	return &stubTransactionRepo{transactions: make(map[uuid.UUID]*model.FinancialTransaction)}
}

func (r *stubTransactionRepo) Create(_ context.Context, t *model.FinancialTransaction) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	r.transactions[t.ID] = t
	return nil
}

func (r *stubTransactionRepo) CreateTx(_ *gorm.DB, t *model.FinancialTransaction) error {
	return r.Create(context.Background(), t)
}

func (r *stubTransactionRepo) CreateBatch(_ context.Context, ts []model.FinancialTransaction) error {
	for i := range ts {
		if ts[i].ID == uuid.Nil {
			ts[i].ID = uuid.New()
		}
		t := ts[i]
		r.transactions[t.ID] = &t
	}
	return nil
}

func (r *stubTransactionRepo) FindByID(_ context.Context, companyID, id uuid.UUID) (*model.FinancialTransaction, error) {
	stored, ok := r.transactions[id]
	if !ok || stored.CompanyID != companyID {
		return nil, gorm.ErrRecordNotFound
	}
	t := *stored
	return &t, nil
}

func (r *stubTransactionRepo) FindByOrderTx(_ *gorm.DB, orderID uuid.UUID) ([]model.FinancialTransaction, error) {
	var out []model.FinancialTransaction
	for _, t := range r.transactions {
		if t.ServiceOrderID != nil && *t.ServiceOrderID == orderID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *stubTransactionRepo) DeleteByOrderTx(_ *gorm.DB, orderID uuid.UUID) error {
	for id, t := range r.transactions {
		if t.ServiceOrderID != nil && *t.ServiceOrderID == orderID {
			delete(r.transactions, id)
		}
	}
	return nil
}

func (r *stubTransactionRepo) Update(_ context.Context, t *model.FinancialTransaction) error {
	r.transactions[t.ID] = t
	return nil
}

func (r *stubTransactionRepo) Delete(_ context.Context, companyID, id uuid.UUID) error {
	t, ok := r.transactions[id]
	if !ok || t.CompanyID != companyID {
		return gorm.ErrRecordNotFound
	}
	delete(r.transactions, id)
	return nil
}

func (r *stubTransactionRepo) List(_ context.Context, companyID uuid.UUID, filter dto.TransactionListQuery) ([]model.FinancialTransaction, error) {
	var out []model.FinancialTransaction
	for _, t := range r.transactions {
		if t.CompanyID != companyID {
			continue
		}
		if filter.Type != "" && string(t.Type) != filter.Type {
			continue
		}
		if filter.Status != "" && string(t.Status) != filter.Status {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (r *stubTransactionRepo) SumByTypeStatus(_ context.Context, companyID uuid.UUID) (map[string]decimal.Decimal, error) {
	sums := make(map[string]decimal.Decimal)
	for _, t := range r.transactions {
		if t.CompanyID != companyID {
			continue
		}
		key := string(t.Type) + "|" + string(t.Status)
		sums[key] = sums[key].Add(t.Amount)
	}
	return sums, nil
}

func (r *stubTransactionRepo) DB() *gorm.DB { return nil }

var _ repository.TransactionRepository = (*stubTransactionRepo)(nil)

type stubReceiptRepo struct {
	receipts map[uuid.UUID]*model.Receipt
}

func newStubReceiptRepo() *stubReceiptRepo {
	return &stubReceiptRepo{receipts: make(map[uuid.UUID]*model.Receipt)}
}

func (r *stubReceiptRepo) Create(_ context.Context, rec *model.Receipt) error {
	for _, existing := range r.receipts {
		if existing.ServiceOrderID == rec.ServiceOrderID {
			return gorm.ErrDuplicatedKey
		}
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	r.receipts[rec.ID] = rec
	return nil
}

func (r *stubReceiptRepo) Update(_ context.Context, rec *model.Receipt) error {
	r.receipts[rec.ID] = rec
	return nil
}

func (r *stubReceiptRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Receipt, error) {
	rec, ok := r.receipts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return rec, nil
}

func (r *stubReceiptRepo) FindByOrder(_ context.Context, companyID, orderID uuid.UUID) (*model.Receipt, error) {
	for _, rec := range r.receipts {
		if rec.ServiceOrderID == orderID && rec.CompanyID == companyID {
			return rec, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubReceiptRepo) ListPendingRetries(_ context.Context, now time.Time, limit int) ([]model.Receipt, error) {
	var out []model.Receipt
	for _, rec := range r.receipts {
		if rec.Status == model.ReceiptError && rec.NextRetryAt != nil && !rec.NextRetryAt.After(now) {
			out = append(out, *rec)
			if len(out) >= limit {
				break
			}
		}
	}
	return out, nil
}

var _ repository.ReceiptRepository = (*stubReceiptRepo)(nil)
