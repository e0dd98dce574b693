package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gutoberny/BernyFlow/internal/dto"
	"github.com/gutoberny/BernyFlow/internal/model"
	"github.com/gutoberny/BernyFlow/internal/repository"
	"github.com/gutoberny/BernyFlow/internal/worker"
)

type OrderService interface {
	Create(ctx context.Context, companyID uuid.UUID, req dto.CreateOrderRequest) (*model.ServiceOrder, error)
	Get(ctx context.Context, companyID, id uuid.UUID) (*model.ServiceOrder, error)
	List(ctx context.Context, companyID uuid.UUID, filter dto.OrderListQuery) ([]model.ServiceOrder, error)
	Update(ctx context.Context, companyID, id uuid.UUID, req dto.UpdateOrderRequest) (*model.ServiceOrder, error)
	Delete(ctx context.Context, companyID, id uuid.UUID) error
	AddItem(ctx context.Context, companyID, orderID uuid.UUID, req dto.AddOrderItemRequest) (*model.ServiceOrderItem, error)
	RemoveItem(ctx context.Context, companyID, orderID, itemID uuid.UUID) error
}

type orderService struct {
	orders       repository.OrderRepository
	transactions repository.TransactionRepository
	products     repository.ProductRepository
	services     repository.ServiceRepository
	clients      repository.ClientRepository
	receipts     repository.ReceiptRepository
	plans        PlanService
	dispatcher   *worker.Dispatcher
	now          func() time.Time
}

func NewOrderService(
	orders repository.OrderRepository,
	transactions repository.TransactionRepository,
	products repository.ProductRepository,
	services repository.ServiceRepository,
	clients repository.ClientRepository,
	receipts repository.ReceiptRepository,
	plans PlanService,
	dispatcher *worker.Dispatcher,
) OrderService {
	return &orderService{
		orders:       orders,
		transactions: transactions,
		products:     products,
		services:     services,
		clients:      clients,
		receipts:     receipts,
		plans:        plans,
		dispatcher:   dispatcher,
		now:          time.Now,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func (s *orderService) Create(ctx context.Context, companyID uuid.UUID, req dto.CreateOrderRequest) (*model.ServiceOrder, error) {
	if err := s.plans.CheckOrderLimit(ctx, companyID); err != nil {
		return nil, err
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return nil, ErrInvalidClient
	}
	if _, err := s.clients.FindByID(ctx, companyID, clientID); err != nil {
		return nil, ErrInvalidClient
	}

	o := &model.ServiceOrder{
		Status:      model.OrderOpen,
		Description: req.Description,
		ClientID:    clientID,
		CompanyID:   companyID,
		StartDate:   s.now(),
	}
	if req.StartDate != nil {
		o.StartDate = *req.StartDate
	}
	if req.DisplacementCost != nil {
		o.DisplacementCost = *req.DisplacementCost
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, err
	}
	return s.Get(ctx, companyID, o.ID)
}

func (s *orderService) Get(ctx context.Context, companyID, id uuid.UUID) (*model.ServiceOrder, error) {
	o, err := s.orders.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, asNotFound(err)
	}
	return o, nil
}

func (s *orderService) List(ctx context.Context, companyID uuid.UUID, filter dto.OrderListQuery) ([]model.ServiceOrder, error) {
	return s.orders.List(ctx, companyID, filter)
}

// Update applies field changes and, when the status moves, the lifecycle side
// effects, all inside one transaction:
//
//	→ COMPLETED: recompute total from items + displacement and derive the
//	  income transaction (skipped if one already exists). The end date is
//	  whatever the caller supplied; it is never stamped automatically.
//	→ OPEN: delete any linked transaction, clear payment fields and end date.
//
// A receipt job is enqueued only after the transaction commits.
func (s *orderService) Update(ctx context.Context, companyID, id uuid.UUID, req dto.UpdateOrderRequest) (*model.ServiceOrder, error) {
	o, err := s.orders.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, asNotFound(err)
	}

	effects := TransitionEffects{}
	if req.Status != nil {
		effects = PlanTransition(o.Status, *req.Status)
	}

	if req.Description != nil {
		o.Description = req.Description
	}
	if req.DisplacementCost != nil {
		o.DisplacementCost = *req.DisplacementCost
	}
	if req.PaymentMethod != nil {
		o.PaymentMethod = req.PaymentMethod
	}
	if req.PaymentType != nil {
		o.PaymentType = req.PaymentType
	}
	if req.EndDate != nil {
		o.EndDate = req.EndDate
	}
	if req.Status != nil {
		o.Status = *req.Status
	}

	if effects.CreateTransaction && (o.PaymentMethod == nil || o.PaymentType == nil) {
		return nil, ErrPaymentRequired
	}

	completed := false
	txErr := runTx(ctx, s.orders.DB(), func(tx *gorm.DB) error {
		if effects.DeleteTransaction {
			if err := s.transactions.DeleteByOrderTx(tx, o.ID); err != nil {
				return err
			}
		}
		if effects.ClearPayment {
			o.PaymentMethod = nil
			o.PaymentType = nil
			o.EndDate = nil
		}
		if effects.CreateTransaction {
			items, err := s.orders.ListItemsTx(tx, o.ID)
			if err != nil {
				return err
			}
			total := OrderTotal(items, o.DisplacementCost)
			o.Total = total

			existing, err := s.transactions.FindByOrderTx(tx, o.ID)
			if err != nil {
				return err
			}
			if len(existing) == 0 {
				t := BuildOrderTransaction(o, total, req.DueDate, s.now())
				if err := s.transactions.CreateTx(tx, &t); err != nil {
					return err
				}
				completed = true
			}
		}
		return s.orders.UpdateTx(tx, o)
	})
	if txErr != nil {
		return nil, txErr
	}

	if completed {
		s.enqueueReceipt(ctx, o)
	}

	return s.Get(ctx, companyID, id)
}

func (s *orderService) enqueueReceipt(ctx context.Context, o *model.ServiceOrder) {
	if s.receipts == nil || s.dispatcher == nil {
		return
	}
	rec := &model.Receipt{
		ServiceOrderID: o.ID,
		CompanyID:      o.CompanyID,
		Status:         model.ReceiptPending,
	}
	// A reopened and re-completed order already has its receipt row.
	if err := s.receipts.Create(ctx, rec); err != nil {
		existing, ferr := s.receipts.FindByOrder(ctx, o.CompanyID, o.ID)
		if ferr != nil {
			return
		}
		rec = existing
	}
	_ = s.dispatcher.EnqueueReceipt(ctx, map[string]interface{}{
		"receipt_id": rec.ID.String(),
	})
}

func (s *orderService) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	o, err := s.orders.FindByID(ctx, companyID, id)
	if err != nil {
		return asNotFound(err)
	}
	return runTx(ctx, s.orders.DB(), func(tx *gorm.DB) error {
		if err := s.transactions.DeleteByOrderTx(tx, o.ID); err != nil {
			return err
		}
		items, err := s.orders.ListItemsTx(tx, o.ID)
		if err != nil {
			return err
		}
		for _, item := range items {
			if item.ProductID != nil {
				delta := int(item.Quantity.IntPart())
				if err := s.products.AdjustStockTx(tx, companyID, *item.ProductID, delta); err != nil {
					return err
				}
			}
			if err := s.orders.DeleteItemTx(tx, item.ID); err != nil {
				return err
			}
		}
		return s.orders.DeleteTx(tx, companyID, id)
	})
}

// AddItem appends a line to the order. The line total is always recomputed
// server side from quantity and unit price; product lines also consume stock.
func (s *orderService) AddItem(ctx context.Context, companyID, orderID uuid.UUID, req dto.AddOrderItemRequest) (*model.ServiceOrderItem, error) {
	if _, err := s.orders.FindByID(ctx, companyID, orderID); err != nil {
		return nil, asNotFound(err)
	}
	if (req.ProductID == nil) == (req.ServiceID == nil) {
		return nil, ErrInvalidItemTarget
	}

	item := &model.ServiceOrderItem{
		ServiceOrderID: orderID,
		Quantity:       req.Quantity,
		UnitPrice:      req.UnitPrice,
		TotalPrice:     req.Quantity.Mul(req.UnitPrice),
		IsFirstHour:    req.IsFirstHour,
	}

	if req.ProductID != nil {
		pid, err := uuid.Parse(*req.ProductID)
		if err != nil {
			return nil, ErrNotFound
		}
		if _, err := s.products.FindByID(ctx, companyID, pid); err != nil {
			return nil, asNotFound(err)
		}
		item.ProductID = &pid
	} else {
		sid, err := uuid.Parse(*req.ServiceID)
		if err != nil {
			return nil, ErrNotFound
		}
		if _, err := s.services.FindByID(ctx, companyID, sid); err != nil {
			return nil, asNotFound(err)
		}
		item.ServiceID = &sid
	}

	txErr := runTx(ctx, s.orders.DB(), func(tx *gorm.DB) error {
		if err := s.orders.CreateItemTx(tx, item); err != nil {
			return err
		}
		if item.ProductID != nil {
			delta := -int(item.Quantity.IntPart())
			return s.products.AdjustStockTx(tx, companyID, *item.ProductID, delta)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return item, nil
}

// RemoveItem deletes a line and, for product lines, returns the consumed
// stock. The stock delta mirrors AddItem exactly so add+remove round-trips.
func (s *orderService) RemoveItem(ctx context.Context, companyID, orderID, itemID uuid.UUID) error {
	item, err := s.orders.FindItem(ctx, companyID, orderID, itemID)
	if err != nil {
		return asNotFound(err)
	}
	return runTx(ctx, s.orders.DB(), func(tx *gorm.DB) error {
		if item.ProductID != nil {
			delta := int(item.Quantity.IntPart())
			if err := s.products.AdjustStockTx(tx, companyID, *item.ProductID, delta); err != nil {
				return err
			}
		}
		return s.orders.DeleteItemTx(tx, item.ID)
	})
}
