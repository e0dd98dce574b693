package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/gutoberny/BernyFlow/internal/model"
	"github.com/gutoberny/BernyFlow/internal/repository"
)

// FREE plan caps. PRO has no caps.
const (
	FreeMaxClients = 10
	FreeMaxOrders  = 10
	FreeMaxUsers   = 1
)

// PlanService gates resource creation on the company's subscription tier.
// The count-then-insert check is not serialized, so concurrent creates can
// land one record past the cap; the cap is a soft commercial limit, not an
// integrity constraint.
type PlanService interface {
	CheckClientLimit(ctx context.Context, companyID uuid.UUID) error
	CheckOrderLimit(ctx context.Context, companyID uuid.UUID) error
	CheckUserLimit(ctx context.Context, companyID uuid.UUID) error
}

type planService struct {
	companies repository.CompanyRepository
	clients   repository.ClientRepository
	orders    repository.OrderRepository
	users     repository.UserRepository
}

func NewPlanService(
	companies repository.CompanyRepository,
	clients repository.ClientRepository,
	orders repository.OrderRepository,
	users repository.UserRepository,
) PlanService {
	return &planService{companies: companies, clients: clients, orders: orders, users: users}
}

func (s *planService) CheckClientLimit(ctx context.Context, companyID uuid.UUID) error {
	return s.check(ctx, companyID, "clientes", FreeMaxClients, func(ctx context.Context) (int64, error) {
		return s.clients.CountByCompany(ctx, companyID)
	})
}

func (s *planService) CheckOrderLimit(ctx context.Context, companyID uuid.UUID) error {
	return s.check(ctx, companyID, "ordens de servico", FreeMaxOrders, func(ctx context.Context) (int64, error) {
		return s.orders.CountByCompany(ctx, companyID)
	})
}

func (s *planService) CheckUserLimit(ctx context.Context, companyID uuid.UUID) error {
	return s.check(ctx, companyID, "usuarios", FreeMaxUsers, func(ctx context.Context) (int64, error) {
		return s.users.CountByCompany(ctx, companyID)
	})
}

func (s *planService) check(ctx context.Context, companyID uuid.UUID, resource string, limit int64, count func(context.Context) (int64, error)) error {
	company, err := s.companies.FindByID(ctx, companyID)
	if err != nil {
		return err
	}
	// Only an explicit PRO plan lifts the caps; an unset or unknown plan
	// value is treated as FREE.
	if company.Plan == model.PlanPro {
		return nil
	}
	n, err := count(ctx)
	if err != nil {
		return err
	}
	if n >= limit {
		return &PlanLimitError{Plan: string(model.PlanFree), Resource: resource, Limit: limit}
	}
	return nil
}
