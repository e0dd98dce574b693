package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/gutoberny/BernyFlow/internal/dto"
	"github.com/gutoberny/BernyFlow/internal/model"
	"github.com/gutoberny/BernyFlow/internal/repository"
)

type ClientService interface {
	Create(ctx context.Context, companyID uuid.UUID, req dto.CreateClientRequest) (*model.Client, error)
	Get(ctx context.Context, companyID, id uuid.UUID) (*model.Client, error)
	List(ctx context.Context, companyID uuid.UUID, search string) ([]model.Client, error)
	Update(ctx context.Context, companyID, id uuid.UUID, req dto.UpdateClientRequest) (*model.Client, error)
	Delete(ctx context.Context, companyID, id uuid.UUID) error
}

type clientService struct {
	clients repository.ClientRepository
	plans   PlanService
}

func NewClientService(clients repository.ClientRepository, plans PlanService) ClientService {
	return &clientService{clients: clients, plans: plans}
}

func (s *clientService) Create(ctx context.Context, companyID uuid.UUID, req dto.CreateClientRequest) (*model.Client, error) {
	if err := s.plans.CheckClientLimit(ctx, companyID); err != nil {
		return nil, err
	}
	c := &model.Client{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		CompanyID: companyID,
	}
	if err := s.clients.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *clientService) Get(ctx context.Context, companyID, id uuid.UUID) (*model.Client, error) {
	c, err := s.clients.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, asNotFound(err)
	}
	return c, nil
}

func (s *clientService) List(ctx context.Context, companyID uuid.UUID, search string) ([]model.Client, error) {
	return s.clients.List(ctx, companyID, search)
}

func (s *clientService) Update(ctx context.Context, companyID, id uuid.UUID, req dto.UpdateClientRequest) (*model.Client, error) {
	c, err := s.clients.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, asNotFound(err)
	}
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Email != nil {
		c.Email = req.Email
	}
	if req.Phone != nil {
		c.Phone = req.Phone
	}
	if req.Address != nil {
		c.Address = req.Address
	}
	if err := s.clients.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *clientService) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	return asNotFound(s.clients.Delete(ctx, companyID, id))
}
