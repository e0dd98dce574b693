package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/gutoberny/BernyFlow/internal/dto"
	"github.com/gutoberny/BernyFlow/internal/model"
	"github.com/gutoberny/BernyFlow/internal/repository"
)

// CatalogService manages the company's catalog of billable services.
type CatalogService interface {
	Create(ctx context.Context, companyID uuid.UUID, req dto.CreateServiceRequest) (*model.Service, error)
	Get(ctx context.Context, companyID, id uuid.UUID) (*model.Service, error)
	List(ctx context.Context, companyID uuid.UUID, search string) ([]model.Service, error)
	Update(ctx context.Context, companyID, id uuid.UUID, req dto.UpdateServiceRequest) (*model.Service, error)
	Delete(ctx context.Context, companyID, id uuid.UUID) error
}

type catalogService struct {
	services repository.ServiceRepository
}

func NewCatalogService(services repository.ServiceRepository) CatalogService {
	return &catalogService{services: services}
}

func (s *catalogService) Create(ctx context.Context, companyID uuid.UUID, req dto.CreateServiceRequest) (*model.Service, error) {
	svc := &model.Service{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CompanyID:   companyID,
	}
	if err := s.services.Create(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *catalogService) Get(ctx context.Context, companyID, id uuid.UUID) (*model.Service, error) {
	svc, err := s.services.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, asNotFound(err)
	}
	return svc, nil
}

func (s *catalogService) List(ctx context.Context, companyID uuid.UUID, search string) ([]model.Service, error) {
	return s.services.List(ctx, companyID, search)
}

func (s *catalogService) Update(ctx context.Context, companyID, id uuid.UUID, req dto.UpdateServiceRequest) (*model.Service, error) {
	svc, err := s.services.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, asNotFound(err)
	}
	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = req.Description
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if err := s.services.Update(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *catalogService) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	return asNotFound(s.services.Delete(ctx, companyID, id))
}
