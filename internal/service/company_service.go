package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/gutoberny/BernyFlow/internal/dto"
	"github.com/gutoberny/BernyFlow/internal/model"
	"github.com/gutoberny/BernyFlow/internal/repository"
)

type CompanyService interface {
	Get(ctx context.Context, id uuid.UUID) (*model.Company, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateCompanyRequest) (*model.Company, error)
}

type companyService struct {
	companies repository.CompanyRepository
}

func NewCompanyService(companies repository.CompanyRepository) CompanyService {
	return &companyService{companies: companies}
}

func (s *companyService) Get(ctx context.Context, id uuid.UUID) (*model.Company, error) {
	c, err := s.companies.FindByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err)
	}
	return c, nil
}

func (s *companyService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateCompanyRequest) (*model.Company, error) {
	c, err := s.companies.FindByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err)
	}
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.CNPJ != nil {
		c.CNPJ = req.CNPJ
	}
	if req.Address != nil {
		c.Address = req.Address
	}
	if req.Phone != nil {
		c.Phone = req.Phone
	}
	if req.Email != nil {
		c.Email = req.Email
	}
	if err := s.companies.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
