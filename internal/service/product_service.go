package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/gutoberny/BernyFlow/internal/dto"
	"github.com/gutoberny/BernyFlow/internal/model"
	"github.com/gutoberny/BernyFlow/internal/repository"
)

type ProductService interface {
	Create(ctx context.Context, companyID uuid.UUID, req dto.CreateProductRequest) (*model.Product, error)
	Get(ctx context.Context, companyID, id uuid.UUID) (*model.Product, error)
	List(ctx context.Context, companyID uuid.UUID, search string) ([]model.Product, error)
	Update(ctx context.Context, companyID, id uuid.UUID, req dto.UpdateProductRequest) (*model.Product, error)
	Delete(ctx context.Context, companyID, id uuid.UUID) error
}

type productService struct {
	products repository.ProductRepository
}

func NewProductService(products repository.ProductRepository) ProductService {
	return &productService{products: products}
}

func (s *productService) Create(ctx context.Context, companyID uuid.UUID, req dto.CreateProductRequest) (*model.Product, error) {
	p := &model.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CompanyID:   companyID,
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}
	if req.CostPrice != nil {
		p.CostPrice = *req.CostPrice
	}
	if req.Freight != nil {
		p.Freight = *req.Freight
	}
	if req.OtherCosts != nil {
		p.OtherCosts = *req.OtherCosts
	}
	if req.ProfitMargin != nil {
		p.ProfitMargin = *req.ProfitMargin
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *productService) Get(ctx context.Context, companyID, id uuid.UUID) (*model.Product, error) {
	p, err := s.products.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, asNotFound(err)
	}
	return p, nil
}

func (s *productService) List(ctx context.Context, companyID uuid.UUID, search string) ([]model.Product, error) {
	return s.products.List(ctx, companyID, search)
}

func (s *productService) Update(ctx context.Context, companyID, id uuid.UUID, req dto.UpdateProductRequest) (*model.Product, error) {
	p, err := s.products.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, asNotFound(err)
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}
	if req.CostPrice != nil {
		p.CostPrice = *req.CostPrice
	}
	if req.Freight != nil {
		p.Freight = *req.Freight
	}
	if req.OtherCosts != nil {
		p.OtherCosts = *req.OtherCosts
	}
	if req.ProfitMargin != nil {
		p.ProfitMargin = *req.ProfitMargin
	}
	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *productService) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	return asNotFound(s.products.Delete(ctx, companyID, id))
}
