package dto

import "github.com/shopspring/decimal"

type CreateProductRequest struct {
	Name         string           `json:"name" validate:"required,min=2,max=120"`
	Description  *string          `json:"description" validate:"omitempty,max=500"`
	Price        decimal.Decimal  `json:"price" validate:"required,gte=0"`
	Stock        *int             `json:"stock" validate:"omitempty,gte=0"`
	CostPrice    *decimal.Decimal `json:"cost_price" validate:"omitempty,gte=0"`
	Freight      *decimal.Decimal `json:"freight" validate:"omitempty,gte=0"`
	OtherCosts   *decimal.Decimal `json:"other_costs" validate:"omitempty,gte=0"`
	ProfitMargin *decimal.Decimal `json:"profit_margin" validate:"omitempty,gte=0"`
}

type UpdateProductRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=2,max=120"`
	Description  *string          `json:"description" validate:"omitempty,max=500"`
	Price        *decimal.Decimal `json:"price" validate:"omitempty,gte=0"`
	Stock        *int             `json:"stock"`
	CostPrice    *decimal.Decimal `json:"cost_price" validate:"omitempty,gte=0"`
	Freight      *decimal.Decimal `json:"freight" validate:"omitempty,gte=0"`
	OtherCosts   *decimal.Decimal `json:"other_costs" validate:"omitempty,gte=0"`
	ProfitMargin *decimal.Decimal `json:"profit_margin" validate:"omitempty,gte=0"`
}
