package dto

import "github.com/shopspring/decimal"

type CreateServiceRequest struct {
	Name        string          `json:"name" validate:"required,min=2,max=120"`
	Description *string         `json:"description" validate:"omitempty,max=500"`
	Price       decimal.Decimal `json:"price" validate:"required,gte=0"`
}

type UpdateServiceRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=2,max=120"`
	Description *string          `json:"description" validate:"omitempty,max=500"`
	Price       *decimal.Decimal `json:"price" validate:"omitempty,gte=0"`
}
