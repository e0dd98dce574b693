package dto

type UpdateCompanyRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=2,max=120"`
	CNPJ    *string `json:"cnpj" validate:"omitempty,max=20"`
	Address *string `json:"address" validate:"omitempty,max=255"`
	Phone   *string `json:"phone" validate:"omitempty,max=30"`
	Email   *string `json:"email" validate:"omitempty,email"`
}
