package dto

type CreateClientRequest struct {
	Name    string  `json:"name" validate:"required,min=2,max=120"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Phone   *string `json:"phone" validate:"omitempty,max=30"`
	Address *string `json:"address" validate:"omitempty,max=255"`
}

type UpdateClientRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=2,max=120"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Phone   *string `json:"phone" validate:"omitempty,max=30"`
	Address *string `json:"address" validate:"omitempty,max=255"`
}
