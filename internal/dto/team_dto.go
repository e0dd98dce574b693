package dto

import "github.com/gutoberny/BernyFlow/internal/model"

type InviteUserRequest struct {
	Name  string     `json:"name" validate:"required,min=2,max=120"`
	Email string     `json:"email" validate:"required,email"`
	Role  model.Role `json:"role" validate:"required,oneof=ADMIN USER"`
}

// InviteUserResponse returns the generated temporary password once;
// it is never retrievable again.
type InviteUserResponse struct {
	User         UserResponse `json:"user"`
	TempPassword string       `json:"temp_password"`
}
