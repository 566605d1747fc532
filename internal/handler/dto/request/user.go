package request

import "court-booking/internal/usecase/commands"

// UpdateProfileRequest edits the caller's own account. Changing the password
// needs current_password.
type UpdateProfileRequest struct {
	Name            *string `json:"name" binding:"omitempty,min=1,max=100"`
	Email           *string `json:"email" binding:"omitempty,email"`
	Password        *string `json:"password" binding:"omitempty,min=8"`
	CurrentPassword string  `json:"current_password" binding:"required_with=Password"`
}

func (r UpdateProfileRequest) ToInput() commands.UpdateProfileInput {
	return commands.UpdateProfileInput{
		Name:            r.Name,
		Email:           r.Email,
		Password:        r.Password,
		CurrentPassword: r.CurrentPassword,
	}
}

type UpdateUserRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=100"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=8"`
	Role     *string `json:"role" binding:"omitempty,oneof=customer admin"`
	IsActive *bool   `json:"is_active"`
}

func (r UpdateUserRequest) ToInput() commands.UpdateUserInput {
	return commands.UpdateUserInput{
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
		Role:     r.Role,
		IsActive: r.IsActive,
	}
}
