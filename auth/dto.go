package auth

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/iamfelixjp/jobbers-app/apperror"
)

// validate is the shared validator instance for auth request DTOs.
var validate = validator.New()

// RegisterRequest is the registration request payload.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=20" example:"john"`
	Email    string `json:"email" validate:"required,email" example:"john@example.com"`
	Password string `json:"password" validate:"required,min=6" example:"strongpassword"`
}

// LoginRequest is the login request payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"john@example.com"`
	Password string `json:"password" validate:"required" example:"strongpassword"`
}

// UpdateUserRequest is the profile update payload. All four fields are
// required; the update overwrites the whole profile.
type UpdateUserRequest struct {
	Name     string `json:"name" validate:"required,max=20"`
	LastName string `json:"lastName" validate:"required,max=20"`
	Email    string `json:"email" validate:"required,email"`
	Location string `json:"location" validate:"required"`
}

// AuthResponse is returned by register, login and update-user. The top-level
// location field duplicates user.location for the client's convenience.
type AuthResponse struct {
	User     UserView `json:"user"`
	Token    string   `json:"token"`
	Location string   `json:"location"`
}

// checkRequest runs validator tags over a request DTO and converts failures
// into a ValidationError with a user-facing message.
func checkRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Tag() {
		case "required":
			return apperror.NewValidationError("please provide all values", err)
		case "email":
			return apperror.NewValidationError("please provide a valid email", err)
		case "min":
			return apperror.NewValidationError("password must be at least 6 characters", err)
		case "max":
			return apperror.NewValidationError(strings.ToLower(fe.Field())+" is too long", err)
		}
	}
	return apperror.NewValidationError("invalid request", err)
}
