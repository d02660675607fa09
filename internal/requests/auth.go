package requests

import (
	"strings"

	"katalog/internal/models"
	"katalog/internal/validation"
)

// RegisterRequest is the body of POST /register.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// Messages returns the custom validation messages.
func (RegisterRequest) Messages() validation.Messages {
	return validation.Messages{
		"username.required": "Please choose a username.",
		"email.required":    "Please provide an email address.",
		"email.email":       "Please provide a valid email address.",
		"password.required": "Please choose a password.",
		"password.min":      "The password must be at least 6 characters.",
	}
}

// Normalize trims the username and email. Call it before validating.
func (r *RegisterRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)
}

// User builds the account to register. The password is still in clear text.
func (r RegisterRequest) User() models.User {
	return models.User{
		Username: strings.TrimSpace(r.Username),
		Email:    strings.ToLower(strings.TrimSpace(r.Email)),
		Password: r.Password,
		Role:     models.RoleUser,
	}
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
