package dto

import (
	"time"

	"github.com/sq-invest/crm-service/internal/domain"
)

// LoginRequest payload for login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse carries the bearer token naming the new session.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	Actor domain.Actor `json:"user"`
	Auth  AuthResponse `json:"auth"`
}

// ProfileUpdateRequest payload for PUT /session.
type ProfileUpdateRequest struct {
	Name          string `json:"name" validate:"omitempty,max=120"`
	Role          string `json:"role" validate:"omitempty,max=120"`
	Department    string `json:"department" validate:"omitempty,max=120"`
	RequiresTwoFA *bool  `json:"requiresTwoFA"`
}

// AllowedResponse answers permission and view probes.
type AllowedResponse struct {
	Allowed bool `json:"allowed"`
}
