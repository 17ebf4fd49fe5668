package dto

import (
	"time"

	"github.com/spec-kit/community-service/internal/domain"
)

// RegisterRequest payload for new members.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest payload for login, any role.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest payload for minting a new token pair.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse is the wire shape of an issued pair.
type TokenResponse struct {
	Access           string    `json:"access"`
	Refresh          string    `json:"refresh"`
	ExpiredAt        time.Time `json:"expired_at"`
	RefreshableUntil time.Time `json:"refreshable_until"`
}

// NewTokenResponse maps a domain pair onto the wire shape.
func NewTokenResponse(pair *domain.TokenPair) TokenResponse {
	return TokenResponse{
		Access:           pair.Access,
		Refresh:          pair.Refresh,
		ExpiredAt:        pair.ExpiredAt,
		RefreshableUntil: pair.RefreshableUntil,
	}
}

// PasswordResetRequest payload.
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// PasswordResetConfirmRequest payload.
type PasswordResetConfirmRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// PasswordChangeRequest payload.
type PasswordChangeRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}
