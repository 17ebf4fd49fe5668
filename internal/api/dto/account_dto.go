package dto

import (
	"time"

	"github.com/spec-kit/community-service/internal/domain"
)

// ModeratorCreateRequest payload for provisioning a moderator.
type ModeratorCreateRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AccountResponse wire shape shared by member and moderator listings.
type AccountResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	CreatedAt time.Time  `json:"created_at"`
	RetiredAt *time.Time `json:"retired_at,omitempty"`
}

// NewMemberResponse maps a member onto the wire shape.
func NewMemberResponse(m *domain.Member) AccountResponse {
	return AccountResponse{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		CreatedAt: m.CreatedAt,
		RetiredAt: m.DeletedAt,
	}
}

// NewModeratorResponse maps a moderator onto the wire shape.
func NewModeratorResponse(m *domain.Moderator) AccountResponse {
	return AccountResponse{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		CreatedAt: m.CreatedAt,
		RetiredAt: m.DeletedAt,
	}
}

// NewAdminResponse maps an admin onto the wire shape.
func NewAdminResponse(a *domain.Admin) AccountResponse {
	return AccountResponse{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		CreatedAt: a.CreatedAt,
		RetiredAt: a.DeletedAt,
	}
}
