package domain

import "time"

// Member is an end-user who joins the community and publishes posts.
type Member struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// Active reports whether the member may still authenticate.
func (m *Member) Active() bool {
	return m.DeletedAt == nil
}
