package domain

import "time"

// Moderator reviews community content. Moderators are provisioned by admins
// and retired by soft-deleting their row, which revokes access on the next
// request regardless of outstanding token lifetimes.
type Moderator struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// Active reports whether the moderator may still authenticate.
func (m *Moderator) Active() bool {
	return m.DeletedAt == nil
}
