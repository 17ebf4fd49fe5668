package domain

import "time"

// Admin manages moderator and member accounts. Admin rows are provisioned
// out of band rather than created through the API.
type Admin struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}
