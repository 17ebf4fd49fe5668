package domain

import (
	"time"

	"github.com/google/uuid"
)

// RoleTag discriminates which principal table a token belongs to.
type RoleTag string

const (
	RoleMember    RoleTag = "member"
	RoleModerator RoleTag = "moderator"
	RoleAdmin     RoleTag = "admin"
)

// KnownRoleTags is the closed set of roles this application issues tokens for.
var KnownRoleTags = []RoleTag{RoleMember, RoleModerator, RoleAdmin}

// Known reports whether the tag is one of the supported role literals.
func (r RoleTag) Known() bool {
	for _, tag := range KnownRoleTags {
		if r == tag {
			return true
		}
	}
	return false
}

// RolePayload is the decoded, structurally validated token payload. It has
// not been checked against the database until a Guard authorizes it.
type RolePayload struct {
	ID   uuid.UUID `json:"id"`
	Type RoleTag   `json:"type"`
}

// TokenPair is what login and refresh return to the client.
type TokenPair struct {
	Access           string    `json:"access"`
	Refresh          string    `json:"refresh"`
	ExpiredAt        time.Time `json:"expired_at"`
	RefreshableUntil time.Time `json:"refreshable_until"`
}
