package events

import (
	"time"

	"github.com/spec-kit/community-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventMemberRegistered EventType = "member_registered"
	EventLoginSucceeded   EventType = "login_succeeded"
	EventLoginFailed      EventType = "login_failed"
	EventTokenRefreshed   EventType = "token_refreshed"
	EventPasswordChanged  EventType = "password_changed"
	EventAccountRetired   EventType = "account_retired"
	EventPostPublished    EventType = "post_published"
	EventPostHidden       EventType = "post_hidden"
	EventPostRestored     EventType = "post_restored"
)

// Actor identifies who triggered an event. SubjectID may be empty for
// anonymous actions such as failed logins.
type Actor struct {
	Role      domain.RoleTag `json:"role,omitempty"`
	SubjectID string         `json:"subject_id,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Actor     Actor     `json:"actor"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload,omitempty"`
}

// LoginFailedPayload payload. Identifier is recorded for audit; the reason is
// always the uniform credentials failure, never the underlying cause.
type LoginFailedPayload struct {
	Role       domain.RoleTag `json:"role"`
	Identifier string         `json:"identifier"`
}

// AccountRetiredPayload payload.
type AccountRetiredPayload struct {
	Role      domain.RoleTag `json:"role"`
	SubjectID string         `json:"subject_id"`
}

// PostModeratedPayload payload for hide/restore actions.
type PostModeratedPayload struct {
	PostID   string `json:"post_id"`
	AuthorID string `json:"author_id"`
}
