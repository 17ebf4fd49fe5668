package domain

import "time"

// PostStatus represents visibility of a community post.
type PostStatus string

const (
	PostStatusPublished PostStatus = "PUBLISHED"
	PostStatusHidden    PostStatus = "HIDDEN"
)

// Post is a member-authored entry. Hiding is a moderator action; deletion is
// a soft delete by the owning member.
type Post struct {
	ID        string
	AuthorID  string
	Title     string
	Body      string
	Status    PostStatus
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}
