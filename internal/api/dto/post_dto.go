package dto

import (
	"time"

	"github.com/spec-kit/community-service/internal/domain"
)

// PostRequest payload for creating or updating a post.
type PostRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// PostResponse wire shape of a post.
type PostResponse struct {
	ID        string            `json:"id"`
	AuthorID  string            `json:"author_id"`
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	Status    domain.PostStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// NewPostResponse maps a post onto the wire shape.
func NewPostResponse(post *domain.Post) PostResponse {
	return PostResponse{
		ID:        post.ID,
		AuthorID:  post.AuthorID,
		Title:     post.Title,
		Body:      post.Body,
		Status:    post.Status,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}

// NewPostResponses maps a slice of posts.
func NewPostResponses(posts []domain.Post) []PostResponse {
	resp := make([]PostResponse, 0, len(posts))
	for i := range posts {
		resp = append(resp, NewPostResponse(&posts[i]))
	}
	return resp
}
