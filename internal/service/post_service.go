package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/community-service/internal/cache"
	"github.com/spec-kit/community-service/internal/domain"
	"github.com/spec-kit/community-service/internal/events"
	"github.com/spec-kit/community-service/internal/repository"
	apperrors "github.com/spec-kit/community-service/pkg/util"
)

// PostService implements the content providers: member-owned CRUD plus
// moderator visibility actions.
type PostService struct {
	posts      repository.PostRepository
	cache      *cache.PostCache
	dispatcher events.Dispatcher
}

// NewPostService builds the service.
func NewPostService(posts repository.PostRepository, postCache *cache.PostCache, dispatcher events.Dispatcher) *PostService {
	return &PostService{posts: posts, cache: postCache, dispatcher: dispatcher}
}

// Create publishes a new post for the authoring member.
func (s *PostService) Create(ctx context.Context, author *domain.RolePayload, title, body string) (*domain.Post, error) {
	post := &domain.Post{
		AuthorID: author.ID.String(),
		Title:    title,
		Body:     body,
		Status:   domain.PostStatusPublished,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	s.publish(ctx, events.EventPostPublished, events.Actor{Role: author.Type, SubjectID: post.AuthorID},
		events.PostModeratedPayload{PostID: post.ID, AuthorID: post.AuthorID})
	return post, nil
}

// UpdateOwn edits a post after verifying the caller owns it.
func (s *PostService) UpdateOwn(ctx context.Context, author *domain.RolePayload, postID, title, body string) (*domain.Post, error) {
	post, err := s.ownedPost(ctx, author, postID)
	if err != nil {
		return nil, err
	}

	if title != "" {
		post.Title = title
	}
	if body != "" {
		post.Body = body
	}
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	return post, nil
}

// DeleteOwn soft-deletes a post after verifying ownership.
func (s *PostService) DeleteOwn(ctx context.Context, author *domain.RolePayload, postID string) error {
	if _, err := s.ownedPost(ctx, author, postID); err != nil {
		return err
	}
	if err := s.posts.SoftDelete(ctx, postID); err != nil {
		return err
	}

	s.cache.Invalidate(ctx)
	return nil
}

// ListMine returns the caller's own posts, hidden ones included.
func (s *PostService) ListMine(ctx context.Context, author *domain.RolePayload, limit, offset int) ([]domain.Post, error) {
	return s.posts.ListByAuthor(ctx, author.ID.String(), limit, offset)
}

// ListPublished returns the public feed, served from the redis cache when a
// fresh page is available.
func (s *PostService) ListPublished(ctx context.Context, limit, offset int) ([]domain.Post, error) {
	if posts, ok := s.cache.Get(ctx, limit, offset); ok {
		return posts, nil
	}

	posts, err := s.posts.ListPublished(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, limit, offset, posts)
	return posts, nil
}

// Hide makes a post invisible to the public feed. Moderator action.
func (s *PostService) Hide(ctx context.Context, moderator *domain.RolePayload, postID string) error {
	return s.moderate(ctx, moderator, postID, domain.PostStatusHidden, events.EventPostHidden)
}

// Restore reverses a hide. Moderator action.
func (s *PostService) Restore(ctx context.Context, moderator *domain.RolePayload, postID string) error {
	return s.moderate(ctx, moderator, postID, domain.PostStatusPublished, events.EventPostRestored)
}

func (s *PostService) moderate(ctx context.Context, moderator *domain.RolePayload, postID string, status domain.PostStatus, eventType events.EventType) error {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("post", map[string]any{"id": postID})
		}
		return err
	}
	if post.Status == status {
		return nil
	}
	if err := s.posts.SetStatus(ctx, postID, status); err != nil {
		return err
	}

	s.cache.Invalidate(ctx)
	s.publish(ctx, eventType, events.Actor{Role: moderator.Type, SubjectID: moderator.ID.String()},
		events.PostModeratedPayload{PostID: post.ID, AuthorID: post.AuthorID})
	return nil
}

func (s *PostService) ownedPost(ctx context.Context, author *domain.RolePayload, postID string) (*domain.Post, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("post", map[string]any{"id": postID})
		}
		return nil, err
	}
	if post.AuthorID != author.ID.String() {
		return nil, apperrors.NewForbidden("post belongs to another member")
	}
	return post, nil
}

func (s *PostService) publish(ctx context.Context, eventType events.EventType, actor events.Actor, payload any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Actor:     actor,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
