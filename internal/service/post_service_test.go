package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/community-service/internal/cache"
	"github.com/spec-kit/community-service/internal/domain"
	"github.com/spec-kit/community-service/internal/events"
	"github.com/spec-kit/community-service/internal/repository/memory"
	"github.com/spec-kit/community-service/internal/service"
	apperrors "github.com/spec-kit/community-service/pkg/util"
)

type postFixture struct {
	svc        *service.PostService
	posts      *memory.Posts
	dispatcher *recordingDispatcher
}

func newPostFixture(t *testing.T) *postFixture {
	t.Helper()

	f := &postFixture{
		posts:      memory.NewPosts(),
		dispatcher: &recordingDispatcher{},
	}
	// Nil redis client disables the cache, which is what unit tests want.
	f.svc = service.NewPostService(f.posts, cache.NewPostCache(nil, 0, zap.NewNop()), f.dispatcher)
	return f
}

func memberPayload() *domain.RolePayload {
	return &domain.RolePayload{ID: uuid.New(), Type: domain.RoleMember}
}

func moderatorPayload() *domain.RolePayload {
	return &domain.RolePayload{ID: uuid.New(), Type: domain.RoleModerator}
}

func TestPostService_OwnershipLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newPostFixture(t)
	owner := memberPayload()
	stranger := memberPayload()

	post, err := f.svc.Create(ctx, owner, "hello", "first post")
	require.NoError(t, err)
	require.NotEmpty(t, post.ID)
	assert.Equal(t, owner.ID.String(), post.AuthorID)
	assert.Equal(t, domain.PostStatusPublished, post.Status)

	t.Run("owner can update", func(t *testing.T) {
		updated, err := f.svc.UpdateOwn(ctx, owner, post.ID, "hello again", "edited")
		require.NoError(t, err)
		assert.Equal(t, "hello again", updated.Title)
	})

	t.Run("another member cannot update", func(t *testing.T) {
		_, err := f.svc.UpdateOwn(ctx, stranger, post.ID, "stolen", "nope")
		var domainErr *apperrors.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
		assert.Equal(t, http.StatusForbidden, domainErr.HTTPStatus)
	})

	t.Run("another member cannot delete", func(t *testing.T) {
		err := f.svc.DeleteOwn(ctx, stranger, post.ID)
		var domainErr *apperrors.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
	})

	t.Run("unknown post id", func(t *testing.T) {
		_, err := f.svc.UpdateOwn(ctx, owner, uuid.NewString(), "x", "y")
		var domainErr *apperrors.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
	})

	t.Run("owner can delete", func(t *testing.T) {
		require.NoError(t, f.svc.DeleteOwn(ctx, owner, post.ID))

		listed, err := f.svc.ListPublished(ctx, 20, 0)
		require.NoError(t, err)
		assert.Empty(t, listed)
	})
}

func TestPostService_Moderation(t *testing.T) {
	ctx := context.Background()
	f := newPostFixture(t)
	owner := memberPayload()
	moderator := moderatorPayload()

	post, err := f.svc.Create(ctx, owner, "spam?", "buy stuff")
	require.NoError(t, err)

	require.NoError(t, f.svc.Hide(ctx, moderator, post.ID))

	listed, err := f.svc.ListPublished(ctx, 20, 0)
	require.NoError(t, err)
	assert.Empty(t, listed)

	// The author still sees their own hidden post.
	mine, err := f.svc.ListMine(ctx, owner, 20, 0)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	t.Run("hide is idempotent and publishes once", func(t *testing.T) {
		require.NoError(t, f.svc.Hide(ctx, moderator, post.ID))
		assert.Len(t, f.dispatcher.ofType(events.EventPostHidden), 1)
	})

	t.Run("restore brings the post back", func(t *testing.T) {
		require.NoError(t, f.svc.Restore(ctx, moderator, post.ID))

		listed, err := f.svc.ListPublished(ctx, 20, 0)
		require.NoError(t, err)
		assert.Len(t, listed, 1)
		assert.Len(t, f.dispatcher.ofType(events.EventPostRestored), 1)
	})

	t.Run("moderating a missing post", func(t *testing.T) {
		err := f.svc.Hide(ctx, moderator, uuid.NewString())
		var domainErr *apperrors.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
	})
}
