package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/community-service/internal/domain"
)

const postListKeyPrefix = "cache:posts:published"

// PostCache is a redis read-through cache for the public published listing.
// Only public content is cached; authentication and authorization state is
// never cached anywhere.
type PostCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewPostCache builds the cache. A nil client disables caching.
func NewPostCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *PostCache {
	return &PostCache{client: client, ttl: ttl, logger: logger}
}

// Get returns the cached page, or ok=false on miss or any redis error.
func (c *PostCache) Get(ctx context.Context, limit, offset int) ([]domain.Post, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, listKey(limit, offset)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Debug("post cache get failed", zap.Error(err))
		}
		return nil, false
	}

	var posts []domain.Post
	if err := json.Unmarshal(raw, &posts); err != nil {
		c.logger.Debug("post cache decode failed", zap.Error(err))
		return nil, false
	}
	return posts, true
}

// Set stores a page best-effort.
func (c *PostCache) Set(ctx context.Context, limit, offset int, posts []domain.Post) {
	if c == nil || c.client == nil {
		return
	}

	raw, err := json.Marshal(posts)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, listKey(limit, offset), raw, c.ttl).Err(); err != nil {
		c.logger.Debug("post cache set failed", zap.Error(err))
	}
}

// Invalidate drops all cached listing pages after a publish/hide/delete.
func (c *PostCache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}

	iter := c.client.Scan(ctx, 0, postListKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			c.logger.Debug("post cache invalidate failed", zap.Error(err))
			return
		}
	}
	if err := iter.Err(); err != nil {
		c.logger.Debug("post cache scan failed", zap.Error(err))
	}
}

func listKey(limit, offset int) string {
	return fmt.Sprintf("%s:%d:%d", postListKeyPrefix, limit, offset)
}
