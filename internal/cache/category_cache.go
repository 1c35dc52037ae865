package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/vreblog/public_api/internal/models"
)

const categoryListKey = "catalog:categories"

// CategoryCache keeps the full category list in Redis. Categories change
// rarely and every metadata-hungry API consumer fetches them, so a short
// TTL bounds staleness without a write-through invalidation path.
type CategoryCache struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewCategoryCache creates a CategoryCache with the given TTL.
func NewCategoryCache(redis *RedisClient, ttl time.Duration) *CategoryCache {
	return &CategoryCache{redis: redis, ttl: ttl}
}

// Get returns the cached category list, or nil on miss or decode failure.
func (c *CategoryCache) Get(ctx context.Context) []*models.Category {
	raw, err := c.redis.Get(ctx, categoryListKey)
	if err != nil {
		return nil
	}
	var categories []*models.Category
	if err := json.Unmarshal([]byte(raw), &categories); err != nil {
		return nil
	}
	return categories
}

// Set stores the category list. Failures are ignored: the cache is an
// optimization, not part of the response contract.
func (c *CategoryCache) Set(ctx context.Context, categories []*models.Category) {
	raw, err := json.Marshal(categories)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, categoryListKey, string(raw), c.ttl)
}

// Invalidate drops the cached list.
func (c *CategoryCache) Invalidate(ctx context.Context) {
	_ = c.redis.Delete(ctx, categoryListKey)
}
