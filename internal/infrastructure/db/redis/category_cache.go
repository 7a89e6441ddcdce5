package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	categoriesKey = "catalog:categories"
	categoriesTTL = 5 * time.Minute
)

// CategoryCache is a Redis-backed read-through cache for the distinct
// category list. Product mutations invalidate the key; the TTL bounds
// staleness if an invalidation is lost.
type CategoryCache struct {
	client *redis.Client
}

// NewCategoryCache creates a CategoryCache wrapping the given Redis client.
func NewCategoryCache(client *redis.Client) *CategoryCache {
	return &CategoryCache{client: client}
}

// Get returns the cached category list. The second return value is false
// on a cache miss.
func (c *CategoryCache) Get(ctx context.Context) ([]string, bool, error) {
	raw, err := c.client.Get(ctx, categoriesKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("category cache get: %w", err)
	}

	var categories []string
	if err := json.Unmarshal([]byte(raw), &categories); err != nil {
		// A corrupt entry is treated as a miss; the next Set overwrites it.
		return nil, false, nil
	}
	return categories, true, nil
}

// Set stores the category list with the cache TTL.
func (c *CategoryCache) Set(ctx context.Context, categories []string) error {
	raw, err := json.Marshal(categories)
	if err != nil {
		return fmt.Errorf("category cache marshal: %w", err)
	}
	if err := c.client.Set(ctx, categoriesKey, raw, categoriesTTL).Err(); err != nil {
		return fmt.Errorf("category cache set: %w", err)
	}
	return nil
}

// Invalidate drops the cached list.
func (c *CategoryCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, categoriesKey).Err(); err != nil {
		return fmt.Errorf("category cache invalidate: %w", err)
	}
	return nil
}
