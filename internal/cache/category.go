// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"quillpress/internal/models"
)

const (
	// CategoryListKey is the Valkey key holding the cached category list.
	CategoryListKey = "categories:all"

	// DefaultCategoryTTL is how long the category list stays cached.
	DefaultCategoryTTL = 10 * time.Minute
)

// CategoryCache caches the full alphabetical category list in Valkey.
// Errors are logged and treated as misses; the cache never fails a request.
type CategoryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCategoryCache creates a category cache backed by the given Valkey client.
func NewCategoryCache(client *redis.Client, ttl time.Duration) *CategoryCache {
	if ttl == 0 {
		ttl = DefaultCategoryTTL
	}
	return &CategoryCache{client: client, ttl: ttl}
}

// Get returns the cached category list, or false on a miss.
func (cc *CategoryCache) Get(ctx context.Context) ([]models.Category, bool) {
	val, err := cc.client.Get(ctx, CategoryListKey).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("category cache get error", "error", err)
		return nil, false
	}

	var cats []models.Category
	if err := json.Unmarshal(val, &cats); err != nil {
		slog.Warn("category cache decode error", "error", err)
		return nil, false
	}
	slog.Debug("category cache hit", "count", len(cats))
	return cats, true
}

// Set stores the category list with the configured TTL.
func (cc *CategoryCache) Set(ctx context.Context, cats []models.Category) {
	data, err := json.Marshal(cats)
	if err != nil {
		slog.Warn("category cache encode error", "error", err)
		return
	}
	if err := cc.client.Set(ctx, CategoryListKey, data, cc.ttl).Err(); err != nil {
		slog.Warn("category cache set error", "error", err)
	}
}

// Invalidate drops the cached list. Called after every category mutation.
func (cc *CategoryCache) Invalidate(ctx context.Context) {
	if err := cc.client.Del(ctx, CategoryListKey).Err(); err != nil {
		slog.Warn("category cache invalidate error", "error", err)
		return
	}
	slog.Debug("category cache invalidated")
}
