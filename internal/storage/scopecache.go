// internal/storage/scopecache.go
package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"compliance-workers/internal/common/errors"
	"compliance-workers/internal/models"
)

const scopeKeyPrefix = "scope:"

// RedisScopeCache memoizes resolved scope descriptors per assessment.
// Losing an entry is harmless; the resolver re-derives the identical
// descriptor from the intake answers.
type RedisScopeCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisScopeCache(client *redis.Client, ttl time.Duration) *RedisScopeCache {
	return &RedisScopeCache{client: client, ttl: ttl}
}

// GetCachedScope returns the cached descriptor, or nil on a miss. A corrupt
// entry counts as a miss rather than an error.
func (c *RedisScopeCache) GetCachedScope(ctx context.Context, assessmentID string) (*models.ScopeDescriptor, error) {
	val, err := c.client.Get(ctx, scopeKeyPrefix+assessmentID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewScopeCacheFailedError(err)
	}

	var descriptor models.ScopeDescriptor
	if err := json.Unmarshal([]byte(val), &descriptor); err != nil {
		return nil, nil
	}
	return &descriptor, nil
}

// SaveScope stores the descriptor with the configured TTL.
func (c *RedisScopeCache) SaveScope(ctx context.Context, assessmentID string, descriptor *models.ScopeDescriptor) error {
	data, err := json.Marshal(descriptor)
	if err != nil {
		return errors.NewScopeCacheFailedError(err)
	}
	if err := c.client.Set(ctx, scopeKeyPrefix+assessmentID, data, c.ttl).Err(); err != nil {
		return errors.NewScopeCacheFailedError(err)
	}
	return nil
}
