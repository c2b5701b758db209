// Package cache provides a Redis-backed cache for computed recommendation
// lists.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultRecommendationTTL bounds how stale a cached recommendation list
// can get before it is recomputed.
const DefaultRecommendationTTL = 5 * time.Minute

// NewRedisClient creates and verifies a Redis client connection.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return rdb, nil
}

// Recommendations caches serialized recommendation payloads per candidate.
// Every failure degrades to a cache miss; Redis being down must never turn
// into a request error.
type Recommendations struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRecommendations creates a recommendation cache. A nil client produces
// a disabled cache where Get always misses.
func NewRecommendations(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *Recommendations {
	if ttl <= 0 {
		ttl = DefaultRecommendationTTL
	}
	return &Recommendations{rdb: rdb, ttl: ttl, logger: logger}
}

func recommendationKey(candidateID uuid.UUID) string {
	return "recommendations:" + candidateID.String()
}

// Get returns the cached payload for a candidate, or ok=false on any miss
// or cache fault.
func (c *Recommendations) Get(ctx context.Context, candidateID uuid.UUID, dest any) bool {
	if c.rdb == nil {
		return false
	}
	data, err := c.rdb.Get(ctx, recommendationKey(candidateID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("recommendation cache read failed", zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		c.logger.Warn("recommendation cache payload corrupt", zap.Error(err))
		return false
	}
	return true
}

// Set stores a computed payload for a candidate. Failures are logged only.
func (c *Recommendations) Set(ctx context.Context, candidateID uuid.UUID, payload any) {
	if c.rdb == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		c.logger.Warn("recommendation cache marshal failed", zap.Error(err))
		return
	}
	if err := c.rdb.Set(ctx, recommendationKey(candidateID), data, c.ttl).Err(); err != nil {
		c.logger.Warn("recommendation cache write failed", zap.Error(err))
	}
}

// Invalidate drops a candidate's cached list, e.g. after a skill update.
func (c *Recommendations) Invalidate(ctx context.Context, candidateID uuid.UUID) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, recommendationKey(candidateID)).Err(); err != nil {
		c.logger.Warn("recommendation cache invalidation failed", zap.Error(err))
	}
}
