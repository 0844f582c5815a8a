// Package ratelimit enforces a per-key cooldown between requests.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// Limiter admits at most one request per key within its cooldown window.
type Limiter interface {
	// Allow reports whether key may proceed now, and starts a new window when it may.
	Allow(ctx context.Context, key string) (bool, error)
}

// MemoryLimiter keeps windows in a process-local go-cache.
type MemoryLimiter struct {
	cooldown time.Duration
	cache    *cache.Cache
}

func NewMemoryLimiter(cooldown time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		cooldown: cooldown,
		cache:    cache.New(cooldown, 10*time.Minute),
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	// Add fails while an unexpired window exists for key
	if err := l.cache.Add(key, struct{}{}, l.cooldown); err != nil {
		return false, nil
	}
	return true, nil
}

// RedisLimiter shares windows across instances with SET NX PX.
type RedisLimiter struct {
	cooldown time.Duration
	rdb      *redis.Client
	prefix   string
}

func NewRedisLimiter(rdb *redis.Client, prefix string, cooldown time.Duration) *RedisLimiter {
	return &RedisLimiter{
		cooldown: cooldown,
		rdb:      rdb,
		prefix:   prefix,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	ok, err := l.rdb.SetNX(ctx, l.prefix+key, 1, l.cooldown).Result()
	if err != nil {
		return false, fmt.Errorf("redis rate limit: %w", err)
	}
	return ok, nil
}

// Unlimited admits everything. Used when the cooldown is zero.
type Unlimited struct{}

func (Unlimited) Allow(context.Context, string) (bool, error) {
	return true, nil
}
