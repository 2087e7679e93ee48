// Package redisx holds the Redis-backed helpers: order idempotency keys,
// event dedup markers and the per-customer notification inbox.
package redisx

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

func New(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
}

func Ping(ctx context.Context, rdb redis.Cmdable) error {
	return rdb.Ping(ctx).Err()
}

// MarkOnce sets key if it is absent. It reports false when the key was
// already there.
func MarkOnce(ctx context.Context, rdb redis.Cmdable, key string, ttl time.Duration) (bool, error) {
	return rdb.SetNX(ctx, key, "1", ttl).Result()
}
