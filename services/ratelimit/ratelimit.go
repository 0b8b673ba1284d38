package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

type Decision struct {
	Allowed    bool
	Count      int64
	Remaining  int64
	RetryAfter time.Duration
}

// Limiter is a fixed-window counter per key stored in redis.
type Limiter struct {
	client *goredis.Client
	prefix string
	limit  int64
	window time.Duration
}

func New(client *goredis.Client, prefix string, limit int, window time.Duration) *Limiter {
	return &Limiter{client: client, prefix: prefix, limit: int64(limit), window: window}
}

// Allow counts one hit for key and reports whether it fits in the window.
func (l *Limiter) Allow(ctx context.Context, key string) (Decision, error) {
	if l.client == nil {
		return Decision{}, errors.New("redis client is nil")
	}
	if key == "" || l.window <= 0 {
		return Decision{}, errors.New("invalid rate window payload")
	}
	k := l.prefix + key

	count, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("increment rate key: %w", err)
	}
	ttl, err := l.client.TTL(ctx, k).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("read rate key ttl: %w", err)
	}
	// -1 means no expiry: a fresh key, or one whose Expire failed earlier.
	if count == 1 || ttl == -1 {
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			return Decision{}, fmt.Errorf("set rate key ttl: %w", err)
		}
		ttl = l.window
	}
	if ttl < 0 {
		ttl = 0
	}

	d := Decision{Allowed: count <= l.limit, Count: count, Remaining: l.limit - count}
	if d.Remaining < 0 {
		d.Remaining = 0
	}
	if !d.Allowed {
		d.RetryAfter = ttl
	}
	return d, nil
}
