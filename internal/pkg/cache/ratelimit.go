package cache

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Decision is the outcome of one rate limit check.
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// RateLimiter is a fixed-window counter per client key.
type RateLimiter struct {
	rdb    *goredis.Client
	limit  int
	window time.Duration
	now    func() time.Time
}

// NewRateLimiter allows limit requests per window for each key.
func NewRateLimiter(rdb *goredis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{rdb: rdb, limit: limit, window: window, now: time.Now}
}

// WindowKey buckets key into the window containing now.
func WindowKey(key string, window time.Duration, now time.Time) string {
	bucket := now.UnixNano() / int64(window)
	return fmt.Sprintf("%sratelimit:%s:%d", keyPrefix, key, bucket)
}

// Allow counts one request for key.
func (l *RateLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	now := l.now()
	windowKey := WindowKey(key, l.window, now)

	var incr *goredis.IntCmd
	_, err := l.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		incr = pipe.Incr(ctx, windowKey)
		pipe.ExpireNX(ctx, windowKey, l.window)
		return nil
	})
	if err != nil {
		return Decision{}, fmt.Errorf("rate limit: %w", err)
	}

	return decide(incr.Val(), l.limit, l.window, now), nil
}

func decide(count int64, limit int, window time.Duration, now time.Time) Decision {
	if count <= int64(limit) {
		return Decision{Allowed: true, Remaining: limit - int(count)}
	}
	elapsed := time.Duration(now.UnixNano() % int64(window))
	return Decision{Allowed: false, RetryAfter: window - elapsed}
}
