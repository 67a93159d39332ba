// Package cache holds the Redis-backed pieces: the rendered graph cache and
// the request rate limiter.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "curricula:"

// NewRedisClient connects and pings Redis.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    password,
		DB:          db,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

// GraphCache stores rendered programme graphs.
type GraphCache struct {
	rdb *goredis.Client
	ttl time.Duration
}

// NewGraphCache creates a cache whose entries live for ttl.
func NewGraphCache(rdb *goredis.Client, ttl time.Duration) *GraphCache {
	return &GraphCache{rdb: rdb, ttl: ttl}
}

// GraphKey is the cache key of a programme's rendered graph.
func GraphKey(programmeID int64) string {
	return keyPrefix + "graph:" + strconv.FormatInt(programmeID, 10)
}

// Get returns the cached image, reporting a miss with ok == false.
func (c *GraphCache) Get(ctx context.Context, programmeID int64) ([]byte, bool, error) {
	raw, err := c.rdb.Get(ctx, GraphKey(programmeID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("graph cache get: %w", err)
	}
	return raw, true, nil
}

// Set stores an image.
func (c *GraphCache) Set(ctx context.Context, programmeID int64, png []byte) error {
	if err := c.rdb.Set(ctx, GraphKey(programmeID), png, c.ttl).Err(); err != nil {
		return fmt.Errorf("graph cache set: %w", err)
	}
	return nil
}

// Invalidate drops the image of a programme after any change to it.
func (c *GraphCache) Invalidate(ctx context.Context, programmeID int64) error {
	if err := c.rdb.Del(ctx, GraphKey(programmeID)).Err(); err != nil {
		return fmt.Errorf("graph cache invalidate: %w", err)
	}
	return nil
}
