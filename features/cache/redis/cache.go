// Package redis stores translation results in Redis so repeated flashcard
// translations skip the model call.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces cache keys when Options.Prefix is empty.
const DefaultPrefix = "wordpan:translation:"

type (
	// Options configures a Cache.
	Options struct {
		// Prefix is prepended to every key. Defaults to DefaultPrefix.
		Prefix string
		// TTL bounds the lifetime of cached entries. Zero keeps entries until
		// evicted.
		TTL time.Duration
	}

	// Cache is a string cache backed by Redis.
	Cache struct {
		rdb    redis.UniversalClient
		prefix string
		ttl    time.Duration
	}
)

// New returns a cache using rdb.
func New(rdb redis.UniversalClient, opts Options) (*Cache, error) {
	if rdb == nil {
		return nil, errors.New("redis client is required")
	}
	if opts.TTL < 0 {
		return nil, fmt.Errorf("invalid cache ttl %s", opts.TTL)
	}
	prefix := opts.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Cache{rdb: rdb, prefix: prefix, ttl: opts.TTL}, nil
}

// Get returns the value stored under key. ok is false on a miss.
func (c *Cache) Get(ctx context.Context, key string) (value string, ok bool, err error) {
	v, err := c.rdb.Get(ctx, c.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cache get: %w", err)
	}
	return v, true, nil
}

// Set stores value under key.
func (c *Cache) Set(ctx context.Context, key, value string) error {
	if err := c.rdb.Set(ctx, c.prefix+key, value, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes key.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := c.rdb.Del(ctx, c.prefix+key).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}
