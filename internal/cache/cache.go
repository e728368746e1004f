// Package cache holds short-lived copies of hot public reads.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	DefaultTTL    = 30 * time.Second
	DefaultPrefix = "foodmarket:"
)

// Cache is a best-effort JSON cache. Get reports false on a miss or on any
// backend failure so callers can always fall back to the store.
type Cache interface {
	Get(ctx context.Context, key string, dst any) bool
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, keys ...string) error
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

type Option func(*RedisCache)

func WithTTL(ttl time.Duration) Option {
	return func(c *RedisCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func WithPrefix(prefix string) Option {
	return func(c *RedisCache) {
		c.prefix = prefix
	}
}

func NewRedisCache(client *redis.Client, opts ...Option) *RedisCache {
	c := &RedisCache{
		client: client,
		ttl:    DefaultTTL,
		prefix: DefaultPrefix,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewClient parses a redis:// URL and checks the server is reachable.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func (c *RedisCache) Get(ctx context.Context, key string, dst any) bool {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(val, dst) == nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := c.client.Set(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.prefix + k
	}
	if err := c.client.Del(ctx, full...).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("delete %v: %w", keys, err)
	}
	return nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Noop never stores anything.
type Noop struct{}

func (Noop) Get(context.Context, string, any) bool   { return false }
func (Noop) Set(context.Context, string, any) error  { return nil }
func (Noop) Delete(context.Context, ...string) error { return nil }
