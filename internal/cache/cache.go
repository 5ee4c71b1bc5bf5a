// Package cache stores rendered resume output in Redis, keyed by render
// fingerprint.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultTTL is how long a rendered artifact stays cached.
const DefaultTTL = 24 * time.Hour

// Cache wraps a Redis client
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// Connect opens a client for redisURL (redis://[:password@]host:port/db) and
// verifies it with a ping.
func Connect(ctx context.Context, redisURL string, ttl time.Duration) (*Cache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return New(client, ttl), nil
}

// New wraps an existing client. A non-positive ttl uses DefaultTTL.
func New(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{client: client, ttl: ttl, prefix: "render:"}
}

// Client exposes the underlying client for other Redis-backed components.
func (c *Cache) Client() *redis.Client {
	return c.client
}

// Close closes the client
func (c *Cache) Close() error {
	return c.client.Close()
}

func (c *Cache) key(format, fingerprint string) string {
	return c.prefix + format + ":" + fingerprint
}

// Get returns the cached output, or nil if there is none
func (c *Cache) Get(ctx context.Context, format, fingerprint string) ([]byte, error) {
	data, err := c.client.Get(ctx, c.key(format, fingerprint)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cached %s: %w", format, err)
	}
	return data, nil
}

// Set stores output for the cache TTL
func (c *Cache) Set(ctx context.Context, format, fingerprint string, data []byte) error {
	if err := c.client.Set(ctx, c.key(format, fingerprint), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache %s: %w", format, err)
	}
	return nil
}
