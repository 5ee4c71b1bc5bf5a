package ratelimit

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter counts requests in fixed windows shared by every server
// replica. Burst is not applied: each window admits Limit requests.
type RedisLimiter struct {
	client *redis.Client
	config *Config
	prefix string
}

// NewRedisLimiter creates a limiter that stores counters under keys prefixed
// with "rl:".
func NewRedisLimiter(client *redis.Client, config *Config) *RedisLimiter {
	if config == nil {
		config = DefaultConfig()
	}
	return &RedisLimiter{client: client, config: config, prefix: "rl:"}
}

// Allow counts a request from clientID. Requests are allowed when Redis is
// unreachable.
func (l *RedisLimiter) Allow(ctx context.Context, clientID, path, method string) Info {
	ec, d := l.config.policy(clientID, path, method)
	switch d {
	case decisionAllow:
		return Info{Allowed: true}
	case decisionDeny:
		return Info{Allowed: false}
	}

	key := l.prefix + clientID + ":" + ec.Method + ":" + ec.Path
	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, ec.Window)
	ttl := pipe.PTTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("[rate-limit] redis unavailable, allowing request: %v", err)
		return Info{Allowed: true, Limit: ec.Limit}
	}

	count := int(incr.Val())
	window := ttl.Val()
	if window < 0 {
		window = ec.Window
	}

	info := Info{
		Allowed:   count <= ec.Limit,
		Limit:     ec.Limit,
		Remaining: max(ec.Limit-count, 0),
		ResetTime: time.Now().Add(window),
	}
	if !info.Allowed {
		info.RetryAfter = window
	}
	return info
}

// Stop exists so both limiters can be shut down the same way.
func (l *RedisLimiter) Stop() {}
