package ratelimit

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestLimiter(cfg *Config) (*Limiter, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	l := NewLimiter(cfg)
	l.now = clock.Now
	return l, clock
}

func TestTokenBucket_Take(t *testing.T) {
	start := time.Now()
	bucket := newTokenBucket(10, 1.0, start)

	for i := 0; i < 10; i++ {
		allowed, remaining, _ := bucket.take(start)
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 9-i, remaining)
	}

	allowed, _, reset := bucket.take(start)
	assert.False(t, allowed)
	assert.Equal(t, start.Add(10*time.Second), reset)

	allowed, _, _ = bucket.take(start.Add(1100 * time.Millisecond))
	assert.True(t, allowed, "one token refills after a second")
}

func TestLimiter_Allow(t *testing.T) {
	l, _ := newTestLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})
	defer l.Stop()
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		info := l.Allow(ctx, "127.0.0.1", "/resume", "GET")
		require.True(t, info.Allowed, "request %d", i+1)
		assert.Equal(t, 10, info.Limit)
		assert.Equal(t, 9-i, info.Remaining)
	}

	info := l.Allow(ctx, "127.0.0.1", "/resume", "GET")
	assert.False(t, info.Allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Equal(t, 6*time.Second, info.RetryAfter)

	// Other clients have their own bucket.
	assert.True(t, l.Allow(ctx, "10.0.0.1", "/resume", "GET").Allowed)
}

func TestLimiter_DefaultEndpoints(t *testing.T) {
	l, clock := newTestLimiter(DefaultConfig())
	defer l.Stop()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		require.True(t, l.Allow(ctx, "c", "/resume/generate", "POST").Allowed)
	}
	info := l.Allow(ctx, "c", "/resume/generate", "POST")
	assert.False(t, info.Allowed, "generate allows a burst of two")
	assert.Equal(t, 10, info.Limit)

	clock.Advance(7 * time.Minute)
	assert.True(t, l.Allow(ctx, "c", "/resume/generate", "POST").Allowed)
}

func TestLimiter_UnlimitedPaths(t *testing.T) {
	l, _ := newTestLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Minute})
	defer l.Stop()

	for i := 0; i < 5; i++ {
		assert.True(t, l.Allow(context.Background(), "c", "/health", "GET").Allowed)
		assert.True(t, l.Allow(context.Background(), "c", "/metrics", "GET").Allowed)
	}
}

func TestLimiter_WhitelistBlacklistDisabled(t *testing.T) {
	ctx := context.Background()

	l, _ := newTestLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"good": true},
		Blacklist:     map[string]bool{"bad": true},
	})
	defer l.Stop()

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow(ctx, "good", "/x", "GET").Allowed)
		assert.False(t, l.Allow(ctx, "bad", "/x", "GET").Allowed)
	}

	disabled, _ := newTestLimiter(&Config{Enabled: false})
	defer disabled.Stop()
	for i := 0; i < 3; i++ {
		assert.True(t, disabled.Allow(ctx, "anyone", "/resume/pdf", "GET").Allowed)
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	l, _ := newTestLimiter(&Config{Enabled: true, DefaultLimit: 100, DefaultWindow: time.Hour})
	defer l.Stop()

	var allowed atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Allow(context.Background(), "c", "/x", "GET").Allowed {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(100), allowed.Load())
}

func TestLimiter_EvictIdle(t *testing.T) {
	l, clock := newTestLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})
	defer l.Stop()

	for i := 0; i < 4; i++ {
		l.Allow(context.Background(), fmt.Sprintf("c%d", i), "/x", "GET")
	}
	clock.Advance(2 * time.Hour)
	l.Allow(context.Background(), "c0", "/x", "GET")

	assert.Equal(t, 3, l.evictIdle(clock.Now().Add(-time.Hour)))
	assert.Len(t, l.buckets, 1)
}

func TestNewLimiter_NilConfig(t *testing.T) {
	l := NewLimiter(nil)
	defer l.Stop()

	info := l.Allow(context.Background(), "127.0.0.1", "/resume", "GET")
	assert.True(t, info.Allowed)
	assert.Equal(t, 1000, info.Limit)
}

func TestLimiter_StopIsIdempotent(t *testing.T) {
	l := NewLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Minute, CleanupInterval: time.Millisecond})
	l.Stop()
	l.Stop()
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/resume/pdf", Method: "GET", Limit: 1},
		{Path: "/admin/", Method: "POST", Limit: 2},
	}

	assert.Equal(t, 1, MatchEndpoint("/resume/pdf", "GET", configs).Limit)
	assert.Nil(t, MatchEndpoint("/resume/pdf", "POST", configs))
	assert.Equal(t, 2, MatchEndpoint("/admin/users", "POST", configs).Limit)
	assert.Equal(t, 0, MatchEndpoint("/health", "GET", configs).Limit)
	assert.Nil(t, MatchEndpoint("/resume", "GET", configs))
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "42")
	t.Setenv("RATE_LIMIT_RESUME_PDF_LIMIT", "7")
	t.Setenv("RATE_LIMIT_RESUME_PDF_WINDOW", "30s")
	t.Setenv("RATE_LIMIT_WHITELIST", "1.1.1.1, 2.2.2.2")

	cfg := LoadConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 42, cfg.DefaultLimit)
	assert.True(t, cfg.Whitelist["2.2.2.2"])

	pdf := MatchEndpoint("/resume/pdf", "GET", cfg.EndpointConfigs)
	require.NotNil(t, pdf)
	assert.Equal(t, 7, pdf.Limit)
	assert.Equal(t, 30*time.Second, pdf.Window)

	t.Setenv("RATE_LIMIT_ENABLED", "false")
	assert.False(t, LoadConfig().Enabled)
}

func TestRedisLimiter_Allow(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("Skipping integration test: REDIS_URL not set")
	}
	opts, err := redis.ParseURL(url)
	require.NoError(t, err)
	client := redis.NewClient(opts)
	defer client.Close()

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Skipping integration test: redis unreachable: %v", err)
	}

	l := NewRedisLimiter(client, &Config{Enabled: true, DefaultLimit: 3, DefaultWindow: time.Minute})
	l.prefix = fmt.Sprintf("rl-test-%d:", time.Now().UnixNano())

	for i := 0; i < 3; i++ {
		info := l.Allow(ctx, "c", "/x", "GET")
		require.True(t, info.Allowed, "request %d", i+1)
		assert.Equal(t, 2-i, info.Remaining)
	}
	info := l.Allow(ctx, "c", "/x", "GET")
	assert.False(t, info.Allowed)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
}
