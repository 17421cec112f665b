package ratelimit

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock lets tests move time forward without sleeping.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestLimiter(t *testing.T, config *Config) (*Limiter, *fakeClock) {
	t.Helper()
	limiter := NewLimiter(config)
	t.Cleanup(limiter.Stop)

	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	limiter.now = clock.now
	return limiter, clock
}

func TestBucket_TakeAndRefill(t *testing.T) {
	start := time.Now()
	b := newBucket(10, 1.0, start)

	for i := 0; i < 10; i++ {
		allowed, remaining, _ := b.take(start)
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 9-i, remaining)
	}

	allowed, remaining, reset := b.take(start)
	assert.False(t, allowed)
	assert.Equal(t, 0, remaining)
	assert.Equal(t, start.Add(10*time.Second), reset)

	allowed, _, _ = b.take(start.Add(time.Second))
	assert.True(t, allowed)
	allowed, _, _ = b.take(start.Add(time.Second))
	assert.False(t, allowed)
}

func TestBucket_NeverExceedsCapacity(t *testing.T) {
	start := time.Now()
	b := newBucket(3, 1.0, start)

	_, remaining, reset := b.take(start.Add(time.Hour))
	assert.Equal(t, 2, remaining)
	assert.Equal(t, start.Add(time.Hour+time.Second), reset)
}

func TestLimiter_Allow(t *testing.T) {
	limiter, _ := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})

	for i := 0; i < 10; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/test", "GET")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 10, info.Limit)
		assert.Equal(t, 9-i, info.Remaining)
	}

	allowed, info := limiter.Allow("127.0.0.1", "/test", "GET")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Equal(t, 6*time.Second, info.RetryAfter)

	// other clients have their own bucket
	allowed, _ = limiter.Allow("10.0.0.2", "/test", "GET")
	assert.True(t, allowed)
}

func TestLimiter_RefillAfterRetryAfter(t *testing.T) {
	limiter, clock := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Minute})

	allowed, _ := limiter.Allow("c", "/x", "GET")
	require.True(t, allowed)

	allowed, info := limiter.Allow("c", "/x", "GET")
	require.False(t, allowed)

	clock.advance(info.RetryAfter)
	allowed, _ = limiter.Allow("c", "/x", "GET")
	assert.True(t, allowed)
}

func TestLimiter_WhitelistBlacklist(t *testing.T) {
	limiter, _ := newTestLimiter(t, &Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"127.0.0.1": true},
		Blacklist:     map[string]bool{"192.168.1.1": true},
	})

	for i := 0; i < 100; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/test", "GET")
		require.True(t, allowed)
		assert.Equal(t, 0, info.Limit)
	}

	allowed, _ := limiter.Allow("192.168.1.1", "/test", "GET")
	assert.False(t, allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	limiter, _ := newTestLimiter(t, &Config{Enabled: false})

	for i := 0; i < 100; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/test", "GET")
		require.True(t, allowed)
		assert.Equal(t, 0, info.Limit)
	}
	assert.Equal(t, 0, limiter.Len())
}

func TestLimiter_DefaultEndpoints(t *testing.T) {
	limiter, _ := newTestLimiter(t, DefaultConfig())

	for i := 0; i < 5; i++ {
		allowed, info := limiter.Allow("c", PathParse, "POST")
		require.True(t, allowed, "parse request %d", i+1)
		assert.Equal(t, 30, info.Limit)
	}
	allowed, info := limiter.Allow("c", PathParse, "POST")
	assert.False(t, allowed, "parse burst should be exhausted")
	assert.Equal(t, 2*time.Minute, info.RetryAfter)

	// streaming parse has its own bucket
	allowed, _ = limiter.Allow("c", PathParseStream, "POST")
	assert.True(t, allowed)

	allowed, info = limiter.Allow("c", PathDownload, "POST")
	assert.True(t, allowed)
	assert.Equal(t, 60, info.Limit)

	for i := 0; i < 1000; i++ {
		allowed, _ := limiter.Allow("c", PathHealth, "GET")
		require.True(t, allowed)
	}
}

func TestLimiter_PrefixMatch(t *testing.T) {
	limiter, _ := newTestLimiter(t, &Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/files/", Method: "GET", Limit: 2, Window: time.Minute},
		},
	})

	allowed, info := limiter.Allow("c", "/files/a", "GET")
	require.True(t, allowed)
	assert.Equal(t, 2, info.Limit)

	allowed, _ = limiter.Allow("c", "/files/b", "GET")
	require.True(t, allowed)

	allowed, _ = limiter.Allow("c", "/files/c", "GET")
	assert.False(t, allowed, "prefix paths share one bucket")

	allowed, info = limiter.Allow("c", "/files/a", "POST")
	assert.True(t, allowed)
	assert.Equal(t, 1000, info.Limit)
}

func TestLimiter_Concurrent(t *testing.T) {
	limiter, _ := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 100, DefaultWindow: time.Minute})

	var wg sync.WaitGroup
	var allowedCount atomic.Int32
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if allowed, _ := limiter.Allow("127.0.0.1", "/test", "GET"); allowed {
				allowedCount.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(100), allowedCount.Load())
}

func TestLimiter_Cleanup(t *testing.T) {
	limiter, clock := newTestLimiter(t, &Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
		IdleTTL:       time.Minute,
	})

	for i := 0; i < 10; i++ {
		allowed, _ := limiter.Allow(fmt.Sprintf("127.0.0.%d", i+1), "/test", "GET")
		require.True(t, allowed)
	}
	require.Equal(t, 10, limiter.Len())

	clock.advance(2 * time.Minute)
	for i := 0; i < 5; i++ {
		limiter.Allow(fmt.Sprintf("127.0.0.%d", i+1), "/test", "GET")
	}

	limiter.cleanup()
	assert.Equal(t, 5, limiter.Len())
}

func TestLimiter_StopIsIdempotent(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 1, CleanupInterval: time.Millisecond})
	assert.NotPanics(t, func() {
		limiter.Stop()
		limiter.Stop()
	})
}

func TestNewLimiter_NilConfig(t *testing.T) {
	limiter, _ := newTestLimiter(t, nil)

	allowed, info := limiter.Allow("127.0.0.1", "/test", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 300, info.Limit)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("RATE_LIMIT_PARSE_LIMIT", "3")
	t.Setenv("RATE_LIMIT_PARSE_BURST", "1")
	t.Setenv("RATE_LIMIT_DOWNLOAD_WINDOW", "10s")
	t.Setenv("RATE_LIMIT_WHITELIST", "10.0.0.1, 10.0.0.2")

	config := LoadConfig()
	require.True(t, config.Enabled)
	assert.True(t, config.Whitelist["10.0.0.2"])

	parse := MatchEndpoint(PathParse, "POST", config)
	assert.Equal(t, 3, parse.Limit)
	assert.Equal(t, 1, parse.Burst)

	download := MatchEndpoint(PathDownload, "POST", config)
	assert.Equal(t, 10*time.Second, download.Window)
}

func TestLoadConfig_Disabled(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	assert.False(t, LoadConfig().Enabled)
}
