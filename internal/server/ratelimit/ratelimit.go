// Package ratelimit throttles API requests per client and endpoint with token buckets.
package ratelimit

import (
	"math"
	"sync"
	"time"
)

// bucket is a token bucket: capacity tokens, refilled at rate tokens per second.
type bucket struct {
	capacity   float64
	rate       float64
	tokens     float64
	lastRefill time.Time
	lastSeen   time.Time
}

func newBucket(capacity int, rate float64, now time.Time) *bucket {
	return &bucket{
		capacity:   float64(capacity),
		rate:       rate,
		tokens:     float64(capacity),
		lastRefill: now,
		lastSeen:   now,
	}
}

func (b *bucket) refill(now time.Time) {
	b.tokens = min(b.capacity, b.tokens+now.Sub(b.lastRefill).Seconds()*b.rate)
	b.lastRefill = now
}

// take consumes one token if available and reports the bucket state afterwards.
func (b *bucket) take(now time.Time) (allowed bool, remaining int, reset time.Time) {
	b.refill(now)
	b.lastSeen = now

	if b.tokens >= 1 {
		b.tokens--
		allowed = true
	}

	reset = now
	if missing := b.capacity - b.tokens; missing > 0 && b.rate > 0 {
		reset = now.Add(time.Duration(missing / b.rate * float64(time.Second)))
	}
	return allowed, int(b.tokens), reset
}

// Info describes the limit applied to one request.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	IdleTTL         time.Duration // buckets unused this long are dropped
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	Exempt          []string // paths never limited
	EndpointConfigs []EndpointConfig
}

// Limiter tracks one bucket per client, endpoint and method.
type Limiter struct {
	config *Config

	mu      sync.Mutex
	buckets map[string]*bucket

	stop     chan struct{}
	stopOnce sync.Once
	now      func() time.Time
}

// NewLimiter creates a limiter and starts its cleanup goroutine. Call Stop to release it.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = DefaultConfig()
	}

	l := &Limiter{
		config:  config,
		buckets: make(map[string]*bucket),
		stop:    make(chan struct{}),
		now:     time.Now,
	}

	if config.Enabled && config.CleanupInterval > 0 {
		go l.cleanupLoop(config.CleanupInterval)
	}
	return l
}

// Allow consumes a token for the request and reports whether it may proceed.
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{}
	}

	endpoint := MatchEndpoint(path, method, l.config)
	if endpoint.Limit <= 0 {
		return true, Info{Allowed: true}
	}

	key := clientID + ":" + endpoint.key(path) + ":" + method
	now := l.now()

	l.mu.Lock()
	b, ok := l.buckets[key]
	if !ok {
		b = newBucket(endpoint.capacity(), endpoint.rate(), now)
		l.buckets[key] = b
	}
	allowed, remaining, reset := b.take(now)
	l.mu.Unlock()

	info := Info{
		Allowed:   allowed,
		Limit:     endpoint.Limit,
		Remaining: remaining,
		ResetTime: reset,
	}
	if !allowed {
		// next token, not a full bucket
		info.RetryAfter = time.Duration(math.Round(float64(time.Second) / endpoint.rate()))
	}
	return allowed, info
}

// Len returns the number of live buckets.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

func (l *Limiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.cleanup()
		case <-l.stop:
			return
		}
	}
}

// cleanup drops buckets idle for longer than IdleTTL.
func (l *Limiter) cleanup() {
	ttl := l.config.IdleTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	cutoff := l.now().Add(-ttl)

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// Stop ends the cleanup goroutine. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}
