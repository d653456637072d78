// Package ratelimit throttles clients using per-endpoint token buckets.
package ratelimit

import (
	"sync"
	"time"
)

// Info describes the outcome of a rate limit check.
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
	EndpointConfigs []EndpointConfig
}

// bucket tracks the token balance for one client and endpoint pair.
// Token counts are fractional so slow refill rates (one token per few
// minutes) accumulate correctly between requests.
type bucket struct {
	tokens   float64
	capacity float64
	rate     float64 // tokens per second
	refilled time.Time
	lastSeen time.Time
}

func newBucket(ec *EndpointConfig, now time.Time) *bucket {
	capacity := ec.Burst
	if capacity <= 0 {
		capacity = ec.Limit
	}
	return &bucket{
		tokens:   float64(capacity),
		capacity: float64(capacity),
		rate:     float64(ec.Limit) / ec.Window.Seconds(),
		refilled: now,
		lastSeen: now,
	}
}

// take refills the bucket for the time elapsed since the last call,
// then consumes one token if available. It reports whether the request
// is allowed, the tokens left, the time at which the bucket is full
// again, and for denied requests how long until the next token.
func (b *bucket) take(now time.Time) (allowed bool, remaining int, reset time.Time, retry time.Duration) {
	b.tokens = min(b.capacity, b.tokens+now.Sub(b.refilled).Seconds()*b.rate)
	b.refilled = now
	b.lastSeen = now

	if b.tokens >= 1 {
		b.tokens--
		allowed = true
	} else {
		retry = time.Duration((1 - b.tokens) / b.rate * float64(time.Second))
	}

	reset = now
	if b.tokens < b.capacity {
		reset = now.Add(time.Duration((b.capacity - b.tokens) / b.rate * float64(time.Second)))
	}
	return allowed, int(b.tokens), reset, retry
}

// Limiter tracks token buckets for every client and endpoint pair.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	config  *Config
	ticker  *time.Ticker
	done    chan struct{}
	stop    sync.Once
}

// NewLimiter creates a rate limiter with the given configuration.
// A nil config enables the limiter with the default limit and window.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    1000,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
		}
	}

	l := &Limiter{
		buckets: make(map[string]*bucket),
		config:  config,
	}

	if config.Enabled && config.CleanupInterval > 0 {
		l.ticker = time.NewTicker(config.CleanupInterval)
		l.done = make(chan struct{})
		go l.janitor()
	}

	return l
}

// Allow checks whether a request from the given client is allowed for
// the specified endpoint and method.
func (l *Limiter) Allow(clientID string, endpoint string, method string) (bool, Info) {
	if !l.config.Enabled {
		return true, Info{Allowed: true}
	}

	ec := MatchEndpoint(endpoint, method, l.config.EndpointConfigs)
	if ec == nil {
		ec = &EndpointConfig{
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
		}
	}

	// Unlimited endpoint, e.g. the health check.
	if ec.Limit <= 0 {
		return true, Info{Allowed: true}
	}

	now := time.Now()
	key := clientID + ":" + method + ":" + endpoint

	l.mu.Lock()
	b, ok := l.buckets[key]
	if !ok {
		b = newBucket(ec, now)
		l.buckets[key] = b
	}
	allowed, remaining, reset, retry := b.take(now)
	l.mu.Unlock()

	return allowed, Info{
		Allowed:    allowed,
		Limit:      ec.Limit,
		Remaining:  remaining,
		ResetTime:  reset,
		RetryAfter: retry,
	}
}

func (l *Limiter) janitor() {
	for {
		select {
		case <-l.ticker.C:
			l.evictIdle(time.Now().Add(-time.Hour))
		case <-l.done:
			return
		}
	}
}

// evictIdle drops buckets not seen since the cutoff.
func (l *Limiter) evictIdle(cutoff time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for key, b := range l.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// Stop stops the cleanup goroutine. Safe to call more than once.
func (l *Limiter) Stop() {
	l.stop.Do(func() {
		if l.ticker != nil {
			l.ticker.Stop()
		}
		if l.done != nil {
			close(l.done)
		}
	})
}
