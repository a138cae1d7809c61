package ratelimit

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// Limiter is the interface for client-side request pacing.
type Limiter interface {
	// Allow returns true if the request should proceed.
	Allow() bool
	// Wait blocks until the request can proceed or the context is canceled.
	Wait(ctx context.Context) error
}

// TokenBucket implements a token bucket limiter with a 2x burst.
type TokenBucket struct {
	mu         sync.Mutex
	tokens     float64
	maxTokens  float64
	refillRate float64
	lastRefill time.Time
}

// NewTokenBucket creates a token bucket allowing ratePerSecond requests
// per second on average, with bursts up to twice that.
func NewTokenBucket(ratePerSecond float64) *TokenBucket {
	return &TokenBucket{
		tokens:     ratePerSecond,
		maxTokens:  ratePerSecond * 2,
		refillRate: ratePerSecond,
		lastRefill: time.Now(),
	}
}

// Allow consumes a token if one is available.
func (tb *TokenBucket) Allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	tb.refill()
	if tb.tokens >= 1 {
		tb.tokens--
		return true
	}
	return false
}

// Wait blocks until a token is available or ctx is canceled.
func (tb *TokenBucket) Wait(ctx context.Context) error {
	for {
		if tb.Allow() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(10 * time.Millisecond):
			// Retry.
		}
	}
}

func (tb *TokenBucket) refill() {
	now := time.Now()
	elapsed := now.Sub(tb.lastRefill).Seconds()
	tb.tokens = min(tb.maxTokens, tb.tokens+elapsed*tb.refillRate)
	tb.lastRefill = now
}

// HeaderLimiter paces requests against a server bucket learned from
// response headers. Until the first Observe it allows everything; once a
// response reports an exhausted bucket, Wait blocks until the reported
// reset time.
type HeaderLimiter struct {
	mu       sync.Mutex
	bucket   Bucket
	useClock bool
	observed bool
}

// NewHeaderLimiter creates a limiter that learns its budget from observed
// responses. With useClock, reset delays are derived from the absolute
// reset timestamp instead of the server-measured Reset-After.
func NewHeaderLimiter(useClock bool) *HeaderLimiter {
	return &HeaderLimiter{useClock: useClock}
}

// Observe records the rate-limit state from a response's headers.
// Malformed headers are ignored; a limiter with stale state fails open.
func (l *HeaderLimiter) Observe(h http.Header) {
	b, err := ParseHeaders(h)
	if err != nil {
		return
	}
	if l.useClock {
		b.ResetAfter = ParseResetAfter(h, true)
		b.ResetAt = time.Now().Add(b.ResetAfter)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.bucket = b
	l.observed = true
}

// Bucket returns the last observed bucket state.
func (l *HeaderLimiter) Bucket() (Bucket, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.bucket, l.observed
}

// Allow reports whether a request may proceed without waiting.
func (l *HeaderLimiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.observed || !l.bucket.Exhausted() {
		return true
	}
	if time.Now().After(l.bucket.ResetAt) {
		// Window rolled over; budget is fresh again.
		l.bucket.Remaining = l.bucket.Limit
		return true
	}
	return false
}

// Wait blocks until the bucket allows a request or ctx is canceled.
func (l *HeaderLimiter) Wait(ctx context.Context) error {
	for {
		if l.Allow() {
			return nil
		}

		l.mu.Lock()
		delay := time.Until(l.bucket.ResetAt)
		l.mu.Unlock()
		if delay <= 0 {
			continue
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
			// Re-check; another goroutine may have drained the fresh window.
		}
	}
}
