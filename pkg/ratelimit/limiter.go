// Package ratelimit paces outbound model calls so the application stays
// under the provider quota instead of bouncing off 429 responses. The retry
// executor handles the failures that still get through.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter gates requests against a client-side quota.
type Limiter interface {
	// Allow reports whether a request may proceed right now.
	Allow() bool
	// Wait blocks until the limiter admits another request.
	Wait()
	// Reset restores the limiter to its initial state.
	Reset()
}

// TokenBucket is a token bucket limiter: capacity tokens per refill period.
type TokenBucket struct {
	capacity     int
	tokens       int
	refillPeriod time.Duration
	lastRefill   time.Time
	mu           sync.Mutex
}

// NewTokenBucket creates a token bucket with the given capacity and refill
// period.
func NewTokenBucket(capacity int, refillPeriod time.Duration) *TokenBucket {
	return &TokenBucket{
		capacity:     capacity,
		tokens:       capacity,
		refillPeriod: refillPeriod,
		lastRefill:   time.Now(),
	}
}

// NewPerMinute creates a bucket admitting requestsPerMinute requests with
// the given burst capacity.
func NewPerMinute(requestsPerMinute, burst int) *TokenBucket {
	if requestsPerMinute < 1 {
		requestsPerMinute = 1
	}
	if burst < 1 {
		burst = 1
	}
	return NewTokenBucket(burst, time.Minute/time.Duration(requestsPerMinute))
}

// Allow consumes a token if one is available.
func (tb *TokenBucket) Allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refill()

	if tb.tokens > 0 {
		tb.tokens--
		return true
	}

	return false
}

// Wait blocks until a token is available.
func (tb *TokenBucket) Wait() {
	for !tb.Allow() {
		tb.mu.Lock()
		untilRefill := tb.refillPeriod - time.Since(tb.lastRefill)
		tb.mu.Unlock()

		if untilRefill > 0 {
			time.Sleep(untilRefill)
		} else {
			time.Sleep(10 * time.Millisecond)
		}
	}
}

// Reset restores the bucket to full capacity.
func (tb *TokenBucket) Reset() {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.tokens = tb.capacity
	tb.lastRefill = time.Now()
}

// refill adds tokens for each whole refill period elapsed. Caller holds the
// lock.
func (tb *TokenBucket) refill() {
	now := time.Now()
	elapsed := now.Sub(tb.lastRefill)

	if tb.refillPeriod <= 0 {
		tb.tokens = tb.capacity
		return
	}

	refills := int(elapsed / tb.refillPeriod)
	if refills > 0 {
		tb.tokens += refills
		if tb.tokens > tb.capacity {
			tb.tokens = tb.capacity
		}
		tb.lastRefill = tb.lastRefill.Add(time.Duration(refills) * tb.refillPeriod)
	}
}

// Nop is a limiter that admits everything. Useful in tests and for demos
// that make a bounded number of calls.
type Nop struct{}

func (Nop) Allow() bool { return true }
func (Nop) Wait()       {}
func (Nop) Reset()      {}
