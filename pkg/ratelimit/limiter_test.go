package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenBucket_AllowUpToCapacity(t *testing.T) {
	t.Parallel()

	tb := NewTokenBucket(3, time.Hour)

	assert.True(t, tb.Allow())
	assert.True(t, tb.Allow())
	assert.True(t, tb.Allow())
	assert.False(t, tb.Allow(), "bucket should be empty")
}

func TestTokenBucket_RefillsOverTime(t *testing.T) {
	t.Parallel()

	tb := NewTokenBucket(1, 20*time.Millisecond)

	require.True(t, tb.Allow())
	require.False(t, tb.Allow())

	time.Sleep(30 * time.Millisecond)
	assert.True(t, tb.Allow(), "token should have refilled")
}

func TestTokenBucket_Reset(t *testing.T) {
	t.Parallel()

	tb := NewTokenBucket(2, time.Hour)
	tb.Allow()
	tb.Allow()
	require.False(t, tb.Allow())

	tb.Reset()
	assert.True(t, tb.Allow())
}

func TestTokenBucket_Wait(t *testing.T) {
	t.Parallel()

	tb := NewTokenBucket(1, 15*time.Millisecond)
	require.True(t, tb.Allow())

	start := time.Now()
	tb.Wait()
	assert.GreaterOrEqual(t, time.Since(start), 5*time.Millisecond)
}

func TestNewPerMinute(t *testing.T) {
	t.Parallel()

	tb := NewPerMinute(60, 2)
	assert.Equal(t, time.Second, tb.refillPeriod)
	assert.Equal(t, 2, tb.capacity)

	// Degenerate values clamp instead of panicking.
	tb = NewPerMinute(0, 0)
	assert.True(t, tb.Allow())
}

func TestNop(t *testing.T) {
	t.Parallel()

	var l Limiter = Nop{}
	for i := 0; i < 100; i++ {
		assert.True(t, l.Allow())
	}
	l.Wait()
	l.Reset()
}
