package retry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "tripagent/pkg/errors"
	"tripagent/pkg/logger"
)

func TestJitterAmount_ZeroJitter(t *testing.T) {
	t.Parallel()

	for i := 0; i < 100; i++ {
		assert.Zero(t, jitterAmount(time.Second, 0))
	}
}

func TestJitterAmount_FractionalBoundedByDelayShare(t *testing.T) {
	t.Parallel()

	delay := time.Second
	jitter := 0.2

	for i := 0; i < 1000; i++ {
		j := jitterAmount(delay, jitter)
		assert.GreaterOrEqual(t, j, time.Duration(0))
		assert.LessOrEqual(t, j, 200*time.Millisecond)
	}
}

func TestJitterAmount_AbsoluteBoundedBySeconds(t *testing.T) {
	t.Parallel()

	// jitter >= 1 is an absolute bound in seconds, independent of the delay.
	delay := 10 * time.Millisecond
	jitter := 2.0

	for i := 0; i < 1000; i++ {
		j := jitterAmount(delay, jitter)
		assert.GreaterOrEqual(t, j, time.Duration(0))
		assert.LessOrEqual(t, j, 2*time.Second)
	}
}

func TestJitterAmount_ExactlyOneIsAbsolute(t *testing.T) {
	t.Parallel()

	// The fractional branch is strictly below 1: jitter == 1 means "up to
	// one second", even when the delay is far smaller.
	delay := time.Millisecond

	sawAboveDelayShare := false
	for i := 0; i < 10000; i++ {
		j := jitterAmount(delay, 1.0)
		require.LessOrEqual(t, j, time.Second)
		if j > delay {
			sawAboveDelayShare = true
		}
	}
	assert.True(t, sawAboveDelayShare,
		"jitter of 1 on a 1ms delay should regularly exceed 1ms, proving the absolute branch")
}

func TestJitterAmount_Varies(t *testing.T) {
	t.Parallel()

	seen := make(map[time.Duration]bool)
	for i := 0; i < 50; i++ {
		seen[jitterAmount(time.Second, 0.5)] = true
	}
	assert.Greater(t, len(seen), 1, "jitter should be drawn fresh each time")
}

func TestDo_SleepWithinJitterBounds(t *testing.T) {
	t.Parallel()

	// For jitter fraction j, each sleep lies in [delay, delay*(1+j)].
	base := 10 * time.Millisecond
	jitter := 0.5
	cfg := &Config{
		MaxAttempts: 6,
		Backoff: &ExponentialBackoff{
			InitialDelay: base,
			Multiplier:   1.0,
		},
		RetryableKinds: []errs.Kind{errs.KindAny},
		Jitter:         jitter,
		Logger:         logger.NewTestLogger(),
	}

	var sleeps []time.Duration
	cfg.OnRetry = func(attempt int, err error, delay time.Duration) {
		sleeps = append(sleeps, delay)
	}

	err := Do(func() error {
		return errs.New(errs.KindNetwork, "flaky")
	}, cfg)
	require.Error(t, err)

	require.Len(t, sleeps, 5)
	for _, s := range sleeps {
		assert.GreaterOrEqual(t, s, base)
		assert.LessOrEqual(t, s, base+time.Duration(float64(base)*jitter))
	}
}

func TestSleepWithinAbsoluteJitterBounds(t *testing.T) {
	t.Parallel()

	// For jitter >= 1, each sleep lies in [delay, delay + jitter seconds].
	base := time.Millisecond
	for i := 0; i < 1000; i++ {
		total := base + jitterAmount(base, 1.0)
		assert.GreaterOrEqual(t, total, base)
		assert.LessOrEqual(t, total, base+time.Second)
	}
}
