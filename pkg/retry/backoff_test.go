package retry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExponentialBackoff_NextDelay(t *testing.T) {
	t.Parallel()

	b := &ExponentialBackoff{
		InitialDelay: 100 * time.Millisecond,
		Multiplier:   2.0,
	}

	assert.Equal(t, 100*time.Millisecond, b.NextDelay(1))
	assert.Equal(t, 200*time.Millisecond, b.NextDelay(2))
	assert.Equal(t, 400*time.Millisecond, b.NextDelay(3))
	assert.Equal(t, 800*time.Millisecond, b.NextDelay(4))
}

func TestExponentialBackoff_AttemptClampedToOne(t *testing.T) {
	t.Parallel()

	b := &ExponentialBackoff{InitialDelay: time.Second, Multiplier: 2.0}

	assert.Equal(t, time.Second, b.NextDelay(0))
	assert.Equal(t, time.Second, b.NextDelay(-5))
}

func TestExponentialBackoff_MaxDelayCap(t *testing.T) {
	t.Parallel()

	b := &ExponentialBackoff{
		InitialDelay: time.Second,
		Multiplier:   2.0,
		MaxDelay:     5 * time.Second,
	}

	assert.Equal(t, 4*time.Second, b.NextDelay(3))
	assert.Equal(t, 5*time.Second, b.NextDelay(4), "8s capped to 5s")
	assert.Equal(t, 5*time.Second, b.NextDelay(10))
}

func TestExponentialBackoff_UncappedByDefault(t *testing.T) {
	t.Parallel()

	b := &ExponentialBackoff{InitialDelay: time.Second, Multiplier: 2.0}

	// Growth stays strictly multiplicative with no cap configured.
	assert.Equal(t, 1024*time.Second, b.NextDelay(11))
}

func TestExponentialBackoff_MultiplierOneIsConstant(t *testing.T) {
	t.Parallel()

	b := &ExponentialBackoff{InitialDelay: time.Second, Multiplier: 1.0}

	for attempt := 1; attempt <= 5; attempt++ {
		assert.Equal(t, time.Second, b.NextDelay(attempt))
	}
}

func TestExponentialBackoff_Validate(t *testing.T) {
	t.Parallel()

	require.NoError(t, (&ExponentialBackoff{InitialDelay: 0, Multiplier: 1}).Validate())
	require.NoError(t, (&ExponentialBackoff{InitialDelay: time.Second, Multiplier: 2, MaxDelay: time.Minute}).Validate())

	assert.Error(t, (&ExponentialBackoff{InitialDelay: -1, Multiplier: 2}).Validate())
	assert.Error(t, (&ExponentialBackoff{InitialDelay: time.Second, Multiplier: 0.9}).Validate())
	assert.Error(t, (&ExponentialBackoff{InitialDelay: time.Second, Multiplier: 2, MaxDelay: -1}).Validate())
}

func TestConstantBackoff(t *testing.T) {
	t.Parallel()

	b := &ConstantBackoff{Delay: 250 * time.Millisecond}

	assert.Equal(t, 250*time.Millisecond, b.NextDelay(1))
	assert.Equal(t, 250*time.Millisecond, b.NextDelay(9))
	require.NoError(t, b.Validate())

	assert.Error(t, (&ConstantBackoff{Delay: -time.Second}).Validate())
}
