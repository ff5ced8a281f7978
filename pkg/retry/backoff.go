package retry

import (
	"errors"
	"math"
	"time"
)

// BackoffStrategy computes the delay to sleep after a failed attempt.
type BackoffStrategy interface {
	// NextDelay returns the delay after the given failed attempt.
	// attempt is 1-based: NextDelay(1) is the delay between the first and
	// second invocation.
	NextDelay(attempt int) time.Duration

	// Validate reports whether the strategy's parameters are usable.
	Validate() error
}

// ExponentialBackoff grows the delay multiplicatively per failed attempt:
// InitialDelay * Multiplier^(attempt-1). MaxDelay of 0 means uncapped, which
// keeps the growth strictly multiplicative.
type ExponentialBackoff struct {
	// InitialDelay is the delay after the first failed attempt.
	InitialDelay time.Duration
	// Multiplier is the growth factor per failed attempt. Must be >= 1.
	Multiplier float64
	// MaxDelay caps the delay when > 0.
	MaxDelay time.Duration
}

// NextDelay computes the exponential delay for the given failed attempt.
func (b *ExponentialBackoff) NextDelay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	delay := time.Duration(float64(b.InitialDelay) * math.Pow(b.Multiplier, float64(attempt-1)))

	if b.MaxDelay > 0 && delay > b.MaxDelay {
		delay = b.MaxDelay
	}

	return delay
}

// Validate checks the backoff parameters.
func (b *ExponentialBackoff) Validate() error {
	if b.InitialDelay < 0 {
		return errors.New("initial delay cannot be negative")
	}
	if b.Multiplier < 1 {
		return errors.New("backoff multiplier must be at least 1")
	}
	if b.MaxDelay < 0 {
		return errors.New("max delay cannot be negative")
	}
	return nil
}

// ConstantBackoff sleeps the same duration after every failed attempt.
type ConstantBackoff struct {
	Delay time.Duration
}

// NextDelay returns the fixed delay regardless of attempt number.
func (b *ConstantBackoff) NextDelay(attempt int) time.Duration {
	return b.Delay
}

// Validate checks the backoff parameters.
func (b *ConstantBackoff) Validate() error {
	if b.Delay < 0 {
		return errors.New("delay cannot be negative")
	}
	return nil
}
