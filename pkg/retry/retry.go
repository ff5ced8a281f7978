package retry

import (
	"errors"
	"fmt"
	"time"

	errs "tripagent/pkg/errors"
	"tripagent/pkg/logger"
)

// ErrInvalidConfig tags configuration failures. They are detected before any
// invocation of the wrapped operation.
var ErrInvalidConfig = errors.New("invalid retry config")

// Operation is a function that performs an operation that might need retrying.
type Operation func() error

// OperationWithResult is an operation that returns a result.
type OperationWithResult[T any] func() (T, error)

// Config holds retry configuration. It is read-only after validation and may
// be shared by any number of concurrent invocations; all per-invocation state
// (attempts remaining, current delay) lives on the calling goroutine's stack.
type Config struct {
	// MaxAttempts is the total number of invocations, including the first.
	// Must be at least 1; 1 means no retries ever happen.
	MaxAttempts int

	// Backoff computes the delay after each failed attempt.
	Backoff BackoffStrategy

	// RetryableKinds is the set of failure kinds eligible for retry.
	// Failures outside the set propagate immediately. errs.KindAny makes
	// every failure retryable.
	RetryableKinds []errs.Kind

	// Jitter adds uniform random noise to each delay. Below 1 it is a
	// fraction of the current delay; 1 and above it is an absolute bound in
	// seconds. 0 disables jitter.
	Jitter float64

	// Logger receives retry diagnostics. Nil falls back to the package
	// default logger.
	Logger logger.Logger

	// OnRetry, when set, observes each retry decision before the sleep.
	// attempt is the 1-based number of the attempt that just failed and
	// delay is the full sleep about to happen, jitter included.
	OnRetry func(attempt int, err error, delay time.Duration)
}

// DefaultConfig mirrors the reference defaults: 3 attempts, 1 second initial
// delay doubling each time, every failure kind retryable, no jitter.
func DefaultConfig() *Config {
	return &Config{
		MaxAttempts: 3,
		Backoff: &ExponentialBackoff{
			InitialDelay: time.Second,
			Multiplier:   2.0,
		},
		RetryableKinds: []errs.Kind{errs.KindAny},
		Jitter:         0,
	}
}

// Validate rejects unusable configurations. It runs before the first
// invocation; a failing config never executes the operation.
func (c *Config) Validate() error {
	if c.MaxAttempts < 1 {
		return fmt.Errorf("%w: max attempts must be at least 1, got %d", ErrInvalidConfig, c.MaxAttempts)
	}
	if c.Backoff == nil {
		return fmt.Errorf("%w: backoff strategy is required", ErrInvalidConfig)
	}
	if err := c.Backoff.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Jitter < 0 {
		return fmt.Errorf("%w: jitter cannot be negative, got %v", ErrInvalidConfig, c.Jitter)
	}
	if len(c.RetryableKinds) == 0 {
		return fmt.Errorf("%w: retryable kind set cannot be empty", ErrInvalidConfig)
	}
	for _, kind := range c.RetryableKinds {
		if !kind.Valid() {
			return fmt.Errorf("%w: unknown failure kind %q", ErrInvalidConfig, kind)
		}
	}
	return nil
}

// retryable reports whether a failure kind is a member of the configured set.
func (c *Config) retryable(kind errs.Kind) bool {
	for _, k := range c.RetryableKinds {
		if k == errs.KindAny || k == kind {
			return true
		}
	}
	return false
}

// Do executes op under the retry schedule of cfg. A nil cfg uses
// DefaultConfig. The operation's error is propagated as-is: errors.Is and
// errors.As see the original failure, whether it was non-retryable or simply
// outlasted the attempt budget.
func Do(op Operation, cfg *Config) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	return run(op, cfg)
}

// DoWithResult executes an operation that returns a result with retry logic.
func DoWithResult[T any](op OperationWithResult[T], cfg *Config) (T, error) {
	var result T

	err := Do(func() error {
		var opErr error
		result, opErr = op()
		return opErr
	}, cfg)

	return result, err
}

// Wrap decorates op with the retry behavior of cfg, returning an equivalent
// operation. Configuration failures surface here, before the returned
// operation can ever run.
func Wrap(op Operation, cfg *Config) (Operation, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return func() error {
		return run(op, cfg)
	}, nil
}

// WrapWithResult is Wrap for operations that return a result.
func WrapWithResult[T any](op OperationWithResult[T], cfg *Config) (OperationWithResult[T], error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return func() (T, error) {
		var result T
		err := run(func() error {
			var opErr error
			result, opErr = op()
			return opErr
		}, cfg)
		return result, err
	}, nil
}

// run is the core retry loop. It assumes cfg has been validated.
//
// The loop makes up to MaxAttempts-1 invocations, sleeping between them; the
// final attempt happens after the loop so that an exhausting failure
// propagates without a trailing sleep.
func run(op Operation, cfg *Config) error {
	log := cfg.Logger
	if log == nil {
		log = logger.GetLogger()
	}

	remaining := cfg.MaxAttempts

	for attempt := 1; remaining > 1; attempt++ {
		err := op()
		if err == nil {
			return nil
		}

		kind := errs.KindOf(err)
		if !cfg.retryable(kind) {
			log.DebugWithFields("failure kind is not retryable", map[string]interface{}{
				"error_kind": string(kind),
				"error":      err.Error(),
			})
			return err
		}

		delay := cfg.Backoff.NextDelay(attempt)
		sleep := delay + jitterAmount(delay, cfg.Jitter)

		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt, err, sleep)
		}

		remaining--
		log.WarnWithFields("retrying operation", map[string]interface{}{
			"error_kind":    string(kind),
			"error":         err.Error(),
			"delay":         sleep,
			"attempts_left": remaining,
			"max_attempts":  cfg.MaxAttempts,
		})

		// Plain blocking sleep. Cancellation mid-sleep is intentionally not
		// supported; callers abort via their own signal inside op.
		time.Sleep(sleep)
	}

	err := op()
	if err != nil {
		log.ErrorWithFields("operation failed after final attempt", map[string]interface{}{
			"error_kind":   string(errs.KindOf(err)),
			"error":        err.Error(),
			"max_attempts": cfg.MaxAttempts,
		})
	}
	return err
}

// Retrier is a reusable retry mechanism bound to one validated configuration.
type Retrier struct {
	config *Config
}

// NewRetrier validates cfg and returns a Retrier. A nil cfg uses
// DefaultConfig.
func NewRetrier(cfg *Config) (*Retrier, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Retrier{config: cfg}, nil
}

// Do executes an operation under the retrier's configuration.
func (r *Retrier) Do(op Operation) error {
	return run(op, r.config)
}

// Wrap decorates an operation with the retrier's configuration.
func (r *Retrier) Wrap(op Operation) Operation {
	return func() error {
		return run(op, r.config)
	}
}
