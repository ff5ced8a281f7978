// Package retry re-executes fallible operations under a bounded, delayed,
// optionally jittered schedule, classifying failures as retryable or fatal
// by their kind (see pkg/errors).
//
// The total number of invocations is bounded by Config.MaxAttempts, which
// counts the first (non-retry) attempt. Delays grow multiplicatively per
// failed attempt; jitter is fresh uniform noise added on top of each
// deterministic delay, never compounded into the next one. A failure whose
// kind is outside the configured retryable set propagates immediately, with
// no sleep and no alteration of its identity.
//
// Basic usage:
//
//	err := retry.Do(func() error {
//		return callModel()
//	}, nil)
//
// Custom configuration:
//
//	cfg := &retry.Config{
//		MaxAttempts: 4,
//		Backoff: &retry.ExponentialBackoff{
//			InitialDelay: time.Second,
//			Multiplier:   2.0,
//		},
//		RetryableKinds: []errs.Kind{errs.KindRateLimit, errs.KindNetwork},
//		Jitter:         0.2, // up to 20% of the current delay
//	}
//	err := retry.Do(operation, cfg)
//
// Decorator form, producing an operation with identical behavior plus
// retries:
//
//	wrapped, err := retry.Wrap(operation, cfg)
//	...
//	err = wrapped()
//
// Operations returning values go through the generic helpers:
//
//	profile, err := retry.DoWithResult(func() (string, error) {
//		return fetchPlan()
//	}, cfg)
//
// The sleep between attempts blocks the calling goroutine for the full
// computed duration. Callers that need to abort early should check their own
// cancellation signal inside the wrapped operation; a context error is
// classified as non-retryable and propagates on the next attempt boundary.
package retry
