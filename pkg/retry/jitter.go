package retry

import (
	"math/rand"
	"time"
)

// jitterAmount draws the random additive jitter for one sleep. The value of
// jitter selects the mode: strictly below 1 it is a fraction of the current
// delay, at 1 and above it is an absolute bound in seconds. The threshold is
// deliberately `< 1`, so jitter == 1 means "up to one second", not "up to
// 100% of the delay".
//
// Each call draws fresh; nothing carries over between attempts.
func jitterAmount(delay time.Duration, jitter float64) time.Duration {
	if jitter <= 0 {
		return 0
	}

	//nolint:gosec // math/rand is sufficient for retry jitter
	u := rand.Float64()

	if jitter < 1 {
		return time.Duration(u * float64(delay) * jitter)
	}

	return time.Duration(u * jitter * float64(time.Second))
}
