package queuectl

import (
	"math"
	"time"
)

// backoffCounter computes the retry delay for a failed job, per §4.3:
// next_run_at = now + backoff_base^attempts seconds, where attempts is the
// post-increment attempt count. A base of exactly 1 degenerates to a
// constant one-second delay; a non-positive base falls back to 2.
type backoffCounter struct {
	base float64
}

// delay returns the backoff duration for the given (already incremented)
// attempt count.
func (bc backoffCounter) delay(attempts int) time.Duration {
	base := bc.base
	if base <= 0 {
		base = 2
	}
	seconds := math.Pow(base, float64(attempts))
	return time.Duration(seconds * float64(time.Second))
}
