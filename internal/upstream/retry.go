package upstream

import (
	"math"
	"time"
)

// RetryConfig controls exponential backoff for transient failures.
// The schedule is deterministic: no jitter.
type RetryConfig struct {
	MaxRetries      int
	InitialDelay    time.Duration
	ExponentialBase float64
	MaxDelay        time.Duration
}

// DefaultRetry mirrors the settings used for all retrying upstream
// clients: two retries, one-second initial delay, doubling, 30s cap.
func DefaultRetry() RetryConfig {
	return RetryConfig{
		MaxRetries:      2,
		InitialDelay:    1 * time.Second,
		ExponentialBase: 2.0,
		MaxDelay:        30 * time.Second,
	}
}

// Delay returns the sleep before retry attempt+1, where attempt is the
// 0-based index of the attempt that just failed:
//
//	delay_i = min(initial * base^i, max)
func (c RetryConfig) Delay(attempt int) time.Duration {
	base := c.ExponentialBase
	if base <= 0 {
		base = 2.0
	}
	d := time.Duration(float64(c.InitialDelay) * math.Pow(base, float64(attempt)))
	if c.MaxDelay > 0 && d > c.MaxDelay {
		d = c.MaxDelay
	}
	return d
}
