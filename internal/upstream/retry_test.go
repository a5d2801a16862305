package upstream

import (
	"testing"
	"time"
)

// TestDelaySchedule verifies delay_i = min(initial * base^i, max) and
// that the schedule is non-decreasing until capped.
func TestDelaySchedule(t *testing.T) {
	cfg := RetryConfig{
		MaxRetries:      5,
		InitialDelay:    1 * time.Second,
		ExponentialBase: 2.0,
		MaxDelay:        5 * time.Second,
	}

	want := []time.Duration{
		1 * time.Second,
		2 * time.Second,
		4 * time.Second,
		5 * time.Second, // capped
		5 * time.Second,
		5 * time.Second,
	}

	var prev time.Duration
	for i := 0; i <= cfg.MaxRetries; i++ {
		got := cfg.Delay(i)
		if got != want[i] {
			t.Fatalf("Delay(%d) = %v, want %v", i, got, want[i])
		}
		if got < prev {
			t.Fatalf("Delay(%d) = %v decreased from %v", i, got, prev)
		}
		prev = got
	}
}

func TestDefaultRetry(t *testing.T) {
	cfg := DefaultRetry()
	if cfg.MaxRetries != 2 {
		t.Fatalf("MaxRetries = %d, want 2", cfg.MaxRetries)
	}
	if cfg.Delay(0) != 1*time.Second {
		t.Fatalf("Delay(0) = %v, want 1s", cfg.Delay(0))
	}
	if cfg.Delay(1) != 2*time.Second {
		t.Fatalf("Delay(1) = %v, want 2s", cfg.Delay(1))
	}
}
