// Package status tracks in-run upstream health observations, such as
// circuit breaker states, for the health endpoint. Nothing here persists
// across runs and no upstream response data is retained.
package status

import (
	"errors"
	"sync"
	"time"
)

// ErrNotFound is returned when no observation exists for an upstream.
var ErrNotFound = errors.New("no observations for upstream")

// Observation is one recorded health sample for an upstream.
type Observation struct {
	Upstream   string    `json:"upstream"`
	State      string    `json:"state"`
	ObservedAt time.Time `json:"observedAt"`
}

// Board is a concurrency-safe in-memory observation log with bounded
// per-upstream history.
type Board struct {
	mu sync.RWMutex

	data map[string][]Observation

	maxHistory int
}

// NewBoard creates a Board keeping at most maxHistory observations per
// upstream; maxHistory <= 0 means unlimited.
func NewBoard(maxHistory int) *Board {
	return &Board{
		data:       make(map[string][]Observation),
		maxHistory: maxHistory,
	}
}

// Record appends an observation and enforces retention.
func (b *Board) Record(obs Observation) {
	b.mu.Lock()
	defer b.mu.Unlock()

	history := append(b.data[obs.Upstream], obs)
	if b.maxHistory > 0 && len(history) > b.maxHistory {
		history = history[len(history)-b.maxHistory:]
	}
	b.data[obs.Upstream] = history
}

// Latest returns the most recent observation for one upstream.
func (b *Board) Latest(upstream string) (Observation, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	history := b.data[upstream]
	if len(history) == 0 {
		return Observation{}, ErrNotFound
	}
	return history[len(history)-1], nil
}

// Snapshot returns the latest observation per upstream.
func (b *Board) Snapshot() map[string]Observation {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make(map[string]Observation, len(b.data))
	for name, history := range b.data {
		if len(history) > 0 {
			out[name] = history[len(history)-1]
		}
	}
	return out
}

// History returns all retained observations for one upstream, oldest
// first.
func (b *Board) History(upstream string) ([]Observation, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	history := b.data[upstream]
	if len(history) == 0 {
		return nil, ErrNotFound
	}
	out := make([]Observation, len(history))
	copy(out, history)
	return out, nil
}
