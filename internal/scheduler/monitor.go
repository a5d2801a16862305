// Package scheduler runs the periodic breaker-state monitor.
package scheduler

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sony/gobreaker"

	"github.com/parkscope/parkscope/internal/status"
)

// Monitor periodically samples each upstream circuit breaker and records
// the observation on the status board.
type Monitor struct {
	scheduler *gocron.Scheduler
	breakers  []*gobreaker.CircuitBreaker
	board     *status.Board
	interval  time.Duration
}

// New creates a Monitor sampling every interval.
func New(breakers []*gobreaker.CircuitBreaker, board *status.Board, interval time.Duration) *Monitor {
	return &Monitor{
		scheduler: gocron.NewScheduler(time.UTC),
		breakers:  breakers,
		board:     board,
		interval:  interval,
	}
}

// Start schedules the sampling job and starts the underlying scheduler.
func (m *Monitor) Start() error {
	if len(m.breakers) == 0 {
		log.Println("monitor: no breakers configured; nothing to sample")
		return nil
	}

	seconds := int(m.interval.Seconds())
	if seconds <= 0 {
		seconds = 30
	}

	_, err := m.scheduler.Every(seconds).Seconds().Do(m.sample)
	if err != nil {
		return err
	}

	m.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (m *Monitor) Stop() {
	if m.scheduler != nil {
		m.scheduler.Stop()
	}
}

func (m *Monitor) sample() {
	now := time.Now().UTC()
	for _, cb := range m.breakers {
		state := cb.State().String()
		m.board.Record(status.Observation{
			Upstream:   cb.Name(),
			State:      state,
			ObservedAt: now,
		})
		if state != gobreaker.StateClosed.String() {
			log.Printf("monitor: breaker %s is %s", cb.Name(), state)
		}
	}
}
