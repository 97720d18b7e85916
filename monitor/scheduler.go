package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/igor04091968/tun-status/logger"
)

// Scheduler runs one cycle function on a fixed-delay interval. The timer is
// re-armed only after a cycle returns, so a cycle can never overlap itself
// even when it overruns the interval. Stop cancels the cycle context; a
// cycle already in flight finishes, and whatever it produced must be
// discarded by checking the context it was handed.
type Scheduler struct {
	name  string
	cycle func(ctx context.Context)

	mu      sync.Mutex
	wg      sync.WaitGroup
	cancel  context.CancelFunc
	running bool
}

func NewScheduler(name string, cycle func(ctx context.Context)) *Scheduler {
	return &Scheduler{name: name, cycle: cycle}
}

// Start arms the scheduler. Calling Start on a running scheduler is a no-op.
func (s *Scheduler) Start(interval time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.running = true
	logger.Debug(s.name, " poll scheduler started, interval ", interval)
	s.wg.Add(1)
	go s.loop(ctx, interval)
}

// Stop disarms the scheduler and waits for the loop goroutine to exit, so an
// in-flight cycle has returned by the time Stop does. Idempotent.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.cancel()
	s.wg.Wait()
	s.running = false
	logger.Debug(s.name, " poll scheduler stopped")
}

// Running reports whether the scheduler is armed.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Scheduler) loop(ctx context.Context, interval time.Duration) {
	defer s.wg.Done()

	timer := time.NewTimer(interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		// A cycle failure must not stop future polling; the cycle
		// function handles its own faults and publishes a degraded
		// snapshot instead of returning an error.
		s.cycle(ctx)

		timer.Reset(interval)
	}
}
