package monitor

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSchedulerRunsCycles(t *testing.T) {
	var cycles int64
	s := NewScheduler("test", func(ctx context.Context) {
		atomic.AddInt64(&cycles, 1)
	})

	s.Start(10 * time.Millisecond)
	defer s.Stop()

	assert.Eventually(t, func() bool {
		return atomic.LoadInt64(&cycles) >= 3
	}, time.Second, 5*time.Millisecond)
}

func TestSchedulerNoOverlap(t *testing.T) {
	var inFlight int64
	var overlapped int64
	s := NewScheduler("test", func(ctx context.Context) {
		if atomic.AddInt64(&inFlight, 1) > 1 {
			atomic.AddInt64(&overlapped, 1)
		}
		// Overrun the interval on purpose.
		time.Sleep(30 * time.Millisecond)
		atomic.AddInt64(&inFlight, -1)
	})

	s.Start(5 * time.Millisecond)
	time.Sleep(150 * time.Millisecond)
	s.Stop()

	assert.Zero(t, atomic.LoadInt64(&overlapped))
}

func TestSchedulerStartIdempotent(t *testing.T) {
	var cycles int64
	s := NewScheduler("test", func(ctx context.Context) {
		atomic.AddInt64(&cycles, 1)
	})

	s.Start(10 * time.Millisecond)
	s.Start(10 * time.Millisecond) // must not double-schedule
	defer s.Stop()

	assert.True(t, s.Running())
	time.Sleep(105 * time.Millisecond)

	// A doubled schedule would run roughly twice as many cycles.
	assert.LessOrEqual(t, atomic.LoadInt64(&cycles), int64(12))
}

func TestSchedulerStopPreventsFurtherCycles(t *testing.T) {
	var cycles int64
	s := NewScheduler("test", func(ctx context.Context) {
		atomic.AddInt64(&cycles, 1)
	})

	s.Start(10 * time.Millisecond)
	time.Sleep(35 * time.Millisecond)
	s.Stop()
	assert.False(t, s.Running())

	settled := atomic.LoadInt64(&cycles)
	time.Sleep(50 * time.Millisecond)
	assert.LessOrEqual(t, atomic.LoadInt64(&cycles), settled+1)
}

func TestSchedulerStopIdempotent(t *testing.T) {
	s := NewScheduler("test", func(ctx context.Context) {})

	s.Start(time.Hour)
	s.Stop()
	s.Stop()
	assert.False(t, s.Running())

	// Restart after stop works.
	s.Start(time.Hour)
	assert.True(t, s.Running())
	s.Stop()
}

func TestSchedulerStopJoinsInFlightCycle(t *testing.T) {
	var inFlight int64
	var cycles int64
	started := make(chan struct{}, 64)
	s := NewScheduler("test", func(ctx context.Context) {
		atomic.AddInt64(&inFlight, 1)
		atomic.AddInt64(&cycles, 1)
		select {
		case started <- struct{}{}:
		default:
		}
		// Overrun well past Stop.
		time.Sleep(50 * time.Millisecond)
		atomic.AddInt64(&inFlight, -1)
	})

	s.Start(5 * time.Millisecond)
	<-started
	s.Stop()

	// Stop must not return while a cycle is still in flight, so a
	// restarted session can never race the previous one's last cycle.
	assert.Zero(t, atomic.LoadInt64(&inFlight))

	settled := atomic.LoadInt64(&cycles)
	s.Start(5 * time.Millisecond)
	defer s.Stop()
	assert.Eventually(t, func() bool {
		return atomic.LoadInt64(&cycles) > settled
	}, time.Second, 5*time.Millisecond)
}

func TestSchedulerCancelledContextVisibleInCycle(t *testing.T) {
	started := make(chan struct{})
	cancelled := make(chan bool, 1)
	s := NewScheduler("test", func(ctx context.Context) {
		close(started)
		// Simulate work outlasting Stop; the cycle must observe the
		// cancellation and discard its result.
		time.Sleep(30 * time.Millisecond)
		cancelled <- ctx.Err() != nil
	})

	s.Start(5 * time.Millisecond)
	<-started
	s.Stop()

	assert.True(t, <-cancelled)
}
