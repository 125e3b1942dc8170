package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	xdomerrors "github.com/go-drift/xdom/pkg/errors"
)

// FrameClock delivers frame callbacks. A requested callback runs once, on
// the next frame, with a monotonically increasing timestamp.
type FrameClock interface {
	RequestFrame(cb func(now time.Time))
}

// ErrLoopStopped is returned by Dispatch once the loop has exited.
var ErrLoopStopped = errors.New("frame loop stopped")

// LoopClock is a FrameClock driven by a time.Ticker. Frame callbacks and
// dispatched tasks all run on the goroutine calling Run, which makes that
// goroutine the single owner of the UI state.
type LoopClock struct {
	interval time.Duration

	mu      sync.Mutex
	pending []func(time.Time)
	tasks   chan func()
	done    chan struct{}
}

// NewLoopClock creates a LoopClock ticking every interval.
func NewLoopClock(interval time.Duration) *LoopClock {
	if interval < frameIntervalMin {
		interval = frameIntervalMin
	}
	return &LoopClock{
		interval: interval,
		tasks:    make(chan func()),
		done:     make(chan struct{}),
	}
}

// Interval returns the tick period.
func (c *LoopClock) Interval() time.Duration {
	return c.interval
}

// RequestFrame queues cb for the next tick. It is safe for concurrent use.
func (c *LoopClock) RequestFrame(cb func(now time.Time)) {
	if cb == nil {
		return
	}
	c.mu.Lock()
	c.pending = append(c.pending, cb)
	c.mu.Unlock()
}

// Run ticks until ctx is done and returns ctx's error.
func (c *LoopClock) Run(ctx context.Context) error {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	defer close(c.done)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case task := <-c.tasks:
			task()
		case now := <-ticker.C:
			c.mu.Lock()
			batch := c.pending
			c.pending = nil
			c.mu.Unlock()
			for _, cb := range batch {
				runFrame(cb, now)
			}
		}
	}
}

func runFrame(cb func(time.Time), now time.Time) {
	defer xdomerrors.Recover("scheduler.frame")
	cb(now)
}

// Dispatch runs fn on the loop goroutine and waits for it to return. A
// panic in fn is reported and does not stop the loop.
func (c *LoopClock) Dispatch(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	task := func() {
		defer close(finished)
		xdomerrors.Guard("scheduler.dispatch", fn)
	}
	select {
	case c.tasks <- task:
	case <-c.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
