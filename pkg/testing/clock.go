package testing

import (
	"sync"
	"time"
)

// FakeClock provides controllable time for deterministic tests.
// All methods are safe for concurrent use.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFakeClock returns a FakeClock starting at a fixed epoch.
func NewFakeClock() *FakeClock {
	return &FakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d and returns the new time.
func (c *FakeClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}

// Set sets the clock to an exact time.
func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// ManualFrameClock is a frame clock stepped explicitly by the test.
type ManualFrameClock struct {
	*FakeClock

	mu      sync.Mutex
	pending []func(time.Time)
	frames  int
}

// NewManualFrameClock returns a ManualFrameClock on a fresh FakeClock.
func NewManualFrameClock() *ManualFrameClock {
	return &ManualFrameClock{FakeClock: NewFakeClock()}
}

// RequestFrame queues cb for the next frame.
func (c *ManualFrameClock) RequestFrame(cb func(now time.Time)) {
	if cb == nil {
		return
	}
	c.mu.Lock()
	c.pending = append(c.pending, cb)
	c.mu.Unlock()
}

// Frame advances time by d and runs the callbacks requested before the
// call. Callbacks requested while the frame runs wait for the next one.
// It returns the number of callbacks run.
func (c *ManualFrameClock) Frame(d time.Duration) int {
	now := c.Advance(d)
	c.mu.Lock()
	batch := c.pending
	c.pending = nil
	c.frames++
	c.mu.Unlock()

	for _, cb := range batch {
		cb(now)
	}
	return len(batch)
}

// Frames runs n frames spaced by d.
func (c *ManualFrameClock) Frames(n int, d time.Duration) {
	for range n {
		c.Frame(d)
	}
}

// Pending returns the number of callbacks waiting for a frame.
func (c *ManualFrameClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// FrameCount returns how many frames were stepped.
func (c *ManualFrameClock) FrameCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frames
}
