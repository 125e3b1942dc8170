package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoopClock_RunsFramesAndTasks(t *testing.T) {
	clk := NewLoopClock(time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- clk.Run(ctx) }()

	var frames atomic.Int32
	var loop func(time.Time)
	loop = func(time.Time) {
		frames.Add(1)
		clk.RequestFrame(loop)
	}
	clk.RequestFrame(loop)

	require.Eventually(t, func() bool { return frames.Load() >= 3 }, time.Second, time.Millisecond)

	ran := false
	require.NoError(t, clk.Dispatch(ctx, func() { ran = true }))
	assert.True(t, ran)

	cancel()
	assert.ErrorIs(t, <-errc, context.Canceled)
	assert.ErrorIs(t, clk.Dispatch(context.Background(), func() {}), ErrLoopStopped)
}

func TestLoopClock_MinimumInterval(t *testing.T) {
	assert.Equal(t, time.Millisecond, NewLoopClock(0).Interval())
	assert.Equal(t, 16*time.Millisecond, NewLoopClock(16*time.Millisecond).Interval())
}
