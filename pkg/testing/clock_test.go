package testing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/xdom/pkg/errors"
)

func TestFakeClock_Advance(t *testing.T) {
	clk := NewFakeClock()
	start := clk.Now()

	clk.Advance(100 * time.Millisecond)
	assert.Equal(t, 100*time.Millisecond, clk.Now().Sub(start))
}

func TestFakeClock_Set(t *testing.T) {
	clk := NewFakeClock()
	target := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	clk.Set(target)
	assert.True(t, clk.Now().Equal(target))
}

func TestManualFrameClock_RequestsWaitForNextFrame(t *testing.T) {
	clk := NewManualFrameClock()
	start := clk.Now()

	var seen []time.Duration
	var loop func(now time.Time)
	loop = func(now time.Time) {
		seen = append(seen, now.Sub(start))
		clk.RequestFrame(loop)
	}
	clk.RequestFrame(loop)
	assert.Equal(t, 1, clk.Pending())

	assert.Equal(t, 1, clk.Frame(16*time.Millisecond))
	clk.Frames(2, 10*time.Millisecond)

	assert.Equal(t, []time.Duration{16 * time.Millisecond, 26 * time.Millisecond, 36 * time.Millisecond}, seen)
	assert.Equal(t, 3, clk.FrameCount())
	assert.Equal(t, 1, clk.Pending())
}

func TestManualFrameClock_EmptyFrame(t *testing.T) {
	clk := NewManualFrameClock()
	clk.RequestFrame(nil)
	assert.Zero(t, clk.Frame(time.Millisecond))
}

func TestRecordErrors(t *testing.T) {
	rec := RecordErrors(t)

	errors.Misuse("test.op", "bad %s", "thing")
	errors.Guard("test.guard", func() { panic("boom") })

	require.Len(t, rec.Errors(), 1)
	assert.Equal(t, "bad thing", rec.Errors()[0].Err.Error())
	assert.Equal(t, []errors.ErrorKind{errors.KindMisuse}, rec.Kinds())
	require.Len(t, rec.Panics(), 1)
	assert.Equal(t, "boom", rec.Panics()[0].Value)
}
