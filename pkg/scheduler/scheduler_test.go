package scheduler

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/xdom/pkg/dom"
	"github.com/go-drift/xdom/pkg/observable"
	"github.com/go-drift/xdom/pkg/shadow"
	xdomtest "github.com/go-drift/xdom/pkg/testing"
)

func newScheduler(t *testing.T) (*Scheduler, *xdomtest.ManualFrameClock) {
	t.Helper()
	clk := xdomtest.NewManualFrameClock()
	return New(shadow.NewTree(dom.NewElement("body")), clk, DefaultConfig()), clk
}

func TestScheduler_OneShotQueuedDuringDrainWaits(t *testing.T) {
	s, _ := newScheduler(t)
	var ran []string
	s.Schedule(func() {
		ran = append(ran, "first")
		s.Schedule(func() { ran = append(ran, "second") })
	})

	s.Tick(time.Now())
	assert.Equal(t, []string{"first"}, ran)
	assert.Equal(t, 1, s.Pending())

	s.Tick(time.Now())
	assert.Equal(t, []string{"first", "second"}, ran)
	assert.Zero(t, s.Pending())
}

func TestScheduler_RecurringSelfDispose(t *testing.T) {
	s, _ := newScheduler(t)
	var self observable.Disposable
	selfRuns, otherRuns := 0, 0
	self = s.ScheduleRecurring(func() {
		selfRuns++
		self.Dispose()
	})
	s.ScheduleRecurring(func() { otherRuns++ })

	s.Tick(time.Now())
	assert.Equal(t, 1, selfRuns)
	assert.Equal(t, 1, otherRuns, "the pass continues past the disposed entry")

	s.Tick(time.Now())
	s.Tick(time.Now())
	assert.Equal(t, 1, selfRuns)
	assert.Equal(t, 3, otherRuns)
	assert.Equal(t, 1, s.Stats().RecurringUpdates)
}

func TestScheduler_RecurringDisposeOutsidePass(t *testing.T) {
	s, _ := newScheduler(t)
	runs := 0
	h := s.ScheduleRecurring(func() { runs++ })
	s.Tick(time.Now())

	h.Dispose()
	h.Dispose()
	assert.Empty(t, s.recurring)

	s.Tick(time.Now())
	assert.Equal(t, 1, runs)
}

func TestScheduler_DisposeOtherDuringPass(t *testing.T) {
	s, _ := newScheduler(t)
	var second observable.Disposable
	runs := 0
	s.ScheduleRecurring(func() { second.Dispose() })
	second = s.ScheduleRecurring(func() { runs++ })

	s.Tick(time.Now())
	assert.Zero(t, runs)
	assert.Len(t, s.recurring, 1)
}

func TestScheduler_TickOrder(t *testing.T) {
	doc := dom.NewDocumentAt(dom.NewElement("body"))
	tree := shadow.NewTree(doc.Root())
	sync := shadow.NewSynchronizer(tree)
	require.NoError(t, sync.Observe(doc))
	s := New(tree, xdomtest.NewManualFrameClock(), DefaultConfig())
	s.Observe(doc)

	var order []string
	label := dom.NewElement("span")
	shadow.CalcProperty(tree, label, dom.Text(), func() string {
		order = append(order, "refresh")
		return "x"
	})
	order = nil

	s.ScheduleRecurring(func() { order = append(order, "recurring") })
	s.Schedule(func() {
		order = append(order, "once")
		doc.AppendChild(doc.Root(), label)
	})

	s.Tick(time.Now())
	assert.Equal(t, []string{"once", "recurring", "refresh"}, order)
	assert.Zero(t, doc.Pending())
}

func TestScheduler_PanicDoesNotAbortTick(t *testing.T) {
	rec := xdomtest.RecordErrors(t)
	s, _ := newScheduler(t)
	ran := false
	s.Schedule(func() { panic("broken update") })
	s.ScheduleRecurring(func() { panic("broken recurring") })
	s.Schedule(func() { ran = true })

	s.Tick(time.Now())
	assert.True(t, ran)
	require.Len(t, rec.Panics(), 2)
	assert.Equal(t, "scheduler.update", rec.Panics()[0].Op)
	assert.Equal(t, "scheduler.recurring", rec.Panics()[1].Op)
}

func TestScheduler_StartStop(t *testing.T) {
	s, clk := newScheduler(t)
	ticks := 0
	s.ScheduleRecurring(func() { ticks++ })

	s.Start()
	s.Start()
	clk.Frames(3, 16*time.Millisecond)
	assert.Equal(t, 3, ticks)
	assert.True(t, s.Running())

	s.Stop()
	clk.Frames(2, 16*time.Millisecond)
	assert.Equal(t, 3, ticks)
	assert.False(t, s.Running())

	s.Start()
	clk.Frames(2, 16*time.Millisecond)
	assert.Equal(t, 5, ticks)
}

func TestScheduler_StatsWindow(t *testing.T) {
	s, clk := newScheduler(t)
	s.Start()

	assert.Equal(t, 60, s.Stats().FPS)
	clk.Frames(10, 20*time.Millisecond)
	assert.Equal(t, 60, s.Stats().FPS, "window not elapsed yet")

	clk.Frame(20 * time.Millisecond)
	stats := s.Stats()
	assert.Equal(t, 50, stats.FPS)
	assert.Equal(t, uint64(11), stats.Frames)

	clk.Frames(4, 50*time.Millisecond)
	assert.Equal(t, 20, s.Stats().FPS)
}

func TestScheduler_StatsCounts(t *testing.T) {
	s, _ := newScheduler(t)
	tree := s.Tree()
	for i := range 3 {
		h := dom.NewElement("p")
		shadow.CalcProperty(tree, h, dom.Text(), func() string { return fmt.Sprint(i) })
	}
	s.ScheduleRecurring(func() {})

	s.Tick(time.Now())
	stats := s.Stats()
	assert.Equal(t, 3, stats.LightBoundObjects)
	assert.Equal(t, 1, stats.RecurringUpdates)
	assert.Equal(t, 4, stats.ShadowNodes)
	assert.Zero(t, stats.BoundObjects)
}

func TestConfig_WithDefaults(t *testing.T) {
	assert.Equal(t, DefaultConfig(), Config{}.WithDefaults())
	cfg := Config{StatsWindow: time.Second, FrameInterval: time.Microsecond}.WithDefaults()
	assert.Equal(t, time.Second, cfg.StatsWindow)
	assert.Equal(t, time.Millisecond, cfg.FrameInterval)
}
