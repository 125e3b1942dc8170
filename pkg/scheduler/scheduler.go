// Package scheduler drives a shadow tree frame by frame.
//
// Each tick runs, in order: the one-shot updates queued before the tick,
// the enabled recurring updates, a flush of the observed documents' mutation
// feeds, and a pre-order refresh of the shadow tree that skips invisible
// subtrees. A Scheduler is not safe for concurrent use; it is owned by the
// goroutine its FrameClock calls back on. Stats may be read from any
// goroutine.
package scheduler

import (
	"math"
	"slices"
	"sync"
	"time"

	"github.com/go-drift/xdom/pkg/errors"
	"github.com/go-drift/xdom/pkg/observable"
	"github.com/go-drift/xdom/pkg/shadow"
)

// Flusher delivers pending structural mutations, such as a dom.Document.
type Flusher interface {
	Flush() int
}

// Stats is the statistics surface of a Scheduler.
type Stats struct {
	BoundObjects      int
	LightBoundObjects int
	RecurringUpdates  int
	ShadowNodes       int
	Frames            uint64
	FPS               int
}

type recurringUpdate struct {
	s       *Scheduler
	enabled bool
	update  func()
}

// Dispose stops the update. Disposing during a recurring pass only marks
// the entry; it is removed once the pass completes.
func (r *recurringUpdate) Dispose() {
	if !r.enabled {
		return
	}
	r.enabled = false
	s := r.s
	if s.running {
		s.dirty = true
		return
	}
	if i := slices.Index(s.recurring, r); i >= 0 {
		s.recurring = slices.Delete(s.recurring, i, i+1)
	}
}

// Scheduler runs per-frame work against a shadow tree.
type Scheduler struct {
	cfg      Config
	clock    FrameClock
	tree     *shadow.Tree
	flushers []Flusher

	updates   []func()
	recurring []*recurringUpdate
	running   bool
	dirty     bool

	started    bool
	generation int

	windowStart  time.Time
	windowFrames int
	frames       uint64

	statsMu sync.RWMutex
	stats   Stats
}

// New creates a stopped Scheduler for tree, ticking on clock.
func New(tree *shadow.Tree, clock FrameClock, cfg Config) *Scheduler {
	return &Scheduler{
		cfg:   cfg.WithDefaults(),
		clock: clock,
		tree:  tree,
		stats: Stats{FPS: initialFPS},
	}
}

// Config returns the effective configuration.
func (s *Scheduler) Config() Config {
	return s.cfg
}

// Tree returns the driven shadow tree.
func (s *Scheduler) Tree() *shadow.Tree {
	return s.tree
}

// Observe adds f to the feeds flushed before the tree refresh.
func (s *Scheduler) Observe(f Flusher) {
	if f != nil {
		s.flushers = append(s.flushers, f)
	}
}

// Schedule queues update to run once on the next tick. Updates queued while
// the queue is being drained run on the tick after.
func (s *Scheduler) Schedule(update func()) {
	if update != nil {
		s.updates = append(s.updates, update)
	}
}

// ScheduleRecurring registers update to run on every tick until the
// returned handle is disposed.
func (s *Scheduler) ScheduleRecurring(update func()) observable.Disposable {
	r := &recurringUpdate{s: s, enabled: true, update: update}
	if update == nil {
		r.enabled = false
		return r
	}
	s.recurring = append(s.recurring, r)
	return r
}

// Start requests the first frame. Every tick requests the next one until
// Stop is called.
func (s *Scheduler) Start() {
	if s.started {
		return
	}
	s.started = true
	s.generation++
	s.request(s.generation)
}

// Stop stops requesting frames. A frame already requested is ignored.
func (s *Scheduler) Stop() {
	s.started = false
}

// Running reports whether the scheduler is started.
func (s *Scheduler) Running() bool {
	return s.started
}

func (s *Scheduler) request(gen int) {
	s.clock.RequestFrame(func(now time.Time) {
		if !s.started || gen != s.generation {
			return
		}
		s.request(gen)
		s.Tick(now)
	})
}

// Tick runs one frame at time now.
func (s *Scheduler) Tick(now time.Time) {
	s.updateStats(now)

	batch := s.updates
	s.updates = nil
	for _, update := range batch {
		errors.Guard("scheduler.update", update)
	}

	s.running = true
	for _, r := range s.recurring {
		if r.enabled {
			errors.Guard("scheduler.recurring", r.update)
		}
	}
	s.running = false
	if s.dirty {
		s.recurring = slices.DeleteFunc(s.recurring, func(r *recurringUpdate) bool { return !r.enabled })
		s.dirty = false
	}

	for _, f := range s.flushers {
		f.Flush()
	}
	if s.tree != nil {
		s.tree.Refresh()
	}
}

// Pending returns the number of queued one-shot updates.
func (s *Scheduler) Pending() int {
	return len(s.updates)
}

// Stats returns the statistics published at the start of the last tick.
func (s *Scheduler) Stats() Stats {
	s.statsMu.RLock()
	defer s.statsMu.RUnlock()
	return s.stats
}

func (s *Scheduler) updateStats(now time.Time) {
	s.frames++
	next := s.Stats()
	next.Frames = s.frames
	next.RecurringUpdates = len(s.recurring)
	if s.tree != nil {
		ts := s.tree.Stats()
		next.BoundObjects = ts.BoundObjects
		next.LightBoundObjects = ts.LightBoundObjects
		next.ShadowNodes = ts.Nodes
	}

	if s.windowStart.IsZero() {
		s.windowStart = now
	} else {
		s.windowFrames++
		if elapsed := now.Sub(s.windowStart); elapsed >= s.cfg.StatsWindow {
			next.FPS = int(math.Round(float64(s.windowFrames) * float64(time.Second) / float64(elapsed)))
			s.windowFrames = 0
			s.windowStart = now
			if s.tree != nil {
				s.tree.Prune()
			}
		}
	}

	s.statsMu.Lock()
	s.stats = next
	s.statsMu.Unlock()
}
