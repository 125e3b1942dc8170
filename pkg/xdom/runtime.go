// Package xdom wires the reactive pieces into one runtime: a document as
// the render surface, its shadow tree kept in step by a synchronizer, and a
// frame scheduler driving both.
//
// Typical use:
//
//	rt, err := xdom.New(clock, scheduler.DefaultConfig())
//	counter := observable.NewObject(map[string]any{"count": 0})
//	rt.Mount(rt.Div(xdom.Props{Class: "app"},
//		rt.Span(xdom.Props{TextCalc: func() string { return fmt.Sprint(counter.Get("count")) }}),
//	))
//	rt.Start()
package xdom

import (
	"fmt"

	"golang.org/x/net/html"

	"github.com/go-drift/xdom/pkg/dom"
	"github.com/go-drift/xdom/pkg/errors"
	"github.com/go-drift/xdom/pkg/list"
	"github.com/go-drift/xdom/pkg/observable"
	"github.com/go-drift/xdom/pkg/scheduler"
	"github.com/go-drift/xdom/pkg/shadow"
)

// Runtime owns one render surface and everything reacting on it. It is
// single threaded: every method must be called from the goroutine the
// frame clock calls back on.
type Runtime struct {
	doc   *dom.Document
	tree  *shadow.Tree
	sync  *shadow.Synchronizer
	sched *scheduler.Scheduler

	clicks map[string]func()
}

// New creates a Runtime over a fresh <body> surface.
func New(clock scheduler.FrameClock, cfg scheduler.Config) (*Runtime, error) {
	return NewAt(dom.NewDocument(), clock, cfg)
}

// NewAt creates a Runtime over doc.
func NewAt(doc *dom.Document, clock scheduler.FrameClock, cfg scheduler.Config) (*Runtime, error) {
	tree := shadow.NewTree(doc.Root())
	sync := shadow.NewSynchronizer(tree)
	if err := sync.Observe(doc); err != nil {
		return nil, fmt.Errorf("observe document: %w", err)
	}
	sched := scheduler.New(tree, clock, cfg)
	sched.Observe(doc)
	return &Runtime{
		doc:    doc,
		tree:   tree,
		sync:   sync,
		sched:  sched,
		clicks: make(map[string]func()),
	}, nil
}

func (r *Runtime) Document() *dom.Document         { return r.doc }
func (r *Runtime) Tree() *shadow.Tree              { return r.tree }
func (r *Runtime) Scheduler() *scheduler.Scheduler { return r.sched }

// Root returns the surface root.
func (r *Runtime) Root() *html.Node { return r.doc.Root() }

// Start starts the frame loop.
func (r *Runtime) Start() { r.sched.Start() }

// Stop stops the frame loop.
func (r *Runtime) Stop() { r.sched.Stop() }

// Close stops the loop, disposes everything mounted and detaches the
// synchronizer.
func (r *Runtime) Close() {
	r.sched.Stop()
	for _, c := range dom.Elements(r.doc.Root()) {
		r.Unmount(c)
	}
	r.doc.Flush()
	r.sync.Stop()
}

// Mount appends nodes to the surface and links them right away.
func (r *Runtime) Mount(nodes ...*html.Node) {
	r.doc.Append(r.doc.Root(), nodes...)
	r.doc.Flush()
}

// Unmount disposes n's subtree and removes it from its parent.
func (r *Runtime) Unmount(n *html.Node) {
	r.tree.DisposeTree(n)
	r.doc.Remove(n)
}

// Schedule queues update for the next tick.
func (r *Runtime) Schedule(update func()) { r.sched.Schedule(update) }

// Every runs update on every tick until the handle is disposed.
func (r *Runtime) Every(update func()) observable.Disposable {
	return r.sched.ScheduleRecurring(update)
}

// Stats returns the scheduler statistics.
func (r *Runtime) Stats() scheduler.Stats { return r.sched.Stats() }

// Render returns the HTML of the surface's children.
func (r *Runtime) Render() (string, error) {
	return dom.RenderChildren(r.doc.Root())
}

// Click dispatches a click on n. The handler of n or of its closest
// ancestor with one runs; the result reports whether any did.
func (r *Runtime) Click(n *html.Node) bool {
	for cur := n; cur != nil; cur = cur.Parent {
		node, ok := r.tree.Lookup(cur)
		if !ok {
			continue
		}
		if fn, ok := r.clicks[node.ID()]; ok {
			errors.Guard("xdom.click", fn)
			return true
		}
	}
	return false
}

// ListItems renders items into container with template. See list.Items.
func ListItems[T comparable](r *Runtime, container *html.Node, items *observable.List[T], template list.Template[T]) *list.Reconciler[T] {
	return list.Items(r, container, items, template)
}
