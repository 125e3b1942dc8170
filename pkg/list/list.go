// Package list keeps the element children of a container in step with an
// observable.List.
//
// The reconciler remembers the items it rendered on the last pass. On the
// next pass it compares that sequence with the list by identity: everything
// from the first differing index onwards is torn down and rendered again,
// while pure growth or shrinking at the end only touches the tail. A single
// insertion near the front therefore rebuilds the whole tail.
package list

import (
	"slices"

	"golang.org/x/net/html"

	"github.com/go-drift/xdom/pkg/dom"
	"github.com/go-drift/xdom/pkg/errors"
	"github.com/go-drift/xdom/pkg/observable"
	"github.com/go-drift/xdom/pkg/scheduler"
	"github.com/go-drift/xdom/pkg/shadow"
)

// Env is the runtime a Reconciler works in.
type Env interface {
	Document() *dom.Document
	Tree() *shadow.Tree
	Scheduler() *scheduler.Scheduler
}

// Template renders one item as a host node.
type Template[T any] func(item T) *html.Node

// Reconciler renders an observable list into a container.
type Reconciler[T comparable] struct {
	env       Env
	container *html.Node
	items     *observable.List[T]
	template  Template[T]

	last      []T
	changes   observable.Subscription
	scheduled bool
	detach    func()
}

// Items binds items to container: each item is rendered with template and
// the children follow the list while container is connected. A container
// that already has children is a misuse; the children are dropped.
func Items[T comparable](env Env, container *html.Node, items *observable.List[T], template Template[T]) *Reconciler[T] {
	if container.FirstChild != nil {
		errors.Misuse("list.Items", "container <%s> should not have any children, dropping them", container.Data)
		for _, c := range dom.Elements(container) {
			env.Tree().DisposeTree(c)
		}
		env.Document().ReplaceChildren(container)
	}
	r := &Reconciler[T]{
		env:       env,
		container: container,
		items:     items,
		template:  template,
	}
	r.detach = env.Tree().Attach(container, r)
	return r
}

// Container returns the managed container.
func (r *Reconciler[T]) Container() *html.Node {
	return r.container
}

// Rendered returns the items of the last pass.
func (r *Reconciler[T]) Rendered() []T {
	return slices.Clone(r.last)
}

// OnConnected renders the current list and follows its changes. Changes are
// coalesced into at most one scheduled update per tick.
func (r *Reconciler[T]) OnConnected() {
	r.Update()
	if r.changes != nil {
		r.changes.Unsubscribe()
	}
	r.changes = r.items.Subscribe(func() {
		if r.scheduled {
			return
		}
		r.scheduled = true
		r.env.Scheduler().Schedule(func() {
			r.scheduled = false
			r.Update()
		})
	})
}

// OnDisconnected stops following the list. The rendered children stay.
func (r *Reconciler[T]) OnDisconnected() {
	if r.changes != nil {
		r.changes.Unsubscribe()
		r.changes = nil
	}
}

// Close detaches the reconciler from the container's lifecycle.
func (r *Reconciler[T]) Close() {
	r.OnDisconnected()
	if r.detach != nil {
		r.detach()
		r.detach = nil
	}
}

// Update runs one reconciliation pass.
func (r *Reconciler[T]) Update() {
	items := r.items.Items()
	count := min(len(r.last), len(items))
	for i := range count {
		if r.last[i] != items[i] {
			r.removeRange(i, dom.ElementCount(r.container))
			r.last = slices.Clone(items[:i])
			r.render(items, i)
			return
		}
	}
	switch {
	case len(items) < len(r.last):
		r.removeRange(len(items), len(r.last))
		r.last = r.last[:len(items)]
	case len(items) > len(r.last):
		r.render(items, len(r.last))
	}
}

// removeRange disposes and removes the element children in [start, end),
// last first.
func (r *Reconciler[T]) removeRange(start, end int) {
	doc, tree := r.env.Document(), r.env.Tree()
	for i := end - 1; i >= start; i-- {
		child := dom.ElementAt(r.container, i)
		if child == nil {
			continue
		}
		tree.DisposeTree(child)
		doc.Remove(child)
	}
}

// render renders items[start:] and inserts each one right after the
// previous element child. It stops at the first item the template gives no
// node for, so r.last stays aligned with the element children.
func (r *Reconciler[T]) render(items []T, start int) {
	doc := r.env.Document()
	prev := dom.ElementAt(r.container, start-1)
	for _, item := range items[start:] {
		el := r.template(item)
		if el == nil {
			errors.Misuse("list.render", "template returned no node for item %v", item)
			return
		}
		if prev == nil {
			doc.InsertBefore(r.container, el, dom.ElementAt(r.container, 0))
		} else {
			doc.InsertAfter(prev, el)
		}
		r.last = append(r.last, item)
		prev = el
	}
}
