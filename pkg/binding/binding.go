// Package binding derives values from observable models and writes them into
// host objects.
//
// Two strategies are provided. A Binding is push based: it recomputes the
// instant one of its upstream observables fires, which suits values that
// change rarely and must react immediately (a label after a click). A light
// binding pairs a host property with a Calculated function and is polled once
// per frame by the scheduler through a Registry, which suits values that
// change every frame (anything derived from a clock).
package binding

import (
	"github.com/go-drift/xdom/pkg/observable"
)

// Binding is a derived value recomputed whenever an observed upstream fires.
type Binding[T any] struct {
	value    func() T
	update   func(T)
	subs     []observable.Subscription
	disposed bool
}

// New creates a Binding computing value and observing the given observables.
// Nil observables are skipped.
func New[T any](value func() T, observables ...observable.Observable) *Binding[T] {
	b := &Binding[T]{value: value}
	b.Observe(observables...)
	return b
}

// Observe adds upstream observables. Nil entries are skipped.
func (b *Binding[T]) Observe(observables ...observable.Observable) {
	if b.disposed {
		return
	}
	for _, obs := range observables {
		if obs == nil {
			continue
		}
		b.subs = append(b.subs, obs.Subscribe(b.refresh))
	}
}

// Compute evaluates the value function without pushing it anywhere.
func (b *Binding[T]) Compute() T {
	return b.value()
}

// OnUpdate replaces the sink and immediately pushes the current value into
// it, so the first paint reflects the model without waiting for a change.
// A nil sink detaches the binding from its target.
func (b *Binding[T]) OnUpdate(sink func(T)) {
	b.update = sink
	if sink != nil {
		b.refresh()
	}
}

// BindTo is OnUpdate for a plain setter.
func (b *Binding[T]) BindTo(set func(T)) {
	b.OnUpdate(set)
}

// Dispose releases every upstream subscription. The binding never
// recomputes afterwards.
func (b *Binding[T]) Dispose() {
	if b.disposed {
		return
	}
	b.disposed = true
	observable.DisposeAll(b.subs...)
	b.subs = nil
	b.update = nil
}

// Disposed reports whether Dispose was called.
func (b *Binding[T]) Disposed() bool {
	return b.disposed
}

func (b *Binding[T]) refresh() {
	if b.disposed {
		return
	}
	v := b.value()
	if b.update != nil {
		b.update(v)
	}
}

// ValueOrBinding is either a constant or a *Binding producing the value.
type ValueOrBinding[T any] struct {
	Value   T
	Binding *Binding[T]
}

// Const wraps a constant value.
func Const[T any](v T) ValueOrBinding[T] {
	return ValueOrBinding[T]{Value: v}
}

// Bound wraps a binding.
func Bound[T any](b *Binding[T]) ValueOrBinding[T] {
	return ValueOrBinding[T]{Binding: b}
}

// Get returns the constant or the binding's current value.
func (v ValueOrBinding[T]) Get() T {
	if v.Binding != nil {
		return v.Binding.Compute()
	}
	return v.Value
}

// Bind pushes v into prop of host. A constant is written once; a binding is
// attached to the property and, when repo is not nil, registered under id so
// that clearing id disposes it.
func Bind[H any, V comparable](id string, host *H, prop Property[H, V], v ValueOrBinding[V], repo *Repository) *Binding[V] {
	if v.Binding == nil {
		prop.Set(host, v.Value)
		return nil
	}
	v.Binding.OnUpdate(func(val V) { prop.Set(host, val) })
	if repo != nil {
		repo.Add(id, v.Binding)
	}
	return v.Binding
}
