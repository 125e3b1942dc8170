package observable

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// ListEvent is the single event name fired by List on any structural change.
const ListEvent = "list"

// List is an ordered sequence that fires ListEvent whenever its contents
// change. The event carries no diff; observers re-read the list.
type List[T any] struct {
	items []T
	subs  Repository
}

// NewList creates a List that takes ownership of items.
func NewList[T any](items []T) *List[T] {
	return &List[T]{items: items}
}

// Of creates a List from the given values.
func Of[T any](items ...T) *List[T] {
	return NewList(items)
}

// From creates a List holding the values yielded by seq.
func From[T any](seq iter.Seq[T]) *List[T] {
	return NewList(slices.Collect(seq))
}

// Len returns the number of items.
func (l *List[T]) Len() int { return len(l.items) }

// At returns the item at idx. The flag is false when idx is out of range.
func (l *List[T]) At(idx int) (T, bool) {
	if idx < 0 || idx >= len(l.items) {
		var zero T
		return zero, false
	}
	return l.items[idx], true
}

// All iterates over the items in order.
func (l *List[T]) All() iter.Seq2[int, T] {
	return slices.All(l.items)
}

// Slice returns a copy of items[start:end], clamped to the list bounds.
func (l *List[T]) Slice(start, end int) []T {
	start = max(0, min(start, len(l.items)))
	end = max(start, min(end, len(l.items)))
	return slices.Clone(l.items[start:end])
}

// Items returns a copy of all items.
func (l *List[T]) Items() []T {
	return slices.Clone(l.items)
}

// Push appends values.
func (l *List[T]) Push(values ...T) {
	l.items = append(l.items, values...)
	l.changed()
}

// Pop removes and returns the last item.
func (l *List[T]) Pop() (T, bool) {
	var zero T
	if len(l.items) == 0 {
		l.changed()
		return zero, false
	}
	last := l.items[len(l.items)-1]
	l.items[len(l.items)-1] = zero
	l.items = l.items[:len(l.items)-1]
	l.changed()
	return last, true
}

// Shift removes and returns the first item.
func (l *List[T]) Shift() (T, bool) {
	var zero T
	if len(l.items) == 0 {
		l.changed()
		return zero, false
	}
	first := l.items[0]
	l.items = slices.Delete(l.items, 0, 1)
	l.changed()
	return first, true
}

// Unshift prepends values.
func (l *List[T]) Unshift(values ...T) {
	l.items = slices.Insert(l.items, 0, values...)
	l.changed()
}

// Splice removes deleteCount items at start and inserts values there.
// A negative deleteCount removes everything from start to the end.
// It returns the removed items.
func (l *List[T]) Splice(start, deleteCount int, values ...T) []T {
	if start < 0 {
		start = max(0, len(l.items)+start)
	}
	start = min(start, len(l.items))
	end := len(l.items)
	if deleteCount >= 0 {
		end = min(start+deleteCount, len(l.items))
	}
	removed := slices.Clone(l.items[start:end])
	l.items = slices.Replace(l.items, start, end, values...)
	l.changed()
	return removed
}

// Set replaces the item at idx. Out-of-range indexes are ignored.
func (l *List[T]) Set(idx int, value T) {
	if idx < 0 || idx >= len(l.items) {
		return
	}
	l.items[idx] = value
	l.changed()
}

// Subscribe registers onChange for ListEvent.
func (l *List[T]) Subscribe(onChange func()) Subscription {
	return l.subs.Add(ListEvent, onChange)
}

// Changes returns the event facade; Changes().Of(ListEvent) is the list
// observable.
func (l *List[T]) Changes() Changes {
	return l.subs.Changes()
}

func (l *List[T]) String() string {
	parts := make([]string, len(l.items))
	for i, item := range l.items {
		parts[i] = fmt.Sprint(item)
	}
	return "list[" + strings.Join(parts, ",") + "]"
}

func (l *List[T]) changed() {
	l.subs.NotifyFor(ListEvent)
}
