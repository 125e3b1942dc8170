package observable

import (
	"fmt"

	"github.com/go-drift/xdom/pkg/errors"
)

// RangeEvent is fired by Range when its value changes.
const RangeEvent = "value"

// Range models a value kept within [Min, Max].
type Range struct {
	min, max, val float64
	subs          Repository
}

// NewRange returns a Range over [0, 100] with value 0.
func NewRange() *Range {
	return &Range{min: 0, max: 100}
}

func (r *Range) Value() float64 { return r.val }
func (r *Range) Min() float64   { return r.min }
func (r *Range) Max() float64   { return r.max }

// SetValue clamps v into the range and stores it, notifying on change.
func (r *Range) SetValue(v float64) {
	r.update(min(max(v, r.min), r.max))
}

// SetRange replaces both bounds and clamps the current value into them.
// It fails without changing anything when min >= max.
func (r *Range) SetRange(lo, hi float64) error {
	if lo >= hi {
		return errors.Invariant("observable.Range.SetRange",
			fmt.Errorf("%w: want min < max, got %v >= %v", errors.ErrInvalidRange, lo, hi))
	}
	r.min, r.max = lo, hi
	switch {
	case r.val < lo:
		r.update(lo)
	case r.val > hi:
		r.update(hi)
	}
	return nil
}

// SetMin replaces the lower bound, keeping the upper one.
func (r *Range) SetMin(lo float64) error { return r.SetRange(lo, r.max) }

// SetMax replaces the upper bound, keeping the lower one.
func (r *Range) SetMax(hi float64) error { return r.SetRange(r.min, hi) }

// Subscribe registers onChange for value changes.
func (r *Range) Subscribe(onChange func()) Subscription {
	return r.subs.Add(RangeEvent, onChange)
}

func (r *Range) update(v float64) {
	if r.val == v {
		return
	}
	r.val = v
	r.subs.NotifyFor(RangeEvent)
}
