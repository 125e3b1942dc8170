package observable

import "sort"

// Object is a named-property bag whose writes are observed.
//
// Writing a value that is LooseEqual to the current one does nothing.
// Any other write stores the value and notifies the subscribers of that
// property, then the wildcard subscribers. Properties that were not part of
// the initial set may be written freely.
type Object struct {
	props map[string]any
	subs  Repository
}

// NewObject creates an Object holding a copy of initial.
func NewObject(initial map[string]any) *Object {
	o := &Object{props: make(map[string]any, len(initial))}
	for k, v := range initial {
		o.props[k] = v
	}
	return o
}

// Get returns the current value of prop, or nil if it was never written.
func (o *Object) Get(prop string) any {
	return o.props[prop]
}

// Has reports whether prop has been written.
func (o *Object) Has(prop string) bool {
	_, ok := o.props[prop]
	return ok
}

// Keys returns the property names in sorted order.
func (o *Object) Keys() []string {
	keys := make([]string, 0, len(o.props))
	for k := range o.props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Set writes prop and notifies if the value changed.
func (o *Object) Set(prop string, value any) {
	if !o.store(prop, value) {
		return
	}
	o.subs.NotifyFor(prop)
}

// Update writes several properties as one commit. Subscribers of each
// changed property run in the order the writes happened (sorted by name, as
// map iteration has no order), and the wildcard subscribers run once.
func (o *Object) Update(values map[string]any) {
	names := make([]string, 0, len(values))
	for k := range values {
		names = append(names, k)
	}
	sort.Strings(names)

	changed := names[:0]
	for _, name := range names {
		if o.store(name, values[name]) {
			changed = append(changed, name)
		}
	}
	if len(changed) == 0 {
		return
	}
	o.subs.NotifyFor(changed...)
}

// Subscribe registers onChange for prop (or Wildcard).
func (o *Object) Subscribe(prop string, onChange func()) Subscription {
	return o.subs.Add(prop, onChange)
}

// Changes returns the per-property Observable facade.
func (o *Object) Changes() Changes {
	return o.subs.Changes()
}

func (o *Object) store(prop string, value any) bool {
	if old, ok := o.props[prop]; ok && LooseEqual(old, value) {
		return false
	}
	o.props[prop] = value
	return true
}

// Get returns prop of obj converted to T. The flag is false when the
// property is missing or holds another type.
func Get[T any](obj *Object, prop string) (T, bool) {
	v, ok := obj.props[prop].(T)
	return v, ok
}
