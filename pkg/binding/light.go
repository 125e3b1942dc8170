package binding

import (
	"weak"
)

// Calculated is a pure, stateless computation of a property value. Many
// light bindings may share one.
type Calculated[T any] func() T

// Calc converts a function into a Calculated value.
func Calc[T any](compute func() T) Calculated[T] {
	return compute
}

// Property reads and writes one named value of a host of type H.
type Property[H any, V comparable] interface {
	Name() string
	Get(host *H) V
	Set(host *H, v V)
}

// Accessor is a Property keyed on the host itself.
type Accessor[H any, V comparable] struct {
	Key    string
	Getter func(host *H) V
	Setter func(host *H, v V)
}

func (a Accessor[H, V]) Name() string     { return a.Key }
func (a Accessor[H, V]) Get(host *H) V    { return a.Getter(host) }
func (a Accessor[H, V]) Set(host *H, v V) { a.Setter(host, v) }

// Custom returns a Property backed by a get/set pair that does not need the
// host, for values that live outside it.
func Custom[H any, V comparable](name string, get func() V, set func(V)) Property[H, V] {
	return Accessor[H, V]{
		Key:    name,
		Getter: func(*H) V { return get() },
		Setter: func(_ *H, v V) { set(v) },
	}
}

// LightBinding pairs a property with the calculation feeding it.
type LightBinding[H any] interface {
	// Property returns the name of the bound property.
	Property() string
	// Apply recomputes the value and writes it when it differs from the
	// current one. It reports whether a write happened.
	Apply(host *H) bool
}

type lightBinding[H any, V comparable] struct {
	prop Property[H, V]
	calc Calculated[V]
}

func (lb lightBinding[H, V]) Property() string { return lb.prop.Name() }

func (lb lightBinding[H, V]) Apply(host *H) bool {
	v := lb.calc()
	if same(lb.prop.Get(host), v) {
		return false
	}
	lb.prop.Set(host, v)
	return true
}

// same is == that reports false instead of panicking when V is an interface
// holding an uncomparable value.
func same[V comparable](a, b V) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}

// NewLightBinding builds the LightBinding for prop fed by calc.
func NewLightBinding[H any, V comparable](prop Property[H, V], calc Calculated[V]) LightBinding[H] {
	return lightBinding[H, V]{prop: prop, calc: calc}
}

// BindingsForObject holds the light bindings of one host. The host is only
// weakly referenced: once it is collected the bindings are inert.
type BindingsForObject[H any] struct {
	ref      weak.Pointer[H]
	bindings []LightBinding[H]
}

// Host returns the host, or nil if it has been collected.
func (b *BindingsForObject[H]) Host() *H {
	return b.ref.Value()
}

// Bindings returns the registered light bindings.
func (b *BindingsForObject[H]) Bindings() []LightBinding[H] {
	return b.bindings
}

// Registry stores light bindings per host id.
type Registry[H any] struct {
	objects map[string]*BindingsForObject[H]
}

// NewRegistry returns an empty Registry.
func NewRegistry[H any]() *Registry[H] {
	return &Registry[H]{objects: make(map[string]*BindingsForObject[H])}
}

// Add registers lb for the host identified by id. The first registration for
// id records a weak reference to host.
func (r *Registry[H]) Add(id string, host *H, lb LightBinding[H]) {
	if lb == nil || host == nil {
		return
	}
	group, ok := r.objects[id]
	if !ok {
		group = &BindingsForObject[H]{ref: weak.Make(host)}
		r.objects[id] = group
	}
	group.bindings = append(group.bindings, lb)
}

// Refresh recomputes every light binding of id and writes the values that
// changed. It returns the number of writes. Unknown ids and collected hosts
// are ignored.
func (r *Registry[H]) Refresh(id string) int {
	group, ok := r.objects[id]
	if !ok {
		return 0
	}
	host := group.ref.Value()
	if host == nil {
		return 0
	}
	writes := 0
	for _, lb := range group.bindings {
		if lb.Apply(host) {
			writes++
		}
	}
	return writes
}

// ClearForObject drops every light binding of id.
func (r *Registry[H]) ClearForObject(id string) {
	delete(r.objects, id)
}

// Has reports whether id has light bindings.
func (r *Registry[H]) Has(id string) bool {
	_, ok := r.objects[id]
	return ok
}

// Get returns the group for id.
func (r *Registry[H]) Get(id string) (*BindingsForObject[H], bool) {
	group, ok := r.objects[id]
	return group, ok
}

// Len returns the number of hosts with light bindings.
func (r *Registry[H]) Len() int {
	return len(r.objects)
}

// CalcProperty writes calc() into prop of host right away and, when repo is
// not nil, registers the pair so the scheduler keeps it fresh.
func CalcProperty[H any, V comparable](id string, host *H, prop Property[H, V], calc Calculated[V], repo *Registry[H]) {
	if calc == nil {
		return
	}
	prop.Set(host, calc())
	if repo != nil {
		repo.Add(id, host, NewLightBinding(prop, calc))
	}
}

// CalcCustomProperty is CalcProperty for a custom property: the first value
// is only written when it differs from what get returns.
func CalcCustomProperty[H any, V comparable](id string, host *H, prop Property[H, V], calc Calculated[V], repo *Registry[H]) {
	if calc == nil {
		return
	}
	lb := NewLightBinding(prop, calc)
	lb.Apply(host)
	if repo != nil {
		repo.Add(id, host, lb)
	}
}
