package binding

import "github.com/go-drift/xdom/pkg/observable"

// Repository groups push bindings by the id of the host they write to.
type Repository struct {
	bindings map[string][]observable.Disposable
}

// NewRepository returns an empty Repository.
func NewRepository() *Repository {
	return &Repository{bindings: make(map[string][]observable.Disposable)}
}

// Add registers b under id. Nil bindings are ignored.
func (r *Repository) Add(id string, b observable.Disposable) {
	if b == nil {
		return
	}
	if r.bindings == nil {
		r.bindings = make(map[string][]observable.Disposable)
	}
	r.bindings[id] = append(r.bindings[id], b)
}

// ClearBindings disposes and forgets every binding registered under id.
func (r *Repository) ClearBindings(id string) {
	list, ok := r.bindings[id]
	if !ok {
		return
	}
	delete(r.bindings, id)
	observable.DisposeAll(list...)
}

// Has reports whether id has bindings.
func (r *Repository) Has(id string) bool {
	_, ok := r.bindings[id]
	return ok
}

// Len returns the number of hosts with bindings.
func (r *Repository) Len() int {
	return len(r.bindings)
}
