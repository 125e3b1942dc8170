package observable

// Disposable releases resources held by a subscription, binding or
// scheduled update. Dispose must be idempotent.
type Disposable interface {
	Dispose()
}

// DisposeFunc adapts a plain function to Disposable.
type DisposeFunc func()

// Dispose calls f.
func (f DisposeFunc) Dispose() {
	if f != nil {
		f()
	}
}

// DisposeAll disposes every item in order and skips nils.
func DisposeAll[D Disposable](items ...D) {
	for _, d := range items {
		if any(d) != nil {
			d.Dispose()
		}
	}
}
