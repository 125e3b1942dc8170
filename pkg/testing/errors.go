package testing

import (
	"sync"
	"testing"

	"github.com/go-drift/xdom/pkg/errors"
)

// ErrorRecorder is an errors.ErrorHandler that keeps every report.
type ErrorRecorder struct {
	mu     sync.Mutex
	errs   []*errors.XdomError
	panics []*errors.PanicError
}

// RecordErrors installs a new ErrorRecorder as the global handler and
// restores the default handler when t finishes.
func RecordErrors(t testing.TB) *ErrorRecorder {
	t.Helper()
	rec := &ErrorRecorder{}
	errors.SetHandler(rec)
	t.Cleanup(func() { errors.SetHandler(nil) })
	return rec
}

func (r *ErrorRecorder) HandleError(err *errors.XdomError) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

func (r *ErrorRecorder) HandlePanic(err *errors.PanicError) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.panics = append(r.panics, err)
}

// Errors returns the reported errors in order.
func (r *ErrorRecorder) Errors() []*errors.XdomError {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*errors.XdomError(nil), r.errs...)
}

// Panics returns the recovered panics in order.
func (r *ErrorRecorder) Panics() []*errors.PanicError {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*errors.PanicError(nil), r.panics...)
}

// Kinds returns the kind of every reported error.
func (r *ErrorRecorder) Kinds() []errors.ErrorKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	kinds := make([]errors.ErrorKind, len(r.errs))
	for i, err := range r.errs {
		kinds[i] = err.Kind
	}
	return kinds
}
