// Package errors provides structured error reporting for the xdom runtime.
//
// Conditions fall into three groups. Misuse (a list container that already
// has children, a second disposer registered for the same host node) is
// reported to the global handler and recovered locally. Invariant violations
// (an inverted numeric range) are returned to the caller as errors wrapping a
// sentinel. Loss of a weakly referenced host is not an error at all and is
// ignored silently by the components that observe it.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindMisuse indicates an API misuse that was logged and recovered.
	KindMisuse
	// KindInvariant indicates a violated invariant with no safe recovery value.
	KindInvariant
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindConfig indicates an invalid configuration value.
	KindConfig
)

func (k ErrorKind) String() string {
	switch k {
	case KindMisuse:
		return "misuse"
	case KindInvariant:
		return "invariant"
	case KindPanic:
		return "panic"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// ErrInvalidRange is wrapped by errors returned when a range would have
// min >= max.
var ErrInvalidRange = errors.New("invalid range")

// XdomError represents a structured error in the xdom runtime.
type XdomError struct {
	// Op is the operation that failed (e.g., "list.Items").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *XdomError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *XdomError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "scheduler.recurring").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// Invariant builds an invariant error for op wrapping err.
func Invariant(op string, err error) *XdomError {
	return &XdomError{
		Op:        op,
		Kind:      KindInvariant,
		Err:       err,
		Timestamp: time.Now(),
	}
}

// ErrorHandler receives errors reported by the runtime.
type ErrorHandler interface {
	// HandleError is called when a recoverable error is reported.
	HandleError(err *XdomError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
