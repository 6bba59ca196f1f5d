// Package errz defines the error kinds used by the coroutine runtime.
//
// Engine-visible exceptions are objects in the object package. This package
// holds the underlying kind taxonomy plus a handful of plain Go error types
// for packages that sit below the object model (fiber, gc).
package errz

import "fmt"

// Kind represents the category of a runtime error.
type Kind int

const (
	// ErrType indicates a type mismatch or invalid operation on a type.
	ErrType Kind = iota
	// ErrValue indicates an invalid value for an operation.
	ErrValue
	// ErrRuntime indicates a general runtime error.
	ErrRuntime
	// ErrMemory indicates a resource allocation failure.
	ErrMemory
	// ErrExhausted indicates the end-of-sequence signal of an iterator.
	ErrExhausted
	// ErrTeardown indicates the cancellation signal injected by close().
	ErrTeardown
)

// String returns the string representation of the error kind.
func (k Kind) String() string {
	switch k {
	case ErrType:
		return "type error"
	case ErrValue:
		return "value error"
	case ErrRuntime:
		return "runtime error"
	case ErrMemory:
		return "memory error"
	case ErrExhausted:
		return "iteration exhausted"
	case ErrTeardown:
		return "teardown"
	default:
		return "error"
	}
}

// Error is a kinded error with an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind.String(), e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New returns a kinded error with the given message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf returns a kinded error with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// TypeErrorf returns a type error with a formatted message.
func TypeErrorf(format string, args ...any) *Error {
	return Newf(ErrType, format, args...)
}

// ValueErrorf returns a value error with a formatted message.
func ValueErrorf(format string, args ...any) *Error {
	return Newf(ErrValue, format, args...)
}

// RuntimeErrorf returns a runtime error with a formatted message.
func RuntimeErrorf(format string, args ...any) *Error {
	return Newf(ErrRuntime, format, args...)
}

// MemoryErrorf returns a memory error with a formatted message.
func MemoryErrorf(format string, args ...any) *Error {
	return Newf(ErrMemory, format, args...)
}
