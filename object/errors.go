package object

import "fmt"

// TypeErrorf returns a TypeError exception with a formatted message.
func TypeErrorf(format string, args ...any) *Exception {
	return TypeErrorClass.New(NewString(fmt.Sprintf(format, args...)))
}

// ValueErrorf returns a ValueError exception with a formatted message.
func ValueErrorf(format string, args ...any) *Exception {
	return ValueErrorClass.New(NewString(fmt.Sprintf(format, args...)))
}

// RuntimeErrorf returns a RuntimeError exception with a formatted message.
func RuntimeErrorf(format string, args ...any) *Exception {
	return RuntimeErrorClass.New(NewString(fmt.Sprintf(format, args...)))
}

// MemoryErrorf returns a MemoryError exception with a formatted message.
func MemoryErrorf(format string, args ...any) *Exception {
	return MemoryErrorClass.New(NewString(fmt.Sprintf(format, args...)))
}

// NewStopIteration returns the end-of-sequence signal, optionally carrying the
// body's return value as its payload.
func NewStopIteration(value Object) *Exception {
	return StopIterationClass.New(value)
}

// NewGeneratorExit returns the cancellation exception injected by close().
func NewGeneratorExit() *Exception {
	return GeneratorExitClass.New(nil)
}
