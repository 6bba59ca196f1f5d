// Package coroutine implements stackful generator/coroutine objects: values
// that can be entered, suspended mid-execution, and resumed later, carrying
// their own call-stack frame, pending exception state, and cross-context
// value exchange.
//
// A Coroutine is driven by a resumer through Send, Throw and Close. Each call
// swaps the logical thread into the coroutine's own execution context, runs
// the body until it yields, returns or raises, swaps back, and either returns
// the produced value or re-raises. A Wrapper adapts a coroutine to the plain
// iteration protocol for callers that only know Next.
//
// The engine is single-logical-thread and cooperative: exactly one of the
// resumer and the body runs at a time, suspension happens only at explicit
// yield points, and cancellation is delivered cooperatively by Close injecting
// a GeneratorExit exception at the body's suspend point.
package coroutine
