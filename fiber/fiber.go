// Package fiber provides the cooperative execution context primitive used by
// the coroutine runtime: an opaque unit of a second call stack that can be
// swapped to and from.
//
// Contexts are backed by goroutines parked on a wake channel. Swap is
// symmetric: it transfers the calling logical thread to the target context and
// returns when some other Swap transfers control back. The primitive is
// single-logical-thread and cooperative; no two contexts may be concurrently
// swapped into from different OS threads.
package fiber

import (
	"errors"
	"sync/atomic"
)

// ErrNoStack is returned by New when the live-context limit is exhausted and
// no stack can be reserved for a new context.
var ErrNoStack = errors.New("fiber: no stack available for new context")

// errReleased unwinds the entry function when a parked context is released.
var errReleased = errors.New("fiber: context released")

// DefaultLimit is the default cap on live contexts.
const DefaultLimit = 1 << 16

var (
	limit int64 = DefaultLimit
	live  int64
)

// SetLimit caps the number of live contexts. Zero or negative removes the cap.
func SetLimit(n int64) {
	if n <= 0 {
		n = 1<<63 - 1
	}
	atomic.StoreInt64(&limit, n)
}

// Live returns the number of live contexts.
func Live() int64 {
	return atomic.LoadInt64(&live)
}

// Context is an opaque execution context owning its own stack.
type Context struct {
	wake     chan struct{}
	entry    func()
	started  bool
	released bool
	done     bool
}

// Caller returns a context handle representing the resuming side of a swap
// pair. It owns no stack of its own; it marks the point the driving thread
// parks at while the paired context executes.
func Caller() *Context {
	return &Context{wake: make(chan struct{}), started: true}
}

// New reserves a context for the given entry function. The entry function does
// not begin executing until the context is first swapped into. New fails with
// ErrNoStack when the live-context limit is exhausted; the failure is reported
// to the caller and is not fatal.
func New(entry func()) (*Context, error) {
	for {
		n := atomic.LoadInt64(&live)
		if n >= atomic.LoadInt64(&limit) {
			return nil, ErrNoStack
		}
		if atomic.CompareAndSwapInt64(&live, n, n+1) {
			break
		}
	}
	return &Context{
		wake:  make(chan struct{}),
		entry: entry,
	}, nil
}

// Swap transfers the CPU of the calling logical thread to the "to" context,
// suspending "from" at exactly the point of the call. It returns when some
// other Swap transfers control back to "from". If "from" was released while
// parked, Swap unwinds the stack instead of returning; entry functions let
// that unwinding escape so the context's goroutine can exit.
func Swap(from, to *Context) {
	to.resume()
	<-from.wake
	if from.released {
		panic(errReleased)
	}
}

// Exit hands control back to the given context for good. Entry wrappers call
// this as their final act, after which the context's goroutine returns.
func Exit(self, to *Context) {
	self.done = true
	atomic.AddInt64(&live, -1)
	to.resume()
}

// IsReleased reports whether a recovered panic value is the release signal.
// Entry wrappers that recover panics must re-panic such values.
func IsReleased(r any) bool {
	err, ok := r.(error)
	return ok && errors.Is(err, errReleased)
}

// Released reports whether the context has been released. Code running on a
// released context must not attempt further swaps.
func (c *Context) Released() bool {
	return c.released
}

// Abort unwinds the calling entry function with the release signal. Used when
// code on a released context would otherwise attempt another swap.
func Abort() {
	panic(errReleased)
}

func (c *Context) resume() {
	if c.started {
		c.wake <- struct{}{}
		return
	}
	c.started = true
	go func() {
		<-c.wake
		defer func() {
			if r := recover(); r != nil {
				if !IsReleased(r) {
					panic(r)
				}
				c.done = true
				atomic.AddInt64(&live, -1)
			}
		}()
		c.entry()
	}()
	c.wake <- struct{}{}
}

// Release reclaims the context's stack. It must only be called when the
// context is not currently executing. A context parked at a suspend point is
// resumed once with the release flag set so its goroutine unwinds and exits; a
// context that never started or already finished is reclaimed directly.
func Release(c *Context) {
	if c == nil || c.done {
		return
	}
	if !c.started {
		// Never swapped in: only the reservation needs returning.
		c.done = true
		atomic.AddInt64(&live, -1)
		return
	}
	c.released = true
	c.wake <- struct{}{}
}
