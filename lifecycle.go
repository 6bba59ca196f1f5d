package coroutine

import (
	"fmt"

	"github.com/cloudcmds/coroutine/fiber"
	"github.com/cloudcmds/coroutine/gc"
)

// IncRef acquires a strong reference to the coroutine.
func (c *Coroutine) IncRef() {
	c.refs++
}

// DecRef drops a strong reference. Dropping the last reference finalizes the
// coroutine: a coroutine still suspended mid-body is closed first, and only
// then destroyed.
func (c *Coroutine) DecRef() {
	if c.refs <= 0 {
		panic("coroutine: DecRef on a dead coroutine")
	}
	c.refs--
	if c.refs == 0 {
		c.finalize()
	}
}

// Refs returns the current reference count.
func (c *Coroutine) Refs() int64 {
	return c.refs
}

// finalize runs when the last strong reference is dropped. A coroutine still
// suspended mid-body is revived with one temporary reference so Close can
// safely re-enter user code, which may itself create and drop references.
// Errors from the forced close have no caller to receive them and go to the
// unraisable sink. If the close durably re-acquired a reference, destruction
// is aborted and the coroutine stays live.
func (c *Coroutine) finalize() {
	if c.status == StatusRunning {
		c.refs = 1

		saved := c.ts.FetchErr()
		if err := c.Close(); err != nil {
			gc.Unraisable(c, err)
		}
		c.ts.RestoreErr(saved)

		c.refs--
		if c.refs != 0 {
			// Re-acquired during the forced close: restore as a live object.
			return
		}
	}
	c.destroy()
}

// destroy is the true teardown. The collector must stop observing the object
// before any owned reference is released.
func (c *Coroutine) destroy() {
	if c.destroyed {
		return
	}
	gc.Untrack(c)

	c.frame = nil
	c.releaseParams()
	c.closure = nil
	c.yieldFrom = nil
	c.yielded = nil
	c.exc = nil

	c.weakrefs.Invalidate()

	if c.bodyCtx != nil {
		fiber.Release(c.bodyCtx)
		c.bodyCtx = nil
	}

	c.name = nil
	c.qualname = nil
	c.code = nil
	c.destroyed = true
}

// Destroyed reports whether teardown has completed.
func (c *Coroutine) Destroyed() bool {
	return c.destroyed
}

// NewWeakRef creates a weak reference to the coroutine, invalidated at its
// destruction.
func (c *Coroutine) NewWeakRef() *gc.WeakRef {
	return c.weakrefs.NewRef(c)
}

// WeakRefCount returns the number of live weak references.
func (c *Coroutine) WeakRefCount() int {
	return c.weakrefs.Len()
}

// Traverse visits every owned child reference for cycle collection.
func (c *Coroutine) Traverse(visit func(child any)) {
	if c.name != nil {
		visit(c.name)
	}
	if c.qualname != nil {
		visit(c.qualname)
	}
	if c.code != nil {
		visit(c.code)
	}
	if c.yieldFrom != nil {
		visit(c.yieldFrom)
	}
	if c.yielded != nil {
		visit(c.yielded)
	}
	for _, cell := range c.closure {
		visit(cell)
	}
	for _, param := range c.params {
		visit(param)
	}
}

var _ gc.Traversable = (*Coroutine)(nil)
var _ fmt.Stringer = (*Coroutine)(nil)
