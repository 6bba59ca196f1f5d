package coroutine

import (
	"fmt"

	"github.com/cloudcmds/coroutine/gc"
	"github.com/cloudcmds/coroutine/object"
)

// Wrapper adapts a coroutine to the plain iteration/await protocol. Every
// operation delegates verbatim to the wrapped coroutine. The wrapper owns a
// strong reference for its own lifetime and releases it on Release.
type Wrapper struct {
	co       *Coroutine
	released bool
}

// NewWrapper wraps a coroutine, acquiring a strong reference to it.
func NewWrapper(co *Coroutine) *Wrapper {
	co.IncRef()
	w := &Wrapper{co: co}
	gc.Track(w)
	return w
}

// Await returns an adapter exposing the coroutine through the iteration
// protocol, as used by await-style composition.
func (c *Coroutine) Await() *Wrapper {
	return NewWrapper(c)
}

// Coroutine returns the wrapped coroutine.
func (w *Wrapper) Coroutine() *Coroutine {
	return w.co
}

// Next advances the iteration: exactly Send(object.Nil).
func (w *Wrapper) Next() (object.Object, error) {
	return w.co.Send(object.Nil)
}

// Send delegates to the wrapped coroutine.
func (w *Wrapper) Send(value object.Object) (object.Object, error) {
	return w.co.Send(value)
}

// Throw delegates to the wrapped coroutine.
func (w *Wrapper) Throw(args ...object.Object) (object.Object, error) {
	return w.co.Throw(args...)
}

// Close delegates to the wrapped coroutine.
func (w *Wrapper) Close() error {
	return w.co.Close()
}

// Release drops the wrapper's reference to the coroutine. Idempotent.
func (w *Wrapper) Release() {
	if w.released {
		return
	}
	w.released = true
	gc.Untrack(w)
	w.co.DecRef()
}

// Traverse exposes the coroutine as the wrapper's single child reference.
func (w *Wrapper) Traverse(visit func(child any)) {
	visit(w.co)
}

func (w *Wrapper) Type() object.Type {
	return object.ITERATOR
}

func (w *Wrapper) Inspect() string {
	return fmt.Sprintf("<coroutine_wrapper %s at %p>", w.co.Qualname(), w)
}

func (w *Wrapper) String() string {
	return w.Inspect()
}

func (w *Wrapper) Interface() interface{} {
	return nil
}

func (w *Wrapper) Equals(other object.Object) bool {
	otherW, ok := other.(*Wrapper)
	if !ok {
		return false
	}
	return w == otherW
}

func (w *Wrapper) GetAttr(name string) (object.Object, bool) {
	return nil, false
}

func (w *Wrapper) SetAttr(name string, value object.Object) error {
	return object.TypeErrorf("coroutine_wrapper has no attribute %q", name)
}

func (w *Wrapper) IsTruthy() bool {
	return true
}

var _ object.Iterator = (*Wrapper)(nil)
var _ gc.Traversable = (*Wrapper)(nil)
