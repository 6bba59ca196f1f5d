package vm

import (
	"fmt"

	"github.com/cloudcmds/coroutine/object"
)

// ThreadState carries the ambient per-thread interpreter state: the top of the
// call-frame stack and the currently active exception, if any. It is passed
// explicitly rather than kept in a process global; every coroutine is bound to
// the thread state of its owning logical thread.
type ThreadState struct {
	frame *Frame
	exc   *object.Raised
}

// NewThreadState returns an empty thread state.
func NewThreadState() *ThreadState {
	return &ThreadState{}
}

// Frame returns the current top of the frame stack, which may be nil.
func (ts *ThreadState) Frame() *Frame {
	return ts.frame
}

// SetFrame installs the given frame as the top of the frame stack.
func (ts *ThreadState) SetFrame(f *Frame) {
	ts.frame = f
}

// Err returns the currently active exception without clearing it.
func (ts *ThreadState) Err() *object.Raised {
	return ts.exc
}

// SetErr stages the given exception as the active one, replacing any other.
func (ts *ThreadState) SetErr(r *object.Raised) {
	ts.exc = r
}

// FetchErr atomically moves the active exception out of the thread state,
// clearing it. Paired with RestoreErr it preserves an unrelated exception
// across a resume that must not disturb it.
func (ts *ThreadState) FetchErr() *object.Raised {
	r := ts.exc
	ts.exc = nil
	return r
}

// RestoreErr moves a fetched exception back into the thread state.
func (ts *ThreadState) RestoreErr(r *object.Raised) {
	ts.exc = r
}

// ClearErr discards the active exception.
func (ts *ThreadState) ClearErr() {
	ts.exc = nil
}

// SpliceFrame links f onto the ambient frame stack and installs it as the new
// top, returning the previous top so UnspliceFrame can restore it. The
// coroutine's frame must not already be on top.
func (ts *ThreadState) SpliceFrame(f *Frame) *Frame {
	prior := ts.frame
	if f == nil {
		return prior
	}
	if prior == f {
		panic(fmt.Sprintf("vm: frame %s already on top of the stack", f))
	}
	f.back = prior
	ts.frame = f
	return prior
}

// UnspliceFrame undoes SpliceFrame: it unlinks f and restores the captured
// prior top. It runs unconditionally after every context switch, whether or
// not the body raised.
func (ts *ThreadState) UnspliceFrame(f, prior *Frame) {
	if f != nil {
		if ts.frame != f {
			panic(fmt.Sprintf("vm: expected frame %s on top of the stack, have %v", f, ts.frame))
		}
		f.back = nil
	}
	ts.frame = prior
}
