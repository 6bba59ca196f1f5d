// Package vm holds the per-thread interpreter state the coroutine runtime
// cooperates with: the call-frame stack and the ambient exception slot.
package vm

import (
	"fmt"

	"github.com/cloudcmds/coroutine/object"
)

// Frame is a handle to an interpreter call frame. A coroutine owns the frame
// representing its body's current position and threads it into and out of the
// ambient frame stack around each resume.
type Frame struct {
	name     string
	qualname string
	back     *Frame
}

// NewFrame creates a frame for the code with the given name and qualified name.
func NewFrame(name, qualname string) *Frame {
	return &Frame{name: name, qualname: qualname}
}

func (f *Frame) Name() string {
	return f.name
}

func (f *Frame) Qualname() string {
	return f.qualname
}

// Back returns the frame beneath this one on the ambient stack, or nil when
// the frame is not currently spliced in.
func (f *Frame) Back() *Frame {
	return f.back
}

func (f *Frame) Type() object.Type {
	return object.FRAME
}

func (f *Frame) Inspect() string {
	return fmt.Sprintf("frame(%s)", f.qualname)
}

func (f *Frame) String() string {
	return f.Inspect()
}

func (f *Frame) Interface() interface{} {
	return f.qualname
}

func (f *Frame) Equals(other object.Object) bool {
	otherFrame, ok := other.(*Frame)
	if !ok {
		return false
	}
	return f == otherFrame
}

func (f *Frame) GetAttr(name string) (object.Object, bool) {
	switch name {
	case "name":
		return object.NewString(f.name), true
	case "qualname":
		return object.NewString(f.qualname), true
	default:
		return nil, false
	}
}

func (f *Frame) SetAttr(name string, value object.Object) error {
	return object.TypeErrorf("frame has no attribute %q", name)
}

func (f *Frame) IsTruthy() bool {
	return true
}
