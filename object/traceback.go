package object

import (
	"fmt"
	"strings"
)

// Traceback records the position at which an exception crossed a frame. Each
// link names a frame; Next points at the older portion of the chain.
type Traceback struct {
	*base
	frameName string
	next      *Traceback
}

func (t *Traceback) Type() Type {
	return TRACEBACK
}

func (t *Traceback) FrameName() string {
	return t.frameName
}

func (t *Traceback) Next() *Traceback {
	return t.next
}

func (t *Traceback) Inspect() string {
	return fmt.Sprintf("traceback(%s)", t.frameName)
}

func (t *Traceback) String() string {
	var names []string
	for tb := t; tb != nil; tb = tb.next {
		names = append(names, tb.frameName)
	}
	return "traceback: " + strings.Join(names, " <- ")
}

func (t *Traceback) Interface() interface{} {
	return t.String()
}

func (t *Traceback) Equals(other Object) bool {
	otherTb, ok := other.(*Traceback)
	if !ok {
		return false
	}
	return t == otherTb
}

// NewTraceback prepends a frame entry to an existing chain, which may be nil.
func NewTraceback(frameName string, next *Traceback) *Traceback {
	return &Traceback{frameName: frameName, next: next}
}
