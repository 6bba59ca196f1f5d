package coroutine

import (
	"fmt"

	"github.com/cloudcmds/coroutine/object"
)

// Flags configure the behavior of a compiled body.
type Flags uint32

const (
	// FlagStopIterationRemap selects strict stop-iteration remapping: a
	// StopIteration escaping the body surfaces to the resumer as a
	// RuntimeError chained to the original, instead of silently ending the
	// iteration one level up. This is the only externally configured option.
	FlagStopIterationRemap Flags = 1 << 0
)

// Code is the immutable descriptor of a compiled coroutine body: its name,
// qualified name and behavior flags. The translator that emits the body
// creates one Code per compiled function; every instantiation shares it.
type Code struct {
	name     string
	qualname string
	flags    Flags
}

// NewCode creates a body descriptor.
func NewCode(name, qualname string, flags Flags) *Code {
	if qualname == "" {
		qualname = name
	}
	return &Code{name: name, qualname: qualname, flags: flags}
}

func (c *Code) Name() string {
	return c.name
}

func (c *Code) Qualname() string {
	return c.qualname
}

func (c *Code) Flags() Flags {
	return c.flags
}

func (c *Code) Type() object.Type {
	return object.CODE
}

func (c *Code) Inspect() string {
	return fmt.Sprintf("code(%s)", c.qualname)
}

func (c *Code) String() string {
	return c.Inspect()
}

func (c *Code) Interface() interface{} {
	return c.qualname
}

func (c *Code) Equals(other object.Object) bool {
	otherCode, ok := other.(*Code)
	if !ok {
		return false
	}
	return c == otherCode
}

func (c *Code) GetAttr(name string) (object.Object, bool) {
	switch name {
	case "name":
		return object.NewString(c.name), true
	case "qualname":
		return object.NewString(c.qualname), true
	default:
		return nil, false
	}
}

func (c *Code) SetAttr(name string, value object.Object) error {
	return object.TypeErrorf("code has no attribute %q", name)
}

func (c *Code) IsTruthy() bool {
	return true
}
