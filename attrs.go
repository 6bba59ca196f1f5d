package coroutine

import (
	"fmt"

	"github.com/cloudcmds/coroutine/object"
)

// Name returns the coroutine's display name.
func (c *Coroutine) Name() string {
	return c.name.Value()
}

// Qualname returns the coroutine's qualified name.
func (c *Coroutine) Qualname() string {
	return c.qualname.Value()
}

func (c *Coroutine) Type() object.Type {
	return object.COROUTINE
}

func (c *Coroutine) Inspect() string {
	return fmt.Sprintf("<coroutine %s at %p>", c.qualname.Value(), c)
}

func (c *Coroutine) String() string {
	return c.Inspect()
}

func (c *Coroutine) Interface() interface{} {
	return nil
}

func (c *Coroutine) Equals(other object.Object) bool {
	otherCo, ok := other.(*Coroutine)
	if !ok {
		return false
	}
	return c == otherCo
}

func (c *Coroutine) IsTruthy() bool {
	return true
}

func (c *Coroutine) GetAttr(name string) (object.Object, bool) {
	switch name {
	case "name":
		return c.name, true
	case "qualname":
		return c.qualname, true
	case "running":
		return object.NewBool(c.running), true
	case "code":
		return c.code, true
	case "frame":
		if c.frame == nil {
			return object.Nil, true
		}
		return c.frame, true
	case "await":
		if c.yieldFrom == nil {
			return object.Nil, true
		}
		return c.yieldFrom, true
	default:
		return nil, false
	}
}

func (c *Coroutine) SetAttr(name string, value object.Object) error {
	switch name {
	case "name":
		s, ok := value.(*object.String)
		if !ok {
			return object.TypeErrorf("name must be set to a string object")
		}
		c.name = s
		return nil
	case "qualname":
		s, ok := value.(*object.String)
		if !ok {
			return object.TypeErrorf("qualname must be set to a string object")
		}
		c.qualname = s
		return nil
	case "code":
		return object.RuntimeErrorf("code is not writable")
	case "frame":
		return object.RuntimeErrorf("frame is not writable")
	case "running":
		return object.RuntimeErrorf("running is not writable")
	case "await":
		return object.RuntimeErrorf("await is not writable")
	default:
		return object.TypeErrorf("coroutine has no attribute %q", name)
	}
}
