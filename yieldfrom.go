package coroutine

import (
	"errors"

	"github.com/cloudcmds/coroutine/object"
)

// The optional parts of the delegation protocol. Anything iterable can be a
// delegate target; targets that also support send/throw/close get the
// corresponding operations forwarded instead of approximated.
type sender interface {
	Send(value object.Object) (object.Object, error)
}

type thrower interface {
	Throw(args ...object.Object) (object.Object, error)
}

type closer interface {
	Close() error
}

// YieldFrom delegates to an inner iterator or awaitable: every value the
// target produces is yielded to this coroutine's resumer, values sent by the
// resumer are forwarded into the target, and exceptions thrown at this
// coroutine's suspend points are forwarded too. While the delegation is
// active the target is exposed as the coroutine's delegate. YieldFrom returns
// the target's final value (the payload of its end-of-sequence signal).
func (c *Coroutine) YieldFrom(target object.Iterator) (object.Object, error) {
	c.yieldFrom = target
	defer func() {
		c.yieldFrom = nil
	}()

	produced, err := target.Next()
	for {
		if err != nil {
			if object.IsException(err, object.StopIterationClass) {
				return stopIterationValue(err), nil
			}
			return nil, err
		}

		sent, yerr := c.Yield(produced)
		if yerr != nil {
			produced, err = c.forwardThrow(target, yerr)
			continue
		}

		if s, ok := target.(sender); ok && sent != object.Object(object.Nil) {
			produced, err = s.Send(sent)
		} else {
			produced, err = target.Next()
		}
	}
}

// forwardThrow delivers an exception thrown at our suspend point into the
// delegate. GeneratorExit closes the target and propagates; other exceptions
// are forwarded when the target supports throw, and propagate otherwise.
func (c *Coroutine) forwardThrow(target object.Iterator, err error) (object.Object, error) {
	var exc *object.Exception
	if !errors.As(err, &exc) {
		return nil, err
	}
	if exc.Matches(object.GeneratorExitClass) {
		if cl, ok := target.(closer); ok {
			if cerr := cl.Close(); cerr != nil {
				return nil, cerr
			}
		}
		return nil, exc
	}
	if th, ok := target.(thrower); ok {
		return th.Throw(exc)
	}
	return nil, exc
}

func stopIterationValue(err error) object.Object {
	var exc *object.Exception
	if errors.As(err, &exc) && exc.Value() != nil {
		return exc.Value()
	}
	return object.Nil
}
