package object

import (
	"errors"
	"fmt"

	"github.com/cloudcmds/coroutine/errz"
)

// ExcClass is an exception-kind descriptor. Classes form a single-inheritance
// hierarchy rooted at BaseExceptionClass, mirroring the host language's
// exception model. Classes are immutable and compared by identity.
type ExcClass struct {
	*base
	name string
	root *ExcClass
	kind errz.Kind
}

// The built-in exception class hierarchy. GeneratorExit derives directly from
// BaseException so that a bare "except Exception" in a body does not swallow
// the teardown signal.
var (
	BaseExceptionClass = &ExcClass{name: "BaseException", kind: errz.ErrRuntime}
	ExceptionClass     = &ExcClass{name: "Exception", root: BaseExceptionClass, kind: errz.ErrRuntime}
	GeneratorExitClass = &ExcClass{name: "GeneratorExit", root: BaseExceptionClass, kind: errz.ErrTeardown}
	StopIterationClass = &ExcClass{name: "StopIteration", root: ExceptionClass, kind: errz.ErrExhausted}
	TypeErrorClass     = &ExcClass{name: "TypeError", root: ExceptionClass, kind: errz.ErrType}
	ValueErrorClass    = &ExcClass{name: "ValueError", root: ExceptionClass, kind: errz.ErrValue}
	RuntimeErrorClass  = &ExcClass{name: "RuntimeError", root: ExceptionClass, kind: errz.ErrRuntime}
	MemoryErrorClass   = &ExcClass{name: "MemoryError", root: ExceptionClass, kind: errz.ErrMemory}
)

func (c *ExcClass) Type() Type {
	return CLASS
}

func (c *ExcClass) Name() string {
	return c.name
}

func (c *ExcClass) Base() *ExcClass {
	return c.root
}

func (c *ExcClass) Kind() errz.Kind {
	return c.kind
}

func (c *ExcClass) Inspect() string {
	return fmt.Sprintf("class(%s)", c.name)
}

func (c *ExcClass) String() string {
	return c.name
}

func (c *ExcClass) Interface() interface{} {
	return c.name
}

func (c *ExcClass) Equals(other Object) bool {
	otherClass, ok := other.(*ExcClass)
	if !ok {
		return false
	}
	return c == otherClass
}

// IsSubclass returns true if this class is the given class or derives from it.
func (c *ExcClass) IsSubclass(of *ExcClass) bool {
	for cls := c; cls != nil; cls = cls.root {
		if cls == of {
			return true
		}
	}
	return false
}

// New instantiates this class with the given payload value, which may be nil.
func (c *ExcClass) New(value Object) *Exception {
	return &Exception{class: c, value: value}
}

// Exception is an exception instance: a class, an optional payload value, an
// optional traceback, and the cause/context chain built up as exceptions are
// raised while others are active. Exception implements both Object and error.
type Exception struct {
	*base
	class   *ExcClass
	value   Object
	cause   *Exception
	context *Exception
	tb      *Traceback
}

func (e *Exception) Type() Type {
	return EXCEPTION
}

func (e *Exception) Class() *ExcClass {
	return e.class
}

func (e *Exception) Value() Object {
	return e.value
}

func (e *Exception) Cause() *Exception {
	return e.cause
}

func (e *Exception) SetCause(cause *Exception) {
	e.cause = cause
}

func (e *Exception) Context() *Exception {
	return e.context
}

func (e *Exception) SetContext(context *Exception) {
	e.context = context
}

func (e *Exception) Traceback() *Traceback {
	return e.tb
}

func (e *Exception) SetTraceback(tb *Traceback) {
	e.tb = tb
}

// Matches returns true if this exception's class is the given class or a
// subclass of it.
func (e *Exception) Matches(class *ExcClass) bool {
	return e.class.IsSubclass(class)
}

func (e *Exception) Error() string {
	if e.value == nil || e.value == Object(Nil) {
		return e.class.name
	}
	if s, ok := e.value.(*String); ok {
		return fmt.Sprintf("%s: %s", e.class.name, s.Value())
	}
	return fmt.Sprintf("%s: %s", e.class.name, e.value.Inspect())
}

func (e *Exception) Inspect() string {
	return fmt.Sprintf("exception(%s)", e.Error())
}

func (e *Exception) String() string {
	return e.Error()
}

func (e *Exception) Interface() interface{} {
	return error(e)
}

func (e *Exception) Unwrap() error {
	if e.cause != nil {
		return e.cause
	}
	if e.context != nil {
		return e.context
	}
	return nil
}

func (e *Exception) Equals(other Object) bool {
	otherExc, ok := other.(*Exception)
	if !ok {
		return false
	}
	return e == otherExc
}

func (e *Exception) GetAttr(name string) (Object, bool) {
	switch name {
	case "value":
		if e.value == nil {
			return Nil, true
		}
		return e.value, true
	case "class":
		return e.class, true
	case "traceback":
		if e.tb == nil {
			return Nil, true
		}
		return e.tb, true
	default:
		return nil, false
	}
}

// NewException instantiates the given class with an optional payload.
func NewException(class *ExcClass, value Object) *Exception {
	return class.New(value)
}

// IsException reports whether err is an *Exception matching the given class.
func IsException(err error, class *ExcClass) bool {
	var exc *Exception
	if errors.As(err, &exc) {
		return exc.Matches(class)
	}
	return false
}

// AsException converts an arbitrary Go error into an exception instance. An
// *Exception passes through; an errz.Error maps by kind; anything else becomes
// a RuntimeError.
func AsException(err error) *Exception {
	var exc *Exception
	if errors.As(err, &exc) {
		return exc
	}
	var kerr *errz.Error
	if errors.As(err, &kerr) {
		return classForKind(kerr.Kind).New(NewString(kerr.Message))
	}
	return RuntimeErrorClass.New(NewString(err.Error()))
}

func classForKind(kind errz.Kind) *ExcClass {
	switch kind {
	case errz.ErrType:
		return TypeErrorClass
	case errz.ErrValue:
		return ValueErrorClass
	case errz.ErrMemory:
		return MemoryErrorClass
	case errz.ErrExhausted:
		return StopIterationClass
	case errz.ErrTeardown:
		return GeneratorExitClass
	default:
		return RuntimeErrorClass
	}
}
