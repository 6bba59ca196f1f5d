package object

// Raised is the transportable exception-state carrier: the (class, value,
// traceback) triple that can be staged by throw(), moved in and out of a
// thread state, and delivered into a coroutine body at its suspend point.
type Raised struct {
	class *ExcClass
	value *Exception
	tb    *Traceback

	// returned marks a carrier produced by a body's normal return rather
	// than a raised exception. Strict stop-iteration remapping only applies
	// to raised carriers.
	returned bool
}

func (r *Raised) Class() *ExcClass {
	return r.class
}

// Exception returns the normalized exception instance for this carrier.
func (r *Raised) Exception() *Exception {
	return r.value
}

func (r *Raised) Traceback() *Traceback {
	return r.tb
}

// Matches returns true if the carried exception's class is the given class or
// a subclass of it.
func (r *Raised) Matches(class *ExcClass) bool {
	return r.class.IsSubclass(class)
}

func (r *Raised) Error() string {
	return r.value.Error()
}

// Returned reports whether the carrier signals a normal return instead of a
// raised exception.
func (r *Raised) Returned() bool {
	return r.returned
}

// NewRaised builds a carrier from an exception instance.
func NewRaised(exc *Exception) *Raised {
	return &Raised{class: exc.Class(), value: exc, tb: exc.Traceback()}
}

// NewReturn builds the end-of-sequence carrier for a body that terminated
// normally, optionally carrying its final value.
func NewReturn(value Object) *Raised {
	r := NewRaised(NewStopIteration(value))
	r.returned = true
	return r
}

// Stage validates and normalizes 1-3 positional components into a carrier:
// an exception kind, an optional payload, and an optional traceback chain.
//
// The kind must be exception-class-like: an *ExcClass or an *Exception
// instance. A class with a payload is normalized into an instance of that
// class. An instance must not come with a separate payload. The traceback
// component, if given, must be a *Traceback or Nil. On any failure no partial
// state survives: the returned carrier is nil and the error describes the
// problem.
func Stage(args ...Object) (*Raised, error) {
	if len(args) < 1 || len(args) > 3 {
		return nil, TypeErrorf("throw() takes 1 to 3 arguments (%d given)", len(args))
	}
	var kind, value Object
	kind = args[0]
	if len(args) > 1 {
		value = args[1]
	}
	var tb *Traceback
	if len(args) > 2 && args[2] != Object(Nil) {
		t, ok := args[2].(*Traceback)
		if !ok {
			return nil, TypeErrorf("throw() third argument must be a traceback object")
		}
		tb = t
	}
	switch kind := kind.(type) {
	case *ExcClass:
		if !kind.IsSubclass(BaseExceptionClass) {
			return nil, TypeErrorf(
				"exceptions must be classes or instances deriving from BaseException, not %s",
				kind.Name())
		}
		if value == Object(Nil) {
			value = nil
		}
		exc := kind.New(value)
		exc.SetTraceback(tb)
		return &Raised{class: kind, value: exc, tb: tb}, nil
	case *Exception:
		if value != nil && value != Object(Nil) {
			return nil, TypeErrorf("instance exception may not have a separate value")
		}
		if tb == nil {
			tb = kind.Traceback()
		} else {
			kind.SetTraceback(tb)
		}
		return &Raised{class: kind.Class(), value: kind, tb: tb}, nil
	default:
		return nil, TypeErrorf(
			"exceptions must be classes or instances deriving from BaseException, not %s",
			kind.Type())
	}
}
