// Package object provides the object types the coroutine runtime operates on.
//
// This is the engine-facing slice of the host object model: the values a
// coroutine exchanges with its resumer, the cells used for closure variable
// capture, and the exception objects that travel across suspend points.
//
// External users will often type assert an object.Object to a specific type:
//
//	switch obj := obj.(type) {
//	case *object.String:
//		// do something with obj.Value()
//	case *object.Exception:
//		// do something with obj.Class()
//	}
package object

// Type of an object as a string.
type Type string

// Type constants
const (
	BOOL      Type = "bool"
	CELL      Type = "cell"
	CLASS     Type = "class"
	EXCEPTION Type = "exception"
	INT       Type = "int"
	NIL       Type = "nil"
	STRING    Type = "string"
	TRACEBACK Type = "traceback"
	FRAME     Type = "frame"
	CODE      Type = "code"
	COROUTINE Type = "coroutine"
	ITERATOR  Type = "iterator"
)

var (
	Nil   = &NilType{}
	True  = &Bool{value: true}
	False = &Bool{value: false}
)

// Object is the interface that all object types must implement.
type Object interface {
	// Type of the object.
	Type() Type

	// Inspect returns a string representation of the given object.
	Inspect() string

	// Interface converts the given object to a native Go value.
	Interface() interface{}

	// Returns true if the given object is equal to this object.
	Equals(other Object) bool

	// GetAttr returns the attribute with the given name from this object.
	GetAttr(name string) (Object, bool)

	// SetAttr sets the attribute with the given name on this object.
	SetAttr(name string, value Object) error

	// IsTruthy returns true if the object is considered "truthy".
	IsTruthy() bool
}

// Iterator is implemented by objects that support the iteration protocol.
// Next returns the next produced value, or an *Exception error whose class
// is StopIteration when the sequence is exhausted.
type Iterator interface {
	Object
	Next() (Object, error)
}
