package coroutine

import "github.com/cloudcmds/coroutine/object"

// Iterate drives an iterator to exhaustion, calling fn for each produced
// value. Iteration stops on the end-of-sequence signal (which is consumed) or
// on the first error, which is returned.
func Iterate(it object.Iterator, fn func(value object.Object) error) error {
	for {
		value, err := it.Next()
		if err != nil {
			if object.IsException(err, object.StopIterationClass) {
				return nil
			}
			return err
		}
		if err := fn(value); err != nil {
			return err
		}
	}
}

// Collect gathers every value an iterator produces.
func Collect(it object.Iterator) ([]object.Object, error) {
	var values []object.Object
	err := Iterate(it, func(value object.Object) error {
		values = append(values, value)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return values, nil
}
