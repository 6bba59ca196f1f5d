package main

import (
	"github.com/cloudcmds/coroutine"
	"github.com/cloudcmds/coroutine/object"
	"github.com/cloudcmds/coroutine/vm"
)

// Demo generator bodies used by the run subcommand. Each exercises a
// different slice of the resume protocol.

func makeDemo(ts *vm.ThreadState, name string, count int64) (*coroutine.Coroutine, error) {
	switch name {
	case "counter":
		return newCounter(ts, count), nil
	case "fib":
		return newFib(ts, count), nil
	case "delegate":
		return newDelegate(ts, count), nil
	default:
		return nil, object.ValueErrorf("unknown demo: %q (want counter, fib, or delegate)", name)
	}
}

// newCounter yields the integers [0, n).
func newCounter(ts *vm.ThreadState, n int64) *coroutine.Coroutine {
	code := coroutine.NewCode("counter", "demos.counter", 0)
	return coroutine.New(ts, code, func(co *coroutine.Coroutine, args []object.Object) error {
		for i := int64(0); i < n; i++ {
			if _, err := co.Yield(object.NewInt(i)); err != nil {
				return err
			}
		}
		return nil
	})
}

// newFib yields the first n Fibonacci numbers.
func newFib(ts *vm.ThreadState, n int64) *coroutine.Coroutine {
	code := coroutine.NewCode("fib", "demos.fib", 0)
	return coroutine.New(ts, code, func(co *coroutine.Coroutine, args []object.Object) error {
		a, b := int64(0), int64(1)
		for i := int64(0); i < n; i++ {
			if _, err := co.Yield(object.NewInt(a)); err != nil {
				return err
			}
			a, b = b, a+b
		}
		return nil
	})
}

// newDelegate chains counter and fib through a delegating outer
// coroutine, exercising the forwarding path end to end.
func newDelegate(ts *vm.ThreadState, n int64) *coroutine.Coroutine {
	code := coroutine.NewCode("delegate", "demos.delegate", 0)
	return coroutine.New(ts, code, func(co *coroutine.Coroutine, args []object.Object) error {
		first := newCounter(ts, n)
		defer first.DecRef()
		it := first.Await()
		defer it.Release()
		if _, err := co.YieldFrom(it); err != nil {
			return err
		}

		second := newFib(ts, n)
		defer second.DecRef()
		it2 := second.Await()
		defer it2.Release()
		_, err := co.YieldFrom(it2)
		return err
	})
}
