package coroutine

import (
	"testing"

	"github.com/cloudcmds/coroutine/gc"
	"github.com/cloudcmds/coroutine/object"
	"github.com/stretchr/testify/require"
)

func TestRefCounting(t *testing.T) {
	_, co := newTestCoroutine(t, 0, func(co *Coroutine, args []object.Object) error {
		return nil
	})
	require.Equal(t, int64(1), co.Refs())
	co.IncRef()
	require.Equal(t, int64(2), co.Refs())
	co.DecRef()
	require.Equal(t, int64(1), co.Refs())
	require.False(t, co.Destroyed())
}

func TestDecRefDestroysUnused(t *testing.T) {
	_, co := newTestCoroutine(t, 0, func(co *Coroutine, args []object.Object) error {
		return nil
	})
	require.True(t, gc.IsTracked(co))

	co.DecRef()
	require.True(t, co.Destroyed())
	require.False(t, gc.IsTracked(co))
	require.Nil(t, co.Frame())
}

func TestDecRefPanicsWhenDead(t *testing.T) {
	_, co := newTestCoroutine(t, 0, func(co *Coroutine, args []object.Object) error {
		return nil
	})
	co.DecRef()
	require.Panics(t, func() {
		co.DecRef()
	})
}

func TestFinalizeClosesSuspended(t *testing.T) {
	var observed error
	_, co := newTestCoroutine(t, 0, func(co *Coroutine, args []object.Object) error {
		_, err := co.Yield(object.NewInt(1))
		observed = err
		return err
	})
	_, err := co.Send(object.Nil)
	require.Nil(t, err)

	co.DecRef()
	require.True(t, object.IsException(observed, object.GeneratorExitClass))
	require.True(t, co.Destroyed())
	require.Equal(t, StatusFinished, co.Status())
}

func TestFinalizePreservesAmbientError(t *testing.T) {
	ts, co := newTestCoroutine(t, 0, func(co *Coroutine, args []object.Object) error {
		_, err := co.Yield(object.NewInt(1))
		return err
	})
	_, err := co.Send(object.Nil)
	require.Nil(t, err)

	ambient := object.NewRaised(object.ValueErrorf("pending"))
	ts.SetErr(ambient)
	co.DecRef()
	require.Same(t, ambient, ts.Err())
	ts.ClearErr()
}

func TestFinalizeUnraisable(t *testing.T) {
	var gotObj any
	var gotErr error
	prev := gc.SetUnraisableHandler(func(obj any, err error) {
		gotObj = obj
		gotErr = err
	})
	defer gc.SetUnraisableHandler(prev)

	_, co := newTestCoroutine(t, 0, func(co *Coroutine, args []object.Object) error {
		for i := int64(1); ; i++ {
			_, _ = co.Yield(object.NewInt(i))
		}
	})
	_, err := co.Send(object.Nil)
	require.Nil(t, err)

	co.DecRef()
	require.Same(t, co, gotObj.(*Coroutine))
	require.EqualError(t, gotErr, "RuntimeError: coroutine ignored GeneratorExit")
	require.True(t, co.Destroyed())
}

func TestFinalizeRevivalReacquired(t *testing.T) {
	_, co := newTestCoroutine(t, 0, func(co *Coroutine, args []object.Object) error {
		_, err := co.Yield(object.NewInt(1))
		if object.IsException(err, object.GeneratorExitClass) {
			// Cleanup takes a durable reference: destruction must abort.
			co.IncRef()
		}
		return err
	})
	_, err := co.Send(object.Nil)
	require.Nil(t, err)

	co.DecRef()
	require.False(t, co.Destroyed())
	require.Equal(t, int64(1), co.Refs())
	require.Equal(t, StatusFinished, co.Status())

	co.DecRef()
	require.True(t, co.Destroyed())
}

func TestWeakRefsInvalidatedOnDestroy(t *testing.T) {
	_, co := newTestCoroutine(t, 0, func(co *Coroutine, args []object.Object) error {
		return nil
	})

	ref := co.NewWeakRef()
	require.Equal(t, 1, co.WeakRefCount())
	got, ok := ref.Get()
	require.True(t, ok)
	require.Same(t, co, got.(*Coroutine))

	co.DecRef()
	require.Equal(t, 0, co.WeakRefCount())
	_, ok = ref.Get()
	require.False(t, ok)
}

func TestTraverseChildren(t *testing.T) {
	var shared object.Object = object.NewInt(0)
	cell := object.NewCell(&shared)
	arg := object.NewString("arg")

	_, co := newTestCoroutine(t, 0, func(co *Coroutine, args []object.Object) error {
		return nil
	}, WithClosure(cell), WithArgs(arg))

	children := map[any]bool{}
	co.Traverse(func(child any) {
		children[child] = true
	})
	require.True(t, children[co.Code()])
	require.True(t, children[cell])
	require.True(t, children[arg])

	// After destruction there is nothing left to visit.
	co.DecRef()
	count := 0
	co.Traverse(func(child any) {
		count++
	})
	require.Equal(t, 0, count)
}
