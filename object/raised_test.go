package object

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStageClass(t *testing.T) {
	raised, err := Stage(TypeErrorClass)
	require.Nil(t, err)
	require.Equal(t, TypeErrorClass, raised.Class())
	require.Nil(t, raised.Exception().Value())
	require.Nil(t, raised.Traceback())
}

func TestStageClassWithPayload(t *testing.T) {
	raised, err := Stage(ValueErrorClass, NewString("bad input"))
	require.Nil(t, err)
	require.Equal(t, ValueErrorClass, raised.Class())
	require.Equal(t, "ValueError: bad input", raised.Error())
}

func TestStageInstance(t *testing.T) {
	exc := RuntimeErrorf("boom")
	raised, err := Stage(exc)
	require.Nil(t, err)
	require.Same(t, exc, raised.Exception())
	require.Equal(t, RuntimeErrorClass, raised.Class())
}

func TestStageInstanceWithSeparateValue(t *testing.T) {
	exc := RuntimeErrorf("boom")
	raised, err := Stage(exc, NewString("extra"))
	require.Nil(t, raised)
	require.EqualError(t, err, "TypeError: instance exception may not have a separate value")

	// Nil as the second component is allowed.
	raised, err = Stage(exc, Nil)
	require.Nil(t, err)
	require.Same(t, exc, raised.Exception())
}

func TestStageWithTraceback(t *testing.T) {
	tb := NewTraceback("frame_a", nil)
	raised, err := Stage(TypeErrorClass, Nil, tb)
	require.Nil(t, err)
	require.Same(t, tb, raised.Traceback())
	require.Same(t, tb, raised.Exception().Traceback())
}

func TestStageBadTraceback(t *testing.T) {
	raised, err := Stage(TypeErrorClass, Nil, NewString("not a traceback"))
	require.Nil(t, raised)
	require.EqualError(t, err, "TypeError: throw() third argument must be a traceback object")
}

func TestStageNonException(t *testing.T) {
	raised, err := Stage(NewInt(42))
	require.Nil(t, raised)
	require.EqualError(t, err,
		"TypeError: exceptions must be classes or instances deriving from BaseException, not int")
}

func TestStageArity(t *testing.T) {
	_, err := Stage()
	require.NotNil(t, err)
	_, err = Stage(TypeErrorClass, Nil, Nil, Nil)
	require.NotNil(t, err)
}

func TestReturnCarrier(t *testing.T) {
	r := NewReturn(NewInt(1))
	require.True(t, r.Returned())
	require.Equal(t, StopIterationClass, r.Class())
	require.Equal(t, int64(1), r.Exception().Value().(*Int).Value())

	// A raised StopIteration is not a return, even with the same class.
	raised := NewRaised(NewStopIteration(nil))
	require.False(t, raised.Returned())

	staged, err := Stage(StopIterationClass)
	require.Nil(t, err)
	require.False(t, staged.Returned())
}

func TestStageInstanceKeepsTraceback(t *testing.T) {
	exc := RuntimeErrorf("boom")
	orig := NewTraceback("origin", nil)
	exc.SetTraceback(orig)

	raised, err := Stage(exc)
	require.Nil(t, err)
	require.Same(t, orig, raised.Traceback())

	repl := NewTraceback("replacement", nil)
	raised, err = Stage(exc, Nil, repl)
	require.Nil(t, err)
	require.Same(t, repl, raised.Traceback())
	require.Same(t, repl, exc.Traceback())
}
