package coroutine

import (
	"testing"

	"github.com/cloudcmds/coroutine/object"
	"github.com/stretchr/testify/require"
)

func TestCode(t *testing.T) {
	c := NewCode("f", "pkg.f", FlagStopIterationRemap)
	require.Equal(t, "f", c.Name())
	require.Equal(t, "pkg.f", c.Qualname())
	require.Equal(t, FlagStopIterationRemap, c.Flags())
	require.Equal(t, object.CODE, c.Type())

	name, ok := c.GetAttr("name")
	require.True(t, ok)
	require.Equal(t, "f", name.(*object.String).Value())
}

func TestCodeDefaultQualname(t *testing.T) {
	c := NewCode("f", "", 0)
	require.Equal(t, "f", c.Qualname())
}

func TestCodeSharedAcrossInstances(t *testing.T) {
	ts1, a := newTestCoroutine(t, 0, func(co *Coroutine, args []object.Object) error {
		return nil
	})
	_ = ts1
	b := New(a.ThreadState(), a.Code(), func(co *Coroutine, args []object.Object) error {
		return nil
	})
	defer b.DecRef()
	require.Same(t, a.Code(), b.Code())
}
