package object

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCell(t *testing.T) {
	var target Object = NewInt(1)
	cell := NewCell(&target)
	require.Equal(t, CELL, cell.Type())
	require.Equal(t, target, cell.Value())

	cell.Set(NewInt(2))
	require.Equal(t, int64(2), target.(*Int).Value())
	require.Equal(t, int64(2), cell.Value().(*Int).Value())
}

func TestCellNilPointer(t *testing.T) {
	cell := NewCell(nil)
	require.Nil(t, cell.Value())
	require.Nil(t, cell.Interface())
	cell.Set(NewInt(1)) // no-op, must not panic
	require.Nil(t, cell.Value())
	require.Equal(t, "cell()", cell.String())
}

func TestCellEquals(t *testing.T) {
	var a Object = NewInt(1)
	c1 := NewCell(&a)
	c2 := NewCell(&a)
	require.True(t, c1.Equals(c1))
	require.False(t, c1.Equals(c2))
	require.False(t, c1.Equals(NewInt(1)))
}
