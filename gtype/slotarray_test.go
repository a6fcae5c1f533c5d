package gtype_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wetware/gval/gtype"
)

func TestSlotArray(t *testing.T) {
	t.Parallel()

	a := gtype.NewSlotArray(2)
	assert.Equal(t, 0, a.Len())
	assert.Nil(t, a.Nth(0))

	one := newSlot(t, gtype.Int)
	one.SetInt(1)
	two := newSlot(t, gtype.String)
	two.SetString("two")

	a.Append(one)
	a.Prepend(two)
	a.Append(nil)
	require.Equal(t, 3, a.Len())

	assert.Equal(t, "two", a.Nth(0).Str())
	assert.Equal(t, int32(1), a.Nth(1).Int())
	assert.Equal(t, gtype.Invalid, a.Nth(2).Type())

	// appended slots are copies
	one.SetInt(100)
	assert.Equal(t, int32(1), a.Nth(1).Int())

	assert.True(t, a.Insert(3, one))
	assert.False(t, a.Insert(5, one))
	assert.False(t, a.Insert(-1, one))
	assert.Equal(t, int32(100), a.Nth(3).Int())

	dup := a.Copy()
	assert.True(t, a.Remove(0))
	assert.False(t, a.Remove(10))
	assert.Equal(t, 3, a.Len())
	assert.Equal(t, int32(1), a.Nth(0).Int())
	assert.Equal(t, 4, dup.Len(), "copy should be independent")
	assert.Equal(t, "two", dup.Nth(0).Str())

	a.Free()
	assert.Equal(t, 0, a.Len())
}

func TestSlotArray_insertSelf(t *testing.T) {
	t.Parallel()

	a := gtype.NewSlotArray(8)
	for _, n := range []int32{1, 2, 3} {
		s := newSlot(t, gtype.Int)
		s.SetInt(n)
		a.Append(s)
	}

	// room to spare, so the insert shifts in place
	require.True(t, a.Insert(0, a.Nth(1)))
	require.True(t, a.Insert(a.Len(), a.Nth(0)))

	got := make([]int32, a.Len())
	for i := range got {
		got[i] = a.Nth(i).Int()
	}
	assert.Equal(t, []int32{2, 1, 2, 3, 2}, got)
}

func TestSlotArray_boxed(t *testing.T) {
	t.Parallel()

	inner := gtype.NewSlotArray(1)
	inner.Append(newSlot(t, gtype.Double))

	s := newSlot(t, gtype.ValueArray)
	s.SetBoxed(inner)

	held := s.Boxed().(*gtype.SlotArray)
	assert.NotSame(t, inner, held, "boxed arrays are deep-copied")
	assert.Equal(t, 1, held.Len())

	s.Unset()
	assert.Equal(t, 0, held.Len(), "free should empty the held array")
	assert.Equal(t, 1, inner.Len())
}
