package gtype_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wetware/gval/gtype"
)

func TestSlot(t *testing.T) {
	t.Parallel()

	var s gtype.Slot
	assert.Equal(t, gtype.Invalid, s.Type())
	assert.False(t, s.Holds(gtype.Int))

	require.NoError(t, s.Init(gtype.Int))
	assert.Error(t, s.Init(gtype.Int), "slot is already initialized")
	assert.Equal(t, int32(0), s.Int(), "should hold the zero datum")

	s.SetInt(-42)
	assert.Equal(t, int32(-42), s.Int())
	assert.True(t, s.Holds(gtype.Int))

	assert.Panics(t, func() { s.Uint() }, "wrong storage should panic")
	assert.Panics(t, func() { s.SetDouble(1) }, "wrong storage should panic")

	s.Reset()
	assert.Equal(t, int32(0), s.Int())

	s.Unset()
	assert.Equal(t, gtype.Invalid, s.Type())
	assert.Panics(t, func() { s.Int() })

	err := s.Init(gtype.Enum)
	assert.ErrorIs(t, err, gtype.ErrNotValueType)
	err = s.Init(gtype.None)
	assert.ErrorIs(t, err, gtype.ErrNotValueType)
}

func TestSlot_scalars(t *testing.T) {
	t.Parallel()

	slot := func(typ gtype.Type) *gtype.Slot {
		s := new(gtype.Slot)
		require.NoError(t, s.Init(typ))
		return s
	}

	s := slot(gtype.Char)
	s.SetChar(-5)
	assert.Equal(t, int8(-5), s.Char())

	s = slot(gtype.Uchar)
	s.SetUchar(250)
	assert.Equal(t, uint8(250), s.Uchar())

	s = slot(gtype.Boolean)
	s.SetBoolean(true)
	assert.True(t, s.Boolean())

	s = slot(gtype.Long)
	s.SetLong(math.MinInt64)
	assert.Equal(t, int64(math.MinInt64), s.Long())

	s = slot(gtype.Ulong)
	s.SetUlong(math.MaxUint64)
	assert.Equal(t, uint64(math.MaxUint64), s.Ulong())

	s = slot(gtype.Float)
	s.SetFloat(1.5)
	assert.Equal(t, float32(1.5), s.Float())

	s = slot(gtype.Double)
	s.SetDouble(math.Pi)
	assert.Equal(t, math.Pi, s.Double())

	s = slot(gtype.String)
	assert.Equal(t, "", s.Str())
	s.SetString("hello")
	assert.Equal(t, "hello", s.Str())

	s = slot(gtype.GType)
	s.SetGType(gtype.Double)
	assert.Equal(t, gtype.Double, s.GType())

	s = slot(gtype.Pointer)
	assert.True(t, s.FitsPointer())
	assert.Zero(t, s.PeekPointer())
	p := new(int)
	s.SetPointer(p)
	assert.Equal(t, p, s.Pointer())
	assert.NotZero(t, s.PeekPointer())
}

func TestSlot_boxed(t *testing.T) {
	t.Parallel()

	type blob struct{ n int }

	var copies, frees int
	bt, err := gtype.RegisterBoxed("TestSlotBlob", gtype.BoxedFuncs{
		Copy: func(v any) any {
			copies++
			b := *v.(*blob)
			return &b
		},
		Free: func(any) { frees++ },
	})
	require.NoError(t, err)

	var s gtype.Slot
	require.NoError(t, s.Init(bt))
	assert.Nil(t, s.Boxed())

	orig := &blob{n: 1}
	s.SetBoxed(orig)
	assert.Equal(t, 1, copies)
	assert.NotSame(t, orig, s.Boxed(), "SetBoxed should store a copy")

	var dup gtype.Slot
	s.CloneInto(&dup)
	assert.Equal(t, 2, copies)
	assert.Equal(t, 1, dup.Boxed().(*blob).n)

	s.TakeBoxed(orig)
	assert.Equal(t, 1, frees, "previous datum should be released")
	assert.Same(t, orig, s.Boxed())

	s.Unset()
	dup.Unset()
	assert.Equal(t, 3, frees)

	_, err = gtype.RegisterBoxed("TestSlotNoCopy", gtype.BoxedFuncs{})
	assert.Error(t, err)
}

func TestSlot_builtinBoxed(t *testing.T) {
	t.Parallel()

	now := time.Date(2022, 6, 1, 12, 0, 0, 0, time.UTC)

	var dt, str gtype.Slot
	require.NoError(t, dt.Init(gtype.DateTime))
	require.NoError(t, str.Init(gtype.String))

	dt.SetBoxed(now)
	require.NoError(t, gtype.Transform(&str, &dt))
	assert.Equal(t, "2022-06-01T12:00:00Z", str.Str())

	var e gtype.Slot
	require.NoError(t, e.Init(gtype.ErrorType))
	e.SetBoxed(gtype.NewError("test", 3, "bad %s", "thing"))
	require.NoError(t, gtype.Transform(&str, &e))
	assert.Equal(t, "test(3): bad thing", str.Str())
	assert.True(t, e.Boxed().(*gtype.Error).Matches("test", 3))
}

type element struct {
	gtype.ObjectBase
	finalized bool
}

func TestSlot_object(t *testing.T) {
	t.Parallel()

	et, err := gtype.RegisterObject("TestSlotElement", gtype.Object)
	require.NoError(t, err)

	obj := &element{}
	obj.Init(et, func() { obj.finalized = true })

	var s gtype.Slot
	require.NoError(t, s.Init(et))
	assert.Nil(t, s.Object())

	require.NoError(t, s.SetObject(obj))
	assert.Equal(t, int32(2), obj.RefCount())

	var dup gtype.Slot
	require.NoError(t, dup.Init(gtype.Object))
	require.NoError(t, gtype.Copy(&dup, &s))
	assert.Equal(t, int32(3), obj.RefCount())

	s.Unset()
	dup.Unset()
	assert.Equal(t, int32(1), obj.RefCount())
	assert.False(t, obj.finalized)

	obj.Unref()
	assert.True(t, obj.finalized)

	var other gtype.Slot
	require.NoError(t, other.Init(et))
	plain := &element{}
	plain.Init(gtype.Object, nil)
	assert.ErrorIs(t, other.SetObject(plain), gtype.ErrIncompatible)
}

func TestCopy(t *testing.T) {
	t.Parallel()

	var a, b gtype.Slot
	require.NoError(t, a.Init(gtype.Int))
	require.NoError(t, b.Init(gtype.Uint))

	a.SetInt(7)
	assert.ErrorIs(t, gtype.Copy(&b, &a), gtype.ErrIncompatible)

	b.Unset()
	require.NoError(t, b.Init(gtype.Int))
	require.NoError(t, gtype.Copy(&b, &a))
	assert.Equal(t, int32(7), b.Int())

	var c gtype.Slot
	a.CloneInto(&c)
	assert.Equal(t, gtype.Int, c.Type())
	assert.Equal(t, int32(7), c.Int())

	moved := c.Take()
	assert.Equal(t, gtype.Invalid, c.Type())
	assert.Equal(t, int32(7), moved.Int())
}
