package gtype_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wetware/gval/gtype"
)

func newSlot(t *testing.T, typ gtype.Type) *gtype.Slot {
	t.Helper()

	s := new(gtype.Slot)
	require.NoError(t, s.Init(typ), "should initialize %s", typ)
	return s
}

func TestTransform_numeric(t *testing.T) {
	t.Parallel()

	t.Run("UintToInt", func(t *testing.T) {
		src, dst := newSlot(t, gtype.Uint), newSlot(t, gtype.Int)
		src.SetUint(math.MaxUint32)

		require.NoError(t, gtype.Transform(dst, src))
		assert.Equal(t, int32(-1), dst.Int())
	})

	t.Run("IntToUint64", func(t *testing.T) {
		src, dst := newSlot(t, gtype.Int), newSlot(t, gtype.Uint64)
		src.SetInt(-1)

		require.NoError(t, gtype.Transform(dst, src))
		assert.Equal(t, uint64(math.MaxUint64), dst.Uint64())
	})

	t.Run("DoubleToInt", func(t *testing.T) {
		src, dst := newSlot(t, gtype.Double), newSlot(t, gtype.Int)
		src.SetDouble(-3.75)

		require.NoError(t, gtype.Transform(dst, src))
		assert.Equal(t, int32(-3), dst.Int())
	})

	t.Run("CharToFloat", func(t *testing.T) {
		src, dst := newSlot(t, gtype.Char), newSlot(t, gtype.Float)
		src.SetChar(-8)

		require.NoError(t, gtype.Transform(dst, src))
		assert.Equal(t, float32(-8), dst.Float())
	})

	t.Run("IntToBoolean", func(t *testing.T) {
		src, dst := newSlot(t, gtype.Int), newSlot(t, gtype.Boolean)
		src.SetInt(3)

		require.NoError(t, gtype.Transform(dst, src))
		assert.True(t, dst.Boolean())
	})
}

func TestTransform_string(t *testing.T) {
	t.Parallel()

	str := newSlot(t, gtype.String)

	i := newSlot(t, gtype.Int)
	i.SetInt(-12)
	require.NoError(t, gtype.Transform(str, i))
	assert.Equal(t, "-12", str.Str())

	u := newSlot(t, gtype.Uint64)
	u.SetUint64(math.MaxUint64)
	require.NoError(t, gtype.Transform(str, u))
	assert.Equal(t, "18446744073709551615", str.Str())

	d := newSlot(t, gtype.Double)
	d.SetDouble(3.5)
	require.NoError(t, gtype.Transform(str, d))
	assert.Equal(t, "3.500000", str.Str())

	b := newSlot(t, gtype.Boolean)
	b.SetBoolean(true)
	require.NoError(t, gtype.Transform(str, b))
	assert.Equal(t, "TRUE", str.Str())

	s := newSlot(t, gtype.String)
	s.SetString("copy me")
	require.NoError(t, gtype.Transform(str, s))
	assert.Equal(t, "copy me", str.Str())
}

func TestTransform_enum(t *testing.T) {
	t.Parallel()

	dir, err := gtype.RegisterEnum("TestTransformDirection", []gtype.EnumValue{
		{Value: 0, Name: "PAD_UNKNOWN", Nick: "unknown"},
		{Value: 1, Name: "PAD_SRC", Nick: "src"},
		{Value: 2, Name: "PAD_SINK", Nick: "sink"},
	})
	require.NoError(t, err)

	e := newSlot(t, dir)

	// integer into enum, through the ancestor pair (Long, Enum)
	l := newSlot(t, gtype.Long)
	l.SetLong(1)
	require.NoError(t, gtype.Transform(e, l))
	assert.Equal(t, int32(1), e.Enum())

	i := newSlot(t, gtype.Int)
	require.NoError(t, gtype.Transform(i, e))
	assert.Equal(t, int32(1), i.Int())

	u := newSlot(t, gtype.Uint)
	require.NoError(t, gtype.Transform(u, e))
	assert.Equal(t, uint32(1), u.Uint())

	str := newSlot(t, gtype.String)
	require.NoError(t, gtype.Transform(str, e))
	assert.Equal(t, "PAD_SRC", str.Str())

	e.SetEnum(42)
	require.NoError(t, gtype.Transform(str, e))
	assert.Equal(t, "42", str.Str(), "unknown members render as numbers")
}

func TestTransform_flags(t *testing.T) {
	t.Parallel()

	ft, err := gtype.RegisterFlags("TestTransformFlags", []gtype.FlagsValue{
		{Value: 1, Name: "F_A", Nick: "a"},
		{Value: 2, Name: "F_B", Nick: "b"},
	})
	require.NoError(t, err)

	f := newSlot(t, ft)
	f.SetFlags(3)

	str := newSlot(t, gtype.String)
	require.NoError(t, gtype.Transform(str, f))
	assert.Equal(t, "F_A | F_B", str.Str())

	u := newSlot(t, gtype.Uint)
	require.NoError(t, gtype.Transform(u, f))
	assert.Equal(t, uint32(3), u.Uint())
}

func TestTransform_errors(t *testing.T) {
	t.Parallel()

	s := newSlot(t, gtype.String)
	s.SetString("12")

	i := newSlot(t, gtype.Int)
	i.SetInt(9)

	err := gtype.Transform(i, s)
	assert.ErrorIs(t, err, gtype.ErrNotTransformable)
	assert.Equal(t, int32(9), i.Int(), "failed lookup should not touch dst")

	strict, err := gtype.Register("TestTransformStrict", gtype.Int)
	require.NoError(t, err)

	errNegative := errors.New("negative")
	require.NoError(t, gtype.RegisterTransform(gtype.Double, strict, func(dst, src *gtype.Slot) error {
		v := src.Double()
		if v < 0 {
			return errNegative
		}

		dst.SetInt(int32(v))
		return nil
	}))

	d := newSlot(t, gtype.Double)
	d.SetDouble(-1)
	dst := newSlot(t, strict)

	err = gtype.Transform(dst, d)
	assert.ErrorIs(t, err, gtype.ErrTransformRejected)
	assert.Equal(t, int32(0), dst.Int())

	d.SetDouble(7.9)
	require.NoError(t, gtype.Transform(dst, d))
	assert.Equal(t, int32(7), dst.Int())

	assert.Error(t, gtype.RegisterTransform(gtype.Int, gtype.Type(1<<40), func(_, _ *gtype.Slot) error { return nil }))
	assert.Error(t, gtype.RegisterTransform(gtype.Int, gtype.Uint, nil))
}
