package structs_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wetware/gval/gtype"
	"github.com/wetware/gval/structs"
	"github.com/wetware/gval/value"
)

func TestFraction(t *testing.T) {
	t.Parallel()

	f, err := structs.NewFraction(2, -4)
	require.NoError(t, err)
	assert.Equal(t, structs.Fraction{Numerator: -1, Denominator: 2}, f)
	assert.Equal(t, "-1/2", f.String())
	assert.Equal(t, -0.5, f.Float64())

	_, err = structs.NewFraction(1, 0)
	assert.ErrorIs(t, err, structs.ErrZeroDenominator)

	_, err = structs.NewFraction(math.MinInt32, -1)
	assert.ErrorIs(t, err, structs.ErrOutOfRange)

	f, err = structs.ParseFraction(" 30000/1001 ")
	require.NoError(t, err)
	assert.Equal(t, structs.Fraction{Numerator: 30000, Denominator: 1001}, f)

	f, err = structs.ParseFraction("5")
	require.NoError(t, err)
	assert.Equal(t, structs.Fraction{Numerator: 5, Denominator: 1}, f)

	_, err = structs.ParseFraction("five")
	assert.ErrorIs(t, err, structs.ErrSyntax)

	half := structs.Fraction{Numerator: 1, Denominator: 2}
	third := structs.Fraction{Numerator: 1, Denominator: 3}
	assert.Equal(t, 1, half.Cmp(third))
	assert.Equal(t, -1, third.Cmp(half))
	assert.Zero(t, half.Cmp(structs.Fraction{Numerator: 2, Denominator: 4}))
}

func TestFractionFromFloat(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		in   float64
		want structs.Fraction
	}{
		{in: 0, want: structs.Fraction{Numerator: 0, Denominator: 1}},
		{in: 0.75, want: structs.Fraction{Numerator: 3, Denominator: 4}},
		{in: -2.5, want: structs.Fraction{Numerator: -5, Denominator: 2}},
		{in: 1.0 / 3, want: structs.Fraction{Numerator: 1, Denominator: 3}},
		{in: 42, want: structs.Fraction{Numerator: 42, Denominator: 1}},
	} {
		f, err := structs.FractionFromFloat(tt.in)
		require.NoError(t, err, "%v", tt.in)
		assert.Equal(t, tt.want, f, "%v", tt.in)
	}

	f, err := structs.FractionFromFloat(29.97)
	require.NoError(t, err)
	assert.InDelta(t, 29.97, f.Float64(), 1e-9)

	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := structs.FractionFromFloat(bad)
		assert.ErrorIs(t, err, structs.ErrNotFinite)
	}

	_, err = structs.FractionFromFloat(1e12)
	assert.ErrorIs(t, err, structs.ErrOutOfRange)
}

func TestFraction_value(t *testing.T) {
	t.Parallel()

	v, err := value.Create(structs.Fraction{Numerator: 2, Denominator: 4})
	require.NoError(t, err)
	assert.Equal(t, structs.FractionType, v.Type())
	assert.Equal(t, "Value(GstFraction, 1/2)", v.String())

	f, err := value.Get[structs.Fraction](v)
	require.NoError(t, err)
	assert.Equal(t, structs.Fraction{Numerator: 1, Denominator: 2}, f, "should be stored reduced")

	d, err := v.ToDouble()
	require.NoError(t, err)
	assert.Equal(t, 0.5, d)

	// invalid data is not stored
	err = value.Set(v, structs.Fraction{Numerator: 1})
	assert.ErrorIs(t, err, structs.ErrZeroDenominator)
	assert.Equal(t, "Value(GstFraction, 1/2)", v.String())

	require.NoError(t, value.Set(v, 0.75))
	f, err = value.Get[structs.Fraction](v)
	require.NoError(t, err)
	assert.Equal(t, structs.Fraction{Numerator: 3, Denominator: 4}, f)

	err = value.Set(v, math.NaN())
	assert.ErrorIs(t, err, value.ErrTransformationFailed)
	s, err := v.ToString()
	require.NoError(t, err)
	assert.Equal(t, "3/4", s, "rejected conversion should leave the value intact")

	require.NoError(t, value.Set(v, "5/10"))
	assert.Equal(t, "Value(GstFraction, 1/2)", v.String())

	require.NoError(t, value.Set(v, int32(3)))
	assert.Equal(t, "Value(GstFraction, 3/1)", v.String())

	require.NoError(t, value.Set(v, 7))
	assert.Equal(t, "Value(GstFraction, 7/1)", v.String())

	err = value.Set(v, "x/y")
	assert.ErrorIs(t, err, value.ErrTransformationFailed)
}

func TestFraction_unset(t *testing.T) {
	t.Parallel()

	v, err := value.New(structs.FractionType)
	require.NoError(t, err)

	f, err := value.Get[structs.Fraction](v)
	require.NoError(t, err)
	assert.Zero(t, f)

	_, err = v.ToDouble()
	assert.ErrorIs(t, err, value.ErrTransformationFailed, "unset fraction has no numeric value")

	s, err := v.ToString()
	require.NoError(t, err)
	assert.Empty(t, s)
}

func TestRanges(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name string
		good any
		bad  any
		typ  gtype.Type
		str  string
	}{
		{
			name: "IntRange",
			good: structs.IntRange{Start: 1, End: 5},
			bad:  structs.IntRange{Start: 5, End: 1},
			typ:  structs.IntRangeType,
			str:  "[1,5]",
		},
		{
			name: "Int64Range",
			good: structs.Int64Range{Start: -1 << 40, End: 1 << 40},
			bad:  structs.Int64Range{Start: 1, End: 0},
			typ:  structs.Int64RangeType,
			str:  "[-1099511627776,1099511627776]",
		},
		{
			name: "DoubleRange",
			good: structs.DoubleRange{Start: 0.5, End: 1.5},
			bad:  structs.DoubleRange{Start: math.NaN(), End: 1},
			typ:  structs.DoubleRangeType,
			str:  "[0.5,1.5]",
		},
		{
			name: "FractionRange",
			good: structs.FractionRange{
				Start: structs.Fraction{Numerator: 2, Denominator: 4},
				End:   structs.Fraction{Numerator: 30, Denominator: 1},
			},
			bad: structs.FractionRange{
				Start: structs.Fraction{Numerator: 2, Denominator: 1},
				End:   structs.Fraction{Numerator: 1, Denominator: 1},
			},
			typ: structs.FractionRangeType,
			str: "[1/2,30/1]",
		},
	} {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v, err := value.New(tt.typ)
			require.NoError(t, err)

			require.NoError(t, v.SetData(tt.typ, tt.good))
			s, err := v.ToString()
			require.NoError(t, err)
			assert.Equal(t, tt.str, s)

			err = v.SetData(tt.typ, tt.bad)
			assert.ErrorIs(t, err, structs.ErrInvalidRange)

			s, err = v.ToString()
			require.NoError(t, err)
			assert.Equal(t, tt.str, s, "invalid range should not be stored")

			assert.ErrorIs(t, v.SetData(tt.typ, "nope"), value.ErrIncompatibleType)
		})
	}
}

func TestRange_contains(t *testing.T) {
	t.Parallel()

	assert.True(t, structs.IntRange{Start: 1, End: 3}.Contains(3))
	assert.False(t, structs.Int64Range{Start: 1, End: 3}.Contains(4))
	assert.True(t, structs.DoubleRange{Start: 0, End: 1}.Contains(0.5))

	r := structs.FractionRange{
		Start: structs.Fraction{Numerator: 1, Denominator: 3},
		End:   structs.Fraction{Numerator: 1, Denominator: 2},
	}
	assert.True(t, r.Contains(structs.Fraction{Numerator: 2, Denominator: 5}))
	assert.False(t, r.Contains(structs.Fraction{Numerator: 3, Denominator: 5}))
}

func TestFourcc(t *testing.T) {
	t.Parallel()

	i420 := structs.MakeFourcc('I', '4', '2', '0')
	assert.Equal(t, "I420", i420.String())

	f, err := structs.ParseFourcc("I420")
	require.NoError(t, err)
	assert.Equal(t, i420, f)

	_, err = structs.ParseFourcc("I42")
	assert.ErrorIs(t, err, structs.ErrSyntax)

	v, err := value.Create(i420)
	require.NoError(t, err)
	assert.Equal(t, structs.FourccType, v.Type())
	assert.True(t, v.Holds(gtype.Uint))
	assert.Equal(t, "Value(GstFourcc, I420)", v.String())

	require.NoError(t, value.Set(v, "YUY2"))
	n, err := v.ToUint()
	require.NoError(t, err)
	assert.Equal(t, uint32(structs.MakeFourcc('Y', 'U', 'Y', '2')), n)

	got, err := value.Get[structs.Fourcc](v)
	require.NoError(t, err)
	assert.Equal(t, "YUY2", got.String())

	assert.ErrorIs(t, value.Set(v, "bad"), value.ErrTransformationFailed)
}

func TestStructs_array(t *testing.T) {
	t.Parallel()

	a := value.ArrayOf(
		value.MustCreate(structs.Fraction{Numerator: 1, Denominator: 2}),
		value.MustCreate(structs.IntRange{Start: 0, End: 10}),
		value.MustCreate(structs.MakeFourcc('R', 'G', 'B', 'A')),
	)

	assert.Equal(t, "[1/2 [0,10] RGBA]", a.String())

	v, err := a.At(0)
	require.NoError(t, err)
	f, err := value.Get[structs.Fraction](v)
	require.NoError(t, err)
	assert.Equal(t, 0.5, f.Float64())
}
