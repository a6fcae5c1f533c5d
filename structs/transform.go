package structs

import (
	"fmt"
	"math"

	"github.com/wetware/gval/gtype"
)

func registerTransforms() {
	must(FractionType, gtype.Double, func(dst, src *gtype.Slot) error {
		f, err := fractionOf(src)
		if err == nil {
			dst.SetDouble(f.Float64())
		}
		return err
	})

	must(FractionType, gtype.Float, func(dst, src *gtype.Slot) error {
		f, err := fractionOf(src)
		if err == nil {
			dst.SetFloat(float32(f.Float64()))
		}
		return err
	})

	must(gtype.Double, FractionType, func(dst, src *gtype.Slot) error {
		f, err := FractionFromFloat(src.Double())
		if err == nil {
			dst.SetBoxed(f)
		}
		return err
	})

	must(gtype.Int, FractionType, func(dst, src *gtype.Slot) error {
		dst.SetBoxed(Fraction{Numerator: src.Int(), Denominator: 1})
		return nil
	})

	must(gtype.Long, FractionType, func(dst, src *gtype.Slot) error {
		n := src.Long()
		if n < math.MinInt32 || n > math.MaxInt32 {
			return fmt.Errorf("%d: %w", n, ErrOutOfRange)
		}

		dst.SetBoxed(Fraction{Numerator: int32(n), Denominator: 1})
		return nil
	})

	must(gtype.String, FractionType, func(dst, src *gtype.Slot) error {
		f, err := ParseFraction(src.Str())
		if err == nil {
			dst.SetBoxed(f)
		}
		return err
	})

	must(gtype.String, FourccType, func(dst, src *gtype.Slot) error {
		f, err := ParseFourcc(src.Str())
		if err == nil {
			dst.SetUint(uint32(f))
		}
		return err
	})

	must(FourccType, gtype.String, func(dst, src *gtype.Slot) error {
		dst.SetString(Fourcc(src.Uint()).String())
		return nil
	})

	for _, t := range []gtype.Type{
		FractionType,
		IntRangeType,
		Int64RangeType,
		DoubleRangeType,
		FractionRangeType,
	} {
		must(t, gtype.String, boxedToString)
	}
}

func must(src, dst gtype.Type, fn gtype.TransformFunc) {
	if err := gtype.RegisterTransform(src, dst, fn); err != nil {
		panic(err)
	}
}

func fractionOf(s *gtype.Slot) (Fraction, error) {
	f, ok := s.Boxed().(Fraction)
	if !ok || f.Denominator == 0 {
		return Fraction{}, fmt.Errorf("%s: %w", s.Type(), ErrZeroDenominator)
	}

	return f, nil
}

// boxedToString renders a boxed datum with its String method.  Unset
// data render as the empty string.
func boxedToString(dst, src *gtype.Slot) error {
	if s, ok := src.Boxed().(fmt.Stringer); ok {
		dst.SetString(s.String())
	}

	return nil
}
