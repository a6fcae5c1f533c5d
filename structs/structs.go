// Package structs provides small value types that are stored as boxed
// data: fractions, ranges and four-character codes.  Importing the
// package registers their types, their handlers in the default
// value.Registry and their conversions to and from the fundamental types.
package structs

import (
	"fmt"

	"github.com/wetware/gval/gtype"
	"github.com/wetware/gval/value"
)

var (
	FractionType      gtype.Type // Fraction
	IntRangeType      gtype.Type // IntRange
	Int64RangeType    gtype.Type // Int64Range
	DoubleRangeType   gtype.Type // DoubleRange
	FractionRangeType gtype.Type // FractionRange
	FourccType        gtype.Type // Fourcc, derived from gtype.Uint
)

func init() {
	FractionType = mustBoxed("GstFraction")
	IntRangeType = mustBoxed("GstIntRange")
	Int64RangeType = mustBoxed("GstInt64Range")
	DoubleRangeType = mustBoxed("GstDoubleRange")
	FractionRangeType = mustBoxed("GstFractionRange")

	var err error
	if FourccType, err = gtype.Register("GstFourcc", gtype.Uint); err != nil {
		panic(err)
	}

	reg := value.DefaultRegistry()
	reg.Register(FractionType, boxed(func(f Fraction) (Fraction, error) {
		return NewFraction(f.Numerator, f.Denominator)
	}))
	reg.Register(IntRangeType, boxed(validated(IntRange.validate)))
	reg.Register(Int64RangeType, boxed(validated(Int64Range.validate)))
	reg.Register(DoubleRangeType, boxed(validated(DoubleRange.validate)))
	reg.Register(FractionRangeType, boxed(func(r FractionRange) (FractionRange, error) {
		if err := r.validate(); err != nil {
			return r, err
		}

		start, _ := NewFraction(r.Start.Numerator, r.Start.Denominator)
		end, _ := NewFraction(r.End.Numerator, r.End.Denominator)
		return FractionRange{Start: start, End: end}, nil
	}))
	reg.Register(FourccType, value.VTable{
		Set: setFourcc,
		Get: getFourcc,
	})

	value.RegisterType[Fraction](FractionType)
	value.RegisterType[IntRange](IntRangeType)
	value.RegisterType[Int64Range](Int64RangeType)
	value.RegisterType[DoubleRange](DoubleRangeType)
	value.RegisterType[FractionRange](FractionRangeType)
	value.RegisterType[Fourcc](FourccType)

	registerTransforms()
}

func mustBoxed(name string) gtype.Type {
	t, err := gtype.RegisterBoxed(name, gtype.BoxedFuncs{
		Copy: func(v any) any { return v }, // plain values
	})
	if err != nil {
		panic(err)
	}

	return t
}

func validated[T any](validate func(T) error) func(T) (T, error) {
	return func(x T) (T, error) {
		return x, validate(x)
	}
}

// boxed returns handlers that store a T by value.  Incoming data is passed
// through normalize, and is not stored if normalize fails.
func boxed[T any](normalize func(T) (T, error)) value.VTable {
	return value.VTable{
		Set: func(v *value.Value, data any) error {
			var x T
			switch d := data.(type) {
			case T:
				x = d
			case *T:
				if d == nil {
					return fmt.Errorf("%w: nil %T", value.ErrIncompatibleType, data)
				}
				x = *d
			default:
				return fmt.Errorf("%w: cannot store %T as %T", value.ErrIncompatibleType, data, x)
			}

			x, err := normalize(x)
			if err != nil {
				return err
			}

			v.Native().SetBoxed(x)
			return nil
		},
		Get: func(v *value.Value, out any) error {
			p, ok := out.(*T)
			if !ok {
				return fmt.Errorf("%w: cannot load %s into %T", value.ErrIncompatibleType, v.Type(), out)
			}

			*p, _ = v.Native().Boxed().(T)
			return nil
		},
	}
}

func setFourcc(v *value.Value, data any) error {
	switch d := data.(type) {
	case Fourcc:
		v.Native().SetUint(uint32(d))
	case uint32:
		v.Native().SetUint(d)
	case string:
		f, err := ParseFourcc(d)
		if err != nil {
			return err
		}
		v.Native().SetUint(uint32(f))
	default:
		return fmt.Errorf("%w: cannot store %T as fourcc", value.ErrIncompatibleType, data)
	}

	return nil
}

func getFourcc(v *value.Value, out any) error {
	n := v.Native().Uint()

	switch p := out.(type) {
	case *Fourcc:
		*p = Fourcc(n)
	case *uint32:
		*p = n
	default:
		return fmt.Errorf("%w: cannot load fourcc into %T", value.ErrIncompatibleType, out)
	}

	return nil
}
