package structs

import (
	"fmt"
	"strconv"
)

// IntRange is a closed interval of 32-bit integers.
type IntRange struct {
	Start, End int32
}

func (r IntRange) validate() error {
	if r.Start > r.End {
		return fmt.Errorf("%s: %w", r, ErrInvalidRange)
	}
	return nil
}

// Contains reports whether n lies within the range.
func (r IntRange) Contains(n int32) bool {
	return r.Start <= n && n <= r.End
}

func (r IntRange) String() string {
	return fmt.Sprintf("[%d,%d]", r.Start, r.End)
}

// Int64Range is a closed interval of 64-bit integers.
type Int64Range struct {
	Start, End int64
}

func (r Int64Range) validate() error {
	if r.Start > r.End {
		return fmt.Errorf("%s: %w", r, ErrInvalidRange)
	}
	return nil
}

// Contains reports whether n lies within the range.
func (r Int64Range) Contains(n int64) bool {
	return r.Start <= n && n <= r.End
}

func (r Int64Range) String() string {
	return fmt.Sprintf("[%d,%d]", r.Start, r.End)
}

// DoubleRange is a closed interval of floating-point numbers.
type DoubleRange struct {
	Start, End float64
}

func (r DoubleRange) validate() error {
	if !(r.Start <= r.End) {
		return fmt.Errorf("%s: %w", r, ErrInvalidRange)
	}
	return nil
}

// Contains reports whether f lies within the range.
func (r DoubleRange) Contains(f float64) bool {
	return r.Start <= f && f <= r.End
}

func (r DoubleRange) String() string {
	return "[" + strconv.FormatFloat(r.Start, 'g', -1, 64) +
		"," + strconv.FormatFloat(r.End, 'g', -1, 64) + "]"
}

// FractionRange is a closed interval of fractions.
type FractionRange struct {
	Start, End Fraction
}

func (r FractionRange) validate() error {
	if r.Start.Denominator == 0 || r.End.Denominator == 0 {
		return fmt.Errorf("%s: %w", r, ErrZeroDenominator)
	}

	if r.Start.Cmp(r.End) > 0 {
		return fmt.Errorf("%s: %w", r, ErrInvalidRange)
	}

	return nil
}

// Contains reports whether f lies within the range.
func (r FractionRange) Contains(f Fraction) bool {
	return r.Start.Cmp(f) <= 0 && f.Cmp(r.End) <= 0
}

func (r FractionRange) String() string {
	return fmt.Sprintf("[%s,%s]", r.Start, r.End)
}
