package structs

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrZeroDenominator = errors.New("zero denominator")
	ErrNotFinite       = errors.New("not a finite number")
	ErrOutOfRange      = errors.New("out of range")
	ErrInvalidRange    = errors.New("range start exceeds end")
	ErrSyntax          = errors.New("invalid syntax")
)

// maxTerms bounds the continued-fraction expansion in FractionFromFloat.
const maxTerms = 30

// Fraction is a rational number.  Fractions built through NewFraction are
// reduced, and carry the sign on the numerator.
type Fraction struct {
	Numerator   int32
	Denominator int32
}

// NewFraction returns num/den in lowest terms.
func NewFraction(num, den int32) (Fraction, error) {
	if den == 0 {
		return Fraction{}, fmt.Errorf("%d/%d: %w", num, den, ErrZeroDenominator)
	}

	n, d := int64(num), int64(den)
	if d < 0 {
		n, d = -n, -d
	}

	if g := gcd(n, d); g > 1 {
		n, d = n/g, d/g
	}

	// -MinInt32/-1 does not fit
	if n > math.MaxInt32 || d > math.MaxInt32 {
		return Fraction{}, fmt.Errorf("%d/%d: %w", num, den, ErrOutOfRange)
	}

	return Fraction{Numerator: int32(n), Denominator: int32(d)}, nil
}

// ParseFraction parses "n/d" or a bare integer.
func ParseFraction(s string) (Fraction, error) {
	num, den, found := strings.Cut(strings.TrimSpace(s), "/")
	if !found {
		den = "1"
	}

	n, err := strconv.ParseInt(strings.TrimSpace(num), 10, 32)
	if err != nil {
		return Fraction{}, fmt.Errorf("%q: %w", s, ErrSyntax)
	}

	d, err := strconv.ParseInt(strings.TrimSpace(den), 10, 32)
	if err != nil {
		return Fraction{}, fmt.Errorf("%q: %w", s, ErrSyntax)
	}

	return NewFraction(int32(n), int32(d))
}

// FractionFromFloat approximates f by continued fractions, stopping when
// the approximation is exact to within 1e-10 or the next convergent would
// not fit in 32 bits.
func FractionFromFloat(f float64) (Fraction, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Fraction{}, fmt.Errorf("%v: %w", f, ErrNotFinite)
	}

	if math.Abs(f) > math.MaxInt32 {
		return Fraction{}, fmt.Errorf("%v: %w", f, ErrOutOfRange)
	}

	neg := f < 0
	if neg {
		f = -f
	}

	// convergents h(i-2)/k(i-2) and h(i-1)/k(i-1)
	n0, d0, n1, d1 := int64(0), int64(1), int64(1), int64(0)
	x := f
	for i := 0; i < maxTerms; i++ {
		a := math.Floor(x)
		n2 := int64(a)*n1 + n0
		d2 := int64(a)*d1 + d0
		if n2 > math.MaxInt32 || d2 > math.MaxInt32 {
			break
		}

		n0, d0, n1, d1 = n1, d1, n2, d2

		frac := x - a
		if frac < 1e-10 || math.Abs(float64(n1)/float64(d1)-f) < 1e-10 {
			break
		}

		x = 1 / frac
	}

	if neg {
		n1 = -n1
	}

	return NewFraction(int32(n1), int32(d1))
}

// Float64 returns the value of the fraction.
func (f Fraction) Float64() float64 {
	return float64(f.Numerator) / float64(f.Denominator)
}

// Cmp returns -1, 0 or +1 depending on whether f is less than, equal to or
// greater than g.  Both must have positive denominators.
func (f Fraction) Cmp(g Fraction) int {
	l := int64(f.Numerator) * int64(g.Denominator)
	r := int64(g.Numerator) * int64(f.Denominator)

	switch {
	case l < r:
		return -1
	case l > r:
		return 1
	}

	return 0
}

func (f Fraction) String() string {
	return fmt.Sprintf("%d/%d", f.Numerator, f.Denominator)
}

func gcd(a, b int64) int64 {
	if a < 0 {
		a = -a
	}

	for b != 0 {
		a, b = b, a%b
	}

	return a
}
