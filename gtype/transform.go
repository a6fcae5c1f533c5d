package gtype

import (
	"fmt"

	"github.com/pkg/errors"
)

// TransformFunc converts the datum in src into dst.  When it is called,
// dst holds the zero datum of its type.  A non-nil error rejects src.
type TransformFunc func(dst, src *Slot) error

// RegisterTransform installs fn as the conversion from src to dst,
// replacing any earlier registration for the same pair.  Conversions apply
// to descendants of src and dst as well, unless a more specific pair is
// registered.
func RegisterTransform(src, dst Type, fn TransformFunc) error {
	if fn == nil {
		return errors.New("nil transform func")
	}

	return db.putTransform(&transform{Src: src, Dst: dst, Func: fn})
}

// Transformable reports whether a datum of type src can be converted
// into a slot of type dst, either verbatim or through a registered
// conversion.
func Transformable(src, dst Type) bool {
	if !src.Valid() || !dst.Valid() {
		return false
	}

	return Compatible(src, dst) || db.transformFunc(src, dst) != nil
}

// TransformsFrom returns the destination types of the conversions
// registered directly on src.  Conversions inherited from ancestors are
// not included.
func TransformsFrom(src Type) []Type {
	return db.transformsFrom(src)
}

// Transform converts the datum held by src into dst, which keeps its
// type.  Compatible types are copied verbatim.
func Transform(dst, src *Slot) error {
	if Compatible(src.t, dst.t) {
		return Copy(dst, src)
	}

	fn := db.transformFunc(src.t, dst.t)
	if fn == nil {
		return errors.Wrapf(ErrNotTransformable, "%s -> %s", src.t, dst.t)
	}

	dst.Reset()
	if err := fn(dst, src); err != nil {
		dst.Reset()
		return errors.Wrapf(ErrTransformRejected, "%s -> %s: %v", src.t, dst.t, err)
	}

	return nil
}

var (
	integers = []Type{Char, Uchar, Int, Uint, Long, Ulong, Int64, Uint64}
	floats   = []Type{Float, Double}
)

func builtinTransforms() []*transform {
	var ts []*transform
	add := func(src, dst Type, fn TransformFunc) {
		ts = append(ts, &transform{Src: src, Dst: dst, Func: fn})
	}

	for _, src := range integers {
		for _, dst := range integers {
			add(src, dst, numberToNumber)
		}
		for _, dst := range floats {
			add(src, dst, numberToNumber)
		}
		add(src, Enum, numberToNumber)
		add(src, Flags, numberToNumber)
		add(src, Boolean, numberToBool)
		add(src, String, numberToString)
	}

	for _, src := range floats {
		for _, dst := range integers {
			add(src, dst, numberToNumber)
		}
		for _, dst := range floats {
			add(src, dst, numberToNumber)
		}
		add(src, String, numberToString)
	}

	for _, dst := range integers {
		add(Enum, dst, numberToNumber)
		add(Flags, dst, numberToNumber)
	}
	add(Enum, String, enumToString)
	add(Flags, Flags, numberToNumber)
	add(Flags, String, flagsToString)

	add(Boolean, String, boolToString)
	add(String, String, stringToString)

	return ts
}

type numKind uint8

const (
	signed numKind = iota
	unsigned
	float
)

// number is a widened numeric datum.
type number struct {
	kind numKind
	i    int64
	u    uint64
	f    float64
}

func (n number) isZero() bool {
	switch n.kind {
	case signed:
		return n.i == 0
	case unsigned:
		return n.u == 0
	}

	return n.f == 0
}

type numeric interface {
	~int8 | ~uint8 | ~int32 | ~uint32 | ~int64 | ~uint64 | ~float32 | ~float64
}

func conv[T numeric](n number) T {
	switch n.kind {
	case signed:
		return T(n.i)
	case unsigned:
		return T(n.u)
	}

	return T(n.f)
}

func (s *Slot) number() number {
	switch s.st {
	case stChar:
		return number{kind: signed, i: int64(int8(s.bits))}
	case stUchar:
		return number{kind: unsigned, u: uint64(uint8(s.bits))}
	case stInt, stEnum:
		return number{kind: signed, i: int64(int32(s.bits))}
	case stUint, stFlags:
		return number{kind: unsigned, u: uint64(uint32(s.bits))}
	case stLong, stInt64:
		return number{kind: signed, i: int64(s.bits)}
	case stUlong, stUint64:
		return number{kind: unsigned, u: s.bits}
	case stFloat:
		return number{kind: float, f: float64(s.Float())}
	case stDouble:
		return number{kind: float, f: s.Double()}
	}

	panic(&SlotError{Method: "number", Type: s.t})
}

func (s *Slot) setNumber(n number) {
	switch s.st {
	case stChar:
		s.bits = uint64(uint8(conv[int8](n)))
	case stUchar:
		s.bits = uint64(conv[uint8](n))
	case stInt, stEnum:
		s.bits = uint64(uint32(conv[int32](n)))
	case stUint, stFlags:
		s.bits = uint64(conv[uint32](n))
	case stLong, stInt64:
		s.bits = uint64(conv[int64](n))
	case stUlong, stUint64:
		s.bits = conv[uint64](n)
	case stFloat:
		s.SetFloat(conv[float32](n))
	case stDouble:
		s.SetDouble(conv[float64](n))
	default:
		panic(&SlotError{Method: "setNumber", Type: s.t})
	}
}

func numberToNumber(dst, src *Slot) error {
	dst.setNumber(src.number())
	return nil
}

func numberToBool(dst, src *Slot) error {
	dst.SetBoolean(!src.number().isZero())
	return nil
}

func numberToString(dst, src *Slot) error {
	switch n := src.number(); n.kind {
	case signed:
		dst.ptr = fmt.Sprintf("%d", n.i)
	case unsigned:
		dst.ptr = fmt.Sprintf("%d", n.u)
	default:
		dst.ptr = fmt.Sprintf("%f", n.f)
	}

	return nil
}

func enumToString(dst, src *Slot) error {
	v := src.Enum()
	if c, ok := EnumClassOf(src.t); ok {
		if ev, ok := c.ByValue(v); ok {
			dst.ptr = ev.Name
			return nil
		}
	}

	dst.ptr = fmt.Sprintf("%d", v)
	return nil
}

func flagsToString(dst, src *Slot) error {
	v := src.Flags()
	if c, ok := FlagsClassOf(src.t); ok {
		dst.ptr = c.Format(v)
		return nil
	}

	dst.ptr = fmt.Sprintf("0x%x", v)
	return nil
}

func boolToString(dst, src *Slot) error {
	if src.Boolean() {
		dst.ptr = "TRUE"
	} else {
		dst.ptr = "FALSE"
	}

	return nil
}

func stringToString(dst, src *Slot) error {
	dst.ptr = src.ptr
	return nil
}
