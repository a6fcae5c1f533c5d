package gtype

import (
	"math"
	"reflect"

	"github.com/pkg/errors"
)

// Slot is native storage for one datum of a value type.  The zero Slot is
// uninitialized.  Scalars are held inline; strings, pointers, boxed data
// and object instances are held by reference.
//
// A Slot must not be copied by assignment once it holds boxed or object
// data; use Copy or CloneInto so that ownership is tracked.
type Slot struct {
	t    Type
	st   storage
	bits uint64
	ptr  any
}

// Init sets the slot's type and zero datum.  The slot must be
// uninitialized.
func (s *Slot) Init(t Type) error {
	if s.t != Invalid {
		return errors.Errorf("gtype: slot already holds %s", s.t)
	}

	r := db.lookup(t)
	if r == nil || r.Storage == stNone || r.Abstract {
		return errors.Wrapf(ErrNotValueType, "%s", t)
	}

	s.t, s.st = t, r.Storage
	return nil
}

// Type held by the slot, or Invalid if uninitialized.
func (s *Slot) Type() Type { return s.t }

// Holds reports whether the slot's type is t or a descendant of t.
func (s *Slot) Holds(t Type) bool { return s.t != Invalid && s.t.IsA(t) }

// Unset releases the datum and returns the slot to its uninitialized state.
func (s *Slot) Unset() {
	s.release()
	*s = Slot{}
}

// Reset releases the datum and restores the zero datum of the slot's type.
func (s *Slot) Reset() {
	s.release()
}

// Take moves the slot's contents into a new Slot, leaving s uninitialized.
func (s *Slot) Take() (out Slot) {
	out, *s = *s, Slot{}
	return
}

// CloneInto makes dst an independent copy of s, including its type.
func (s *Slot) CloneInto(dst *Slot) {
	if dst == s {
		return
	}

	dst.Unset()
	if s.t == Invalid {
		return
	}

	dst.t, dst.st = s.t, s.st
	dst.copyDatum(s)
}

// Copy duplicates the datum held by src into dst.  The types must be
// compatible; dst keeps its own type.
func Copy(dst, src *Slot) error {
	if !Compatible(src.t, dst.t) {
		return errors.Wrapf(ErrIncompatible, "%s -> %s", src.t, dst.t)
	}

	if dst != src {
		dst.release()
		dst.copyDatum(src)
	}

	return nil
}

func (s *Slot) copyDatum(src *Slot) {
	s.bits = src.bits

	switch src.st {
	case stBoxed:
		if src.ptr != nil {
			s.ptr = boxedCopy(src.t, src.ptr)
		}

	case stObject:
		if obj, ok := src.ptr.(Instance); ok {
			obj.Ref()
			s.ptr = obj
		}

	default:
		s.ptr = src.ptr
	}
}

func (s *Slot) release() {
	switch s.st {
	case stBoxed:
		if s.ptr != nil {
			if f, ok := BoxedFuncsOf(s.t); ok && f.Free != nil {
				f.Free(s.ptr)
			}
		}

	case stObject:
		if obj, ok := s.ptr.(Instance); ok {
			obj.Unref()
		}
	}

	s.bits, s.ptr = 0, nil
}

func boxedCopy(t Type, v any) any {
	if f, ok := BoxedFuncsOf(t); ok {
		return f.Copy(v)
	}

	return v
}

func (s *Slot) must(st storage, method string) {
	if s.t == Invalid || s.st != st {
		panic(&SlotError{Method: method, Type: s.t})
	}
}

// FitsPointer reports whether the datum is held by reference.
func (s *Slot) FitsPointer() bool {
	switch s.st {
	case stPointer, stBoxed, stObject:
		return s.t != Invalid
	}

	return false
}

// PeekPointer returns the address of a by-reference datum, or zero if the
// datum is nil or is not addressable.
func (s *Slot) PeekPointer() uintptr {
	if !s.FitsPointer() || s.ptr == nil {
		return 0
	}

	switch v := reflect.ValueOf(s.ptr); v.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Map,
		reflect.Chan, reflect.Func, reflect.Slice:
		return v.Pointer()
	}

	return 0
}

func (s *Slot) SetChar(v int8) {
	s.must(stChar, "SetChar")
	s.bits = uint64(uint8(v))
}

func (s *Slot) Char() int8 {
	s.must(stChar, "Char")
	return int8(s.bits)
}

func (s *Slot) SetUchar(v uint8) {
	s.must(stUchar, "SetUchar")
	s.bits = uint64(v)
}

func (s *Slot) Uchar() uint8 {
	s.must(stUchar, "Uchar")
	return uint8(s.bits)
}

func (s *Slot) SetBoolean(v bool) {
	s.must(stBool, "SetBoolean")
	s.bits = 0
	if v {
		s.bits = 1
	}
}

func (s *Slot) Boolean() bool {
	s.must(stBool, "Boolean")
	return s.bits != 0
}

func (s *Slot) SetInt(v int32) {
	s.must(stInt, "SetInt")
	s.bits = uint64(uint32(v))
}

func (s *Slot) Int() int32 {
	s.must(stInt, "Int")
	return int32(s.bits)
}

func (s *Slot) SetUint(v uint32) {
	s.must(stUint, "SetUint")
	s.bits = uint64(v)
}

func (s *Slot) Uint() uint32 {
	s.must(stUint, "Uint")
	return uint32(s.bits)
}

func (s *Slot) SetLong(v int64) {
	s.must(stLong, "SetLong")
	s.bits = uint64(v)
}

func (s *Slot) Long() int64 {
	s.must(stLong, "Long")
	return int64(s.bits)
}

func (s *Slot) SetUlong(v uint64) {
	s.must(stUlong, "SetUlong")
	s.bits = v
}

func (s *Slot) Ulong() uint64 {
	s.must(stUlong, "Ulong")
	return s.bits
}

func (s *Slot) SetInt64(v int64) {
	s.must(stInt64, "SetInt64")
	s.bits = uint64(v)
}

func (s *Slot) Int64() int64 {
	s.must(stInt64, "Int64")
	return int64(s.bits)
}

func (s *Slot) SetUint64(v uint64) {
	s.must(stUint64, "SetUint64")
	s.bits = v
}

func (s *Slot) Uint64() uint64 {
	s.must(stUint64, "Uint64")
	return s.bits
}

func (s *Slot) SetEnum(v int32) {
	s.must(stEnum, "SetEnum")
	s.bits = uint64(uint32(v))
}

func (s *Slot) Enum() int32 {
	s.must(stEnum, "Enum")
	return int32(s.bits)
}

func (s *Slot) SetFlags(v uint32) {
	s.must(stFlags, "SetFlags")
	s.bits = uint64(v)
}

func (s *Slot) Flags() uint32 {
	s.must(stFlags, "Flags")
	return uint32(s.bits)
}

func (s *Slot) SetFloat(v float32) {
	s.must(stFloat, "SetFloat")
	s.bits = uint64(math.Float32bits(v))
}

func (s *Slot) Float() float32 {
	s.must(stFloat, "Float")
	return math.Float32frombits(uint32(s.bits))
}

func (s *Slot) SetDouble(v float64) {
	s.must(stDouble, "SetDouble")
	s.bits = math.Float64bits(v)
}

func (s *Slot) Double() float64 {
	s.must(stDouble, "Double")
	return math.Float64frombits(s.bits)
}

func (s *Slot) SetString(v string) {
	s.must(stString, "SetString")
	s.ptr = v
}

// Str returns the stored string.  It is not named String so that a Slot
// does not satisfy fmt.Stringer.
func (s *Slot) Str() string {
	s.must(stString, "Str")
	v, _ := s.ptr.(string)
	return v
}

func (s *Slot) SetGType(v Type) {
	s.must(stGType, "SetGType")
	s.bits = uint64(v)
}

func (s *Slot) GType() Type {
	s.must(stGType, "GType")
	return Type(s.bits)
}

// SetPointer stores an untyped reference.  The slot does not own it.
func (s *Slot) SetPointer(p any) {
	s.must(stPointer, "SetPointer")
	s.ptr = p
}

func (s *Slot) Pointer() any {
	s.must(stPointer, "Pointer")
	return s.ptr
}

// SetBoxed stores a copy of v, made with the type's copy function.
func (s *Slot) SetBoxed(v any) {
	s.must(stBoxed, "SetBoxed")

	var dup any
	if v != nil {
		dup = boxedCopy(s.t, v)
	}

	s.release()
	s.ptr = dup
}

// TakeBoxed stores v without copying it.  The slot assumes ownership.
func (s *Slot) TakeBoxed(v any) {
	s.must(stBoxed, "TakeBoxed")
	s.release()
	s.ptr = v
}

// Boxed returns the stored datum.  It remains owned by the slot.
func (s *Slot) Boxed() any {
	s.must(stBoxed, "Boxed")
	return s.ptr
}

// DupBoxed returns a copy of the stored datum, owned by the caller.
func (s *Slot) DupBoxed() any {
	s.must(stBoxed, "DupBoxed")
	if s.ptr == nil {
		return nil
	}

	return boxedCopy(s.t, s.ptr)
}

// SetObject stores a new reference to obj, whose type must be the slot's
// type or a descendant of it.  A nil obj clears the slot.
func (s *Slot) SetObject(obj Instance) error {
	s.must(stObject, "SetObject")

	if obj != nil {
		if !obj.TypeOf().IsA(s.t) {
			return errors.Wrapf(ErrIncompatible, "%s -> %s", obj.TypeOf(), s.t)
		}

		obj.Ref()
	}

	s.release()
	if obj != nil {
		s.ptr = obj
	}

	return nil
}

// Object returns the stored instance without taking a reference.
func (s *Slot) Object() Instance {
	s.must(stObject, "Object")
	obj, _ := s.ptr.(Instance)
	return obj
}
