package value

import (
	"errors"
	"fmt"

	"github.com/wetware/gval/gtype"
)

// Value holds at most one datum of a dynamically chosen type.  The zero
// Value is empty.
//
// Values are used through pointers.  Assigning one *Value to another
// aliases it; use Copy or Assign to duplicate the datum.  Unset releases
// the datum through the type system, which matters for boxed and object
// data.
type Value struct {
	slot *gtype.Slot
}

// New returns a Value initialized to the zero datum of t.
func New(t gtype.Type) (*Value, error) {
	v := new(Value)
	if err := v.Init(t); err != nil {
		return nil, err
	}

	return v, nil
}

// FromNative returns a new Value holding a copy of s.
func FromNative(s *gtype.Slot) *Value {
	v := new(Value)
	if s != nil && s.Type() != gtype.Invalid {
		v.slot = new(gtype.Slot)
		s.CloneInto(v.slot)
	}

	return v
}

// Init releases any datum held by v and re-initializes it to the zero
// datum of t.
func (v *Value) Init(t gtype.Type) error {
	if !t.IsValueType() {
		return fmt.Errorf("%w: %s", ErrInvalidType, t)
	}

	slot := new(gtype.Slot)
	if err := slot.Init(t); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidType, err)
	}

	v.Unset()
	v.slot = slot
	return nil
}

// IsValid reports whether v holds a datum.
func (v *Value) IsValid() bool {
	return v != nil && v.slot != nil
}

// Type of the datum held by v, or gtype.Invalid if v is empty.
func (v *Value) Type() gtype.Type {
	if !v.IsValid() {
		return gtype.Invalid
	}

	return v.slot.Type()
}

// Holds reports whether v's type is t or derives from t.
func (v *Value) Holds(t gtype.Type) bool {
	return v.IsValid() && v.slot.Holds(t)
}

// Native returns the underlying slot, or nil for an empty Value.  Custom
// handlers use it to reach the typed accessors.
func (v *Value) Native() *gtype.Slot {
	if !v.IsValid() {
		return nil
	}

	return v.slot
}

// Reset restores the zero datum of v's type.
func (v *Value) Reset() {
	if v.IsValid() {
		v.slot.Reset()
	}
}

// Unset releases the datum.  v is empty afterwards.
func (v *Value) Unset() {
	if v.IsValid() {
		v.slot.Unset()
		v.slot = nil
	}
}

// Copy returns an independent Value holding a copy of v's datum.
func (v *Value) Copy() *Value {
	dup := new(Value)
	if v.IsValid() {
		dup.slot = new(gtype.Slot)
		v.slot.CloneInto(dup.slot)
	}

	return dup
}

// Assign replaces v's datum, and type, with a copy of other's.  Assigning
// an empty Value empties v.
func (v *Value) Assign(other *Value) {
	if v == other {
		return
	}

	v.Unset()
	if other.IsValid() {
		v.slot = new(gtype.Slot)
		other.slot.CloneInto(v.slot)
	}
}

// SetData stores data, a Go value of the type bound to t, in v.
//
// If t is compatible with v's type, the handler registered for t (or its
// nearest ancestor) stores the datum directly.  Otherwise the datum is
// stored in a temporary Value of type t and converted into v.
func (v *Value) SetData(t gtype.Type, data any) error {
	if !v.IsValid() {
		return ErrInvalidValue
	}

	if gtype.Compatible(t, v.Type()) {
		vt, err := DefaultRegistry().Lookup(t)
		if err != nil {
			return err
		}

		if vt.Set == nil {
			return fmt.Errorf("%w: %s has no setter", ErrUnregisteredType, t)
		}

		return vt.Set(v, data)
	}

	if t.IsValueType() && gtype.Transformable(t, v.Type()) {
		tmp, err := New(t)
		if err != nil {
			return err
		}
		defer tmp.Unset()

		if err = tmp.SetData(t, data); err != nil {
			return err
		}

		// convert into a scratch slot so that v survives a rejected datum
		var out gtype.Slot
		if err = out.Init(v.Type()); err != nil {
			return err
		}

		if err = transform(&out, tmp.slot); err != nil {
			return err
		}

		v.slot.Unset()
		*v.slot = out.Take()
		return nil
	}

	return fmt.Errorf("%w: cannot set %s data on %s value", ErrIncompatibleType, t, v.Type())
}

// GetData loads v's datum into out, which must point to a Go variable of
// the type bound to t.
func (v *Value) GetData(t gtype.Type, out any) error {
	if !v.IsValid() {
		return ErrInvalidValue
	}

	if gtype.Compatible(v.Type(), t) {
		vt, err := DefaultRegistry().Lookup(t)
		if err != nil {
			return err
		}

		if vt.Get == nil {
			return fmt.Errorf("%w: %s has no getter", ErrUnregisteredType, t)
		}

		return vt.Get(v, out)
	}

	if t.IsValueType() && gtype.Transformable(v.Type(), t) {
		tmp, err := New(t)
		if err != nil {
			return err
		}
		defer tmp.Unset()

		if err = transform(tmp.slot, v.slot); err != nil {
			return err
		}

		return tmp.GetData(t, out)
	}

	return fmt.Errorf("%w: cannot get %s data from %s value", ErrIncompatibleType, t, v.Type())
}

// CanTransformTo reports whether v holds a datum that can be converted to t.
func (v *Value) CanTransformTo(t gtype.Type) bool {
	return v.IsValid() && t.IsValueType() && gtype.Transformable(v.Type(), t)
}

// TransformTo returns a new Value of type t holding v's datum, converted.
// v is left unchanged.
func (v *Value) TransformTo(t gtype.Type) (*Value, error) {
	if !v.IsValid() {
		return nil, ErrInvalidValue
	}

	dst, err := New(t)
	if err != nil {
		return nil, err
	}

	if err = transform(dst.slot, v.slot); err != nil {
		dst.Unset()
		return nil, err
	}

	return dst, nil
}

func transform(dst, src *gtype.Slot) error {
	switch err := gtype.Transform(dst, src); {
	case err == nil:
		return nil

	case errors.Is(err, gtype.ErrTransformRejected):
		return fmt.Errorf("%w: %v", ErrTransformationFailed, err)

	default:
		return fmt.Errorf("%w: %v", ErrIncompatibleType, err)
	}
}

// Set stores data in v.  The type bound to T (see TypeOf) selects the
// handler.  Setting a *Value assigns it to v, type included.
func Set[T any](v *Value, data T) error {
	if other, ok := any(data).(*Value); ok {
		if v == nil {
			return ErrInvalidValue
		}

		v.Assign(other)
		return nil
	}

	t := TypeOf[T]()
	if t == gtype.Invalid {
		return fmt.Errorf("%w: no type bound to %s", ErrUnregisteredType, goType[T]())
	}

	return v.SetData(t, data)
}

// Get loads v's datum as a T.  Getting a *Value returns a copy of v.
func Get[T any](v *Value) (out T, err error) {
	if _, ok := any(out).(*Value); ok {
		if !v.IsValid() {
			return out, ErrInvalidValue
		}

		return any(v.Copy()).(T), nil
	}

	t := TypeOf[T]()
	if t == gtype.Invalid {
		return out, fmt.Errorf("%w: no type bound to %s", ErrUnregisteredType, goType[T]())
	}

	err = v.GetData(t, &out)
	return
}

// Create returns a new Value of the type bound to T, holding data.
func Create[T any](data T) (*Value, error) {
	if other, ok := any(data).(*Value); ok {
		return other.Copy(), nil
	}

	v := new(Value)
	if err := InitAs[T](v); err != nil {
		return nil, err
	}

	if err := Set(v, data); err != nil {
		v.Unset()
		return nil, err
	}

	return v, nil
}

// InitAs initializes v to the type bound to T.
func InitAs[T any](v *Value) error {
	t := TypeOf[T]()
	if t == gtype.Invalid {
		return fmt.Errorf("%w: no type bound to %s", ErrUnregisteredType, goType[T]())
	}

	return v.Init(t)
}

// MustCreate is like Create, but panics on error.  It simplifies
// initialization of package-level values and test fixtures.
func MustCreate[T any](data T) *Value {
	v, err := Create(data)
	if err != nil {
		panic(err)
	}

	return v
}
