package value

import (
	"fmt"
	"strings"

	"github.com/wetware/gval/gtype"
)

// ValueArray is an ordered sequence of typed slots.  Elements are not
// stored as Values; each access materializes a fresh Value by copying the
// slot, so mutating a returned Value never affects the array, and later
// mutations of the array never affect Values returned earlier.
//
// An array without a backing store behaves as empty.  Append and Prepend
// allocate the store on demand; the other mutators return ErrUninitialized.
type ValueArray struct {
	arr  *gtype.SlotArray
	view bool // arr is owned by a Value
}

// NewArray returns an empty array with no backing store.
func NewArray() *ValueArray {
	return &ValueArray{}
}

// NewArrayCap returns an empty array whose store has room for n elements.
func NewArrayCap(n int) *ValueArray {
	return &ValueArray{arr: gtype.NewSlotArray(n)}
}

// WrapArray returns an array backed by sa.  The array takes ownership.
func WrapArray(sa *gtype.SlotArray) *ValueArray {
	return &ValueArray{arr: sa}
}

// ArrayOf returns an array holding copies of values, in order.
func ArrayOf(values ...*Value) *ValueArray {
	a := NewArrayCap(len(values))
	for _, v := range values {
		a.Append(v)
	}

	return a
}

// ArrayFromValue returns a view of the array held by v, which must hold a
// gtype.ValueArray datum.  The view shares its store with v; mutating one
// is visible through the other.  If v holds no array yet, an empty one is
// stored in v first.
func ArrayFromValue(v *Value) (*ValueArray, error) {
	if !v.IsValid() {
		return nil, ErrInvalidValue
	}

	if !v.Holds(gtype.ValueArray) {
		return nil, fmt.Errorf("%w: %s is not a value array", ErrIncompatibleType, v.Type())
	}

	sa, _ := v.slot.Boxed().(*gtype.SlotArray)
	if sa == nil {
		sa = gtype.NewSlotArray(0)
		v.slot.TakeBoxed(sa)
	}

	return &ValueArray{arr: sa, view: true}, nil
}

func (a *ValueArray) store() *gtype.SlotArray {
	if a == nil {
		return nil
	}

	return a.arr
}

// Native returns the backing store, or nil if none has been allocated.
func (a *ValueArray) Native() *gtype.SlotArray {
	return a.store()
}

// ToValue returns a gtype.ValueArray Value holding a copy of the array.
func (a *ValueArray) ToValue() *Value {
	v, err := New(gtype.ValueArray)
	if err != nil {
		panic(err)
	}

	sa := a.store()
	if sa == nil {
		sa = gtype.NewSlotArray(0)
	}

	v.slot.SetBoxed(sa)
	return v
}

// Len returns the number of elements.
func (a *ValueArray) Len() int {
	return a.store().Len()
}

// IsEmpty reports whether the array has no elements.
func (a *ValueArray) IsEmpty() bool {
	return a.Len() == 0
}

func (a *ValueArray) alloc() {
	if a.arr == nil {
		a.arr = gtype.NewSlotArray(1)
	}
}

func (a *ValueArray) slot(i int) (*gtype.Slot, error) {
	if a.store() == nil {
		return nil, ErrUninitialized
	}

	s := a.arr.Nth(i)
	if s == nil {
		return nil, fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, i, a.arr.Len())
	}

	return s, nil
}

// Append adds a copy of v at the end.  An empty v appends an empty slot.
func (a *ValueArray) Append(v *Value) {
	a.alloc()
	a.arr.Append(v.Native())
}

// Prepend adds a copy of v at the front.
func (a *ValueArray) Prepend(v *Value) {
	a.alloc()
	a.arr.Prepend(v.Native())
}

// Insert adds a copy of v at index i, which may equal Len.
func (a *ValueArray) Insert(i int, v *Value) error {
	if a.store() == nil {
		return ErrUninitialized
	}

	if !a.arr.Insert(i, v.Native()) {
		return fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, i, a.arr.Len())
	}

	return nil
}

// At returns a copy of the element at index i.
func (a *ValueArray) At(i int) (*Value, error) {
	s, err := a.slot(i)
	if err != nil {
		return nil, err
	}

	return FromNative(s), nil
}

// Value returns a copy of the element at index i, or an empty Value if i
// is out of range.
func (a *ValueArray) Value(i int) *Value {
	return a.ValueOr(i, new(Value))
}

// ValueOr returns a copy of the element at index i, or def if i is out
// of range.
func (a *ValueArray) ValueOr(i int, def *Value) *Value {
	if v, err := a.At(i); err == nil {
		return v
	}

	return def
}

// First returns a copy of the first element.
func (a *ValueArray) First() (*Value, error) {
	return a.At(0)
}

// Last returns a copy of the last element.
func (a *ValueArray) Last() (*Value, error) {
	return a.At(a.Len() - 1)
}

// Replace overwrites the element at index i with a copy of v.  The slot
// takes v's type.
func (a *ValueArray) Replace(i int, v *Value) error {
	s, err := a.slot(i)
	if err != nil {
		return err
	}

	if v.IsValid() {
		v.slot.CloneInto(s)
	} else {
		s.Unset()
	}

	return nil
}

// RemoveAt releases the element at index i and closes the gap.
func (a *ValueArray) RemoveAt(i int) error {
	if _, err := a.slot(i); err != nil {
		return err
	}

	a.arr.Remove(i)
	return nil
}

// PopFront removes the first element.
func (a *ValueArray) PopFront() error {
	return a.RemoveAt(0)
}

// PopBack removes the last element.
func (a *ValueArray) PopBack() error {
	return a.RemoveAt(a.Len() - 1)
}

// TakeAt removes the element at index i and returns it.  The datum is
// moved, not copied.
func (a *ValueArray) TakeAt(i int) (*Value, error) {
	s, err := a.slot(i)
	if err != nil {
		return nil, err
	}

	moved := s.Take()
	a.arr.Remove(i)

	v := new(Value)
	if moved.Type() != gtype.Invalid {
		v.slot = &moved
	}

	return v, nil
}

// TakeFirst removes and returns the first element.
func (a *ValueArray) TakeFirst() (*Value, error) {
	return a.TakeAt(0)
}

// TakeLast removes and returns the last element.
func (a *ValueArray) TakeLast() (*Value, error) {
	return a.TakeAt(a.Len() - 1)
}

// Swap exchanges the elements at indices i and j.
func (a *ValueArray) Swap(i, j int) error {
	si, err := a.slot(i)
	if err != nil {
		return err
	}

	sj, err := a.slot(j)
	if err != nil {
		return err
	}

	if i != j {
		tmp := si.Take()
		*si = sj.Take()
		*sj = tmp
	}

	return nil
}

// Clear releases every element and the backing store.  A view keeps the
// store, which belongs to its Value, and is left empty.
func (a *ValueArray) Clear() {
	if a.arr != nil {
		a.arr.Free()
		if !a.view {
			a.arr = nil
		}
	}
}

// ToSlice returns independent copies of every element, in order.
func (a *ValueArray) ToSlice() []*Value {
	vs := make([]*Value, a.Len())
	for i := range vs {
		vs[i] = FromNative(a.arr.Nth(i))
	}

	return vs
}

// String renders the elements as "[a b c]".
func (a *ValueArray) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < a.Len(); i++ {
		if i > 0 {
			b.WriteByte(' ')
		}

		b.WriteString(view(a.arr.Nth(i)).describe())
	}
	b.WriteByte(']')

	return b.String()
}

// view wraps s without copying it, for read-only use.
func view(s *gtype.Slot) *Value {
	if s == nil || s.Type() == gtype.Invalid {
		return new(Value)
	}

	return &Value{slot: s}
}
