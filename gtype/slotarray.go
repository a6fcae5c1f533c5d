package gtype

// SlotArray is a growable sequence of slots, each of which may hold a
// different type.  Slots are stored inline, so a pointer returned by Nth
// is invalidated by any operation that inserts into the array.
type SlotArray struct {
	slots []Slot
}

// NewSlotArray returns an empty array with room for n slots.
func NewSlotArray(n int) *SlotArray {
	return &SlotArray{slots: make([]Slot, 0, n)}
}

// Len returns the number of slots.
func (a *SlotArray) Len() int {
	if a == nil {
		return 0
	}

	return len(a.slots)
}

// Nth returns the slot at index i, or nil if i is out of range.
func (a *SlotArray) Nth(i int) *Slot {
	if i < 0 || i >= a.Len() {
		return nil
	}

	return &a.slots[i]
}

// Append adds a copy of src at the end.  A nil src appends an
// uninitialized slot.
func (a *SlotArray) Append(src *Slot) {
	a.Insert(len(a.slots), src)
}

// Prepend adds a copy of src at the front.
func (a *SlotArray) Prepend(src *Slot) {
	a.Insert(0, src)
}

// Insert adds a copy of src at index i, shifting later slots up.  It
// reports false if i is out of range.  src may be a slot of a itself.
func (a *SlotArray) Insert(i int, src *Slot) bool {
	if i < 0 || i > len(a.slots) {
		return false
	}

	// clone before shifting, which moves whatever src points into
	var dup Slot
	if src != nil {
		src.CloneInto(&dup)
	}

	a.slots = append(a.slots, Slot{})
	copy(a.slots[i+1:], a.slots[i:])
	a.slots[i] = dup.Take()

	return true
}

// Remove releases the slot at index i and closes the gap.  It reports
// false if i is out of range.
func (a *SlotArray) Remove(i int) bool {
	if i < 0 || i >= len(a.slots) {
		return false
	}

	a.slots[i].Unset()
	copy(a.slots[i:], a.slots[i+1:])
	a.slots[len(a.slots)-1] = Slot{}
	a.slots = a.slots[:len(a.slots)-1]
	return true
}

// Copy returns a deep copy of the array.
func (a *SlotArray) Copy() *SlotArray {
	dup := NewSlotArray(a.Len())
	dup.slots = dup.slots[:a.Len()]
	for i := range dup.slots {
		a.slots[i].CloneInto(&dup.slots[i])
	}

	return dup
}

// Free releases every slot.  The array is empty afterwards.
func (a *SlotArray) Free() {
	for i := range a.slots {
		a.slots[i].Unset()
	}

	a.slots = a.slots[:0]
}
