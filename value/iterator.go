package value

import "fmt"

// Iterator is a cursor over a ValueArray.  Dereferencing copies the
// current element into a cache owned by the iterator and returns a
// pointer to that cache, which the next dereference overwrites.
//
// Iterators are not safe for concurrent use.
type Iterator struct {
	arr   *ValueArray
	index int
	cache Value
}

// Begin returns an iterator at the first element.
func (a *ValueArray) Begin() *Iterator {
	return &Iterator{arr: a}
}

// End returns an iterator one past the last element.
func (a *ValueArray) End() *Iterator {
	return &Iterator{arr: a, index: a.Len()}
}

// Index of the element the iterator points at.
func (it *Iterator) Index() int { return it.index }

// Valid reports whether the iterator may be dereferenced.
func (it *Iterator) Valid() bool {
	return it.index >= 0 && it.index < it.arr.Len()
}

// Next advances the iterator by one element.
func (it *Iterator) Next() { it.index++ }

// Prev moves the iterator back by one element.
func (it *Iterator) Prev() { it.index-- }

// Advance moves the iterator by n elements, which may be negative.
func (it *Iterator) Advance(n int) { it.index += n }

// Deref materializes the current element.  The returned Value is valid
// until the next call to Deref or At on the same iterator.
func (it *Iterator) Deref() (*Value, error) {
	return it.At(0)
}

// At materializes the element offset positions away from the iterator,
// without moving it.
func (it *Iterator) At(offset int) (*Value, error) {
	v, err := it.arr.At(it.index + offset)
	if err != nil {
		return nil, err
	}

	it.cache.Unset()
	it.cache.slot = v.slot
	return &it.cache, nil
}

// Equal reports whether both iterators point at the same position of the
// same array.
func (it *Iterator) Equal(other *Iterator) bool {
	return it.arr == other.arr && it.index == other.index
}

// Less reports whether it precedes other.  Iterators over different
// arrays cannot be ordered.
func (it *Iterator) Less(other *Iterator) (bool, error) {
	if it.arr != other.arr {
		return false, ErrIncomparable
	}

	return it.index < other.index, nil
}

// Distance returns the number of elements from it to other.
func (it *Iterator) Distance(other *Iterator) (int, error) {
	if it.arr != other.arr {
		return 0, fmt.Errorf("distance: %w", ErrIncomparable)
	}

	return other.index - it.index, nil
}
