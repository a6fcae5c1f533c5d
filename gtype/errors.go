package gtype

import "github.com/pkg/errors"

var (
	// ErrInvalidName is returned when registering a type without a name.
	ErrInvalidName = errors.New("invalid type name")

	// ErrDuplicateName is returned when a type name is already taken by
	// a type with a different parent.
	ErrDuplicateName = errors.New("duplicate type name")

	// ErrInvalidParent is returned when the requested parent type does
	// not exist or cannot be derived from in the requested manner.
	ErrInvalidParent = errors.New("invalid parent type")

	// ErrNotValueType is returned when initializing a Slot to a type
	// that cannot hold a datum.
	ErrNotValueType = errors.New("not a value type")

	// ErrNotTransformable is returned when no conversion is registered
	// between two types.
	ErrNotTransformable = errors.New("not transformable")

	// ErrTransformRejected is returned when a registered conversion
	// refuses its input.
	ErrTransformRejected = errors.New("transform rejected")

	// ErrIncompatible is returned when copying between slots whose types
	// do not share storage.
	ErrIncompatible = errors.New("incompatible types")
)

// SlotError is the panic value raised when a Slot accessor is called on a
// slot whose storage does not match.
type SlotError struct {
	Method string
	Type   Type
}

func (e *SlotError) Error() string {
	if e.Type == Invalid {
		return "gtype: call of Slot." + e.Method + " on uninitialized slot"
	}

	return "gtype: call of Slot." + e.Method + " on " + e.Type.String() + " slot"
}
