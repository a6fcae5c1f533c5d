package value

import "errors"

var (
	// ErrInvalidValue is returned by operations on an empty Value.
	ErrInvalidValue = errors.New("invalid value")

	// ErrInvalidType is returned when initializing a Value to a type that
	// cannot hold a datum.
	ErrInvalidType = errors.New("invalid type")

	// ErrUnregisteredType is returned when no handler is registered for a
	// type or any of its ancestors, or when a Go type is not bound to a
	// type identifier.
	ErrUnregisteredType = errors.New("unregistered type")

	// ErrIncompatibleType is returned when two types are neither
	// compatible nor transformable.
	ErrIncompatibleType = errors.New("incompatible type")

	// ErrTransformationFailed is returned when a conversion exists but
	// rejects the datum.
	ErrTransformationFailed = errors.New("transformation failed")

	// ErrUninitialized is returned by ValueArray operations that require
	// a backing store before one has been allocated.
	ErrUninitialized = errors.New("array not initialized")

	// ErrIndexOutOfRange is returned for indices outside the array.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrIncomparable is returned when ordering iterators over different
	// arrays.
	ErrIncomparable = errors.New("iterators over different arrays")
)
