package gtype

import (
	"fmt"

	"github.com/pkg/errors"
)

// Type identifies a semantic type.  The zero value is Invalid.
type Type uint64

// Fundamental types.  Their identifiers are fixed; derived types are
// assigned identifiers starting at firstDerived.
const (
	Invalid Type = iota
	None
	Interface
	Char
	Uchar
	Boolean
	Int
	Uint
	Long
	Ulong
	Int64
	Uint64
	Enum
	Flags
	Float
	Double
	String
	Pointer
	Boxed
	Object
	GType

	lastFundamental = GType
	firstDerived    = 256
)

// storage kind shared by a fundamental type and all of its descendants
type storage uint8

const (
	stNone storage = iota
	stChar
	stUchar
	stBool
	stInt
	stUint
	stLong
	stUlong
	stInt64
	stUint64
	stEnum
	stFlags
	stFloat
	stDouble
	stString
	stPointer
	stBoxed
	stObject
	stGType
)

var storageNames = [...]string{
	stNone:    "none",
	stChar:    "char",
	stUchar:   "uchar",
	stBool:    "boolean",
	stInt:     "int",
	stUint:    "uint",
	stLong:    "long",
	stUlong:   "ulong",
	stInt64:   "int64",
	stUint64:  "uint64",
	stEnum:    "enum",
	stFlags:   "flags",
	stFloat:   "float",
	stDouble:  "double",
	stString:  "string",
	stPointer: "pointer",
	stBoxed:   "boxed",
	stObject:  "object",
	stGType:   "gtype",
}

func (st storage) String() string {
	if int(st) < len(storageNames) {
		return storageNames[st]
	}

	return fmt.Sprintf("storage(%d)", st)
}

// String returns the type name, or a numeric placeholder for unknown ids.
func (t Type) String() string {
	if name := t.Name(); name != "" {
		return name
	}

	return fmt.Sprintf("<type %d>", uint64(t))
}

// Name of the type.  Returns the empty string for Invalid and for
// identifiers that were never registered.
func (t Type) Name() string {
	if r := db.lookup(t); r != nil {
		return r.Name
	}

	return ""
}

// Valid reports whether t names a registered type.
func (t Type) Valid() bool {
	return t != Invalid && db.lookup(t) != nil
}

// Parent returns the type t derives from, or Invalid for fundamentals.
func (t Type) Parent() Type {
	if r := db.lookup(t); r != nil {
		return Type(r.Parent)
	}

	return Invalid
}

// Fundamental returns the root of t's derivation chain.
func (t Type) Fundamental() Type {
	if r := db.lookup(t); r != nil {
		return Type(r.Fundamental)
	}

	return Invalid
}

// IsFundamental reports whether t is one of the fixed root types.
func (t Type) IsFundamental() bool {
	return t != Invalid && t <= lastFundamental
}

// IsDerived reports whether t has a parent.
func (t Type) IsDerived() bool {
	return t.Parent() != Invalid
}

// Depth is the number of types in t's derivation chain, counting t.
// Fundamentals have depth 1; Invalid has depth 0.
func (t Type) Depth() int {
	if r := db.lookup(t); r != nil {
		return r.Depth
	}

	return 0
}

// IsA reports whether t is other, derives from other, or (for object
// types) implements the interface other.
func (t Type) IsA(other Type) bool {
	if t == Invalid || other == Invalid {
		return false
	}

	if t == other {
		return true
	}

	rx := db.sched.Txn(false)
	for r := db.get(rx, t); r != nil; r = db.get(rx, Type(r.Parent)) {
		if Type(r.ID) == other {
			return true
		}

		for _, iface := range r.Ifaces {
			if iface == other {
				return true
			}
		}
	}

	return false
}

// IsValueType reports whether a Slot can be initialized to t.  Abstract
// fundamentals such as Enum and Boxed are not value types, although their
// concrete descendants are.
func (t Type) IsValueType() bool {
	r := db.lookup(t)
	return r != nil && r.Storage != stNone && !r.Abstract
}

// IsAbstract reports whether t is a value-abstract placeholder type.
func (t Type) IsAbstract() bool {
	r := db.lookup(t)
	return r != nil && r.Abstract
}

// Interfaces returns the interface types declared by t itself, not
// including those of its ancestors.
func (t Type) Interfaces() []Type {
	if r := db.lookup(t); r != nil && len(r.Ifaces) != 0 {
		return append([]Type(nil), r.Ifaces...)
	}

	return nil
}

// Children returns the types that derive directly from t.
func (t Type) Children() []Type {
	return db.children(t)
}

// FromName returns the type registered under name, or Invalid.
func FromName(name string) Type {
	if r := db.byName(name); r != nil {
		return Type(r.ID)
	}

	return Invalid
}

// Types returns every registered type, ordered by identifier.
func Types() []Type {
	return db.all()
}

// Compatible reports whether a datum of type src can be copied verbatim
// into a slot of type dst.
func Compatible(src, dst Type) bool {
	return src.IsA(dst) && storageOf(src) == storageOf(dst)
}

func storageOf(t Type) storage {
	if r := db.lookup(t); r != nil {
		return r.Storage
	}

	return stNone
}

// Register derives a plain type from parent.  Enumerations, flags, boxed
// types and interfaces have dedicated registration functions and cannot
// be derived from their abstract fundamentals here.
func Register(name string, parent Type) (Type, error) {
	switch parent {
	case None, Interface, Enum, Flags, Boxed:
		return Invalid, errors.Wrapf(ErrInvalidParent, "%s: cannot derive from %s", name, parent)
	}

	if parent.Fundamental() == Interface {
		return Invalid, errors.Wrapf(ErrInvalidParent, "%s: cannot derive from interface %s", name, parent)
	}

	return db.derive(name, parent, nil)
}
