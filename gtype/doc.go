/*
Package gtype is a minimal native type system for dynamically-typed values.

It assigns every semantic type a stable identifier (Type), records the
derivation relation between types, and owns the storage rules for each
fundamental type: how a Slot is initialized to its default datum, copied,
and released.  It also maintains the table of transformations that convert
the datum held by one Slot into a datum of another type.

Type facts are kept in an in-memory database (see util/stm).  Reads run
against lock-free snapshots, and registrations are serialized write
transactions, so a concurrent reader never observes a half-registered type.

Package gtype does not know how Go values map onto types; that binding,
together with type-checked access, lives in package value.
*/
package gtype
