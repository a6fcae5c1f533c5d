/*
Package value provides a dynamically-typed value container.

A Value holds one datum whose type is chosen at run time from the types
known to package gtype.  Go code reads and writes the datum through the
generic Get and Set functions, which resolve the Go type to a type
identifier (see RegisterType) and dispatch to the handler pair registered
for that identifier in the default Registry.  Handlers are found by
walking from a type to its ancestors, so a handler registered for a
fundamental type serves every type derived from it.

When the requested Go type does not match the Value's type, but the type
system knows a conversion between them, the datum is routed through a
temporary Value and converted:

	v, _ := value.New(gtype.Uint)
	_ = value.Set(v, -1)            // int -> glong -> guint
	n, _ := value.Get[int32](v)     // guint -> gint, n == -1
	s, _ := value.Get[string](v)    // "4294967295"

ValueArray is a sequence of typed slots.  Its elements are materialized
on demand as fresh Values, so the array and the Values read from it never
alias one another.
*/
package value
