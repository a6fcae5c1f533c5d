package value

import (
	"fmt"
)

// String renders v for debugging, as "Value(<type>, <datum>)".
func (v *Value) String() string {
	if !v.IsValid() {
		return "Value(<invalid>)"
	}

	return fmt.Sprintf("Value(%s, %s)", v.Type().Name(), v.describe())
}

// describe renders the datum alone.  It tries, in order, reading the
// datum as a string, converting it to a string, and the address of a
// by-reference datum.
func (v *Value) describe() string {
	if !v.IsValid() {
		return "<invalid>"
	}

	if s, err := Get[string](v); err == nil {
		return s
	}

	if v.slot.FitsPointer() {
		return fmt.Sprintf("0x%016x", v.slot.PeekPointer())
	}

	return "<unknown value>"
}
