package gtype

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// EnumValue is a single named member of an enumeration.
type EnumValue struct {
	Value int32
	Name  string
	Nick  string
}

// EnumClass lists the members of an enumeration type.
type EnumClass struct {
	Type   Type
	Values []EnumValue
}

// ByValue returns the first member whose value is v.
func (c *EnumClass) ByValue(v int32) (EnumValue, bool) {
	for _, ev := range c.Values {
		if ev.Value == v {
			return ev, true
		}
	}

	return EnumValue{}, false
}

// ByName returns the member whose full name is name.
func (c *EnumClass) ByName(name string) (EnumValue, bool) {
	for _, ev := range c.Values {
		if ev.Name == name {
			return ev, true
		}
	}

	return EnumValue{}, false
}

// ByNick returns the member whose short name is nick.
func (c *EnumClass) ByNick(nick string) (EnumValue, bool) {
	for _, ev := range c.Values {
		if ev.Nick == nick {
			return ev, true
		}
	}

	return EnumValue{}, false
}

// FlagsValue is a single named bit (or bit combination) of a flags type.
type FlagsValue struct {
	Value uint32
	Name  string
	Nick  string
}

// FlagsClass lists the members of a flags type.
type FlagsClass struct {
	Type   Type
	Values []FlagsValue
}

// Mask is the union of all member values.
func (c *FlagsClass) Mask() (m uint32) {
	for _, fv := range c.Values {
		m |= fv.Value
	}

	return
}

// ByValue returns the member whose value is exactly v.
func (c *FlagsClass) ByValue(v uint32) (FlagsValue, bool) {
	for _, fv := range c.Values {
		if fv.Value == v {
			return fv, true
		}
	}

	return FlagsValue{}, false
}

// ByNick returns the member whose short name is nick.
func (c *FlagsClass) ByNick(nick string) (FlagsValue, bool) {
	for _, fv := range c.Values {
		if fv.Nick == nick {
			return fv, true
		}
	}

	return FlagsValue{}, false
}

// Format renders v as the names of its set members joined by " | ".
// Bits not covered by any member are rendered in hexadecimal.
func (c *FlagsClass) Format(v uint32) string {
	if v == 0 {
		if fv, ok := c.ByValue(0); ok {
			return fv.Name
		}

		return "0"
	}

	var parts []string
	rest := v
	for _, fv := range c.Values {
		if fv.Value != 0 && rest&fv.Value == fv.Value {
			parts = append(parts, fv.Name)
			rest &^= fv.Value
		}
	}

	if rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", rest))
	}

	return strings.Join(parts, " | ")
}

// RegisterEnum derives a new enumeration type from Enum.
func RegisterEnum(name string, values []EnumValue) (Type, error) {
	return db.derive(name, Enum, func(r *record) error {
		if len(values) == 0 {
			return errors.New("enum has no values")
		}

		r.Enum = &EnumClass{
			Type:   Type(r.ID),
			Values: append([]EnumValue(nil), values...),
		}
		return nil
	})
}

// RegisterFlags derives a new flags type from Flags.
func RegisterFlags(name string, values []FlagsValue) (Type, error) {
	return db.derive(name, Flags, func(r *record) error {
		if len(values) == 0 {
			return errors.New("flags has no values")
		}

		r.Flags = &FlagsClass{
			Type:   Type(r.ID),
			Values: append([]FlagsValue(nil), values...),
		}
		return nil
	})
}

// EnumClassOf returns the enumeration class of t, which must be a
// registered enumeration type or a descendant of one.
func EnumClassOf(t Type) (*EnumClass, bool) {
	if r := db.lookup(t); r != nil && r.Enum != nil {
		return r.Enum, true
	}

	return nil, false
}

// FlagsClassOf returns the flags class of t.
func FlagsClassOf(t Type) (*FlagsClass, bool) {
	if r := db.lookup(t); r != nil && r.Flags != nil {
		return r.Flags, true
	}

	return nil, false
}
