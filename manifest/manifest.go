// Package manifest loads type declarations from YAML, registers them with
// package gtype, and generates the equivalent Go registration code.
package manifest

import (
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Kind of a declared type.
type Kind string

const (
	Enum      Kind = "enum"
	Flags     Kind = "flags"
	Object    Kind = "object"
	Interface Kind = "interface"
	Derived   Kind = "derived" // plain subtype of Parent
	Boxed     Kind = "boxed"   // stored by value, copied verbatim
)

// Manifest is a list of type declarations, in registration order.
type Manifest struct {
	Package string `yaml:"package"`
	Types   []Decl `yaml:"types"`
}

// Decl declares one type.
type Decl struct {
	Name string `yaml:"name"`
	Kind Kind   `yaml:"kind"`

	// GoName is the identifier used in generated code.  Defaults to
	// Name with non-identifier characters removed.
	GoName string `yaml:"go,omitempty"`

	// Parent names the parent of derived and object types.  Objects
	// default to GObject.
	Parent     string   `yaml:"parent,omitempty"`
	Interfaces []string `yaml:"interfaces,omitempty"`

	// Prefix is prepended to the upper-cased nick of members that do
	// not declare a name.
	Prefix string   `yaml:"prefix,omitempty"`
	Values []Member `yaml:"values,omitempty"`
}

// Member of an enum or flags type.
type Member struct {
	Nick  string `yaml:"nick"`
	Name  string `yaml:"name,omitempty"`
	Value int64  `yaml:"value"`
}

// Load decodes a manifest and validates it.
func Load(r io.Reader) (*Manifest, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		return nil, errors.Wrap(err, "decode manifest")
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return &m, nil
}

// LoadFile loads the manifest at path.
func LoadFile(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := Load(f)
	return m, errors.Wrap(err, path)
}

// Validate checks that names are unique, that every kind is known and
// that enum and flags members fit their storage.  Parents are resolved
// at registration time.
func (m *Manifest) Validate() error {
	seen := make(map[string]bool, len(m.Types))
	idents := make(map[string]bool, len(m.Types))

	for _, d := range m.Types {
		if d.Name == "" {
			return errors.New("type without name")
		}

		if seen[d.Name] {
			return errors.Errorf("%s: declared twice", d.Name)
		}
		seen[d.Name] = true

		if id := d.Ident(); id == "" {
			return errors.Errorf("%s: no valid Go identifier", d.Name)
		} else if idents[id] {
			return errors.Errorf("%s: Go identifier %s already in use", d.Name, id)
		} else {
			idents[id] = true
		}

		if err := d.validate(); err != nil {
			return errors.Wrap(err, d.Name)
		}
	}

	return nil
}

func (d Decl) validate() error {
	switch d.Kind {
	case Enum, Flags:
		if len(d.Values) == 0 {
			return errors.Errorf("%s has no values", d.Kind)
		}

		for _, v := range d.Values {
			if v.Nick == "" {
				return errors.Errorf("value %d has no nick", v.Value)
			}

			if d.Kind == Enum && (v.Value < -1<<31 || v.Value > 1<<31-1) {
				return errors.Errorf("%s: value %d overflows int32", v.Nick, v.Value)
			}

			if d.Kind == Flags && (v.Value < 0 || v.Value > 1<<32-1) {
				return errors.Errorf("%s: value %d overflows uint32", v.Nick, v.Value)
			}
		}

	case Derived:
		if d.Parent == "" {
			return errors.New("derived type requires a parent")
		}

	case Object, Interface, Boxed:

	default:
		return errors.Errorf("unknown kind %q", d.Kind)
	}

	if len(d.Interfaces) > 0 && d.Kind != Object {
		return errors.Errorf("%s cannot implement interfaces", d.Kind)
	}

	return nil
}

// Ident returns the Go identifier for the type.
func (d Decl) Ident() string {
	if d.GoName != "" {
		return d.GoName
	}

	return ident(d.Name)
}

// MemberName returns the declared name of v, or Prefix followed by the
// upper-cased nick.
func (d Decl) MemberName(v Member) string {
	if v.Name != "" {
		return v.Name
	}

	return d.Prefix + strings.ToUpper(strings.ReplaceAll(v.Nick, "-", "_"))
}

// ident drops the characters of s that may not appear in an exported Go
// identifier.
func ident(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r) && b.Len() > 0:
			b.WriteRune(r)
		}
	}

	out := []rune(b.String())
	if len(out) == 0 {
		return ""
	}

	out[0] = unicode.ToUpper(out[0])
	return string(out)
}

// camel turns a nick such as "no-preroll" into "NoPreroll".
func camel(nick string) string {
	parts := strings.FieldsFunc(nick, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	for i, p := range parts {
		rs := []rune(p)
		rs[0] = unicode.ToUpper(rs[0])
		parts[i] = string(rs)
	}

	return strings.Join(parts, "")
}
