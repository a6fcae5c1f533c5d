// Package cmd contains helpers shared by the gval subcommands.
package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/wetware/gval/gtype"
	logutil "github.com/wetware/gval/internal/util/log"
	"github.com/wetware/gval/manifest"
	"github.com/wetware/gval/value"
)

// ManifestFlag names type manifests to register before a command runs.
func ManifestFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:    "manifest",
		Aliases: []string{"m"},
		Usage:   "register types declared in manifest `path`",
		EnvVars: []string{"GVAL_MANIFEST"},
	}
}

// RegisterManifests registers the types declared in each manifest passed
// through ManifestFlag.
func RegisterManifests() cli.BeforeFunc {
	return func(c *cli.Context) error {
		log := logutil.New(c)

		for _, path := range c.StringSlice("manifest") {
			m, err := manifest.LoadFile(path)
			if err != nil {
				return err
			}

			if _, err = m.Register(log.WithField("manifest", path)); err != nil {
				return errors.Wrap(err, path)
			}
		}

		return nil
	}
}

// LookupType resolves a registered type by name.
func LookupType(name string) (gtype.Type, error) {
	if t := gtype.FromName(name); t != gtype.Invalid {
		return t, nil
	}

	return gtype.Invalid, fmt.Errorf("unknown type %q", name)
}

// Parse a command-line literal into a new Value of type t.
//
// Types with a conversion from gchararray are parsed by that conversion.
// Otherwise the literal is read according to t's fundamental type;
// enumerations accept a nick, a name or a number, and flags accept
// members joined by '|'.
func Parse(t gtype.Type, lit string) (*value.Value, error) {
	v, err := value.New(t)
	if err != nil {
		return nil, err
	}

	if err = parse(v, lit); err != nil {
		v.Unset()
		return nil, errors.Wrapf(err, "parse %q as %s", lit, t)
	}

	return v, nil
}

func parse(v *value.Value, lit string) error {
	t := v.Type()

	if t != gtype.String && gtype.Transformable(gtype.String, t) {
		return v.SetData(gtype.String, lit)
	}

	switch t.Fundamental() {
	case gtype.String:
		return v.SetData(t, lit)

	case gtype.Boolean:
		b, err := strconv.ParseBool(lit)
		if err != nil {
			return err
		}
		return v.SetData(t, b)

	case gtype.Char:
		return parseInt(v, lit, 8)
	case gtype.Int:
		return parseInt(v, lit, 32)
	case gtype.Long, gtype.Int64:
		return parseInt(v, lit, 64)

	case gtype.Uchar:
		return parseUint(v, lit, 8)
	case gtype.Uint:
		return parseUint(v, lit, 32)
	case gtype.Ulong, gtype.Uint64:
		return parseUint(v, lit, 64)

	case gtype.Float:
		return parseFloat(v, lit, 32)
	case gtype.Double:
		return parseFloat(v, lit, 64)

	case gtype.Enum:
		return parseEnum(v, lit)
	case gtype.Flags:
		return parseFlags(v, lit)

	case gtype.GType:
		u, err := LookupType(lit)
		if err != nil {
			return err
		}
		return v.SetData(t, u)
	}

	return fmt.Errorf("no literal syntax for %s", t)
}

func parseInt(v *value.Value, lit string, bits int) error {
	n, err := strconv.ParseInt(lit, 0, bits)
	if err != nil {
		return err
	}

	return v.SetData(v.Type(), n)
}

func parseUint(v *value.Value, lit string, bits int) error {
	n, err := strconv.ParseUint(lit, 0, bits)
	if err != nil {
		return err
	}

	return v.SetData(v.Type(), n)
}

func parseFloat(v *value.Value, lit string, bits int) error {
	f, err := strconv.ParseFloat(lit, bits)
	if err != nil {
		return err
	}

	return v.SetData(v.Type(), f)
}

func parseEnum(v *value.Value, lit string) error {
	class, ok := gtype.EnumClassOf(v.Type())
	if !ok {
		return fmt.Errorf("%s has no enum class", v.Type())
	}

	if ev, ok := class.ByNick(lit); ok {
		return v.SetData(v.Type(), ev.Value)
	}

	if ev, ok := class.ByName(lit); ok {
		return v.SetData(v.Type(), ev.Value)
	}

	n, err := strconv.ParseInt(lit, 0, 32)
	if err != nil {
		return fmt.Errorf("no member %q", lit)
	}

	return v.SetData(v.Type(), int32(n))
}

func parseFlags(v *value.Value, lit string) error {
	class, ok := gtype.FlagsClassOf(v.Type())
	if !ok {
		return fmt.Errorf("%s has no flags class", v.Type())
	}

	var mask uint32
	for _, part := range strings.Split(lit, "|") {
		part = strings.TrimSpace(part)

		if fv, ok := class.ByNick(part); ok {
			mask |= fv.Value
			continue
		}

		if fv, ok := byName(class, part); ok {
			mask |= fv.Value
			continue
		}

		n, err := strconv.ParseUint(part, 0, 32)
		if err != nil {
			return fmt.Errorf("no member %q", part)
		}
		mask |= uint32(n)
	}

	return v.SetData(v.Type(), mask)
}

func byName(c *gtype.FlagsClass, name string) (gtype.FlagsValue, bool) {
	for _, fv := range c.Values {
		if fv.Name == name {
			return fv, true
		}
	}

	return gtype.FlagsValue{}, false
}
