package manifest

import (
	"github.com/lthibault/log"
	"github.com/pkg/errors"

	"github.com/wetware/gval/gtype"
)

// Register registers every declared type, in order, and returns their
// identifiers.  Parents and interfaces may refer to types declared
// earlier in the manifest or registered beforehand.
//
// Registration stops at the first failure; types registered up to that
// point remain registered.
func (m *Manifest) Register(log log.Logger) ([]gtype.Type, error) {
	ts := make([]gtype.Type, 0, len(m.Types))

	for _, d := range m.Types {
		t, err := d.register()
		if err != nil {
			return ts, errors.Wrap(err, d.Name)
		}

		log.WithFields(map[string]interface{}{
			"type":   d.Name,
			"kind":   d.Kind,
			"id":     uint64(t),
			"parent": t.Parent().Name(),
		}).Debug("registered type")

		ts = append(ts, t)
	}

	return ts, nil
}

func (d Decl) register() (gtype.Type, error) {
	switch d.Kind {
	case Enum:
		vs := make([]gtype.EnumValue, len(d.Values))
		for i, v := range d.Values {
			vs[i] = gtype.EnumValue{
				Value: int32(v.Value),
				Name:  d.MemberName(v),
				Nick:  v.Nick,
			}
		}

		return gtype.RegisterEnum(d.Name, vs)

	case Flags:
		vs := make([]gtype.FlagsValue, len(d.Values))
		for i, v := range d.Values {
			vs[i] = gtype.FlagsValue{
				Value: uint32(v.Value),
				Name:  d.MemberName(v),
				Nick:  v.Nick,
			}
		}

		return gtype.RegisterFlags(d.Name, vs)

	case Object:
		parent := gtype.Object
		if d.Parent != "" {
			var err error
			if parent, err = resolve(d.Parent); err != nil {
				return gtype.Invalid, err
			}
		}

		ifaces := make([]gtype.Type, len(d.Interfaces))
		for i, name := range d.Interfaces {
			var err error
			if ifaces[i], err = resolve(name); err != nil {
				return gtype.Invalid, err
			}
		}

		return gtype.RegisterObject(d.Name, parent, ifaces...)

	case Interface:
		return gtype.RegisterInterface(d.Name)

	case Derived:
		parent, err := resolve(d.Parent)
		if err != nil {
			return gtype.Invalid, err
		}

		return gtype.Register(d.Name, parent)

	case Boxed:
		return gtype.RegisterBoxed(d.Name, gtype.BoxedFuncs{
			Copy: func(v any) any { return v },
		})
	}

	return gtype.Invalid, errors.Errorf("unknown kind %q", d.Kind)
}

func resolve(name string) (gtype.Type, error) {
	if t := gtype.FromName(name); t != gtype.Invalid {
		return t, nil
	}

	return gtype.Invalid, errors.Errorf("unknown type %q", name)
}
