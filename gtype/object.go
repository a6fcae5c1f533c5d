package gtype

import (
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/atomic"
)

// Instance is a reference-counted object whose type derives from Object.
type Instance interface {
	TypeOf() Type
	Ref()
	Unref()
}

// ObjectBase implements Instance.  Embed it in a struct and call Init
// before handing the object out.
type ObjectBase struct {
	typ      Type
	refs     atomic.Int32
	finalize func()
}

// Init sets the instance type and takes the initial reference.  The
// finalizer, if any, runs when the last reference is dropped.
func (o *ObjectBase) Init(t Type, finalize func()) {
	o.typ = t
	o.finalize = finalize
	o.refs.Store(1)
}

func (o *ObjectBase) TypeOf() Type { return o.typ }

// RefCount returns the current number of references.
func (o *ObjectBase) RefCount() int32 { return o.refs.Load() }

func (o *ObjectBase) Ref() {
	if o.refs.Inc() <= 1 {
		panic(fmt.Sprintf("gtype: ref of finalized %s instance", o.typ))
	}
}

func (o *ObjectBase) Unref() {
	switch n := o.refs.Dec(); {
	case n == 0:
		if o.finalize != nil {
			o.finalize()
		}

	case n < 0:
		panic(fmt.Sprintf("gtype: unref of finalized %s instance", o.typ))
	}
}

// RegisterObject derives an object type from parent, which must be Object
// or a descendant of it.  The new type implements each of ifaces.
func RegisterObject(name string, parent Type, ifaces ...Type) (Type, error) {
	if parent.Fundamental() != Object {
		return Invalid, errors.Wrapf(ErrInvalidParent, "%s: %s is not an object type", name, parent)
	}

	for _, iface := range ifaces {
		if iface == Interface || iface.Fundamental() != Interface {
			return Invalid, errors.Wrapf(ErrInvalidParent, "%s: %s is not an interface", name, iface)
		}
	}

	return db.derive(name, parent, func(r *record) error {
		r.Ifaces = append([]Type(nil), ifaces...)
		return nil
	})
}

// RegisterInterface derives a new interface type.  Slots of an interface
// type hold object instances that implement it.
func RegisterInterface(name string) (Type, error) {
	return db.derive(name, Interface, nil)
}
