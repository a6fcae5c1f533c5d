package gtype

import (
	"reflect"

	"github.com/pkg/errors"
	"go.uber.org/atomic"

	"github.com/wetware/gval/util/stm"
)

var db *table

func init() {
	db = newTable()
	registerBuiltinBoxed()
}

type table struct {
	types, transforms stm.TableRef
	sched             stm.Scheduler
	next              atomic.Uint64
}

var fundamentals = []struct {
	t        Type
	name     string
	st       storage
	abstract bool
}{
	{None, "void", stNone, false},
	{Interface, "GInterface", stObject, true},
	{Char, "gchar", stChar, false},
	{Uchar, "guchar", stUchar, false},
	{Boolean, "gboolean", stBool, false},
	{Int, "gint", stInt, false},
	{Uint, "guint", stUint, false},
	{Long, "glong", stLong, false},
	{Ulong, "gulong", stUlong, false},
	{Int64, "gint64", stInt64, false},
	{Uint64, "guint64", stUint64, false},
	{Enum, "GEnum", stEnum, true},
	{Flags, "GFlags", stFlags, true},
	{Float, "gfloat", stFloat, false},
	{Double, "gdouble", stDouble, false},
	{String, "gchararray", stString, false},
	{Pointer, "gpointer", stPointer, false},
	{Boxed, "GBoxed", stBoxed, true},
	{Object, "GObject", stObject, false},
	{GType, "GType", stGType, false},
}

func newTable() *table {
	var f stm.Factory
	t := &table{
		types:      f.Register("type", &typeSchema),
		transforms: f.Register("transform", &transformSchema),
	}
	t.next.Store(firstDerived - 1)

	sched, err := f.NewScheduler()
	if err != nil {
		panic(err)
	}
	t.sched = sched

	wx := t.sched.Txn(true)
	defer wx.Abort()

	for _, fd := range fundamentals {
		if err := wx.Insert(t.types, &record{
			ID:          uint64(fd.t),
			Name:        fd.name,
			Fundamental: uint64(fd.t),
			Depth:       1,
			Storage:     fd.st,
			Abstract:    fd.abstract,
		}); err != nil {
			panic(err)
		}
	}

	for _, tr := range builtinTransforms() {
		if err := wx.Insert(t.transforms, tr); err != nil {
			panic(err)
		}
	}

	wx.Commit()
	return t
}

func (t *table) lookup(id Type) *record {
	return t.get(t.sched.Txn(false), id)
}

func (t *table) get(txn stm.Txn, id Type) *record {
	if id == Invalid {
		return nil
	}

	if v, err := txn.First(t.types, "id", id); err == nil && v != nil {
		return v.(*record)
	}

	return nil
}

func (t *table) byName(name string) *record {
	return t.getByName(t.sched.Txn(false), name)
}

func (t *table) getByName(txn stm.Txn, name string) *record {
	if v, err := txn.First(t.types, "name", name); err == nil && v != nil {
		return v.(*record)
	}

	return nil
}

func (t *table) children(id Type) []Type {
	if id == Invalid {
		return nil
	}

	it, err := t.sched.Txn(false).Get(t.types, "parent", id)
	if err != nil {
		return nil
	}

	var ts []Type
	for v := it.Next(); v != nil; v = it.Next() {
		ts = append(ts, Type(v.(*record).ID))
	}

	return ts
}

func (t *table) all() []Type {
	it, err := t.sched.Txn(false).Get(t.types, "id")
	if err != nil {
		return nil
	}

	var ts []Type
	for v := it.Next(); v != nil; v = it.Next() {
		ts = append(ts, Type(v.(*record).ID))
	}

	return ts
}

// derive registers name as a child of parent.  Class data is inherited
// from the parent; mod may amend the new record before it is inserted.
// Registering an existing name under the same parent returns the existing
// type, provided mod yields the same enum, flags and interface data.  Boxed
// functions cannot be compared; the first registration's functions are kept.
func (t *table) derive(name string, parent Type, mod func(*record) error) (Type, error) {
	if name == "" {
		return Invalid, ErrInvalidName
	}

	wx := t.sched.Txn(true)
	defer wx.Abort()

	p := t.get(wx, parent)
	if p == nil {
		return Invalid, errors.Wrapf(ErrInvalidParent, "%s: parent %d not registered", name, parent)
	}

	if existing := t.getByName(wx, name); existing != nil {
		if Type(existing.Parent) == parent {
			if err := sameClass(existing, mod); err != nil {
				return Invalid, errors.Wrapf(ErrDuplicateName, "%s: %v", name, err)
			}

			return Type(existing.ID), nil
		}

		return Invalid, errors.Wrapf(ErrDuplicateName, "%s", name)
	}

	r := &record{
		ID:          t.next.Inc(),
		Name:        name,
		Parent:      uint64(parent),
		Fundamental: p.Fundamental,
		Depth:       p.Depth + 1,
		Storage:     p.Storage,
		Enum:        p.Enum,
		Flags:       p.Flags,
		Boxed:       p.Boxed,
	}

	if mod != nil {
		if err := mod(r); err != nil {
			return Invalid, errors.Wrap(err, name)
		}
	}

	if err := wx.Insert(t.types, r); err != nil {
		return Invalid, err
	}

	wx.Commit()
	return Type(r.ID), nil
}

func (t *table) putTransform(tr *transform) error {
	wx := t.sched.Txn(true)
	defer wx.Abort()

	if t.get(wx, tr.Src) == nil || t.get(wx, tr.Dst) == nil {
		return errors.Wrapf(ErrInvalidParent, "transform %d -> %d", tr.Src, tr.Dst)
	}

	if err := wx.Insert(t.transforms, tr); err != nil {
		return err
	}

	wx.Commit()
	return nil
}

// transformFunc walks the ancestors of src, and for each of them the
// ancestors of dst, returning the first registered conversion whose
// endpoints share storage with src and dst.
func (t *table) transformFunc(src, dst Type) TransformFunc {
	rx := t.sched.Txn(false)

	sr, dr := t.get(rx, src), t.get(rx, dst)
	if sr == nil || dr == nil {
		return nil
	}

	for s := sr; s != nil; s = t.get(rx, Type(s.Parent)) {
		if s.Storage != sr.Storage {
			continue
		}

		for d := dr; d != nil; d = t.get(rx, Type(d.Parent)) {
			if d.Storage != dr.Storage {
				continue
			}

			v, err := rx.First(t.transforms, "id", Type(s.ID), Type(d.ID))
			if err == nil && v != nil {
				return v.(*transform).Func
			}
		}
	}

	return nil
}

func (t *table) transformsFrom(src Type) []Type {
	it, err := t.sched.Txn(false).Get(t.transforms, "src", src)
	if err != nil {
		return nil
	}

	var ts []Type
	for v := it.Next(); v != nil; v = it.Next() {
		ts = append(ts, v.(*transform).Dst)
	}

	return ts
}

// sameClass applies mod to a copy of an existing record and reports
// whether the class data it produces differs from the stored data.
func sameClass(existing *record, mod func(*record) error) error {
	if mod == nil {
		return nil
	}

	r := *existing
	r.Ifaces = nil
	if err := mod(&r); err != nil {
		return err
	}

	switch {
	case !reflect.DeepEqual(r.Enum, existing.Enum):
		return errors.New("enum values differ")
	case !reflect.DeepEqual(r.Flags, existing.Flags):
		return errors.New("flags values differ")
	case !reflect.DeepEqual(r.Ifaces, existing.Ifaces):
		return errors.New("interfaces differ")
	}

	return nil
}
