package gtype

import (
	"encoding/binary"
	"fmt"
	"reflect"

	"github.com/hashicorp/go-memdb"
)

// record is the stored description of a registered type.  Records are
// immutable once inserted; updates insert a modified copy.
type record struct {
	ID          uint64
	Name        string
	Parent      uint64
	Fundamental uint64
	Depth       int
	Storage     storage
	Abstract    bool
	Ifaces      []Type

	Enum  *EnumClass
	Flags *FlagsClass
	Boxed *BoxedFuncs
}

// transform is a stored conversion between a pair of types.
type transform struct {
	Src, Dst Type
	Func     TransformFunc
}

var typeSchema = memdb.TableSchema{
	Indexes: map[string]*memdb.IndexSchema{
		"id": {
			Name:    "id",
			Unique:  true,
			Indexer: idIndexer{},
		},
		"name": {
			Name:    "name",
			Unique:  true,
			Indexer: nameIndexer{},
		},
		"parent": {
			Name:    "parent",
			Indexer: parentIndexer{},
		},
	},
}

var transformSchema = memdb.TableSchema{
	Indexes: map[string]*memdb.IndexSchema{
		"id": {
			Name:    "id",
			Unique:  true,
			Indexer: pairIndexer{},
		},
		"src": {
			Name:    "src",
			Indexer: srcIndexer{},
		},
	},
}

type idIndexer struct{}

func (idIndexer) FromObject(obj any) (bool, []byte, error) {
	if r, ok := obj.(*record); ok {
		return true, typeToBytes(Type(r.ID)), nil
	}

	return false, nil, errType(obj)
}

func (idIndexer) FromArgs(args ...any) ([]byte, error) {
	t, err := argsToType(args...)
	if err != nil {
		return nil, err
	}

	return typeToBytes(t), nil
}

type nameIndexer struct{}

func (nameIndexer) FromObject(obj any) (bool, []byte, error) {
	if r, ok := obj.(*record); ok {
		return true, nameToBytes(r.Name, true), nil
	}

	return false, nil, errType(obj)
}

func (nameIndexer) FromArgs(args ...any) ([]byte, error) {
	return argsToName(true, args...)
}

func (nameIndexer) PrefixFromArgs(args ...any) ([]byte, error) {
	return argsToName(false, args...)
}

type parentIndexer struct{}

func (parentIndexer) FromObject(obj any) (bool, []byte, error) {
	if r, ok := obj.(*record); ok {
		return true, typeToBytes(Type(r.Parent)), nil
	}

	return false, nil, errType(obj)
}

func (parentIndexer) FromArgs(args ...any) ([]byte, error) {
	return idIndexer{}.FromArgs(args...)
}

type pairIndexer struct{}

func (pairIndexer) FromObject(obj any) (bool, []byte, error) {
	if t, ok := obj.(*transform); ok {
		return true, pairToBytes(t.Src, t.Dst), nil
	}

	return false, nil, errType(obj)
}

func (pairIndexer) FromArgs(args ...any) ([]byte, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("expected two arguments (got %d)", len(args))
	}

	src, err := argsToType(args[0])
	if err != nil {
		return nil, err
	}

	dst, err := argsToType(args[1])
	if err != nil {
		return nil, err
	}

	return pairToBytes(src, dst), nil
}

type srcIndexer struct{}

func (srcIndexer) FromObject(obj any) (bool, []byte, error) {
	if t, ok := obj.(*transform); ok {
		return true, typeToBytes(t.Src), nil
	}

	return false, nil, errType(obj)
}

func (srcIndexer) FromArgs(args ...any) ([]byte, error) {
	return idIndexer{}.FromArgs(args...)
}

func typeToBytes(t Type) []byte {
	buf := make([]byte, 8)

	// big-endian; keeps radix tree iteration in id order
	binary.BigEndian.PutUint64(buf, uint64(t))

	return buf
}

func pairToBytes(src, dst Type) []byte {
	buf := make([]byte, 16)
	binary.BigEndian.PutUint64(buf, uint64(src))
	binary.BigEndian.PutUint64(buf[8:], uint64(dst))
	return buf
}

// nameToBytes null-terminates exact keys, so that a lookup of "Foo" does
// not match "FooBar" by prefix.
func nameToBytes(name string, exact bool) []byte {
	if !exact {
		return []byte(name)
	}

	buf := make([]byte, len(name)+1)
	copy(buf, name)
	return buf
}

func argsToType(args ...any) (Type, error) {
	if len(args) != 1 {
		return Invalid, errNArgs(args)
	}

	switch arg := args[0].(type) {
	case Type:
		return arg, nil

	case uint64:
		return Type(arg), nil

	case *record:
		return Type(arg.ID), nil
	}

	return Invalid, errType(args[0])
}

func argsToName(exact bool, args ...any) ([]byte, error) {
	if len(args) != 1 {
		return nil, errNArgs(args)
	}

	switch arg := args[0].(type) {
	case string:
		return nameToBytes(arg, exact), nil

	case *record:
		return nameToBytes(arg.Name, exact), nil
	}

	return nil, errType(args[0])
}

func errType(v any) error {
	return fmt.Errorf("invalid type: %s", reflect.TypeOf(v))
}

func errNArgs(args []any) error {
	return fmt.Errorf("expected one argument (got %d)", len(args))
}
