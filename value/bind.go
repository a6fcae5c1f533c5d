package value

import (
	"reflect"
	"sync"
	"time"
	"unsafe"

	"github.com/wetware/gval/gtype"
)

var (
	instanceType = reflect.TypeOf((*gtype.Instance)(nil)).Elem()
	errorType    = reflect.TypeOf((*error)(nil)).Elem()
)

var bindings = struct {
	sync.RWMutex
	m map[reflect.Type]gtype.Type
}{
	m: map[reflect.Type]gtype.Type{
		reflect.TypeOf(int8(0)):             gtype.Char,
		reflect.TypeOf(uint8(0)):            gtype.Uchar,
		reflect.TypeOf(false):               gtype.Boolean,
		reflect.TypeOf(int32(0)):            gtype.Int,
		reflect.TypeOf(uint32(0)):           gtype.Uint,
		reflect.TypeOf(int(0)):              gtype.Long,
		reflect.TypeOf(uint(0)):             gtype.Ulong,
		reflect.TypeOf(int64(0)):            gtype.Int64,
		reflect.TypeOf(uint64(0)):           gtype.Uint64,
		reflect.TypeOf(float32(0)):          gtype.Float,
		reflect.TypeOf(float64(0)):          gtype.Double,
		reflect.TypeOf(""):                  gtype.String,
		reflect.TypeOf([]byte(nil)):         gtype.String,
		reflect.TypeOf(unsafe.Pointer(nil)): gtype.Pointer,
		reflect.TypeOf(gtype.Invalid):       gtype.GType,
		reflect.TypeOf((*ValueArray)(nil)):  gtype.ValueArray,
		reflect.TypeOf(time.Time{}):         gtype.DateTime,
		reflect.TypeOf((*gtype.Error)(nil)): gtype.ErrorType,
		errorType:                           gtype.ErrorType,
		instanceType:                        gtype.Object,
	},
}

// RegisterType binds the Go type T to t, so that Get[T], Set[T] and
// Create[T] operate on values of type t.  Later bindings replace earlier
// ones.
func RegisterType[T any](t gtype.Type) {
	bindings.Lock()
	defer bindings.Unlock()

	bindings.m[goType[T]()] = t
}

// TypeOf returns the type bound to the Go type T, or gtype.Invalid.
//
// Types implementing gtype.Instance fall back to gtype.Object, and other
// types implementing error fall back to gtype.ErrorType.
func TypeOf[T any]() gtype.Type {
	return typeFor(goType[T]())
}

func goType[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func typeFor(rt reflect.Type) gtype.Type {
	bindings.RLock()
	t, ok := bindings.m[rt]
	bindings.RUnlock()

	switch {
	case ok:
		return t

	case rt.Implements(instanceType):
		return gtype.Object

	case rt.Implements(errorType):
		return gtype.ErrorType
	}

	return gtype.Invalid
}
