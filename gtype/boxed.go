package gtype

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// BoxedFuncs describe how to duplicate and release an opaque datum.
// Copy is mandatory.  Free may be nil if the datum needs no cleanup.
type BoxedFuncs struct {
	Copy func(any) any
	Free func(any)
}

// Builtin boxed types.  Valid after package initialization.
var (
	ValueArray Type // *SlotArray
	DateTime   Type // time.Time
	ErrorType  Type // *Error
)

// RegisterBoxed derives a new boxed type from Boxed.
func RegisterBoxed(name string, funcs BoxedFuncs) (Type, error) {
	if funcs.Copy == nil {
		return Invalid, errors.Errorf("%s: boxed type requires a copy function", name)
	}

	return db.derive(name, Boxed, func(r *record) error {
		r.Boxed = &funcs
		return nil
	})
}

// BoxedFuncsOf returns the copy and free functions of a boxed type.
func BoxedFuncsOf(t Type) (BoxedFuncs, bool) {
	if r := db.lookup(t); r != nil && r.Boxed != nil {
		return *r.Boxed, true
	}

	return BoxedFuncs{}, false
}

// Error is a domain-qualified error datum, stored by ErrorType.
type Error struct {
	Domain  string
	Code    int
	Message string
}

// NewError formats a message and wraps it in an Error.
func NewError(domain string, code int, format string, args ...any) *Error {
	return &Error{
		Domain:  domain,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s(%d): %s", e.Domain, e.Code, e.Message)
}

// Matches reports whether e belongs to domain and carries code.
func (e *Error) Matches(domain string, code int) bool {
	return e != nil && e.Domain == domain && e.Code == code
}

func registerBuiltinBoxed() {
	ValueArray = mustBoxed("GValueArray", BoxedFuncs{
		Copy: func(v any) any { return v.(*SlotArray).Copy() },
		Free: func(v any) { v.(*SlotArray).Free() },
	})

	DateTime = mustBoxed("GDateTime", BoxedFuncs{
		Copy: func(v any) any { return v.(time.Time) },
	})

	ErrorType = mustBoxed("GError", BoxedFuncs{
		Copy: func(v any) any {
			e := *v.(*Error)
			return &e
		},
	})

	mustTransform(DateTime, String, func(dst, src *Slot) error {
		if t, ok := src.ptr.(time.Time); ok {
			dst.ptr = t.Format(time.RFC3339Nano)
		}
		return nil
	})

	mustTransform(ErrorType, String, func(dst, src *Slot) error {
		if e, ok := src.ptr.(*Error); ok {
			dst.ptr = e.Error()
		}
		return nil
	})
}

func mustBoxed(name string, funcs BoxedFuncs) Type {
	t, err := RegisterBoxed(name, funcs)
	if err != nil {
		panic(err)
	}

	return t
}

func mustTransform(src, dst Type, fn TransformFunc) {
	if err := RegisterTransform(src, dst, fn); err != nil {
		panic(err)
	}
}
