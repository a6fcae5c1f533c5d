package value

import (
	"fmt"
	"reflect"
)

// assign stores x into the variable that out points to, converting
// between numeric kinds and between strings and byte slices.
func assign(out, x any) error {
	ov := reflect.ValueOf(out)
	if ov.Kind() != reflect.Pointer || ov.IsNil() {
		return fmt.Errorf("%w: output must be a non-nil pointer, got %T", ErrIncompatibleType, out)
	}

	dst := ov.Elem()
	if isNil(x) {
		dst.Set(reflect.Zero(dst.Type()))
		return nil
	}

	xv := reflect.ValueOf(x)
	switch {
	case xv.Type().AssignableTo(dst.Type()):
		dst.Set(xv)

	case convertible(xv.Type(), dst.Type()):
		dst.Set(xv.Convert(dst.Type()))

	default:
		return fmt.Errorf("%w: cannot store %T in %s", ErrIncompatibleType, x, dst.Type())
	}

	return nil
}

func convertible(from, to reflect.Type) bool {
	switch {
	case isNumber(from.Kind()) && isNumber(to.Kind()):
		return true

	case isText(from) && isText(to):
		return true

	case from.Kind() == reflect.Bool && to.Kind() == reflect.Bool:
		return true
	}

	return false
}

func isNumber(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}

	return false
}

func isText(t reflect.Type) bool {
	return t.Kind() == reflect.String ||
		t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8
}

func isNil(x any) bool {
	if x == nil {
		return true
	}

	switch v := reflect.ValueOf(x); v.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Slice,
		reflect.Chan, reflect.Func, reflect.Interface:
		return v.IsNil()
	}

	return false
}

func intOf(data any) (int64, error) {
	switch d := data.(type) {
	case int32:
		return int64(d), nil
	case int:
		return int64(d), nil
	case int64:
		return d, nil
	}

	switch v := reflect.ValueOf(data); v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return int64(v.Uint()), nil
	}

	return 0, errData("integer", data)
}

func uintOf(data any) (uint64, error) {
	switch d := data.(type) {
	case uint32:
		return uint64(d), nil
	case uint:
		return uint64(d), nil
	case uint64:
		return d, nil
	}

	switch v := reflect.ValueOf(data); v.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return uint64(v.Int()), nil
	}

	return 0, errData("unsigned integer", data)
}

func floatOf(data any) (float64, error) {
	switch v := reflect.ValueOf(data); v.Kind() {
	case reflect.Float32, reflect.Float64:
		return v.Float(), nil
	}

	return 0, errData("float", data)
}

func boolOf(data any) (bool, error) {
	if v := reflect.ValueOf(data); v.Kind() == reflect.Bool {
		return v.Bool(), nil
	}

	return false, errData("boolean", data)
}

func stringOf(data any) (string, error) {
	switch d := data.(type) {
	case string:
		return d, nil
	case []byte:
		return string(d), nil
	}

	if v := reflect.ValueOf(data); v.IsValid() && isText(v.Type()) {
		return v.Convert(reflect.TypeOf("")).String(), nil
	}

	return "", errData("string", data)
}

func errData(want string, data any) error {
	return fmt.Errorf("%w: expected %s data, got %T", ErrIncompatibleType, want, data)
}
