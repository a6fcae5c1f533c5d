package value

import (
	"fmt"
	"time"

	"github.com/wetware/gval/gtype"
)

func setInt(set func(*gtype.Slot, int64)) func(*Value, any) error {
	return func(v *Value, data any) error {
		n, err := intOf(data)
		if err == nil {
			set(v.slot, n)
		}
		return err
	}
}

func setUint(set func(*gtype.Slot, uint64)) func(*Value, any) error {
	return func(v *Value, data any) error {
		n, err := uintOf(data)
		if err == nil {
			set(v.slot, n)
		}
		return err
	}
}

func setFloat(set func(*gtype.Slot, float64)) func(*Value, any) error {
	return func(v *Value, data any) error {
		f, err := floatOf(data)
		if err == nil {
			set(v.slot, f)
		}
		return err
	}
}

func setBool(set func(*gtype.Slot, bool)) func(*Value, any) error {
	return func(v *Value, data any) error {
		b, err := boolOf(data)
		if err == nil {
			set(v.slot, b)
		}
		return err
	}
}

func setString(set func(*gtype.Slot, string)) func(*Value, any) error {
	return func(v *Value, data any) error {
		str, err := stringOf(data)
		if err == nil {
			set(v.slot, str)
		}
		return err
	}
}

func registerBuiltins(r *Registry) {
	r.Register(gtype.Char, VTable{
		Set: setInt(func(s *gtype.Slot, n int64) { s.SetChar(int8(n)) }),
		Get: func(v *Value, out any) error { return assign(out, v.slot.Char()) },
	})

	r.Register(gtype.Uchar, VTable{
		Set: setUint(func(s *gtype.Slot, n uint64) { s.SetUchar(uint8(n)) }),
		Get: func(v *Value, out any) error { return assign(out, v.slot.Uchar()) },
	})

	r.Register(gtype.Boolean, VTable{
		Set: setBool(func(s *gtype.Slot, b bool) { s.SetBoolean(b) }),
		Get: func(v *Value, out any) error { return assign(out, v.slot.Boolean()) },
	})

	r.Register(gtype.Int, VTable{
		Set: setInt(func(s *gtype.Slot, n int64) { s.SetInt(int32(n)) }),
		Get: func(v *Value, out any) error { return assign(out, v.slot.Int()) },
	})

	r.Register(gtype.Uint, VTable{
		Set: setUint(func(s *gtype.Slot, n uint64) { s.SetUint(uint32(n)) }),
		Get: func(v *Value, out any) error { return assign(out, v.slot.Uint()) },
	})

	r.Register(gtype.Long, VTable{
		Set: setInt(func(s *gtype.Slot, n int64) { s.SetLong(n) }),
		Get: func(v *Value, out any) error { return assign(out, int(v.slot.Long())) },
	})

	r.Register(gtype.Ulong, VTable{
		Set: setUint(func(s *gtype.Slot, n uint64) { s.SetUlong(n) }),
		Get: func(v *Value, out any) error { return assign(out, uint(v.slot.Ulong())) },
	})

	r.Register(gtype.Int64, VTable{
		Set: setInt(func(s *gtype.Slot, n int64) { s.SetInt64(n) }),
		Get: func(v *Value, out any) error { return assign(out, v.slot.Int64()) },
	})

	r.Register(gtype.Uint64, VTable{
		Set: setUint(func(s *gtype.Slot, n uint64) { s.SetUint64(n) }),
		Get: func(v *Value, out any) error { return assign(out, v.slot.Uint64()) },
	})

	r.Register(gtype.Enum, VTable{
		Set: setInt(func(s *gtype.Slot, n int64) { s.SetEnum(int32(n)) }),
		Get: func(v *Value, out any) error { return assign(out, v.slot.Enum()) },
	})

	r.Register(gtype.Flags, VTable{
		Set: setUint(func(s *gtype.Slot, n uint64) { s.SetFlags(uint32(n)) }),
		Get: func(v *Value, out any) error { return assign(out, v.slot.Flags()) },
	})

	r.Register(gtype.Float, VTable{
		Set: setFloat(func(s *gtype.Slot, f float64) { s.SetFloat(float32(f)) }),
		Get: func(v *Value, out any) error { return assign(out, v.slot.Float()) },
	})

	r.Register(gtype.Double, VTable{
		Set: setFloat(func(s *gtype.Slot, f float64) { s.SetDouble(f) }),
		Get: func(v *Value, out any) error { return assign(out, v.slot.Double()) },
	})

	r.Register(gtype.String, VTable{
		Set: setString(func(s *gtype.Slot, str string) { s.SetString(str) }),
		Get: func(v *Value, out any) error { return assign(out, v.slot.Str()) },
	})

	r.Register(gtype.GType, VTable{
		Set: func(v *Value, data any) error {
			t, ok := data.(gtype.Type)
			if !ok {
				return errData("type", data)
			}

			v.slot.SetGType(t)
			return nil
		},
		Get: func(v *Value, out any) error { return assign(out, v.slot.GType()) },
	})

	r.Register(gtype.Pointer, VTable{
		Set: func(v *Value, data any) error {
			v.slot.SetPointer(data)
			return nil
		},
		Get: func(v *Value, out any) error { return assign(out, v.slot.Pointer()) },
	})

	boxed := VTable{
		Set: func(v *Value, data any) error {
			if isNil(data) {
				data = nil
			}

			v.slot.SetBoxed(data)
			return nil
		},
		Get: func(v *Value, out any) error { return assign(out, v.slot.DupBoxed()) },
	}
	r.Register(gtype.Boxed, boxed)

	object := VTable{
		Set: func(v *Value, data any) error {
			if isNil(data) {
				return v.slot.SetObject(nil)
			}

			obj, ok := data.(gtype.Instance)
			if !ok {
				return errData("object", data)
			}

			if err := v.slot.SetObject(obj); err != nil {
				return fmt.Errorf("%w: %v", ErrIncompatibleType, err)
			}

			return nil
		},
		Get: func(v *Value, out any) error { return assign(out, v.slot.Object()) },
	}
	r.Register(gtype.Object, object)
	r.Register(gtype.Interface, object)

	r.Register(gtype.ValueArray, VTable{
		Set: func(v *Value, data any) error {
			arr, ok := data.(*ValueArray)
			if !ok {
				return errData("value array", data)
			}

			v.slot.SetBoxed(arr.store())
			return nil
		},
		Get: func(v *Value, out any) error {
			arr := NewArray()
			if sa, ok := v.slot.DupBoxed().(*gtype.SlotArray); ok {
				arr = WrapArray(sa)
			}

			return assign(out, arr)
		},
	})

	r.Register(gtype.DateTime, VTable{
		Set: func(v *Value, data any) error {
			t, ok := data.(time.Time)
			if !ok {
				return errData("time", data)
			}

			v.slot.SetBoxed(t)
			return nil
		},
		Get: func(v *Value, out any) error {
			t, _ := v.slot.Boxed().(time.Time)
			return assign(out, t)
		},
	})

	r.Register(gtype.ErrorType, VTable{
		Set: func(v *Value, data any) error {
			if isNil(data) {
				v.slot.SetBoxed(nil)
				return nil
			}

			switch e := data.(type) {
			case *gtype.Error:
				v.slot.SetBoxed(e)

			case error:
				v.slot.TakeBoxed(&gtype.Error{Domain: "go", Message: e.Error()})

			default:
				return errData("error", data)
			}

			return nil
		},
		Get: func(v *Value, out any) error { return assign(out, v.slot.DupBoxed()) },
	})
}
