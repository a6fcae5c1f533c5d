package value

import (
	"time"
)

// The To* helpers read v as a particular Go type, converting the datum
// when v holds a different but transformable type.

func (v *Value) ToBool() (bool, error) { return Get[bool](v) }

func (v *Value) ToChar() (int8, error) { return Get[int8](v) }

func (v *Value) ToUchar() (uint8, error) { return Get[uint8](v) }

func (v *Value) ToInt() (int32, error) { return Get[int32](v) }

func (v *Value) ToUint() (uint32, error) { return Get[uint32](v) }

func (v *Value) ToLong() (int, error) { return Get[int](v) }

func (v *Value) ToUlong() (uint, error) { return Get[uint](v) }

func (v *Value) ToInt64() (int64, error) { return Get[int64](v) }

func (v *Value) ToUint64() (uint64, error) { return Get[uint64](v) }

func (v *Value) ToFloat() (float32, error) { return Get[float32](v) }

func (v *Value) ToDouble() (float64, error) { return Get[float64](v) }

func (v *Value) ToString() (string, error) { return Get[string](v) }

func (v *Value) ToByteArray() ([]byte, error) { return Get[[]byte](v) }

func (v *Value) ToTime() (time.Time, error) { return Get[time.Time](v) }

// ToError reads an ErrorType datum.  A nil error with a nil return error
// means the Value holds no error.
func (v *Value) ToError() (error, error) { return Get[error](v) }
