package dataset

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// ValueType defines the storage type for values
type ValueType string

const (
	ValueTypeMissing ValueType = "missing"
	ValueTypeString  ValueType = "string"
	ValueTypeNumeric ValueType = "numeric"
	ValueTypeBoolean ValueType = "boolean"
)

// Value is a nullable raw scalar. The zero Value is missing.
type Value struct {
	Type ValueType
	Str  string
	Num  float64
	Bool bool
}

// NewMissingValue creates a missing value
func NewMissingValue() Value {
	return Value{Type: ValueTypeMissing}
}

// NewStringValue creates a string value
func NewStringValue(s string) Value {
	return Value{Type: ValueTypeString, Str: s}
}

// NewNumericValue creates a numeric value; NaN is stored as missing.
func NewNumericValue(n float64) Value {
	if math.IsNaN(n) {
		return NewMissingValue()
	}
	return Value{Type: ValueTypeNumeric, Num: n}
}

// NewBooleanValue creates a boolean value
func NewBooleanValue(b bool) Value {
	return Value{Type: ValueTypeBoolean, Bool: b}
}

// FromAny converts a decoded Go scalar into a Value. Unknown types fall back
// to their fmt representation.
func FromAny(raw interface{}) Value {
	switch v := raw.(type) {
	case nil:
		return NewMissingValue()
	case Value:
		return v
	case string:
		return NewStringValue(v)
	case bool:
		return NewBooleanValue(v)
	case float64:
		return NewNumericValue(v)
	case float32:
		return NewNumericValue(float64(v))
	case int:
		return NewNumericValue(float64(v))
	case int8:
		return NewNumericValue(float64(v))
	case int16:
		return NewNumericValue(float64(v))
	case int32:
		return NewNumericValue(float64(v))
	case int64:
		return NewNumericValue(float64(v))
	case uint:
		return NewNumericValue(float64(v))
	case uint8:
		return NewNumericValue(float64(v))
	case uint16:
		return NewNumericValue(float64(v))
	case uint32:
		return NewNumericValue(float64(v))
	case uint64:
		return NewNumericValue(float64(v))
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return NewNumericValue(f)
		}
		return NewStringValue(v.String())
	default:
		return NewStringValue(fmt.Sprintf("%v", v))
	}
}

// IsMissing reports whether the value is null.
func (v Value) IsMissing() bool {
	return v.Type == ValueTypeMissing || v.Type == ""
}

// String returns the exact representation used for frequency counting.
func (v Value) String() string {
	switch v.Type {
	case ValueTypeString:
		return v.Str
	case ValueTypeNumeric:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case ValueTypeBoolean:
		return strconv.FormatBool(v.Bool)
	}
	return ""
}

// MarshalJSON writes the value as its natural JSON scalar.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Type {
	case ValueTypeString:
		return json.Marshal(v.Str)
	case ValueTypeNumeric:
		if math.IsInf(v.Num, 0) {
			return json.Marshal(v.String())
		}
		return json.Marshal(v.Num)
	case ValueTypeBoolean:
		return json.Marshal(v.Bool)
	}
	return []byte("null"), nil
}

// UnmarshalJSON accepts null, numbers, strings and booleans.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw.(type) {
	case nil, string, bool, float64:
		*v = FromAny(raw)
		return nil
	}
	return fmt.Errorf("value must be a scalar, got %s", string(data))
}
