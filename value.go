package codeconsole

import (
	"fmt"
	"strconv"
	"strings"
)

// ValueType is the closed set of kinds an argument value can take.
type ValueType int

const (
	TypeString ValueType = iota
	TypeInteger
	TypeBoolean
	TypeFloat
	TypeDouble
)

func (t ValueType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInteger:
		return "integer"
	case TypeBoolean:
		return "boolean"
	case TypeFloat:
		return "float"
	case TypeDouble:
		return "double"
	default:
		return fmt.Sprintf("ValueType(%d)", int(t))
	}
}

// Valid reports whether t is one of the declared kinds.
func (t ValueType) Valid() bool {
	return t >= TypeString && t <= TypeDouble
}

// ParseValueType resolves a type name as written in catalogs.
func ParseValueType(name string) (ValueType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "string", "str", "text":
		return TypeString, nil
	case "integer", "int", "int32":
		return TypeInteger, nil
	case "boolean", "bool":
		return TypeBoolean, nil
	case "float", "float32", "single":
		return TypeFloat, nil
	case "double", "float64":
		return TypeDouble, nil
	default:
		return TypeString, &InvalidDefinitionError{Reason: fmt.Sprintf("unknown value type %q", name)}
	}
}

// Value is a typed argument value. Only the field matching Type is meaningful.
// Values are comparable with ==.
type Value struct {
	kind ValueType
	s    string
	i    int32
	b    bool
	f    float64
}

func StringValue(v string) Value {
	return Value{kind: TypeString, s: v}
}

func IntValue(v int32) Value {
	return Value{kind: TypeInteger, i: v}
}

func BoolValue(v bool) Value {
	return Value{kind: TypeBoolean, b: v}
}

func FloatValue(v float32) Value {
	return Value{kind: TypeFloat, f: float64(v)}
}

func DoubleValue(v float64) Value {
	return Value{kind: TypeDouble, f: v}
}

func (v Value) Type() ValueType {
	return v.kind
}

func (v Value) AsString() (string, bool) {
	return v.s, v.kind == TypeString
}

func (v Value) AsInt() (int, bool) {
	return int(v.i), v.kind == TypeInteger
}

func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == TypeBoolean
}

func (v Value) AsFloat32() (float32, bool) {
	return float32(v.f), v.kind == TypeFloat
}

func (v Value) AsFloat64() (float64, bool) {
	return v.f, v.kind == TypeDouble
}

// Interface returns the Go value: string, int32, bool, float32 or float64.
func (v Value) Interface() any {
	switch v.kind {
	case TypeInteger:
		return v.i
	case TypeBoolean:
		return v.b
	case TypeFloat:
		return float32(v.f)
	case TypeDouble:
		return v.f
	default:
		return v.s
	}
}

// String formats the value the way it would be typed on the console.
func (v Value) String() string {
	switch v.kind {
	case TypeInteger:
		return strconv.FormatInt(int64(v.i), 10)
	case TypeBoolean:
		return strconv.FormatBool(v.b)
	case TypeFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 32)
	case TypeDouble:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	default:
		return v.s
	}
}
