package codeconsole

import (
	"strconv"
	"strings"
)

// Convert turns raw console text into a Value of type t. Numbers use '.' as the
// decimal point regardless of locale; surrounding whitespace is ignored for
// every type but string. Errors are *TypeConversionError without a tag.
func Convert(t ValueType, raw string) (Value, error) {
	switch t {
	case TypeString:
		return StringValue(raw), nil

	case TypeInteger:
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 32)
		if err != nil {
			return Value{}, conversionError(t, raw, err)
		}
		return IntValue(int32(n)), nil

	case TypeBoolean:
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "true":
			return BoolValue(true), nil
		case "false":
			return BoolValue(false), nil
		}
		return Value{}, conversionError(t, raw, nil)

	case TypeFloat:
		f, err := parseFloat(raw, 32)
		if err != nil {
			return Value{}, conversionError(t, raw, err)
		}
		return FloatValue(float32(f)), nil

	case TypeDouble:
		f, err := parseFloat(raw, 64)
		if err != nil {
			return Value{}, conversionError(t, raw, err)
		}
		return DoubleValue(f), nil
	}

	return Value{}, &InvalidDefinitionError{Reason: "unsupported value type " + t.String()}
}

// parseFloat rejects the hexadecimal, underscore, infinity and NaN forms
// strconv accepts, leaving plain decimal and scientific notation.
func parseFloat(raw string, bits int) (float64, error) {
	s := strings.TrimSpace(raw)
	if strings.ContainsAny(s, "_xXpPiInN") {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseFloat(s, bits)
}

func conversionError(t ValueType, raw string, err error) error {
	return &TypeConversionError{Raw: raw, Expected: t, Err: err}
}
