package lang

import (
	"math"
	"strconv"
	"strings"
)

// Type indicates the type of a Value.
type Type int

const (
	// TypeNumber represents a float64 numeric value.
	TypeNumber Type = iota

	// TypeBoolean represents a boolean value.
	TypeBoolean

	// TypeString represents a string value.
	TypeString
)

// String returns a string representation of the value type.
func (t Type) String() string {
	switch t {
	case TypeNumber:
		return "Number"

	case TypeBoolean:
		return "Boolean"

	case TypeString:
		return "String"

	default:
		return "Unknown"
	}
}

// Value is an immutable tagged union of number, boolean, and string.
// Exactly one of the payload fields is meaningful, selected by the type tag.
// The zero value is Number(0).
type Value struct {
	typ Type
	num float64
	boo bool
	str string
}

// Number creates a numeric Value.
func Number(v float64) Value {
	return Value{typ: TypeNumber, num: v}
}

// Boolean creates a boolean Value.
func Boolean(v bool) Value {
	return Value{typ: TypeBoolean, boo: v}
}

// String creates a string Value.
func String(v string) Value {
	return Value{typ: TypeString, str: v}
}

// Type returns the type tag of the value.
func (v Value) Type() Type { return v.typ }

// IsNumber reports whether the value is a number.
func (v Value) IsNumber() bool { return v.typ == TypeNumber }

// IsBoolean reports whether the value is a boolean.
func (v Value) IsBoolean() bool { return v.typ == TypeBoolean }

// IsString reports whether the value is a string.
func (v Value) IsString() bool { return v.typ == TypeString }

// AsNumber returns the value coerced to a number.
//
// Booleans convert to 1 and 0. Strings are trimmed and parsed as a float;
// an empty or non-numeric string fails with ErrType.
func (v Value) AsNumber() (float64, error) {
	switch v.typ {
	case TypeNumber:
		return v.num, nil

	case TypeBoolean:
		if v.boo {
			return 1, nil
		}

		return 0, nil

	case TypeString:
		trimmed := strings.TrimSpace(v.str)
		if trimmed == "" {
			return 0, ErrType.Wrap(
				errNote("cannot convert empty string to number"),
			)
		}

		num, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, ErrType.Wrap(
				errNote("cannot convert string " + strconv.Quote(v.str) + " to number"),
			)
		}

		return num, nil

	default:
		return 0, ErrType.Wrap(errNote("expected number"))
	}
}

// AsBoolean returns the value coerced to a boolean.
//
// Numbers are false iff zero. An empty string is false, as are the
// case-insensitive strings "false", "no", and "0"; every other non-empty
// string is true.
func (v Value) AsBoolean() (bool, error) {
	switch v.typ {
	case TypeBoolean:
		return v.boo, nil

	case TypeNumber:
		return v.num != 0, nil

	case TypeString:
		if v.str == "" {
			return false, nil
		}

		switch strings.ToLower(v.str) {
		case "false", "no", "0":
			return false, nil
		}

		return true, nil

	default:
		return false, ErrType.Wrap(errNote("expected boolean"))
	}
}

// AsString returns the value coerced to a string.
//
// Integral finite numbers render without a fractional part; all other
// numbers use the shortest representation that round-trips. Booleans render
// as "true" and "false".
func (v Value) AsString() (string, error) {
	switch v.typ {
	case TypeString:
		return v.str, nil

	case TypeNumber:
		if v.num == math.Trunc(v.num) && !math.IsInf(v.num, 0) {
			return strconv.FormatFloat(v.num, 'f', 0, 64), nil
		}

		return strconv.FormatFloat(v.num, 'g', -1, 64), nil

	case TypeBoolean:
		return strconv.FormatBool(v.boo), nil

	default:
		return "", ErrType.Wrap(errNote("expected string"))
	}
}

// Equal reports whether two values are equal.
// Equality is type-sensitive: values of different types are never equal.
func (v Value) Equal(other Value) bool {
	if v.typ != other.typ {
		return false
	}

	switch v.typ {
	case TypeNumber:
		return v.num == other.num

	case TypeBoolean:
		return v.boo == other.boo

	case TypeString:
		return v.str == other.str

	default:
		return false
	}
}

// String implements fmt.Stringer using the same rules as AsString.
func (v Value) String() string {
	s, err := v.AsString()
	if err != nil {
		return "<invalid>"
	}

	return s
}
