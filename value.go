// value.go: the tagged runtime value model.
//
// W values are a small closed sum: int, float, string, bool, plus the two
// array kinds. The tag determines which Go type Value.Data holds:
//
//	VTInt      int64
//	VTNum      float64
//	VTStr      string
//	VTBool     bool
//	VTNumArray []Value (each VTInt or VTNum)
//	VTStrArray []Value (each VTStr)
//
// Arrays are homogeneous at creation and stay that way; the evaluator rejects
// pushes that would break it.
package wlang

import (
	"strconv"
	"strings"
)

// ValueTag enumerates the runtime kinds a Value may hold.
type ValueTag int

const (
	VTInt ValueTag = iota
	VTNum
	VTStr
	VTBool
	VTNumArray
	VTStrArray
)

// Value is the universal runtime carrier used by the evaluator.
type Value struct {
	Tag  ValueTag
	Data interface{}
}

func Int(n int64) Value      { return Value{Tag: VTInt, Data: n} }
func Num(f float64) Value    { return Value{Tag: VTNum, Data: f} }
func Str(s string) Value     { return Value{Tag: VTStr, Data: s} }
func Bool(b bool) Value      { return Value{Tag: VTBool, Data: b} }
func NumArr(v []Value) Value { return Value{Tag: VTNumArray, Data: v} }
func StrArr(v []Value) Value { return Value{Tag: VTStrArray, Data: v} }

// IsNumeric reports whether v is an int or a float.
func (v Value) IsNumeric() bool { return v.Tag == VTInt || v.Tag == VTNum }

// AsFloat widens an int or float to float64.
func (v Value) AsFloat() float64 {
	if v.Tag == VTInt {
		return float64(v.Data.(int64))
	}
	return v.Data.(float64)
}

// FormatValue renders a value the way "show" prints it: ints without a
// decimal part, floats in shortest form, booleans as true/false, strings
// verbatim, arrays as [e1, e2, ...].
func FormatValue(v Value) string {
	switch v.Tag {
	case VTInt:
		return strconv.FormatInt(v.Data.(int64), 10)
	case VTNum:
		return strconv.FormatFloat(v.Data.(float64), 'g', -1, 64)
	case VTStr:
		return v.Data.(string)
	case VTBool:
		return strconv.FormatBool(v.Data.(bool))
	case VTNumArray, VTStrArray:
		elems := v.Data.([]Value)
		var b strings.Builder
		b.WriteByte('[')
		for i, e := range elems {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(FormatValue(e))
		}
		b.WriteByte(']')
		return b.String()
	default:
		return "<unknown>"
	}
}

// looksNumeric reports whether s parses as a decimal integer or float,
// allowing a leading minus. Used for the coercions the language applies in
// comparisons and numeric-array pushes.
func looksNumeric(s string) bool {
	if s == "" {
		return false
	}
	body := strings.TrimPrefix(s, "-")
	if body == "" {
		return false
	}
	dots := 0
	for i := 0; i < len(body); i++ {
		if body[i] == '.' {
			dots++
			if dots > 1 {
				return false
			}
			continue
		}
		if body[i] < '0' || body[i] > '9' {
			return false
		}
	}
	return body != "." && body != "-."
}

// coerceNumeric converts a numeric-looking string to an int or float Value.
// Non-string numeric values pass through unchanged.
func coerceNumeric(v Value) (Value, bool) {
	if v.IsNumeric() {
		return v, true
	}
	if v.Tag != VTStr {
		return v, false
	}
	s := v.Data.(string)
	if !looksNumeric(s) {
		return v, false
	}
	if strings.Contains(s, ".") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return v, false
		}
		return Num(f), true
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return v, false
	}
	return Int(n), true
}
