package assure

import (
	"encoding/json"
	"math"
	"unicode/utf8"
)

// NumberOf reports the numeric value carried by v. It accepts every numeric
// shape a JSON decoder or a transform may produce.
func NumberOf(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// LengthOf reports the length of a string (in runes) or an array. Length
// rules apply to both uniformly.
func LengthOf(v any) (int, bool) {
	switch s := v.(type) {
	case string:
		return utf8.RuneCountInString(s), true
	case []any:
		return len(s), true
	}
	return 0, false
}

// IsIntegral reports whether f is finite with zero fractional part.
func IsIntegral(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0) && f == math.Trunc(f)
}

// LooseEqual compares two scalar values, normalizing numeric representations
// so that int64(2) equals float64(2). Non-scalar values never compare equal.
func LooseEqual(a, b any) bool {
	if fa, ok := NumberOf(a); ok {
		fb, ok2 := NumberOf(b)
		return ok2 && fa == fb
	}
	switch a.(type) {
	case nil, string, bool:
		return a == b
	}
	return false
}

// MatchesType reports whether v conforms to the primitive type t.
func MatchesType(v any, t PrimitiveType) bool {
	switch t {
	case TypeString:
		_, ok := v.(string)
		return ok
	case TypeNumber:
		_, ok := NumberOf(v)
		return ok
	case TypeBool:
		_, ok := v.(bool)
		return ok
	case TypeArray:
		_, ok := v.([]any)
		return ok
	case TypeObject:
		_, ok := v.(map[string]any)
		return ok
	}
	return false
}

// JoinPath appends key to a dotted property path.
func JoinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
