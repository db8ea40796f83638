package assure

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// TransformKind identifies a value transform. Like rules, the set is closed
// and resolved at schema-load time.
type TransformKind int

const (
	TransformTrim TransformKind = iota + 1
	TransformToLower
	TransformToUpper
	TransformToInt
	TransformToFloat
)

var transformNames = map[TransformKind]string{
	TransformTrim:    "trim",
	TransformToLower: "toLowerCase",
	TransformToUpper: "toUpperCase",
	TransformToInt:   "toInt",
	TransformToFloat: "toFloat",
}

// String returns the transform name as written in schema documents.
func (k TransformKind) String() string {
	if n, ok := transformNames[k]; ok {
		return n
	}
	return fmt.Sprintf("transform(%d)", int(k))
}

// ParseTransformKind resolves a transform name to its kind. Unknown names are
// a load-time error.
func ParseTransformKind(name string) (TransformKind, error) {
	for k, n := range transformNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("assure: unknown transform %q", name)
}

// Apply rewrites v. String transforms pass non-string values through
// unchanged so a chain stays stable on already-sanitized data; numeric
// conversions fail on values they cannot interpret and that failure becomes
// a validation issue for the property.
func (k TransformKind) Apply(v any) (any, error) {
	switch k {
	case TransformTrim:
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s), nil
		}
		return v, nil
	case TransformToLower:
		if s, ok := v.(string); ok {
			return strings.ToLower(s), nil
		}
		return v, nil
	case TransformToUpper:
		if s, ok := v.(string); ok {
			return strings.ToUpper(s), nil
		}
		return v, nil
	case TransformToInt:
		return toInt(v)
	case TransformToFloat:
		return toFloat(v)
	}
	return nil, fmt.Errorf("assure: unknown transform kind %d", int(k))
}

// toInt converts to int64, truncating any fractional part. The generated
// validators carry a textually identical copy; keep the two in sync.
func toInt(v any) (any, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return nil, errors.New("not a finite number")
		}
		return int64(n), nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return nil, err
		}
		return int64(f), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return nil, err
		}
		return int64(f), nil
	}
	return nil, fmt.Errorf("cannot convert %T to integer", v)
}

// toFloat converts to float64.
func toFloat(v any) (any, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case json.Number:
		return n.Float64()
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return nil, err
		}
		return f, nil
	}
	return nil, fmt.Errorf("cannot convert %T to number", v)
}
