package assure

import (
	"fmt"
	"regexp"
	"strings"
)

// RuleKind identifies a value rule. The set is closed: unregistered names are
// rejected by ParseRuleKind at schema-load time, never deferred to first use.
type RuleKind int

const (
	RuleMinLength RuleKind = iota + 1
	RuleMaxLength
	RulePattern
	RuleEnum
	RuleIsInteger
	RuleMinimum
	RuleMaximum
	RuleStartsWith
	RuleEndsWith
)

var ruleNames = map[RuleKind]string{
	RuleMinLength:  "minLength",
	RuleMaxLength:  "maxLength",
	RulePattern:    "pattern",
	RuleEnum:       "enum",
	RuleIsInteger:  "isInteger",
	RuleMinimum:    "minimum",
	RuleMaximum:    "maximum",
	RuleStartsWith: "startsWith",
	RuleEndsWith:   "endsWith",
}

// String returns the rule name as written in schema documents.
func (k RuleKind) String() string {
	if n, ok := ruleNames[k]; ok {
		return n
	}
	return fmt.Sprintf("rule(%d)", int(k))
}

// ParseRuleKind resolves a rule name to its kind. Unknown names are a
// load-time error.
func ParseRuleKind(name string) (RuleKind, error) {
	for k, n := range ruleNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("assure: unknown rule %q", name)
}

// Rule pairs a kind with its argument. The argument is validated and
// normalized once by NewRule (numbers coerced to float64, patterns compiled)
// so evaluation never re-parses it.
type Rule struct {
	Kind RuleKind
	Arg  any

	num float64
	str string
	set []any
	re  *regexp.Regexp
}

// NewRule validates the argument for the given kind and returns the ready
// rule. Argument defects are load-time errors.
func NewRule(kind RuleKind, arg any) (Rule, error) {
	r := Rule{Kind: kind, Arg: arg}
	switch kind {
	case RuleMinLength, RuleMaxLength:
		f, ok := NumberOf(arg)
		if !ok || !IsIntegral(f) || f < 0 {
			return Rule{}, fmt.Errorf("assure: rule %s requires a non-negative integer argument, got %v", kind, arg)
		}
		r.num = f
		r.Arg = f
	case RuleMinimum, RuleMaximum:
		f, ok := NumberOf(arg)
		if !ok {
			return Rule{}, fmt.Errorf("assure: rule %s requires a numeric argument, got %v", kind, arg)
		}
		r.num = f
		r.Arg = f
	case RulePattern:
		s, ok := arg.(string)
		if !ok {
			return Rule{}, fmt.Errorf("assure: rule pattern requires a string argument, got %v", arg)
		}
		re, err := regexp.Compile(s)
		if err != nil {
			return Rule{}, fmt.Errorf("assure: rule pattern: %w", err)
		}
		r.str = s
		r.re = re
	case RuleEnum:
		vals, ok := arg.([]any)
		if !ok || len(vals) == 0 {
			return Rule{}, fmt.Errorf("assure: rule enum requires a non-empty list argument, got %v", arg)
		}
		set := make([]any, len(vals))
		for i, m := range vals {
			if f, isNum := NumberOf(m); isNum {
				set[i] = f
			} else {
				set[i] = m
			}
		}
		r.set = set
		r.Arg = set
	case RuleIsInteger:
		if b, ok := arg.(bool); ok && !b {
			return Rule{}, fmt.Errorf("assure: rule isInteger argument must be true")
		}
	case RuleStartsWith, RuleEndsWith:
		s, ok := arg.(string)
		if !ok {
			return Rule{}, fmt.Errorf("assure: rule %s requires a string argument, got %v", kind, arg)
		}
		r.str = s
	default:
		return Rule{}, fmt.Errorf("assure: unknown rule kind %d", int(kind))
	}
	return r, nil
}

// MustRule is NewRule that panics on argument defects. Intended for
// hand-built schemas declared as package variables.
func MustRule(kind RuleKind, arg any) Rule {
	r, err := NewRule(kind, arg)
	if err != nil {
		panic(err)
	}
	return r
}

// Check reports whether v satisfies the rule. It is a pure predicate; the
// type of v has already been established by the engine's type check.
func (r Rule) Check(v any) bool {
	switch r.Kind {
	case RuleMinLength:
		n, ok := LengthOf(v)
		return ok && float64(n) >= r.num
	case RuleMaxLength:
		n, ok := LengthOf(v)
		return ok && float64(n) <= r.num
	case RulePattern:
		s, ok := v.(string)
		return ok && r.re.MatchString(s)
	case RuleEnum:
		for _, m := range r.set {
			if LooseEqual(v, m) {
				return true
			}
		}
		return false
	case RuleIsInteger:
		f, ok := NumberOf(v)
		return ok && IsIntegral(f)
	case RuleMinimum:
		f, ok := NumberOf(v)
		return ok && f >= r.num
	case RuleMaximum:
		f, ok := NumberOf(v)
		return ok && f <= r.num
	case RuleStartsWith:
		s, ok := v.(string)
		return ok && strings.HasPrefix(s, r.str)
	case RuleEndsWith:
		s, ok := v.(string)
		return ok && strings.HasSuffix(s, r.str)
	}
	return false
}
