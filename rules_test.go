package assure_test

import (
	"encoding/json"
	"testing"

	assure "github.com/sporekit/assure"
)

func TestParseRuleKind(t *testing.T) {
	for name, want := range map[string]assure.RuleKind{
		"minLength":  assure.RuleMinLength,
		"maxLength":  assure.RuleMaxLength,
		"pattern":    assure.RulePattern,
		"enum":       assure.RuleEnum,
		"isInteger":  assure.RuleIsInteger,
		"minimum":    assure.RuleMinimum,
		"maximum":    assure.RuleMaximum,
		"startsWith": assure.RuleStartsWith,
		"endsWith":   assure.RuleEndsWith,
	} {
		got, err := assure.ParseRuleKind(name)
		if err != nil {
			t.Fatalf("ParseRuleKind(%q): %v", name, err)
		}
		if got != want {
			t.Fatalf("ParseRuleKind(%q) = %v, want %v", name, got, want)
		}
		if got.String() != name {
			t.Fatalf("String() round trip: %q != %q", got.String(), name)
		}
	}
	if _, err := assure.ParseRuleKind("isEven"); err == nil {
		t.Fatalf("expected error for unknown rule name")
	}
}

func TestNewRuleRejectsBadArguments(t *testing.T) {
	cases := []struct {
		name string
		kind assure.RuleKind
		arg  any
	}{
		{"minLength_negative", assure.RuleMinLength, -1},
		{"minLength_fractional", assure.RuleMinLength, 1.5},
		{"maxLength_string", assure.RuleMaxLength, "x"},
		{"minimum_string", assure.RuleMinimum, "big"},
		{"pattern_number", assure.RulePattern, 5},
		{"pattern_invalid_regexp", assure.RulePattern, "("},
		{"enum_empty", assure.RuleEnum, []any{}},
		{"enum_scalar", assure.RuleEnum, "a"},
		{"isInteger_false", assure.RuleIsInteger, false},
		{"startsWith_number", assure.RuleStartsWith, 5},
		{"unknown_kind", assure.RuleKind(99), nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := assure.NewRule(tc.kind, tc.arg); err == nil {
				t.Fatalf("expected error for %v(%v)", tc.kind, tc.arg)
			}
		})
	}
}

func TestRuleCheck(t *testing.T) {
	cases := []struct {
		name string
		kind assure.RuleKind
		arg  any
		v    any
		want bool
	}{
		{"minLength_string_ok", assure.RuleMinLength, 3, "abc", true},
		{"minLength_string_short", assure.RuleMinLength, 3, "ab", false},
		{"minLength_runes_not_bytes", assure.RuleMinLength, 3, "héé", true},
		{"minLength_array", assure.RuleMinLength, 2, []any{1, 2}, true},
		{"minLength_array_short", assure.RuleMinLength, 1, []any{}, false},
		{"minLength_unmeasurable", assure.RuleMinLength, 1, 5, false},
		{"maxLength_ok", assure.RuleMaxLength, 2, "ab", true},
		{"maxLength_long", assure.RuleMaxLength, 2, "abc", false},
		{"pattern_match", assure.RulePattern, "^a", "abc", true},
		{"pattern_no_match", assure.RulePattern, "^a", "bc", false},
		{"pattern_non_string", assure.RulePattern, "^a", 5, false},
		{"enum_string", assure.RuleEnum, []any{"a", "b"}, "b", true},
		{"enum_numeric_normalized", assure.RuleEnum, []any{json.Number("1"), "a"}, float64(1), true},
		{"enum_miss", assure.RuleEnum, []any{"a", "b"}, "c", false},
		{"enum_bool", assure.RuleEnum, []any{true}, true, true},
		{"isInteger_whole", assure.RuleIsInteger, true, float64(2), true},
		{"isInteger_fractional", assure.RuleIsInteger, true, 1.5, false},
		{"isInteger_json_number", assure.RuleIsInteger, true, json.Number("7"), true},
		{"isInteger_non_number", assure.RuleIsInteger, true, "7", false},
		{"minimum_equal", assure.RuleMinimum, 2, float64(2), true},
		{"minimum_below", assure.RuleMinimum, 2, 1.9, false},
		{"maximum_equal", assure.RuleMaximum, 2, float64(2), true},
		{"maximum_above", assure.RuleMaximum, 2, 2.1, false},
		{"startsWith_ok", assure.RuleStartsWith, "ab", "abc", true},
		{"startsWith_miss", assure.RuleStartsWith, "ab", "bc", false},
		{"startsWith_non_string", assure.RuleStartsWith, "ab", 1, false},
		{"endsWith_ok", assure.RuleEndsWith, "bc", "abc", true},
		{"endsWith_miss", assure.RuleEndsWith, "bc", "ab", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := assure.MustRule(tc.kind, tc.arg)
			if got := r.Check(tc.v); got != tc.want {
				t.Fatalf("Check(%v) = %v, want %v", tc.v, got, tc.want)
			}
		})
	}
}

func TestMustRulePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	assure.MustRule(assure.RulePattern, "(")
}
