package assure_test

import (
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	assure "github.com/sporekit/assure"
)

func TestStringTransformsIdempotent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	chain := []assure.TransformKind{assure.TransformTrim, assure.TransformToLower}
	apply := func(v any) any {
		for _, tk := range chain {
			nv, err := tk.Apply(v)
			if err != nil {
				t.Fatalf("string transforms never fail: %v", err)
			}
			v = nv
		}
		return v
	}

	properties.Property("trim+toLowerCase applied twice equals once", prop.ForAll(
		func(s string) bool {
			once := apply(s)
			return apply(once) == once
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

func TestEvaluationStableOnSanitizedOutput(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	s := assure.NewSchema(
		assure.Property{Key: "name", Type: assure.TypeString, Transforms: []assure.TransformKind{assure.TransformTrim, assure.TransformToLower}},
		assure.Property{Key: "count", Type: assure.TypeNumber, Transforms: []assure.TransformKind{assure.TransformToInt}},
	)

	properties.Property("re-evaluating sanitized output is valid and unchanged", prop.ForAll(
		func(name string, count float64) bool {
			out, err := assure.Assert(map[string]any{"name": name, "count": count}, s, nil)
			if err != nil {
				return false
			}
			again, err := assure.Assert(out, s, nil)
			return err == nil && reflect.DeepEqual(out, again)
		},
		gen.AnyString(),
		gen.Float64Range(-1e6, 1e6),
	))

	properties.TestingRun(t)
}

func TestVerboseReportsOneIssuePerProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	s := assure.NewSchema(
		assure.Property{Key: "id", Type: assure.TypeNumber, Rules: []assure.Rule{
			assure.MustRule(assure.RuleIsInteger, true),
			assure.MustRule(assure.RuleMinimum, 0),
		}},
		assure.Property{Key: "name", Type: assure.TypeString, Rules: []assure.Rule{
			assure.MustRule(assure.RuleMinLength, 1),
			assure.MustRule(assure.RuleMaxLength, 8),
		}},
	)

	properties.Property("issue count equals failing property count", prop.ForAll(
		func(id float64, name string) bool {
			doc := map[string]any{"id": id, "name": name}
			res, err := assure.AssertVerbose(doc, s, nil)
			if err != nil {
				return false
			}
			want := 0
			if !assure.IsIntegral(id) || id < 0 {
				want++
			}
			if n, _ := assure.LengthOf(name); n < 1 || n > 8 {
				want++
			}
			if want == 0 {
				return res.Valid && len(res.Errors) == 0
			}
			return !res.Valid && len(res.Errors) == want
		},
		gen.Float64Range(-100, 100),
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

func TestNonVerboseMatchesFirstVerboseIssue(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	s := assure.NewSchema(
		assure.Property{Key: "a", Type: assure.TypeString, Rules: []assure.Rule{assure.MustRule(assure.RuleMinLength, 2)}},
		assure.Property{Key: "b", Type: assure.TypeNumber, Rules: []assure.Rule{assure.MustRule(assure.RuleMaximum, 10)}},
	)

	properties.Property("throwing mode surfaces the first verbose issue", prop.ForAll(
		func(a string, b float64) bool {
			doc := map[string]any{"a": a, "b": b}
			res, err := assure.AssertVerbose(doc, s, nil)
			if err != nil {
				return false
			}
			_, aerr := assure.Assert(doc, s, nil)
			if res.Valid {
				return aerr == nil
			}
			iss, ok := assure.AsIssues(aerr)
			return ok && len(iss) == 1 && reflect.DeepEqual(iss[0], res.Errors[0])
		},
		gen.AnyString(),
		gen.Float64Range(0, 20),
	))

	properties.TestingRun(t)
}

func TestOptionalAbsenceNeverFails(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	s := assure.NewSchema(
		assure.Property{Key: "req", Type: assure.TypeString},
		assure.Property{Key: "opt", Type: assure.TypeString, Optional: true, Rules: []assure.Rule{assure.MustRule(assure.RulePattern, "^never$")}},
	)

	properties.Property("validity is independent of an absent optional", prop.ForAll(
		func(req string) bool {
			return assure.Is(map[string]any{"req": req}, s, nil)
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
