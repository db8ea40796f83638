package gen

// Package gen renders Go source from the compiler IR. The emitted walkers
// must stay observably equivalent to the interpreter in the root package:
// same check ordering, same fail-fast-per-property behavior, and identical
// message text (messages are built through the root package's Message
// constructors on both sides).

import (
	"bytes"
	"fmt"
	"go/format"
	"sort"
	"strconv"
	"strings"

	assure "github.com/sporekit/assure"
	"github.com/sporekit/assure/internal/ir"
)

const header = "// Code generated by assure/codegen. DO NOT EDIT."

var ruleConst = map[assure.RuleKind]string{
	assure.RuleMinLength:  "RuleMinLength",
	assure.RuleMaxLength:  "RuleMaxLength",
	assure.RulePattern:    "RulePattern",
	assure.RuleEnum:       "RuleEnum",
	assure.RuleIsInteger:  "RuleIsInteger",
	assure.RuleMinimum:    "RuleMinimum",
	assure.RuleMaximum:    "RuleMaximum",
	assure.RuleStartsWith: "RuleStartsWith",
	assure.RuleEndsWith:   "RuleEndsWith",
}

var typeConst = map[assure.PrimitiveType]string{
	assure.TypeString: "TypeString",
	assure.TypeNumber: "TypeNumber",
	assure.TypeBool:   "TypeBool",
	assure.TypeArray:  "TypeArray",
	assure.TypeObject: "TypeObject",
}

var transformConst = map[assure.TransformKind]string{
	assure.TransformTrim:    "TransformTrim",
	assure.TransformToLower: "TransformToLower",
	assure.TransformToUpper: "TransformToUpper",
	assure.TransformToInt:   "TransformToInt",
	assure.TransformToFloat: "TransformToFloat",
}

type pattern struct{ name, src string }

type renderer struct {
	buf bytes.Buffer

	patterns    []pattern
	needStrings bool
	needToInt   bool
	needToFloat bool
}

// Render emits one gofmt-formatted source file for the IR file.
func Render(f ir.File) ([]byte, error) {
	r := &renderer{}
	for i := range f.Schemas {
		r.scanSchema(&f.Schemas[i])
	}

	for _, s := range f.Schemas {
		r.schema(s)
	}

	var out bytes.Buffer
	fmt.Fprintln(&out, header)
	fmt.Fprintln(&out)
	fmt.Fprintf(&out, "package %s\n\n", f.Package)
	r.imports(&out)
	if len(r.patterns) > 0 {
		fmt.Fprintln(&out, "var (")
		for _, p := range r.patterns {
			fmt.Fprintf(&out, "\t%s = regexp.MustCompile(%s)\n", p.name, patternLit(p.src))
		}
		fmt.Fprintln(&out, ")")
		fmt.Fprintln(&out)
	}
	r.helpers(&out)
	out.Write(r.buf.Bytes())

	src, err := format.Source(out.Bytes())
	if err != nil {
		return nil, fmt.Errorf("gen: formatting generated source: %w", err)
	}
	return src, nil
}

// scanSchema assigns pattern identifiers and records which helpers and
// imports the emitted code will need.
func (r *renderer) scanSchema(s *ir.Schema) {
	n := 0
	var scanProp func(p *ir.Property)
	scanProp = func(p *ir.Property) {
		for _, tk := range p.Transforms {
			switch tk {
			case assure.TransformTrim, assure.TransformToLower, assure.TransformToUpper:
				r.needStrings = true
			case assure.TransformToInt:
				r.needToInt = true
			case assure.TransformToFloat:
				r.needToFloat = true
			}
		}
		for i := range p.Rules {
			switch p.Rules[i].Kind {
			case assure.RulePattern:
				p.Rules[i].PatternVar = fmt.Sprintf("pat%s%d", s.Ident, n)
				r.patterns = append(r.patterns, pattern{name: p.Rules[i].PatternVar, src: p.Rules[i].Arg.(string)})
				n++
			case assure.RuleStartsWith, assure.RuleEndsWith:
				r.needStrings = true
			}
		}
		if p.Item != nil {
			scanProp(p.Item)
		}
	}
	for i := range s.Props {
		scanProp(&s.Props[i])
	}
}

func (r *renderer) imports(out *bytes.Buffer) {
	std := []string{}
	if r.needToInt || r.needToFloat {
		std = append(std, "encoding/json", "fmt", "strconv")
	}
	if r.needToInt {
		std = append(std, "errors", "math")
	}
	if len(r.patterns) > 0 {
		std = append(std, "regexp")
	}
	if r.needStrings || r.needToInt || r.needToFloat {
		std = append(std, "strings")
	}
	sort.Strings(std)
	fmt.Fprintln(out, "import (")
	for _, p := range std {
		fmt.Fprintf(out, "\t%q\n", p)
	}
	if len(std) > 0 {
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "\tassure %q\n", "github.com/sporekit/assure")
	fmt.Fprintln(out, ")")
	fmt.Fprintln(out)
}

// helpers emits file-local copies of the numeric transforms. The bodies are
// textually identical to the root package implementations; keep in sync.
func (r *renderer) helpers(out *bytes.Buffer) {
	if r.needToInt {
		out.WriteString(`// toInt converts to int64, truncating any fractional part. It mirrors the
// interpreter's toInt transform.
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
}` + "\n")
		fmt.Fprintln(out)
	}
	if r.needToFloat {
		out.WriteString(`// toFloat converts to float64. It mirrors the interpreter's toFloat
// transform.
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
}` + "\n")
		fmt.Fprintln(out)
	}
}

func (r *renderer) w(ind int, format string, a ...any) {
	r.buf.WriteString(strings.Repeat("\t", ind))
	fmt.Fprintf(&r.buf, format, a...)
	r.buf.WriteByte('\n')
}

func (r *renderer) schema(s ir.Schema) {
	r.w(0, "// eval%s walks the %q schema.", s.Ident, s.Name)
	r.w(0, "func eval%s(src map[string]any, prefix string, verbose bool) (map[string]any, assure.Issues) {", s.Ident)
	r.w(1, "out := make(map[string]any, %d)", len(s.Props))
	r.w(1, "var iss assure.Issues")
	for _, p := range s.Props {
		r.property(p)
	}
	r.w(1, "return out, iss")
	r.w(0, "}")
	r.w(0, "")
	if !s.Export {
		return
	}
	r.w(0, "// Assert%s validates data against the %q schema and returns the sanitized", s.Ident, s.Name)
	r.w(0, "// value, stopping at the first failure.")
	r.w(0, "func Assert%s(data any) (map[string]any, error) {", s.Ident)
	r.w(1, "src, ok := data.(map[string]any)")
	r.w(1, "if !ok {")
	r.w(2, "return nil, assure.Issue{Rule: %q, Message: assure.MessageType(assure.TypeObject), Value: data}", assure.CodeType)
	r.w(1, "}")
	r.w(1, "out, iss := eval%s(src, \"\", false)", s.Ident)
	r.w(1, "if len(iss) > 0 {")
	r.w(2, "return nil, iss[0]")
	r.w(1, "}")
	r.w(1, "return out, nil")
	r.w(0, "}")
	r.w(0, "")
	r.w(0, "// Evaluate%s validates data against the %q schema, accumulating one issue", s.Ident, s.Name)
	r.w(0, "// per failing property.")
	r.w(0, "func Evaluate%s(data any) assure.Result {", s.Ident)
	r.w(1, "src, ok := data.(map[string]any)")
	r.w(1, "if !ok {")
	r.w(2, "return assure.Result{Errors: assure.Issues{{Rule: %q, Message: assure.MessageType(assure.TypeObject), Value: data}}}", assure.CodeType)
	r.w(1, "}")
	r.w(1, "out, iss := eval%s(src, \"\", true)", s.Ident)
	r.w(1, "if len(iss) > 0 {")
	r.w(2, "return assure.Result{Value: out, Errors: iss}")
	r.w(1, "}")
	r.w(1, "return assure.Result{Valid: true, Value: out}")
	r.w(0, "}")
	r.w(0, "")
}

func (r *renderer) property(p ir.Property) {
	r.w(1, "// property %q", p.Key)
	r.w(1, "{")
	r.w(2, "path := assure.JoinPath(prefix, %q)", p.Key)
	r.w(2, "v, ok := src[%q]", p.Key)
	if p.Optional {
		r.w(2, "if ok {")
	} else {
		r.w(2, "if !ok {")
		r.w(3, "iss = append(iss, assure.Issue{Property: path, Rule: %q, Message: assure.MessageRequired()})", assure.CodeRequired)
		r.w(3, "if !verbose {")
		r.w(4, "return out, iss")
		r.w(3, "}")
		r.w(2, "} else {")
	}
	r.w(3, "bad := false")
	r.propChecks(3, p, "v")
	r.w(3, "if bad && !verbose {")
	r.w(4, "return out, iss")
	r.w(3, "}")
	r.w(3, "if !bad {")
	r.w(4, "out[%q] = v", p.Key)
	r.w(3, "}")
	r.w(2, "}")
	r.w(1, "}")
}

// propChecks emits transform/type/rule/recursion checks in property context:
// a failure appends to iss and sets bad.
func (r *renderer) propChecks(ind int, p ir.Property, v string) {
	fail := func(i int, issue string) {
		r.w(i, "iss = append(iss, %s)", issue)
		r.w(i, "bad = true")
	}
	for _, tk := range p.Transforms {
		r.transform(ind, "!bad", tk, v, fail)
	}
	r.w(ind, "if !bad && !assure.MatchesType(%s, assure.%s) {", v, typeConst[p.Type])
	fail(ind+1, typeIssue(p.Type, v))
	r.w(ind, "}")
	for _, rl := range p.Rules {
		r.w(ind, "if !bad {")
		r.w(ind+1, "if %s {", ruleIf(rl, v))
		fail(ind+2, ruleIssue(rl, v))
		r.w(ind+1, "}")
		r.w(ind, "}")
	}
	if p.Type == assure.TypeArray && p.Item != nil {
		r.w(ind, "if !bad {")
		r.w(ind+1, "arr := %s.([]any)", v)
		r.w(ind+1, "san := make([]any, len(arr))")
		r.w(ind+1, "for i := range arr {")
		r.w(ind+2, "ev := arr[i]")
		r.w(ind+2, "var inner *assure.Issue")
		r.itemChecks(ind+2, *p.Item, 1)
		r.w(ind+2, "if inner != nil {")
		r.w(ind+3, "iss = append(iss, assure.Issue{Property: path, Rule: inner.Rule, Message: assure.MessageItem(i, inner.Message), Value: inner.Value})")
		r.w(ind+3, "bad = true")
		r.w(ind+3, "break")
		r.w(ind+2, "}")
		r.w(ind+2, "san[i] = ev")
		r.w(ind+1, "}")
		r.w(ind+1, "if !bad {")
		r.w(ind+2, "%s = san", v)
		r.w(ind+1, "}")
		r.w(ind, "}")
	}
	if p.Ref != "" {
		r.w(ind, "if !bad {")
		r.w(ind+1, "if m, mok := %s.(map[string]any); !mok {", v)
		fail(ind+2, typeIssue(assure.TypeObject, v))
		r.w(ind+1, "} else {")
		r.w(ind+2, "nout, niss := eval%s(m, path, verbose)", p.Ref)
		r.w(ind+2, "if len(niss) > 0 {")
		r.w(ind+3, "iss = append(iss, niss...)")
		r.w(ind+3, "bad = true")
		r.w(ind+2, "} else {")
		r.w(ind+3, "%s = nout", v)
		r.w(ind+2, "}")
		r.w(ind+1, "}")
		r.w(ind, "}")
	}
}

// itemChecks emits the same check sequence in array item context at the given
// nesting depth: a failure assigns the depth's inner issue pointer. Items are
// always fail-fast.
func (r *renderer) itemChecks(ind int, p ir.Property, depth int) {
	ev := depthName("ev", depth)
	inner := depthName("inner", depth)
	guard := inner + " == nil"
	fail := func(i int, issue string) {
		r.w(i, "%s = &%s", inner, issue)
	}
	for _, tk := range p.Transforms {
		r.transform(ind, guard, tk, ev, fail)
	}
	r.w(ind, "if %s && !assure.MatchesType(%s, assure.%s) {", guard, ev, typeConst[p.Type])
	fail(ind+1, typeIssue(p.Type, ev))
	r.w(ind, "}")
	for _, rl := range p.Rules {
		r.w(ind, "if %s {", guard)
		r.w(ind+1, "if %s {", ruleIf(rl, ev))
		fail(ind+2, ruleIssue(rl, ev))
		r.w(ind+1, "}")
		r.w(ind, "}")
	}
	if p.Type == assure.TypeArray && p.Item != nil {
		arr := depthName("arr", depth+1)
		san := depthName("san", depth+1)
		i := depthName("i", depth+1)
		cev := depthName("ev", depth+1)
		cinner := depthName("inner", depth+1)
		r.w(ind, "if %s {", guard)
		r.w(ind+1, "%s := %s.([]any)", arr, ev)
		r.w(ind+1, "%s := make([]any, len(%s))", san, arr)
		r.w(ind+1, "for %s := range %s {", i, arr)
		r.w(ind+2, "%s := %s[%s]", cev, arr, i)
		r.w(ind+2, "var %s *assure.Issue", cinner)
		r.itemChecks(ind+2, *p.Item, depth+1)
		r.w(ind+2, "if %s != nil {", cinner)
		r.w(ind+3, "%s = &assure.Issue{Property: path, Rule: %s.Rule, Message: assure.MessageItem(%s, %s.Message), Value: %s.Value}", inner, cinner, i, cinner, cinner)
		r.w(ind+3, "break")
		r.w(ind+2, "}")
		r.w(ind+2, "%s[%s] = %s", san, i, cev)
		r.w(ind+1, "}")
		r.w(ind+1, "if %s {", guard)
		r.w(ind+2, "%s = %s", ev, san)
		r.w(ind+1, "}")
		r.w(ind, "}")
	}
	if p.Ref != "" {
		r.w(ind, "if %s {", guard)
		r.w(ind+1, "if m, mok := %s.(map[string]any); !mok {", ev)
		fail(ind+2, typeIssue(assure.TypeObject, ev))
		r.w(ind+1, "} else {")
		r.w(ind+2, "nout, niss := eval%s(m, path, false)", p.Ref)
		r.w(ind+2, "if len(niss) > 0 {")
		r.w(ind+3, "%s = &niss[0]", inner)
		r.w(ind+2, "} else {")
		r.w(ind+3, "%s = nout", ev)
		r.w(ind+2, "}")
		r.w(ind+1, "}")
		r.w(ind, "}")
	}
}

// transform emits one transform application guarded by the surrounding
// fail-fast condition.
func (r *renderer) transform(ind int, guard string, tk assure.TransformKind, v string, fail func(int, string)) {
	switch tk {
	case assure.TransformTrim, assure.TransformToLower, assure.TransformToUpper:
		fn := map[assure.TransformKind]string{
			assure.TransformTrim:    "strings.TrimSpace",
			assure.TransformToLower: "strings.ToLower",
			assure.TransformToUpper: "strings.ToUpper",
		}[tk]
		r.w(ind, "if %s {", guard)
		r.w(ind+1, "if s, sok := %s.(string); sok {", v)
		r.w(ind+2, "%s = %s(s)", v, fn)
		r.w(ind+1, "}")
		r.w(ind, "}")
	case assure.TransformToInt, assure.TransformToFloat:
		fn := "toInt"
		if tk == assure.TransformToFloat {
			fn = "toFloat"
		}
		r.w(ind, "if %s {", guard)
		r.w(ind+1, "if nv, err := %s(%s); err != nil {", fn, v)
		issue := fmt.Sprintf("assure.Issue{Property: path, Rule: %q, Message: assure.MessageTransform(assure.%s, err), Value: %s}",
			tk.String(), transformConst[tk], v)
		fail(ind+2, issue)
		r.w(ind+1, "} else {")
		r.w(ind+2, "%s = nv", v)
		r.w(ind+1, "}")
		r.w(ind, "}")
	}
}

// ruleIf returns the init/condition text of the failing-check if statement
// for one rule against the value variable v.
func ruleIf(rl ir.Rule, v string) string {
	switch rl.Kind {
	case assure.RuleMinLength:
		return fmt.Sprintf("n, lok := assure.LengthOf(%s); !lok || float64(n) < %s", v, litOf(rl.Arg))
	case assure.RuleMaxLength:
		return fmt.Sprintf("n, lok := assure.LengthOf(%s); !lok || float64(n) > %s", v, litOf(rl.Arg))
	case assure.RulePattern:
		return fmt.Sprintf("s, sok := %s.(string); !sok || !%s.MatchString(s)", v, rl.PatternVar)
	case assure.RuleEnum:
		set, _ := rl.Arg.([]any)
		terms := make([]string, len(set))
		for i, m := range set {
			terms[i] = fmt.Sprintf("assure.LooseEqual(%s, %s)", v, litOf(m))
		}
		return fmt.Sprintf("!(%s)", strings.Join(terms, " || "))
	case assure.RuleIsInteger:
		return fmt.Sprintf("f, fok := assure.NumberOf(%s); !fok || !assure.IsIntegral(f)", v)
	case assure.RuleMinimum:
		return fmt.Sprintf("f, fok := assure.NumberOf(%s); !fok || f < %s", v, litOf(rl.Arg))
	case assure.RuleMaximum:
		return fmt.Sprintf("f, fok := assure.NumberOf(%s); !fok || f > %s", v, litOf(rl.Arg))
	case assure.RuleStartsWith:
		return fmt.Sprintf("s, sok := %s.(string); !sok || !strings.HasPrefix(s, %s)", v, litOf(rl.Arg))
	case assure.RuleEndsWith:
		return fmt.Sprintf("s, sok := %s.(string); !sok || !strings.HasSuffix(s, %s)", v, litOf(rl.Arg))
	}
	return "false"
}

func ruleIssue(rl ir.Rule, v string) string {
	return fmt.Sprintf("assure.Issue{Property: path, Rule: %q, Message: assure.MessageRule(assure.%s, %s), Value: %s}",
		rl.Kind.String(), ruleConst[rl.Kind], msgArg(rl), v)
}

func typeIssue(t assure.PrimitiveType, v string) string {
	return fmt.Sprintf("assure.Issue{Property: path, Rule: %q, Message: assure.MessageType(assure.%s), Value: %s}",
		assure.CodeType, typeConst[t], v)
}

// msgArg renders the MessageRule argument literal; kinds whose message text
// carries no parameter pass nil.
func msgArg(rl ir.Rule) string {
	switch rl.Kind {
	case assure.RuleEnum, assure.RuleIsInteger:
		return "nil"
	}
	return litOf(rl.Arg)
}

func litOf(arg any) string {
	switch t := arg.(type) {
	case string:
		return strconv.Quote(t)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return "nil"
	}
	return fmt.Sprintf("%#v", arg)
}

// patternLit prefers a raw string literal for readability, falling back to a
// quoted literal when the pattern itself contains a backtick.
func patternLit(src string) string {
	if !strings.Contains(src, "`") {
		return "`" + src + "`"
	}
	return strconv.Quote(src)
}

func depthName(base string, depth int) string {
	if depth <= 1 {
		return base
	}
	return base + strconv.Itoa(depth)
}
