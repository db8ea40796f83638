package assure

import "errors"

// EvalOpt controls evaluation behavior.
type EvalOpt struct {
	// Verbose accumulates one issue per failing property across the whole
	// traversal instead of stopping at the first failure.
	Verbose bool
}

// Result is the outcome of one evaluation. On failure in verbose mode, Value
// holds the partially sanitized object for the properties that did pass.
type Result struct {
	Valid  bool
	Value  map[string]any
	Errors Issues
}

// Evaluate walks every declared property of s against data, applying
// transforms, then the type check, then rules, then array/nested recursion,
// in schema order. reg is required only when a property carries a Ref.
//
// The error return is reserved for configuration defects (nil schema,
// unresolved Ref on a hand-built schema that skipped Registry.Check); data
// failures are always reported through the Result.
func Evaluate(s *Schema, data any, reg Registry, opt EvalOpt) (Result, error) {
	if s == nil {
		return Result{}, errors.New("assure: nil schema")
	}
	src, ok := data.(map[string]any)
	if !ok {
		iss := Issues{{Rule: CodeType, Message: MessageType(TypeObject), Value: data}}
		return Result{Errors: iss}, nil
	}
	out, iss, err := evalObject(s, src, reg, opt.Verbose, "")
	if err != nil {
		return Result{}, err
	}
	if len(iss) > 0 {
		r := Result{Errors: iss}
		if opt.Verbose {
			r.Value = out
		}
		return r, nil
	}
	return Result{Valid: true, Value: out}, nil
}

// evalObject walks schema s against src, writing sanitized values into the
// returned map. prefix is the dotted path of the object ("" at the root).
func evalObject(s *Schema, src map[string]any, reg Registry, verbose bool, prefix string) (map[string]any, Issues, error) {
	out := make(map[string]any, s.Len())
	var iss Issues
	for _, p := range s.Properties() {
		path := JoinPath(prefix, p.Key)
		raw, ok := src[p.Key]
		if !ok {
			if p.Optional {
				continue
			}
			iss = AppendIssues(iss, Issue{Property: path, Rule: CodeRequired, Message: MessageRequired()})
			if !verbose {
				return out, iss, nil
			}
			continue
		}
		v, viss, err := evalValue(p, raw, reg, path, verbose)
		if err != nil {
			return out, iss, err
		}
		if len(viss) > 0 {
			iss = AppendIssues(iss, viss...)
			if !verbose {
				return out, iss, nil
			}
			continue
		}
		out[p.Key] = v
	}
	return out, iss, nil
}

// evalValue applies p's transform chain, type check, rules, and recursion to
// a present value. Everything is fail-fast per property: at most one issue is
// produced here, except nested-object recursion, which contributes its own
// per-property issues in verbose mode.
func evalValue(p Property, v any, reg Registry, path string, verbose bool) (any, Issues, error) {
	for _, tk := range p.Transforms {
		nv, err := tk.Apply(v)
		if err != nil {
			return v, Issues{{Property: path, Rule: tk.String(), Message: MessageTransform(tk, err), Value: v}}, nil
		}
		v = nv
	}
	if !MatchesType(v, p.Type) {
		return v, Issues{{Property: path, Rule: CodeType, Message: MessageType(p.Type), Value: v}}, nil
	}
	for _, r := range p.Rules {
		if !r.Check(v) {
			return v, Issues{{Property: path, Rule: r.Kind.String(), Message: MessageRule(r.Kind, r.Arg), Value: v}}, nil
		}
	}
	if p.Type == TypeArray && p.Item != nil {
		arr := v.([]any)
		san := make([]any, len(arr))
		for i, ev := range arr {
			// items are always fail-fast: only the first invalid item is reported
			sv, inner, err := evalValue(*p.Item, ev, reg, path, false)
			if err != nil {
				return v, nil, err
			}
			if len(inner) > 0 {
				first := inner[0]
				return v, Issues{{Property: path, Rule: first.Rule, Message: MessageItem(i, first.Message), Value: first.Value}}, nil
			}
			san[i] = sv
		}
		v = san
	}
	if p.Ref != "" {
		nested, err := reg.Resolve(p.Ref)
		if err != nil {
			return v, nil, err
		}
		m, ok := v.(map[string]any)
		if !ok {
			return v, Issues{{Property: path, Rule: CodeType, Message: MessageType(TypeObject), Value: v}}, nil
		}
		nout, niss, err := evalObject(nested, m, reg, verbose, path)
		if err != nil {
			return v, nil, err
		}
		if len(niss) > 0 {
			return v, niss, nil
		}
		v = nout
	}
	if p.Nested != nil {
		m, ok := v.(map[string]any)
		if !ok {
			return v, Issues{{Property: path, Rule: CodeType, Message: MessageType(TypeObject), Value: v}}, nil
		}
		nout, niss, err := evalObject(p.Nested, m, reg, verbose, path)
		if err != nil {
			return v, nil, err
		}
		if len(niss) > 0 {
			return v, niss, nil
		}
		v = nout
	}
	return v, nil, nil
}
