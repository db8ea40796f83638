package assure

import "reflect"

// VerifyContract checks that the context object ctx structurally satisfies
// the contract schema. Contracts reuse the property walk of the evaluation
// engine with two differences: a Capability property requires the value be
// invocable, and nesting is expressed inline through Property.Nested rather
// than a registry, so contracts nest arbitrarily deep on their own.
//
// A compatibility check is pass/fail: verification always stops at the first
// failure and returns it as the error. nil means the contract is satisfied.
func VerifyContract(ctx map[string]any, contract *Schema) error {
	if contract == nil {
		return nil
	}
	if issue := verifyObject(contract, ctx, ""); issue != nil {
		return *issue
	}
	return nil
}

func verifyObject(s *Schema, src map[string]any, prefix string) *Issue {
	for _, p := range s.Properties() {
		path := JoinPath(prefix, p.Key)
		v, ok := src[p.Key]
		if !ok {
			if p.Optional {
				continue
			}
			if p.Capability {
				return &Issue{Property: path, Rule: CodeMissingCapability, Message: MessageCapability()}
			}
			return &Issue{Property: path, Rule: CodeRequired, Message: MessageRequired()}
		}
		if p.Capability {
			if !isCallable(v) {
				return &Issue{Property: path, Rule: CodeMissingCapability, Message: MessageCapability(), Value: v}
			}
			continue
		}
		if p.Nested != nil {
			m, isMap := v.(map[string]any)
			if !isMap {
				return &Issue{Property: path, Rule: CodeType, Message: MessageType(TypeObject), Value: v}
			}
			if issue := verifyObject(p.Nested, m, path); issue != nil {
				return issue
			}
			continue
		}
		if p.Type != 0 && !MatchesType(v, p.Type) {
			return &Issue{Property: path, Rule: CodeType, Message: MessageType(p.Type), Value: v}
		}
		for _, r := range p.Rules {
			if !r.Check(v) {
				return &Issue{Property: path, Rule: r.Kind.String(), Message: MessageRule(r.Kind, r.Arg), Value: v}
			}
		}
	}
	return nil
}

func isCallable(v any) bool {
	if v == nil {
		return false
	}
	return reflect.ValueOf(v).Kind() == reflect.Func
}
