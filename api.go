package assure

// Assert validates data against s and returns the sanitized value. On the
// first failure it returns that single Issue as the error, carrying the
// offending property, rule, and value. reg may be nil when s has no Ref
// properties.
func Assert(data any, s *Schema, reg Registry) (map[string]any, error) {
	res, err := Evaluate(s, data, reg, EvalOpt{})
	if err != nil {
		return nil, err
	}
	if !res.Valid {
		return nil, res.Errors[0]
	}
	return res.Value, nil
}

// AssertVerbose validates data against s, accumulating every per-property
// issue instead of stopping at the first. The Result carries the partial
// sanitized value alongside the issues.
func AssertVerbose(data any, s *Schema, reg Registry) (Result, error) {
	return Evaluate(s, data, reg, EvalOpt{Verbose: true})
}

// Is reports whether data conforms to s. Configuration defects also report
// false.
func Is(data any, s *Schema, reg Registry) bool {
	res, err := Evaluate(s, data, reg, EvalOpt{})
	return err == nil && res.Valid
}
