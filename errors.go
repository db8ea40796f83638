package assure

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes shared by the interpreter, the contract verifier, and generated
// validators. Rule and transform names double as codes for their own
// failures; the constants below cover everything else.
const (
	CodeRequired          = "required"
	CodeType              = "type"
	CodeMissingCapability = "missing-capability"
)

// ErrUnresolvedRef reports a schema reference that cannot be resolved within
// the supplied registry. It indicates a configuration defect, never a data
// defect, and is surfaced at load or compile time rather than per record.
var ErrUnresolvedRef = errors.New("unresolved schema reference")

// Issue represents a single validation failure. It is created at the moment
// a check fails and never mutated afterwards.
type Issue struct {
	Property string // dotted path of the offending property ("" at the root)
	Rule     string // failing rule name; CodeType for type mismatches
	Message  string
	Value    any // offending value at time of failure
}

// Error renders the issue for direct display, naming property, rule, and
// value.
func (i Issue) Error() string {
	b := &strings.Builder{}
	if i.Property != "" {
		b.WriteString(i.Property)
		b.WriteString(": ")
	}
	b.WriteString(i.Message)
	if i.Value != nil {
		fmt.Fprintf(b, " (rule %s, got %v)", i.Rule, i.Value)
	}
	return b.String()
}

// Issues is an ordered collection of validation failures that implements
// error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		p := it.Property
		if p == "" {
			p = "."
		}
		fmt.Fprintf(b, "%s at %s", it.Rule, p)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally. A bare
// Issue is promoted to a one-element slice.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	var one Issue
	if errors.As(err, &one) {
		return Issues{one}, true
	}
	return nil, false
}
