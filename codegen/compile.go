// Package codegen compiles a schema registry into standalone Go validator
// source. The emitted file depends on this module only for shared value
// helpers and message construction; it never consults the rule or transform
// tables at call time, so a generated validator keeps working even if the
// registry it came from changes.
package codegen

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	assure "github.com/sporekit/assure"
	"github.com/sporekit/assure/internal/gen"
	"github.com/sporekit/assure/internal/ir"
)

// Options configure Compile.
type Options struct {
	// Package is the package name of the emitted file. Empty means
	// "validators".
	Package string

	// Schemas names the registry entries to export Assert/Evaluate wrappers
	// for. Empty means the registry's roots: every schema no other schema
	// references. Schemas a root references get unexported walkers either
	// way.
	Schemas []string
}

// Compile renders validator source for the registry. Configuration defects
// are compile-time errors: unresolved references, capability properties, and
// inline nested schemas all fail here rather than producing code that fails
// at call time.
func Compile(reg assure.Registry, opts Options) ([]byte, error) {
	pkg := opts.Package
	if pkg == "" {
		pkg = "validators"
	}
	if err := reg.Check(); err != nil {
		return nil, fmt.Errorf("codegen: %w", err)
	}

	exports := opts.Schemas
	if len(exports) == 0 {
		exports = roots(reg)
	}
	for _, name := range exports {
		if _, ok := reg[name]; !ok {
			return nil, fmt.Errorf("codegen: %w: %q", assure.ErrUnresolvedRef, name)
		}
	}

	names := reachable(reg, exports)
	exported := make(map[string]bool, len(exports))
	for _, name := range exports {
		exported[name] = true
	}

	f := ir.File{Package: pkg}
	for _, name := range names {
		s, err := lowerSchema(name, reg[name], exported[name])
		if err != nil {
			return nil, err
		}
		f.Schemas = append(f.Schemas, s)
	}
	return gen.Render(f)
}

// roots returns the schemas no other schema references, sorted. A registry
// where every schema is referenced (mutual references) exports everything.
func roots(reg assure.Registry) []string {
	referenced := make(map[string]bool)
	var mark func(p assure.Property)
	mark = func(p assure.Property) {
		if p.Ref != "" {
			referenced[p.Ref] = true
		}
		if p.Item != nil {
			mark(*p.Item)
		}
		if p.Nested != nil {
			for _, np := range p.Nested.Properties() {
				mark(np)
			}
		}
	}
	for _, s := range reg {
		for _, p := range s.Properties() {
			mark(p)
		}
	}
	var out []string
	for name := range reg {
		if !referenced[name] {
			out = append(out, name)
		}
	}
	if len(out) == 0 {
		for name := range reg {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// reachable returns the ref closure of the export set, sorted for stable
// emission order.
func reachable(reg assure.Registry, exports []string) []string {
	seen := make(map[string]bool)
	var visit func(name string)
	var visitProp func(p assure.Property)
	visit = func(name string) {
		if seen[name] {
			return
		}
		seen[name] = true
		s, ok := reg[name]
		if !ok {
			return
		}
		for _, p := range s.Properties() {
			visitProp(p)
		}
	}
	visitProp = func(p assure.Property) {
		if p.Ref != "" {
			visit(p.Ref)
		}
		if p.Item != nil {
			visitProp(*p.Item)
		}
	}
	for _, name := range exports {
		visit(name)
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func lowerSchema(name string, s *assure.Schema, export bool) (ir.Schema, error) {
	out := ir.Schema{Name: name, Ident: exportedIdent(name), Export: export}
	for _, p := range s.Properties() {
		lp, err := lowerProperty(name, p)
		if err != nil {
			return ir.Schema{}, err
		}
		out.Props = append(out.Props, lp)
	}
	return out, nil
}

func lowerProperty(schemaName string, p assure.Property) (ir.Property, error) {
	fail := func(format string, a ...any) (ir.Property, error) {
		prefix := fmt.Sprintf("codegen: schema %q property %q: ", schemaName, p.Key)
		return ir.Property{}, fmt.Errorf(prefix+format, a...)
	}
	if p.Capability {
		return fail("capability properties are contract-only and cannot be compiled")
	}
	if p.Nested != nil {
		return fail("inline nested schemas cannot be compiled; use a registry reference")
	}
	if p.Type == 0 {
		return fail("missing type")
	}
	out := ir.Property{
		Key:        p.Key,
		Optional:   p.Optional,
		Type:       p.Type,
		Transforms: p.Transforms,
	}
	for _, r := range p.Rules {
		out.Rules = append(out.Rules, ir.Rule{Kind: r.Kind, Arg: r.Arg})
	}
	if p.Item != nil {
		item, err := lowerProperty(schemaName, *p.Item)
		if err != nil {
			return ir.Property{}, err
		}
		out.Item = &item
	}
	if p.Ref != "" {
		out.Ref = exportedIdent(p.Ref)
	}
	return out, nil
}

// exportedIdent derives an exported Go identifier stem from a registry name:
// non-alphanumeric runes split segments, each segment is capitalized.
func exportedIdent(name string) string {
	var b strings.Builder
	up := true
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			up = true
			continue
		}
		if up {
			b.WriteRune(unicode.ToUpper(r))
			up = false
			continue
		}
		b.WriteRune(r)
	}
	if b.Len() == 0 {
		return "Schema"
	}
	return b.String()
}
