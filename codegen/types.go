package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"sort"

	assure "github.com/sporekit/assure"
)

// RenderTypes renders plain Go struct declarations mirroring the registry's
// schemas, for callers that want typed access to sanitized output. Numbers
// map to float64 unless the property's transform chain ends in toInt, in
// which case the sanitized value is an int64. Capability properties are
// contract-only and carry no data, so they get no field.
func RenderTypes(reg assure.Registry, pkg string) ([]byte, error) {
	if pkg == "" {
		pkg = "validators"
	}
	if err := reg.Check(); err != nil {
		return nil, fmt.Errorf("codegen: %w", err)
	}

	names := make([]string, 0, len(reg))
	for name := range reg {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	fmt.Fprintln(&buf, "// Code generated by assure/codegen. DO NOT EDIT.")
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "package %s\n\n", pkg)
	for _, name := range names {
		fmt.Fprintf(&buf, "// %s mirrors the %q schema.\n", exportedIdent(name), name)
		fmt.Fprintf(&buf, "type %s struct {\n", exportedIdent(name))
		for _, p := range reg[name].Properties() {
			if p.Capability {
				continue
			}
			ft, err := fieldType(name, p)
			if err != nil {
				return nil, err
			}
			tag := p.Key
			if p.Optional {
				tag += ",omitempty"
				// arrays and maps already have a usable zero value
				if p.Type != assure.TypeArray && !(p.Type == assure.TypeObject && p.Ref == "") {
					ft = "*" + ft
				}
			}
			fmt.Fprintf(&buf, "\t%s %s `json:%q`\n", exportedIdent(p.Key), ft, tag)
		}
		fmt.Fprintln(&buf, "}")
		fmt.Fprintln(&buf)
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("codegen: formatting generated types: %w", err)
	}
	return src, nil
}

func fieldType(schemaName string, p assure.Property) (string, error) {
	switch p.Type {
	case assure.TypeString:
		return "string", nil
	case assure.TypeNumber:
		if n := len(p.Transforms); n > 0 && p.Transforms[n-1] == assure.TransformToInt {
			return "int64", nil
		}
		return "float64", nil
	case assure.TypeBool:
		return "bool", nil
	case assure.TypeArray:
		if p.Item == nil {
			return "[]any", nil
		}
		it, err := fieldType(schemaName, *p.Item)
		if err != nil {
			return "", err
		}
		return "[]" + it, nil
	case assure.TypeObject:
		if p.Ref != "" {
			return exportedIdent(p.Ref), nil
		}
		return "map[string]any", nil
	}
	return "", fmt.Errorf("codegen: schema %q property %q: missing type", schemaName, p.Key)
}
