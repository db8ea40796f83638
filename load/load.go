// Package load parses schema registry documents into assure registries.
//
// A document maps schema names to schema objects; a schema object maps
// property keys to property definitions. Key order is significant: it fixes
// both the traversal order of properties and the declaration order of rules.
// Both loaders therefore decode through an order-preserving representation
// instead of plain Go maps.
//
// A property key suffixed with the reserved marker '?' declares the property
// optional. The marker is stripped here, once; downstream code only ever sees
// the normalized Optional flag.
package load

import (
	"fmt"
	"strings"

	assure "github.com/sporekit/assure"
)

// OptionalMarker is the reserved key suffix that declares a property
// optional in document form.
const OptionalMarker = "?"

// member is one key/value pair of a decoded document object. Object values
// are []member, arrays are []any, scalars are string, json.Number, bool, or
// nil.
type member struct {
	key string
	val any
}

// Reserved property-definition keys; every other key is a rule name.
const (
	keyType       = "type"
	keyTransform  = "transform"
	keySchema     = "schema"
	keyItem       = "item"
	keyCapability = "capability"
)

func buildRegistry(doc []member) (assure.Registry, error) {
	reg := make(assure.Registry, len(doc))
	for _, m := range doc {
		body, ok := m.val.([]member)
		if !ok {
			return nil, fmt.Errorf("load: schema %q: expected an object", m.key)
		}
		s, err := buildSchema(m.key, body)
		if err != nil {
			return nil, err
		}
		reg[m.key] = s
	}
	if err := reg.Check(); err != nil {
		return nil, err
	}
	return reg, nil
}

func buildSchema(name string, doc []member) (*assure.Schema, error) {
	s := assure.NewSchema()
	for _, m := range doc {
		key, optional := splitOptional(m.key)
		body, ok := m.val.([]member)
		if !ok {
			return nil, fmt.Errorf("load: schema %q property %q: expected an object", name, key)
		}
		p, err := buildProperty(name, key, body)
		if err != nil {
			return nil, err
		}
		p.Key = key
		p.Optional = optional
		s.Add(p)
	}
	return s, nil
}

func splitOptional(key string) (string, bool) {
	if strings.HasSuffix(key, OptionalMarker) {
		return strings.TrimSuffix(key, OptionalMarker), true
	}
	return key, false
}

func buildProperty(schemaName, key string, doc []member) (assure.Property, error) {
	var p assure.Property
	fail := func(format string, a ...any) (assure.Property, error) {
		prefix := fmt.Sprintf("load: schema %q property %q: ", schemaName, key)
		return assure.Property{}, fmt.Errorf(prefix+format, a...)
	}
	for _, m := range doc {
		switch m.key {
		case keyType:
			name, ok := m.val.(string)
			if !ok {
				return fail("type must be a string")
			}
			t, err := assure.ParsePrimitiveType(name)
			if err != nil {
				return fail("%v", err)
			}
			p.Type = t
		case keyTransform:
			names, err := transformList(m.val)
			if err != nil {
				return fail("%v", err)
			}
			for _, n := range names {
				tk, err := assure.ParseTransformKind(n)
				if err != nil {
					return fail("%v", err)
				}
				p.Transforms = append(p.Transforms, tk)
			}
		case keySchema:
			ref, ok := m.val.(string)
			if !ok {
				return fail("schema reference must be a string")
			}
			p.Ref = ref
		case keyItem:
			body, ok := m.val.([]member)
			if !ok {
				return fail("item must be an object")
			}
			item, err := buildProperty(schemaName, key+"[]", body)
			if err != nil {
				return assure.Property{}, err
			}
			p.Item = &item
		case keyCapability:
			b, ok := m.val.(bool)
			if !ok {
				return fail("capability must be a bool")
			}
			p.Capability = b
		default:
			kind, err := assure.ParseRuleKind(m.key)
			if err != nil {
				return fail("%v", err)
			}
			if b, ok := m.val.(bool); ok && !b {
				// `rule: false` disables the rule
				continue
			}
			r, err := assure.NewRule(kind, plain(m.val))
			if err != nil {
				return fail("%v", err)
			}
			p.Rules = append(p.Rules, r)
		}
	}
	if p.Type == 0 {
		switch {
		case p.Ref != "":
			p.Type = assure.TypeObject
		case p.Item != nil:
			p.Type = assure.TypeArray
		case p.Capability:
			// capabilities carry no data type
		default:
			return fail("missing type")
		}
	}
	return p, nil
}

// transformList accepts either a single transform name or a list of names.
func transformList(v any) ([]string, error) {
	switch t := v.(type) {
	case string:
		return []string{t}, nil
	case []any:
		names := make([]string, 0, len(t))
		for _, e := range t {
			s, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("transform list must contain strings")
			}
			names = append(names, s)
		}
		return names, nil
	}
	return nil, fmt.Errorf("transform must be a string or a list of strings")
}

// plain strips the ordered-object representation so rule arguments reach
// NewRule as ordinary values.
func plain(v any) any {
	switch t := v.(type) {
	case []member:
		m := make(map[string]any, len(t))
		for _, e := range t {
			m[e.key] = plain(e.val)
		}
		return m
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = plain(e)
		}
		return out
	}
	return v
}
