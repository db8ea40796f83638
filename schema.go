package assure

import (
	"fmt"
)

// PrimitiveType identifies the expected shape of a property value.
type PrimitiveType int

const (
	TypeString PrimitiveType = iota + 1
	TypeNumber
	TypeBool
	TypeArray
	TypeObject
)

var typeNames = map[PrimitiveType]string{
	TypeString: "string",
	TypeNumber: "number",
	TypeBool:   "bool",
	TypeArray:  "array",
	TypeObject: "object",
}

// String returns the type name as written in schema documents.
func (t PrimitiveType) String() string {
	if n, ok := typeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("type(%d)", int(t))
}

// ParsePrimitiveType resolves a type name. "boolean" is accepted as an alias
// for "bool".
func ParsePrimitiveType(name string) (PrimitiveType, error) {
	if name == "boolean" {
		return TypeBool, nil
	}
	for t, n := range typeNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("assure: unknown type %q", name)
}

// Property describes one declared key of a schema. Optional is an explicit
// bool here: the `?` key marker exists only in the external document form and
// is stripped by the loader, never re-inspected downstream.
type Property struct {
	Key        string
	Type       PrimitiveType
	Optional   bool
	Transforms []TransformKind // applied in declared order, each consuming the previous output
	Rules      []Rule          // checked in declared order, first failure wins
	Item       *Property       // array item schema (Type == TypeArray)
	Ref        string          // named nested schema, resolved via a Registry
	Nested     *Schema         // inline nested schema; contracts nest this way
	Capability bool            // contract-only: value must be invocable
}

// Schema is an ordered mapping from property key to its definition. Insertion
// order defines traversal order, which matters for first-error reporting.
type Schema struct {
	props []Property
	index map[string]int
}

// NewSchema builds a schema from properties in declaration order.
func NewSchema(props ...Property) *Schema {
	s := &Schema{index: make(map[string]int, len(props))}
	for _, p := range props {
		s.Add(p)
	}
	return s
}

// Add appends a property, replacing in place when the key already exists.
func (s *Schema) Add(p Property) *Schema {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if i, ok := s.index[p.Key]; ok {
		s.props[i] = p
		return s
	}
	s.index[p.Key] = len(s.props)
	s.props = append(s.props, p)
	return s
}

// Properties returns the declared properties in traversal order.
func (s *Schema) Properties() []Property { return s.props }

// Property looks up a declared property by key.
func (s *Schema) Property(key string) (Property, bool) {
	i, ok := s.index[key]
	if !ok {
		return Property{}, false
	}
	return s.props[i], true
}

// Len reports the number of declared properties.
func (s *Schema) Len() int { return len(s.props) }

// Registry maps schema names to schemas and resolves Ref properties. Cyclic
// references between schemas are legal; cyclic data is not.
type Registry map[string]*Schema

// Resolve returns the named schema or an ErrUnresolvedRef configuration
// error.
func (r Registry) Resolve(name string) (*Schema, error) {
	s, ok := r[name]
	if !ok || s == nil {
		return nil, fmt.Errorf("assure: %w: %q", ErrUnresolvedRef, name)
	}
	return s, nil
}

// Check verifies every Ref in the registry resolves, including refs declared
// on array items and inline nested schemas. A failure is fatal configuration,
// reported with the offending schema and property.
func (r Registry) Check() error {
	for name, s := range r {
		if err := r.checkSchema(name, s); err != nil {
			return err
		}
	}
	return nil
}

func (r Registry) checkSchema(name string, s *Schema) error {
	for _, p := range s.Properties() {
		if err := r.checkProperty(name, p); err != nil {
			return err
		}
	}
	return nil
}

func (r Registry) checkProperty(schemaName string, p Property) error {
	if p.Ref != "" {
		if _, ok := r[p.Ref]; !ok {
			return fmt.Errorf("assure: schema %q property %q: %w: %q", schemaName, p.Key, ErrUnresolvedRef, p.Ref)
		}
	}
	if p.Item != nil {
		if err := r.checkProperty(schemaName, *p.Item); err != nil {
			return err
		}
	}
	if p.Nested != nil {
		if err := r.checkSchema(schemaName, p.Nested); err != nil {
			return err
		}
	}
	return nil
}
