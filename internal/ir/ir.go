package ir

// Package ir defines the minimal intermediate representation the code
// generator consumes. This package is internal and not part of the public
// API. Rule and transform kinds reuse the root package's closed enums: they
// are the contract both execution strategies implement, and duplicating them
// here would invite drift.

import (
	assure "github.com/sporekit/assure"
)

// File is one generated source file.
type File struct {
	Package string
	Schemas []Schema // emission order
}

// Schema is one schema lowered for emission. Every schema gets an unexported
// walker; Export additionally emits the Assert/Evaluate wrapper pair.
type Schema struct {
	Name   string // registry name, e.g. "user"
	Ident  string // Go identifier stem, e.g. "User"
	Export bool
	Props  []Property
}

// Property mirrors assure.Property with refs rewritten to walker identifier
// stems.
type Property struct {
	Key        string
	Optional   bool
	Type       assure.PrimitiveType
	Transforms []assure.TransformKind
	Rules      []Rule
	Item       *Property
	Ref        string // Ident of the referenced schema; "" when none
}

// Rule carries a kind and its normalized argument. Pattern rules additionally
// carry the package-level identifier of their compiled regexp.
type Rule struct {
	Kind       assure.RuleKind
	Arg        any
	PatternVar string
}
