package assure

// Package assure validates and sanitizes structured data against declarative
// schemas, and verifies that a runtime context satisfies a declared contract.
//
// It provides:
//
//   - A closed rule/transform vocabulary resolved at schema-load time
//     (RuleKind, TransformKind); unknown names never survive past loading
//   - An ordered evaluation engine (Evaluate/Assert) with
//     fail-fast-per-property semantics and an optional verbose mode that
//     accumulates one issue per property
//   - A stable error model via Issue/Issues (dotted property path, rule name,
//     message, offending value)
//   - A contract verifier (VerifyContract) for capability and sub-namespace
//     checks against a context object
//   - A static compiler (the codegen package) that emits standalone validator
//     functions observably equivalent to the interpreter
//
// Design policy:
//   - Keep only public APIs in the root package; put code generation details
//     under internal/.
//   - Place document loaders under load/, the compiler facade under codegen/,
//     and message catalogs under i18n/.
//   - Prefer black-box testing against public APIs; the interpreter and the
//     compiler share one property-based equivalence suite.
//
// Typical usage:
//
//	reg, err := load.ParseJSON(doc)
//	out, err := assure.Assert(data, reg["user"], reg)
//	res, err := assure.Evaluate(reg["user"], data, reg, assure.EvalOpt{Verbose: true})
//	err := assure.VerifyContract(ctx, contract)
