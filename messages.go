package assure

import (
	"fmt"
	"strconv"

	"github.com/sporekit/assure/i18n"
)

// Message constructors are the single source of truth for human-readable
// issue text. The interpreter and generated validators both build their
// messages here, so the two stay identical by construction.

// MessageRequired is the text for a missing required property.
func MessageRequired() string {
	return i18n.T(CodeRequired, nil)
}

// MessageType is the text for a type mismatch.
func MessageType(want PrimitiveType) string {
	return i18n.T(CodeType, map[string]string{"expected": want.String()})
}

// MessageRule is the text for a violated rule. arg is the rule's normalized
// argument; kinds without a parameterized message ignore it.
func MessageRule(kind RuleKind, arg any) string {
	var data map[string]string
	switch kind {
	case RuleMinLength, RuleMinimum:
		data = map[string]string{"min": fmt.Sprint(arg)}
	case RuleMaxLength, RuleMaximum:
		data = map[string]string{"max": fmt.Sprint(arg)}
	case RulePattern:
		data = map[string]string{"pattern": fmt.Sprint(arg)}
	case RuleStartsWith:
		data = map[string]string{"prefix": fmt.Sprint(arg)}
	case RuleEndsWith:
		data = map[string]string{"suffix": fmt.Sprint(arg)}
	}
	return i18n.T(kind.String(), data)
}

// MessageTransform is the text for a failing transform.
func MessageTransform(kind TransformKind, err error) string {
	return i18n.T("transform", map[string]string{"name": kind.String(), "cause": err.Error()})
}

// MessageItem wraps an array item failure, naming the offending index.
func MessageItem(index int, cause string) string {
	return i18n.T("item", map[string]string{"index": strconv.Itoa(index), "cause": cause})
}

// MessageCapability is the text for a missing or non-invocable capability.
func MessageCapability() string {
	return i18n.T(CodeMissingCapability, nil)
}
