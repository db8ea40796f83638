package assure_test

import (
	"errors"
	"testing"

	assure "github.com/sporekit/assure"
)

// dataUsersGet is a contract requiring the capability data.users.get plus a
// version field.
func dataUsersGet() *assure.Schema {
	return assure.NewSchema(
		assure.Property{
			Key: "data",
			Nested: assure.NewSchema(
				assure.Property{
					Key: "users",
					Nested: assure.NewSchema(
						assure.Property{Key: "get", Capability: true},
					),
				},
			),
		},
		assure.Property{Key: "version", Type: assure.TypeNumber, Rules: []assure.Rule{assure.MustRule(assure.RuleMinimum, 1)}},
	)
}

func TestVerifyContractSatisfied(t *testing.T) {
	ctx := map[string]any{
		"data": map[string]any{
			"users": map[string]any{
				"get": func(id string) any { return nil },
			},
		},
		"version": float64(2),
	}
	if err := assure.VerifyContract(ctx, dataUsersGet()); err != nil {
		t.Fatalf("VerifyContract: %v", err)
	}
}

func TestVerifyContractMissingCapability(t *testing.T) {
	ctx := map[string]any{
		"data":    map[string]any{"users": map[string]any{}},
		"version": float64(2),
	}
	err := assure.VerifyContract(ctx, dataUsersGet())
	var issue assure.Issue
	if !errors.As(err, &issue) {
		t.Fatalf("expected Issue, got %v", err)
	}
	if issue.Rule != assure.CodeMissingCapability || issue.Property != "data.users.get" {
		t.Fatalf("unexpected issue: %+v", issue)
	}
}

func TestVerifyContractNonCallableCapability(t *testing.T) {
	ctx := map[string]any{
		"data": map[string]any{
			"users": map[string]any{"get": "not a function"},
		},
		"version": float64(2),
	}
	err := assure.VerifyContract(ctx, dataUsersGet())
	var issue assure.Issue
	if !errors.As(err, &issue) {
		t.Fatalf("expected Issue, got %v", err)
	}
	if issue.Rule != assure.CodeMissingCapability || issue.Value != "not a function" {
		t.Fatalf("unexpected issue: %+v", issue)
	}
}

func TestVerifyContractStopsAtFirstFailure(t *testing.T) {
	// both the capability and version are bad; only the first in schema
	// order is reported
	ctx := map[string]any{
		"data":    map[string]any{"users": map[string]any{}},
		"version": float64(0),
	}
	err := assure.VerifyContract(ctx, dataUsersGet())
	var issue assure.Issue
	if !errors.As(err, &issue) {
		t.Fatalf("expected Issue, got %v", err)
	}
	if issue.Property != "data.users.get" {
		t.Fatalf("expected the first failure, got %+v", issue)
	}
}

func TestVerifyContractDataRules(t *testing.T) {
	contract := assure.NewSchema(
		assure.Property{Key: "name", Type: assure.TypeString, Rules: []assure.Rule{assure.MustRule(assure.RuleMinLength, 2)}},
	)
	if err := assure.VerifyContract(map[string]any{"name": "ok"}, contract); err != nil {
		t.Fatalf("VerifyContract: %v", err)
	}
	err := assure.VerifyContract(map[string]any{"name": "x"}, contract)
	var issue assure.Issue
	if !errors.As(err, &issue) || issue.Rule != "minLength" {
		t.Fatalf("expected minLength issue, got %v", err)
	}
}

func TestVerifyContractNestedNotAnObject(t *testing.T) {
	err := assure.VerifyContract(map[string]any{"data": "flat", "version": float64(1)}, dataUsersGet())
	var issue assure.Issue
	if !errors.As(err, &issue) {
		t.Fatalf("expected Issue, got %v", err)
	}
	if issue.Rule != assure.CodeType || issue.Property != "data" {
		t.Fatalf("unexpected issue: %+v", issue)
	}
}

func TestVerifyContractOptionalAndNil(t *testing.T) {
	contract := assure.NewSchema(
		assure.Property{Key: "trace", Capability: true, Optional: true},
	)
	if err := assure.VerifyContract(map[string]any{}, contract); err != nil {
		t.Fatalf("absent optional capability must pass: %v", err)
	}
	if err := assure.VerifyContract(map[string]any{}, nil); err != nil {
		t.Fatalf("nil contract is always satisfied: %v", err)
	}
}

func TestVerifyContractMissingRequiredData(t *testing.T) {
	contract := assure.NewSchema(assure.Property{Key: "version", Type: assure.TypeNumber})
	err := assure.VerifyContract(map[string]any{}, contract)
	var issue assure.Issue
	if !errors.As(err, &issue) || issue.Rule != assure.CodeRequired {
		t.Fatalf("expected required issue, got %v", err)
	}
}
