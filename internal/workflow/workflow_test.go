package workflow

import (
	"testing"

	"github.com/gitgovernance/core/internal/crypto"
)

func TestAllowed_FindsConfiguredTransition(t *testing.T) {
	doc := DefaultMethodology()

	transition, err := Allowed(doc, "draft", "review")
	if err != nil {
		t.Fatalf("Allowed: %v", err)
	}
	if transition.Trigger != "submit" {
		t.Errorf("trigger = %q, want submit", transition.Trigger)
	}
}

func TestAllowed_MultiSourceRow(t *testing.T) {
	doc := DefaultMethodology()

	if _, err := Allowed(doc, "active", "paused"); err != nil {
		t.Errorf("active -> paused should be allowed: %v", err)
	}
	if _, err := Allowed(doc, "review", "paused"); err != nil {
		t.Errorf("review -> paused should be allowed: %v", err)
	}
}

func TestAllowed_UnenumeratedTransitionFails(t *testing.T) {
	doc := DefaultMethodology()

	if _, err := Allowed(doc, "draft", "done"); err == nil {
		t.Fatal("expected draft -> done to be disallowed")
	}
}

func TestSatisfies_SubmitRequiresAuthorSignature(t *testing.T) {
	doc := DefaultMethodology()
	transition, _ := Allowed(doc, "draft", "review")

	roles := func(keyID string) ([]string, bool) {
		if keyID == "human:alice" {
			return []string{"author"}, true
		}
		return nil, false
	}
	sigs := []crypto.Signature{{KeyID: "human:alice", Role: "author"}}

	ok, violations := Satisfies(transition, sigs, roles, doc, Context{Command: "submit"})
	if !ok {
		t.Fatalf("expected satisfied, got violations: %+v", violations)
	}
}

func TestSatisfies_MissingSignatureFails(t *testing.T) {
	doc := DefaultMethodology()
	transition, _ := Allowed(doc, "draft", "review")

	roles := func(keyID string) ([]string, bool) { return nil, false }

	ok, violations := Satisfies(transition, nil, roles, doc, Context{Command: "submit"})
	if ok {
		t.Fatal("expected unsatisfied with no signatures")
	}
	if len(violations) != 1 || violations[0].Kind != "signature_bucket_unsatisfied" {
		t.Fatalf("violations = %+v, want one signature_bucket_unsatisfied", violations)
	}
}

func TestSatisfies_DistinctSignersRequired(t *testing.T) {
	doc := &Document{
		StateTransitions: []StateTransition{{
			From: []string{"review"}, To: "ready",
			SignatureBuckets: map[string]SignatureBucket{
				"__default__": {MinApprovals: 2, CapabilityRoles: []string{"approver"}},
			},
		}},
	}
	transition := &doc.StateTransitions[0]

	roles := func(keyID string) ([]string, bool) { return []string{"approver"}, true }
	sigs := []crypto.Signature{
		{KeyID: "human:alice", Role: "approver"},
		{KeyID: "human:alice", Role: "approver"}, // same signer twice
	}

	ok, _ := Satisfies(transition, sigs, roles, doc, Context{})
	if ok {
		t.Fatal("two signatures from the same signer should not satisfy min_approvals=2")
	}

	sigs = append(sigs, crypto.Signature{KeyID: "human:bob", Role: "approver"})
	ok, _ = Satisfies(transition, sigs, roles, doc, Context{})
	if !ok {
		t.Fatal("expected satisfied with two distinct signers")
	}
}

func TestSatisfies_EventRequirement(t *testing.T) {
	doc := DefaultMethodology()
	transition, _ := Allowed(doc, "ready", "active")

	evaluator := func(rule CustomRule, ctx Context) bool { return true }

	ok, violations := Satisfies(transition, nil, nil, doc, Context{EventConfirmed: false, Evaluator: evaluator})
	if ok {
		t.Fatal("expected unsatisfied without event confirmation")
	}
	foundEvent := false
	for _, v := range violations {
		if v.Kind == "event_not_confirmed" {
			foundEvent = true
		}
	}
	if !foundEvent {
		t.Errorf("violations = %+v, want event_not_confirmed", violations)
	}

	ok, violations = Satisfies(transition, nil, nil, doc, Context{EventConfirmed: true, Evaluator: evaluator})
	if !ok {
		t.Fatalf("expected satisfied with event confirmed and rule passing, got %+v", violations)
	}
}

func TestSatisfies_CreatorOnly(t *testing.T) {
	doc := DefaultMethodology()
	transition, _ := Allowed(doc, "draft", "discarded")

	ok, violations := Satisfies(transition, nil, nil, doc, Context{ActorID: "human:bob", CreatorID: "human:alice"})
	if ok {
		t.Fatal("expected unsatisfied: actor is not the creator")
	}
	if len(violations) != 1 || violations[0].Kind != "not_creator" {
		t.Fatalf("violations = %+v, want not_creator", violations)
	}

	ok, _ = Satisfies(transition, nil, nil, doc, Context{ActorID: "human:alice", CreatorID: "human:alice"})
	if !ok {
		t.Fatal("expected satisfied: actor is the creator")
	}
}

func TestValidate_CatchesUnknownCustomRule(t *testing.T) {
	doc := &Document{
		StateTransitions: []StateTransition{{
			From: []string{"a"}, To: "b", Trigger: "go",
			CustomRuleIDs: []string{"nonexistent"},
		}},
	}
	errs := Validate(doc)
	if len(errs) != 1 {
		t.Fatalf("expected 1 validation error, got %d: %+v", len(errs), errs)
	}
}

func TestValidate_DefaultMethodologyIsClean(t *testing.T) {
	doc := DefaultMethodology()
	if errs := Validate(doc); len(errs) != 0 {
		t.Fatalf("expected no validation errors on the default methodology, got %+v", errs)
	}
}

func TestParseMethodology_YAML(t *testing.T) {
	yamlDoc := []byte(`
version: 1
name: custom
custom_rules:
  - id: assignment-exists
    validation: assignment_required
state_transitions:
  - from: [draft]
    to: review
    trigger: submit
    signature_buckets:
      __default__:
        min_approvals: 1
        capability_roles: [author]
`)
	doc, err := ParseMethodology(yamlDoc)
	if err != nil {
		t.Fatalf("ParseMethodology: %v", err)
	}
	if doc.Name != "custom" || len(doc.StateTransitions) != 1 {
		t.Fatalf("got %+v", doc)
	}
	if errs := Validate(doc); len(errs) != 0 {
		t.Fatalf("expected no validation errors, got %+v", errs)
	}
}
