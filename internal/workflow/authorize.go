package workflow

import (
	"fmt"

	"github.com/gitgovernance/core/internal/crypto"
	"github.com/gitgovernance/core/internal/gerrors"
)

// RoleLookup returns an actor's capability roles by the keyId its signature
// carries. ok is false when the keyId is unknown, mirroring
// crypto.PublicKeyResolver's shape.
type RoleLookup func(keyID string) (roles []string, ok bool)

// CustomRuleEvaluator decides whether a named custom rule (e.g.
// "assignment_required") holds in the given context. The workflow
// package defines the rule vocabulary; evaluating it against actual records
// is the backlog engine's job, so the evaluator is supplied by the caller.
type CustomRuleEvaluator func(rule CustomRule, ctx Context) bool

// Context carries everything Satisfies needs beyond the methodology
// document and the candidate signatures: what operation triggered the
// transition, whether any required event was confirmed by the engine, and
// who is performing it.
type Context struct {
	Command        string
	EventConfirmed bool
	ActorID        string
	CreatorID      string
	Evaluator      CustomRuleEvaluator
}

// Allowed finds the transition from "from" to "to" in doc, or returns a
// ProtocolViolationError tagged "wrong_source_state" if none is enumerated.
func Allowed(doc *Document, from, to string) (*StateTransition, error) {
	for i := range doc.StateTransitions {
		t := &doc.StateTransitions[i]
		if t.To != to {
			continue
		}
		for _, f := range t.From {
			if f == from {
				return t, nil
			}
		}
	}
	return nil, gerrors.NewProtocolViolationError("wrong_source_state",
		fmt.Sprintf("no transition %s -> %s is enumerated in the loaded methodology", from, to))
}

// Violation names one unmet requirement of a transition.
type Violation struct {
	Kind    string
	Message string
}

// Satisfies checks transition's requirements against signatures, roles, and
// ctx. It returns true only if every signature bucket, event, command, and
// custom rule requirement holds; otherwise it returns every unmet
// requirement so the caller can report all of them, mirroring schema
// validation's "report every failure" posture.
func Satisfies(transition *StateTransition, signatures []crypto.Signature, roles RoleLookup, doc *Document, ctx Context) (bool, []Violation) {
	var violations []Violation

	if transition.RequiresCommand != "" && transition.RequiresCommand != ctx.Command {
		violations = append(violations, Violation{Kind: "wrong_command", Message: fmt.Sprintf("requires command %q, got %q", transition.RequiresCommand, ctx.Command)})
	}
	if transition.RequiresEvent != "" && !ctx.EventConfirmed {
		violations = append(violations, Violation{Kind: "event_not_confirmed", Message: fmt.Sprintf("requires event %q", transition.RequiresEvent)})
	}
	if transition.CreatorOnly && ctx.ActorID != ctx.CreatorID {
		violations = append(violations, Violation{Kind: "not_creator", Message: "only the record's creator may perform this transition"})
	}

	for name, bucket := range transition.SignatureBuckets {
		if !bucketSatisfied(bucket, signatures, roles) {
			violations = append(violations, Violation{
				Kind:    "signature_bucket_unsatisfied",
				Message: fmt.Sprintf("bucket %q needs %d distinct signer(s) with one of %v", name, bucket.MinApprovals, bucket.CapabilityRoles),
			})
		}
	}

	for _, ruleID := range transition.CustomRuleIDs {
		rule, ok := doc.CustomRuleByID(ruleID)
		if !ok {
			violations = append(violations, Violation{Kind: "unknown_custom_rule", Message: ruleID})
			continue
		}
		if ctx.Evaluator == nil || !ctx.Evaluator(rule, ctx) {
			violations = append(violations, Violation{Kind: "custom_rule_failed", Message: ruleID})
		}
	}

	return len(violations) == 0, violations
}

// bucketSatisfied counts distinct signers (by keyId) holding one of
// bucket.CapabilityRoles among signatures, and compares against
// MinApprovals: distinct actors, not just distinct
// signatures).
func bucketSatisfied(bucket SignatureBucket, signatures []crypto.Signature, roles RoleLookup) bool {
	distinctSigners := make(map[string]bool)
	for _, sig := range signatures {
		signerRoles, ok := roles(sig.KeyID)
		if !ok {
			continue
		}
		if hasAnyRole(signerRoles, bucket.CapabilityRoles) {
			distinctSigners[sig.KeyID] = true
		}
	}
	return len(distinctSigners) >= bucket.MinApprovals
}

func hasAnyRole(have, want []string) bool {
	for _, h := range have {
		for _, w := range want {
			if h == w {
				return true
			}
		}
	}
	return false
}
