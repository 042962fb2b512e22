// Package backlog is the governance operation layer: each exported method
// resolves the current actor, loads the prior record, consults the
// workflow methodology for the requested transition, produces a new signed
// envelope (or mutates linkage fields) through the factory/validate/crypto
// stack, and persists it atomically. Nothing here talks to a UI or a
// transport; this package is the front-end-agnostic core a CLI's
// subcommands call into.
package backlog

import (
	"fmt"

	"github.com/gitgovernance/core/internal/canonical"
	"github.com/gitgovernance/core/internal/crypto"
	"github.com/gitgovernance/core/internal/gerrors"
	"github.com/gitgovernance/core/internal/identity"
	"github.com/gitgovernance/core/internal/record"
	"github.com/gitgovernance/core/internal/store"
	"github.com/gitgovernance/core/internal/validate"
	"github.com/gitgovernance/core/internal/workflow"
)

// resignEnvelope signs payload under role/notes, appends the resulting
// signature to priorSignatures, and wraps the result in a freshly
// checksummed envelope. Used for linkage-only mutations (cycle membership,
// actor succession) that don't go through a workflow.Document transition.
func resignEnvelope[T any](e *Engine, typ record.Type, priorSignatures []crypto.Signature, payload T, role, notes string) (record.Envelope[T], error) {
	sig, err := crypto.Sign(payload, e.PrivateKey, e.KeyID, role, notes)
	if err != nil {
		return record.Envelope[T]{}, err
	}
	signatures := append(append([]crypto.Signature{}, priorSignatures...), sig)

	checksum, err := canonical.Checksum(payload)
	if err != nil {
		return record.Envelope[T]{}, err
	}

	return record.Envelope[T]{
		Header: record.Header{
			Version:         record.ProtocolVersion,
			Type:            typ,
			PayloadChecksum: checksum,
			Signatures:      signatures,
		},
		Payload: payload,
	}, nil
}

// Engine wires every store, the methodology, and the acting keypair together.
// One Engine corresponds to one signed-in actor; a front-end serving
// multiple actors constructs one Engine per request.
type Engine struct {
	Tasks      store.Store[record.Envelope[record.TaskPayload]]
	Cycles     store.Store[record.Envelope[record.CyclePayload]]
	Executions store.Store[record.Envelope[record.ExecutionPayload]]
	Changelogs store.Store[record.Envelope[record.ChangelogPayload]]
	Feedback   store.Store[record.Envelope[record.FeedbackPayload]]
	Actors     store.Store[record.Envelope[record.ActorPayload]]
	Agents     store.Store[record.Envelope[record.AgentPayload]]

	Methodology *workflow.Document

	// PrivateKey/KeyID/Role identify the signer every operation attaches;
	// they belong to the actor CurrentActorID resolves to.
	PrivateKey     string
	KeyID          string
	Role           string
	CurrentActorID string
}

func (e *Engine) methodology() *workflow.Document {
	if e.Methodology != nil {
		return e.Methodology
	}
	return workflow.DefaultMethodology()
}

// actorLookup adapts e.Actors to identity.ActorLookup.
func (e *Engine) actorLookup() identity.ActorLookupFunc {
	return func(id string) (*record.ActorPayload, error) {
		env, err := e.Actors.Get(id)
		if err != nil {
			return nil, err
		}
		if env == nil {
			return nil, nil
		}
		return &env.Payload, nil
	}
}

// currentActor resolves the acting Actor record.
func (e *Engine) currentActor() (*record.ActorPayload, error) {
	return identity.GetCurrentActor(e.actorLookup(), e.CurrentActorID)
}

// roleLookup adapts e.Actors into a workflow.RoleLookup keyed by signature
// keyId (which is an actor id).
func (e *Engine) roleLookup() workflow.RoleLookup {
	lookup := e.actorLookup()
	return func(keyID string) ([]string, bool) {
		actor, err := lookup.GetActor(keyID)
		if err != nil || actor == nil {
			return nil, false
		}
		return actor.Roles, true
	}
}

// publicKeyResolver adapts e.Actors into a crypto.PublicKeyResolver.
func (e *Engine) publicKeyResolver() crypto.PublicKeyResolver {
	return identity.PublicKeyProvider(e.actorLookup())
}

// loadTask fetches a task envelope by id, converting a missing record into
// a typed RecordNotFoundError.
func (e *Engine) loadTask(id string) (record.Envelope[record.TaskPayload], error) {
	env, err := e.Tasks.Get(id)
	if err != nil {
		return record.Envelope[record.TaskPayload]{}, err
	}
	if env == nil {
		return record.Envelope[record.TaskPayload]{}, &gerrors.RecordNotFoundError{RecordType: "Task", ID: id}
	}
	return *env, nil
}

func (e *Engine) loadCycle(id string) (record.Envelope[record.CyclePayload], error) {
	env, err := e.Cycles.Get(id)
	if err != nil {
		return record.Envelope[record.CyclePayload]{}, err
	}
	if env == nil {
		return record.Envelope[record.CyclePayload]{}, &gerrors.RecordNotFoundError{RecordType: "Cycle", ID: id}
	}
	return *env, nil
}

// executionsForTask lists every execution recorded against taskID. Stores
// only index by id, so this is a linear scan — acceptable at the scale a
// single project's backlog operates at.
func (e *Engine) executionsForTask(taskID string) ([]record.Envelope[record.ExecutionPayload], error) {
	ids, err := e.Executions.List()
	if err != nil {
		return nil, err
	}
	var out []record.Envelope[record.ExecutionPayload]
	for _, id := range ids {
		env, err := e.Executions.Get(id)
		if err != nil {
			return nil, err
		}
		if env != nil && env.Payload.TaskID == taskID {
			out = append(out, *env)
		}
	}
	return out, nil
}

// feedbackForEntity lists every feedback record filed against entityID.
func (e *Engine) feedbackForEntity(entityID string) ([]record.Envelope[record.FeedbackPayload], error) {
	ids, err := e.Feedback.List()
	if err != nil {
		return nil, err
	}
	var out []record.Envelope[record.FeedbackPayload]
	for _, id := range ids {
		env, err := e.Feedback.Get(id)
		if err != nil {
			return nil, err
		}
		if env != nil && env.Payload.EntityID == entityID {
			out = append(out, *env)
		}
	}
	return out, nil
}

// evaluateCustomRule implements the built-in custom-rule vocabulary
// workflow.CustomRuleEvaluator hooks into. "assignment_required" is the only
// rule the default methodology references and the only one evaluated here;
// every other validation kind evaluates to false.
func (e *Engine) evaluateCustomRule(rule workflow.CustomRule, ctx workflow.Context, taskID string) bool {
	switch rule.Validation {
	case workflow.ValidationAssignmentRequired:
		items, err := e.feedbackForEntity(taskID)
		if err != nil {
			return false
		}
		for _, f := range items {
			if f.Payload.Type == record.FeedbackAssignment {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// authorize finds and checks the from->to transition for a task-scoped
// operation, returning the matched transition on success.
func (e *Engine) authorize(from, to, command, taskID string, signatures []crypto.Signature, creatorID string, eventConfirmed bool) (*workflow.StateTransition, error) {
	doc := e.methodology()
	transition, err := workflow.Allowed(doc, from, to)
	if err != nil {
		return nil, err
	}

	ctx := workflow.Context{
		Command:        command,
		EventConfirmed: eventConfirmed,
		ActorID:        e.CurrentActorID,
		CreatorID:      creatorID,
		Evaluator: func(rule workflow.CustomRule, c workflow.Context) bool {
			return e.evaluateCustomRule(rule, c, taskID)
		},
	}

	ok, violations := workflow.Satisfies(transition, signatures, e.roleLookup(), doc, ctx)
	if !ok {
		return nil, gerrors.NewProtocolViolationError(violationKind(violations), fmt.Sprintf("%s -> %s: %d unmet requirement(s)", from, to, len(violations)))
	}
	return transition, nil
}

// putTask re-signs payload (a linkage-only mutation, not a workflow
// transition), validates the result, and persists it back under id.
func (e *Engine) putTask(id string, priorSignatures []crypto.Signature, payload record.TaskPayload) (record.Envelope[record.TaskPayload], error) {
	next, err := resignEnvelope(e, record.TypeTask, priorSignatures, payload, "contributor", "linkage updated")
	if err != nil {
		return record.Envelope[record.TaskPayload]{}, err
	}
	if err := validate.ValidateFullTaskRecord(next, e.publicKeyResolver()); err != nil {
		return record.Envelope[record.TaskPayload]{}, err
	}
	if err := e.Tasks.Put(id, next); err != nil {
		return record.Envelope[record.TaskPayload]{}, err
	}
	return next, nil
}

// putCycle is putTask's Cycle-record counterpart.
func (e *Engine) putCycle(id string, priorSignatures []crypto.Signature, payload record.CyclePayload) (record.Envelope[record.CyclePayload], error) {
	next, err := resignEnvelope(e, record.TypeCycle, priorSignatures, payload, "contributor", "linkage updated")
	if err != nil {
		return record.Envelope[record.CyclePayload]{}, err
	}
	if err := validate.ValidateFullCycleRecord(next, e.publicKeyResolver()); err != nil {
		return record.Envelope[record.CyclePayload]{}, err
	}
	if err := e.Cycles.Put(id, next); err != nil {
		return record.Envelope[record.CyclePayload]{}, err
	}
	return next, nil
}

func violationKind(violations []workflow.Violation) string {
	if len(violations) == 0 {
		return "unsatisfied"
	}
	return violations[0].Kind
}
