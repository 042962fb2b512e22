package backlog

import (
	"fmt"

	"github.com/gitgovernance/core/internal/crypto"
	"github.com/gitgovernance/core/internal/factory"
	"github.com/gitgovernance/core/internal/gerrors"
	"github.com/gitgovernance/core/internal/record"
	"github.com/gitgovernance/core/internal/validate"
)

// CreateExecution records proof-of-work against an existing task. Executions
// are immutable: there is no update or delete operation for them.
func (e *Engine) CreateExecution(input record.ExecutionPayload) (record.Envelope[record.ExecutionPayload], error) {
	if _, err := e.currentActor(); err != nil {
		return record.Envelope[record.ExecutionPayload]{}, err
	}
	if _, err := e.loadTask(input.TaskID); err != nil {
		return record.Envelope[record.ExecutionPayload]{}, err
	}

	env, err := factory.NewExecutionEnvelope(input, e.PrivateKey, e.KeyID, "author", "execution recorded")
	if err != nil {
		return record.Envelope[record.ExecutionPayload]{}, err
	}
	if err := validate.ValidateFullExecutionRecord(env, e.publicKeyResolver()); err != nil {
		return record.Envelope[record.ExecutionPayload]{}, err
	}
	if err := e.Executions.Put(env.Payload.ID, env); err != nil {
		return record.Envelope[record.ExecutionPayload]{}, err
	}
	return env, nil
}

// CreateChangelog records an immutable account of a completed transition
// against some other entity (task, cycle, ...).
func (e *Engine) CreateChangelog(input record.ChangelogPayload) (record.Envelope[record.ChangelogPayload], error) {
	if _, err := e.currentActor(); err != nil {
		return record.Envelope[record.ChangelogPayload]{}, err
	}

	env, err := factory.NewChangelogEnvelope(input, e.PrivateKey, e.KeyID, "author", "changelog recorded")
	if err != nil {
		return record.Envelope[record.ChangelogPayload]{}, err
	}
	if err := validate.ValidateFullChangelogRecord(env, e.publicKeyResolver()); err != nil {
		return record.Envelope[record.ChangelogPayload]{}, err
	}
	if err := e.Changelogs.Put(env.Payload.ID, env); err != nil {
		return record.Envelope[record.ChangelogPayload]{}, err
	}
	return env, nil
}

// ArchiveTask moves a done task to archived. The methodology gates this on
// a changelog having been created against the task; the caller normally
// calls CreateChangelog first and this just confirms that happened.
func (e *Engine) ArchiveTask(id string) (record.Envelope[record.TaskPayload], error) {
	task, err := e.loadTask(id)
	if err != nil {
		return record.Envelope[record.TaskPayload]{}, err
	}

	ids, err := e.Changelogs.List()
	if err != nil {
		return record.Envelope[record.TaskPayload]{}, err
	}
	changelogged := false
	for _, clID := range ids {
		cl, err := e.Changelogs.Get(clID)
		if err != nil {
			return record.Envelope[record.TaskPayload]{}, err
		}
		if cl != nil && cl.Payload.EntityType == "task" && cl.Payload.EntityID == task.Payload.ID {
			changelogged = true
			break
		}
	}

	return e.transitionTask(id, "archived", "", "author", "archived", changelogged)
}

// CreateFeedback files a new feedback item against an entity. type=assignment
// forces status=resolved; the factory enforces that default.
func (e *Engine) CreateFeedback(input record.FeedbackPayload) (record.Envelope[record.FeedbackPayload], error) {
	if _, err := e.currentActor(); err != nil {
		return record.Envelope[record.FeedbackPayload]{}, err
	}

	env, err := factory.NewFeedbackEnvelope(input, e.PrivateKey, e.KeyID, "author", "filed")
	if err != nil {
		return record.Envelope[record.FeedbackPayload]{}, err
	}
	if err := validate.ValidateFullFeedbackRecord(env, e.publicKeyResolver()); err != nil {
		return record.Envelope[record.FeedbackPayload]{}, err
	}
	if err := e.Feedback.Put(env.Payload.ID, env); err != nil {
		return record.Envelope[record.FeedbackPayload]{}, err
	}
	return env, nil
}

// ResolveFeedback files a new feedback record with resolvesFeedbackId
// pointing at originalID — the store never mutates an existing feedback
// record in place.
func (e *Engine) ResolveFeedback(originalID string, status record.FeedbackStatus, content string) (record.Envelope[record.FeedbackPayload], error) {
	original, err := e.Feedback.Get(originalID)
	if err != nil {
		return record.Envelope[record.FeedbackPayload]{}, err
	}
	if original == nil {
		return record.Envelope[record.FeedbackPayload]{}, &gerrors.RecordNotFoundError{RecordType: "Feedback", ID: originalID}
	}

	return e.CreateFeedback(record.FeedbackPayload{
		EntityType:         original.Payload.EntityType,
		EntityID:           original.Payload.EntityID,
		Type:               original.Payload.Type,
		Status:             status,
		Content:            content,
		ResolvesFeedbackID: originalID,
	})
}

// CreateActor registers a new human or agent identity. An actor's very
// first registration is necessarily self-signed (there is no prior Actor
// record yet to resolve its key from), so the resolver here falls back to
// the envelope's own embedded public key when the signing keyId matches the
// actor being registered.
func (e *Engine) CreateActor(input record.ActorPayload) (record.Envelope[record.ActorPayload], error) {
	env, err := factory.NewActorEnvelope(input, e.PrivateKey, e.KeyID, "author", "actor registered")
	if err != nil {
		return record.Envelope[record.ActorPayload]{}, err
	}
	if err := validate.ValidateFullActorRecord(env, e.selfAwareActorResolver(env.Payload)); err != nil {
		return record.Envelope[record.ActorPayload]{}, err
	}
	if err := e.Actors.Put(env.Payload.ID, env); err != nil {
		return record.Envelope[record.ActorPayload]{}, err
	}
	return env, nil
}

// selfAwareActorResolver wraps e.publicKeyResolver with a fallback to
// registering's own public key, for the keyId == registering.ID case a
// brand-new actor's self-signature hits.
func (e *Engine) selfAwareActorResolver(registering record.ActorPayload) crypto.PublicKeyResolver {
	inner := e.publicKeyResolver()
	return func(keyID string) (string, bool) {
		if pk, ok := inner(keyID); ok {
			return pk, true
		}
		if keyID == registering.ID {
			return registering.PublicKey, true
		}
		return "", false
	}
}

// CreateAgent registers an Agent record. Unlike every other factory-backed
// operation, the factory itself does not generate or require an id — it is
// this operation's job to fail fast when input.ID is empty or does not
// resolve to an existing Actor of type=agent, rather than letting an
// unaddressable agent record persist.
func (e *Engine) CreateAgent(input record.AgentPayload) (record.Envelope[record.AgentPayload], error) {
	if input.ID == "" {
		return record.Envelope[record.AgentPayload]{}, fmt.Errorf("createAgent: id is required (must match an existing Actor of type agent)")
	}
	actorEnv, err := e.Actors.Get(input.ID)
	if err != nil {
		return record.Envelope[record.AgentPayload]{}, err
	}
	if actorEnv == nil {
		return record.Envelope[record.AgentPayload]{}, &gerrors.RecordNotFoundError{RecordType: "Actor", ID: input.ID}
	}
	if actorEnv.Payload.Type != record.ActorAgent {
		return record.Envelope[record.AgentPayload]{}, fmt.Errorf("createAgent: actor %q is not type=agent", input.ID)
	}

	env, err := factory.NewAgentEnvelope(input, e.PrivateKey, e.KeyID, "author", "agent registered")
	if err != nil {
		return record.Envelope[record.AgentPayload]{}, err
	}
	if err := validate.ValidateFullAgentRecord(env, e.publicKeyResolver()); err != nil {
		return record.Envelope[record.AgentPayload]{}, err
	}
	if err := e.Agents.Put(env.Payload.ID, env); err != nil {
		return record.Envelope[record.AgentPayload]{}, err
	}
	return env, nil
}
