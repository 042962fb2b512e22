package backlog

import (
	"github.com/gitgovernance/core/internal/canonical"
	"github.com/gitgovernance/core/internal/crypto"
	"github.com/gitgovernance/core/internal/factory"
	"github.com/gitgovernance/core/internal/gerrors"
	"github.com/gitgovernance/core/internal/record"
	"github.com/gitgovernance/core/internal/validate"
)

// CreateTask builds, signs, validates, and persists a new Task record in
// status=draft.
func (e *Engine) CreateTask(input record.TaskPayload) (record.Envelope[record.TaskPayload], error) {
	if _, err := e.currentActor(); err != nil {
		return record.Envelope[record.TaskPayload]{}, err
	}

	env, err := factory.NewTaskEnvelope(input, e.PrivateKey, e.KeyID, "author", "created")
	if err != nil {
		return record.Envelope[record.TaskPayload]{}, err
	}
	if err := validate.ValidateFullTaskRecord(env, e.publicKeyResolver()); err != nil {
		return record.Envelope[record.TaskPayload]{}, err
	}
	if err := e.Tasks.Put(env.Payload.ID, env); err != nil {
		return record.Envelope[record.TaskPayload]{}, err
	}
	return env, nil
}

// transitionTask is the shared shape of every status-changing task
// operation: sign a new signature under role/notes, append it to
// the prior envelope's signatures, authorize the from->to transition against
// the accumulated signature set, then persist the re-signed, re-checksummed
// envelope back under the same id.
func (e *Engine) transitionTask(id, to, command, role, notes string, eventConfirmed bool) (record.Envelope[record.TaskPayload], error) {
	prior, err := e.loadTask(id)
	if err != nil {
		return record.Envelope[record.TaskPayload]{}, err
	}

	payload := prior.Payload
	payload.Status = record.TaskStatus(to)

	sig, err := crypto.Sign(payload, e.PrivateKey, e.KeyID, role, notes)
	if err != nil {
		return record.Envelope[record.TaskPayload]{}, err
	}
	signatures := append(append([]crypto.Signature{}, prior.Header.Signatures...), sig)

	creatorID := ""
	if len(prior.Header.Signatures) > 0 {
		creatorID = prior.Header.Signatures[0].KeyID
	}

	if _, err := e.authorize(string(prior.Payload.Status), to, command, id, signatures, creatorID, eventConfirmed); err != nil {
		return record.Envelope[record.TaskPayload]{}, err
	}

	checksum, err := canonical.Checksum(payload)
	if err != nil {
		return record.Envelope[record.TaskPayload]{}, err
	}

	next := record.Envelope[record.TaskPayload]{
		Header: record.Header{
			Version:         record.ProtocolVersion,
			Type:            record.TypeTask,
			PayloadChecksum: checksum,
			Signatures:      signatures,
		},
		Payload: payload,
	}

	if err := validate.ValidateFullTaskRecord(next, e.publicKeyResolver()); err != nil {
		return record.Envelope[record.TaskPayload]{}, err
	}
	if err := e.Tasks.Put(id, next); err != nil {
		return record.Envelope[record.TaskPayload]{}, err
	}
	return next, nil
}

// SubmitTask moves a task draft -> review, signed by its author.
func (e *Engine) SubmitTask(id string) (record.Envelope[record.TaskPayload], error) {
	return e.transitionTask(id, "review", "submit", "author", "submitted for review", false)
}

// ApproveTask moves a task review -> ready, signed by an approver.
func (e *Engine) ApproveTask(id string) (record.Envelope[record.TaskPayload], error) {
	return e.transitionTask(id, "ready", "approve", "approver", "approved", false)
}

// ActivateTask moves a task ready -> active. The transition requires the
// "first execution created" event and the assignment-exists custom rule; the
// caller confirms the event has occurred (normally: it just created the
// task's first Execution).
func (e *Engine) ActivateTask(id string) (record.Envelope[record.TaskPayload], error) {
	task, err := e.loadTask(id)
	if err != nil {
		return record.Envelope[record.TaskPayload]{}, err
	}
	executions, err := e.executionsForTask(task.Payload.ID)
	if err != nil {
		return record.Envelope[record.TaskPayload]{}, err
	}
	eventConfirmed := len(executions) > 0
	return e.transitionTask(id, "active", "activate", "author", "activated", eventConfirmed)
}

// CompleteTask moves a task active -> done, signed by a quality approver.
func (e *Engine) CompleteTask(id string) (record.Envelope[record.TaskPayload], error) {
	return e.transitionTask(id, "done", "complete", "approver:quality", "completed", false)
}

// DeleteTask removes a draft task outright. Deletion is legal only from
// status=draft; any other status must go through the equivalent workflow
// transition instead.
func (e *Engine) DeleteTask(id string) error {
	prior, err := e.loadTask(id)
	if err != nil {
		return err
	}
	if prior.Payload.Status != record.TaskDraft {
		return gerrors.NewProtocolViolationError("wrong_source_state",
			"only a draft task may be deleted; use the reject or cancel transition instead")
	}
	return e.Tasks.Delete(id)
}
