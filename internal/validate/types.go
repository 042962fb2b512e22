package validate

import (
	"github.com/gitgovernance/core/internal/crypto"
	"github.com/gitgovernance/core/internal/record"
)

// DetailedTaskPayload etc. run layer-2 validation for each payload type by
// name, matching the per-type detailed validators describes.
func DetailedTaskPayload(p record.TaskPayload) error {
	return DetailedOrError("task", "Task", p)
}

func DetailedActorPayload(p record.ActorPayload) error {
	return DetailedOrError("actor", "Actor", p)
}

func DetailedAgentPayload(p record.AgentPayload) error {
	return DetailedOrError("agent", "Agent", p)
}

func DetailedCyclePayload(p record.CyclePayload) error {
	return DetailedOrError("cycle", "Cycle", p)
}

func DetailedExecutionPayload(p record.ExecutionPayload) error {
	return DetailedOrError("execution", "Execution", p)
}

func DetailedChangelogPayload(p record.ChangelogPayload) error {
	return DetailedOrError("changelog", "Changelog", p)
}

func DetailedFeedbackPayload(p record.FeedbackPayload) error {
	return DetailedOrError("feedback", "Feedback", p)
}

// ValidateFullTaskRecord and its siblings are the "full envelope validation"
// entry points, one per record type.
func ValidateFullTaskRecord(env record.Envelope[record.TaskPayload], resolve crypto.PublicKeyResolver) error {
	return FullEnvelope(env, "task", "Task", resolve)
}

func ValidateFullActorRecord(env record.Envelope[record.ActorPayload], resolve crypto.PublicKeyResolver) error {
	return FullEnvelope(env, "actor", "Actor", resolve)
}

func ValidateFullAgentRecord(env record.Envelope[record.AgentPayload], resolve crypto.PublicKeyResolver) error {
	return FullEnvelope(env, "agent", "Agent", resolve)
}

func ValidateFullCycleRecord(env record.Envelope[record.CyclePayload], resolve crypto.PublicKeyResolver) error {
	return FullEnvelope(env, "cycle", "Cycle", resolve)
}

func ValidateFullExecutionRecord(env record.Envelope[record.ExecutionPayload], resolve crypto.PublicKeyResolver) error {
	return FullEnvelope(env, "execution", "Execution", resolve)
}

func ValidateFullChangelogRecord(env record.Envelope[record.ChangelogPayload], resolve crypto.PublicKeyResolver) error {
	return FullEnvelope(env, "changelog", "Changelog", resolve)
}

func ValidateFullFeedbackRecord(env record.Envelope[record.FeedbackPayload], resolve crypto.PublicKeyResolver) error {
	return FullEnvelope(env, "feedback", "Feedback", resolve)
}
