package factory

import (
	"testing"

	"github.com/gitgovernance/core/internal/crypto"
	"github.com/gitgovernance/core/internal/record"
)

func TestNewTaskPayload_Defaults(t *testing.T) {
	p, err := NewTaskPayload(record.TaskPayload{
		Title:       "Write the projector",
		Description: "Derive read-only views from the record graph.",
	})
	if err != nil {
		t.Fatalf("NewTaskPayload: %v", err)
	}
	if p.Status != record.TaskDraft {
		t.Errorf("status = %q, want draft", p.Status)
	}
	if p.Priority != record.PriorityMedium {
		t.Errorf("priority = %q, want medium", p.Priority)
	}
	if p.Tags == nil || len(p.Tags) != 0 {
		t.Errorf("tags = %v, want empty slice", p.Tags)
	}
	if p.ID == "" {
		t.Error("expected generated id")
	}
}

func TestNewFeedbackPayload_AssignmentForcesResolved(t *testing.T) {
	p, err := NewFeedbackPayload(record.FeedbackPayload{
		EntityType: "task",
		EntityID:   "1-task-write-the-projector",
		Type:       record.FeedbackAssignment,
		Content:    "Assigned to @alice for review.",
		Status:     record.FeedbackOpen,
	})
	if err != nil {
		t.Fatalf("NewFeedbackPayload: %v", err)
	}
	if p.Status != record.FeedbackResolved {
		t.Errorf("status = %q, want resolved (assignment forces resolved)", p.Status)
	}
}

func TestNewFeedbackPayload_QuestionDefaultsOpen(t *testing.T) {
	p, err := NewFeedbackPayload(record.FeedbackPayload{
		EntityType: "task",
		EntityID:   "1-task-write-the-projector",
		Content:    "Should this include archived cycles?",
	})
	if err != nil {
		t.Fatalf("NewFeedbackPayload: %v", err)
	}
	if p.Type != record.FeedbackQuestion {
		t.Errorf("type = %q, want question", p.Type)
	}
	if p.Status != record.FeedbackOpen {
		t.Errorf("status = %q, want open", p.Status)
	}
}

func TestNewActorPayload_Defaults(t *testing.T) {
	p, err := NewActorPayload(record.ActorPayload{
		Type:        record.ActorHuman,
		DisplayName: "Alice Smith",
		PublicKey:   "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA=",
	})
	if err != nil {
		t.Fatalf("NewActorPayload: %v", err)
	}
	if p.Status != record.ActorStatusActive {
		t.Errorf("status = %q, want active", p.Status)
	}
	if len(p.Roles) != 1 || p.Roles[0] != "author" {
		t.Errorf("roles = %v, want [author]", p.Roles)
	}
	if p.ID == "" {
		t.Error("expected generated id")
	}
}

func TestNewAgentPayload_EmptyIDKeptAsSpecified(t *testing.T) {
	p, err := NewAgentPayload(record.AgentPayload{
		Engine: record.AgentEngine{Type: record.EngineLocal, Command: "gitgov-agent"},
	})
	if err != nil {
		t.Fatalf("NewAgentPayload: %v", err)
	}
	if p.ID != "" {
		t.Errorf("id = %q, want empty (agent id is not generated by the factory)", p.ID)
	}
	if p.Status != record.AgentStatusActive {
		t.Errorf("status = %q, want active", p.Status)
	}
	if p.Triggers == nil || p.KnowledgeDependencies == nil || p.PromptEngineRequirements == nil {
		t.Error("expected empty-but-non-nil defaults")
	}
}

func TestNewTaskEnvelope_SignsAndValidates(t *testing.T) {
	pub, priv, err := crypto.GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}

	env, err := NewTaskEnvelope(record.TaskPayload{
		Title:       "Write the projector",
		Description: "Derive read-only views from the record graph.",
	}, priv, "key-1", "author", "")
	if err != nil {
		t.Fatalf("NewTaskEnvelope: %v", err)
	}
	if env.Header.Type != record.TypeTask {
		t.Errorf("header.type = %q, want task", env.Header.Type)
	}
	if len(env.Header.Signatures) != 1 {
		t.Fatalf("expected exactly one signature, got %d", len(env.Header.Signatures))
	}

	resolve := func(keyID string) (string, bool) { return pub, true }
	if !crypto.VerifyEnvelopeSignatures(env.Header.Signatures, env.Header.PayloadChecksum, resolve) {
		t.Error("VerifyEnvelopeSignatures failed, want success")
	}
}
