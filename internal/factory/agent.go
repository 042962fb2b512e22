package factory

import (
	"github.com/gitgovernance/core/internal/record"
	"github.com/gitgovernance/core/internal/validate"
)

// NewAgentPayload fills defaults (status active, empty triggers/knowledge
// dependencies/prompt engine requirements). Unlike the other factories this
// one does not generate an id: an Agent's id must match an existing Actor of
// type "agent", so the factory leaves it as given — empty string included.
// Enforcing that the id resolves to a real agent actor is the backlog
// engine's job, not this factory's.
func NewAgentPayload(input record.AgentPayload) (record.AgentPayload, error) {
	p := input
	if p.Status == "" {
		p.Status = record.AgentStatusActive
	}
	if p.Triggers == nil {
		p.Triggers = []string{}
	}
	if p.KnowledgeDependencies == nil {
		p.KnowledgeDependencies = []string{}
	}
	if p.PromptEngineRequirements == nil {
		p.PromptEngineRequirements = map[string]any{}
	}

	if err := validate.DetailedAgentPayload(p); err != nil {
		return record.AgentPayload{}, err
	}
	return p, nil
}

// NewAgentEnvelope builds and signs an Agent envelope in one step.
func NewAgentEnvelope(input record.AgentPayload, privateKey, keyID, role, notes string) (record.Envelope[record.AgentPayload], error) {
	p, err := NewAgentPayload(input)
	if err != nil {
		return record.Envelope[record.AgentPayload]{}, err
	}
	return SignEnvelope(p, record.TypeAgent, privateKey, keyID, role, notes)
}
