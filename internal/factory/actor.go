package factory

import (
	"github.com/gitgovernance/core/internal/idgen"
	"github.com/gitgovernance/core/internal/record"
	"github.com/gitgovernance/core/internal/validate"
)

// NewActorPayload fills defaults (status active, roles ['author']) and
// generates a "human:slug" or "agent:slug" id from DisplayName when absent.
func NewActorPayload(input record.ActorPayload) (record.ActorPayload, error) {
	p := input
	if p.Status == "" {
		p.Status = record.ActorStatusActive
	}
	if p.Roles == nil {
		p.Roles = []string{"author"}
	}
	if p.ID == "" {
		kind := "human"
		if p.Type == record.ActorAgent {
			kind = "agent"
		}
		p.ID = idgen.ActorID(kind, p.DisplayName)
	}

	if err := validate.DetailedActorPayload(p); err != nil {
		return record.ActorPayload{}, err
	}
	return p, nil
}

// NewActorEnvelope builds and signs an Actor envelope in one step.
func NewActorEnvelope(input record.ActorPayload, privateKey, keyID, role, notes string) (record.Envelope[record.ActorPayload], error) {
	p, err := NewActorPayload(input)
	if err != nil {
		return record.Envelope[record.ActorPayload]{}, err
	}
	return SignEnvelope(p, record.TypeActor, privateKey, keyID, role, notes)
}
