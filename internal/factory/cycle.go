package factory

import (
	"github.com/gitgovernance/core/internal/idgen"
	"github.com/gitgovernance/core/internal/record"
	"github.com/gitgovernance/core/internal/validate"
)

// NewCyclePayload fills defaults (status planning, empty taskIds/childCycleIds),
// generates an id from the title when absent, and validates.
func NewCyclePayload(input record.CyclePayload) (record.CyclePayload, error) {
	p := input
	if p.Status == "" {
		p.Status = record.CyclePlanning
	}
	if p.TaskIDs == nil {
		p.TaskIDs = []string{}
	}
	if p.ChildCycleIDs == nil {
		p.ChildCycleIDs = []string{}
	}
	if p.ID == "" {
		p.ID = idgen.TimestampedID("cycle", p.Title)
	}

	if err := validate.DetailedCyclePayload(p); err != nil {
		return record.CyclePayload{}, err
	}
	return p, nil
}

// NewCycleEnvelope builds and signs a Cycle envelope in one step.
func NewCycleEnvelope(input record.CyclePayload, privateKey, keyID, role, notes string) (record.Envelope[record.CyclePayload], error) {
	p, err := NewCyclePayload(input)
	if err != nil {
		return record.Envelope[record.CyclePayload]{}, err
	}
	return SignEnvelope(p, record.TypeCycle, privateKey, keyID, role, notes)
}
