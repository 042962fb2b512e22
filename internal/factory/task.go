package factory

import (
	"github.com/gitgovernance/core/internal/idgen"
	"github.com/gitgovernance/core/internal/record"
	"github.com/gitgovernance/core/internal/validate"
)

// NewTaskPayload fills defaults (status draft, priority medium, tags []),
// generates an id from the title when absent, validates, and returns the
// payload.
func NewTaskPayload(input record.TaskPayload) (record.TaskPayload, error) {
	p := input
	if p.Status == "" {
		p.Status = record.TaskDraft
	}
	if p.Priority == "" {
		p.Priority = record.PriorityMedium
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.CycleIDs == nil {
		p.CycleIDs = []string{}
	}
	if p.ID == "" {
		p.ID = idgen.TimestampedID("task", p.Title)
	}

	if err := validate.DetailedTaskPayload(p); err != nil {
		return record.TaskPayload{}, err
	}
	return p, nil
}

// NewTaskEnvelope builds and signs a Task envelope in one step.
func NewTaskEnvelope(input record.TaskPayload, privateKey, keyID, role, notes string) (record.Envelope[record.TaskPayload], error) {
	p, err := NewTaskPayload(input)
	if err != nil {
		return record.Envelope[record.TaskPayload]{}, err
	}
	return SignEnvelope(p, record.TypeTask, privateKey, keyID, role, notes)
}
