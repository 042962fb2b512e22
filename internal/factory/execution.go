package factory

import (
	"github.com/gitgovernance/core/internal/idgen"
	"github.com/gitgovernance/core/internal/record"
	"github.com/gitgovernance/core/internal/validate"
)

// NewExecutionPayload generates an id from the task id when absent and
// validates. Executions carry no status field; there's nothing to default
// beyond the id.
func NewExecutionPayload(input record.ExecutionPayload) (record.ExecutionPayload, error) {
	p := input
	if p.ID == "" {
		p.ID = idgen.TimestampedID("execution", p.TaskID)
	}

	if err := validate.DetailedExecutionPayload(p); err != nil {
		return record.ExecutionPayload{}, err
	}
	return p, nil
}

// NewExecutionEnvelope builds and signs an Execution envelope in one step.
func NewExecutionEnvelope(input record.ExecutionPayload, privateKey, keyID, role, notes string) (record.Envelope[record.ExecutionPayload], error) {
	p, err := NewExecutionPayload(input)
	if err != nil {
		return record.Envelope[record.ExecutionPayload]{}, err
	}
	return SignEnvelope(p, record.TypeExecution, privateKey, keyID, role, notes)
}
