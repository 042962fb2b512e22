package factory

import (
	"github.com/gitgovernance/core/internal/idgen"
	"github.com/gitgovernance/core/internal/record"
	"github.com/gitgovernance/core/internal/validate"
)

// NewFeedbackPayload fills defaults (type question, status open) and
// generates an id from the entity id when absent. An assignment always
// forces status resolved regardless of what the caller passed.
func NewFeedbackPayload(input record.FeedbackPayload) (record.FeedbackPayload, error) {
	p := input
	if p.Type == "" {
		p.Type = record.FeedbackQuestion
	}
	if p.Status == "" {
		p.Status = record.FeedbackOpen
	}
	if p.Type == record.FeedbackAssignment {
		p.Status = record.FeedbackResolved
	}
	if p.ID == "" {
		p.ID = idgen.TimestampedID("feedback", p.EntityID)
	}

	if err := validate.DetailedFeedbackPayload(p); err != nil {
		return record.FeedbackPayload{}, err
	}
	return p, nil
}

// NewFeedbackEnvelope builds and signs a Feedback envelope in one step.
func NewFeedbackEnvelope(input record.FeedbackPayload, privateKey, keyID, role, notes string) (record.Envelope[record.FeedbackPayload], error) {
	p, err := NewFeedbackPayload(input)
	if err != nil {
		return record.Envelope[record.FeedbackPayload]{}, err
	}
	return SignEnvelope(p, record.TypeFeedback, privateKey, keyID, role, notes)
}
