package factory

import (
	"github.com/gitgovernance/core/internal/idgen"
	"github.com/gitgovernance/core/internal/record"
	"github.com/gitgovernance/core/internal/validate"
)

// NewChangelogPayload generates an id from the entity id when absent and
// validates.
func NewChangelogPayload(input record.ChangelogPayload) (record.ChangelogPayload, error) {
	p := input
	if p.ID == "" {
		p.ID = idgen.TimestampedID("changelog", p.EntityID)
	}

	if err := validate.DetailedChangelogPayload(p); err != nil {
		return record.ChangelogPayload{}, err
	}
	return p, nil
}

// NewChangelogEnvelope builds and signs a Changelog envelope in one step.
func NewChangelogEnvelope(input record.ChangelogPayload, privateKey, keyID, role, notes string) (record.Envelope[record.ChangelogPayload], error) {
	p, err := NewChangelogPayload(input)
	if err != nil {
		return record.Envelope[record.ChangelogPayload]{}, err
	}
	return SignEnvelope(p, record.TypeChangelog, privateKey, keyID, role, notes)
}
