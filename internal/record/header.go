// Package record defines the envelope format and the seven payload shapes
// GitGovernance persists: Actor, Agent, Task, Cycle, Execution, Changelog,
// and Feedback, plus the Header every one of them travels inside of.
package record

import (
	"encoding/json"

	"github.com/gitgovernance/core/internal/crypto"
)

// Type identifies a record's payload shape. It is the tagged-union
// discriminant for Header.Type — every envelope's header.type must match
// the structural shape of its payload.
type Type string

const (
	TypeActor     Type = "actor"
	TypeAgent     Type = "agent"
	TypeTask      Type = "task"
	TypeCycle     Type = "cycle"
	TypeExecution Type = "execution"
	TypeChangelog Type = "changelog"
	TypeFeedback  Type = "feedback"
)

// ProtocolVersion is the current envelope protocol version.
const ProtocolVersion = "1.0"

// Header is the envelope metadata shared by every record type.
type Header struct {
	Version         string             `json:"version"`
	Type            Type               `json:"type"`
	PayloadChecksum string             `json:"payloadChecksum"`
	Signatures      []crypto.Signature `json:"signatures"`
	SchemaURL       string             `json:"schemaUrl,omitempty"`
	SchemaChecksum  string             `json:"schemaChecksum,omitempty"`
}

// Envelope is the persisted unit: header plus a type-specific payload. T is
// one of the seven payload structs in this package.
type Envelope[T any] struct {
	Header  Header `json:"header"`
	Payload T      `json:"payload"`
}

// RawEnvelope defers payload decoding — used by stores and generic loaders
// that need to read header.Type before they know which concrete payload to
// decode into.
type RawEnvelope struct {
	Header  Header          `json:"header"`
	Payload json.RawMessage `json:"payload"`
}
