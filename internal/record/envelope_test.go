package record

import (
	"encoding/json"
	"testing"

	"github.com/gitgovernance/core/internal/crypto"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	env := Envelope[TaskPayload]{
		Header: Header{
			Version:         ProtocolVersion,
			Type:            TypeTask,
			PayloadChecksum: "abc123",
			Signatures: []crypto.Signature{
				{KeyID: "human:alice", Role: "author", Notes: "initial", Signature: "sig", Timestamp: 1720000000},
			},
		},
		Payload: TaskPayload{
			ID:          "1720000000-task-hello",
			Title:       "Hello",
			Description: "a description long enough",
			Status:      TaskDraft,
			Priority:    PriorityMedium,
			Tags:        []string{},
			CycleIDs:    []string{},
		},
	}

	data, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded Envelope[TaskPayload]
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if decoded.Payload.ID != env.Payload.ID {
		t.Fatalf("payload id = %q, want %q", decoded.Payload.ID, env.Payload.ID)
	}
	if decoded.Header.Type != TypeTask {
		t.Fatalf("header type = %q, want %q", decoded.Header.Type, TypeTask)
	}
	if len(decoded.Header.Signatures) != 1 {
		t.Fatalf("signatures = %d, want 1", len(decoded.Header.Signatures))
	}
}

func TestRawEnvelopeDefersPayload(t *testing.T) {
	data := []byte(`{"header":{"version":"1.0","type":"task","payloadChecksum":"x","signatures":[]},"payload":{"id":"t-1"}}`)
	var raw RawEnvelope
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if raw.Header.Type != TypeTask {
		t.Fatalf("type = %q, want task", raw.Header.Type)
	}

	var task TaskPayload
	if err := json.Unmarshal(raw.Payload, &task); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if task.ID != "t-1" {
		t.Fatalf("id = %q, want t-1", task.ID)
	}
}
