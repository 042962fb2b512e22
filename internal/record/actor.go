package record

// ActorKind distinguishes a human operator from an automated agent.
type ActorKind string

const (
	ActorHuman ActorKind = "human"
	ActorAgent ActorKind = "agent"
)

// ActorStatus tracks whether an actor's key is still trusted.
type ActorStatus string

const (
	ActorStatusActive  ActorStatus = "active"
	ActorStatusRevoked ActorStatus = "revoked"
)

// ActorPayload is the payload of an Actor record: a human or agent identity
// and the Ed25519 public key its signatures are verified against.
type ActorPayload struct {
	ID          string      `json:"id"`
	Type        ActorKind   `json:"type"`
	DisplayName string      `json:"displayName"`
	PublicKey   string      `json:"publicKey"` // base64 raw Ed25519, 32 bytes
	Roles       []string    `json:"roles"`
	Status      ActorStatus `json:"status"`

	// SupersedesID/SupersededBy form the succession chain used for key
	// rotation. At most one of a pair is set
	// on any given actor: the new actor's SupersedesID points back, the old
	// actor's SupersededBy points forward once it has been superseded.
	SupersedesID string `json:"supersedesId,omitempty"`
	SupersededBy string `json:"supersededBy,omitempty"`
}
