// Package identity resolves "who is this keyId" and "who is this actor,
// really" — the two lookups every signature check and every authorization
// decision in the backlog engine and workflow package are built on. The
// succession-chain walk here is adapted from Candidate succession fields
// (SupersededBy/Supersedes/IsCurrent): a different record type solving the
// identical "follow the linked list of records to the current one" problem.
package identity

import (
	"fmt"
	"os"

	"github.com/gitgovernance/core/internal/crypto"
	"github.com/gitgovernance/core/internal/gerrors"
	"github.com/gitgovernance/core/internal/record"
)

// maxSuccessionHops bounds the supersededBy walk so a corrupt or cyclic
// chain fails fast instead of looping forever.
const maxSuccessionHops = 64

// ActorLookup is the minimal actor read surface identity needs. A
// store.Store[record.Envelope[record.ActorPayload]] satisfies this once its
// Get result's Payload is unwrapped by the caller; callers typically adapt
// their store with a small closure (see ActorLookupFunc).
type ActorLookup interface {
	GetActor(id string) (*record.ActorPayload, error)
}

// ActorLookupFunc adapts a plain function to ActorLookup.
type ActorLookupFunc func(id string) (*record.ActorPayload, error)

func (f ActorLookupFunc) GetActor(id string) (*record.ActorPayload, error) { return f(id) }

// PublicKeyProvider builds a crypto.PublicKeyResolver backed by lookup:
// it resolves keyId directly against an actor id and returns its public
// key. Succession is not followed here — a signature is checked against
// the key that actually produced it, not against whatever key currently
// supersedes it.
func PublicKeyProvider(lookup ActorLookup) crypto.PublicKeyResolver {
	return func(keyID string) (string, bool) {
		actor, err := lookup.GetActor(keyID)
		if err != nil || actor == nil {
			return "", false
		}
		return actor.PublicKey, true
	}
}

// ResolveEffectiveActor follows supersededBy from id until it reaches an
// actor with status=active, or runs out of chain. Returns
// ErrSuccessionUnresolved if the terminal actor found is not active, or the
// chain exceeds maxSuccessionHops (a cycle).
func ResolveEffectiveActor(lookup ActorLookup, id string) (*record.ActorPayload, error) {
	current := id
	for i := 0; i < maxSuccessionHops; i++ {
		actor, err := lookup.GetActor(current)
		if err != nil {
			return nil, err
		}
		if actor == nil {
			return nil, &gerrors.RecordNotFoundError{RecordType: "Actor", ID: current}
		}
		if actor.Status == record.ActorStatusActive {
			return actor, nil
		}
		if actor.SupersededBy == "" {
			return nil, fmt.Errorf("%w: %q is not active and has no successor", gerrors.ErrSuccessionUnresolved, current)
		}
		current = actor.SupersededBy
	}
	return nil, fmt.Errorf("%w: exceeded %d hops resolving %q (likely cyclic)", gerrors.ErrSuccessionUnresolved, maxSuccessionHops, id)
}

// ResolveEffectiveAgent is ResolveEffectiveActor with the additional
// requirement that the terminal actor be type=agent.
func ResolveEffectiveAgent(lookup ActorLookup, id string) (*record.ActorPayload, error) {
	actor, err := ResolveEffectiveActor(lookup, id)
	if err != nil {
		return nil, err
	}
	if actor.Type != record.ActorAgent {
		return nil, fmt.Errorf("%w: %q resolved to a non-agent actor", gerrors.ErrSuccessionUnresolved, id)
	}
	return actor, nil
}

// CurrentActorEnvVar is the environment variable GetCurrentActor falls back
// to when no actor id is otherwise configured.
const CurrentActorEnvVar = "GITGOV_ACTOR"

// GetCurrentActor resolves the operator's own Actor record: configuredID
// (the backlog engine passes its CurrentActorID) if non-empty,
// otherwise the GITGOV_ACTOR environment variable. Failure to determine or
// resolve an id is an error, never a zero-value actor.
func GetCurrentActor(lookup ActorLookup, configuredID string) (*record.ActorPayload, error) {
	id := configuredID
	if id == "" {
		id = os.Getenv(CurrentActorEnvVar)
	}
	if id == "" {
		return nil, fmt.Errorf("%w: no actor id configured and %s is unset", gerrors.ErrCurrentActorUnresolved, CurrentActorEnvVar)
	}

	actor, err := lookup.GetActor(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", gerrors.ErrCurrentActorUnresolved, err)
	}
	if actor == nil {
		return nil, fmt.Errorf("%w: actor %q not found", gerrors.ErrCurrentActorUnresolved, id)
	}
	return actor, nil
}
