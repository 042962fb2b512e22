package crypto

import (
	"testing"

	"github.com/gitgovernance/core/internal/canonical"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	pub, priv, err := GenerateKeypair()
	if err != nil {
		t.Fatalf("generate keypair: %v", err)
	}

	payload := map[string]any{"id": "t-1", "title": "hello"}
	sig, err := Sign(payload, priv, "human:alice", "author", "initial")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	checksum, _ := canonical.Checksum(payload)
	if !VerifySignature(sig, checksum, pub) {
		t.Fatal("expected signature to verify")
	}
}

func TestVerifyFailsOnRoleTamper(t *testing.T) {
	pub, priv, err := GenerateKeypair()
	if err != nil {
		t.Fatalf("generate keypair: %v", err)
	}
	payload := map[string]any{"id": "t-1"}
	sig, err := Sign(payload, priv, "human:alice", "author", "initial")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	checksum, _ := canonical.Checksum(payload)

	tampered := sig
	tampered.Role = "approver"
	if VerifySignature(tampered, checksum, pub) {
		t.Fatal("expected verification to fail after role tamper")
	}
}

func TestVerifyEnvelopeSignatures_UnknownKeyFails(t *testing.T) {
	_, priv, _ := GenerateKeypair()
	payload := map[string]any{"id": "t-1"}
	sig, _ := Sign(payload, priv, "human:ghost", "author", "")
	checksum, _ := canonical.Checksum(payload)

	ok := VerifyEnvelopeSignatures([]Signature{sig}, checksum, func(string) (string, bool) {
		return "", false
	})
	if ok {
		t.Fatal("expected verification to fail for unresolvable keyId")
	}
}
