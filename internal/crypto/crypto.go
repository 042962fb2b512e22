// Package crypto provides the Ed25519 signing primitives every GitGovernance
// record envelope is built on: keypair generation, signature production over
// a structured digest, and signature verification against a caller-supplied
// public-key resolver. Nothing here touches disk or git; key storage
// conventions belong to the front-end.
package crypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/gitgovernance/core/internal/canonical"
)

// Signature is the envelope signature object: an actor's attestation over a
// payload checksum plus the role/notes/timestamp it was made under.
type Signature struct {
	KeyID     string `json:"keyId"`
	Role      string `json:"role"`
	Notes     string `json:"notes"`
	Signature string `json:"signature"` // base64 raw Ed25519 signature (64 bytes)
	Timestamp int64  `json:"timestamp"` // unix seconds
}

// GenerateKeypair creates a new Ed25519 keypair. publicKey is the raw
// 32-byte key, base64-encoded (44 chars). privateKey is the raw 64-byte
// seed+key, base64-encoded; it is opaque to every other package and accepted
// back only by Sign.
func GenerateKeypair() (publicKey string, privateKey string, err error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return "", "", fmt.Errorf("crypto: generate keypair: %w", err)
	}
	return base64.StdEncoding.EncodeToString(pub), base64.StdEncoding.EncodeToString(priv), nil
}

// decodePrivateKey parses the base64 form returned by GenerateKeypair back
// into an ed25519.PrivateKey.
func decodePrivateKey(encoded string) (ed25519.PrivateKey, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("crypto: decode private key: %w", err)
	}
	if len(raw) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("crypto: private key has %d bytes, want %d", len(raw), ed25519.PrivateKeySize)
	}
	return ed25519.PrivateKey(raw), nil
}

// decodePublicKey parses a base64 raw 32-byte Ed25519 public key, the form
// stored on every Actor record.
func decodePublicKey(encoded string) (ed25519.PublicKey, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("crypto: decode public key: %w", err)
	}
	if len(raw) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("crypto: public key has %d bytes, want %d", len(raw), ed25519.PublicKeySize)
	}
	return ed25519.PublicKey(raw), nil
}

// Digest reconstructs the string every signature actually signs:
// "{checksum}:{keyId}:{role}:{notes}:{timestamp}", then returns its SHA-256.
// Both Sign and Verify build the digest this same way so neither can drift.
func Digest(checksum, keyID, role, notes string, timestamp int64) [32]byte {
	s := fmt.Sprintf("%s:%s:%s:%s:%d", checksum, keyID, role, notes, timestamp)
	return sha256.Sum256([]byte(s))
}

// Sign computes the payload checksum, builds the signing digest, and
// produces a Signature with privateKey (the base64 form from
// GenerateKeypair). The timestamp is captured at signing time and travels
// with the signature so any verifier can reconstruct the same digest later.
func Sign(payload any, privateKey, keyID, role, notes string) (Signature, error) {
	checksum, err := canonical.Checksum(payload)
	if err != nil {
		return Signature{}, fmt.Errorf("crypto: sign: %w", err)
	}

	priv, err := decodePrivateKey(privateKey)
	if err != nil {
		return Signature{}, err
	}

	timestamp := time.Now().Unix()
	digest := Digest(checksum, keyID, role, notes, timestamp)
	sig := ed25519.Sign(priv, digest[:])

	return Signature{
		KeyID:     keyID,
		Role:      role,
		Notes:     notes,
		Signature: base64.StdEncoding.EncodeToString(sig),
		Timestamp: timestamp,
	}, nil
}

// VerifySignature checks a single signature against a known payload
// checksum (taken from the envelope header, never recomputed here — that is
// a separate step, see internal/validate) and the signer's raw base64
// public key.
func VerifySignature(sig Signature, payloadChecksum, publicKey string) bool {
	pub, err := decodePublicKey(publicKey)
	if err != nil {
		return false
	}
	rawSig, err := base64.StdEncoding.DecodeString(sig.Signature)
	if err != nil || len(rawSig) != ed25519.SignatureSize {
		return false
	}
	digest := Digest(payloadChecksum, sig.KeyID, sig.Role, sig.Notes, sig.Timestamp)
	return ed25519.Verify(pub, digest[:], rawSig)
}

// PublicKeyResolver looks up an actor's current raw base64 public key by
// keyId. It returns ok=false when the keyId is unknown — an unresolvable
// keyId is a verification failure, not an error condition.
type PublicKeyResolver func(keyID string) (publicKey string, ok bool)

// VerifyEnvelopeSignatures verifies every signature in signatures against
// payloadChecksum, resolving each signer's public key through resolve.
// Verification succeeds only if every signature verifies; a single failure
// or unresolvable keyId fails the whole envelope
func VerifyEnvelopeSignatures(signatures []Signature, payloadChecksum string, resolve PublicKeyResolver) bool {
	if len(signatures) == 0 {
		return false
	}
	for _, sig := range signatures {
		pub, ok := resolve(sig.KeyID)
		if !ok {
			return false
		}
		if !VerifySignature(sig, payloadChecksum, pub) {
			return false
		}
	}
	return true
}
