package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gitgovernance/core/internal/crypto"
)

// localIdentity is the signer a CLI invocation acts as: the actor id a
// record's signatures carry as keyId, and the private key that signs them.
// It lives at <root>/.gitgov/identity.json, outside any record store.
type localIdentity struct {
	ActorID    string `json:"actorId"`
	PrivateKey string `json:"privateKey"`
}

func identityPath(root string) string {
	return filepath.Join(root, ".gitgov", "identity.json")
}

// loadLocalIdentity reads the signer identity.json created by `gitgov init`.
func loadLocalIdentity(root string) (*localIdentity, error) {
	data, err := os.ReadFile(identityPath(root))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no local identity found; run `gitgov init` first")
		}
		return nil, fmt.Errorf("read identity: %w", err)
	}
	var id localIdentity
	if err := json.Unmarshal(data, &id); err != nil {
		return nil, fmt.Errorf("parse identity: %w", err)
	}
	return &id, nil
}

// createLocalIdentity generates a fresh Ed25519 keypair, assigns actorID as
// its keyId, and writes it to disk. The caller is responsible for also
// registering actorID as an Actor record with the matching public key.
func createLocalIdentity(root, actorID string) (*localIdentity, string, error) {
	publicKey, privateKey, err := crypto.GenerateKeypair()
	if err != nil {
		return nil, "", fmt.Errorf("generate keypair: %w", err)
	}

	id := &localIdentity{ActorID: actorID, PrivateKey: privateKey}

	dir := filepath.Join(root, ".gitgov")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, "", fmt.Errorf("create %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(id, "", "  ")
	if err != nil {
		return nil, "", err
	}
	if err := os.WriteFile(identityPath(root), data, 0o600); err != nil {
		return nil, "", fmt.Errorf("write identity: %w", err)
	}

	return id, publicKey, nil
}
