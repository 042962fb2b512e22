package canonical

import (
	"crypto/sha256"
	"encoding/hex"
)

// Checksum returns the lowercase hex SHA-256 digest of the canonical
// encoding of payload — payloadChecksum = lowercase_hex(sha256(canonicalize(payload))).
func Checksum(payload any) (string, error) {
	b, err := Canonicalize(payload)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}
