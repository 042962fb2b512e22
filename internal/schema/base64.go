package schema

import "encoding/base64"

// decodedByteLen returns the number of bytes s decodes to as standard
// base64, or -1 if it doesn't decode.
func decodedByteLen(s string) int {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return -1
	}
	return len(raw)
}
