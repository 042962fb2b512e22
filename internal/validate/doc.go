// Package validate implements three-layer validation for every record type:
// schema validation, a detailed field-error report, and full envelope
// validation (schema + checksum + signatures).
package validate

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// toDoc round-trips v through JSON into a generic map[string]any so the
// schema package's rules (which only know how to walk decoded JSON) can
// inspect it, regardless of whether v is a typed struct or already a map.
func toDoc(v any) (map[string]any, error) {
	if m, ok := v.(map[string]any); ok {
		return m, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("validate: marshal: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("validate: decode: %w", err)
	}
	return doc, nil
}
