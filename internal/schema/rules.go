package schema

import (
	"fmt"

	"github.com/gitgovernance/core/internal/gerrors"
)

// field reads doc[name] and reports whether the key was present at all
// (distinct from present-but-null, which callers of Required care about).
func field(doc map[string]any, name string) (any, bool) {
	v, ok := doc[name]
	return v, ok
}

// Required fails when the field is absent, nil, or an empty string.
type Required struct{ Field string }

func (r Required) Check(doc map[string]any) []gerrors.FieldError {
	v, ok := field(doc, r.Field)
	if !ok || v == nil {
		return []gerrors.FieldError{{Field: r.Field, Message: "is required", Value: v}}
	}
	if s, isStr := v.(string); isStr && s == "" {
		return []gerrors.FieldError{{Field: r.Field, Message: "is required", Value: v}}
	}
	return nil
}

// StringLen bounds a string field's length to [Min, Max]. Max == 0 means no
// upper bound. Absent fields are ignored — pair with Required if presence
// is also mandatory.
type StringLen struct {
	Field    string
	Min, Max int
}

func (r StringLen) Check(doc map[string]any) []gerrors.FieldError {
	v, ok := field(doc, r.Field)
	if !ok || v == nil {
		return nil
	}
	s, isStr := v.(string)
	if !isStr {
		return []gerrors.FieldError{{Field: r.Field, Message: "must be a string", Value: v}}
	}
	if len(s) < r.Min {
		return []gerrors.FieldError{{Field: r.Field, Message: fmt.Sprintf("must be at least %d characters", r.Min), Value: v}}
	}
	if r.Max > 0 && len(s) > r.Max {
		return []gerrors.FieldError{{Field: r.Field, Message: fmt.Sprintf("must be at most %d characters", r.Max), Value: v}}
	}
	return nil
}

// OneOf requires a string field's value to belong to a fixed set.
type OneOf struct {
	Field string
	Allowed []string
}

func (r OneOf) Check(doc map[string]any) []gerrors.FieldError {
	v, ok := field(doc, r.Field)
	if !ok || v == nil {
		return nil
	}
	s, isStr := v.(string)
	if !isStr {
		return []gerrors.FieldError{{Field: r.Field, Message: "must be a string", Value: v}}
	}
	for _, a := range r.Allowed {
		if s == a {
			return nil
		}
	}
	return []gerrors.FieldError{{Field: r.Field, Message: fmt.Sprintf("must be one of %v", r.Allowed), Value: v}}
}

// NonEmptyArray requires an array/slice field to have at least one element.
type NonEmptyArray struct{ Field string }

func (r NonEmptyArray) Check(doc map[string]any) []gerrors.FieldError {
	v, ok := field(doc, r.Field)
	if !ok || v == nil {
		return []gerrors.FieldError{{Field: r.Field, Message: "must be a non-empty array", Value: v}}
	}
	arr, isArr := v.([]any)
	if !isArr || len(arr) == 0 {
		return []gerrors.FieldError{{Field: r.Field, Message: "must be a non-empty array", Value: v}}
	}
	return nil
}

// Base64Key requires a field to decode as exactly wantBytes of raw base64
// (used for the 32-byte Ed25519 public key on Actor payloads).
type Base64Key struct {
	Field     string
	WantBytes int
}

func (r Base64Key) Check(doc map[string]any) []gerrors.FieldError {
	v, ok := field(doc, r.Field)
	if !ok || v == nil {
		return nil
	}
	s, isStr := v.(string)
	if !isStr {
		return []gerrors.FieldError{{Field: r.Field, Message: "must be a base64 string", Value: v}}
	}
	if n := decodedByteLen(s); n != r.WantBytes {
		return []gerrors.FieldError{{Field: r.Field, Message: fmt.Sprintf("must decode to %d bytes, got %d", r.WantBytes, n), Value: v}}
	}
	return nil
}

// Custom wraps an ad-hoc check function as a Rule, for constraints that
// don't fit the generic shapes above (cross-field rules, hex length, ...).
type Custom struct {
	Field string
	Fn    func(doc map[string]any) (bool, string)
}

func (r Custom) Check(doc map[string]any) []gerrors.FieldError {
	ok, msg := r.Fn(doc)
	if ok {
		return nil
	}
	v, _ := field(doc, r.Field)
	return []gerrors.FieldError{{Field: r.Field, Message: msg, Value: v}}
}
