// Package gerrors defines the typed error taxonomy shared across the
// GitGovernance core: factories, validators, stores, the workflow engine,
// and the backlog engine all return (or wrap) one of these kinds so callers
// can match with errors.As/errors.Is instead of parsing messages.
package gerrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for conditions that carry no extra structured data.
var (
	// ErrRecordNotFound is returned when a referenced record does not exist
	// in the store.
	ErrRecordNotFound = errors.New("record not found")

	// ErrProjectRoot is returned when the .gitgov project root could not be
	// located by walking up from the working directory.
	ErrProjectRoot = errors.New("could not locate .gitgov project root")

	// ErrCurrentActorUnresolved is returned when no current-actor id could be
	// determined from config or environment, or the id it names does not
	// resolve to a known actor.
	ErrCurrentActorUnresolved = errors.New("could not resolve current actor")

	// ErrSuccessionUnresolved is returned when following an actor's
	// supersededBy chain never reaches an active (and, for agents,
	// type=agent) terminal actor.
	ErrSuccessionUnresolved = errors.New("actor succession chain did not resolve to an active actor")
)

// FieldError describes a single validation failure on a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
}

// DetailedValidationError carries every validation failure discovered for a
// single record, not just the first. RecordType names the payload type
// (Task, Actor, Cycle, ...).
type DetailedValidationError struct {
	RecordType string
	Errors     []FieldError
}

func NewDetailedValidationError(recordType string, errs []FieldError) *DetailedValidationError {
	return &DetailedValidationError{RecordType: recordType, Errors: errs}
}

func (e *DetailedValidationError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("%s: validation failed", e.RecordType)
	}
	return fmt.Sprintf("%s: validation failed (%d error(s)), first: %s: %s",
		e.RecordType, len(e.Errors), e.Errors[0].Field, e.Errors[0].Message)
}

// ChecksumMismatchError is returned when an envelope's declared
// payloadChecksum does not match SHA256(canonicalize(payload)).
type ChecksumMismatchError struct {
	RecordType string
	Expected   string
	Actual     string
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("%s: checksum mismatch: envelope declares %s, recomputed %s",
		e.RecordType, e.Expected, e.Actual)
}

// SignatureVerificationError is returned when at least one envelope
// signature failed to verify, or its signer's public key could not be
// resolved.
type SignatureVerificationError struct {
	RecordType string
	KeyID      string
	Reason     string
}

func (e *SignatureVerificationError) Error() string {
	return fmt.Sprintf("%s: signature from %q failed to verify: %s", e.RecordType, e.KeyID, e.Reason)
}

// RequiredFieldError is a shorthand wrapper used by factories when invoked
// without a field they cannot default.
type RequiredFieldError struct {
	RecordType string
	Field      string
}

func (e *RequiredFieldError) Error() string {
	return fmt.Sprintf("%s: field %q is required", e.RecordType, e.Field)
}

// ProtocolViolationError is returned when a workflow transition is not
// permitted by the loaded methodology. ViolationType is an educational tag
// ("no_author_signature", "wrong_source_state", "use_reject", ...).
type ProtocolViolationError struct {
	ViolationType string
	Message       string
}

func (e *ProtocolViolationError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("protocol violation: %s", e.ViolationType)
	}
	return fmt.Sprintf("protocol violation (%s): %s", e.ViolationType, e.Message)
}

func NewProtocolViolationError(violationType, message string) *ProtocolViolationError {
	return &ProtocolViolationError{ViolationType: violationType, Message: message}
}

// InvalidIdError is returned when a store id fails path-safety checks.
type InvalidIdError struct {
	ID     string
	Reason string
}

func (e *InvalidIdError) Error() string {
	return fmt.Sprintf("invalid id %q: %s", e.ID, e.Reason)
}

// RecordNotFoundError carries the type and id of the missing record, for
// callers that want more than the sentinel ErrRecordNotFound.
type RecordNotFoundError struct {
	RecordType string
	ID         string
}

func (e *RecordNotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.RecordType, e.ID)
}

func (e *RecordNotFoundError) Unwrap() error {
	return ErrRecordNotFound
}

// ProjectRootError wraps ErrProjectRoot with the path that was searched.
type ProjectRootError struct {
	SearchedFrom string
}

func (e *ProjectRootError) Error() string {
	return fmt.Sprintf("could not locate .gitgov project root above %q", e.SearchedFrom)
}

func (e *ProjectRootError) Unwrap() error {
	return ErrProjectRoot
}
