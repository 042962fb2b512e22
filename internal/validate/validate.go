package validate

import (
	"github.com/gitgovernance/core/internal/canonical"
	"github.com/gitgovernance/core/internal/crypto"
	"github.com/gitgovernance/core/internal/gerrors"
	"github.com/gitgovernance/core/internal/record"
	"github.com/gitgovernance/core/internal/schema"
)

func checksumPayload(payload any) (string, error) {
	return canonical.Checksum(payload)
}

// Result is the detailed-validation response shape:
// IsValid plus every field error found, not just the first.
type Result struct {
	IsValid bool
	Errors  []gerrors.FieldError
}

// SchemaValidate is layer 1: validateSchema(data) -> [bool, errors].
func SchemaValidate(schemaName string, payload any) (bool, []gerrors.FieldError, error) {
	s, ok := schema.Schemas[schemaName]
	if !ok {
		return false, nil, &schemaNotFoundError{Name: schemaName}
	}
	doc, err := toDoc(payload)
	if err != nil {
		return false, nil, err
	}
	v := schema.Default.Compile(s)
	errs := v.Validate(doc)
	return len(errs) == 0, errs, nil
}

// Detailed is layer 2: schema-validate and wrap the result as Result.
func Detailed(schemaName string, payload any) (Result, error) {
	ok, errs, err := SchemaValidate(schemaName, payload)
	if err != nil {
		return Result{}, err
	}
	return Result{IsValid: ok, Errors: errs}, nil
}

// DetailedOrError runs Detailed and, if invalid, returns a
// *gerrors.DetailedValidationError ready to propagate. recordType is the
// human name used in the error ("Task", "Actor", ...).
func DetailedOrError(schemaName, recordType string, payload any) error {
	res, err := Detailed(schemaName, payload)
	if err != nil {
		return err
	}
	if !res.IsValid {
		return gerrors.NewDetailedValidationError(recordType, res.Errors)
	}
	return nil
}

type schemaNotFoundError struct{ Name string }

func (e *schemaNotFoundError) Error() string { return "validate: unknown schema " + e.Name }

// FullEnvelope is layer 3: validateFullEmbeddedMetadataRecord. It
// schema-validates the envelope header and payload, recomputes the
// checksum, and verifies every signature, in that order, stopping at the
// first failing layer.
func FullEnvelope[T any](env record.Envelope[T], schemaName, recordType string, resolve crypto.PublicKeyResolver) error {
	if err := DetailedOrError("envelope", recordType, env.Header); err != nil {
		return err
	}
	if err := DetailedOrError(schemaName, recordType, env.Payload); err != nil {
		return err
	}

	checksum, err := checksumPayload(env.Payload)
	if err != nil {
		return err
	}
	if checksum != env.Header.PayloadChecksum {
		return &gerrors.ChecksumMismatchError{
			RecordType: recordType,
			Expected:   env.Header.PayloadChecksum,
			Actual:     checksum,
		}
	}

	if !crypto.VerifyEnvelopeSignatures(env.Header.Signatures, env.Header.PayloadChecksum, resolve) {
		return &gerrors.SignatureVerificationError{
			RecordType: recordType,
			KeyID:      firstKeyID(env.Header.Signatures),
			Reason:     "one or more signatures failed to verify or the signer's key could not be resolved",
		}
	}
	return nil
}

func firstKeyID(sigs []crypto.Signature) string {
	if len(sigs) == 0 {
		return ""
	}
	return sigs[0].KeyID
}
