package validate

import (
	"errors"

	"github.com/gitgovernance/core/internal/gerrors"
)

func asChecksumMismatch(err error) (*gerrors.ChecksumMismatchError, bool) {
	var target *gerrors.ChecksumMismatchError
	ok := errors.As(err, &target)
	return target, ok
}

func asSignatureError(err error) (*gerrors.SignatureVerificationError, bool) {
	var target *gerrors.SignatureVerificationError
	ok := errors.As(err, &target)
	return target, ok
}
