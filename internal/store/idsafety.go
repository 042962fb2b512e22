package store

import (
	"strings"

	"github.com/gitgovernance/core/internal/gerrors"
)

// ValidateID enforces the path-safety rules every store id must satisfy:
// non-empty, no path separator, no "..". A single "." is
// permitted (actor ids look like "human.alice" once ":" is replaced for
// filenames, or may legitimately contain one as in "human:alice"). Every
// store operation — including reads — runs this check first so a hostile
// id never reaches the filesystem.
func ValidateID(id string) error {
	if id == "" {
		return &gerrors.InvalidIdError{ID: id, Reason: "id must not be empty"}
	}
	if strings.ContainsAny(id, `/\`) {
		return &gerrors.InvalidIdError{ID: id, Reason: "id must not contain a path separator"}
	}
	if strings.Contains(id, "..") {
		return &gerrors.InvalidIdError{ID: id, Reason: `id must not contain ".."`}
	}
	return nil
}
