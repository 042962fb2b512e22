// Package idgen generates the deterministic, slugified IDs assigned to
// records: "{unix-seconds}-{type}-{slug}" for timestamped records,
// "{human|agent}:{slug}" for actors. The slugging algorithm is adapted from
// a session-filename slugger (generateSlug/slugify/truncateSlug), which
// solved the same "turn free text into a short, stable, filesystem-safe
// token" problem for session artifact names.
package idgen

import (
	"fmt"
	"strings"
	"time"
)

const (
	// MaxSlugLength caps a generated slug so ids stay reasonably short file
	// names.
	MaxSlugLength = 50

	// MinWordBoundary is the minimum length before truncation prefers
	// cutting at a hyphen instead of mid-word.
	MinWordBoundary = 30
)

// Slugify lowercases text, replaces runs of non [a-z0-9] with a single
// hyphen, trims leading/trailing hyphens, and caps the result at
// MaxSlugLength (preferring to cut at a word boundary). Empty input or
// input with no alphanumeric characters yields "item".
func Slugify(text string) string {
	s := slugify(strings.ToLower(text))
	s = truncate(s)
	if s == "" {
		return "item"
	}
	return s
}

func slugify(input string) string {
	var b strings.Builder
	lastHyphen := false
	for _, r := range input {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}

func truncate(s string) string {
	if len(s) <= MaxSlugLength {
		return s
	}
	s = s[:MaxSlugLength]
	if idx := strings.LastIndex(s, "-"); idx > MinWordBoundary {
		s = s[:idx]
	}
	return s
}

// TimestampedID builds a "{unix-seconds}-{type}-{slug}" id for task, cycle,
// execution, changelog, and feedback records.
func TimestampedID(recordType, title string) string {
	return fmt.Sprintf("%d-%s-%s", time.Now().Unix(), recordType, Slugify(title))
}

// ActorID builds a "{human|agent}:{slug}" id for Actor records.
func ActorID(kind, displayName string) string {
	return fmt.Sprintf("%s:%s", kind, Slugify(displayName))
}

// ParseTimestampedID extracts the leading unix-seconds component from a
// "{unix-seconds}-{type}-{slug}" id, for callers (the projector's age/
// staleness calculations) that need a record's creation time without a
// dedicated timestamp field.
func ParseTimestampedID(id string) (unixSeconds int64, ok bool) {
	idx := strings.Index(id, "-")
	if idx <= 0 {
		return 0, false
	}
	n, err := fmt.Sscanf(id[:idx], "%d", &unixSeconds)
	if err != nil || n != 1 {
		return 0, false
	}
	return unixSeconds, true
}
