// Package workflow loads a methodology document and authorizes state
// transitions against it. The document shape and its YAML loading/
// validation idiom are adapted from a goal-file loader (GoalFile/LoadGoals/
// ValidationError): both solve "parse a versioned YAML document describing
// a set of named, weighted rules, then validate it structurally before
// anything downstream trusts it."
package workflow

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SignatureBucket is one named signature requirement within a transition:
// at least MinApprovals distinct signers, each holding one of
// CapabilityRoles.
type SignatureBucket struct {
	MinApprovals    int      `yaml:"min_approvals"`
	CapabilityRoles []string `yaml:"capability_roles"`
}

// CustomRuleValidation names the built-in evaluators a custom rule can
// invoke; "custom" defers entirely to the caller-supplied evaluator.
type CustomRuleValidation string

const (
	ValidationAssignmentRequired CustomRuleValidation = "assignment_required"
	ValidationSprintCapacity     CustomRuleValidation = "sprint_capacity"
	ValidationEpicComplexity     CustomRuleValidation = "epic_complexity"
	ValidationCustom             CustomRuleValidation = "custom"
)

// CustomRule is a named rule a transition can require satisfied, beyond
// signatures and events.
type CustomRule struct {
	ID         string                `yaml:"id"`
	Validation CustomRuleValidation  `yaml:"validation"`
	Params     map[string]any        `yaml:"params,omitempty"`
}

// StateTransition is one row of the methodology's transition table. From
// lists every source state the transition is legal from (the default
// methodology's "active,review -> paused" row needs two).
type StateTransition struct {
	From []string `yaml:"from"`
	To   string   `yaml:"to"`

	// Trigger is the operation name that fires this transition ("submit",
	// "approve", "activate", "complete", "delete"); empty for
	// event-only transitions.
	Trigger string `yaml:"trigger,omitempty"`

	// RequiresEvent names an engine-confirmed event ("first_execution_created",
	// "changelog_created", "blocking_feedback_created") that must have
	// occurred for the transition to be legal.
	RequiresEvent string `yaml:"requires_event,omitempty"`

	// RequiresCommand, when set, must equal the triggering operation's
	// command name (redundant with Trigger for most rows; kept distinct
	// because a loaded methodology may rename triggers without changing
	// the authorization contract).
	RequiresCommand string `yaml:"requires_command,omitempty"`

	// CreatorOnly restricts the transition to the record's original
	// creator (draft -> discarded).
	CreatorOnly bool `yaml:"creator_only,omitempty"`

	SignatureBuckets map[string]SignatureBucket `yaml:"signature_buckets,omitempty"`
	CustomRuleIDs    []string                   `yaml:"custom_rules,omitempty"`
}

// ViewConfig is an opaque presentation hint for projector rendering; the
// engine itself never interprets it.
type ViewConfig map[string]any

// Document is a parsed methodology: the state machine plus its named custom
// rules and view configs.
type Document struct {
	Version          int                   `yaml:"version"`
	Name             string                `yaml:"name,omitempty"`
	StateTransitions []StateTransition     `yaml:"state_transitions"`
	CustomRules      []CustomRule          `yaml:"custom_rules,omitempty"`
	ViewConfigs      map[string]ViewConfig `yaml:"view_configs,omitempty"`
}

// CustomRuleByID finds a methodology's custom rule definition by id.
func (d *Document) CustomRuleByID(id string) (CustomRule, bool) {
	for _, r := range d.CustomRules {
		if r.ID == id {
			return r, true
		}
	}
	return CustomRule{}, false
}

// ValidationError describes a structural problem with a loaded methodology
// document.
type ValidationError struct {
	Index   int
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("state_transitions[%d] field %q: %s", e.Index, e.Field, e.Message)
}

// LoadMethodology reads and parses a methodology YAML file.
func LoadMethodology(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseMethodology(data)
}

// ParseMethodology parses methodology YAML from memory, used by LoadMethodology
// and directly by callers that already have the bytes (e.g. embedded config).
func ParseMethodology(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing methodology: %w", err)
	}
	if doc.Version == 0 {
		doc.Version = 1
	}
	return &doc, nil
}

// Validate checks a Document for structural correctness: every transition
// names a trigger, an event, or is creator-only (it must be reachable by
// *something*), and every referenced custom rule id exists.
func Validate(doc *Document) []ValidationError {
	var errs []ValidationError
	known := make(map[string]bool, len(doc.CustomRules))
	for _, r := range doc.CustomRules {
		known[r.ID] = true
	}

	for i, t := range doc.StateTransitions {
		if len(t.From) == 0 {
			errs = append(errs, ValidationError{Index: i, Field: "from", Message: "required"})
		}
		if t.To == "" {
			errs = append(errs, ValidationError{Index: i, Field: "to", Message: "required"})
		}
		if t.Trigger == "" && t.RequiresEvent == "" && !t.CreatorOnly {
			errs = append(errs, ValidationError{Index: i, Field: "trigger", Message: "a transition needs a trigger, requires_event, or creator_only"})
		}
		for _, ruleID := range t.CustomRuleIDs {
			if !known[ruleID] {
				errs = append(errs, ValidationError{Index: i, Field: "custom_rules", Message: fmt.Sprintf("unknown custom rule %q", ruleID)})
			}
		}
		for name, bucket := range t.SignatureBuckets {
			if bucket.MinApprovals < 1 {
				errs = append(errs, ValidationError{Index: i, Field: "signature_buckets." + name, Message: "min_approvals must be >= 1"})
			}
			if len(bucket.CapabilityRoles) == 0 {
				errs = append(errs, ValidationError{Index: i, Field: "signature_buckets." + name, Message: "capability_roles must be non-empty"})
			}
		}
	}
	return errs
}
