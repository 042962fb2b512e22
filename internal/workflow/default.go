package workflow

// DefaultMethodology returns the task state machine describes
// when no project-specific methodology is configured.
func DefaultMethodology() *Document {
	return &Document{
		Version: 1,
		Name:    "default",
		CustomRules: []CustomRule{
			{ID: "assignment-exists", Validation: ValidationAssignmentRequired},
		},
		StateTransitions: []StateTransition{
			{
				From:    []string{"draft"},
				To:      "review",
				Trigger: "submit",
				SignatureBuckets: map[string]SignatureBucket{
					"__default__": {MinApprovals: 1, CapabilityRoles: []string{"author"}},
				},
			},
			{
				From:    []string{"review"},
				To:      "ready",
				Trigger: "approve",
				SignatureBuckets: map[string]SignatureBucket{
					"__default__": {MinApprovals: 1, CapabilityRoles: []string{"approver"}},
				},
			},
			{
				From:          []string{"ready"},
				To:            "active",
				Trigger:       "activate",
				RequiresEvent: "first_execution_created",
				CustomRuleIDs: []string{"assignment-exists"},
			},
			{
				From:    []string{"active"},
				To:      "done",
				Trigger: "complete",
				SignatureBuckets: map[string]SignatureBucket{
					"__default__": {MinApprovals: 1, CapabilityRoles: []string{"approver:quality"}},
				},
			},
			{
				From:          []string{"done"},
				To:            "archived",
				RequiresEvent: "changelog_created",
			},
			{
				From:          []string{"active", "review"},
				To:            "paused",
				RequiresEvent: "blocking_feedback_created",
			},
			{
				From:        []string{"draft"},
				To:          "discarded",
				Trigger:     "delete",
				CreatorOnly: true,
			},
		},
	}
}
