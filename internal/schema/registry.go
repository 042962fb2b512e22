package schema

// Default is the process-wide schema registry + validator cache: created
// lazily, never freed except by explicit ClearCache.
var Default = NewRegistry()

// Schemas maps logical schema name -> *Schema. Pointers are stable
// package-level values so Compile's reference-equality cache works.
var Schemas = map[string]*Schema{
	"envelope":   envelopeSchema,
	"actor":      actorSchema,
	"agent":      agentSchema,
	"task":       taskSchema,
	"cycle":      cycleSchema,
	"execution":  executionSchema,
	"changelog":  changelogSchema,
	"feedback":   feedbackSchema,
	"methodology.state_transition": methodologyTransitionSchema,
	"methodology.custom_rule":      methodologyCustomRuleSchema,
}

var envelopeSchema = &Schema{
	Name: "envelope",
	Rules: []Rule{
		Required{Field: "version"},
		Required{Field: "type"},
		OneOf{Field: "type", Allowed: []string{"actor", "agent", "task", "cycle", "execution", "changelog", "feedback"}},
		Custom{Field: "payloadChecksum", Fn: func(doc map[string]any) (bool, string) {
			v, _ := field(doc, "payloadChecksum")
			s, ok := v.(string)
			if !ok || len(s) != 64 {
				return false, "must be a 64-character lowercase hex string"
			}
			for _, c := range s {
				if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
					return false, "must be a 64-character lowercase hex string"
				}
			}
			return true, ""
		}},
		NonEmptyArray{Field: "signatures"},
	},
}

var actorSchema = &Schema{
	Name: "actor",
	Rules: []Rule{
		Required{Field: "id"},
		Required{Field: "type"},
		OneOf{Field: "type", Allowed: []string{"human", "agent"}},
		Required{Field: "displayName"},
		Required{Field: "publicKey"},
		Base64Key{Field: "publicKey", WantBytes: 32},
		NonEmptyArray{Field: "roles"},
		Required{Field: "status"},
		OneOf{Field: "status", Allowed: []string{"active", "revoked"}},
	},
}

var agentSchema = &Schema{
	Name: "agent",
	Rules: []Rule{
		Required{Field: "engine"},
		Required{Field: "status"},
		OneOf{Field: "status", Allowed: []string{"active", "inactive"}},
		Custom{Field: "engine", Fn: func(doc map[string]any) (bool, string) {
			engine, ok := doc["engine"].(map[string]any)
			if !ok {
				return false, "must be an object"
			}
			t, _ := engine["type"].(string)
			switch t {
			case "local", "api", "mcp", "custom":
				return true, ""
			default:
				return false, "type must be one of [local api mcp custom]"
			}
		}},
	},
}

var taskSchema = &Schema{
	Name: "task",
	Rules: []Rule{
		Required{Field: "id"},
		Required{Field: "title"},
		StringLen{Field: "title", Min: 3, Max: 150},
		Required{Field: "description"},
		StringLen{Field: "description", Min: 10},
		Required{Field: "status"},
		OneOf{Field: "status", Allowed: []string{"draft", "review", "ready", "active", "done", "archived", "paused", "discarded"}},
		Required{Field: "priority"},
		OneOf{Field: "priority", Allowed: []string{"low", "medium", "high", "critical"}},
	},
}

var cycleSchema = &Schema{
	Name: "cycle",
	Rules: []Rule{
		Required{Field: "id"},
		Required{Field: "title"},
		Required{Field: "status"},
		OneOf{Field: "status", Allowed: []string{"planning", "active", "completed", "archived"}},
	},
}

var executionSchema = &Schema{
	Name: "execution",
	Rules: []Rule{
		Required{Field: "id"},
		Required{Field: "taskId"},
		Required{Field: "type"},
		Required{Field: "title"},
		Required{Field: "result"},
		StringLen{Field: "result", Min: 10},
	},
}

var changelogSchema = &Schema{
	Name: "changelog",
	Rules: []Rule{
		Required{Field: "id"},
		Required{Field: "entityType"},
		Required{Field: "entityId"},
		Required{Field: "changeType"},
		Required{Field: "title"},
		Required{Field: "description"},
		Required{Field: "triggeredBy"},
		Required{Field: "reason"},
	},
}

var feedbackSchema = &Schema{
	Name: "feedback",
	Rules: []Rule{
		Required{Field: "id"},
		Required{Field: "entityType"},
		Required{Field: "entityId"},
		Required{Field: "type"},
		OneOf{Field: "type", Allowed: []string{"blocking", "suggestion", "question", "approval", "clarification", "assignment"}},
		Required{Field: "status"},
		OneOf{Field: "status", Allowed: []string{"open", "acknowledged", "resolved", "wontfix"}},
		Required{Field: "content"},
	},
}

// methodologyTransitionSchema validates one state_transitions entry of a
// loaded methodology document.
var methodologyTransitionSchema = &Schema{
	Name: "methodology.state_transition",
	Rules: []Rule{
		Required{Field: "from"},
		Required{Field: "to"},
		Required{Field: "trigger"},
	},
}

var methodologyCustomRuleSchema = &Schema{
	Name: "methodology.custom_rule",
	Rules: []Rule{
		Required{Field: "id"},
		Required{Field: "validation"},
		OneOf{Field: "validation", Allowed: []string{"assignment_required", "sprint_capacity", "epic_complexity", "custom"}},
	},
}
