package record

// AgentStatus tracks whether an agent is currently eligible to act.
type AgentStatus string

const (
	AgentStatusActive   AgentStatus = "active"
	AgentStatusInactive AgentStatus = "inactive"
)

// EngineType is the tagged-union discriminant for AgentEngine.
type EngineType string

const (
	EngineLocal  EngineType = "local"
	EngineAPI    EngineType = "api"
	EngineMCP    EngineType = "mcp"
	EngineCustom EngineType = "custom"
)

// AgentEngine describes how an agent is actually invoked. Type selects
// which of the variant-specific fields below are meaningful; callers
// dispatch on Type with an exhaustive switch rather than testing fields for
// zero values.
type AgentEngine struct {
	Type EngineType `json:"type"`

	// local: a subprocess command.
	Command string   `json:"command,omitempty"`
	Args    []string `json:"args,omitempty"`

	// api: a hosted model endpoint.
	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`
	Endpoint string `json:"endpoint,omitempty"`

	// mcp: an MCP server + tool pair.
	Server string `json:"server,omitempty"`
	Tool   string `json:"tool,omitempty"`

	// custom: anything else, opaque to the core.
	Config map[string]any `json:"config,omitempty"`
}

// AgentPayload is the payload of an Agent record. Its ID must match an
// existing Actor of type "agent" — the factory does not enforce this (it
// cannot look actors up); the backlog engine does at operation time.
type AgentPayload struct {
	ID     string      `json:"id"`
	Engine AgentEngine `json:"engine"`
	Status AgentStatus `json:"status"`

	Triggers                 []string       `json:"triggers"`
	KnowledgeDependencies    []string       `json:"knowledge_dependencies"`
	PromptEngineRequirements map[string]any `json:"prompt_engine_requirements"`

	Metadata map[string]any `json:"metadata,omitempty"`
}
