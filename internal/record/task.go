package record

// TaskStatus is one state in the task workflow state machine.
type TaskStatus string

const (
	TaskDraft     TaskStatus = "draft"
	TaskReview    TaskStatus = "review"
	TaskReady     TaskStatus = "ready"
	TaskActive    TaskStatus = "active"
	TaskDone      TaskStatus = "done"
	TaskArchived  TaskStatus = "archived"
	TaskPaused    TaskStatus = "paused"
	TaskDiscarded TaskStatus = "discarded"
)

// TaskPriority ranks a task's urgency.
type TaskPriority string

const (
	PriorityLow      TaskPriority = "low"
	PriorityMedium   TaskPriority = "medium"
	PriorityHigh     TaskPriority = "high"
	PriorityCritical TaskPriority = "critical"
)

// TaskPayload is the payload of a Task record. Records are append-only:
// status progresses by writing a new signed envelope for the same id, never
// by mutating one in place.
type TaskPayload struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`       // 3-150 chars
	Description string         `json:"description"` // >= 10 chars
	Status      TaskStatus     `json:"status"`
	Priority    TaskPriority   `json:"priority"`
	Tags        []string       `json:"tags"`
	CycleIDs    []string       `json:"cycleIds"`
	References  []string       `json:"references,omitempty"`
	Notes       []string       `json:"notes,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}
