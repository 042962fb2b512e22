package record

// CycleStatus tracks a cycle's own lifecycle (planning -> active -> completed -> archived).
type CycleStatus string

const (
	CyclePlanning CycleStatus = "planning"
	CycleActive   CycleStatus = "active"
	CycleComplete CycleStatus = "completed"
	CycleArchived CycleStatus = "archived"
)

// CyclePayload is the payload of a Cycle record (a sprint or epic grouping
// tasks and, optionally, nested child cycles).
type CyclePayload struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Status        CycleStatus `json:"status"`
	TaskIDs       []string    `json:"taskIds"`
	ChildCycleIDs []string    `json:"childCycleIds"`
	Tags          []string    `json:"tags,omitempty"`
}
