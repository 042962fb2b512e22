package backlog

import (
	"github.com/gitgovernance/core/internal/factory"
	"github.com/gitgovernance/core/internal/record"
	"github.com/gitgovernance/core/internal/validate"
)

// CreateCycle builds, signs, validates, and persists a new Cycle record in
// status=planning.
func (e *Engine) CreateCycle(input record.CyclePayload) (record.Envelope[record.CyclePayload], error) {
	if _, err := e.currentActor(); err != nil {
		return record.Envelope[record.CyclePayload]{}, err
	}

	env, err := factory.NewCycleEnvelope(input, e.PrivateKey, e.KeyID, "author", "created")
	if err != nil {
		return record.Envelope[record.CyclePayload]{}, err
	}
	if err := validate.ValidateFullCycleRecord(env, e.publicKeyResolver()); err != nil {
		return record.Envelope[record.CyclePayload]{}, err
	}
	if err := e.Cycles.Put(env.Payload.ID, env); err != nil {
		return record.Envelope[record.CyclePayload]{}, err
	}
	return env, nil
}

// AddChildCycle appends childID to cycle parentID's childCycleIds.
func (e *Engine) AddChildCycle(parentID, childID string) (record.Envelope[record.CyclePayload], error) {
	parent, err := e.loadCycle(parentID)
	if err != nil {
		return record.Envelope[record.CyclePayload]{}, err
	}
	if _, err := e.loadCycle(childID); err != nil {
		return record.Envelope[record.CyclePayload]{}, err
	}

	payload := parent.Payload
	if containsString(payload.ChildCycleIDs, childID) {
		return parent, nil
	}
	payload.ChildCycleIDs = append(append([]string{}, payload.ChildCycleIDs...), childID)

	return e.putCycle(parentID, parent.Header.Signatures, payload)
}

// AddTaskToCycle links taskID into cycleID's taskIds and cycleID into
// taskID's cycleIds in one logical operation, keeping both sides of the
// linkage in sync.
func (e *Engine) AddTaskToCycle(taskID, cycleID string) (record.Envelope[record.TaskPayload], record.Envelope[record.CyclePayload], error) {
	task, err := e.loadTask(taskID)
	if err != nil {
		return record.Envelope[record.TaskPayload]{}, record.Envelope[record.CyclePayload]{}, err
	}
	cycle, err := e.loadCycle(cycleID)
	if err != nil {
		return record.Envelope[record.TaskPayload]{}, record.Envelope[record.CyclePayload]{}, err
	}

	taskPayload := task.Payload
	if !containsString(taskPayload.CycleIDs, cycleID) {
		taskPayload.CycleIDs = append(append([]string{}, taskPayload.CycleIDs...), cycleID)
	}
	cyclePayload := cycle.Payload
	if !containsString(cyclePayload.TaskIDs, taskID) {
		cyclePayload.TaskIDs = append(append([]string{}, cyclePayload.TaskIDs...), taskID)
	}

	newTask, err := e.putTask(taskID, task.Header.Signatures, taskPayload)
	if err != nil {
		return record.Envelope[record.TaskPayload]{}, record.Envelope[record.CyclePayload]{}, err
	}
	newCycle, err := e.putCycle(cycleID, cycle.Header.Signatures, cyclePayload)
	if err != nil {
		// Roll back the task-side write so the pair stays consistent
		// (copy-then-swap discipline).
		_ = e.Tasks.Put(taskID, task)
		return record.Envelope[record.TaskPayload]{}, record.Envelope[record.CyclePayload]{}, err
	}
	return newTask, newCycle, nil
}

// RemoveTaskFromCycle is AddTaskToCycle's inverse.
func (e *Engine) RemoveTaskFromCycle(taskID, cycleID string) (record.Envelope[record.TaskPayload], record.Envelope[record.CyclePayload], error) {
	task, err := e.loadTask(taskID)
	if err != nil {
		return record.Envelope[record.TaskPayload]{}, record.Envelope[record.CyclePayload]{}, err
	}
	cycle, err := e.loadCycle(cycleID)
	if err != nil {
		return record.Envelope[record.TaskPayload]{}, record.Envelope[record.CyclePayload]{}, err
	}

	taskPayload := task.Payload
	taskPayload.CycleIDs = removeString(taskPayload.CycleIDs, cycleID)
	cyclePayload := cycle.Payload
	cyclePayload.TaskIDs = removeString(cyclePayload.TaskIDs, taskID)

	newTask, err := e.putTask(taskID, task.Header.Signatures, taskPayload)
	if err != nil {
		return record.Envelope[record.TaskPayload]{}, record.Envelope[record.CyclePayload]{}, err
	}
	newCycle, err := e.putCycle(cycleID, cycle.Header.Signatures, cyclePayload)
	if err != nil {
		_ = e.Tasks.Put(taskID, task)
		return record.Envelope[record.TaskPayload]{}, record.Envelope[record.CyclePayload]{}, err
	}
	return newTask, newCycle, nil
}

// MoveTaskBetweenCycles removes taskID from fromCycleID and adds it to
// toCycleID as a single logical operation: if the add half fails, the
// remove half is rolled back so the task never ends up belonging to
// neither cycle.
func (e *Engine) MoveTaskBetweenCycles(taskID, fromCycleID, toCycleID string) (record.Envelope[record.TaskPayload], error) {
	beforeTask, err := e.loadTask(taskID)
	if err != nil {
		return record.Envelope[record.TaskPayload]{}, err
	}
	beforeFromCycle, err := e.loadCycle(fromCycleID)
	if err != nil {
		return record.Envelope[record.TaskPayload]{}, err
	}

	if _, _, err := e.RemoveTaskFromCycle(taskID, fromCycleID); err != nil {
		return record.Envelope[record.TaskPayload]{}, err
	}

	newTask, _, err := e.AddTaskToCycle(taskID, toCycleID)
	if err != nil {
		// Roll back the removal: restore both records to their pre-move state.
		_ = e.Tasks.Put(taskID, beforeTask)
		_ = e.Cycles.Put(fromCycleID, beforeFromCycle)
		return record.Envelope[record.TaskPayload]{}, err
	}
	return newTask, nil
}

func containsString(list []string, target string) bool {
	for _, v := range list {
		if v == target {
			return true
		}
	}
	return false
}

func removeString(list []string, target string) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		if v != target {
			out = append(out, v)
		}
	}
	return out
}
