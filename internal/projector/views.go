// Package projector derives read-only views over the record set: tasks and
// cycles enriched with age/staleness/rollup fields, and the project-wide
// health metrics those enrichments aggregate into. Nothing here writes to a
// store or signs anything; given the same records and the same "now" it
// always produces the same output.
package projector

import (
	"sort"
	"time"

	"github.com/gitgovernance/core/internal/idgen"
	"github.com/gitgovernance/core/internal/record"
	"github.com/gitgovernance/core/internal/worker"
)

// TaskView is a Task enriched with derived, point-in-time fields that have
// no place in the signed payload itself.
type TaskView struct {
	record.TaskPayload
	AgeDays     float64  `json:"ageDays"`
	Stale       bool     `json:"stale"`
	AtRisk      bool     `json:"atRisk"`
	CycleTitles []string `json:"cycleTitles,omitempty"`
}

// CycleView is a Cycle enriched with a rollup of its tasks' statuses.
type CycleView struct {
	record.CyclePayload
	TaskCount     int     `json:"taskCount"`
	DoneCount     int     `json:"doneCount"`
	ActiveCount   int     `json:"activeCount"`
	ProgressRatio float64 `json:"progressRatio"`
}

// HealthMetrics summarizes the whole projected task set, the way a snapshot
// summary rolls up pass/fail/skip counts into one score.
type HealthMetrics struct {
	TotalTasks   int     `json:"totalTasks"`
	DoneTasks    int     `json:"doneTasks"`
	ActiveTasks  int     `json:"activeTasks"`
	StalledTasks int     `json:"stalledTasks"`
	AtRiskTasks  int     `json:"atRiskTasks"`
	DoneRatio    float64 `json:"doneRatio"`
}

// Result is everything one projection pass produces.
type Result struct {
	Tasks   []TaskView
	Cycles  []CycleView
	Health  HealthMetrics
	Stalled []string // task ids, most-stale first
	AtRisk  []string // task ids, most-stale first
}

// nonTerminalTaskStatus reports whether status is a status a task can still
// go stale in. Done, archived, and discarded tasks are resting states.
func nonTerminalTaskStatus(s record.TaskStatus) bool {
	switch s {
	case record.TaskDone, record.TaskArchived, record.TaskDiscarded:
		return false
	default:
		return true
	}
}

// Project builds the enriched view set for tasks and cycles as of now. It
// never reads a store directly; callers load envelopes and pass the
// payloads in, which keeps this package pure and trivially testable.
func Project(tasks []record.TaskPayload, cycles []record.CyclePayload, now time.Time, cfg Config) Result {
	cfg = cfg.normalized()

	cycleByID := make(map[string]record.CyclePayload, len(cycles))
	for _, c := range cycles {
		cycleByID[c.ID] = c
	}

	ids := make([]string, len(tasks))
	taskByID := make(map[string]record.TaskPayload, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
		taskByID[t.ID] = t
	}

	pool := worker.NewPool[TaskView](0)
	results := pool.Process(ids, func(id string) (TaskView, error) {
		return enrichTask(taskByID[id], cycleByID, now, cfg), nil
	})

	views := make([]TaskView, len(results))
	for i, r := range results {
		views[i] = r.Value
	}

	cycleViews := make([]CycleView, len(cycles))
	for i, c := range cycles {
		cycleViews[i] = enrichCycle(c, taskByID)
	}

	health := computeHealth(views)
	stalled, atRisk := rankByAge(views)

	return Result{
		Tasks:   views,
		Cycles:  cycleViews,
		Health:  health,
		Stalled: stalled,
		AtRisk:  atRisk,
	}
}

func enrichTask(t record.TaskPayload, cycleByID map[string]record.CyclePayload, now time.Time, cfg Config) TaskView {
	view := TaskView{TaskPayload: t}

	created, ok := idgen.ParseTimestampedID(t.ID)
	if ok {
		age := now.Sub(time.Unix(created, 0))
		view.AgeDays = age.Hours() / 24
		if nonTerminalTaskStatus(t.Status) {
			view.Stale = age >= cfg.StaleAfter
			view.AtRisk = !view.Stale && age >= cfg.AtRiskAfter
		}
	}

	for _, cid := range t.CycleIDs {
		if c, ok := cycleByID[cid]; ok {
			view.CycleTitles = append(view.CycleTitles, c.Title)
		}
	}
	return view
}

func enrichCycle(c record.CyclePayload, taskByID map[string]record.TaskPayload) CycleView {
	view := CycleView{CyclePayload: c, TaskCount: len(c.TaskIDs)}
	for _, tid := range c.TaskIDs {
		t, ok := taskByID[tid]
		if !ok {
			continue
		}
		switch t.Status {
		case record.TaskDone, record.TaskArchived:
			view.DoneCount++
		case record.TaskActive:
			view.ActiveCount++
		}
	}
	if view.TaskCount > 0 {
		view.ProgressRatio = float64(view.DoneCount) / float64(view.TaskCount)
	}
	return view
}

func computeHealth(views []TaskView) HealthMetrics {
	h := HealthMetrics{TotalTasks: len(views)}
	for _, v := range views {
		switch v.Status {
		case record.TaskDone, record.TaskArchived:
			h.DoneTasks++
		case record.TaskActive:
			h.ActiveTasks++
		}
		if v.Stale {
			h.StalledTasks++
		}
		if v.AtRisk {
			h.AtRiskTasks++
		}
	}
	if h.TotalTasks > 0 {
		h.DoneRatio = float64(h.DoneTasks) / float64(h.TotalTasks)
	}
	return h
}

// rankByAge returns stalled and at-risk task ids, oldest first — the same
// "worst first" ordering ComputeDrift uses for regressions.
func rankByAge(views []TaskView) (stalled, atRisk []string) {
	sorted := append([]TaskView{}, views...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].AgeDays > sorted[j].AgeDays
	})
	for _, v := range sorted {
		if v.Stale {
			stalled = append(stalled, v.ID)
		} else if v.AtRisk {
			atRisk = append(atRisk, v.ID)
		}
	}
	return stalled, atRisk
}
