package health

import "sort"

// DriftResult describes how a single cycle's progress changed between two
// snapshots.
type DriftResult struct {
	CycleID       string  `json:"cycleId"`
	Title         string  `json:"title"`
	Before        float64 `json:"before"` // progress ratio, 0 if the cycle is new
	After         float64 `json:"after"`
	Delta         string  `json:"delta"` // "improved", "regressed", "unchanged"
	ProgressDelta float64 `json:"progressDelta"`
	TaskCount     int     `json:"taskCount"`
}

// ComputeDrift compares a baseline snapshot against a current snapshot and
// returns a DriftResult per cycle present in the current snapshot. Results
// are sorted with regressions first (by task count descending, the bigger
// cycle's regression matters more), then improvements, then unchanged.
func ComputeDrift(baseline, current *Snapshot) []DriftResult {
	baseByID := make(map[string]CycleSnapshot, len(baseline.Cycles))
	for _, c := range baseline.Cycles {
		baseByID[c.ID] = c
	}

	results := make([]DriftResult, 0, len(current.Cycles))
	for _, cur := range current.Cycles {
		results = append(results, computeCycleDrift(cur, baseByID))
	}

	sort.SliceStable(results, func(i, j int) bool {
		ri, rj := deltaRank(results[i].Delta), deltaRank(results[j].Delta)
		if ri != rj {
			return ri < rj
		}
		return results[i].TaskCount > results[j].TaskCount
	})

	return results
}

// classifyDelta determines the drift direction between two progress ratios.
// A cycle with no measurable movement (same ratio) is unchanged; anything
// else is improved or regressed by its sign.
func classifyDelta(before, after float64) string {
	switch {
	case after > before:
		return "improved"
	case after < before:
		return "regressed"
	default:
		return "unchanged"
	}
}

// computeCycleDrift computes the drift result for a single cycle.
func computeCycleDrift(cur CycleSnapshot, baseByID map[string]CycleSnapshot) DriftResult {
	dr := DriftResult{
		CycleID:   cur.ID,
		Title:     cur.Title,
		After:     cur.ProgressRatio,
		TaskCount: cur.TaskCount,
	}

	base, found := baseByID[cur.ID]
	if !found {
		dr.Delta = "unchanged"
		return dr
	}

	dr.Before = base.ProgressRatio
	dr.Delta = classifyDelta(base.ProgressRatio, cur.ProgressRatio)
	dr.ProgressDelta = cur.ProgressRatio - base.ProgressRatio
	return dr
}

// deltaRank returns a sort key: regressed=0, improved=1, unchanged=2.
func deltaRank(delta string) int {
	switch delta {
	case "regressed":
		return 0
	case "improved":
		return 1
	default:
		return 2
	}
}
