package health

import "testing"

func makeSnap(cycles []CycleSnapshot) *Snapshot {
	return &Snapshot{Cycles: cycles}
}

func TestComputeDrift_Improved(t *testing.T) {
	baseline := makeSnap([]CycleSnapshot{
		{ID: "cycle-a", ProgressRatio: 0.2, TaskCount: 5},
	})
	current := makeSnap([]CycleSnapshot{
		{ID: "cycle-a", ProgressRatio: 0.6, TaskCount: 5},
	})
	results := ComputeDrift(baseline, current)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Delta != "improved" {
		t.Errorf("Delta = %q, want improved", results[0].Delta)
	}
	if results[0].Before != 0.2 {
		t.Errorf("Before = %v, want 0.2", results[0].Before)
	}
	if results[0].After != 0.6 {
		t.Errorf("After = %v, want 0.6", results[0].After)
	}
}

func TestComputeDrift_Regressed(t *testing.T) {
	baseline := makeSnap([]CycleSnapshot{
		{ID: "cycle-b", ProgressRatio: 0.8, TaskCount: 3},
	})
	current := makeSnap([]CycleSnapshot{
		{ID: "cycle-b", ProgressRatio: 0.3, TaskCount: 3},
	})
	results := ComputeDrift(baseline, current)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Delta != "regressed" {
		t.Errorf("Delta = %q, want regressed", results[0].Delta)
	}
}

func TestComputeDrift_Unchanged(t *testing.T) {
	baseline := makeSnap([]CycleSnapshot{
		{ID: "cycle-c", ProgressRatio: 0.5, TaskCount: 2},
	})
	current := makeSnap([]CycleSnapshot{
		{ID: "cycle-c", ProgressRatio: 0.5, TaskCount: 2},
	})
	results := ComputeDrift(baseline, current)
	if results[0].Delta != "unchanged" {
		t.Errorf("Delta = %q, want unchanged", results[0].Delta)
	}
}

func TestComputeDrift_NewCycle(t *testing.T) {
	baseline := makeSnap([]CycleSnapshot{})
	current := makeSnap([]CycleSnapshot{
		{ID: "new-cycle", ProgressRatio: 0.5, TaskCount: 4},
	})
	results := ComputeDrift(baseline, current)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Before != 0 {
		t.Errorf("Before = %v, want 0 for a new cycle", results[0].Before)
	}
	if results[0].Delta != "unchanged" {
		t.Errorf("Delta = %q, want unchanged for a new cycle", results[0].Delta)
	}
}

func TestComputeDrift_SortOrder(t *testing.T) {
	// Regressions should come first, then improvements, then unchanged.
	baseline := makeSnap([]CycleSnapshot{
		{ID: "unchanged-1", ProgressRatio: 0.9, TaskCount: 9},
		{ID: "improved-1", ProgressRatio: 0.1, TaskCount: 7},
		{ID: "regressed-1", ProgressRatio: 0.9, TaskCount: 5},
	})
	current := makeSnap([]CycleSnapshot{
		{ID: "unchanged-1", ProgressRatio: 0.9, TaskCount: 9},
		{ID: "improved-1", ProgressRatio: 0.8, TaskCount: 7},
		{ID: "regressed-1", ProgressRatio: 0.2, TaskCount: 5},
	})
	results := ComputeDrift(baseline, current)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Delta != "regressed" {
		t.Errorf("first result should be regressed, got %q", results[0].Delta)
	}
	if results[1].Delta != "improved" {
		t.Errorf("second result should be improved, got %q", results[1].Delta)
	}
	if results[2].Delta != "unchanged" {
		t.Errorf("third result should be unchanged, got %q", results[2].Delta)
	}
}

func TestComputeDrift_SortByTaskCountWithinCategory(t *testing.T) {
	baseline := makeSnap([]CycleSnapshot{
		{ID: "regressed-small", ProgressRatio: 0.9, TaskCount: 2},
		{ID: "regressed-big", ProgressRatio: 0.9, TaskCount: 8},
	})
	current := makeSnap([]CycleSnapshot{
		{ID: "regressed-small", ProgressRatio: 0.1, TaskCount: 2},
		{ID: "regressed-big", ProgressRatio: 0.1, TaskCount: 8},
	})
	results := ComputeDrift(baseline, current)
	if results[0].CycleID != "regressed-big" {
		t.Errorf("bigger cycle's regression should sort first, got %q", results[0].CycleID)
	}
}

func TestComputeDrift_ProgressDelta(t *testing.T) {
	baseline := makeSnap([]CycleSnapshot{
		{ID: "cycle-d", ProgressRatio: 0.25, TaskCount: 4},
	})
	current := makeSnap([]CycleSnapshot{
		{ID: "cycle-d", ProgressRatio: 0.75, TaskCount: 4},
	})
	results := ComputeDrift(baseline, current)
	if results[0].ProgressDelta != 0.5 {
		t.Errorf("ProgressDelta = %v, want 0.5", results[0].ProgressDelta)
	}
}

func TestComputeDrift_EmptySnapshots(t *testing.T) {
	baseline := makeSnap([]CycleSnapshot{})
	current := makeSnap([]CycleSnapshot{})
	results := ComputeDrift(baseline, current)
	if len(results) != 0 {
		t.Errorf("expected empty results for empty snapshots, got %d", len(results))
	}
}

func TestDeltaRank(t *testing.T) {
	cases := []struct {
		delta string
		want  int
	}{
		{"regressed", 0},
		{"improved", 1},
		{"unchanged", 2},
		{"unknown", 2}, // default
		{"", 2},
	}
	for _, tc := range cases {
		got := deltaRank(tc.delta)
		if got != tc.want {
			t.Errorf("deltaRank(%q) = %d, want %d", tc.delta, got, tc.want)
		}
	}
}
