// Package health records backlog health over time: point-in-time snapshots
// of the projector's aggregate and per-cycle metrics, an append-only
// history of those snapshots, and a drift comparison between any two of
// them. Nothing here computes health itself — that is projector's job —
// this package only persists and diffs what projector already produced.
package health

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gitgovernance/core/internal/projector"
)

// CycleSnapshot is one cycle's progress at the moment a Snapshot was taken.
type CycleSnapshot struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	TaskCount     int     `json:"taskCount"`
	ProgressRatio float64 `json:"progressRatio"`
}

// Snapshot captures a point-in-time read of backlog health: the aggregate
// counts plus a per-cycle progress breakdown, so a later Snapshot can be
// diffed against this one.
type Snapshot struct {
	Timestamp string                  `json:"timestamp"`
	Health    projector.HealthMetrics `json:"health"`
	Cycles    []CycleSnapshot         `json:"cycles"`
}

// FromResult builds a Snapshot from a projector.Result computed as of now.
func FromResult(result projector.Result, now time.Time) *Snapshot {
	cycles := make([]CycleSnapshot, 0, len(result.Cycles))
	for _, c := range result.Cycles {
		cycles = append(cycles, CycleSnapshot{
			ID:            c.ID,
			Title:         c.Title,
			TaskCount:     c.TaskCount,
			ProgressRatio: c.ProgressRatio,
		})
	}
	return &Snapshot{
		Timestamp: now.UTC().Format(time.RFC3339),
		Health:    result.Health,
		Cycles:    cycles,
	}
}

// SaveSnapshot writes a snapshot to disk as indented JSON, named by the
// current UTC time (not s.Timestamp) so snapshots sort lexicographically by
// filename in save order. Returns the
// path written.
func SaveSnapshot(s *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating snapshot dir: %w", err)
	}

	ts := time.Now().UTC().Format("2006-01-02T15-04-05")
	filename := filepath.Join(dir, ts+".json")

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling snapshot: %w", err)
	}

	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return "", fmt.Errorf("writing snapshot: %w", err)
	}

	return filename, nil
}

// LoadSnapshot reads a snapshot from a JSON file.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing snapshot %s: %w", path, err)
	}

	return &s, nil
}

// LoadLatestSnapshot finds the most recent snapshot in dir by filename
// (timestamps sort lexicographically).
func LoadLatestSnapshot(dir string) (*Snapshot, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var jsonFiles []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			jsonFiles = append(jsonFiles, e.Name())
		}
	}

	if len(jsonFiles) == 0 {
		return nil, fmt.Errorf("no snapshots found in %s", dir)
	}

	sort.Strings(jsonFiles)
	latest := filepath.Join(dir, jsonFiles[len(jsonFiles)-1])

	return LoadSnapshot(latest)
}
