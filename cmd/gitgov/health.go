package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/gitgovernance/core/internal/formatter"
	"github.com/gitgovernance/core/internal/health"
	"github.com/gitgovernance/core/internal/projector"
	"github.com/gitgovernance/core/pkg/project"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Record and compare backlog health over time",
	Long: `Take point-in-time snapshots of backlog health (the same
totals/stalled/at-risk/progress metrics "gitgov status" shows), keep an
append-only history of them, and diff any two snapshots cycle by cycle.`,
}

func init() {
	rootCmd.AddCommand(healthCmd)
	healthCmd.AddCommand(healthSnapshotCmd, healthHistoryCmd, healthDriftCmd)
}

// healthDir is where snapshots and the history file live, outside any
// signed record store.
func healthDir(root string) string {
	return project.StorePath(root, "health")
}

func healthHistoryPath(root string) string {
	return filepath.Join(healthDir(root), "history.jsonl")
}

var healthSnapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Take a snapshot of current backlog health",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, root, err := buildEngine()
		if err != nil {
			return err
		}
		tasks, err := loadAllTasks(engine.Tasks)
		if err != nil {
			return err
		}
		cycles, err := loadAllCycles(engine.Cycles)
		if err != nil {
			return err
		}

		now := time.Now()
		result := projector.Project(tasks, cycles, now, projector.DefaultConfig())
		snap := health.FromResult(result, now)

		path, err := health.SaveSnapshot(snap, healthDir(root))
		if err != nil {
			return err
		}

		if err := health.AppendHistory(health.HistoryEntry{
			Timestamp:    snap.Timestamp,
			TotalTasks:   snap.Health.TotalTasks,
			DoneTasks:    snap.Health.DoneTasks,
			StalledTasks: snap.Health.StalledTasks,
			AtRiskTasks:  snap.Health.AtRiskTasks,
			Score:        snap.Health.DoneRatio * 100,
			SnapshotPath: path,
		}, healthHistoryPath(root)); err != nil {
			return err
		}

		fmt.Printf("wrote snapshot %s\n", path)
		return nil
	},
}

var healthHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded health snapshots",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := resolveProjectRoot()
		if err != nil {
			return err
		}
		entries, err := health.LoadHistory(healthHistoryPath(root))
		if err != nil {
			return err
		}

		table := formatter.NewTable(os.Stdout, "Timestamp", "Score", "Total", "Done", "Stalled", "At risk")
		for _, e := range entries {
			table.AddRow(e.Timestamp, fmt.Sprintf("%.0f%%", e.Score),
				fmt.Sprintf("%d", e.TotalTasks), fmt.Sprintf("%d", e.DoneTasks),
				fmt.Sprintf("%d", e.StalledTasks), fmt.Sprintf("%d", e.AtRiskTasks))
		}
		return table.Render()
	},
}

var healthDriftCmd = &cobra.Command{
	Use:   "drift <baseline-snapshot> <current-snapshot>",
	Short: "Compare two health snapshots, worst cycle regressions first",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		baseline, err := health.LoadSnapshot(args[0])
		if err != nil {
			return err
		}
		current, err := health.LoadSnapshot(args[1])
		if err != nil {
			return err
		}

		results := health.ComputeDrift(baseline, current)
		table := formatter.NewTable(os.Stdout, "Cycle", "Before", "After", "Delta", "Tasks")
		for _, r := range results {
			table.AddRow(r.Title, fmt.Sprintf("%.0f%%", r.Before*100), fmt.Sprintf("%.0f%%", r.After*100),
				r.Delta, fmt.Sprintf("%d", r.TaskCount))
		}
		return table.Render()
	},
}
