package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gitgovernance/core/internal/config"
	"github.com/gitgovernance/core/internal/formatter"
	"github.com/gitgovernance/core/internal/projector"
	"github.com/gitgovernance/core/internal/record"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show backlog health",
	Long: `Project the current backlog into a health report: total/done/active
task counts, stalled and at-risk tasks (ranked oldest-first), and per-cycle
progress.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	engine, _, err := buildEngine()
	if err != nil {
		return err
	}

	cfg, err := config.Load(nil)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	tasks, err := loadAllTasks(engine.Tasks)
	if err != nil {
		return err
	}
	cycles, err := loadAllCycles(engine.Cycles)
	if err != nil {
		return err
	}

	result := projector.Project(tasks, cycles, time.Now(), projector.DefaultConfig())

	switch outputFormat(cfg.Output) {
	case "jsonl":
		jf := formatter.NewJSONLFormatter()
		if err := jf.FormatTasks(os.Stdout, result.Tasks); err != nil {
			return err
		}
		return jf.FormatHealth(os.Stdout, result.Health)
	case "markdown", "md":
		return formatter.NewMarkdownFormatter().Format(os.Stdout, result)
	default:
		return renderStatusTable(result)
	}
}

func renderStatusTable(result projector.Result) error {
	fmt.Printf("Total: %d  Done: %d (%.0f%%)  Active: %d  Stalled: %d  At risk: %d\n",
		result.Health.TotalTasks, result.Health.DoneTasks, result.Health.DoneRatio*100,
		result.Health.ActiveTasks, result.Health.StalledTasks, result.Health.AtRiskTasks)

	if len(result.Stalled) > 0 {
		fmt.Println("\nStalled tasks (oldest first):")
		for _, id := range result.Stalled {
			fmt.Printf("  %s\n", id)
		}
	}
	if len(result.AtRisk) > 0 {
		fmt.Println("\nAt-risk tasks (oldest first):")
		for _, id := range result.AtRisk {
			fmt.Printf("  %s\n", id)
		}
	}

	if len(result.Cycles) > 0 {
		table := formatter.NewTable(os.Stdout, "Cycle", "Status", "Tasks", "Done", "Active", "Progress")
		for _, c := range result.Cycles {
			table.AddRow(c.Title, string(c.Status), fmt.Sprintf("%d", c.TaskCount),
				fmt.Sprintf("%d", c.DoneCount), fmt.Sprintf("%d", c.ActiveCount), fmt.Sprintf("%.0f%%", c.ProgressRatio*100))
		}
		fmt.Println()
		return table.Render()
	}
	return nil
}

func loadAllTasks(s interface {
	List() ([]string, error)
	Get(id string) (*record.Envelope[record.TaskPayload], error)
}) ([]record.TaskPayload, error) {
	ids, err := s.List()
	if err != nil {
		return nil, err
	}
	out := make([]record.TaskPayload, 0, len(ids))
	for _, id := range ids {
		env, err := s.Get(id)
		if err != nil {
			return nil, err
		}
		if env != nil {
			out = append(out, env.Payload)
		}
	}
	return out, nil
}

func loadAllCycles(s interface {
	List() ([]string, error)
	Get(id string) (*record.Envelope[record.CyclePayload], error)
}) ([]record.CyclePayload, error) {
	ids, err := s.List()
	if err != nil {
		return nil, err
	}
	out := make([]record.CyclePayload, 0, len(ids))
	for _, id := range ids {
		env, err := s.Get(id)
		if err != nil {
			return nil, err
		}
		if env != nil {
			out = append(out, env.Payload)
		}
	}
	return out, nil
}
