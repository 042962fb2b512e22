package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gitgovernance/core/internal/formatter"
	"github.com/gitgovernance/core/internal/record"
)

var cycleCmd = &cobra.Command{
	Use:   "cycle",
	Short: "Group tasks into cycles",
}

func init() {
	rootCmd.AddCommand(cycleCmd)
	cycleCmd.AddCommand(cycleCreateCmd, cycleListCmd, cycleAddTaskCmd, cycleRemoveTaskCmd)
}

var cycleTitle string

var cycleCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new cycle in status=planning",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, _, err := buildEngine()
		if err != nil {
			return err
		}
		env, err := engine.CreateCycle(record.CyclePayload{Title: cycleTitle})
		if err != nil {
			return err
		}
		fmt.Printf("created cycle %s\n", env.Payload.ID)
		return nil
	},
}

var cycleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all cycles",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, _, err := buildEngine()
		if err != nil {
			return err
		}
		ids, err := engine.Cycles.List()
		if err != nil {
			return err
		}
		table := formatter.NewTable(os.Stdout, "ID", "Title", "Status", "Tasks")
		for _, id := range ids {
			env, err := engine.Cycles.Get(id)
			if err != nil || env == nil {
				continue
			}
			table.AddRow(env.Payload.ID, env.Payload.Title, string(env.Payload.Status), fmt.Sprintf("%d", len(env.Payload.TaskIDs)))
		}
		return table.Render()
	},
}

var cycleAddTaskCmd = &cobra.Command{
	Use:   "add-task <task-id> <cycle-id>",
	Short: "Add a task to a cycle",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, _, err := buildEngine()
		if err != nil {
			return err
		}
		_, cycleEnv, err := engine.AddTaskToCycle(args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("task %s added to cycle %s\n", args[0], cycleEnv.Payload.ID)
		return nil
	},
}

var cycleRemoveTaskCmd = &cobra.Command{
	Use:   "remove-task <task-id> <cycle-id>",
	Short: "Remove a task from a cycle",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, _, err := buildEngine()
		if err != nil {
			return err
		}
		_, cycleEnv, err := engine.RemoveTaskFromCycle(args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("task %s removed from cycle %s\n", args[0], cycleEnv.Payload.ID)
		return nil
	},
}

func init() {
	cycleCreateCmd.Flags().StringVar(&cycleTitle, "title", "", "Cycle title (required)")
	_ = cycleCreateCmd.MarkFlagRequired("title")
}
