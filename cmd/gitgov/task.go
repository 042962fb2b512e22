package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gitgovernance/core/internal/formatter"
	"github.com/gitgovernance/core/internal/record"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Create and transition tasks",
}

func init() {
	rootCmd.AddCommand(taskCmd)
	taskCmd.AddCommand(taskCreateCmd, taskListCmd, taskShowCmd,
		taskSubmitCmd, taskApproveCmd, taskActivateCmd, taskCompleteCmd, taskArchiveCmd)
}

var (
	taskTitle       string
	taskDescription string
	taskPriority    string
	taskTags        []string
)

var taskCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new task in status=draft",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, _, err := buildEngine()
		if err != nil {
			return err
		}
		env, err := engine.CreateTask(record.TaskPayload{
			Title:       taskTitle,
			Description: taskDescription,
			Priority:    record.TaskPriority(taskPriority),
			Tags:        taskTags,
		})
		if err != nil {
			return err
		}
		fmt.Printf("created task %s\n", env.Payload.ID)
		return nil
	},
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, _, err := buildEngine()
		if err != nil {
			return err
		}
		ids, err := engine.Tasks.List()
		if err != nil {
			return err
		}
		table := formatter.NewTable(os.Stdout, "ID", "Title", "Status", "Priority")
		for _, id := range ids {
			env, err := engine.Tasks.Get(id)
			if err != nil || env == nil {
				continue
			}
			table.AddRow(env.Payload.ID, env.Payload.Title, string(env.Payload.Status), string(env.Payload.Priority))
		}
		return table.Render()
	},
}

var taskShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one task's current record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, _, err := buildEngine()
		if err != nil {
			return err
		}
		env, err := engine.Tasks.Get(args[0])
		if err != nil {
			return err
		}
		if env == nil {
			return fmt.Errorf("task %q not found", args[0])
		}
		fmt.Printf("ID:          %s\n", env.Payload.ID)
		fmt.Printf("Title:       %s\n", env.Payload.Title)
		fmt.Printf("Status:      %s\n", env.Payload.Status)
		fmt.Printf("Priority:    %s\n", env.Payload.Priority)
		fmt.Printf("Tags:        %s\n", strings.Join(env.Payload.Tags, ", "))
		fmt.Printf("Cycles:      %s\n", strings.Join(env.Payload.CycleIDs, ", "))
		fmt.Printf("Description: %s\n", env.Payload.Description)
		return nil
	},
}

func init() {
	taskCreateCmd.Flags().StringVar(&taskTitle, "title", "", "Task title (required)")
	taskCreateCmd.Flags().StringVar(&taskDescription, "description", "", "Task description (required)")
	taskCreateCmd.Flags().StringVar(&taskPriority, "priority", "", "Priority: low, medium, high, critical")
	taskCreateCmd.Flags().StringSliceVar(&taskTags, "tags", nil, "Comma-separated tags")
	_ = taskCreateCmd.MarkFlagRequired("title")
	_ = taskCreateCmd.MarkFlagRequired("description")
}

// taskTransitionCmd builds a cobra.Command for a single-argument task
// status transition (submit/approve/activate/complete/archive). step
// selects which Engine method to call against the built Engine, since the
// Engine doesn't exist until a command actually runs.
func taskTransitionCmd(use, short, step string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, _, err := buildEngine()
			if err != nil {
				return err
			}

			var env record.Envelope[record.TaskPayload]
			switch step {
			case "submit":
				env, err = engine.SubmitTask(args[0])
			case "approve":
				env, err = engine.ApproveTask(args[0])
			case "activate":
				env, err = engine.ActivateTask(args[0])
			case "complete":
				env, err = engine.CompleteTask(args[0])
			case "archive":
				env, err = engine.ArchiveTask(args[0])
			default:
				return fmt.Errorf("unknown transition %q", step)
			}
			if err != nil {
				return err
			}
			fmt.Printf("task %s -> %s\n", env.Payload.ID, env.Payload.Status)
			return nil
		},
	}
}

var (
	taskSubmitCmd   = taskTransitionCmd("submit", "Move a task draft -> review", "submit")
	taskApproveCmd  = taskTransitionCmd("approve", "Move a task review -> ready", "approve")
	taskActivateCmd = taskTransitionCmd("activate", "Move a task ready -> active", "activate")
	taskCompleteCmd = taskTransitionCmd("complete", "Move a task active -> done", "complete")
	taskArchiveCmd  = taskTransitionCmd("archive", "Move a done task to archived", "archive")
)
