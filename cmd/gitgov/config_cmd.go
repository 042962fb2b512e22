package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gitgovernance/core/internal/config"
	"github.com/gitgovernance/core/internal/formatter"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show resolved configuration",
	Long:  `Show every configuration value alongside the precedence tier it came from: flag, env, project, home, or default.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		resolved := config.Resolve(flagOutput, flagBaseDir, flagVerbose)

		table := formatter.NewTable(os.Stdout, "Key", "Value", "Source")
		row := func(key string, value interface{}, source config.Source) {
			table.AddRow(key, fmt.Sprintf("%v", value), string(source))
		}
		row("output", resolved.Output.Value, resolved.Output.Source)
		row("base_path", resolved.BasePath.Value, resolved.BasePath.Source)
		row("verbose", resolved.Verbose.Value, resolved.Verbose.Source)
		row("store.extension", resolved.StoreExtension.Value, resolved.StoreExtension.Source)
		row("store.serializer", resolved.StoreSerializer.Value, resolved.StoreSerializer.Source)
		row("workflow.methodology", resolved.WorkflowMethodology.Value, resolved.WorkflowMethodology.Source)
		row("project.name", resolved.ProjectName.Value, resolved.ProjectName.Source)
		return table.Render()
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
