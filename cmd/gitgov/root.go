package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagOutput  string
	flagBaseDir string
	flagVerbose bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "gitgov",
	Short: "GitGovernance CLI",
	Long: `gitgov manages a GitGovernance backlog: tasks, cycles, executions,
changelogs, feedback, and the actors and agents that sign them.

Get Started:
  init         Initialize GitGovernance in the current repository

Core Commands:
  task         Create and transition tasks through the workflow
  cycle        Group tasks into cycles
  status       Show backlog health (stalled, at-risk, progress)
  health       Snapshot backlog health over time and diff snapshots
  config       Show resolved configuration
  version      Show version information`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "Output format (table, jsonl, markdown)")
	rootCmd.PersistentFlags().StringVar(&flagBaseDir, "base-dir", "", "Project root (default: nearest ancestor containing .gitgov)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable verbose output")
}

// verbosePrintf prints only when verbose mode is enabled.
func verbosePrintf(format string, args ...interface{}) {
	if flagVerbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
