package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "somind",
	Short: "Society of Mind multi-agent orchestration",
	Long: `Somind runs a two-layer Society of Mind: specialized inner teams
produce domain deliverables while an outer team coordinates integration,
resources, and quality. Humans stay in the loop through intervention
gates at every validation point.

A run walks the full project cycle:
  1. Inner teams execute in parallel (research, design, technical)
  2. Each team output passes a human validation gate
  3. The outer team coordinates: strategy, resources, quality, integration
  4. The final deliverable passes the last validation gate

Gate modes (gate.mode, or --gate on run):
  - auto:    simulated approvals, no waiting (default)
  - console: prompts on stdin/stdout
  - file:    request/answer files under gate.dir for external tooling`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Values already in the environment win over .env entries.
		_ = godotenv.Load()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(scenariosCmd)
	rootCmd.AddCommand(agentsCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
