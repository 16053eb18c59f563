package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/societymind/somind/internal/scenario"
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List the available demonstration scenarios",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Available scenarios:")
		bold := color.New(color.Bold)
		for _, sc := range scenario.All() {
			fmt.Println()
			bold.Printf("%s", sc.ID)
			fmt.Printf(": %s\n", sc.Name)
			fmt.Printf("  %s\n", sc.Description)
			fmt.Printf("  complexity: %s, expected: %s, ~%d interventions\n",
				sc.Complexity, formatExpected(sc.ExpectedDuration), sc.ExpectedInterventions)
		}
		fmt.Println("\nRun one with 'somind run <scenario>'.")
	},
}

// formatExpected renders an expected duration as whole minutes.
func formatExpected(d time.Duration) string {
	return fmt.Sprintf("%dm", int(d.Minutes()))
}
