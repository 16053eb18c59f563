package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/societymind/somind/internal/config"
)

var (
	reportDashboard     bool
	reportInterventions bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show the system report",
	Long: `Render the Society of Mind system report from the persisted system
state: project totals, success rate, and the running performance averages.

The alternate views reflect the current process only and are mostly useful
combined with runs in the same session:
  --dashboard       project coordination dashboard
  --interventions   human intervention summary`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().BoolVar(&reportDashboard, "dashboard", false, "Show the project coordination dashboard")
	reportCmd.Flags().BoolVar(&reportInterventions, "interventions", false, "Show the human intervention summary")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Reports read persisted state only; no model key needed.
	soc, err := buildSociety(cfg, engineOptions{})
	if err != nil {
		return err
	}
	defer soc.close()

	switch {
	case reportDashboard:
		fmt.Print(soc.coord.Dashboard())
	case reportInterventions:
		fmt.Print(soc.gates.Summary().Render(time.Now()))
	default:
		fmt.Print(soc.engine.SystemReport())
	}
	return nil
}
