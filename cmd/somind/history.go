package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/societymind/somind/internal/config"
	"github.com/societymind/somind/internal/state"
	"github.com/societymind/somind/pkg/models"
)

var (
	historyScenario       string
	historyPurgeOlderThan time.Duration
	historyPurgeRun       string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect persisted runs",
	Long: `List the workflow runs recorded in the run-history database.

Each run keeps its outcome, team executions, and human interventions.
Use 'history show <run-id>' for the full record of one run, and
'history purge' to trim old rows.`,
	RunE: runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one run with its teams and interventions",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyPurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete old runs from the history database",
	RunE:  runHistoryPurge,
}

func init() {
	historyCmd.Flags().StringVar(&historyScenario, "scenario", "", "Only list runs of this scenario")
	historyPurgeCmd.Flags().DurationVar(&historyPurgeOlderThan, "older-than", 30*24*time.Hour, "Delete runs started earlier than this")
	historyPurgeCmd.Flags().StringVar(&historyPurgeRun, "run", "", "Delete a single run by id")
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyPurgeCmd)
}

// openStore opens the configured run-history database.
func openStore() (*state.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if !cfg.State.Enabled {
		return nil, fmt.Errorf("run history is disabled (state.enabled = false)")
	}
	db, err := state.Open(cfg.StatePath())
	if err != nil {
		return nil, fmt.Errorf("open state database: %w", err)
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate state database: %w", err)
	}
	return db, nil
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	var runs []state.Run
	if historyScenario != "" {
		runs, err = db.ListRunsByScenario(historyScenario)
	} else {
		runs, err = db.ListRuns(nil)
	}
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded. Run 'somind run' to start.")
		return nil
	}

	for _, r := range runs {
		fmt.Printf("%s  %s  %-18s %d teams, %d interventions, %s  (%s ago)\n",
			r.ID, statusLabel(r.Status), r.Scenario,
			r.TeamsExecuted, r.Interventions,
			models.FormatDuration(r.DurationSeconds),
			formatAge(time.Since(r.StartedAt)))
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	run, err := db.GetRun(args[0])
	if err != nil {
		return fmt.Errorf("get run: %w", err)
	}
	if run == nil {
		return fmt.Errorf("run %q not found", args[0])
	}

	fmt.Printf("Run %s  %s\n", run.ID, statusLabel(run.Status))
	fmt.Printf("  Scenario: %s\n", run.Scenario)
	fmt.Printf("  Title: %s\n", run.Title)
	fmt.Printf("  Started: %s\n", run.StartedAt.Format(time.RFC3339))
	if run.FinishedAt != nil {
		fmt.Printf("  Finished: %s (%s)\n", run.FinishedAt.Format(time.RFC3339),
			models.FormatDuration(run.DurationSeconds))
	}
	if run.Error != "" {
		fmt.Printf("  Error: %s\n", run.Error)
	}
	fmt.Printf("  Deliverable: %d characters\n", run.DeliverableLength)

	teamRuns, err := db.ListTeamRuns(run.ID)
	if err != nil {
		return fmt.Errorf("list team runs: %w", err)
	}
	if len(teamRuns) > 0 {
		fmt.Println("\nTeams:")
		for _, tr := range teamRuns {
			symbol := color.GreenString("✓")
			if !tr.Success {
				symbol = color.RedString("✗")
			}
			fmt.Printf("  %s %-26s %d agents, %d chars\n",
				symbol, models.TeamTitle(tr.Team), len(tr.Agents), tr.OutputLen)
		}
	}

	interventions, err := db.ListInterventions(run.ID)
	if err != nil {
		return fmt.Errorf("list interventions: %w", err)
	}
	if len(interventions) > 0 {
		fmt.Println("\nInterventions:")
		for _, iv := range interventions {
			scope := "outer coordination"
			if iv.Team != "" {
				scope = models.TeamTitle(iv.Team)
			}
			note := ""
			if iv.TimedOut {
				note = " (timed out)"
			}
			fmt.Printf("  %-22s %-26s %s%s\n", iv.Kind, scope, iv.Decision, note)
		}
	}
	return nil
}

func runHistoryPurge(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if historyPurgeRun != "" {
		run, err := db.GetRun(historyPurgeRun)
		if err != nil {
			return fmt.Errorf("get run: %w", err)
		}
		if run == nil {
			return fmt.Errorf("run %q not found", historyPurgeRun)
		}
		if err := db.DeleteRun(historyPurgeRun); err != nil {
			return fmt.Errorf("delete run: %w", err)
		}
		fmt.Printf("Deleted run %s\n", historyPurgeRun)
		return nil
	}

	deleted, err := db.PurgeOldRuns(historyPurgeOlderThan)
	if err != nil {
		return fmt.Errorf("purge runs: %w", err)
	}
	fmt.Printf("Deleted %d runs older than %s\n", deleted, historyPurgeOlderThan)
	return nil
}

// statusLabel colors a run status for terminal display.
func statusLabel(s state.RunStatus) string {
	switch s {
	case state.RunCompleted:
		return color.GreenString("%-9s", s)
	case state.RunFailed:
		return color.RedString("%-9s", s)
	default:
		return color.YellowString("%-9s", s)
	}
}

// formatAge renders a duration since a past event, coarsest unit only.
func formatAge(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours())/24)
	}
}
