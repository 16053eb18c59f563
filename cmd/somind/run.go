package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/societymind/somind/internal/config"
	"github.com/societymind/somind/internal/roster"
	"github.com/societymind/somind/internal/scenario"
	"github.com/societymind/somind/internal/workflow"
	"github.com/societymind/somind/pkg/models"
)

var (
	runAll       bool
	runGateMode  string
	runResponses []string
	runOutputDir string
	runNoSave    bool
)

var runCmd = &cobra.Command{
	Use:   "run [scenario]",
	Short: "Run a demonstration scenario",
	Long: `Run one Society of Mind demonstration scenario end to end.

Without an argument the product_launch scenario runs. Use 'somind scenarios'
to list the available scenarios, or --all to run every one in sequence.

Each run writes a demo_results_<scenario>_<timestamp>.json file to the
results directory and, unless disabled, a row into the run-history database.

Gate handling:
  --gate console   answer each intervention on the terminal
  --gate file      exchange request/answer files under gate.dir
  --responses ...  scripted answers consumed in order (testing, CI)`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScenario,
}

func init() {
	runCmd.Flags().BoolVar(&runAll, "all", false, "Run every scenario in sequence")
	runCmd.Flags().StringVar(&runGateMode, "gate", "", "Gate mode for this run: auto, console, or file")
	runCmd.Flags().StringSliceVar(&runResponses, "responses", nil, "Scripted gate responses, consumed in order")
	runCmd.Flags().StringVar(&runOutputDir, "output", "", "Directory for result JSON files")
	runCmd.Flags().BoolVar(&runNoSave, "no-save", false, "Skip the run-history database")
}

func runScenario(cmd *cobra.Command, args []string) (retErr error) {
	defer func() {
		if r := recover(); r != nil {
			retErr = fmt.Errorf("panic in run: %v", r)
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	// Key format problems are worth a warning, but simulated runs never
	// reach the provider, so they are not fatal.
	if key, err := config.GetAPIKey(cfg); err == nil {
		if err := config.ValidateAPIKey(key); err != nil {
			color.Yellow("Warning: %v", err)
		}
	}

	soc, err := buildSociety(cfg, engineOptions{
		gateMode:   runGateMode,
		responses:  runResponses,
		resultsDir: runOutputDir,
		noState:    runNoSave,
	})
	if err != nil {
		return err
	}
	defer soc.close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		fmt.Println("\nReceived interrupt, shutting down...")
		cancel()
	}()

	done := make(chan struct{})
	printerDone := make(chan struct{})
	go func() {
		defer close(printerDone)
		printEvents(soc.engine.Events(), done)
	}()
	stopPrinter := func() {
		close(done)
		<-printerDone
	}

	banner := strings.Repeat("=", 60)
	color.New(color.Bold).Println("SOCIETY OF MIND DEMONSTRATION")
	fmt.Println(banner)

	if runAll {
		all, err := soc.engine.RunAllScenarios(ctx)
		stopPrinter()
		if err != nil {
			return err
		}
		printAllSummary(all, soc.agents)
		return nil
	}

	id := scenario.ProductLaunch
	if len(args) > 0 {
		id = args[0]
	}
	result, err := soc.engine.RunScenario(ctx, id)
	stopPrinter()
	if err != nil {
		return err
	}
	printRunSummary(result, soc.agents)
	if !result.Success {
		return fmt.Errorf("run %s failed: %s", result.RunID, result.Error)
	}
	return nil
}

// printEvents renders engine events until done is closed, then drains
// whatever is still buffered.
func printEvents(events <-chan workflow.Event, done <-chan struct{}) {
	for {
		select {
		case ev := <-events:
			printEvent(ev)
		case <-done:
			for {
				select {
				case ev := <-events:
					printEvent(ev)
				default:
					return
				}
			}
		}
	}
}

func printEvent(ev workflow.Event) {
	switch ev.Type {
	case workflow.EventRunStarted:
		color.New(color.FgCyan, color.Bold).Printf("\n▶ Run %s [%s]: %s\n", ev.RunID, ev.Scenario, ev.Message)
	case workflow.EventPhaseStarted:
		color.Cyan("── %s", ev.Message)
	case workflow.EventTeamCompleted:
		symbol := color.GreenString("✓")
		if !ev.Success {
			symbol = color.RedString("✗")
		}
		fmt.Printf("   %s %s: %s\n", symbol, models.TeamTitle(ev.Team), ev.Message)
	case workflow.EventGateDecision:
		scope := "outer coordination"
		if ev.Team != "" {
			scope = models.TeamTitle(ev.Team)
		}
		fmt.Printf("   %s %s: %s\n", color.YellowString("⚑"), scope, ev.Message)
	case workflow.EventRunCompleted:
		if ev.Success {
			color.Green("● Run %s completed", ev.RunID)
		} else {
			color.Red("● Run %s failed: %s", ev.RunID, ev.Message)
		}
	case workflow.EventResultsWritten:
		fmt.Printf("Results saved to: %s\n", ev.Message)
	}
}

// printRunSummary renders the post-run results block.
func printRunSummary(result models.WorkflowResult, agents *roster.Roster) {
	banner := strings.Repeat("=", 60)
	fmt.Println("\n" + banner)
	fmt.Println("DEMONSTRATION RESULTS")
	fmt.Println(banner)

	approvals := 0
	for _, rec := range result.Interventions {
		if rec.Result.Approved() {
			approvals++
		}
	}

	fmt.Println("\nPerformance Summary:")
	fmt.Printf("   • Total Human Interventions: %d\n", len(result.Interventions))
	fmt.Printf("   • Teams Executed: %d\n", result.Metrics.TeamsExecuted)
	fmt.Printf("   • Coordination Agents: %d\n", len(agents.OuterAgents()))
	fmt.Printf("   • Approved Interventions: %d\n", approvals)

	if result.FinalDeliverable != "" {
		fmt.Println("\nFinal Output Preview:")
		fmt.Printf("   %s\n", preview(result.FinalDeliverable, 200))
	}

	if len(result.Interventions) > 0 {
		fmt.Println("\nHuman Interventions:")
		for _, rec := range result.Interventions {
			symbol := color.GreenString("✅")
			if !rec.Result.Approved() {
				symbol = color.RedString("❌")
			}
			scope := "outer coordination"
			if rec.Team != "" {
				scope = models.TeamTitle(rec.Team)
			}
			fmt.Printf("   %s %s: %s\n", symbol, scope, rec.Kind)
		}
	}

	if result.Success {
		color.Green("\nDemonstration completed successfully!")
	} else {
		color.Red("\nDemonstration failed: %s", result.Error)
	}
	fmt.Printf("   Scenario: %s\n", models.TeamTitle(result.Scenario))
	fmt.Printf("   Duration: %s\n", result.Metrics.ExecutionFormatted)
}

// printAllSummary renders the per-scenario outcome table for --all runs.
func printAllSummary(all map[string]*models.WorkflowResult, agents *roster.Roster) {
	banner := strings.Repeat("=", 60)
	fmt.Println("\n" + banner)
	fmt.Println("ALL SCENARIOS COMPLETE")
	fmt.Println(banner)

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		result := all[id]
		symbol := color.GreenString("✓")
		if !result.Success {
			symbol = color.RedString("✗")
		}
		fmt.Printf("   %s %-20s %d teams, %d interventions, %s\n",
			symbol, id,
			result.Metrics.TeamsExecuted,
			len(result.Interventions),
			result.Metrics.ExecutionFormatted)
	}
	fmt.Printf("\n   Coordination Agents: %d\n", len(agents.OuterAgents()))
}

// preview flattens text to one line and caps it for terminal display.
func preview(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
