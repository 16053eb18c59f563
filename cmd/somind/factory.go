package main

import (
	"fmt"
	"log"
	"os"

	"github.com/societymind/somind/internal/config"
	"github.com/societymind/somind/internal/coordination"
	"github.com/societymind/somind/internal/gate"
	"github.com/societymind/somind/internal/results"
	"github.com/societymind/somind/internal/roster"
	"github.com/societymind/somind/internal/state"
	"github.com/societymind/somind/internal/teams"
	"github.com/societymind/somind/internal/workflow"
)

// engineOptions are the run-command flag overrides applied on top of the
// loaded configuration.
type engineOptions struct {
	// gateMode overrides cfg.Gate.Mode when non-empty.
	gateMode string
	// responses switches to the scripted responder regardless of mode.
	responses []string
	// resultsDir overrides cfg.Results.Dir when non-empty.
	resultsDir string
	// noState disables the run-history store for this invocation.
	noState bool
}

// society bundles the assembled engine with the components the commands
// report on directly.
type society struct {
	engine *workflow.Engine
	agents *roster.Roster
	gates  *gate.Manager
	coord  *coordination.Coordinator
	store  *state.DB
	close  func()
}

// buildSociety assembles the full agent society from configuration.
// The returned close function releases the state store and debug log file.
func buildSociety(cfg *config.Config, opts engineOptions) (*society, error) {
	agents, err := roster.Load()
	if err != nil {
		return nil, fmt.Errorf("load agent roster: %w", err)
	}
	if err := agents.CheckLimits(cfg.Teams.MaxInnerTeams, cfg.Teams.MaxAgentsPerTeam); err != nil {
		return nil, err
	}

	var closers []func()
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	debugLog := func(format string, args ...interface{}) {}
	if cfg.Logging.DebugFile != "" {
		f, err := os.OpenFile(cfg.Logging.DebugFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("open debug log: %w", err)
		}
		closers = append(closers, func() { f.Close() })
		debugLog = log.New(f, "", log.LstdFlags).Printf
	}

	responder, err := buildResponder(cfg, opts)
	if err != nil {
		closeAll()
		return nil, err
	}

	gates := gate.NewManager(responder,
		gate.WithTimeout(cfg.Gate.Timeout()),
		gate.WithNotify(agents.RecordIntervention),
		gate.WithDebugLog(debugLog),
	)

	engineCfg := workflow.Config{
		Agents:      agents,
		Teams:       teams.New(teams.WithDebugLog(debugLog)),
		Gates:       gates,
		Coordinator: coordination.New(gates, agents, coordination.WithDebugLog(debugLog)),
		DebugLog:    debugLog,
	}

	soc := &society{agents: agents, gates: gates, close: closeAll}

	if cfg.State.Enabled && !opts.noState {
		db, err := state.Open(cfg.StatePath())
		if err != nil {
			closeAll()
			return nil, fmt.Errorf("open state database: %w", err)
		}
		closers = append(closers, func() { db.Close() })
		if err := db.Migrate(); err != nil {
			closeAll()
			return nil, fmt.Errorf("migrate state database: %w", err)
		}
		engineCfg.Store = db
		soc.store = db
	}

	resultsDir := cfg.Results.Dir
	if opts.resultsDir != "" {
		resultsDir = opts.resultsDir
	}
	engineCfg.Results = results.NewWriter(resultsDir)

	// The coordinator is reachable from the engine only through its status;
	// keep the handle for the dashboard command.
	soc.coord = engineCfg.Coordinator
	soc.engine = workflow.New(engineCfg)

	if err := soc.engine.Restore(); err != nil {
		closeAll()
		return nil, fmt.Errorf("restore system state: %w", err)
	}
	return soc, nil
}

// buildResponder selects the gate responder for this invocation. Explicit
// scripted responses win over the configured mode.
func buildResponder(cfg *config.Config, opts engineOptions) (gate.Responder, error) {
	if len(opts.responses) > 0 {
		return gate.NewScriptedResponder(opts.responses...), nil
	}

	mode := cfg.Gate.Mode
	if opts.gateMode != "" {
		mode = opts.gateMode
	}
	switch mode {
	case config.GateModeAuto:
		return gate.NewAutoResponder(), nil
	case config.GateModeConsole:
		return gate.NewConsoleResponder(os.Stdin, os.Stdout), nil
	case config.GateModeFile:
		return gate.NewFileResponder(cfg.Gate.Dir)
	default:
		return nil, fmt.Errorf("unknown gate mode %q: must be auto, console, or file", mode)
	}
}
