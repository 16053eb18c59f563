// Package workflow runs the complete project cycle: concurrent inner team
// execution with per-team validation gates, outer coordination, final
// deliverable assembly, and performance accounting. The engine owns the
// process-wide system state and optionally persists runs to a state store.
package workflow

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/societymind/somind/internal/coordination"
	"github.com/societymind/somind/internal/gate"
	"github.com/societymind/somind/internal/results"
	"github.com/societymind/somind/internal/roster"
	"github.com/societymind/somind/internal/scenario"
	"github.com/societymind/somind/internal/state"
	"github.com/societymind/somind/internal/teams"
	"github.com/societymind/somind/pkg/models"
)

// timestampLayout matches the "Generated:" stamp used in rendered reports.
const timestampLayout = "2006-01-02 15:04:05"

// Config contains the collaborators and options for an Engine.
type Config struct {
	// Agents is the agent roster. Required.
	Agents *roster.Roster
	// Teams executes the inner team workflows. Required.
	Teams *teams.Orchestrator
	// Gates manages the human intervention points. Required.
	Gates *gate.Manager
	// Coordinator runs the outer coordination pass. Required.
	Coordinator *coordination.Coordinator
	// Store persists run history. If nil, persistence is disabled.
	Store state.Store
	// Results writes run result JSON files. If nil, file output is disabled.
	Results *results.Writer
	// Clock overrides the time source, used in tests.
	Clock func() time.Time
	// DebugLog receives verbose engine logs.
	DebugLog func(format string, args ...interface{})
}

// Engine coordinates complete project cycles and owns the system state.
type Engine struct {
	agents   *roster.Roster
	teams    *teams.Orchestrator
	gates    *gate.Manager
	coord    *coordination.Coordinator
	store    state.Store
	writer   *results.Writer
	now      func() time.Time
	debugLog func(format string, args ...interface{})

	events chan Event

	// runMu serializes project runs so the per-run slice of the gate
	// history stays attributable to a single run.
	runMu sync.Mutex

	mu      sync.Mutex
	state   models.SystemState
	history []models.WorkflowResult
}

// New creates an Engine from the config, filling in defaults.
func New(cfg Config) *Engine {
	e := &Engine{
		agents:   cfg.Agents,
		teams:    cfg.Teams,
		gates:    cfg.Gates,
		coord:    cfg.Coordinator,
		store:    cfg.Store,
		writer:   cfg.Results,
		now:      cfg.Clock,
		debugLog: cfg.DebugLog,
		events:   make(chan Event, 100),
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.debugLog == nil {
		e.debugLog = func(format string, args ...interface{}) {}
	}
	e.state = models.SystemState{InitializedAt: e.now()}
	return e
}

// Restore loads the persisted system state and fails over any runs left
// behind by a crashed process. It is a no-op when no store is configured.
func (e *Engine) Restore() error {
	if e.store == nil {
		return nil
	}
	st, err := e.store.LoadSystemState()
	if err != nil {
		return fmt.Errorf("load system state: %w", err)
	}
	if st != nil {
		e.mu.Lock()
		e.state = *st
		e.mu.Unlock()
	}
	n, err := e.store.MarkInterruptedRuns()
	if err != nil {
		return fmt.Errorf("mark interrupted runs: %w", err)
	}
	if n > 0 {
		e.debugLog("[workflow] marked %d interrupted runs as failed", n)
	}
	return nil
}

// RunProject executes one complete project cycle. A WorkflowResult is always
// returned: any error or panic in the sequence is captured into Error with
// Success=false, and the partial result is still appended to the project
// history and persisted.
func (e *Engine) RunProject(ctx context.Context, reqs models.Requirements, scenarioName string) models.WorkflowResult {
	e.runMu.Lock()
	defer e.runMu.Unlock()

	result := models.WorkflowResult{
		RunID:        uuid.New().String()[:8],
		Scenario:     scenarioName,
		StartTime:    e.now(),
		Requirements: reqs,
		TeamResults:  make(map[string]models.TeamResult),
	}
	e.debugLog("[workflow] run %s: scenario %s", result.RunID, scenarioName)
	e.emit(Event{Type: EventRunStarted, RunID: result.RunID, Scenario: scenarioName, Message: reqs.Title})
	e.beginRunState(&result)

	gatesBefore := e.gates.Count()
	err := e.runPhases(ctx, &result, gatesBefore)
	result.EndTime = e.now()
	result.Interventions = e.gates.History()[gatesBefore:]
	result.Success = err == nil
	if err != nil {
		result.Error = err.Error()
		e.debugLog("[workflow] run %s failed: %v", result.RunID, err)
	}

	e.emit(Event{Type: EventPhaseStarted, RunID: result.RunID, Scenario: scenarioName, Message: "Performance analysis"})
	result.Metrics = analyzePerformance(result)

	e.mu.Lock()
	e.history = append(e.history, result)
	accumulate(&e.state, result)
	snapshot := e.state
	e.mu.Unlock()

	e.completeRunState(&result, snapshot)

	e.emit(Event{
		Type:     EventRunCompleted,
		RunID:    result.RunID,
		Scenario: scenarioName,
		Success:  result.Success,
		Message:  result.Error,
	})
	return result
}

// runPhases walks the project sequence. A panic in any phase is converted
// into an error so a broken component cannot take the process down.
func (e *Engine) runPhases(ctx context.Context, result *models.WorkflowResult, gatesBefore int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("workflow panic: %v", r)
		}
	}()

	// Phase 1: inner team execution.
	e.emit(Event{Type: EventPhaseStarted, RunID: result.RunID, Scenario: result.Scenario, Message: "Inner team execution"})
	if err := e.runInnerTeams(ctx, result); err != nil {
		return fmt.Errorf("inner team phase: %w", err)
	}

	// Phase 2: outer team coordination.
	e.emit(Event{Type: EventPhaseStarted, RunID: result.RunID, Scenario: result.Scenario, Message: "Outer team coordination"})
	ordered := e.orderedResults(result)
	coordRes, err := e.coord.Coordinate(ctx, ordered, result.Requirements)
	result.Coordination = coordRes
	if err != nil {
		return fmt.Errorf("outer coordination: %w", err)
	}

	// Phase 3: final integration and deliverable creation.
	e.emit(Event{Type: EventPhaseStarted, RunID: result.RunID, Scenario: result.Scenario, Message: "Final integration and deliverable creation"})
	interventionsSoFar := e.gates.Count() - gatesBefore
	result.FinalDeliverable = renderFinalDeliverable(*result, ordered, interventionsSoFar, e.now())

	validation, err := e.gates.ValidateFinalOutput(ctx, e.agents.Director(), result.FinalDeliverable, ordered)
	if err != nil {
		return fmt.Errorf("final validation gate: %w", err)
	}
	e.emit(Event{
		Type:    EventGateDecision,
		RunID:   result.RunID,
		Message: "final output validation",
		Success: validation.Approved(),
	})
	return nil
}

// runInnerTeams fans the team generations out to goroutines, then walks the
// results in roster order for the serialized validation gates.
func (e *Engine) runInnerTeams(ctx context.Context, result *models.WorkflowResult) error {
	teamIDs := e.agents.InnerTeams()
	teamResults := make([]models.TeamResult, len(teamIDs))

	var wg sync.WaitGroup
	for i, team := range teamIDs {
		wg.Add(1)
		go func(slot int, team string) {
			defer wg.Done()
			teamResults[slot] = e.teams.ExecuteTeam(ctx, team, result.Requirements, e.agents.TeamAgents(team))
		}(i, team)
	}
	wg.Wait()

	for i, team := range teamIDs {
		res := teamResults[i]
		result.TeamResults[team] = res
		e.emit(Event{
			Type:    EventTeamCompleted,
			RunID:   result.RunID,
			Team:    team,
			Success: res.Success,
			Message: fmt.Sprintf("%d chars", res.OutputLen),
		})

		proxy, ok := e.agents.Proxy(team)
		if !ok {
			continue
		}
		validation, err := e.gates.ValidateTeamOutput(ctx, proxy, team, e.agents.Domain(team), res.Output, res.Agents)
		if err != nil {
			return fmt.Errorf("%s validation gate: %w", team, err)
		}
		for _, specialist := range e.agents.Specialists(team) {
			e.agents.RecordTask(specialist.Name, validation.Approved())
		}
		e.emit(Event{
			Type:    EventGateDecision,
			RunID:   result.RunID,
			Team:    team,
			Message: "output validation",
			Success: validation.Approved(),
		})
	}
	return nil
}

// orderedResults returns the run's team results in roster order.
func (e *Engine) orderedResults(result *models.WorkflowResult) []models.TeamResult {
	ordered := make([]models.TeamResult, 0, len(result.TeamResults))
	for _, team := range e.agents.InnerTeams() {
		if res, ok := result.TeamResults[team]; ok {
			ordered = append(ordered, res)
		}
	}
	return ordered
}

// RunScenario looks up a scenario by identifier, runs it, and writes the run
// result file. Unknown identifiers fall back to the interactive scenario.
func (e *Engine) RunScenario(ctx context.Context, id string) (models.WorkflowResult, error) {
	sc, ok := scenario.Lookup(id)
	if !ok {
		e.debugLog("[workflow] unknown scenario %q, falling back to %s", id, sc.ID)
	}

	result := e.RunProject(ctx, sc.Requirements, sc.ID)
	if e.writer != nil {
		path, err := e.writer.WriteRun(&result)
		if err != nil {
			return result, fmt.Errorf("write run result: %w", err)
		}
		e.emit(Event{Type: EventResultsWritten, RunID: result.RunID, Scenario: sc.ID, Message: path})
	}
	return result, nil
}

// RunAllScenarios executes every scenario in order and writes the combined
// results file. It stops early when the context is cancelled, returning the
// runs completed so far.
func (e *Engine) RunAllScenarios(ctx context.Context) (map[string]*models.WorkflowResult, error) {
	all := make(map[string]*models.WorkflowResult)
	for _, id := range scenario.IDs() {
		if err := ctx.Err(); err != nil {
			return all, err
		}
		result, err := e.RunScenario(ctx, id)
		if err != nil {
			return all, err
		}
		all[id] = &result
	}

	if e.writer != nil {
		path, err := e.writer.WriteCombined(all)
		if err != nil {
			return all, fmt.Errorf("write combined results: %w", err)
		}
		e.emit(Event{Type: EventResultsWritten, Message: path})
	}
	return all, nil
}

// Status is a point-in-time view of the engine and its components.
type Status struct {
	State        models.SystemState         `json:"system_state"`
	HistoryCount int                        `json:"project_history_count"`
	SuccessRate  float64                    `json:"success_rate"`
	TeamMetrics  teams.Metrics              `json:"inner_orchestrator_metrics"`
	Coordination coordination.StatusSummary `json:"outer_coordinator_status"`
	LastProject  string                     `json:"last_project,omitempty"`
}

// Status reports the system state and the component metrics.
func (e *Engine) Status() Status {
	e.mu.Lock()
	st := e.state
	count := len(e.history)
	last := ""
	if count > 0 {
		last = e.history[count-1].Scenario
	}
	e.mu.Unlock()

	return Status{
		State:        st,
		HistoryCount: count,
		SuccessRate:  st.SuccessRate(),
		TeamMetrics:  e.teams.PerformanceMetrics(),
		Coordination: e.coord.StatusSummary(),
		LastProject:  last,
	}
}

// History returns a copy of the run results in execution order.
func (e *Engine) History() []models.WorkflowResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]models.WorkflowResult, len(e.history))
	copy(out, e.history)
	return out
}

// Reset clears every component history and re-initializes the system state.
func (e *Engine) Reset() {
	e.teams.ResetHistory()
	e.coord.Reset()
	e.gates.Reset()
	e.agents.Reset()

	e.mu.Lock()
	e.history = nil
	e.state = models.SystemState{InitializedAt: e.now()}
	e.mu.Unlock()
}
