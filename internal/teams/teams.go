// Package teams runs the inner-team collaboration workflows. Generation is
// template driven: each of the three fixed teams has a standard and a crisis
// deliverable, selected by the requirements text, with a generic fallback for
// unknown team identifiers. The orchestrator records every execution so the
// demo can report per-team performance afterwards.
package teams

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/societymind/somind/pkg/models"
)

// Generator produces one team deliverable from a requirements payload.
type Generator func(reqs models.Requirements, agents []models.Agent, now time.Time) string

// Orchestrator executes inner-team workflows and keeps their history.
// Executions may run concurrently; history access is serialized internally.
type Orchestrator struct {
	mu         sync.Mutex
	history    []models.TeamResult
	generators map[string]Generator
	now        func() time.Time
	debugLog   func(format string, args ...interface{})
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithClock overrides the time source used for deliverable timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		o.now = now
	}
}

// WithDebugLog sets the debug logging function.
func WithDebugLog(fn func(format string, args ...interface{})) Option {
	return func(o *Orchestrator) {
		o.debugLog = fn
	}
}

// New returns an Orchestrator with the three fixed team generators registered
// and an empty execution history.
func New(opts ...Option) *Orchestrator {
	o := &Orchestrator{
		generators: map[string]Generator{
			models.TeamResearch:  researchGenerator,
			models.TeamCreative:  creativeGenerator,
			models.TeamTechnical: technicalGenerator,
		},
		now:      time.Now,
		debugLog: func(format string, args ...interface{}) {}, // no-op by default
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// ExecuteTeam runs one team workflow and appends the outcome to the execution
// history. A generator panic or an already-cancelled context is converted into
// an error-text deliverable with Success=false; ExecuteTeam never fails
// outright, so a broken team cannot abort the project run.
func (o *Orchestrator) ExecuteTeam(ctx context.Context, team string, reqs models.Requirements, agents []models.Agent) models.TeamResult {
	o.debugLog("[teams] executing %s workflow with %d agents", team, len(agents))

	names := make([]string, 0, len(agents))
	for _, a := range agents {
		names = append(names, a.Name)
	}

	var output string
	var success bool
	if err := ctx.Err(); err != nil {
		output = fmt.Sprintf("Error in %s execution: %v", team, err)
	} else {
		output, success = o.generate(team, reqs, agents)
	}

	result := models.TeamResult{
		Team:            team,
		Output:          output,
		Agents:          names,
		Timestamp:       o.now(),
		RequirementsLen: len(reqs.Text()),
		OutputLen:       len(output),
		Success:         success,
	}

	o.mu.Lock()
	o.history = append(o.history, result)
	o.mu.Unlock()

	o.debugLog("[teams] %s finished: success=%v result_length=%d", team, success, len(output))
	return result
}

// generate dispatches to the registered generator, falling back to the
// generic template. A panic becomes an error-text deliverable.
func (o *Orchestrator) generate(team string, reqs models.Requirements, agents []models.Agent) (output string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			o.debugLog("[teams] %s generator panicked: %v", team, r)
			output = fmt.Sprintf("Error in %s execution: %v", team, r)
			ok = false
		}
	}()

	gen, found := o.generators[team]
	if !found {
		gen = genericGenerator
	}
	return gen(reqs, agents, o.now()), true
}

// History returns a copy of the execution records in append order.
func (o *Orchestrator) History() []models.TeamResult {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]models.TeamResult, len(o.history))
	copy(out, o.history)
	return out
}

// TeamBreakdown summarizes the executions of a single team.
type TeamBreakdown struct {
	// Executions is the number of workflow runs recorded for the team.
	Executions int `json:"executions"`
	// SuccessRate is the fraction of runs that completed without error.
	SuccessRate float64 `json:"success_rate"`
	// AverageAgents is the mean number of agents involved per run.
	AverageAgents float64 `json:"average_agents"`
}

// TimelineEntry is one execution in chronological order.
type TimelineEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Team      string    `json:"team"`
	Success   bool      `json:"success"`
}

// Metrics aggregates the execution history for reporting.
type Metrics struct {
	TotalExecutions      int                      `json:"total_executions"`
	SuccessfulExecutions int                      `json:"successful_executions"`
	AverageResultLength  float64                  `json:"average_result_length"`
	TeamBreakdown        map[string]TeamBreakdown `json:"team_breakdown"`
	Timeline             []TimelineEntry          `json:"execution_timeline"`
}

// PerformanceMetrics computes aggregate metrics over the execution history.
func (o *Orchestrator) PerformanceMetrics() Metrics {
	o.mu.Lock()
	defer o.mu.Unlock()

	m := Metrics{
		TotalExecutions: len(o.history),
		TeamBreakdown:   make(map[string]TeamBreakdown),
	}
	if len(o.history) == 0 {
		return m
	}

	totalLength := 0
	agentTotals := make(map[string]int)
	successTotals := make(map[string]int)
	for _, rec := range o.history {
		if rec.Success {
			m.SuccessfulExecutions++
			successTotals[rec.Team]++
		}
		totalLength += rec.OutputLen
		agentTotals[rec.Team] += len(rec.Agents)

		bd := m.TeamBreakdown[rec.Team]
		bd.Executions++
		m.TeamBreakdown[rec.Team] = bd

		m.Timeline = append(m.Timeline, TimelineEntry{
			Timestamp: rec.Timestamp,
			Team:      rec.Team,
			Success:   rec.Success,
		})
	}
	m.AverageResultLength = float64(totalLength) / float64(len(o.history))

	for team, bd := range m.TeamBreakdown {
		bd.SuccessRate = float64(successTotals[team]) / float64(bd.Executions)
		bd.AverageAgents = float64(agentTotals[team]) / float64(bd.Executions)
		m.TeamBreakdown[team] = bd
	}
	return m
}

// ResetHistory clears the execution history for a fresh demonstration run.
func (o *Orchestrator) ResetHistory() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.history = nil
}
