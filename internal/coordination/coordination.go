// Package coordination implements the outer-team layer: integration planning
// over the team dependency graph, resource allocation against the project
// caps, quality assessment, and final recommendation synthesis. Steps never
// retry; a step failure is recorded on the result and later steps still run.
package coordination

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/societymind/somind/internal/gate"
	"github.com/societymind/somind/internal/graph"
	"github.com/societymind/somind/internal/roster"
	"github.com/societymind/somind/pkg/models"
)

const timestampLayout = "2006-01-02 15:04:05"

// Quality status values recorded in the project state.
const (
	StatusPass             = "PASS"
	StatusNeedsImprovement = "NEEDS_IMPROVEMENT"
)

// TeamQuality is the recorded quality standing of one team.
type TeamQuality struct {
	// Score is the team's most recent overall quality score.
	Score float64 `json:"score"`
	// Status is StatusPass or StatusNeedsImprovement.
	Status string `json:"status"`
	// LastAssessed is when the score was recorded.
	LastAssessed time.Time `json:"last_assessed"`
}

// ProjectState tracks coordination progress across runs.
type ProjectState struct {
	// ActiveTeams lists the teams involved in the latest run.
	ActiveTeams []string `json:"active_teams"`
	// CompletedTeams accumulates every team that has completed a run.
	CompletedTeams []string `json:"completed_teams"`
	// Allocated reports whether a resource allocation has been recorded.
	Allocated bool `json:"resources_allocated"`
	// Quality maps each assessed team to its latest quality standing.
	Quality map[string]TeamQuality `json:"quality_status"`
}

// StatusSummary is a point-in-time view of coordination progress.
type StatusSummary struct {
	State               ProjectState `json:"project_state"`
	CoordinationCount   int          `json:"coordination_history_count"`
	LastCoordination    time.Time    `json:"last_coordination"`
	ActiveTeamsCount    int          `json:"active_teams_count"`
	CompletedTeamsCount int          `json:"completed_teams_count"`
	OverallQualityScore float64      `json:"overall_quality_score"`
	// AllocationStatus is "ALLOCATED" once a plan has been recorded,
	// otherwise "PENDING".
	AllocationStatus string `json:"resource_allocation_status"`
}

// Coordinator runs the four-step outer coordination pass and keeps the
// project state between runs.
type Coordinator struct {
	gates    *gate.Manager
	agents   *roster.Roster
	scorer   Scorer
	now      func() time.Time
	debugLog func(format string, args ...interface{})

	mu      sync.Mutex
	history []models.CoordinationResult
	state   ProjectState
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithScorer replaces the default StandardScorer.
func WithScorer(s Scorer) Option {
	return func(c *Coordinator) {
		if s != nil {
			c.scorer = s
		}
	}
}

// WithClock overrides the time source, used in tests.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) {
		c.now = now
	}
}

// WithDebugLog sets the debug logging function.
func WithDebugLog(fn func(format string, args ...interface{})) Option {
	return func(c *Coordinator) {
		c.debugLog = fn
	}
}

// New creates a Coordinator around the gate manager and agent roster.
func New(gates *gate.Manager, agents *roster.Roster, opts ...Option) *Coordinator {
	c := &Coordinator{
		gates:    gates,
		agents:   agents,
		scorer:   StandardScorer{},
		now:      time.Now,
		debugLog: func(format string, args ...interface{}) {}, // no-op by default
		state:    ProjectState{Quality: make(map[string]TeamQuality)},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Coordinate runs the four coordination steps over the inner-team results.
// A CoordinationResult is always returned; the error is non-nil only when the
// context was cancelled, in which case the result holds the completed steps.
func (c *Coordinator) Coordinate(ctx context.Context, results []models.TeamResult, reqs models.Requirements) (models.CoordinationResult, error) {
	c.debugLog("[coordination] coordinating %d team results", len(results))

	result := models.CoordinationResult{Timestamp: c.now()}
	director := c.agents.Director()

	// Step 1: integration planning over the dependency graph.
	g := graph.New()
	g.SetDebugLog(c.debugLog)
	g.Build(results)

	result.Dependencies = g.Dependencies()
	result.IntegrationOrder = g.IntegrationOrder()
	result.IntegrationPlan = renderIntegrationPlan(result.Dependencies, result.IntegrationOrder, g.HasCycle(), c.now())
	result.Steps = append(result.Steps, "Integration plan created")
	c.agents.RecordCoordination(roster.NameTeamCoordinator, roster.CoordTaskIntegration, true)

	decision, err := c.gates.ApproveCoordination(ctx, director, results, result.IntegrationPlan)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("coordination approval gate: %v", err))
		if ctx.Err() != nil {
			return result, err
		}
	} else {
		result.Decisions = append(result.Decisions, models.CoordinationDecision{
			Type:     "coordination_approval",
			Approved: decision.Approved(),
			Feedback: decision.Feedback,
		})
	}

	// Step 2: resource allocation against the project caps.
	requests := DeriveRequests(results)
	plan := BuildAllocationPlan(requests, reqs.BudgetCap(), reqs.TimelineCap(), c.now())

	outcome := models.ResourceOutcome{
		Requests: requestMap(requests),
		Plan:     plan,
	}
	allocation, err := c.gates.AllocateResources(ctx, director, requests)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("resource allocation gate: %v", err))
		if ctx.Err() != nil {
			result.Resources = outcome
			return result, err
		}
	} else {
		outcome.HumanDecision = allocation.Feedback
		outcome.Approved = allocation.Approved()
		result.Decisions = append(result.Decisions, models.CoordinationDecision{
			Type:     "resource_allocation",
			Approved: allocation.Approved(),
			Feedback: allocation.Feedback,
		})
	}
	result.Resources = outcome
	result.Steps = append(result.Steps, "Resource allocation completed")
	c.agents.RecordCoordination(roster.NameResourceManager, roster.CoordTaskResourceAllocation, true)
	if len(plan.Analysis.Conflicts) > 0 {
		c.agents.RecordCoordination(roster.NameTeamCoordinator, roster.CoordTaskConflictResolution, outcome.Approved)
	}

	// Step 3: quality assessment. Advisory only, no gate.
	assessments := make([]models.QualityAssessment, 0, len(results))
	byTeam := make(map[string]models.QualityAssessment, len(results))
	for _, res := range results {
		a := Assess(c.scorer, res.Team, res.Output, c.now())
		assessments = append(assessments, a)
		byTeam[res.Team] = a
		c.debugLog("[coordination] %s quality score %.1f", res.Team, a.OverallScore)
	}
	result.Quality = models.QualityOutcome{
		Assessments: byTeam,
		Report:      RenderQualityReport(assessments, c.now()),
	}
	result.Steps = append(result.Steps, "Quality assessment completed")
	c.agents.RecordCoordination(roster.NameQualityAssurance, roster.CoordTaskQualityReview, true)

	// Step 4: recommendation synthesis.
	result.Recommendations = Recommendations(results, plan, assessments, reqs)
	result.Steps = append(result.Steps, "Final recommendations generated")

	c.mu.Lock()
	c.history = append(c.history, result)
	c.updateStateLocked(results, assessments)
	c.mu.Unlock()

	return result, nil
}

func requestMap(requests []models.ResourceRequest) map[string]models.ResourceRequest {
	out := make(map[string]models.ResourceRequest, len(requests))
	for _, req := range requests {
		out[req.Team] = req
	}
	return out
}

func (c *Coordinator) updateStateLocked(results []models.TeamResult, assessments []models.QualityAssessment) {
	c.state.ActiveTeams = c.state.ActiveTeams[:0]
	for _, res := range results {
		c.state.ActiveTeams = append(c.state.ActiveTeams, res.Team)
		if !contains(c.state.CompletedTeams, res.Team) {
			c.state.CompletedTeams = append(c.state.CompletedTeams, res.Team)
		}
	}
	c.state.Allocated = true

	for _, a := range assessments {
		status := StatusNeedsImprovement
		if a.Passed() {
			status = StatusPass
		}
		c.state.Quality[a.Team] = TeamQuality{
			Score:        a.OverallScore,
			Status:       status,
			LastAssessed: c.now(),
		}
	}
}

func contains(items []string, want string) bool {
	for _, item := range items {
		if item == want {
			return true
		}
	}
	return false
}

// History returns a copy of the coordination results in run order.
func (c *Coordinator) History() []models.CoordinationResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.CoordinationResult, len(c.history))
	copy(out, c.history)
	return out
}

// State returns a copy of the current project state.
func (c *Coordinator) State() ProjectState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateCopyLocked()
}

func (c *Coordinator) stateCopyLocked() ProjectState {
	state := ProjectState{
		ActiveTeams:    append([]string{}, c.state.ActiveTeams...),
		CompletedTeams: append([]string{}, c.state.CompletedTeams...),
		Allocated:      c.state.Allocated,
		Quality:        make(map[string]TeamQuality, len(c.state.Quality)),
	}
	for team, q := range c.state.Quality {
		state.Quality[team] = q
	}
	return state
}

// StatusSummary reports coordination progress for dashboards and reports.
func (c *Coordinator) StatusSummary() StatusSummary {
	c.mu.Lock()
	defer c.mu.Unlock()

	summary := StatusSummary{
		State:               c.stateCopyLocked(),
		CoordinationCount:   len(c.history),
		ActiveTeamsCount:    len(c.state.ActiveTeams),
		CompletedTeamsCount: len(c.state.CompletedTeams),
		AllocationStatus:    "PENDING",
	}
	if len(c.history) > 0 {
		summary.LastCoordination = c.history[len(c.history)-1].Timestamp
	}
	if c.state.Allocated {
		summary.AllocationStatus = "ALLOCATED"
	}

	total := 0.0
	for _, q := range c.state.Quality {
		total += q.Score
	}
	if len(c.state.Quality) > 0 {
		summary.OverallQualityScore = total / float64(len(c.state.Quality))
	}
	return summary
}

// Reset clears the coordination history and project state for a new project.
func (c *Coordinator) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history = nil
	c.state = ProjectState{Quality: make(map[string]TeamQuality)}
}
