package models

import (
	"fmt"
	"time"
)

// EfficiencyMetrics are the derived per-run efficiency figures.
type EfficiencyMetrics struct {
	// AvgSecondsPerTeam is execution time divided by teams executed.
	AvgSecondsPerTeam float64 `json:"average_time_per_team"`
	// AvgQualityScore is the mean of the per-team overall quality scores.
	AvgQualityScore float64 `json:"average_quality_score"`
	// InterventionRate is interventions divided by teams executed.
	InterventionRate float64 `json:"human_intervention_rate"`
	// DeliverableEfficiency is deliverable length divided by duration.
	DeliverableEfficiency float64 `json:"deliverable_efficiency"`
}

// PerformanceMetrics summarizes one completed workflow run.
type PerformanceMetrics struct {
	// ExecutionSeconds is the wall-clock run duration.
	ExecutionSeconds float64 `json:"execution_time_seconds"`
	// ExecutionFormatted is the duration formatted as "3m 24s".
	ExecutionFormatted string `json:"execution_time_formatted"`
	// TeamsExecuted is the number of inner teams that ran.
	TeamsExecuted int `json:"teams_executed"`
	// CoordinationSuccess mirrors the workflow success flag.
	CoordinationSuccess bool `json:"coordination_success"`
	// InterventionCount is the number of human gate calls in the run.
	InterventionCount int `json:"human_interventions_count"`
	// DeliverableLength is the final deliverable size in characters.
	DeliverableLength int `json:"deliverable_length"`
	// QualityScores maps each team to its overall quality score.
	QualityScores map[string]float64 `json:"quality_scores"`
	// Efficiency holds the derived efficiency figures.
	Efficiency EfficiencyMetrics `json:"efficiency_metrics"`
}

// FormatDuration renders seconds the way run summaries expect, e.g. "3m 24s".
func FormatDuration(seconds float64) string {
	m := int(seconds) / 60
	s := int(seconds) % 60
	return fmt.Sprintf("%dm %ds", m, s)
}

// WorkflowResult is the complete record of one project cycle. Partial results
// are still recorded when the run fails; Error carries the failure.
type WorkflowResult struct {
	// RunID uniquely identifies the run.
	RunID string `json:"run_id"`
	// Scenario is the scenario identifier the run executed.
	Scenario string `json:"scenario"`
	// StartTime is when the run began.
	StartTime time.Time `json:"start_time"`
	// EndTime is when the run finished, success or not.
	EndTime time.Time `json:"end_time"`
	// Requirements is the project payload handed to the society.
	Requirements Requirements `json:"project_requirements"`
	// TeamResults maps each team to its deliverable record.
	TeamResults map[string]TeamResult `json:"inner_team_results"`
	// Coordination is the outer layer's artifact bundle.
	Coordination CoordinationResult `json:"outer_coordination_results"`
	// FinalDeliverable is the assembled combined deliverable text.
	FinalDeliverable string `json:"final_deliverable"`
	// Interventions lists every human gate record in the run.
	Interventions []InterventionRecord `json:"human_interventions"`
	// Metrics summarizes run performance.
	Metrics PerformanceMetrics `json:"performance_metrics"`
	// Success reports whether the full sequence completed.
	Success bool `json:"success"`
	// Error carries the failure when Success is false.
	Error string `json:"error,omitempty"`
}

// SystemPerformance accumulates process-wide totals and running averages.
type SystemPerformance struct {
	// TotalExecutionSeconds is the summed duration of all runs.
	TotalExecutionSeconds float64 `json:"total_execution_time"`
	// TotalTeamsExecuted is the summed team count across runs.
	TotalTeamsExecuted int `json:"total_teams_executed"`
	// TotalInterventions is the summed gate-call count across runs.
	TotalInterventions int `json:"total_human_interventions"`
	// AvgExecutionSeconds is the running average run duration.
	AvgExecutionSeconds float64 `json:"average_execution_time"`
	// AvgTeamsPerProject is the running average teams per run.
	AvgTeamsPerProject float64 `json:"average_teams_per_project"`
	// AvgInterventionsPerProject is the running average gate calls per run.
	AvgInterventionsPerProject float64 `json:"average_interventions_per_project"`
}

// SystemState is the process-wide counter block. It spans the engine's
// lifetime and is reset only by explicit re-initialization.
type SystemState struct {
	// InitializedAt is when the engine was created or last reset.
	InitializedAt time.Time `json:"initialization_time"`
	// TotalProjects counts every run, failed or not.
	TotalProjects int `json:"total_projects"`
	// SuccessfulProjects counts runs that completed the full sequence.
	SuccessfulProjects int `json:"successful_projects"`
	// Performance holds the accumulated totals and averages.
	Performance SystemPerformance `json:"system_performance"`
}

// SuccessRate returns the fraction of successful runs, zero-safe.
func (s SystemState) SuccessRate() float64 {
	if s.TotalProjects == 0 {
		return 0
	}
	return float64(s.SuccessfulProjects) / float64(s.TotalProjects)
}
