package workflow

import (
	"github.com/societymind/somind/pkg/models"
)

// analyzePerformance derives the run metrics from a finished workflow
// result. Efficiency figures are only computed when at least one team ran.
func analyzePerformance(result models.WorkflowResult) models.PerformanceMetrics {
	duration := result.EndTime.Sub(result.StartTime).Seconds()

	m := models.PerformanceMetrics{
		ExecutionSeconds:    duration,
		ExecutionFormatted:  models.FormatDuration(duration),
		TeamsExecuted:       len(result.TeamResults),
		CoordinationSuccess: result.Success,
		InterventionCount:   len(result.Interventions),
		DeliverableLength:   len(result.FinalDeliverable),
		QualityScores:       make(map[string]float64),
	}
	for team, a := range result.Coordination.Quality.Assessments {
		m.QualityScores[team] = a.OverallScore
	}

	if m.TeamsExecuted == 0 {
		return m
	}

	avgQuality := 0.0
	if len(m.QualityScores) > 0 {
		total := 0.0
		for _, score := range m.QualityScores {
			total += score
		}
		avgQuality = total / float64(len(m.QualityScores))
	}
	efficiency := 0.0
	if duration > 0 {
		efficiency = float64(m.DeliverableLength) / duration
	}
	m.Efficiency = models.EfficiencyMetrics{
		AvgSecondsPerTeam:     duration / float64(m.TeamsExecuted),
		AvgQualityScore:       avgQuality,
		InterventionRate:      float64(m.InterventionCount) / float64(m.TeamsExecuted),
		DeliverableEfficiency: efficiency,
	}
	return m
}

// accumulate folds one run into the system counters and recomputes the
// running averages. Failed runs count toward the totals; only successful
// runs advance SuccessfulProjects.
func accumulate(state *models.SystemState, result models.WorkflowResult) {
	state.TotalProjects++
	if result.Success {
		state.SuccessfulProjects++
	}

	perf := &state.Performance
	perf.TotalExecutionSeconds += result.Metrics.ExecutionSeconds
	perf.TotalTeamsExecuted += result.Metrics.TeamsExecuted
	perf.TotalInterventions += result.Metrics.InterventionCount

	n := float64(state.TotalProjects)
	perf.AvgExecutionSeconds = perf.TotalExecutionSeconds / n
	perf.AvgTeamsPerProject = float64(perf.TotalTeamsExecuted) / n
	perf.AvgInterventionsPerProject = float64(perf.TotalInterventions) / n
}
