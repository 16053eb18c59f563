package workflow

import (
	"fmt"
	"strings"
	"time"
)

// RenderSystemReport formats an engine status snapshot as the system report.
func RenderSystemReport(st Status, now time.Time) string {
	var b strings.Builder
	b.WriteString("\nSOCIETY OF MIND SYSTEM REPORT\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", now.Format(timestampLayout))

	b.WriteString("SYSTEM OVERVIEW:\n")
	fmt.Fprintf(&b, "• Total Projects Executed: %d\n", st.State.TotalProjects)
	fmt.Fprintf(&b, "• Successful Projects: %d\n", st.State.SuccessfulProjects)
	fmt.Fprintf(&b, "• Success Rate: %.1f%%\n", st.SuccessRate*100)
	fmt.Fprintf(&b, "• System Uptime: %s\n", st.State.InitializedAt.Format(time.RFC3339))

	b.WriteString("\nPERFORMANCE METRICS:\n")
	fmt.Fprintf(&b, "• Average Execution Time: %.1f seconds\n", st.State.Performance.AvgExecutionSeconds)
	fmt.Fprintf(&b, "• Average Teams per Project: %.1f\n", st.State.Performance.AvgTeamsPerProject)
	fmt.Fprintf(&b, "• Average Human Interventions: %.1f\n", st.State.Performance.AvgInterventionsPerProject)

	b.WriteString("\nINNER TEAM PERFORMANCE:\n")
	fmt.Fprintf(&b, "• Total Team Executions: %d\n", st.TeamMetrics.TotalExecutions)
	fmt.Fprintf(&b, "• Successful Executions: %d\n", st.TeamMetrics.SuccessfulExecutions)
	fmt.Fprintf(&b, "• Average Result Length: %.0f characters\n", st.TeamMetrics.AverageResultLength)

	b.WriteString("\nOUTER COORDINATION STATUS:\n")
	fmt.Fprintf(&b, "• Active Teams: %d\n", st.Coordination.ActiveTeamsCount)
	fmt.Fprintf(&b, "• Completed Teams: %d\n", st.Coordination.CompletedTeamsCount)
	fmt.Fprintf(&b, "• Overall Quality Score: %.1f/100\n", st.Coordination.OverallQualityScore)

	b.WriteString("\nRECENT ACTIVITY:\n")
	last := st.LastProject
	if last == "" {
		last = "None"
	}
	fmt.Fprintf(&b, "• Last Project: %s\n", last)
	fmt.Fprintf(&b, "• Project History: %d projects\n", st.HistoryCount)

	b.WriteString("\nSYSTEM HEALTH: ✅ OPERATIONAL\n")
	return b.String()
}

// SystemReport renders the current system report.
func (e *Engine) SystemReport() string {
	return RenderSystemReport(e.Status(), e.now())
}
