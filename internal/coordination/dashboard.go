package coordination

import (
	"fmt"
	"strings"
	"time"

	"github.com/societymind/somind/pkg/models"
)

// RenderDashboard formats a point-in-time status summary as the project
// coordination dashboard. Teams appear in completion order.
func RenderDashboard(s StatusSummary, now time.Time) string {
	var b strings.Builder
	b.WriteString("\nPROJECT COORDINATION DASHBOARD\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", now.Format(timestampLayout))

	b.WriteString("PROJECT OVERVIEW:\n")
	fmt.Fprintf(&b, "• Active Teams: %d\n", s.ActiveTeamsCount)
	fmt.Fprintf(&b, "• Completed Teams: %d\n", s.CompletedTeamsCount)
	fmt.Fprintf(&b, "• Overall Quality Score: %.1f/100\n", s.OverallQualityScore)
	fmt.Fprintf(&b, "• Resource Status: %s\n", s.AllocationStatus)

	b.WriteString("\nTEAM STATUS:\n")
	for _, team := range s.State.CompletedTeams {
		q, ok := s.State.Quality[team]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "• %s: %s (%.1f/100)\n", models.TeamTitle(team), q.Status, q.Score)
	}

	b.WriteString("\nCOORDINATION ACTIVITIES:\n")
	fmt.Fprintf(&b, "• Total Coordination Sessions: %d\n", s.CoordinationCount)
	last := "None"
	if !s.LastCoordination.IsZero() {
		last = s.LastCoordination.Format(timestampLayout)
	}
	fmt.Fprintf(&b, "• Last Coordination: %s\n", last)

	b.WriteString("\nRESOURCE ALLOCATIONS:\n")
	if s.State.Allocated {
		b.WriteString("• Resource allocation plan approved and active\n")
	} else {
		b.WriteString("• Resource allocation pending\n")
	}

	b.WriteString(`
NEXT ACTIONS:
• Monitor team progress and quality metrics
• Review resource utilization and adjust as needed
• Prepare for final integration and delivery
• Conduct stakeholder updates and reviews
`)
	return b.String()
}

// Dashboard renders the coordinator's current status.
func (c *Coordinator) Dashboard() string {
	return RenderDashboard(c.StatusSummary(), c.now())
}
