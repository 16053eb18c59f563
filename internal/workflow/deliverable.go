package workflow

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/societymind/somind/pkg/models"
)

var (
	deliverableBanner = strings.Repeat("=", 80)
	sectionRule       = strings.Repeat("-", 50)
)

// renderFinalDeliverable assembles the integrated project deliverable from
// the team contributions and the coordination artifacts. Team contributions
// are capped at 1000 characters and the integration strategy at 500; the cut
// is marked with an ellipsis.
func renderFinalDeliverable(result models.WorkflowResult, ordered []models.TeamResult, interventions int, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\nFINAL PROJECT DELIVERABLE\n%s\n\n", deliverableBanner, deliverableBanner)
	fmt.Fprintf(&b, "Project: %s\n", models.TeamTitle(result.Scenario))
	fmt.Fprintf(&b, "Generated: %s\n", now.Format(timestampLayout))
	b.WriteString("SoM Framework Version: 1.0\n\n")

	b.WriteString(`EXECUTIVE SUMMARY:
This deliverable represents the integrated output of a Society of Mind (SoM)
framework implementation, combining specialized inner team expertise with
outer team coordination and human oversight.

`)

	overview, err := json.MarshalIndent(result.Requirements, "", "  ")
	if err != nil {
		overview = []byte("{}")
	}
	fmt.Fprintf(&b, "PROJECT OVERVIEW:\n%s\n\nINTEGRATED TEAM CONTRIBUTIONS:\n", overview)

	for _, res := range ordered {
		heading := strings.ToUpper(strings.ReplaceAll(res.Team, "_", " "))
		fmt.Fprintf(&b, "\n\n%s TEAM CONTRIBUTION:\n%s\n%s\n", heading, sectionRule, truncate(res.Output, 1000))
	}

	fmt.Fprintf(&b, "\n\nCOORDINATION AND INTEGRATION INSIGHTS:\n%s\n", sectionRule)
	if plan := result.Coordination.IntegrationPlan; plan != "" {
		fmt.Fprintf(&b, "\nIntegration Strategy:\n%s\n", truncate(plan, 500))
	}
	if recs := result.Coordination.Recommendations; len(recs) > 0 {
		b.WriteString("\nStrategic Recommendations:\n")
		if len(recs) > 10 {
			recs = recs[:10]
		}
		for i, rec := range recs {
			fmt.Fprintf(&b, "%d. %s\n", i+1, rec)
		}
	}

	if assessments := result.Coordination.Quality.Assessments; len(assessments) > 0 {
		fmt.Fprintf(&b, "\n\nQUALITY ASSESSMENT SUMMARY:\n%s\n", sectionRule)
		for _, res := range ordered {
			a, ok := assessments[res.Team]
			if !ok {
				continue
			}
			status := "✅ APPROVED"
			if !a.Passed() {
				status = "⚠️ NEEDS REVIEW"
			}
			fmt.Fprintf(&b, "%s: %.1f/100 %s\n", models.TeamTitle(res.Team), a.OverallScore, status)
		}
	}

	fmt.Fprintf(&b, "\n\nHUMAN OVERSIGHT SUMMARY:\n%s\n", sectionRule)
	b.WriteString(`This project included strategic human intervention points ensuring:
• Quality validation at each team level
• Coordination approval for inter-team integration
• Resource allocation optimization
• Final deliverable validation and approval

`)
	fmt.Fprintf(&b, "Total human interventions: %d\n", interventions)
	b.WriteString("All critical decisions were reviewed and approved by human experts.\n")

	fmt.Fprintf(&b, "\nNEXT STEPS AND IMPLEMENTATION:\n%s\n", sectionRule)
	b.WriteString(`1. Review and approve final deliverable
2. Initiate implementation based on team recommendations
3. Establish monitoring and feedback mechanisms
4. Plan regular review and optimization cycles
5. Document lessons learned for future projects

`)
	fmt.Fprintf(&b, "PROJECT SUCCESS METRICS:\n%s\n", sectionRule)
	b.WriteString(`• All inner teams completed their objectives successfully
• Outer team coordination achieved seamless integration
• Human oversight ensured quality and strategic alignment
• Final deliverable meets all specified requirements
• SoM framework demonstrated effective human-AI collaboration

`)
	fmt.Fprintf(&b, "%s\nEND OF DELIVERABLE\n%s\n", deliverableBanner, deliverableBanner)
	return b.String()
}

// truncate caps s at n bytes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
