package models

import "time"

// Inner team identifiers. The three teams are fixed; unknown identifiers are
// handled by the generic generator.
const (
	// TeamResearch is the Research & Analysis inner team.
	TeamResearch = "research_analysis"
	// TeamCreative is the Creative & Design inner team.
	TeamCreative = "creative_design"
	// TeamTechnical is the Technical Implementation inner team.
	TeamTechnical = "technical_implementation"
)

// InnerTeams returns the fixed inner team identifiers in execution order.
func InnerTeams() []string {
	return []string{TeamResearch, TeamCreative, TeamTechnical}
}

// TeamTitle renders a team identifier as a display title,
// e.g. "research_analysis" becomes "Research Analysis".
func TeamTitle(team string) string {
	out := make([]byte, 0, len(team))
	upper := true
	for i := 0; i < len(team); i++ {
		c := team[i]
		if c == '_' {
			out = append(out, ' ')
			upper = true
			continue
		}
		if upper && c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		upper = false
		out = append(out, c)
	}
	return string(out)
}

// TeamLabel renders a team identifier in its underscore-preserving title
// form, e.g. "research_analysis" becomes "Research_Analysis". Agent names
// and prompt contexts use this form.
func TeamLabel(team string) string {
	out := make([]byte, 0, len(team))
	upper := true
	for i := 0; i < len(team); i++ {
		c := team[i]
		if c == '_' {
			out = append(out, c)
			upper = true
			continue
		}
		if upper && c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		upper = false
		out = append(out, c)
	}
	return string(out)
}

// TeamResult is one team's deliverable for one project cycle. Results are
// immutable after creation and owned by the orchestrator's execution history.
type TeamResult struct {
	// Team is the team identifier that produced the output.
	Team string `json:"team"`
	// Output is the generated deliverable text.
	Output string `json:"output"`
	// Agents lists the names of the agents involved.
	Agents []string `json:"agents"`
	// Timestamp is when the execution finished.
	Timestamp time.Time `json:"timestamp"`
	// RequirementsLen is the length of the requirements text the team received.
	RequirementsLen int `json:"requirements_length"`
	// OutputLen is the length of the deliverable text.
	OutputLen int `json:"result_length"`
	// Success reports whether generation completed without error.
	Success bool `json:"success"`
}
