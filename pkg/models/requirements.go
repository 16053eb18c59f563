package models

import (
	"fmt"
	"strings"
)

// Detail is one ordered key/value entry in a requirements payload. An ordered
// slice keeps rendered requirement text deterministic across runs.
type Detail struct {
	// Key is the field label, e.g. "target_market".
	Key string `json:"key"`
	// Value is the field content.
	Value string `json:"value"`
}

// Requirements describes the project handed to the society for one run.
type Requirements struct {
	// Title is the short project name.
	Title string `json:"title"`
	// Summary is a one-line description of the objective.
	Summary string `json:"summary,omitempty"`
	// Details are additional ordered fields describing the project.
	Details []Detail `json:"details,omitempty"`
	// Objectives lists the key objectives or immediate actions needed.
	Objectives []string `json:"objectives,omitempty"`
	// Budget is the total budget cap in dollars. Zero means the default cap.
	Budget int `json:"budget,omitempty"`
	// TimelineWeeks is the overall timeline cap in weeks. Zero means the
	// default cap.
	TimelineWeeks int `json:"timeline_weeks,omitempty"`
}

// Default resource caps applied when a requirements payload leaves them unset.
const (
	DefaultBudgetCap   = 500000
	DefaultTimelineCap = 12
)

// BudgetCap returns the budget cap, falling back to the default.
func (r Requirements) BudgetCap() int {
	if r.Budget > 0 {
		return r.Budget
	}
	return DefaultBudgetCap
}

// TimelineCap returns the timeline cap in weeks, falling back to the default.
func (r Requirements) TimelineCap() int {
	if r.TimelineWeeks > 0 {
		return r.TimelineWeeks
	}
	return DefaultTimelineCap
}

// Text renders the payload as plain text. The rendering feeds the team
// requirement templates and the keyword scans, so it must be deterministic.
func (r Requirements) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "project: %s\n", r.Title)
	if r.Summary != "" {
		fmt.Fprintf(&b, "description: %s\n", r.Summary)
	}
	for _, d := range r.Details {
		fmt.Fprintf(&b, "%s: %s\n", d.Key, d.Value)
	}
	if r.Budget > 0 {
		fmt.Fprintf(&b, "budget: $%d\n", r.Budget)
	}
	if r.TimelineWeeks > 0 {
		fmt.Fprintf(&b, "timeline_weeks: %d\n", r.TimelineWeeks)
	}
	for _, o := range r.Objectives {
		fmt.Fprintf(&b, "- %s\n", o)
	}
	return b.String()
}

// Crisis reports whether the payload describes a crisis response. The check
// scans the rendered text the same way the recommendation pass does.
func (r Requirements) Crisis() bool {
	text := strings.ToLower(r.Text())
	for _, marker := range []string{"crisis", "incident", "breach"} {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}
