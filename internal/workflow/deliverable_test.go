package workflow

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/societymind/somind/pkg/models"
)

func deliverableResult() (models.WorkflowResult, []models.TeamResult) {
	result := metricsResult()
	result.Coordination.IntegrationPlan = "INTEGRATION PLAN\n" + strings.Repeat("p", 600)
	for i := 1; i <= 12; i++ {
		result.Coordination.Recommendations = append(result.Coordination.Recommendations,
			fmt.Sprintf("Recommendation %d", i))
	}
	ordered := []models.TeamResult{
		{Team: "research", Output: strings.Repeat("r", 1200), Success: true},
		{Team: "design", Output: "design summary", Success: true},
		{Team: "technical", Output: "technical summary", Success: true},
	}
	return result, ordered
}

func TestRenderFinalDeliverable(t *testing.T) {
	result, ordered := deliverableResult()
	now := time.Date(2025, 7, 31, 1, 30, 27, 0, time.UTC)

	text := renderFinalDeliverable(result, ordered, 5, now)

	banner := strings.Repeat("=", 80)
	for _, want := range []string{
		banner + "\nFINAL PROJECT DELIVERABLE\n" + banner,
		"Project: Product Launch\n",
		"Generated: 2025-07-31 01:30:27\n",
		"SoM Framework Version: 1.0",
		"EXECUTIVE SUMMARY:",
		"PROJECT OVERVIEW:",
		"INTEGRATED TEAM CONTRIBUTIONS:",
		"RESEARCH TEAM CONTRIBUTION:",
		"DESIGN TEAM CONTRIBUTION:",
		"TECHNICAL TEAM CONTRIBUTION:",
		"COORDINATION AND INTEGRATION INSIGHTS:",
		"Integration Strategy:",
		"Strategic Recommendations:",
		"QUALITY ASSESSMENT SUMMARY:",
		"Research: 85.0/100 ✅ APPROVED",
		"Design: 90.0/100 ✅ APPROVED",
		"Technical: 95.0/100 ✅ APPROVED",
		"HUMAN OVERSIGHT SUMMARY:",
		"Total human interventions: 5",
		"NEXT STEPS AND IMPLEMENTATION:",
		"5. Document lessons learned for future projects",
		"PROJECT SUCCESS METRICS:",
		banner + "\nEND OF DELIVERABLE\n" + banner,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("deliverable missing %q", want)
		}
	}
}

func TestRenderFinalDeliverableTruncation(t *testing.T) {
	result, ordered := deliverableResult()
	text := renderFinalDeliverable(result, ordered, 5, time.Now())

	// The 1200-character research output is cut at 1000 with an ellipsis;
	// the short outputs pass through untouched.
	if !strings.Contains(text, strings.Repeat("r", 1000)+"...") {
		t.Error("long team output not truncated at 1000 characters")
	}
	if strings.Contains(text, strings.Repeat("r", 1001)) {
		t.Error("team output exceeds the 1000 character cap")
	}
	if !strings.Contains(text, "design summary\n") {
		t.Error("short team output altered")
	}

	// The 600-character integration plan is cut at 500.
	if !strings.Contains(text, "INTEGRATION PLAN") {
		t.Error("integration plan heading missing")
	}
	if strings.Contains(text, strings.Repeat("p", 501)) {
		t.Error("integration plan exceeds the 500 character cap")
	}
}

func TestRenderFinalDeliverableRecommendationCap(t *testing.T) {
	result, ordered := deliverableResult()
	text := renderFinalDeliverable(result, ordered, 5, time.Now())

	if !strings.Contains(text, "10. Recommendation 10\n") {
		t.Error("tenth recommendation missing")
	}
	if strings.Contains(text, "11. Recommendation 11") {
		t.Error("recommendation list not capped at ten")
	}
}

func TestRenderFinalDeliverableNeedsReview(t *testing.T) {
	result, ordered := deliverableResult()
	low := result.Coordination.Quality.Assessments["design"]
	low.OverallScore = 62
	result.Coordination.Quality.Assessments["design"] = low

	text := renderFinalDeliverable(result, ordered, 5, time.Now())
	if !strings.Contains(text, "Design: 62.0/100 ⚠️ NEEDS REVIEW") {
		t.Error("failing assessment not flagged for review")
	}
}

func TestRenderFinalDeliverableSparse(t *testing.T) {
	result := models.WorkflowResult{Scenario: "crisis_management"}
	text := renderFinalDeliverable(result, nil, 0, time.Now())

	if !strings.Contains(text, "Project: Crisis Management") {
		t.Error("scenario title missing")
	}
	if strings.Contains(text, "Integration Strategy:") {
		t.Error("empty plan rendered a strategy section")
	}
	if strings.Contains(text, "Strategic Recommendations:") {
		t.Error("empty recommendations rendered a section")
	}
	if strings.Contains(text, "QUALITY ASSESSMENT SUMMARY:") {
		t.Error("empty assessments rendered a quality section")
	}
	if !strings.Contains(text, "Total human interventions: 0") {
		t.Error("oversight summary missing")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"abc", 5, "abc"},
		{"abc", 3, "abc"},
		{"abcdef", 3, "abc..."},
		{"", 10, ""},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
