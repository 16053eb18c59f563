package coordination

import (
	"reflect"
	"strings"
	"testing"

	"github.com/societymind/somind/pkg/models"
)

func TestRecommendationsKeywordPairs(t *testing.T) {
	results := []models.TeamResult{
		{Team: "a", Output: "AI driven personalization with strong market growth"},
		{Team: "b", Output: "user experience and technical scalability planning"},
	}
	plan := models.AllocationPlan{BudgetCap: 500000}
	reqs := models.Requirements{Title: "Product launch"}

	recs := Recommendations(results, plan, nil, reqs)

	for _, want := range []string{
		"Prioritize AI-powered personalization as core differentiator",
		"Focus on rapid market entry to capitalize on growth opportunity",
		"Invest heavily in user experience optimization and testing",
		"Implement scalable architecture from launch to support growth",
		"Establish regular milestone reviews and progress checkpoints",
	} {
		if !containsString(recs, want) {
			t.Errorf("recommendations missing %q", want)
		}
	}
	if containsString(recs, "Implement rapid response protocols with 24/7 monitoring") {
		t.Error("crisis recommendation present for non-crisis requirements")
	}
}

func TestRecommendationsOverBudget(t *testing.T) {
	plan := models.AllocationPlan{
		BudgetCap: 500000,
		Analysis:  models.ResourceAnalysis{TotalBudget: 600000},
	}
	recs := Recommendations(nil, plan, nil, models.Requirements{Title: "Launch"})
	if !containsString(recs, "Consider phased implementation to manage budget constraints") {
		t.Error("missing over-budget recommendation")
	}
}

func TestRecommendationsLowQualityTeams(t *testing.T) {
	assessments := []models.QualityAssessment{
		{Team: "research_analysis", OverallScore: 90},
		{Team: "creative_design", OverallScore: 72},
		{Team: "technical_implementation", OverallScore: 65},
	}
	recs := Recommendations(nil, models.AllocationPlan{BudgetCap: 500000}, assessments, models.Requirements{Title: "Launch"})

	want := "Provide additional support and review for: creative_design, technical_implementation"
	if !containsString(recs, want) {
		t.Errorf("missing support recommendation %q in %v", want, recs)
	}
}

func TestRecommendationsCrisis(t *testing.T) {
	reqs := models.Requirements{Title: "Respond to data breach incident"}
	recs := Recommendations(nil, models.AllocationPlan{BudgetCap: 500000}, nil, reqs)

	if !containsString(recs, "Implement rapid response protocols with 24/7 monitoring") {
		t.Error("missing crisis recommendation")
	}
	if containsString(recs, "Establish regular milestone reviews and progress checkpoints") {
		t.Error("milestone recommendation present for crisis requirements")
	}
}

func TestRecommendationsStandingTail(t *testing.T) {
	recs := Recommendations(nil, models.AllocationPlan{BudgetCap: 500000}, nil, models.Requirements{Title: "Launch"})
	if len(recs) < len(standingRecommendations) {
		t.Fatalf("got %d recommendations", len(recs))
	}
	tail := recs[len(recs)-len(standingRecommendations):]
	for i, want := range standingRecommendations {
		if tail[i] != want {
			t.Errorf("tail[%d] = %q, want %q", i, tail[i], want)
		}
	}
}

func TestRecommendationsIdempotent(t *testing.T) {
	results := []models.TeamResult{
		{Team: "a", Output: strings.Repeat("ai personalization market growth ", 5)},
	}
	plan := models.AllocationPlan{BudgetCap: 500000, Analysis: models.ResourceAnalysis{TotalBudget: 600000}}
	assessments := []models.QualityAssessment{{Team: "a", OverallScore: 75}}
	reqs := models.Requirements{Title: "Launch"}

	first := Recommendations(results, plan, assessments, reqs)
	second := Recommendations(results, plan, assessments, reqs)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("recommendations not idempotent:\n%v\n%v", first, second)
	}
}

func containsString(items []string, want string) bool {
	for _, item := range items {
		if item == want {
			return true
		}
	}
	return false
}
