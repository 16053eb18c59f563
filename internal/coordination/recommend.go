package coordination

import (
	"fmt"
	"strings"

	"github.com/societymind/somind/pkg/models"
)

// insightPairs map keyword co-occurrence in the combined team outputs to a
// strategic recommendation.
var insightPairs = []struct {
	first, second  string
	recommendation string
}{
	{"ai", "personalization", "Prioritize AI-powered personalization as core differentiator"},
	{"market", "growth", "Focus on rapid market entry to capitalize on growth opportunity"},
	{"user", "experience", "Invest heavily in user experience optimization and testing"},
	{"technical", "scalability", "Implement scalable architecture from launch to support growth"},
}

// standingRecommendations close out every recommendation list.
var standingRecommendations = []string{
	"Establish cross-team communication protocols",
	"Implement shared project management and tracking systems",
	"Create integrated testing and validation procedures",
	"Plan for post-launch monitoring and optimization",
}

// Recommendations synthesizes the final recommendation list. It is a pure
// function of its inputs: keyword hits over the combined outputs, the budget
// total against the cap, failing quality scores, the crisis marker, then the
// standing tail.
func Recommendations(results []models.TeamResult, plan models.AllocationPlan,
	assessments []models.QualityAssessment, reqs models.Requirements) []string {

	var joined strings.Builder
	for i, res := range results {
		if i > 0 {
			joined.WriteString(" ")
		}
		joined.WriteString(res.Output)
	}
	combined := strings.ToLower(joined.String())

	var recs []string
	for _, pair := range insightPairs {
		if strings.Contains(combined, pair.first) && strings.Contains(combined, pair.second) {
			recs = append(recs, pair.recommendation)
		}
	}

	if plan.Analysis.TotalBudget > plan.BudgetCap {
		recs = append(recs, "Consider phased implementation to manage budget constraints")
	}

	var lowQuality []string
	for _, a := range assessments {
		if !a.Passed() {
			lowQuality = append(lowQuality, a.Team)
		}
	}
	if len(lowQuality) > 0 {
		recs = append(recs, fmt.Sprintf("Provide additional support and review for: %s",
			strings.Join(lowQuality, ", ")))
	}

	if reqs.Crisis() {
		recs = append(recs, "Implement rapid response protocols with 24/7 monitoring")
	} else {
		recs = append(recs, "Establish regular milestone reviews and progress checkpoints")
	}

	return append(recs, standingRecommendations...)
}
