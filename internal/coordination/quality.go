package coordination

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/societymind/somind/pkg/models"
)

// Scorer produces a 0-100 score for one rubric criterion of a team output.
// Implementations must be safe for concurrent use.
type Scorer interface {
	Score(criterion models.QualityCriterion, team, output string) float64
}

// StandardScorer is the demo rubric: completeness scales with output length,
// the remaining criteria use fixed baselines.
type StandardScorer struct{}

// Score implements Scorer.
func (StandardScorer) Score(criterion models.QualityCriterion, team, output string) float64 {
	switch criterion {
	case models.CriterionCompleteness:
		return math.Min(100, float64(len(output))/10)
	case models.CriterionAccuracy:
		return 85
	case models.CriterionConsistency:
		return 90
	case models.CriterionClarity:
		return 80
	case models.CriterionAlignment:
		return 88
	default:
		return 85
	}
}

// Assess scores one team output against the full rubric. Every criterion
// below the pass threshold contributes an issue and an improvement
// recommendation; the overall score is the weighted criterion sum.
func Assess(scorer Scorer, team, output string, now time.Time) models.QualityAssessment {
	assessment := models.QualityAssessment{
		Team:      team,
		Timestamp: now,
		Scores:    make(map[models.QualityCriterion]float64),
	}

	for _, criterion := range models.Criteria() {
		score := scorer.Score(criterion, team, output)
		assessment.Scores[criterion] = score
		assessment.OverallScore += score * criterion.Weight()

		if score < models.QualityPassThreshold {
			assessment.Issues = append(assessment.Issues,
				fmt.Sprintf("Low %s score: %g", criterion, score))
			assessment.Recommendations = append(assessment.Recommendations,
				fmt.Sprintf("Improve %s: %s", criterion, criterion.Description()))
		}
	}
	return assessment
}

type criterionInfo struct {
	Description string  `json:"description"`
	Weight      float64 `json:"weight"`
}

func criteriaJSON() []byte {
	info := make(map[models.QualityCriterion]criterionInfo, len(models.Criteria()))
	for _, c := range models.Criteria() {
		info[c] = criterionInfo{Description: c.Description(), Weight: c.Weight()}
	}
	out, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return []byte("{}")
	}
	return out
}

func formatScores(scores map[models.QualityCriterion]float64) string {
	parts := make([]string, 0, len(scores))
	for _, c := range models.Criteria() {
		if s, ok := scores[c]; ok {
			parts = append(parts, fmt.Sprintf("%s=%.1f", c, s))
		}
	}
	return strings.Join(parts, ", ")
}

// RenderQualityReport builds the comprehensive report across all team
// assessments, in the order given. Issue and recommendation lists are capped
// at ten entries; recommendations are deduplicated keeping first appearance.
func RenderQualityReport(assessments []models.QualityAssessment, now time.Time) string {
	var b strings.Builder
	b.WriteString("QUALITY ASSURANCE REPORT\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", now.Format(timestampLayout))

	b.WriteString("QUALITY CRITERIA:\n")
	b.Write(criteriaJSON())
	b.WriteString("\n\nTEAM ASSESSMENTS:\n")

	scoreTotal := 0.0
	passing := 0
	var allIssues []string
	var allRecs []string
	for _, a := range assessments {
		scoreTotal += a.OverallScore
		if a.Passed() {
			passing++
		}
		allIssues = append(allIssues, a.Issues...)
		allRecs = append(allRecs, a.Recommendations...)

		status := "NEEDS_IMPROVEMENT"
		if a.Passed() {
			status = "PASS"
		}
		fmt.Fprintf(&b, "\n%s:\n", strings.ToUpper(a.Team))
		fmt.Fprintf(&b, "- Overall Score: %.1f/100\n", a.OverallScore)
		fmt.Fprintf(&b, "- Individual Scores: %s\n", formatScores(a.Scores))
		fmt.Fprintf(&b, "- Issues: %d\n", len(a.Issues))
		fmt.Fprintf(&b, "- Status: %s\n", status)
	}

	avg := 0.0
	if len(assessments) > 0 {
		avg = scoreTotal / float64(len(assessments))
	}

	b.WriteString("\nSUMMARY:\n")
	fmt.Fprintf(&b, "- Average Quality Score: %.1f/100\n", avg)
	fmt.Fprintf(&b, "- Teams Passing (≥80): %d\n", passing)
	fmt.Fprintf(&b, "- Teams Needing Improvement: %d\n", len(assessments)-passing)
	fmt.Fprintf(&b, "- Total Issues Identified: %d\n", len(allIssues))

	b.WriteString("\nCRITICAL ISSUES:\n")
	for _, issue := range head(allIssues, 10) {
		fmt.Fprintf(&b, "- %s\n", issue)
	}

	b.WriteString("\nIMPROVEMENT RECOMMENDATIONS:\n")
	for _, rec := range head(dedupe(allRecs), 10) {
		fmt.Fprintf(&b, "- %s\n", rec)
	}

	b.WriteString(`
HUMAN VALIDATION REQUIRED:
- Review quality criteria and weights
- Approve teams with borderline scores
- Prioritize improvement recommendations
- Make final quality acceptance decision
`)
	return b.String()
}

func head(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}

// dedupe removes duplicates keeping first appearance.
func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}
