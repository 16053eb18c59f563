package coordination

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/societymind/somind/pkg/models"
)

func TestCriterionWeightsSumToOne(t *testing.T) {
	sum := 0.0
	for _, c := range models.Criteria() {
		sum += c.Weight()
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("criterion weights sum to %v, want 1.0", sum)
	}
}

func TestStandardScorer(t *testing.T) {
	long := strings.Repeat("x", 1500)
	tests := []struct {
		criterion models.QualityCriterion
		output    string
		want      float64
	}{
		{models.CriterionCompleteness, long, 100},
		{models.CriterionCompleteness, strings.Repeat("x", 500), 50},
		{models.CriterionAccuracy, long, 85},
		{models.CriterionConsistency, long, 90},
		{models.CriterionClarity, long, 80},
		{models.CriterionAlignment, long, 88},
	}

	s := StandardScorer{}
	for _, tt := range tests {
		if got := s.Score(tt.criterion, "team", tt.output); got != tt.want {
			t.Errorf("Score(%s, %d chars) = %v, want %v", tt.criterion, len(tt.output), got, tt.want)
		}
	}
}

func TestAssess(t *testing.T) {
	now := time.Date(2025, 7, 31, 1, 27, 0, 0, time.UTC)
	output := strings.Repeat("x", 2000)

	a := Assess(StandardScorer{}, models.TeamResearch, output, now)
	if a.Team != models.TeamResearch {
		t.Errorf("Team = %q", a.Team)
	}
	if len(a.Scores) != len(models.Criteria()) {
		t.Errorf("scored %d criteria, want %d", len(a.Scores), len(models.Criteria()))
	}

	want := 0.0
	for criterion, score := range a.Scores {
		want += score * criterion.Weight()
	}
	if math.Abs(a.OverallScore-want) > 1e-9 {
		t.Errorf("OverallScore = %v, want weighted sum %v", a.OverallScore, want)
	}
	if !a.Passed() {
		t.Errorf("expected pass at score %v", a.OverallScore)
	}
	if len(a.Issues) != 0 {
		t.Errorf("unexpected issues: %v", a.Issues)
	}
}

func TestAssessFlagsLowScores(t *testing.T) {
	now := time.Now()
	// 300 chars scores completeness at 30, well below the threshold.
	a := Assess(StandardScorer{}, models.TeamCreative, strings.Repeat("x", 300), now)

	if a.Passed() {
		t.Errorf("expected failure at score %v", a.OverallScore)
	}
	if len(a.Issues) != 1 || a.Issues[0] != "Low completeness score: 30" {
		t.Errorf("Issues = %v", a.Issues)
	}
	wantRec := "Improve completeness: All required elements are present"
	if len(a.Recommendations) != 1 || a.Recommendations[0] != wantRec {
		t.Errorf("Recommendations = %v, want [%s]", a.Recommendations, wantRec)
	}
}

func TestRenderQualityReport(t *testing.T) {
	now := time.Date(2025, 7, 31, 1, 27, 0, 0, time.UTC)
	assessments := []models.QualityAssessment{
		Assess(StandardScorer{}, models.TeamResearch, strings.Repeat("x", 2000), now),
		Assess(StandardScorer{}, models.TeamCreative, strings.Repeat("x", 300), now),
	}

	report := RenderQualityReport(assessments, now)
	for _, want := range []string{
		"QUALITY ASSURANCE REPORT",
		"Generated: 2025-07-31 01:27:00",
		"QUALITY CRITERIA:",
		"RESEARCH_ANALYSIS:",
		"- Status: PASS",
		"CREATIVE_DESIGN:",
		"- Status: NEEDS_IMPROVEMENT",
		"- Teams Passing (≥80): 1",
		"- Teams Needing Improvement: 1",
		"- Total Issues Identified: 1",
		"- Low completeness score: 30",
		"- Improve completeness: All required elements are present",
		"HUMAN VALIDATION REQUIRED:",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestRenderQualityReportEmpty(t *testing.T) {
	report := RenderQualityReport(nil, time.Now())
	if !strings.Contains(report, "- Average Quality Score: 0.0/100") {
		t.Error("empty report missing zero average")
	}
}

func TestDedupe(t *testing.T) {
	got := dedupe([]string{"a", "b", "a", "c", "b"})
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Errorf("dedupe = %v, want [a b c]", got)
	}
}
