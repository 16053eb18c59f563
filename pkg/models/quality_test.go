package models

import (
	"math"
	"testing"
)

func TestCriteria_WeightsSumToOne(t *testing.T) {
	var total float64
	for _, c := range Criteria() {
		total += c.Weight()
	}
	if math.Abs(total-1.0) > 1e-9 {
		t.Errorf("criterion weights sum = %v, want 1.0", total)
	}
}

func TestQualityCriterion_Weight(t *testing.T) {
	tests := []struct {
		name      string
		criterion QualityCriterion
		want      float64
	}{
		{"completeness", CriterionCompleteness, 0.25},
		{"accuracy", CriterionAccuracy, 0.25},
		{"consistency", CriterionConsistency, 0.20},
		{"clarity", CriterionClarity, 0.15},
		{"alignment", CriterionAlignment, 0.15},
		{"unknown weighs zero", QualityCriterion("novelty"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.criterion.Weight(); got != tt.want {
				t.Errorf("Weight(%q) = %v, want %v", tt.criterion, got, tt.want)
			}
		})
	}
}

func TestQualityCriterion_Description(t *testing.T) {
	for _, c := range Criteria() {
		if c.Description() == "" {
			t.Errorf("Description(%q) is empty", c)
		}
	}
	if got := QualityCriterion("novelty").Description(); got != "" {
		t.Errorf("unknown criterion description = %q, want empty", got)
	}
}

func TestQualityAssessment_Passed(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  bool
	}{
		{"well above threshold", 95, true},
		{"exactly at threshold", 80, true},
		{"just below threshold", 79.99, false},
		{"zero", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := QualityAssessment{OverallScore: tt.score}
			if got := a.Passed(); got != tt.want {
				t.Errorf("Passed() with score %v = %v, want %v", tt.score, got, tt.want)
			}
		})
	}
}
