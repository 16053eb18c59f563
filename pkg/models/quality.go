package models

import "time"

// QualityCriterion is one dimension of the fixed quality rubric.
type QualityCriterion string

const (
	// CriterionCompleteness measures whether required elements are present.
	CriterionCompleteness QualityCriterion = "completeness"
	// CriterionAccuracy measures whether information is correct and validated.
	CriterionAccuracy QualityCriterion = "accuracy"
	// CriterionConsistency measures style, format, and messaging consistency.
	CriterionConsistency QualityCriterion = "consistency"
	// CriterionClarity measures how understandable the output is.
	CriterionClarity QualityCriterion = "clarity"
	// CriterionAlignment measures alignment with project objectives.
	CriterionAlignment QualityCriterion = "alignment"
)

// QualityPassThreshold is the overall score at or above which a team passes.
const QualityPassThreshold = 80.0

// Criteria returns the rubric criteria in canonical order.
func Criteria() []QualityCriterion {
	return []QualityCriterion{
		CriterionCompleteness,
		CriterionAccuracy,
		CriterionConsistency,
		CriterionClarity,
		CriterionAlignment,
	}
}

// Weight returns the fixed rubric weight for the criterion. The weights sum
// to 1.0; unknown criteria weigh zero.
func (c QualityCriterion) Weight() float64 {
	switch c {
	case CriterionCompleteness:
		return 0.25
	case CriterionAccuracy:
		return 0.25
	case CriterionConsistency:
		return 0.20
	case CriterionClarity:
		return 0.15
	case CriterionAlignment:
		return 0.15
	default:
		return 0
	}
}

// Description returns the criterion description used in assessment feedback.
func (c QualityCriterion) Description() string {
	switch c {
	case CriterionCompleteness:
		return "All required elements are present"
	case CriterionAccuracy:
		return "Information is correct and validated"
	case CriterionConsistency:
		return "Consistent style, format, and messaging"
	case CriterionClarity:
		return "Clear, understandable communication"
	case CriterionAlignment:
		return "Aligned with project objectives"
	default:
		return ""
	}
}

// QualityAssessment is the scored rubric for one team output.
// Invariant: OverallScore equals the weighted sum of the criterion scores.
type QualityAssessment struct {
	// Team is the team whose output was assessed.
	Team string `json:"team"`
	// Timestamp is when the assessment ran.
	Timestamp time.Time `json:"timestamp"`
	// Scores holds the per-criterion scores on a 0-100 scale.
	Scores map[QualityCriterion]float64 `json:"scores"`
	// OverallScore is the weighted sum of the criterion scores.
	OverallScore float64 `json:"overall_score"`
	// Issues lists criteria that scored below the pass threshold.
	Issues []string `json:"issues"`
	// Recommendations lists improvement suggestions for flagged criteria.
	Recommendations []string `json:"recommendations"`
}

// Passed returns true when the overall score meets the pass threshold.
func (a QualityAssessment) Passed() bool {
	return a.OverallScore >= QualityPassThreshold
}
