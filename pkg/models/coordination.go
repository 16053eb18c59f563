package models

import "time"

// CoordinationDecision records one human decision made during coordination.
type CoordinationDecision struct {
	// Type labels the decision, e.g. "coordination_approval".
	Type string `json:"type"`
	// Approved is the classified approval outcome.
	Approved bool `json:"approved"`
	// Feedback is the human's raw response.
	Feedback string `json:"feedback,omitempty"`
}

// ResourceOutcome bundles the resource step's artifacts.
type ResourceOutcome struct {
	// Requests maps each team to its derived resource request.
	Requests map[string]ResourceRequest `json:"requests"`
	// Plan is the computed allocation plan.
	Plan AllocationPlan `json:"plan"`
	// HumanDecision is the feedback from the allocation gate.
	HumanDecision string `json:"human_decision,omitempty"`
	// Approved is the allocation gate outcome.
	Approved bool `json:"approved"`
}

// QualityOutcome bundles the quality step's artifacts.
type QualityOutcome struct {
	// Assessments maps each team to its scored rubric.
	Assessments map[string]QualityAssessment `json:"individual_assessments"`
	// Report is the rendered comprehensive quality report.
	Report string `json:"comprehensive_report,omitempty"`
}

// CoordinationResult is the outer layer's artifact bundle for one project.
// A result is always produced, even when individual steps fail; step failures
// are recorded in Errors and later steps still run.
type CoordinationResult struct {
	// Timestamp is when coordination started.
	Timestamp time.Time `json:"timestamp"`
	// Steps lists the completed step descriptions in order.
	Steps []string `json:"coordination_steps"`
	// Decisions lists the human decisions made during coordination.
	Decisions []CoordinationDecision `json:"decisions_made"`
	// Dependencies maps each team to the teams it depends on.
	Dependencies map[string][]string `json:"dependencies,omitempty"`
	// IntegrationOrder is the computed integration sequence.
	IntegrationOrder []string `json:"integration_order,omitempty"`
	// IntegrationPlan is the rendered integration plan text.
	IntegrationPlan string `json:"integration_plan"`
	// Resources is the resource step outcome.
	Resources ResourceOutcome `json:"resource_allocations"`
	// Quality is the quality step outcome.
	Quality QualityOutcome `json:"quality_assessments"`
	// Recommendations is the synthesized final recommendation list.
	Recommendations []string `json:"final_recommendations"`
	// Errors records per-step failures that did not stop coordination.
	Errors []string `json:"errors,omitempty"`
}
