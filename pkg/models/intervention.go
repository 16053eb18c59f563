package models

import "time"

// Decision is the tri-state outcome of a human intervention.
type Decision string

const (
	// DecisionApproved indicates the human approved the item.
	DecisionApproved Decision = "approved"
	// DecisionRejected indicates the human rejected the item.
	DecisionRejected Decision = "rejected"
	// DecisionPending indicates no response has been recorded yet.
	DecisionPending Decision = "pending"
)

// Valid returns true if the decision is a known value.
func (d Decision) Valid() bool {
	switch d {
	case DecisionApproved, DecisionRejected, DecisionPending:
		return true
	default:
		return false
	}
}

// Approved returns true for an approved decision.
func (d Decision) Approved() bool {
	return d == DecisionApproved
}

// InterventionKind labels what a gate call was asking for.
type InterventionKind string

const (
	// InterventionApproval is a plain decision approval request.
	InterventionApproval InterventionKind = "approval"
	// InterventionContextAddition asks the human for additional context.
	InterventionContextAddition InterventionKind = "context_addition"
	// InterventionConstraintSetting asks the human to review constraints.
	InterventionConstraintSetting InterventionKind = "constraint_setting"
	// InterventionOutputValidation asks the human to validate a team output.
	InterventionOutputValidation InterventionKind = "output_validation"
	// InterventionResourceAllocation asks the human to settle resource requests.
	InterventionResourceAllocation InterventionKind = "resource_allocation"
	// InterventionCoordination asks the human to approve an integration plan.
	InterventionCoordination InterventionKind = "coordination_approval"
	// InterventionFinalValidation asks the human to sign off the final deliverable.
	InterventionFinalValidation InterventionKind = "final_validation"
)

// Valid returns true if the kind is a known value.
func (k InterventionKind) Valid() bool {
	switch k {
	case InterventionApproval, InterventionContextAddition, InterventionConstraintSetting,
		InterventionOutputValidation, InterventionResourceAllocation,
		InterventionCoordination, InterventionFinalValidation:
		return true
	default:
		return false
	}
}

// InterventionResult is the structured outcome of one human gate call.
// It is produced by the gate and consumed immediately by the caller.
type InterventionResult struct {
	// Decision is the classified approval outcome.
	Decision Decision `json:"decision"`
	// Feedback is the raw free-text response from the human.
	Feedback string `json:"feedback,omitempty"`
	// AdditionalContext carries extra context supplied by the human.
	AdditionalContext string `json:"additional_context,omitempty"`
	// Constraints is the constraint list after a constraint-setting call.
	Constraints []string `json:"constraints,omitempty"`
	// Override carries replacement instructions from a "modify" response.
	Override string `json:"override_decision,omitempty"`
	// Timestamp is when the response was classified.
	Timestamp time.Time `json:"timestamp"`
	// ResponseSeconds is how long the human took to answer.
	ResponseSeconds float64 `json:"response_seconds"`
	// TimedOut reports that no response arrived within the configured
	// timeout and the default-approve policy was applied.
	TimedOut bool `json:"timed_out,omitempty"`
}

// Approved returns true when the intervention decision approved the item.
func (r InterventionResult) Approved() bool {
	return r.Decision.Approved()
}

// InterventionRecord is one entry in the gate's append-only history.
type InterventionRecord struct {
	// ID uniquely identifies the intervention.
	ID string `json:"id"`
	// Kind labels what the gate call asked for.
	Kind InterventionKind `json:"kind"`
	// Team is the team the intervention concerned, if any.
	Team string `json:"team,omitempty"`
	// Label is the short decision label shown to the human.
	Label string `json:"label"`
	// Response is the raw response text before classification.
	Response string `json:"response"`
	// Result is the classified outcome.
	Result InterventionResult `json:"result"`
}
