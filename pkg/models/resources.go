package models

import "time"

// Priority ranks a resource request for allocation ordering.
type Priority string

const (
	// PriorityHigh is allocated first.
	PriorityHigh Priority = "high"
	// PriorityMedium is the default priority.
	PriorityMedium Priority = "medium"
	// PriorityLow is allocated last.
	PriorityLow Priority = "low"
)

// Valid returns true if the priority is a known value.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// Weight returns the sort weight used for allocation ordering. Unknown
// priorities weigh the same as medium.
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityLow:
		return 1
	default:
		return 2
	}
}

// ResourceRequest is one team's derived resource ask for a project cycle.
// Requests are derived from output size and discarded after allocation.
type ResourceRequest struct {
	// Team is the requesting team identifier.
	Team string `json:"team"`
	// Budget is the requested budget in dollars.
	Budget int `json:"budget"`
	// TimeWeeks is the requested time in weeks.
	TimeWeeks int `json:"time_weeks"`
	// Priority ranks the request for allocation.
	Priority Priority `json:"priority"`
	// Description explains what the resources are for.
	Description string `json:"description"`
	// Personnel lists the named roles the team needs.
	Personnel []string `json:"personnel"`
	// Justification records how the request was derived.
	Justification string `json:"justification"`
}

// PersonnelConflict reports one person requested by more than one team.
type PersonnelConflict struct {
	// Type is always "personnel_conflict".
	Type string `json:"type"`
	// Resource is the contested person or role.
	Resource string `json:"resource"`
	// Teams lists the teams requesting the resource.
	Teams []string `json:"conflicting_teams"`
}

// ResourceAnalysis aggregates all requests before allocation.
type ResourceAnalysis struct {
	// TotalBudget is the sum of all requested budgets.
	TotalBudget int `json:"total_budget_requested"`
	// TotalTimeWeeks is the sum of all requested weeks.
	TotalTimeWeeks int `json:"total_time_requested"`
	// PersonnelRequests maps each requested person to the teams asking.
	PersonnelRequests map[string][]string `json:"personnel_requests"`
	// Priorities maps each team to its request priority.
	Priorities map[string]Priority `json:"priority_analysis"`
	// Conflicts lists personnel requested by multiple teams.
	Conflicts []PersonnelConflict `json:"conflict_areas"`
}

// AllocationStatus is the outcome of the greedy allocation pass for one team.
type AllocationStatus string

const (
	// AllocationApproved means the request fit inside the remaining caps.
	AllocationApproved AllocationStatus = "APPROVED"
	// AllocationNeedsHuman means accepting the request would breach a cap.
	AllocationNeedsHuman AllocationStatus = "REQUIRES_HUMAN_DECISION"
)

// Allocation is the allocation outcome for one team, in allocation order.
type Allocation struct {
	// Team is the team the allocation concerns.
	Team string `json:"team"`
	// Budget is the requested budget evaluated against the cap.
	Budget int `json:"budget"`
	// TimeWeeks is the requested time evaluated against the cap.
	TimeWeeks int `json:"time_weeks"`
	// Priority is the request priority that ordered this entry.
	Priority Priority `json:"priority"`
	// Status reports whether the request fit the remaining caps.
	Status AllocationStatus `json:"status"`
}

// AllocationPlan is the full result of the priority-ordered greedy pass.
type AllocationPlan struct {
	// GeneratedAt is when the plan was computed.
	GeneratedAt time.Time `json:"generated_at"`
	// Allocations lists per-team outcomes in allocation order.
	Allocations []Allocation `json:"allocations"`
	// AllocatedBudget is the budget total accepted within the cap.
	AllocatedBudget int `json:"allocated_budget"`
	// AllocatedWeeks is the time total accepted within the cap.
	AllocatedWeeks int `json:"allocated_weeks"`
	// BudgetCap is the available budget the plan was computed against.
	BudgetCap int `json:"budget_cap"`
	// TimelineCap is the available timeline the plan was computed against.
	TimelineCap int `json:"timeline_cap"`
	// Analysis is the aggregate request analysis behind the plan.
	Analysis ResourceAnalysis `json:"analysis"`
	// Rendered is the human-readable plan text shown at the gate.
	Rendered string `json:"rendered"`
}
