package models

// AgentKind classifies what an agent does in the society.
type AgentKind string

const (
	// AgentKindSpecialist indicates a domain agent inside an inner team.
	AgentKindSpecialist AgentKind = "specialist"
	// AgentKindHumanProxy indicates the human-expert seat attached to an inner team.
	AgentKindHumanProxy AgentKind = "human_proxy"
	// AgentKindCoordinator indicates an outer-layer coordination agent.
	AgentKindCoordinator AgentKind = "coordinator"
	// AgentKindDirector indicates the project-director seat on the outer layer.
	AgentKindDirector AgentKind = "director"
)

// Valid returns true if the kind is a known value.
func (k AgentKind) Valid() bool {
	switch k {
	case AgentKindSpecialist, AgentKindHumanProxy, AgentKindCoordinator, AgentKindDirector:
		return true
	default:
		return false
	}
}

// Agent is a static role description in the society roster. Agents carry no
// behavior; what each one "does" is encoded by the team generators and the
// coordination steps that act on their behalf.
type Agent struct {
	// Name is the unique agent name, e.g. "ResearchSpecialist".
	Name string `json:"name" yaml:"name"`
	// Team is the team identifier the agent belongs to. Empty for
	// outer-layer agents, which span all teams.
	Team string `json:"team,omitempty" yaml:"team,omitempty"`
	// Kind classifies the agent's position in the society.
	Kind AgentKind `json:"kind" yaml:"kind"`
	// Role is the human-readable role title, e.g. "Research & Data Analysis Expert".
	Role string `json:"role" yaml:"role"`
	// Description is the static capability text for the role.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// PerformanceStats tracks per-agent bookkeeping counters. The stats are
// mutated after each task and never persisted beyond process lifetime.
type PerformanceStats struct {
	// TasksCompleted is the number of tasks the agent has taken part in.
	TasksCompleted int `json:"tasks_completed"`
	// HumanInterventions is the number of gate calls attributed to the agent.
	HumanInterventions int `json:"human_interventions"`
	// ApprovalRate is the fraction of the agent's tasks that were approved.
	ApprovalRate float64 `json:"approval_rate"`
	// AvgResponseSeconds is the running average human response time for
	// gates attributed to the agent.
	AvgResponseSeconds float64 `json:"average_response_time"`
}

// CoordinationStats tracks bookkeeping counters for outer-layer agents,
// broken down by the kind of coordination work performed.
type CoordinationStats struct {
	// CoordinationTasks is the total number of coordination steps logged.
	CoordinationTasks int `json:"coordination_tasks"`
	// SuccessfulIntegrations counts integration steps that completed.
	SuccessfulIntegrations int `json:"successful_integrations"`
	// ConflictResolutions counts resolved cross-team conflicts.
	ConflictResolutions int `json:"conflict_resolutions"`
	// ResourceAllocations counts completed allocation rounds.
	ResourceAllocations int `json:"resource_allocations"`
}
