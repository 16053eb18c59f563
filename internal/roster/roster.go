// Package roster defines the static agent organization: three inner teams of
// specialists, one human-expert proxy per team, and the outer coordination
// layer. The roster also keeps per-agent runtime counters that the workflow
// updates as teams execute and gates resolve.
package roster

import (
	_ "embed"
	"fmt"
	"sync"

	"go.yaml.in/yaml/v3"

	"github.com/societymind/somind/pkg/models"
)

//go:embed agents.yaml
var rawRoster []byte

// Coordination task types accepted by RecordCoordination. Only the first
// three carry a dedicated success counter; other types advance the task
// total alone.
const (
	CoordTaskIntegration        = "integration"
	CoordTaskConflictResolution = "conflict_resolution"
	CoordTaskResourceAllocation = "resource_allocation"
	CoordTaskQualityReview      = "quality_review"
)

// HumanExpertSuffix is appended to a team's title-cased identifier to form
// the name of its human-expert proxy seat.
const HumanExpertSuffix = "_HumanExpert"

// Fixed seat names defined in the embedded roster. The coordination layer
// attributes gate decisions and coordination stats to these seats.
const (
	NameTeamCoordinator  = "TeamCoordinator"
	NameResourceManager  = "ResourceManager"
	NameQualityAssurance = "QualityAssurance"
	NameProjectDirector  = "ProjectDirector_Human"
)

type specialistSpec struct {
	Name        string `yaml:"name"`
	Role        string `yaml:"role"`
	Description string `yaml:"description"`
}

type teamSpec struct {
	ID          string           `yaml:"id"`
	Domain      string           `yaml:"domain"`
	Specialists []specialistSpec `yaml:"specialists"`
}

type rosterSpec struct {
	Teams    []teamSpec       `yaml:"teams"`
	Outer    []specialistSpec `yaml:"outer"`
	Director specialistSpec   `yaml:"director"`
}

// agentRecord accumulates the raw counts behind PerformanceStats.
type agentRecord struct {
	tasks         int
	approved      int
	interventions int
	responseTotal float64
	responses     int
}

// Roster is the in-memory agent organization. All accessors are safe for
// concurrent use; counter mutation is serialized by an internal lock.
type Roster struct {
	mu sync.RWMutex

	teams    []string
	domains  map[string]string
	agents   map[string]models.Agent
	byTeam   map[string][]string
	proxies  map[string]string
	outer    []string
	director string

	stats      map[string]*agentRecord
	coordStats map[string]*models.CoordinationStats
}

// Load parses the embedded roster definition and returns the organization.
func Load() (*Roster, error) {
	var spec rosterSpec
	if err := yaml.Unmarshal(rawRoster, &spec); err != nil {
		return nil, fmt.Errorf("parsing roster: %w", err)
	}
	return build(spec)
}

func build(spec rosterSpec) (*Roster, error) {
	r := &Roster{
		domains:    make(map[string]string),
		agents:     make(map[string]models.Agent),
		byTeam:     make(map[string][]string),
		proxies:    make(map[string]string),
		stats:      make(map[string]*agentRecord),
		coordStats: make(map[string]*models.CoordinationStats),
	}

	add := func(a models.Agent) error {
		if a.Name == "" {
			return fmt.Errorf("roster entry missing name")
		}
		if _, dup := r.agents[a.Name]; dup {
			return fmt.Errorf("duplicate agent name %q", a.Name)
		}
		r.agents[a.Name] = a
		r.stats[a.Name] = &agentRecord{}
		return nil
	}

	for _, t := range spec.Teams {
		if t.ID == "" {
			return nil, fmt.Errorf("team entry missing id")
		}
		if len(t.Specialists) == 0 {
			return nil, fmt.Errorf("team %s has no specialists", t.ID)
		}
		r.teams = append(r.teams, t.ID)
		r.domains[t.ID] = t.Domain

		for _, s := range t.Specialists {
			if err := add(models.Agent{
				Name:        s.Name,
				Team:        t.ID,
				Kind:        models.AgentKindSpecialist,
				Role:        s.Role,
				Description: s.Description,
			}); err != nil {
				return nil, err
			}
			r.byTeam[t.ID] = append(r.byTeam[t.ID], s.Name)
		}

		proxy := models.Agent{
			Name:        ProxyName(t.ID),
			Team:        t.ID,
			Kind:        models.AgentKindHumanProxy,
			Role:        t.Domain + " Expert",
			Description: "Human expert seat reviewing and approving the team's work.",
		}
		if err := add(proxy); err != nil {
			return nil, err
		}
		r.proxies[t.ID] = proxy.Name
	}

	for _, o := range spec.Outer {
		if err := add(models.Agent{
			Name:        o.Name,
			Kind:        models.AgentKindCoordinator,
			Role:        o.Role,
			Description: o.Description,
		}); err != nil {
			return nil, err
		}
		r.outer = append(r.outer, o.Name)
		r.coordStats[o.Name] = &models.CoordinationStats{}
	}

	if spec.Director.Name == "" {
		return nil, fmt.Errorf("roster missing director")
	}
	if err := add(models.Agent{
		Name:        spec.Director.Name,
		Kind:        models.AgentKindDirector,
		Role:        spec.Director.Role,
		Description: spec.Director.Description,
	}); err != nil {
		return nil, err
	}
	r.director = spec.Director.Name

	return r, nil
}

// ProxyName returns the human-expert proxy name for a team identifier,
// e.g. "research_analysis" becomes "Research_Analysis_HumanExpert".
func ProxyName(team string) string {
	return models.TeamLabel(team) + HumanExpertSuffix
}

// InnerTeams returns the team identifiers in definition order.
func (r *Roster) InnerTeams() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.teams))
	copy(out, r.teams)
	return out
}

// Domain returns the expertise domain for a team, or "" if unknown.
func (r *Roster) Domain(team string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.domains[team]
}

// Specialists returns the specialist agents of a team in definition order.
func (r *Roster) Specialists(team string) []models.Agent {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := r.byTeam[team]
	out := make([]models.Agent, 0, len(names))
	for _, n := range names {
		out = append(out, r.agents[n])
	}
	return out
}

// TeamAgents returns a team's full seat list: specialists followed by the
// human-expert proxy.
func (r *Roster) TeamAgents(team string) []models.Agent {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := r.byTeam[team]
	out := make([]models.Agent, 0, len(names)+1)
	for _, n := range names {
		out = append(out, r.agents[n])
	}
	if proxy, ok := r.proxies[team]; ok {
		out = append(out, r.agents[proxy])
	}
	return out
}

// Proxy returns the human-expert proxy for a team.
func (r *Roster) Proxy(team string) (models.Agent, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.proxies[team]
	if !ok {
		return models.Agent{}, false
	}
	return r.agents[name], true
}

// OuterAgents returns the outer coordination agents in definition order.
func (r *Roster) OuterAgents() []models.Agent {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Agent, 0, len(r.outer))
	for _, n := range r.outer {
		out = append(out, r.agents[n])
	}
	return out
}

// Director returns the project-director seat.
func (r *Roster) Director() models.Agent {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.agents[r.director]
}

// Agent looks up an agent by name.
func (r *Roster) Agent(name string) (models.Agent, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.agents[name]
	return a, ok
}

// All returns every agent: inner teams in order (specialists then proxy),
// outer agents, then the director.
func (r *Roster) All() []models.Agent {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Agent, 0, len(r.agents))
	for _, team := range r.teams {
		for _, n := range r.byTeam[team] {
			out = append(out, r.agents[n])
		}
		out = append(out, r.agents[r.proxies[team]])
	}
	for _, n := range r.outer {
		out = append(out, r.agents[n])
	}
	out = append(out, r.agents[r.director])
	return out
}

// CheckLimits verifies the roster fits within the configured team shape.
func (r *Roster) CheckLimits(maxInnerTeams, maxAgentsPerTeam int) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.teams) > maxInnerTeams {
		return fmt.Errorf("roster defines %d inner teams, limit is %d", len(r.teams), maxInnerTeams)
	}
	for _, team := range r.teams {
		// Specialists plus the human-expert proxy
		seats := len(r.byTeam[team]) + 1
		if seats > maxAgentsPerTeam {
			return fmt.Errorf("team %s has %d agents, limit is %d", team, seats, maxAgentsPerTeam)
		}
	}
	return nil
}

// RecordTask logs a completed task for an agent and whether it was approved.
func (r *Roster) RecordTask(name string, approved bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.stats[name]
	if !ok {
		return
	}
	rec.tasks++
	if approved {
		rec.approved++
	}
}

// RecordIntervention logs a human gate attributed to an agent together with
// the observed response time.
func (r *Roster) RecordIntervention(name string, responseSeconds float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.stats[name]
	if !ok {
		return
	}
	rec.interventions++
	rec.responseTotal += responseSeconds
	rec.responses++
}

// Stats returns the current performance counters for an agent.
func (r *Roster) Stats(name string) models.PerformanceStats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.stats[name]
	if !ok {
		return models.PerformanceStats{}
	}
	return rec.snapshot()
}

func (rec *agentRecord) snapshot() models.PerformanceStats {
	s := models.PerformanceStats{
		TasksCompleted:     rec.tasks,
		HumanInterventions: rec.interventions,
	}
	if rec.tasks > 0 {
		s.ApprovalRate = float64(rec.approved) / float64(rec.tasks)
	}
	if rec.responses > 0 {
		s.AvgResponseSeconds = rec.responseTotal / float64(rec.responses)
	}
	return s
}

// RecordCoordination logs a coordination step for an outer agent. Successful
// steps also bump the per-type counter.
func (r *Roster) RecordCoordination(name, taskType string, success bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cs, ok := r.coordStats[name]
	if !ok {
		return
	}
	cs.CoordinationTasks++
	if !success {
		return
	}
	switch taskType {
	case CoordTaskIntegration:
		cs.SuccessfulIntegrations++
	case CoordTaskConflictResolution:
		cs.ConflictResolutions++
	case CoordTaskResourceAllocation:
		cs.ResourceAllocations++
	}
}

// CoordinationStats returns the coordination counters for an outer agent.
func (r *Roster) CoordinationStats(name string) models.CoordinationStats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cs, ok := r.coordStats[name]
	if !ok {
		return models.CoordinationStats{}
	}
	return *cs
}

// TeamSummary aggregates performance counters across a team's agents.
type TeamSummary struct {
	TotalAgents        int                `json:"total_agents"`
	TasksCompleted     int                `json:"total_tasks_completed"`
	HumanInterventions int                `json:"total_human_interventions"`
	AverageApproval    float64            `json:"average_approval_rate"`
	Agents             []AgentPerformance `json:"agent_details"`
}

// AgentPerformance pairs an agent with its counters for reporting.
type AgentPerformance struct {
	Agent models.Agent            `json:"agent"`
	Stats models.PerformanceStats `json:"metrics"`
}

// Summary aggregates counters for one team's agents, proxy included.
func (r *Roster) Summary(team string) TeamSummary {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := append([]string{}, r.byTeam[team]...)
	if proxy, ok := r.proxies[team]; ok {
		names = append(names, proxy)
	}

	sum := TeamSummary{TotalAgents: len(names)}
	for _, n := range names {
		stats := r.stats[n].snapshot()
		sum.TasksCompleted += stats.TasksCompleted
		sum.HumanInterventions += stats.HumanInterventions
		sum.AverageApproval += stats.ApprovalRate
		sum.Agents = append(sum.Agents, AgentPerformance{Agent: r.agents[n], Stats: stats})
	}
	if len(names) > 0 {
		sum.AverageApproval /= float64(len(names))
	}
	return sum
}

// Reset zeroes every runtime counter, keeping the organization itself.
func (r *Roster) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for name := range r.stats {
		r.stats[name] = &agentRecord{}
	}
	for name := range r.coordStats {
		r.coordStats[name] = &models.CoordinationStats{}
	}
}
