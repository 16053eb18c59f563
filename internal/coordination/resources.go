package coordination

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/societymind/somind/pkg/models"
)

// Base resource profiles per team. Unknown teams fall back to the defaults.
var (
	baseBudgets = map[string]int{
		models.TeamResearch:  75000,
		models.TeamCreative:  100000,
		models.TeamTechnical: 200000,
	}
	baseWeeks = map[string]int{
		models.TeamResearch:  4,
		models.TeamCreative:  6,
		models.TeamTechnical: 10,
	}
	basePriorities = map[string]models.Priority{
		models.TeamResearch:  models.PriorityHigh,
		models.TeamCreative:  models.PriorityMedium,
		models.TeamTechnical: models.PriorityHigh,
	}
	personnelByTeam = map[string][]string{
		models.TeamResearch:  {"Senior Researcher", "Data Analyst", "Research Coordinator"},
		models.TeamCreative:  {"Creative Director", "Content Strategist", "Visual Designer"},
		models.TeamTechnical: {"Tech Lead", "Senior Developer", "QA Engineer", "DevOps Engineer"},
	}
)

const (
	defaultBudget = 50000
	defaultWeeks  = 4
	// maxComplexity caps the output-size scaling factor.
	maxComplexity = 2.0
)

// dollars renders amounts with thousands separators, e.g. $75,000.
var dollars = message.NewPrinter(language.English)

// Complexity converts a deliverable length into a resource scaling factor.
// 1000 characters equal a factor of 1.0, capped at maxComplexity.
func Complexity(outputLen int) float64 {
	return math.Min(maxComplexity, float64(outputLen)/1000)
}

// DeriveRequests builds one resource request per team, scaled by the size of
// the team's deliverable.
func DeriveRequests(results []models.TeamResult) []models.ResourceRequest {
	requests := make([]models.ResourceRequest, 0, len(results))
	for _, res := range results {
		factor := Complexity(res.OutputLen)

		budget, ok := baseBudgets[res.Team]
		if !ok {
			budget = defaultBudget
		}
		weeks, ok := baseWeeks[res.Team]
		if !ok {
			weeks = defaultWeeks
		}
		priority, ok := basePriorities[res.Team]
		if !ok {
			priority = models.PriorityMedium
		}

		requests = append(requests, models.ResourceRequest{
			Team:          res.Team,
			Budget:        int(float64(budget) * factor),
			TimeWeeks:     int(float64(weeks) * factor),
			Priority:      priority,
			Description:   fmt.Sprintf("Resources for %s implementation", strings.ReplaceAll(res.Team, "_", " ")),
			Personnel:     Personnel(res.Team),
			Justification: fmt.Sprintf("Based on output complexity and scope: %d chars", res.OutputLen),
		})
	}
	return requests
}

// Personnel returns the named roles a team requests.
func Personnel(team string) []string {
	if p, ok := personnelByTeam[team]; ok {
		return append([]string{}, p...)
	}
	return []string{"Team Lead", "Specialist"}
}

// AnalyzeRequests aggregates the requests: budget and time totals, the
// personnel demand map, and conflicts where one person is requested by more
// than one team. Conflict order follows first appearance in the requests.
func AnalyzeRequests(requests []models.ResourceRequest) models.ResourceAnalysis {
	analysis := models.ResourceAnalysis{
		PersonnelRequests: make(map[string][]string),
		Priorities:        make(map[string]models.Priority),
	}

	var people []string
	for _, req := range requests {
		analysis.TotalBudget += req.Budget
		analysis.TotalTimeWeeks += req.TimeWeeks
		analysis.Priorities[req.Team] = req.Priority

		for _, person := range req.Personnel {
			if _, seen := analysis.PersonnelRequests[person]; !seen {
				people = append(people, person)
			}
			analysis.PersonnelRequests[person] = append(analysis.PersonnelRequests[person], req.Team)
		}
	}

	for _, person := range people {
		teams := analysis.PersonnelRequests[person]
		if len(teams) > 1 {
			analysis.Conflicts = append(analysis.Conflicts, models.PersonnelConflict{
				Type:     "personnel_conflict",
				Resource: person,
				Teams:    append([]string{}, teams...),
			})
		}
	}
	return analysis
}

// BuildAllocationPlan runs the priority-ordered greedy allocation against the
// caps and renders the plan text. A request is approved only while both
// running totals stay within their caps; otherwise it is deferred to a human
// decision and the totals do not advance.
func BuildAllocationPlan(requests []models.ResourceRequest, budgetCap, timelineCap int, now time.Time) models.AllocationPlan {
	ordered := make([]models.ResourceRequest, len(requests))
	copy(ordered, requests)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority.Weight() > ordered[j].Priority.Weight()
	})

	plan := models.AllocationPlan{
		GeneratedAt: now,
		BudgetCap:   budgetCap,
		TimelineCap: timelineCap,
		Analysis:    AnalyzeRequests(requests),
	}

	for _, req := range ordered {
		status := models.AllocationNeedsHuman
		if plan.AllocatedBudget+req.Budget <= budgetCap && plan.AllocatedWeeks+req.TimeWeeks <= timelineCap {
			status = models.AllocationApproved
			plan.AllocatedBudget += req.Budget
			plan.AllocatedWeeks += req.TimeWeeks
		}
		plan.Allocations = append(plan.Allocations, models.Allocation{
			Team:      req.Team,
			Budget:    req.Budget,
			TimeWeeks: req.TimeWeeks,
			Priority:  req.Priority,
			Status:    status,
		})
	}

	plan.Rendered = renderAllocationPlan(plan)
	return plan
}

func renderAllocationPlan(plan models.AllocationPlan) string {
	var b strings.Builder
	b.WriteString("RESOURCE ALLOCATION PLAN\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", plan.GeneratedAt.Format(timestampLayout))

	b.WriteString("RESOURCE ANALYSIS:\n")
	fmt.Fprintf(&b, "- Total Budget Requested: $%s\n", dollars.Sprintf("%d", plan.Analysis.TotalBudget))
	fmt.Fprintf(&b, "- Available Budget: $%s\n", dollars.Sprintf("%d", plan.BudgetCap))
	fmt.Fprintf(&b, "- Total Time Requested: %d weeks\n", plan.Analysis.TotalTimeWeeks)
	fmt.Fprintf(&b, "- Available Timeline: %d weeks\n\n", plan.TimelineCap)

	b.WriteString("PRIORITY-BASED ALLOCATION:\n")
	for _, alloc := range plan.Allocations {
		fmt.Fprintf(&b, "\n%s:\n", strings.ToUpper(alloc.Team))
		fmt.Fprintf(&b, "- Priority: %s\n", alloc.Priority)
		fmt.Fprintf(&b, "- Budget Request: $%s\n", dollars.Sprintf("%d", alloc.Budget))
		fmt.Fprintf(&b, "- Time Request: %d weeks\n", alloc.TimeWeeks)
		fmt.Fprintf(&b, "- Status: %s\n", alloc.Status)
	}

	b.WriteString("\nCONFLICT RESOLUTION NEEDED:\n")
	conflicts, err := json.MarshalIndent(plan.Analysis.Conflicts, "", "  ")
	if err != nil || plan.Analysis.Conflicts == nil {
		conflicts = []byte("[]")
	}
	b.Write(conflicts)
	b.WriteString("\n")

	b.WriteString(`
HUMAN DECISIONS REQUIRED:
- Approve high-priority allocations
- Resolve personnel conflicts
- Decide on over-budget requests
- Set final timeline constraints
`)
	return b.String()
}
