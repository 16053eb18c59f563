package coordination

import (
	"strings"
	"testing"
	"time"

	"github.com/societymind/somind/pkg/models"
)

func TestComplexity(t *testing.T) {
	tests := []struct {
		outputLen int
		want      float64
	}{
		{800, 0.8},
		{1200, 1.2},
		{1500, 1.5},
		{2000, 2.0},
		{5000, 2.0},
		{0, 0},
	}

	for _, tt := range tests {
		if got := Complexity(tt.outputLen); got != tt.want {
			t.Errorf("Complexity(%d) = %v, want %v", tt.outputLen, got, tt.want)
		}
	}
}

func TestDeriveRequests(t *testing.T) {
	results := []models.TeamResult{
		{Team: models.TeamResearch, OutputLen: 1000},
		{Team: models.TeamTechnical, OutputLen: 2000},
		{Team: "field_ops", OutputLen: 500},
	}

	requests := DeriveRequests(results)
	if len(requests) != 3 {
		t.Fatalf("got %d requests, want 3", len(requests))
	}

	research := requests[0]
	if research.Budget != 75000 {
		t.Errorf("research budget = %d, want 75000", research.Budget)
	}
	if research.TimeWeeks != 4 {
		t.Errorf("research weeks = %d, want 4", research.TimeWeeks)
	}
	if research.Priority != models.PriorityHigh {
		t.Errorf("research priority = %q, want high", research.Priority)
	}
	if research.Description != "Resources for research analysis implementation" {
		t.Errorf("unexpected description %q", research.Description)
	}
	if research.Justification != "Based on output complexity and scope: 1000 chars" {
		t.Errorf("unexpected justification %q", research.Justification)
	}

	technical := requests[1]
	if technical.Budget != 400000 {
		t.Errorf("technical budget = %d, want 400000 (factor 2.0)", technical.Budget)
	}
	if technical.TimeWeeks != 20 {
		t.Errorf("technical weeks = %d, want 20", technical.TimeWeeks)
	}
	if len(technical.Personnel) != 4 {
		t.Errorf("technical personnel = %v, want 4 roles", technical.Personnel)
	}

	unknown := requests[2]
	if unknown.Budget != 25000 {
		t.Errorf("unknown-team budget = %d, want 25000 (50000 * 0.5)", unknown.Budget)
	}
	if unknown.TimeWeeks != 2 {
		t.Errorf("unknown-team weeks = %d, want 2", unknown.TimeWeeks)
	}
	if unknown.Priority != models.PriorityMedium {
		t.Errorf("unknown-team priority = %q, want medium", unknown.Priority)
	}
	if got := unknown.Personnel; len(got) != 2 || got[0] != "Team Lead" {
		t.Errorf("unknown-team personnel = %v, want default roles", got)
	}
}

func TestAnalyzeRequests(t *testing.T) {
	requests := []models.ResourceRequest{
		{Team: "a", Budget: 100, TimeWeeks: 2, Priority: models.PriorityHigh, Personnel: []string{"Data Analyst", "Tech Lead"}},
		{Team: "b", Budget: 200, TimeWeeks: 3, Priority: models.PriorityLow, Personnel: []string{"Data Analyst"}},
	}

	analysis := AnalyzeRequests(requests)
	if analysis.TotalBudget != 300 {
		t.Errorf("TotalBudget = %d, want 300", analysis.TotalBudget)
	}
	if analysis.TotalTimeWeeks != 5 {
		t.Errorf("TotalTimeWeeks = %d, want 5", analysis.TotalTimeWeeks)
	}
	if len(analysis.Conflicts) != 1 {
		t.Fatalf("conflicts = %v, want exactly one", analysis.Conflicts)
	}
	conflict := analysis.Conflicts[0]
	if conflict.Type != "personnel_conflict" || conflict.Resource != "Data Analyst" {
		t.Errorf("unexpected conflict %+v", conflict)
	}
	if len(conflict.Teams) != 2 || conflict.Teams[0] != "a" || conflict.Teams[1] != "b" {
		t.Errorf("conflict teams = %v, want [a b]", conflict.Teams)
	}
	if analysis.Priorities["b"] != models.PriorityLow {
		t.Errorf("priority for b = %q, want low", analysis.Priorities["b"])
	}
}

func TestBuildAllocationPlanGreedy(t *testing.T) {
	now := time.Date(2025, 7, 31, 1, 27, 0, 0, time.UTC)
	requests := []models.ResourceRequest{
		{Team: "creative_design", Budget: 100000, TimeWeeks: 6, Priority: models.PriorityMedium},
		{Team: "research_analysis", Budget: 75000, TimeWeeks: 4, Priority: models.PriorityHigh},
		{Team: "technical_implementation", Budget: 400000, TimeWeeks: 20, Priority: models.PriorityHigh},
	}

	plan := BuildAllocationPlan(requests, 500000, 12, now)
	if len(plan.Allocations) != 3 {
		t.Fatalf("allocations = %d, want 3", len(plan.Allocations))
	}

	// High-priority requests are evaluated first, keeping request order for ties.
	if plan.Allocations[0].Team != "research_analysis" || plan.Allocations[1].Team != "technical_implementation" {
		t.Errorf("allocation order = %v", []string{plan.Allocations[0].Team, plan.Allocations[1].Team, plan.Allocations[2].Team})
	}

	if plan.Allocations[0].Status != models.AllocationApproved {
		t.Errorf("research status = %q, want APPROVED", plan.Allocations[0].Status)
	}
	// The technical request alone breaches the timeline cap.
	if plan.Allocations[1].Status != models.AllocationNeedsHuman {
		t.Errorf("technical status = %q, want REQUIRES_HUMAN_DECISION", plan.Allocations[1].Status)
	}
	// Creative still fits after technical was deferred.
	if plan.Allocations[2].Status != models.AllocationApproved {
		t.Errorf("creative status = %q, want APPROVED", plan.Allocations[2].Status)
	}

	if plan.AllocatedBudget > plan.BudgetCap {
		t.Errorf("allocated budget %d exceeds cap %d", plan.AllocatedBudget, plan.BudgetCap)
	}
	if plan.AllocatedWeeks > plan.TimelineCap {
		t.Errorf("allocated weeks %d exceeds cap %d", plan.AllocatedWeeks, plan.TimelineCap)
	}
	if plan.AllocatedBudget != 175000 || plan.AllocatedWeeks != 10 {
		t.Errorf("allocated totals = $%d/%dw, want $175000/10w", plan.AllocatedBudget, plan.AllocatedWeeks)
	}
}

func TestAllocationNeverBreachesCaps(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name     string
		requests []models.ResourceRequest
	}{
		{"all oversized", []models.ResourceRequest{
			{Team: "a", Budget: 600000, TimeWeeks: 20, Priority: models.PriorityHigh},
			{Team: "b", Budget: 700000, TimeWeeks: 30, Priority: models.PriorityHigh},
		}},
		{"exact fit", []models.ResourceRequest{
			{Team: "a", Budget: 500000, TimeWeeks: 12, Priority: models.PriorityHigh},
			{Team: "b", Budget: 1, TimeWeeks: 1, Priority: models.PriorityLow},
		}},
		{"empty", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := BuildAllocationPlan(tt.requests, 500000, 12, now)
			if plan.AllocatedBudget > 500000 {
				t.Errorf("allocated budget %d exceeds cap", plan.AllocatedBudget)
			}
			if plan.AllocatedWeeks > 12 {
				t.Errorf("allocated weeks %d exceeds cap", plan.AllocatedWeeks)
			}
		})
	}
}

func TestRenderAllocationPlan(t *testing.T) {
	now := time.Date(2025, 7, 31, 1, 27, 0, 0, time.UTC)
	requests := []models.ResourceRequest{
		{Team: models.TeamResearch, Budget: 75000, TimeWeeks: 4, Priority: models.PriorityHigh,
			Personnel: []string{"Data Analyst"}},
	}
	plan := BuildAllocationPlan(requests, 500000, 12, now)

	for _, want := range []string{
		"RESOURCE ALLOCATION PLAN",
		"Generated: 2025-07-31 01:27:00",
		"- Total Budget Requested: $75,000",
		"- Available Budget: $500,000",
		"RESEARCH_ANALYSIS:",
		"- Status: APPROVED",
		"CONFLICT RESOLUTION NEEDED:",
		"HUMAN DECISIONS REQUIRED:",
	} {
		if !strings.Contains(plan.Rendered, want) {
			t.Errorf("rendered plan missing %q", want)
		}
	}
}
