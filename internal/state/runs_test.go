package state

import (
	"strings"
	"testing"
	"time"

	"github.com/societymind/somind/pkg/models"
)

// sampleResult builds a finished workflow result with two team results and
// two intervention records.
func sampleResult() *models.WorkflowResult {
	start := time.Date(2025, 7, 31, 1, 27, 0, 0, time.UTC)
	end := start.Add(3*time.Minute + 24*time.Second)
	return &models.WorkflowResult{
		RunID:        "run-42",
		Scenario:     "product_launch",
		StartTime:    start,
		EndTime:      end,
		Requirements: models.Requirements{Title: "Launch AI-powered fitness tracking mobile app"},
		TeamResults: map[string]models.TeamResult{
			models.TeamResearch: {
				Team:            models.TeamResearch,
				Output:          "research output",
				Agents:          []string{"ResearchSpecialist", "DataAnalyst"},
				Timestamp:       start.Add(30 * time.Second),
				RequirementsLen: 120,
				OutputLen:       1500,
				Success:         true,
			},
			models.TeamCreative: {
				Team:            models.TeamCreative,
				Output:          "creative output",
				Agents:          []string{"CreativeStrategist"},
				Timestamp:       start.Add(45 * time.Second),
				RequirementsLen: 120,
				OutputLen:       900,
				Success:         true,
			},
		},
		FinalDeliverable: strings.Repeat("x", 2400),
		Interventions: []models.InterventionRecord{
			{
				ID:       "iv-1",
				Kind:     models.InterventionOutputValidation,
				Team:     models.TeamResearch,
				Label:    "Validate research_analysis output",
				Response: "approve",
				Result: models.InterventionResult{
					Decision:        models.DecisionApproved,
					Timestamp:       start.Add(time.Minute),
					ResponseSeconds: 1.5,
				},
			},
			{
				ID:       "iv-2",
				Kind:     models.InterventionFinalValidation,
				Label:    "Final deliverable sign-off",
				Response: "modify: shorten timeline",
				Result: models.InterventionResult{
					Decision:        models.DecisionRejected,
					Override:        "shorten timeline",
					Timestamp:       start.Add(2 * time.Minute),
					ResponseSeconds: 4.2,
				},
			},
		},
		Success: true,
	}
}

func TestBeginRunAndGetRun(t *testing.T) {
	db := setupTestDB(t)

	started := time.Date(2025, 7, 31, 1, 27, 0, 0, time.UTC)
	if err := db.BeginRun(&Run{ID: "run-1", Scenario: "crisis_management", Title: "Data breach response", StartedAt: started}); err != nil {
		t.Fatalf("BeginRun failed: %v", err)
	}

	run, err := db.GetRun("run-1")
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if run == nil {
		t.Fatal("GetRun returned nil for existing run")
	}
	if run.Scenario != "crisis_management" {
		t.Errorf("Scenario = %q, want %q", run.Scenario, "crisis_management")
	}
	if run.Title != "Data breach response" {
		t.Errorf("Title = %q, want %q", run.Title, "Data breach response")
	}
	if run.Status != RunRunning {
		t.Errorf("Status = %q, want %q", run.Status, RunRunning)
	}
	if !run.StartedAt.Equal(started) {
		t.Errorf("StartedAt = %v, want %v", run.StartedAt, started)
	}
	if run.FinishedAt != nil {
		t.Errorf("FinishedAt = %v, want nil", run.FinishedAt)
	}
	if run.Success {
		t.Error("new run should not be marked successful")
	}
}

func TestBeginRun_DuplicateID(t *testing.T) {
	db := setupTestDB(t)

	r := &Run{ID: "run-1", Scenario: "interactive", Title: "Demo", StartedAt: time.Now()}
	if err := db.BeginRun(r); err != nil {
		t.Fatalf("BeginRun failed: %v", err)
	}
	if err := db.BeginRun(r); err == nil {
		t.Error("expected error for duplicate run id")
	}
}

func TestGetRun_NotFound(t *testing.T) {
	db := setupTestDB(t)

	run, err := db.GetRun("missing")
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if run != nil {
		t.Errorf("GetRun = %+v, want nil", run)
	}
}

func TestCompleteRun(t *testing.T) {
	db := setupTestDB(t)
	res := sampleResult()

	if err := db.CompleteRun(res); err != nil {
		t.Fatalf("CompleteRun failed: %v", err)
	}

	run, err := db.GetRun("run-42")
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if run == nil {
		t.Fatal("GetRun returned nil for completed run")
	}
	if run.Status != RunCompleted {
		t.Errorf("Status = %q, want %q", run.Status, RunCompleted)
	}
	if !run.Success {
		t.Error("Success = false, want true")
	}
	if run.Title != "Launch AI-powered fitness tracking mobile app" {
		t.Errorf("Title = %q", run.Title)
	}
	if run.DurationSeconds != 204 {
		t.Errorf("DurationSeconds = %v, want 204", run.DurationSeconds)
	}
	if run.TeamsExecuted != 2 {
		t.Errorf("TeamsExecuted = %d, want 2", run.TeamsExecuted)
	}
	if run.Interventions != 2 {
		t.Errorf("Interventions = %d, want 2", run.Interventions)
	}
	if run.DeliverableLength != 2400 {
		t.Errorf("DeliverableLength = %d, want 2400", run.DeliverableLength)
	}
	if run.FinishedAt == nil || !run.FinishedAt.Equal(res.EndTime) {
		t.Errorf("FinishedAt = %v, want %v", run.FinishedAt, res.EndTime)
	}

	// Team rows are inserted in sorted team order.
	teams, err := db.ListTeamRuns("run-42")
	if err != nil {
		t.Fatalf("ListTeamRuns failed: %v", err)
	}
	if len(teams) != 2 {
		t.Fatalf("got %d team rows, want 2", len(teams))
	}
	if teams[0].Team != models.TeamCreative || teams[1].Team != models.TeamResearch {
		t.Errorf("team order = [%s %s], want [%s %s]",
			teams[0].Team, teams[1].Team, models.TeamCreative, models.TeamResearch)
	}
	research := teams[1]
	if research.OutputLen != 1500 || research.RequirementsLen != 120 || !research.Success {
		t.Errorf("research row = %+v", research)
	}
	if len(research.Agents) != 2 || research.Agents[0] != "ResearchSpecialist" {
		t.Errorf("research agents = %v", research.Agents)
	}

	recs, err := db.ListInterventions("run-42")
	if err != nil {
		t.Fatalf("ListInterventions failed: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d interventions, want 2", len(recs))
	}
	if recs[0].ID != "iv-1" || recs[1].ID != "iv-2" {
		t.Errorf("intervention order = [%s %s], want [iv-1 iv-2]", recs[0].ID, recs[1].ID)
	}
	if recs[0].Kind != string(models.InterventionOutputValidation) {
		t.Errorf("Kind = %q", recs[0].Kind)
	}
	if recs[0].Decision != string(models.DecisionApproved) {
		t.Errorf("Decision = %q", recs[0].Decision)
	}
	if recs[0].Team != models.TeamResearch {
		t.Errorf("Team = %q", recs[0].Team)
	}
	if recs[1].Override != "shorten timeline" {
		t.Errorf("Override = %q, want %q", recs[1].Override, "shorten timeline")
	}
	if recs[1].Decision != string(models.DecisionRejected) {
		t.Errorf("Decision = %q", recs[1].Decision)
	}
	if recs[1].ResponseSeconds != 4.2 {
		t.Errorf("ResponseSeconds = %v, want 4.2", recs[1].ResponseSeconds)
	}
}

func TestCompleteRun_ReplacesEarlierSave(t *testing.T) {
	db := setupTestDB(t)
	res := sampleResult()

	if err := db.BeginRun(&Run{ID: res.RunID, Scenario: res.Scenario, Title: res.Requirements.Title, StartedAt: res.StartTime}); err != nil {
		t.Fatalf("BeginRun failed: %v", err)
	}
	if err := db.CompleteRun(res); err != nil {
		t.Fatalf("CompleteRun failed: %v", err)
	}
	if err := db.CompleteRun(res); err != nil {
		t.Fatalf("second CompleteRun failed: %v", err)
	}

	runs, err := db.ListRuns(nil)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("got %d runs, want 1", len(runs))
	}

	teams, err := db.ListTeamRuns(res.RunID)
	if err != nil {
		t.Fatalf("ListTeamRuns failed: %v", err)
	}
	if len(teams) != 2 {
		t.Errorf("got %d team rows after re-save, want 2", len(teams))
	}

	recs, err := db.ListInterventions(res.RunID)
	if err != nil {
		t.Fatalf("ListInterventions failed: %v", err)
	}
	if len(recs) != 2 {
		t.Errorf("got %d interventions after re-save, want 2", len(recs))
	}
}

func TestCompleteRun_FailedRun(t *testing.T) {
	db := setupTestDB(t)
	res := sampleResult()
	res.Success = false
	res.Error = "coordination failed: context canceled"

	if err := db.CompleteRun(res); err != nil {
		t.Fatalf("CompleteRun failed: %v", err)
	}

	run, err := db.GetRun(res.RunID)
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if run.Status != RunFailed {
		t.Errorf("Status = %q, want %q", run.Status, RunFailed)
	}
	if run.Success {
		t.Error("Success = true, want false")
	}
	if run.Error != "coordination failed: context canceled" {
		t.Errorf("Error = %q", run.Error)
	}
}

func TestListRuns(t *testing.T) {
	db := setupTestDB(t)

	base := time.Date(2025, 7, 31, 1, 0, 0, 0, time.UTC)
	for i, r := range []Run{
		{ID: "run-a", Scenario: "product_launch", Title: "A", Status: RunCompleted},
		{ID: "run-b", Scenario: "crisis_management", Title: "B", Status: RunRunning},
		{ID: "run-c", Scenario: "product_launch", Title: "C", Status: RunCompleted},
	} {
		r.StartedAt = base.Add(time.Duration(i) * time.Hour)
		if err := db.BeginRun(&r); err != nil {
			t.Fatalf("BeginRun %s failed: %v", r.ID, err)
		}
	}

	runs, err := db.ListRuns(nil)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("got %d runs, want 3", len(runs))
	}
	// Newest first
	if runs[0].ID != "run-c" || runs[2].ID != "run-a" {
		t.Errorf("order = [%s %s %s], want [run-c run-b run-a]", runs[0].ID, runs[1].ID, runs[2].ID)
	}

	status := RunCompleted
	completed, err := db.ListRuns(&status)
	if err != nil {
		t.Fatalf("ListRuns(completed) failed: %v", err)
	}
	if len(completed) != 2 {
		t.Errorf("got %d completed runs, want 2", len(completed))
	}
}

func TestListRunsByScenario(t *testing.T) {
	db := setupTestDB(t)

	base := time.Date(2025, 7, 31, 1, 0, 0, 0, time.UTC)
	for i, r := range []Run{
		{ID: "run-a", Scenario: "product_launch", Title: "A"},
		{ID: "run-b", Scenario: "crisis_management", Title: "B"},
		{ID: "run-c", Scenario: "product_launch", Title: "C"},
	} {
		r.StartedAt = base.Add(time.Duration(i) * time.Hour)
		if err := db.BeginRun(&r); err != nil {
			t.Fatalf("BeginRun %s failed: %v", r.ID, err)
		}
	}

	runs, err := db.ListRunsByScenario("product_launch")
	if err != nil {
		t.Fatalf("ListRunsByScenario failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if runs[0].ID != "run-c" || runs[1].ID != "run-a" {
		t.Errorf("order = [%s %s], want [run-c run-a]", runs[0].ID, runs[1].ID)
	}
}

func TestDeleteRun_CascadesChildRows(t *testing.T) {
	db := setupTestDB(t)
	res := sampleResult()

	if err := db.CompleteRun(res); err != nil {
		t.Fatalf("CompleteRun failed: %v", err)
	}
	if err := db.DeleteRun(res.RunID); err != nil {
		t.Fatalf("DeleteRun failed: %v", err)
	}

	run, err := db.GetRun(res.RunID)
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if run != nil {
		t.Error("run still present after delete")
	}

	teams, err := db.ListTeamRuns(res.RunID)
	if err != nil {
		t.Fatalf("ListTeamRuns failed: %v", err)
	}
	if len(teams) != 0 {
		t.Errorf("team rows survived delete: %d", len(teams))
	}

	recs, err := db.ListInterventions(res.RunID)
	if err != nil {
		t.Fatalf("ListInterventions failed: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("intervention rows survived delete: %d", len(recs))
	}
}
