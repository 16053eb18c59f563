package gate

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/societymind/somind/pkg/models"
)

var testProxy = models.Agent{
	Name: "Research_Analysis_HumanExpert",
	Team: "research_analysis",
	Kind: models.AgentKindHumanProxy,
	Role: "Research & Data Analysis Expert",
}

var testDirector = models.Agent{
	Name: "ProjectDirector_Human",
	Kind: models.AgentKindDirector,
	Role: "Project Director",
}

// blockingResponder never answers; it waits for cancellation.
type blockingResponder struct{}

func (blockingResponder) Respond(ctx context.Context, _ Request) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func TestRequestApprovalModify(t *testing.T) {
	m := NewManager(NewScriptedResponder("modify: tighten the scope"))

	res, err := m.RequestApproval(context.Background(), testProxy, "Adopt plan A", "kickoff")
	if err != nil {
		t.Fatalf("RequestApproval failed: %v", err)
	}
	if res.Approved() {
		t.Error("modify response must reject")
	}
	if res.Override != "tighten the scope" {
		t.Errorf("override = %q, want 'tighten the scope'", res.Override)
	}

	history := m.History()
	if len(history) != 1 {
		t.Fatalf("history length = %d, want 1", len(history))
	}
	rec := history[0]
	if rec.Kind != models.InterventionApproval {
		t.Errorf("kind = %q, want approval", rec.Kind)
	}
	if rec.Team != "research_analysis" {
		t.Errorf("team = %q, want research_analysis", rec.Team)
	}
	if rec.ID == "" {
		t.Error("record must carry an ID")
	}
	if rec.Response != "modify: tighten the scope" {
		t.Errorf("raw response = %q", rec.Response)
	}
}

func TestValidateTeamOutput(t *testing.T) {
	tests := []struct {
		name     string
		response string
		approved bool
	}{
		{"exact approve passes", "approve", true},
		{"feedback rejects", "add a competitor matrix", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager(NewScriptedResponder(tt.response))
			res, err := m.ValidateTeamOutput(context.Background(), testProxy,
				"research_analysis", "Research & Data Analysis",
				"RESEARCH FINDINGS", []string{"ResearchSpecialist", "DataAnalyst"})
			if err != nil {
				t.Fatalf("ValidateTeamOutput failed: %v", err)
			}
			if res.Approved() != tt.approved {
				t.Errorf("approved = %v, want %v", res.Approved(), tt.approved)
			}
			if res.Feedback != tt.response {
				t.Errorf("feedback = %q, want %q", res.Feedback, tt.response)
			}
		})
	}
}

func TestRequestConstraints(t *testing.T) {
	m := NewManager(NewScriptedResponder("add: gdpr compliance review"))

	res, err := m.RequestConstraints(context.Background(), testDirector, []string{"stay under budget"})
	if err != nil {
		t.Fatalf("RequestConstraints failed: %v", err)
	}
	if len(res.Constraints) != 2 || res.Constraints[1] != "gdpr compliance review" {
		t.Errorf("constraints = %v", res.Constraints)
	}
}

func TestTimeoutAppliesDefaultApproval(t *testing.T) {
	m := NewManager(blockingResponder{}, WithTimeout(20*time.Millisecond))

	res, err := m.ValidateTeamOutput(context.Background(), testProxy,
		"research_analysis", "Research & Data Analysis", "OUTPUT", nil)
	if err != nil {
		t.Fatalf("expected default approval, got error: %v", err)
	}
	if !res.Approved() {
		t.Error("timed out gate must default to approval")
	}
	if !res.TimedOut {
		t.Error("result must be marked timed out")
	}

	history := m.History()
	if len(history) != 1 || !history[0].Result.TimedOut {
		t.Errorf("history must record the timed out gate: %+v", history)
	}
}

func TestTimeoutKeepsProposedConstraints(t *testing.T) {
	m := NewManager(blockingResponder{}, WithTimeout(20*time.Millisecond))

	proposed := []string{"a", "b"}
	res, err := m.RequestConstraints(context.Background(), testDirector, proposed)
	if err != nil {
		t.Fatalf("RequestConstraints failed: %v", err)
	}
	if len(res.Constraints) != 2 {
		t.Errorf("constraints = %v, want proposed list on timeout", res.Constraints)
	}
}

func TestCallerCancellation(t *testing.T) {
	m := NewManager(blockingResponder{}, WithTimeout(time.Minute))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.RequestApproval(ctx, testDirector, "decision", "")
	if err == nil {
		t.Fatal("expected an error when the caller cancels")
	}
}

func TestNotifyCallback(t *testing.T) {
	var gotAgent string
	var calls int
	m := NewManager(NewAutoResponder(), WithNotify(func(agent string, _ float64) {
		gotAgent = agent
		calls++
	}))

	if _, err := m.RequestApproval(context.Background(), testProxy, "decision", ""); err != nil {
		t.Fatalf("RequestApproval failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("notify calls = %d, want 1", calls)
	}
	if gotAgent != testProxy.Name {
		t.Errorf("notified agent = %q, want %q", gotAgent, testProxy.Name)
	}
}

func TestDirectorGatesAlwaysApprove(t *testing.T) {
	m := NewManager(NewScriptedResponder("prioritize research first", "research: APPROVE - within budget"))

	coord, err := m.ApproveCoordination(context.Background(), testDirector,
		[]models.TeamResult{{Team: "research_analysis", Output: "FINDINGS"}}, "PLAN")
	if err != nil {
		t.Fatalf("ApproveCoordination failed: %v", err)
	}
	if !coord.Approved() {
		t.Error("coordination review is advisory and must approve")
	}
	if coord.Feedback != "prioritize research first" {
		t.Errorf("feedback = %q", coord.Feedback)
	}

	alloc, err := m.AllocateResources(context.Background(), testDirector,
		[]models.ResourceRequest{{Team: "research_analysis", Description: "Resources", Priority: models.PriorityHigh}})
	if err != nil {
		t.Fatalf("AllocateResources failed: %v", err)
	}
	if !alloc.Approved() {
		t.Error("resource review is advisory and must approve")
	}
}

func TestValidateFinalOutput(t *testing.T) {
	m := NewManager(NewScriptedResponder("this is ready for delivery"))

	res, err := m.ValidateFinalOutput(context.Background(), testDirector, "DELIVERABLE",
		[]models.TeamResult{{Team: "creative_design", Output: strings.Repeat("x", 300)}})
	if err != nil {
		t.Fatalf("ValidateFinalOutput failed: %v", err)
	}
	if !res.Approved() {
		t.Error("response containing 'ready' must approve")
	}
}

func TestCountAndReset(t *testing.T) {
	m := NewManager(NewAutoResponder())

	ctx := context.Background()
	m.RequestApproval(ctx, testDirector, "one", "")
	m.RequestContext(ctx, testDirector, "current")
	if m.Count() != 2 {
		t.Errorf("count = %d, want 2", m.Count())
	}

	m.Reset()
	if m.Count() != 0 {
		t.Errorf("count after reset = %d, want 0", m.Count())
	}
}

func TestAutoResponderPerKind(t *testing.T) {
	a := NewAutoResponder()
	ctx := context.Background()

	tests := []struct {
		kind models.InterventionKind
		want string
	}{
		{models.InterventionOutputValidation, "approve"},
		{models.InterventionContextAddition, "none"},
		{models.InterventionConstraintSetting, "accept"},
	}
	for _, tt := range tests {
		got, err := a.Respond(ctx, Request{Kind: tt.kind})
		if err != nil {
			t.Fatalf("Respond failed: %v", err)
		}
		if got != tt.want {
			t.Errorf("Respond(%s) = %q, want %q", tt.kind, got, tt.want)
		}
	}

	// Free-text gates rotate through the canned approvals.
	first, _ := a.Respond(ctx, Request{Kind: models.InterventionApproval})
	second, _ := a.Respond(ctx, Request{Kind: models.InterventionApproval})
	if first == second {
		t.Errorf("expected rotation, got %q twice", first)
	}
	if !strings.HasPrefix(strings.ToLower(first), "approved") {
		t.Errorf("canned response %q must read as approval", first)
	}
}

func TestScriptedResponderFallsBack(t *testing.T) {
	s := NewScriptedResponder("reject")
	ctx := context.Background()

	got, _ := s.Respond(ctx, Request{Kind: models.InterventionApproval})
	if got != "reject" {
		t.Errorf("first response = %q, want scripted 'reject'", got)
	}
	if s.Remaining() != 0 {
		t.Errorf("remaining = %d, want 0", s.Remaining())
	}

	// Script exhausted: falls back to auto approval.
	got, _ = s.Respond(ctx, Request{Kind: models.InterventionOutputValidation})
	if got != "approve" {
		t.Errorf("fallback response = %q, want 'approve'", got)
	}
}
