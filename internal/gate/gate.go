// Package gate implements the human intervention points of the workflow.
// Every gate renders a structured prompt, forwards it to a Responder, and
// classifies the free-text answer into a structured result. When no answer
// arrives within the configured timeout the gate applies the default-approve
// policy and marks the result as timed out.
package gate

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/societymind/somind/pkg/models"
)

// ErrTimedOut is returned by responders that gave up waiting for a human.
// The manager converts it into a default approval rather than a failure.
var ErrTimedOut = errors.New("human response timed out")

// DefaultTimeout is used when no timeout option is given.
const DefaultTimeout = 300 * time.Second

// Request is one intervention handed to a Responder.
type Request struct {
	// ID uniquely identifies the intervention.
	ID string `json:"id"`
	// Kind labels what the gate is asking for.
	Kind models.InterventionKind `json:"kind"`
	// Agent is the human seat being addressed.
	Agent models.Agent `json:"agent"`
	// Team is the team context, empty for outer-layer gates.
	Team string `json:"team,omitempty"`
	// Body is the gate-specific prompt text without the banner.
	Body string `json:"body"`
	// Prompt is the full rendered prompt shown to a human.
	Prompt string `json:"prompt"`
}

// Responder produces the human (or simulated) answer for a request. Respond
// must honor ctx cancellation; the manager cancels it when the intervention
// timeout elapses.
type Responder interface {
	Respond(ctx context.Context, req Request) (string, error)
}

// NotifyFunc is called once per resolved gate with the responding agent's
// name and the observed response time.
type NotifyFunc func(agent string, responseSeconds float64)

// Manager serializes human gates and keeps the intervention history.
type Manager struct {
	mu        sync.RWMutex
	responder Responder
	timeout   time.Duration
	history   []models.InterventionRecord
	now       func() time.Time
	notify    NotifyFunc
	debugLog  func(format string, args ...interface{})
}

// Option configures a Manager.
type Option func(*Manager)

// WithTimeout sets how long gates wait before the default decision applies.
func WithTimeout(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.timeout = d
		}
	}
}

// WithClock overrides the time source, used in tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithNotify registers a callback invoked after every resolved gate.
func WithNotify(fn NotifyFunc) Option {
	return func(m *Manager) {
		m.notify = fn
	}
}

// WithDebugLog sets the debug logging function.
func WithDebugLog(fn func(format string, args ...interface{})) Option {
	return func(m *Manager) {
		if fn != nil {
			m.debugLog = fn
		}
	}
}

// NewManager creates a gate manager around a responder.
func NewManager(responder Responder, opts ...Option) *Manager {
	m := &Manager{
		responder: responder,
		timeout:   DefaultTimeout,
		now:       time.Now,
		debugLog:  func(format string, args ...interface{}) {},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

type answer struct {
	text string
	err  error
}

// ask runs one gate round trip: render, respond, classify bookkeeping.
// classify receives the raw response; on timeout it is called with ok=false
// so each gate kind can apply its own default.
func (m *Manager) ask(
	ctx context.Context,
	kind models.InterventionKind,
	agent models.Agent,
	team, label, body string,
	classify func(response string, ok bool) models.InterventionResult,
) (models.InterventionResult, error) {
	if err := ctx.Err(); err != nil {
		return models.InterventionResult{}, err
	}

	start := m.now()
	req := Request{
		ID:    uuid.New().String(),
		Kind:  kind,
		Agent: agent,
		Team:  team,
		Body:  body,
	}
	req.Prompt = renderPrompt(agent.Role, teamContext(team), start, body)

	m.debugLog("[gate] %s gate %s for %s", kind, req.ID, agent.Name)

	rctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	ch := make(chan answer, 1)
	go func() {
		text, err := m.responder.Respond(rctx, req)
		ch <- answer{text: text, err: err}
	}()

	var (
		response string
		timedOut bool
	)
	select {
	case a := <-ch:
		switch {
		case a.err == nil:
			response = a.text
		case errors.Is(a.err, ErrTimedOut), errors.Is(a.err, context.DeadlineExceeded):
			timedOut = true
		default:
			return models.InterventionResult{}, a.err
		}
	case <-rctx.Done():
		if ctx.Err() != nil {
			// Caller cancelled; do not fabricate a decision.
			return models.InterventionResult{}, ctx.Err()
		}
		timedOut = true
	}

	end := m.now()
	result := classify(response, !timedOut)
	result.Timestamp = end
	result.ResponseSeconds = end.Sub(start).Seconds()
	result.TimedOut = timedOut
	if timedOut {
		m.debugLog("[gate] %s gate %s timed out after %s, default approval applied", kind, req.ID, m.timeout)
	}

	m.mu.Lock()
	m.history = append(m.history, models.InterventionRecord{
		ID:       req.ID,
		Kind:     kind,
		Team:     team,
		Label:    label,
		Response: response,
		Result:   result,
	})
	m.mu.Unlock()

	if m.notify != nil {
		m.notify(agent.Name, result.ResponseSeconds)
	}
	return result, nil
}

// RequestApproval asks the agent to approve a decision.
func (m *Manager) RequestApproval(ctx context.Context, agent models.Agent, decision, contextText string) (models.InterventionResult, error) {
	return m.ask(ctx, models.InterventionApproval, agent, agent.Team, decision,
		approvalBody(decision, contextText),
		func(response string, ok bool) models.InterventionResult {
			if !ok {
				return timedOutApproval()
			}
			return classifyApproval(response)
		})
}

// RequestContext asks the agent for additional context.
func (m *Manager) RequestContext(ctx context.Context, agent models.Agent, current string) (models.InterventionResult, error) {
	return m.ask(ctx, models.InterventionContextAddition, agent, agent.Team, "context addition",
		contextBody(current),
		func(response string, ok bool) models.InterventionResult {
			if !ok {
				return timedOutApproval()
			}
			return classifyContext(response)
		})
}

// RequestConstraints asks the agent to review a proposed constraint list.
func (m *Manager) RequestConstraints(ctx context.Context, agent models.Agent, proposed []string) (models.InterventionResult, error) {
	return m.ask(ctx, models.InterventionConstraintSetting, agent, agent.Team, "constraint setting",
		constraintsBody(proposed),
		func(response string, ok bool) models.InterventionResult {
			if !ok {
				res := timedOutApproval()
				res.Constraints = append([]string{}, proposed...)
				return res
			}
			return classifyConstraints(response, proposed)
		})
}

// ValidateTeamOutput asks a team's human expert to validate the team output.
func (m *Manager) ValidateTeamOutput(ctx context.Context, agent models.Agent, team, domain, output string, agentsInvolved []string) (models.InterventionResult, error) {
	return m.ask(ctx, models.InterventionOutputValidation, agent, team, "validate "+team+" output",
		teamValidationBody(team, domain, output, agentsInvolved),
		func(response string, ok bool) models.InterventionResult {
			if !ok {
				return timedOutApproval()
			}
			return classifyTeamValidation(response)
		})
}

// ApproveCoordination asks the director to review the integration plan.
// The director's feedback is advisory; the plan proceeds either way.
func (m *Manager) ApproveCoordination(ctx context.Context, director models.Agent, teamResults []models.TeamResult, plan string) (models.InterventionResult, error) {
	return m.ask(ctx, models.InterventionCoordination, director, "", "coordination approval",
		coordinationBody(teamResults, plan),
		func(response string, ok bool) models.InterventionResult {
			if !ok {
				return timedOutApproval()
			}
			return models.InterventionResult{Decision: models.DecisionApproved, Feedback: response}
		})
}

// AllocateResources asks the director to settle cross-team resource requests.
// The response is recorded verbatim; allocation math happens upstream.
func (m *Manager) AllocateResources(ctx context.Context, director models.Agent, requests []models.ResourceRequest) (models.InterventionResult, error) {
	return m.ask(ctx, models.InterventionResourceAllocation, director, "", "resource allocation",
		resourceBody(requests),
		func(response string, ok bool) models.InterventionResult {
			if !ok {
				return timedOutApproval()
			}
			return models.InterventionResult{Decision: models.DecisionApproved, Feedback: response}
		})
}

// ValidateFinalOutput asks the director to sign off the consolidated deliverable.
func (m *Manager) ValidateFinalOutput(ctx context.Context, director models.Agent, consolidated string, contributions []models.TeamResult) (models.InterventionResult, error) {
	return m.ask(ctx, models.InterventionFinalValidation, director, "", "final output validation",
		finalValidationBody(consolidated, contributions),
		func(response string, ok bool) models.InterventionResult {
			if !ok {
				return timedOutApproval()
			}
			return classifyFinalValidation(response)
		})
}

func timedOutApproval() models.InterventionResult {
	return models.InterventionResult{
		Decision: models.DecisionApproved,
		Feedback: "no response before timeout; default approval applied",
	}
}

// History returns a copy of all recorded interventions in order.
func (m *Manager) History() []models.InterventionRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.InterventionRecord, len(m.history))
	copy(out, m.history)
	return out
}

// Count returns the number of recorded interventions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.history)
}

// Reset clears the intervention history.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = nil
}
