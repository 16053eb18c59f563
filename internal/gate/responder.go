package gate

import (
	"context"
	"sync"

	"github.com/societymind/somind/pkg/models"
)

// autoApprovals are the canned responses the auto responder rotates through
// for free-text gates.
var autoApprovals = []string{
	"Approved - excellent analysis and recommendations",
	"Approved with minor suggestions for improvement",
	"Approved - meets all requirements",
	"Approved - innovative approach, well executed",
}

// AutoResponder simulates a cooperative reviewer. It answers each gate kind
// with its simplest approving response and rotates the canned feedback lines
// deterministically so repeated runs stay reproducible.
type AutoResponder struct {
	mu   sync.Mutex
	next int
}

// NewAutoResponder creates an auto-approving responder.
func NewAutoResponder() *AutoResponder {
	return &AutoResponder{}
}

// Respond implements Responder.
func (a *AutoResponder) Respond(_ context.Context, req Request) (string, error) {
	switch req.Kind {
	case models.InterventionOutputValidation:
		// Team validation matches on exact approval words only.
		return "approve", nil
	case models.InterventionContextAddition:
		return "none", nil
	case models.InterventionConstraintSetting:
		return "accept", nil
	default:
		a.mu.Lock()
		defer a.mu.Unlock()
		resp := autoApprovals[a.next%len(autoApprovals)]
		a.next++
		return resp, nil
	}
}

// ScriptedResponder replays a fixed response sequence, then falls back to
// auto approval once the script runs out. Used by tests and the --responses
// flag.
type ScriptedResponder struct {
	mu       sync.Mutex
	queue    []string
	fallback Responder
}

// NewScriptedResponder creates a responder that answers gates in order from
// the given script.
func NewScriptedResponder(responses ...string) *ScriptedResponder {
	return &ScriptedResponder{
		queue:    append([]string{}, responses...),
		fallback: NewAutoResponder(),
	}
}

// Respond implements Responder.
func (s *ScriptedResponder) Respond(ctx context.Context, req Request) (string, error) {
	s.mu.Lock()
	if len(s.queue) > 0 {
		resp := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()
		return resp, nil
	}
	s.mu.Unlock()
	return s.fallback.Respond(ctx, req)
}

// Remaining returns how many scripted responses are left.
func (s *ScriptedResponder) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}
