package workflow

import (
	"time"
)

// EventType represents the type of engine event.
type EventType string

const (
	// EventRunStarted indicates a project run has started.
	EventRunStarted EventType = "run_started"
	// EventPhaseStarted indicates a workflow phase has begun.
	EventPhaseStarted EventType = "phase_started"
	// EventTeamCompleted indicates an inner team finished its workflow.
	EventTeamCompleted EventType = "team_completed"
	// EventGateDecision indicates a human gate recorded a decision.
	EventGateDecision EventType = "gate_decision"
	// EventRunCompleted indicates the project run finished, success or not.
	EventRunCompleted EventType = "run_completed"
	// EventResultsWritten indicates a run result file was written.
	EventResultsWritten EventType = "results_written"
)

// Event represents an event emitted by the engine. These events are used
// to render CLI progress while a run is active.
type Event struct {
	// Type is the kind of event.
	Type EventType
	// RunID is the ID of the related run, if applicable.
	RunID string
	// Scenario is the scenario identifier of the related run.
	Scenario string
	// Team is the related inner team, if applicable.
	Team string
	// Message provides additional context about the event. For
	// results_written events it carries the file path.
	Message string
	// Success reports the classified outcome for gate decision and run
	// completion events.
	Success bool
	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// Events returns the engine's event stream.
func (e *Engine) Events() <-chan Event {
	return e.events
}

// emit sends an event to the events channel.
func (e *Engine) emit(event Event) {
	event.Timestamp = e.now()
	select {
	case e.events <- event:
	default:
		// Channel full, drop event to avoid blocking the run
	}
}
