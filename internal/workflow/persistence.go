package workflow

import (
	"github.com/societymind/somind/internal/state"
	"github.com/societymind/somind/pkg/models"
)

// beginRunState records the run start in the history store.
func (e *Engine) beginRunState(result *models.WorkflowResult) {
	if e.store == nil {
		return // No-op if state store not configured
	}
	run := &state.Run{
		ID:        result.RunID,
		Scenario:  result.Scenario,
		Title:     result.Requirements.Title,
		StartedAt: result.StartTime,
	}
	if err := e.store.BeginRun(run); err != nil {
		e.debugLog("[workflow] begin run state: %v", err)
	}
}

// completeRunState persists the finished run and the system counters.
// Persistence failures are logged, not surfaced; the run result itself is
// already in memory and in the result file.
func (e *Engine) completeRunState(result *models.WorkflowResult, snapshot models.SystemState) {
	if e.store == nil {
		return
	}
	if err := e.store.CompleteRun(result); err != nil {
		e.debugLog("[workflow] complete run state: %v", err)
	}
	if err := e.store.SaveSystemState(snapshot); err != nil {
		e.debugLog("[workflow] save system state: %v", err)
	}
}
