package state

import (
	"database/sql"
	"fmt"

	"github.com/societymind/somind/pkg/models"
)

// systemStateRowID pins system_state to a single row.
const systemStateRowID = 1

// SaveSystemState writes the process-wide counters. Only the totals are
// stored; the running averages are derived on load.
func (db *DB) SaveSystemState(s models.SystemState) error {
	_, err := db.Exec(`
		INSERT OR REPLACE INTO system_state (id, initialized_at, total_projects, successful_projects,
			total_execution_seconds, total_teams_executed, total_interventions)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, systemStateRowID, formatTime(s.InitializedAt), s.TotalProjects, s.SuccessfulProjects,
		s.Performance.TotalExecutionSeconds, s.Performance.TotalTeamsExecuted,
		s.Performance.TotalInterventions)
	if err != nil {
		return fmt.Errorf("save system state: %w", err)
	}
	return nil
}

// LoadSystemState reads the persisted counters and recomputes the running
// averages from the totals. Returns nil when nothing has been saved yet.
func (db *DB) LoadSystemState() (*models.SystemState, error) {
	row := db.QueryRow(`
		SELECT initialized_at, total_projects, successful_projects,
			total_execution_seconds, total_teams_executed, total_interventions
		FROM system_state WHERE id = ?
	`, systemStateRowID)

	var s models.SystemState
	var initializedAt string
	err := row.Scan(&initializedAt, &s.TotalProjects, &s.SuccessfulProjects,
		&s.Performance.TotalExecutionSeconds, &s.Performance.TotalTeamsExecuted,
		&s.Performance.TotalInterventions)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load system state: %w", err)
	}

	s.InitializedAt, _ = parseTime(initializedAt)
	if s.TotalProjects > 0 {
		n := float64(s.TotalProjects)
		s.Performance.AvgExecutionSeconds = s.Performance.TotalExecutionSeconds / n
		s.Performance.AvgTeamsPerProject = float64(s.Performance.TotalTeamsExecuted) / n
		s.Performance.AvgInterventionsPerProject = float64(s.Performance.TotalInterventions) / n
	}
	return &s, nil
}

// MarkInterruptedRuns flips runs still marked running to failed. A run left
// in the running state means a previous process died mid-run; calling this on
// startup keeps the history honest. Returns the number of runs reconciled.
func (db *DB) MarkInterruptedRuns() (int64, error) {
	result, err := db.Exec(`
		UPDATE runs SET status = ?, error = ? WHERE status = ?
	`, string(RunFailed), "interrupted before completion", string(RunRunning))
	if err != nil {
		return 0, fmt.Errorf("mark interrupted runs: %w", err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("get rows affected: %w", err)
	}

	return count, nil
}
