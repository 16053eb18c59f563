package state

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/societymind/somind/pkg/models"
)

// RunStatus represents the lifecycle status of a persisted run.
type RunStatus string

const (
	RunRunning   RunStatus = "running"
	RunCompleted RunStatus = "completed"
	RunFailed    RunStatus = "failed"
)

// Run is one persisted workflow run. The heavyweight artifacts (deliverable
// text, coordination plans) live in the JSON result file; the row keeps the
// figures the longitudinal reports need.
type Run struct {
	ID                string     `json:"id"`
	Scenario          string     `json:"scenario"`
	Title             string     `json:"title"`
	Status            RunStatus  `json:"status"`
	Success           bool       `json:"success"`
	Error             string     `json:"error,omitempty"`
	StartedAt         time.Time  `json:"started_at"`
	FinishedAt        *time.Time `json:"finished_at"`
	DurationSeconds   float64    `json:"duration_seconds"`
	TeamsExecuted     int        `json:"teams_executed"`
	Interventions     int        `json:"interventions"`
	DeliverableLength int        `json:"deliverable_length"`
}

// TeamRun is one persisted inner-team execution within a run.
type TeamRun struct {
	RunID           string    `json:"run_id"`
	Team            string    `json:"team"`
	Agents          []string  `json:"agents"`
	RequirementsLen int       `json:"requirements_length"`
	OutputLen       int       `json:"result_length"`
	Success         bool      `json:"success"`
	FinishedAt      time.Time `json:"finished_at"`
}

// Intervention is one persisted human-gate record within a run.
type Intervention struct {
	ID              string    `json:"id"`
	RunID           string    `json:"run_id"`
	Kind            string    `json:"kind"`
	Team            string    `json:"team,omitempty"`
	Label           string    `json:"label,omitempty"`
	Decision        string    `json:"decision"`
	Response        string    `json:"response,omitempty"`
	Override        string    `json:"override_decision,omitempty"`
	TimedOut        bool      `json:"timed_out,omitempty"`
	ResponseSeconds float64   `json:"response_seconds"`
	RecordedAt      time.Time `json:"recorded_at"`
}

// BeginRun inserts the row for a run that just started. An empty status
// defaults to running so interrupted processes can be detected on restart.
func (db *DB) BeginRun(r *Run) error {
	if r.Status == "" {
		r.Status = RunRunning
	}
	_, err := db.Exec(`
		INSERT INTO runs (id, scenario, title, status, success, started_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, r.ID, r.Scenario, r.Title, string(r.Status), r.Success, formatTime(r.StartedAt))
	if err != nil {
		return fmt.Errorf("begin run: %w", err)
	}
	return nil
}

// CompleteRun writes the finished run and its team-result and intervention
// rows in one transaction. The run row is replaced wholesale, which cascades
// away any child rows from an earlier save, so re-saving is safe.
func (db *DB) CompleteRun(res *models.WorkflowResult) error {
	status := RunCompleted
	if !res.Success {
		status = RunFailed
	}
	duration := res.EndTime.Sub(res.StartTime).Seconds()

	teams := make([]string, 0, len(res.TeamResults))
	for team := range res.TeamResults {
		teams = append(teams, team)
	}
	sort.Strings(teams)

	return db.Transaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT OR REPLACE INTO runs (id, scenario, title, status, success, error, started_at,
				finished_at, duration_seconds, teams_executed, interventions, deliverable_length)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, res.RunID, res.Scenario, res.Requirements.Title, string(status), res.Success,
			res.Error, formatTime(res.StartTime), formatTime(res.EndTime), duration,
			len(res.TeamResults), len(res.Interventions), len(res.FinalDeliverable))
		if err != nil {
			return fmt.Errorf("save run: %w", err)
		}

		for _, team := range teams {
			tr := res.TeamResults[team]
			agents, _ := json.Marshal(tr.Agents)
			_, err := tx.Exec(`
				INSERT INTO team_results (run_id, team, agents, requirements_length, result_length, success, finished_at)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`, res.RunID, tr.Team, string(agents), tr.RequirementsLen, tr.OutputLen, tr.Success, formatTime(tr.Timestamp))
			if err != nil {
				return fmt.Errorf("save team result %s: %w", tr.Team, err)
			}
		}

		for _, rec := range res.Interventions {
			_, err := tx.Exec(`
				INSERT INTO interventions (id, run_id, kind, team, label, decision, response,
					override_decision, timed_out, response_seconds, recorded_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`, rec.ID, res.RunID, string(rec.Kind), rec.Team, rec.Label, string(rec.Result.Decision),
				rec.Response, rec.Result.Override, rec.Result.TimedOut, rec.Result.ResponseSeconds,
				formatTime(rec.Result.Timestamp))
			if err != nil {
				return fmt.Errorf("save intervention %s: %w", rec.ID, err)
			}
		}

		return nil
	})
}

// GetRun retrieves a run by ID.
func (db *DB) GetRun(id string) (*Run, error) {
	row := db.QueryRow(`
		SELECT id, scenario, title, status, success, error, started_at, finished_at,
			duration_seconds, teams_executed, interventions, deliverable_length
		FROM runs WHERE id = ?
	`, id)

	var r Run
	var errText sql.NullString
	var startedAt string
	var finishedAt sql.NullString
	err := row.Scan(&r.ID, &r.Scenario, &r.Title, &r.Status, &r.Success, &errText, &startedAt,
		&finishedAt, &r.DurationSeconds, &r.TeamsExecuted, &r.Interventions, &r.DeliverableLength)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}

	if errText.Valid {
		r.Error = errText.String
	}
	r.StartedAt, _ = parseTime(startedAt)
	r.FinishedAt = parseNullableTime(finishedAt)
	return &r, nil
}

// DeleteRun deletes a run and its child rows by ID.
func (db *DB) DeleteRun(id string) error {
	_, err := db.Exec("DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	return nil
}

// ListRuns lists all runs, newest first, optionally filtered by status.
func (db *DB) ListRuns(status *RunStatus) ([]Run, error) {
	var rows *sql.Rows
	var err error

	if status != nil {
		rows, err = db.Query(`
			SELECT id, scenario, title, status, success, error, started_at, finished_at,
				duration_seconds, teams_executed, interventions, deliverable_length
			FROM runs WHERE status = ? ORDER BY started_at DESC
		`, string(*status))
	} else {
		rows, err = db.Query(`
			SELECT id, scenario, title, status, success, error, started_at, finished_at,
				duration_seconds, teams_executed, interventions, deliverable_length
			FROM runs ORDER BY started_at DESC
		`)
	}
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// ListRunsByScenario lists all runs of one scenario, newest first.
func (db *DB) ListRunsByScenario(scenario string) ([]Run, error) {
	rows, err := db.Query(`
		SELECT id, scenario, title, status, success, error, started_at, finished_at,
			duration_seconds, teams_executed, interventions, deliverable_length
		FROM runs WHERE scenario = ? ORDER BY started_at DESC
	`, scenario)
	if err != nil {
		return nil, fmt.Errorf("list runs by scenario: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// scanRuns scans run rows into a slice.
func scanRuns(rows *sql.Rows) ([]Run, error) {
	var runs []Run
	for rows.Next() {
		var r Run
		var errText sql.NullString
		var startedAt string
		var finishedAt sql.NullString
		if err := rows.Scan(&r.ID, &r.Scenario, &r.Title, &r.Status, &r.Success, &errText, &startedAt,
			&finishedAt, &r.DurationSeconds, &r.TeamsExecuted, &r.Interventions, &r.DeliverableLength); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if errText.Valid {
			r.Error = errText.String
		}
		r.StartedAt, _ = parseTime(startedAt)
		r.FinishedAt = parseNullableTime(finishedAt)
		runs = append(runs, r)
	}
	return runs, nil
}

// ListTeamRuns lists the persisted team executions of a run in insertion order.
func (db *DB) ListTeamRuns(runID string) ([]TeamRun, error) {
	rows, err := db.Query(`
		SELECT run_id, team, agents, requirements_length, result_length, success, finished_at
		FROM team_results WHERE run_id = ? ORDER BY id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("list team runs: %w", err)
	}
	defer rows.Close()

	var teams []TeamRun
	for rows.Next() {
		var t TeamRun
		var agents sql.NullString
		var finishedAt string
		if err := rows.Scan(&t.RunID, &t.Team, &agents, &t.RequirementsLen, &t.OutputLen, &t.Success, &finishedAt); err != nil {
			return nil, fmt.Errorf("scan team run: %w", err)
		}
		if agents.Valid {
			json.Unmarshal([]byte(agents.String), &t.Agents)
		}
		t.FinishedAt, _ = parseTime(finishedAt)
		teams = append(teams, t)
	}
	return teams, nil
}

// ListInterventions lists the persisted gate records of a run in insertion order.
func (db *DB) ListInterventions(runID string) ([]Intervention, error) {
	rows, err := db.Query(`
		SELECT id, run_id, kind, team, label, decision, response, override_decision,
			timed_out, response_seconds, recorded_at
		FROM interventions WHERE run_id = ? ORDER BY rowid
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("list interventions: %w", err)
	}
	defer rows.Close()

	var recs []Intervention
	for rows.Next() {
		var rec Intervention
		var team, label, response, override sql.NullString
		var recordedAt string
		if err := rows.Scan(&rec.ID, &rec.RunID, &rec.Kind, &team, &label, &rec.Decision,
			&response, &override, &rec.TimedOut, &rec.ResponseSeconds, &recordedAt); err != nil {
			return nil, fmt.Errorf("scan intervention: %w", err)
		}
		if team.Valid {
			rec.Team = team.String
		}
		if label.Valid {
			rec.Label = label.String
		}
		if response.Valid {
			rec.Response = response.String
		}
		if override.Valid {
			rec.Override = override.String
		}
		rec.RecordedAt, _ = parseTime(recordedAt)
		recs = append(recs, rec)
	}
	return recs, nil
}
