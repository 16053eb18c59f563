// Package state persists run history in SQLite.
package state

import (
	"io"

	"github.com/societymind/somind/pkg/models"
)

// RunStore handles run-lifecycle persistence.
type RunStore interface {
	BeginRun(r *Run) error
	CompleteRun(res *models.WorkflowResult) error
}

// SystemStore handles the persisted process-wide counters.
type SystemStore interface {
	SaveSystemState(s models.SystemState) error
	LoadSystemState() (*models.SystemState, error)
	MarkInterruptedRuns() (int64, error)
}

// Migrator handles database schema migrations.
// Separating this allows clients to depend only on migration functionality.
type Migrator interface {
	// Migrate applies all pending schema migrations.
	Migrate() error
}

// Store defines the persistence surface the workflow engine depends on.
// The engine treats a nil Store as persistence disabled, so every write
// site guards with a nil check. It composes focused sub-interfaces for
// better modularity.
type Store interface {
	io.Closer
	Migrator
	RunStore
	SystemStore
}

// Compile-time verification that DB implements all interfaces.
var (
	_ Store       = (*DB)(nil)
	_ Migrator    = (*DB)(nil)
	_ RunStore    = (*DB)(nil)
	_ SystemStore = (*DB)(nil)
)
