// Package results publishes run results as pretty-printed JSON files, one
// per run plus a combined file when every scenario runs back to back.
package results

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/societymind/somind/pkg/models"
)

// stampLayout names result files down to the second.
const stampLayout = "20060102_150405"

// Writer persists run results to a directory.
type Writer struct {
	dir string
	now func() time.Time
}

// Option configures a Writer.
type Option func(*Writer)

// WithClock overrides the writer's time source.
func WithClock(now func() time.Time) Option {
	return func(w *Writer) { w.now = now }
}

// NewWriter creates a writer that stores result files under dir.
func NewWriter(dir string, opts ...Option) *Writer {
	w := &Writer{dir: dir, now: time.Now}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Dir returns the directory result files are written to.
func (w *Writer) Dir() string {
	return w.dir
}

// ensureDir creates the results directory if it doesn't exist.
func (w *Writer) ensureDir() error {
	return os.MkdirAll(w.dir, 0755)
}

// WriteRun writes one run result and returns the file path, e.g.
// demo_results_product_launch_20250731_012700.json.
func (w *Writer) WriteRun(res *models.WorkflowResult) (string, error) {
	if err := w.ensureDir(); err != nil {
		return "", fmt.Errorf("create results directory: %w", err)
	}

	name := fmt.Sprintf("demo_results_%s_%s.json", res.Scenario, w.now().Format(stampLayout))
	path := filepath.Join(w.dir, name)

	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal run result: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write run result: %w", err)
	}

	return path, nil
}

// WriteCombined writes the scenario-to-result map produced by a full
// demonstration pass and returns the file path, e.g.
// all_scenarios_complete_20250731_012700.json.
func (w *Writer) WriteCombined(all map[string]*models.WorkflowResult) (string, error) {
	if err := w.ensureDir(); err != nil {
		return "", fmt.Errorf("create results directory: %w", err)
	}

	name := fmt.Sprintf("all_scenarios_complete_%s.json", w.now().Format(stampLayout))
	path := filepath.Join(w.dir, name)

	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal combined results: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write combined results: %w", err)
	}

	return path, nil
}
