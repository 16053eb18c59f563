package results

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/societymind/somind/pkg/models"
)

func fixedClock() time.Time {
	return time.Date(2025, 7, 31, 1, 27, 0, 0, time.UTC)
}

func sampleResult(scenario string) *models.WorkflowResult {
	return &models.WorkflowResult{
		RunID:            "run-1",
		Scenario:         scenario,
		StartTime:        fixedClock(),
		EndTime:          fixedClock().Add(2 * time.Minute),
		Requirements:     models.Requirements{Title: "Launch AI-powered fitness tracking mobile app"},
		FinalDeliverable: "deliverable text",
		Success:          true,
	}
}

func TestWriteRun(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, WithClock(fixedClock))

	path, err := w.WriteRun(sampleResult("product_launch"))
	if err != nil {
		t.Fatalf("WriteRun failed: %v", err)
	}

	want := filepath.Join(dir, "demo_results_product_launch_20250731_012700.json")
	if path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read result file: %v", err)
	}
	if !strings.HasPrefix(string(data), "{\n  ") {
		t.Error("result file is not indented JSON")
	}

	var res models.WorkflowResult
	if err := json.Unmarshal(data, &res); err != nil {
		t.Fatalf("unmarshal result file: %v", err)
	}
	if res.RunID != "run-1" || res.Scenario != "product_launch" {
		t.Errorf("round-trip = (%q, %q)", res.RunID, res.Scenario)
	}
	if res.Requirements.Title != "Launch AI-powered fitness tracking mobile app" {
		t.Errorf("Title = %q", res.Requirements.Title)
	}
}

func TestWriteRun_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "results")
	w := NewWriter(dir, WithClock(fixedClock))

	if _, err := w.WriteRun(sampleResult("interactive")); err != nil {
		t.Fatalf("WriteRun failed: %v", err)
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Errorf("results directory not created: %s", dir)
	}
}

func TestWriteCombined(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, WithClock(fixedClock))

	all := map[string]*models.WorkflowResult{
		"product_launch":    sampleResult("product_launch"),
		"crisis_management": sampleResult("crisis_management"),
	}
	path, err := w.WriteCombined(all)
	if err != nil {
		t.Fatalf("WriteCombined failed: %v", err)
	}

	want := filepath.Join(dir, "all_scenarios_complete_20250731_012700.json")
	if path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read combined file: %v", err)
	}
	var decoded map[string]*models.WorkflowResult
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal combined file: %v", err)
	}
	if len(decoded) != 2 {
		t.Errorf("combined scenarios = %d, want 2", len(decoded))
	}
	if decoded["crisis_management"] == nil || decoded["crisis_management"].Scenario != "crisis_management" {
		t.Error("crisis_management entry missing or wrong")
	}
}
