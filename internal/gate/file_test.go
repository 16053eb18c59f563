package gate

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/societymind/somind/pkg/models"
)

func TestFileResponder(t *testing.T) {
	dir := t.TempDir()
	fr, err := NewFileResponder(dir)
	if err != nil {
		t.Fatalf("NewFileResponder failed: %v", err)
	}
	fr.SetPollInterval(10 * time.Millisecond)

	req := Request{
		ID:     "gate-123",
		Kind:   models.InterventionOutputValidation,
		Agent:  testProxy,
		Team:   "research_analysis",
		Body:   "BODY",
		Prompt: "PROMPT",
	}

	// Simulated operator: wait for the pending file, check it, then answer.
	go func() {
		pending := filepath.Join(PendingDir(dir), req.ID+".json")
		deadline := time.Now().Add(5 * time.Second)
		for time.Now().Before(deadline) {
			data, err := os.ReadFile(pending)
			if err == nil {
				var got Request
				if err := json.Unmarshal(data, &got); err != nil || got.ID != req.ID {
					return
				}
				os.WriteFile(filepath.Join(AnswersDir(dir), req.ID), []byte("approve\n"), 0644)
				return
			}
			time.Sleep(5 * time.Millisecond)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	response, err := fr.Respond(ctx, req)
	if err != nil {
		t.Fatalf("Respond failed: %v", err)
	}
	if response != "approve" {
		t.Errorf("response = %q, want 'approve'", response)
	}

	// Both exchange files are cleaned up afterwards.
	if _, err := os.Stat(filepath.Join(PendingDir(dir), req.ID+".json")); !os.IsNotExist(err) {
		t.Error("pending request file should be removed")
	}
	if _, err := os.Stat(filepath.Join(AnswersDir(dir), req.ID)); !os.IsNotExist(err) {
		t.Error("answer file should be consumed")
	}
}

func TestFileResponderCancellation(t *testing.T) {
	dir := t.TempDir()
	fr, err := NewFileResponder(dir)
	if err != nil {
		t.Fatalf("NewFileResponder failed: %v", err)
	}
	fr.SetPollInterval(10 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(30 * time.Millisecond)
		cancel()
	}()

	_, err = fr.Respond(ctx, Request{ID: "never-answered"})
	if err == nil {
		t.Fatal("expected cancellation error")
	}
}

func TestFileResponderIgnoresEmptyAnswer(t *testing.T) {
	dir := t.TempDir()
	fr, err := NewFileResponder(dir)
	if err != nil {
		t.Fatalf("NewFileResponder failed: %v", err)
	}
	fr.SetPollInterval(10 * time.Millisecond)

	answerPath := filepath.Join(AnswersDir(dir), "gate-empty")
	// An empty answer file means the writer is not done yet.
	if err := os.WriteFile(answerPath, nil, 0644); err != nil {
		t.Fatalf("writing empty answer: %v", err)
	}

	go func() {
		time.Sleep(50 * time.Millisecond)
		os.WriteFile(answerPath, []byte("good"), 0644)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	response, err := fr.Respond(ctx, Request{ID: "gate-empty"})
	if err != nil {
		t.Fatalf("Respond failed: %v", err)
	}
	if response != "good" {
		t.Errorf("response = %q, want 'good'", response)
	}
}
