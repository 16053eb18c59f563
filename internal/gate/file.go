package gate

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileResponder exchanges interventions through a directory, letting an
// operator answer gates from outside the process:
//
//	<dir>/pending/<id>.json  request written by the engine
//	<dir>/answers/<id>       response text written by the operator
//
// Answers are picked up by a directory watcher, with stat polling as a
// fallback for filesystems without change notification.
type FileResponder struct {
	dir  string
	poll time.Duration
}

// NewFileResponder creates the exchange directories and returns a responder
// rooted at dir.
func NewFileResponder(dir string) (*FileResponder, error) {
	for _, sub := range []string{PendingDir(dir), AnswersDir(dir)} {
		if err := os.MkdirAll(sub, 0755); err != nil {
			return nil, fmt.Errorf("creating gate directory %s: %w", sub, err)
		}
	}
	return &FileResponder{dir: dir, poll: 200 * time.Millisecond}, nil
}

// PendingDir returns the request directory under a gate exchange root.
func PendingDir(dir string) string { return filepath.Join(dir, "pending") }

// AnswersDir returns the response directory under a gate exchange root.
func AnswersDir(dir string) string { return filepath.Join(dir, "answers") }

// SetPollInterval overrides the stat-polling cadence, used in tests.
func (f *FileResponder) SetPollInterval(d time.Duration) {
	if d > 0 {
		f.poll = d
	}
}

// Respond implements Responder. It publishes the request and waits for the
// matching answer file until ctx is done.
func (f *FileResponder) Respond(ctx context.Context, req Request) (string, error) {
	pendingPath := filepath.Join(PendingDir(f.dir), req.ID+".json")
	answerPath := filepath.Join(AnswersDir(f.dir), req.ID)

	payload, err := json.MarshalIndent(req, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding gate request: %w", err)
	}
	if err := os.WriteFile(pendingPath, payload, 0644); err != nil {
		return "", fmt.Errorf("writing gate request: %w", err)
	}
	defer os.Remove(pendingPath)

	// Watch the answers directory for the response; fall back to polling
	// if the watcher cannot be created.
	watcher, werr := fsnotify.NewWatcher()
	var events chan fsnotify.Event
	if werr == nil {
		if err := watcher.Add(AnswersDir(f.dir)); err == nil {
			events = make(chan fsnotify.Event)
			go func() {
				for {
					select {
					case ev, ok := <-watcher.Events:
						if !ok {
							return
						}
						select {
						case events <- ev:
						case <-ctx.Done():
							return
						}
					case <-watcher.Errors:
						// Keep watching; polling covers missed events.
					}
				}
			}()
		}
		defer watcher.Close()
	}

	ticker := time.NewTicker(f.poll)
	defer ticker.Stop()

	for {
		if response, ok := f.readAnswer(answerPath); ok {
			return response, nil
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case ev := <-events:
			if ev.Name == answerPath && ev.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				if response, ok := f.readAnswer(answerPath); ok {
					return response, nil
				}
			}
		case <-ticker.C:
		}
	}
}

// readAnswer consumes the answer file if present and non-empty.
func (f *FileResponder) readAnswer(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	response := strings.TrimSpace(string(data))
	if response == "" {
		// Writer may still be mid-write.
		return "", false
	}
	os.Remove(path)
	return response, true
}
