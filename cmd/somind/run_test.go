package main

import (
	"strings"
	"testing"
	"time"

	"github.com/societymind/somind/internal/config"
	"github.com/societymind/somind/internal/gate"
)

func TestPreview(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{
			name: "short text unchanged",
			in:   "all good",
			n:    20,
			want: "all good",
		},
		{
			name: "long text truncated",
			in:   strings.Repeat("a ", 30),
			n:    10,
			want: "a a a a a ...",
		},
		{
			name: "newlines flattened",
			in:   "line one\nline two\n\nline three",
			n:    100,
			want: "line one line two line three",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := preview(tt.in, tt.n); got != tt.want {
				t.Errorf("preview(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
			}
		})
	}
}

func TestFormatAge(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{45 * time.Second, "45s"},
		{3 * time.Minute, "3m"},
		{90 * time.Minute, "1h"},
		{26 * time.Hour, "1d"},
		{75 * time.Hour, "3d"},
	}

	for _, tt := range tests {
		if got := formatAge(tt.d); got != tt.want {
			t.Errorf("formatAge(%s) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestBuildResponder(t *testing.T) {
	cfg := config.Default()

	r, err := buildResponder(cfg, engineOptions{})
	if err != nil {
		t.Fatalf("auto mode: %v", err)
	}
	if _, ok := r.(*gate.AutoResponder); !ok {
		t.Errorf("auto mode responder = %T, want *gate.AutoResponder", r)
	}

	r, err = buildResponder(cfg, engineOptions{gateMode: config.GateModeConsole})
	if err != nil {
		t.Fatalf("console mode: %v", err)
	}
	if _, ok := r.(*gate.ConsoleResponder); !ok {
		t.Errorf("console responder = %T, want *gate.ConsoleResponder", r)
	}

	cfg.Gate.Dir = t.TempDir()
	r, err = buildResponder(cfg, engineOptions{gateMode: config.GateModeFile})
	if err != nil {
		t.Fatalf("file mode: %v", err)
	}
	if _, ok := r.(*gate.FileResponder); !ok {
		t.Errorf("file responder = %T, want *gate.FileResponder", r)
	}

	// Scripted responses win over the configured mode.
	r, err = buildResponder(cfg, engineOptions{gateMode: config.GateModeConsole, responses: []string{"approve"}})
	if err != nil {
		t.Fatalf("scripted: %v", err)
	}
	if _, ok := r.(*gate.ScriptedResponder); !ok {
		t.Errorf("scripted responder = %T, want *gate.ScriptedResponder", r)
	}

	if _, err := buildResponder(cfg, engineOptions{gateMode: "telepathy"}); err == nil {
		t.Error("unknown gate mode accepted")
	}
}
