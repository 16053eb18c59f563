package models

import "testing"

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		want    string
	}{
		{"zero", 0, "0m 0s"},
		{"under a minute", 42, "0m 42s"},
		{"exact minute", 60, "1m 0s"},
		{"minutes and seconds", 204, "3m 24s"},
		{"fractional seconds truncate", 90.9, "1m 30s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDuration(tt.seconds); got != tt.want {
				t.Errorf("FormatDuration(%v) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestSystemState_SuccessRate(t *testing.T) {
	tests := []struct {
		name       string
		total      int
		successful int
		want       float64
	}{
		{"no projects", 0, 0, 0},
		{"all successful", 4, 4, 1.0},
		{"half successful", 4, 2, 0.5},
		{"none successful", 3, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := SystemState{TotalProjects: tt.total, SuccessfulProjects: tt.successful}
			if got := s.SuccessRate(); got != tt.want {
				t.Errorf("SuccessRate() = %v, want %v", got, tt.want)
			}
		})
	}
}
