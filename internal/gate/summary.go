package gate

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/societymind/somind/pkg/models"
)

// TimelineEntry is one intervention in chronological order.
type TimelineEntry struct {
	Timestamp time.Time               `json:"timestamp"`
	Team      string                  `json:"team,omitempty"`
	Kind      models.InterventionKind `json:"kind"`
	Label     string                  `json:"label"`
	Decision  models.Decision         `json:"decision"`
}

// Summary aggregates the gate history for reporting. Team-scoped
// interventions are counted per team; director-level interventions
// (coordination, resource allocation, final validation) count as outer.
type Summary struct {
	Total    int                             `json:"total_interventions"`
	PerTeam  map[string]int                  `json:"inner_team_interventions"`
	Outer    int                             `json:"outer_team_interventions"`
	PerKind  map[models.InterventionKind]int `json:"intervention_types"`
	Timeline []TimelineEntry                 `json:"timeline"`
}

// Summarize aggregates intervention records into per-team and per-kind
// counts plus a timeline sorted by response timestamp. Records that share
// a timestamp keep their original order.
func Summarize(records []models.InterventionRecord) Summary {
	s := Summary{
		PerTeam:  make(map[string]int),
		PerKind:  make(map[models.InterventionKind]int),
		Timeline: make([]TimelineEntry, 0, len(records)),
	}
	for _, rec := range records {
		s.Total++
		if rec.Team != "" {
			s.PerTeam[rec.Team]++
		} else {
			s.Outer++
		}
		s.PerKind[rec.Kind]++
		s.Timeline = append(s.Timeline, TimelineEntry{
			Timestamp: rec.Result.Timestamp,
			Team:      rec.Team,
			Kind:      rec.Kind,
			Label:     rec.Label,
			Decision:  rec.Result.Decision,
		})
	}
	sort.SliceStable(s.Timeline, func(i, j int) bool {
		return s.Timeline[i].Timestamp.Before(s.Timeline[j].Timestamp)
	})
	return s
}

// Summary aggregates the manager's recorded history.
func (m *Manager) Summary() Summary {
	return Summarize(m.History())
}

// Render formats the summary as a human-readable report.
func (s Summary) Render(now time.Time) string {
	var b strings.Builder
	b.WriteString("\nHUMAN INTERVENTION SUMMARY\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", now.Format(time.RFC3339))

	b.WriteString("OVERVIEW:\n")
	fmt.Fprintf(&b, "• Total Interventions: %d\n", s.Total)
	fmt.Fprintf(&b, "• Inner Team Interventions: %d\n", s.Total-s.Outer)
	fmt.Fprintf(&b, "• Outer Coordination Interventions: %d\n", s.Outer)

	if len(s.PerTeam) > 0 {
		b.WriteString("\nBY TEAM:\n")
		teams := make([]string, 0, len(s.PerTeam))
		for team := range s.PerTeam {
			teams = append(teams, team)
		}
		sort.Strings(teams)
		for _, team := range teams {
			fmt.Fprintf(&b, "• %s: %d\n", models.TeamTitle(team), s.PerTeam[team])
		}
	}

	if len(s.PerKind) > 0 {
		b.WriteString("\nBY TYPE:\n")
		kinds := make([]string, 0, len(s.PerKind))
		for kind := range s.PerKind {
			kinds = append(kinds, string(kind))
		}
		sort.Strings(kinds)
		for _, kind := range kinds {
			fmt.Fprintf(&b, "• %s: %d\n", kind, s.PerKind[models.InterventionKind(kind)])
		}
	}

	if len(s.Timeline) > 0 {
		b.WriteString("\nTIMELINE:\n")
		for _, e := range s.Timeline {
			scope := "outer coordination"
			if e.Team != "" {
				scope = models.TeamTitle(e.Team)
			}
			fmt.Fprintf(&b, "• %s  %s  %s (%s)\n",
				e.Timestamp.Format("15:04:05"), scope, e.Kind, e.Decision)
		}
	}

	return b.String()
}
