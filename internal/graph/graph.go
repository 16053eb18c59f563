// Package graph provides the team dependency graph used to order output
// integration. Dependencies are inferred from keyword overlap between team
// outputs rather than declared up front.
package graph

import (
	"sort"
	"strings"
	"sync"

	"github.com/societymind/somind/pkg/models"
)

// Keywords are the content markers used to infer a dependency between two
// team outputs. Two teams are considered dependent when their outputs share
// at least OverlapThreshold of these.
var Keywords = []string{
	"data", "requirements", "design", "implementation",
	"strategy", "analysis", "content", "technical",
}

// OverlapThreshold is the minimum shared keyword count for a dependency.
const OverlapThreshold = 2

// DependencyGraph is a directed graph over team identifiers. An edge from A
// to B means A's output depends on context found in B's output. Overlap is
// symmetric, so edges come in pairs; the integration order falls back to
// in-degree rather than a strict topological sort.
type DependencyGraph struct {
	mu sync.RWMutex
	// teams preserves insertion order so ties sort deterministically.
	teams []string
	deps  map[string][]string
	// debugLog is an optional logging function.
	debugLog func(format string, args ...interface{})
}

// New creates a new empty dependency graph.
func New() *DependencyGraph {
	return &DependencyGraph{
		deps:     make(map[string][]string),
		debugLog: func(format string, args ...interface{}) {}, // no-op by default
	}
}

// SetDebugLog sets the debug logging function.
func (g *DependencyGraph) SetDebugLog(fn func(format string, args ...interface{})) {
	if fn != nil {
		g.debugLog = fn
	}
}

// Build derives dependencies from team outputs. Result order determines tie
// breaking everywhere downstream, so callers pass results in roster order.
func (g *DependencyGraph) Build(results []models.TeamResult) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.teams = g.teams[:0]
	g.deps = make(map[string][]string, len(results))

	lowered := make(map[string]string, len(results))
	for _, res := range results {
		g.teams = append(g.teams, res.Team)
		g.deps[res.Team] = nil
		lowered[res.Team] = strings.ToLower(res.Output)
	}

	g.debugLog("[graph.Build] analyzing %d team outputs", len(results))

	for _, team := range g.teams {
		for _, other := range g.teams {
			if team == other {
				continue
			}
			score := overlap(lowered[team], lowered[other])
			if score >= OverlapThreshold {
				g.deps[team] = append(g.deps[team], other)
				g.debugLog("[graph.Build] %s depends on %s (overlap=%d)", team, other, score)
			}
		}
	}
}

// overlap counts keywords present in both outputs.
func overlap(a, b string) int {
	score := 0
	for _, kw := range Keywords {
		if strings.Contains(a, kw) && strings.Contains(b, kw) {
			score++
		}
	}
	return score
}

// Dependencies returns a copy of the dependency lists keyed by team.
func (g *DependencyGraph) Dependencies() map[string][]string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make(map[string][]string, len(g.deps))
	for team, deps := range g.deps {
		out[team] = append([]string{}, deps...)
	}
	return out
}

// DependenciesOf returns the teams a given team depends on.
func (g *DependencyGraph) DependenciesOf(team string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]string{}, g.deps[team]...)
}

// InDegrees counts, per team, how many other teams list it as a dependency.
func (g *DependencyGraph) InDegrees() map[string]int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.inDegreesLocked()
}

func (g *DependencyGraph) inDegreesLocked() map[string]int {
	in := make(map[string]int, len(g.teams))
	for _, team := range g.teams {
		in[team] = 0
	}
	for _, deps := range g.deps {
		for _, dep := range deps {
			if _, ok := in[dep]; ok {
				in[dep]++
			}
		}
	}
	return in
}

// IntegrationOrder returns the teams sorted by ascending in-degree. Teams
// that nothing depends on integrate first; ties keep build order.
func (g *DependencyGraph) IntegrationOrder() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	in := g.inDegreesLocked()
	order := make([]string, len(g.teams))
	copy(order, g.teams)
	sort.SliceStable(order, func(i, j int) bool {
		return in[order[i]] < in[order[j]]
	})

	g.debugLog("[graph.IntegrationOrder] order=%v degrees=%v", order, in)
	return order
}

// HasCycle reports whether the dependency graph contains a cycle. Because
// overlap is symmetric any single dependency produces one, so this signals
// that integration needs conflict resolution, not that ordering failed.
func (g *DependencyGraph) HasCycle() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	// Color states: 0 = white (unvisited), 1 = gray (in progress), 2 = black (done).
	colors := make(map[string]int, len(g.teams))

	var visit func(team string) bool
	visit = func(team string) bool {
		colors[team] = 1

		for _, dep := range g.deps[team] {
			switch colors[dep] {
			case 1:
				return true
			case 0:
				if visit(dep) {
					return true
				}
			}
		}

		colors[team] = 2
		return false
	}

	for _, team := range g.teams {
		if colors[team] == 0 {
			if visit(team) {
				return true
			}
		}
	}
	return false
}

// Size returns the number of teams in the graph.
func (g *DependencyGraph) Size() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.teams)
}
