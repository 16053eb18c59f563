// Package scenario carries the canned demonstration payloads. Each scenario
// bundles the project requirements handed to the society with the display
// metadata the CLI lists.
package scenario

import (
	"time"

	"github.com/societymind/somind/pkg/models"
)

// Scenario identifiers.
const (
	ProductLaunch    = "product_launch"
	CrisisManagement = "crisis_management"
	Interactive      = "interactive"
)

// Scenario is one runnable demonstration.
type Scenario struct {
	// ID is the identifier passed on the command line.
	ID string `json:"id"`
	// Name is the display name.
	Name string `json:"name"`
	// Description is a one-line summary of the demonstration.
	Description string `json:"description"`
	// ExpectedDuration is how long a live run is expected to take.
	ExpectedDuration time.Duration `json:"expected_duration"`
	// Complexity labels the demonstration difficulty.
	Complexity string `json:"complexity"`
	// ExpectedInterventions is the rough number of human gate calls.
	ExpectedInterventions int `json:"expected_interventions"`
	// Requirements is the project payload the run executes.
	Requirements models.Requirements `json:"requirements"`
}

// All returns the available scenarios in listing order. The returned values
// are fresh copies, safe to modify.
func All() []Scenario {
	return []Scenario{
		{
			ID:                    ProductLaunch,
			Name:                  "Product Launch Planning",
			Description:           "Plan comprehensive launch strategy for new product",
			ExpectedDuration:      30 * time.Minute,
			Complexity:            "medium",
			ExpectedInterventions: 8,
			Requirements: models.Requirements{
				Title:   "AI-powered fitness tracking mobile app",
				Summary: "Plan comprehensive launch strategy for new mobile app",
				Details: []models.Detail{
					{Key: "target_market", Value: "Health-conscious millennials and Gen Z"},
					{Key: "launch_timeline", Value: "3 months"},
				},
				Objectives: []string{
					"Market penetration analysis",
					"Brand positioning and messaging",
					"Technical launch infrastructure",
					"Marketing campaign strategy",
				},
				Budget:        500000,
				TimelineWeeks: 12,
			},
		},
		{
			ID:                    CrisisManagement,
			Name:                  "Crisis Management Response",
			Description:           "Develop rapid response to business crisis",
			ExpectedDuration:      20 * time.Minute,
			Complexity:            "high",
			ExpectedInterventions: 12,
			Requirements: models.Requirements{
				Title:   "Potential data breach affecting user accounts",
				Summary: "Develop rapid response to data security incident",
				Details: []models.Detail{
					{Key: "severity", Value: "High"},
					{Key: "affected_users", Value: "~50,000 users"},
					{Key: "discovery_time", Value: "2 hours ago"},
				},
				Objectives: []string{
					"Incident assessment and containment",
					"Stakeholder communication strategy",
					"Technical remediation plan",
					"Legal and compliance response",
				},
			},
		},
		{
			ID:                    Interactive,
			Name:                  "Interactive Demonstration",
			Description:           "Custom interactive demonstration",
			ExpectedDuration:      40 * time.Minute,
			Complexity:            "variable",
			ExpectedInterventions: 10,
			Requirements: models.Requirements{
				Title:   "Society of Mind framework demonstration",
				Summary: "Showcase hierarchical multi-agent coordination with human oversight",
				Details: []models.Detail{
					{Key: "focus", Value: "Framework capabilities and performance metrics"},
					{Key: "structure", Value: "3 inner teams with outer coordination"},
				},
				Objectives: []string{
					"Demonstrate hierarchical team coordination",
					"Highlight strategic human decision points",
					"Collect quality and performance metrics",
					"Validate end-to-end workflow integration",
				},
			},
		},
	}
}

// IDs returns the scenario identifiers in listing order.
func IDs() []string {
	all := All()
	ids := make([]string, len(all))
	for i, s := range all {
		ids[i] = s.ID
	}
	return ids
}

// Lookup resolves a scenario identifier. Unknown identifiers fall back to
// the interactive demonstration with ok=false so callers can log the miss.
func Lookup(id string) (s Scenario, ok bool) {
	var fallback Scenario
	for _, sc := range All() {
		if sc.ID == id {
			return sc, true
		}
		if sc.ID == Interactive {
			fallback = sc
		}
	}
	return fallback, false
}
