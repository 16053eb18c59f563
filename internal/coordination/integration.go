package coordination

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const integrationStrategy = `INTEGRATION STRATEGY:
1. Sequential Integration:
   - Start with teams that have no dependencies
   - Integrate dependent teams in dependency order

2. Conflict Resolution:
   - Identify overlapping responsibilities
   - Merge complementary outputs
   - Resolve contradictory recommendations

3. Quality Assurance:
   - Validate integrated output against requirements
   - Ensure consistency across all team contributions
   - Verify completeness of final deliverable`

// renderIntegrationPlan builds the plan text shown at the coordination gate.
func renderIntegrationPlan(deps map[string][]string, order []string, cyclic bool, now time.Time) string {
	var b strings.Builder
	b.WriteString("TEAM INTEGRATION PLAN\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", now.Format(timestampLayout))

	b.WriteString("TEAM DEPENDENCIES:\n")
	encoded, err := json.MarshalIndent(deps, "", "  ")
	if err != nil {
		encoded = []byte("{}")
	}
	b.Write(encoded)
	b.WriteString("\n\n")

	b.WriteString(integrationStrategy)
	b.WriteString("\n\nRECOMMENDED INTEGRATION ORDER:\n")
	for i, team := range order {
		fmt.Fprintf(&b, "%d. %s\n", i+1, team)
	}
	if cyclic {
		b.WriteString("\nNOTE: Circular dependencies detected; order follows the in-degree heuristic.\n")
	}

	b.WriteString(`
HUMAN INTERVENTION POINTS:
- Approve dependency analysis
- Validate integration strategy
- Resolve complex conflicts
- Approve final integrated output
`)
	return b.String()
}
