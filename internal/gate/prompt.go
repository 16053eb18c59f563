package gate

import (
	"fmt"
	"strings"
	"time"

	"github.com/societymind/somind/pkg/models"
)

var banner = strings.Repeat("=", 60)

// teamContext labels where in the organization a gate originates.
func teamContext(team string) string {
	if team == "" {
		return "Outer Team: Project Coordination"
	}
	return "Inner Team: " + models.TeamLabel(team)
}

// renderPrompt wraps a gate body in the intervention banner with role,
// context, and timestamp lines.
func renderPrompt(role, context string, now time.Time, body string) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(banner + "\n")
	b.WriteString("HUMAN INTERVENTION REQUIRED\n")
	b.WriteString(banner + "\n\n")
	fmt.Fprintf(&b, "Role: %s\n", role)
	fmt.Fprintf(&b, "Team Context: %s\n", context)
	fmt.Fprintf(&b, "Timestamp: %s\n\n", now.Format("2006-01-02 15:04:05"))
	b.WriteString(body)
	b.WriteString("\n\n" + banner + "\n")
	b.WriteString("Please provide your response:\n")
	return b.String()
}

func approvalBody(decision, context string) string {
	return fmt.Sprintf(`DECISION APPROVAL REQUEST

Decision to approve: %s

Context: %s

Options:
1. APPROVE - Type 'approve' or 'yes'
2. REJECT - Type 'reject' or 'no'
3. MODIFY - Type 'modify' followed by your changes

You can also provide additional feedback or context.`, decision, context)
}

func contextBody(current string) string {
	return fmt.Sprintf(`CONTEXT ADDITION REQUEST

Current context: %s

Please provide any additional context, constraints, or information
that should be considered:

Type 'none' if no additional context is needed.`, current)
}

func constraintsBody(proposed []string) string {
	var list strings.Builder
	for _, c := range proposed {
		fmt.Fprintf(&list, "- %s\n", c)
	}
	return fmt.Sprintf(`CONSTRAINT SETTING REQUEST

Proposed constraints:
%s
Please review and modify constraints as needed.
You can:
1. Accept all - Type 'accept'
2. Add constraints - Type 'add: [your constraint]'
3. Remove constraints - Type 'remove: [constraint to remove]'
4. Replace all - Type 'replace:' followed by new constraints

Separate multiple constraints with semicolons (;)`, list.String())
}

func teamValidationBody(team, domain, output string, agentsInvolved []string) string {
	return fmt.Sprintf(`INNER TEAM OUTPUT VALIDATION

Team: %s
Agents involved: %s
Domain: %s

Output to validate:
%s

As a %s expert, please review this output and:
1. Validate accuracy and quality
2. Identify any missing elements
3. Suggest improvements if needed

Type 'approve' to accept, or provide feedback for improvements.`,
		models.TeamLabel(team), strings.Join(agentsInvolved, ", "), domain, output, domain)
}

func coordinationBody(teamResults []models.TeamResult, plan string) string {
	var summary strings.Builder
	for _, res := range teamResults {
		fmt.Fprintf(&summary, "%s: %s...\n", res.Team, head(res.Output, 200))
	}
	return fmt.Sprintf(`INTER-TEAM COORDINATION DECISION

Team Outputs Summary:
%s
Proposed Coordination Plan:
%s

As Project Director, please:
1. Review the coordination plan
2. Identify any conflicts or gaps
3. Approve or suggest modifications
4. Set priorities for team interactions

Your decision:`, summary.String(), plan)
}

func resourceBody(requests []models.ResourceRequest) string {
	var summary strings.Builder
	for _, req := range requests {
		fmt.Fprintf(&summary, "%s: %s (Priority: %s)\n", req.Team, req.Description, req.Priority)
	}
	return fmt.Sprintf(`RESOURCE ALLOCATION DECISION

Resource Requests:
%s
Please make resource allocation decisions:
1. Approve/deny each request
2. Set priorities if resources are limited
3. Suggest alternatives if needed

Format your response as:
Team_Name: APPROVE/DENY - [reason/alternative]

Your allocation decisions:`, summary.String())
}

func finalValidationBody(consolidated string, contributions []models.TeamResult) string {
	var summary strings.Builder
	for _, res := range contributions {
		fmt.Fprintf(&summary, "%s: %s...\n", res.Team, head(res.Output, 150))
	}
	return fmt.Sprintf(`FINAL OUTPUT VALIDATION

Consolidated Output:
%s

Team Contributions:
%s
As Project Director, please provide final validation:
1. Does the output meet project objectives?
2. Are all team contributions properly integrated?
3. Is the quality acceptable for delivery?
4. Any final modifications needed?

Your final decision:`, consolidated, summary.String())
}

// head returns at most n leading bytes of s.
func head(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
