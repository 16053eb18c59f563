package gate

import (
	"strings"

	"github.com/societymind/somind/pkg/models"
)

// teamValidationApprovals are the exact responses a team's human expert can
// give to accept an inner team output.
var teamValidationApprovals = []string{"approve", "approved", "good", "ok"}

// finalApprovalMarkers approve the final deliverable when any of them occurs
// anywhere in the response.
var finalApprovalMarkers = []string{"approve", "accept", "good", "ready"}

// classifyApproval maps a free-text decision response onto the approval
// contract: explicit approve and reject words, a "modify" override, and
// implicit approval for anything else.
func classifyApproval(response string) models.InterventionResult {
	trimmed := strings.TrimSpace(response)
	lower := strings.ToLower(trimmed)

	switch lower {
	case "approve", "yes", "y":
		return models.InterventionResult{Decision: models.DecisionApproved, Feedback: response}
	case "reject", "no", "n":
		return models.InterventionResult{Decision: models.DecisionRejected, Feedback: response}
	}

	if strings.HasPrefix(lower, "modify") {
		override := strings.TrimSpace(trimmed[len("modify"):])
		override = strings.TrimSpace(strings.TrimPrefix(override, ":"))
		return models.InterventionResult{
			Decision: models.DecisionRejected,
			Feedback: response,
			Override: override,
		}
	}

	// Free-text feedback counts as approval with commentary.
	return models.InterventionResult{Decision: models.DecisionApproved, Feedback: response}
}

// classifyContext treats "none" as no additional context; everything else
// becomes context verbatim. Context requests cannot reject.
func classifyContext(response string) models.InterventionResult {
	if strings.ToLower(strings.TrimSpace(response)) == "none" {
		return models.InterventionResult{Decision: models.DecisionApproved}
	}
	return models.InterventionResult{
		Decision:          models.DecisionApproved,
		AdditionalContext: response,
	}
}

// classifyConstraints applies the constraint-editing vocabulary: accept,
// add:, remove:, replace:, or a bare semicolon-separated replacement list.
func classifyConstraints(response string, proposed []string) models.InterventionResult {
	trimmed := strings.TrimSpace(response)
	lower := strings.ToLower(trimmed)

	res := models.InterventionResult{Decision: models.DecisionApproved}
	switch {
	case lower == "accept":
		res.Constraints = append([]string{}, proposed...)
	case strings.HasPrefix(lower, "add:"):
		added := strings.TrimSpace(trimmed[len("add:"):])
		res.Constraints = append(append([]string{}, proposed...), added)
	case strings.HasPrefix(lower, "remove:"):
		target := strings.TrimSpace(trimmed[len("remove:"):])
		res.Constraints = make([]string, 0, len(proposed))
		for _, c := range proposed {
			if c != target {
				res.Constraints = append(res.Constraints, c)
			}
		}
	case strings.HasPrefix(lower, "replace:"):
		res.Constraints = splitConstraints(trimmed[len("replace:"):])
	default:
		res.Constraints = splitConstraints(trimmed)
	}
	return res
}

// splitConstraints splits a semicolon-separated constraint list, trimming
// each entry.
func splitConstraints(s string) []string {
	parts := strings.Split(s, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

// classifyTeamValidation requires one of the exact approval words; any other
// response is improvement feedback and rejects the output.
func classifyTeamValidation(response string) models.InterventionResult {
	lower := strings.ToLower(strings.TrimSpace(response))
	for _, word := range teamValidationApprovals {
		if lower == word {
			return models.InterventionResult{Decision: models.DecisionApproved, Feedback: response}
		}
	}
	return models.InterventionResult{Decision: models.DecisionRejected, Feedback: response}
}

// classifyFinalValidation approves when the response mentions any approval
// marker, so "Looks good, ship it" passes while silence-adjacent complaints
// do not.
func classifyFinalValidation(response string) models.InterventionResult {
	lower := strings.ToLower(response)
	for _, word := range finalApprovalMarkers {
		if strings.Contains(lower, word) {
			return models.InterventionResult{Decision: models.DecisionApproved, Feedback: response}
		}
	}
	return models.InterventionResult{Decision: models.DecisionRejected, Feedback: response}
}
