package highlights

import (
	"fmt"
	"strings"
)

const fallbackReason = "Selected as potential highlight"

// engagementThreshold is the seed score above which a highlight is called
// out as high engagement.
const engagementThreshold = 5.0

// buildReason assembles the human-readable justification recorded on a
// highlight. It inspects the final expanded text but the originating
// segment's score.
func buildReason(text string, score float64) string {
	var reasons []string

	if found := matchKeywords(text); len(found) > 0 {
		if len(found) > 3 {
			found = found[:3]
		}
		reasons = append(reasons, fmt.Sprintf("Contains key phrases: %s", strings.Join(found, ", ")))
	}
	if strings.Contains(text, "?") {
		reasons = append(reasons, "Engaging question")
	}
	if strings.Contains(text, "!") {
		reasons = append(reasons, "High energy content")
	}
	if score > engagementThreshold {
		reasons = append(reasons, "High engagement score")
	}

	if len(reasons) == 0 {
		return fallbackReason
	}
	return strings.Join(reasons, "; ")
}
