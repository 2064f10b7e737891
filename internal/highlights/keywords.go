package highlights

import "strings"

// interestKeywords are terms whose presence suggests shareable content.
// Matching is case-insensitive substring containment.
var interestKeywords = []string{
	"amazing", "incredible", "shocking", "unbelievable",
	"discovered", "breakthrough", "revolutionary", "secret",
	"surprising", "wow", "interesting", "fascinating",
	"important", "critical", "essential", "key",
	"problem", "solution", "question", "answer",
}

// matchKeywords returns the interest keywords present in text, in the
// canonical keyword order.
func matchKeywords(text string) []string {
	lowered := strings.ToLower(text)
	var found []string
	for _, keyword := range interestKeywords {
		if strings.Contains(lowered, keyword) {
			found = append(found, keyword)
		}
	}
	return found
}
