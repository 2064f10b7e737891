package textutil

import "strings"

// NormalizeHookLine cleans a model-generated hook line: surrounding quotes
// are stripped, internal whitespace is collapsed, and the result is capped
// at maxWords words. Returns "" if nothing usable remains.
func NormalizeHookLine(line string, maxWords int) string {
	line = strings.TrimSpace(line)
	line = strings.Trim(line, "\"'“”‘’")
	words := strings.Fields(line)
	if len(words) == 0 {
		return ""
	}
	if maxWords > 0 && len(words) > maxWords {
		words = words[:maxWords]
	}
	return strings.Join(words, " ")
}

// Truncate shortens text to at most limit runes, appending an ellipsis
// when anything was cut.
func Truncate(text string, limit int) string {
	runes := []rune(text)
	if limit <= 0 || len(runes) <= limit {
		return text
	}
	return strings.TrimSpace(string(runes[:limit])) + "..."
}
