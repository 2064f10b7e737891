package diffusion

import "strings"

const (
	basePromptStyle = "Modern abstract background, vibrant gradient colors, professional podcast aesthetic, vertical composition"
	promptSuffix    = "Suitable for social media content, no text or faces, abstract design, 9:16 aspect ratio."
	maxPromptLength = 1000
	maxKeywords     = 4
)

var moodBuckets = []struct {
	triggers []string
	mood     string
}{
	{[]string{"exciting", "amazing", "breakthrough", "incredible"}, ", energetic and dynamic"},
	{[]string{"serious", "important", "critical", "problem"}, ", serious and focused"},
	{[]string{"future", "technology", "ai", "innovation"}, ", futuristic and tech-inspired"},
}

const defaultMood = ", engaging and contemporary"

// BuildPrompt derives an image prompt from the highlight text: a fixed
// abstract-background style, themed by keywords lifted from the text, with
// a mood picked from the opening of the excerpt.
func BuildPrompt(highlightText string) string {
	keywords := extractKeywords(highlightText)
	theme := ""
	if len(keywords) > 0 {
		theme = ", inspired by themes of " + strings.Join(keywords, ", ")
	}

	prompt := basePromptStyle + theme + moodFor(highlightText) + ". " + promptSuffix
	if len(prompt) > maxPromptLength {
		prompt = prompt[:maxPromptLength-3] + "..."
	}
	return prompt
}

// moodFor inspects the opening of the excerpt, matching the mood buckets
// in declaration order.
func moodFor(text string) string {
	snippet := strings.ToLower(text)
	if len(snippet) > 100 {
		snippet = snippet[:100]
	}
	for _, bucket := range moodBuckets {
		for _, trigger := range bucket.triggers {
			if strings.Contains(snippet, trigger) {
				return bucket.mood
			}
		}
	}
	return defaultMood
}

// extractKeywords picks a handful of distinctive words from the text:
// lowercased words of at least five letters, deduplicated, in order of
// first appearance.
func extractKeywords(text string) []string {
	seen := make(map[string]struct{})
	var keywords []string
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,!?;:\"'()[]")
		if len(word) < 5 || !isAlpha(word) {
			continue
		}
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		keywords = append(keywords, word)
		if len(keywords) == maxKeywords {
			break
		}
	}
	return keywords
}

func isAlpha(word string) bool {
	for _, r := range word {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
