package highlights

import (
	"math"
	"strings"

	"shortcast/internal/media"
)

const (
	keywordWeight     = 2.0
	questionWeight    = 1.5
	exclamationWeight = 1.0
	lengthBonus       = 1.0
	confidenceWeight  = 0.5
	openingPenalty    = 0.8

	minBonusWords = 20
	maxBonusWords = 100

	// openingSegments is how many leading segments receive the position
	// penalty; recordings rarely open with their best material.
	openingSegments = 3
)

// Score computes the deterministic shareability score for a segment at the
// given transcript position.
func Score(segment media.Segment, index int) float64 {
	score := 0.0
	text := strings.ToLower(segment.Text)

	score += float64(len(matchKeywords(text))) * keywordWeight
	score += float64(strings.Count(text, "?")) * questionWeight
	score += float64(strings.Count(text, "!")) * exclamationWeight

	if words := len(strings.Fields(text)); words >= minBonusWords && words <= maxBonusWords {
		score += lengthBonus
	}

	score += math.Abs(segment.Confidence) * confidenceWeight

	if index < openingSegments {
		score *= openingPenalty
	}

	return score
}
