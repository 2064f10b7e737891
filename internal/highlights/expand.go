package highlights

import (
	"strings"

	"shortcast/internal/media"
)

// expand grows a candidate segment into a duration-bounded window by
// pulling in neighboring segments.
//
// Backward growth stops as soon as including the next-earlier segment would
// satisfy the minimum span; forward growth includes the neighbor first and
// checks the minimum afterwards, so the window can overshoot to exactly
// satisfy it. Neither direction is allowed to push the span past the
// maximum. The result is not guaranteed to meet the minimum; the selector
// filters on duration.
func (e *Engine) expand(candidate scoredSegment, segments []media.Segment) media.Highlight {
	start := candidate.Start
	end := candidate.End
	text := candidate.Text

	for idx := candidate.index - 1; idx >= 0; idx-- {
		span := end - segments[idx].Start
		if span >= e.maxDuration {
			break
		}
		if span >= e.minDuration {
			break
		}
		start = segments[idx].Start
		text = segments[idx].Text + " " + text
	}

	for idx := candidate.index + 1; idx < len(segments); idx++ {
		if segments[idx].End-start >= e.maxDuration {
			break
		}
		end = segments[idx].End
		text = text + " " + segments[idx].Text
		if end-start >= e.minDuration {
			break
		}
	}

	return media.Highlight{
		StartTime:  start,
		EndTime:    end,
		Text:       strings.TrimSpace(text),
		Confidence: candidate.score / 10.0,
		Reason:     buildReason(text, candidate.score),
	}
}
