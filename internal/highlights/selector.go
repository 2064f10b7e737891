package highlights

import (
	"log/slog"
	"sort"

	"shortcast/internal/config"
	"shortcast/internal/logging"
	"shortcast/internal/media"
)

// candidateFactor is the over-fetch multiplier applied to the requested
// highlight count so duration rejection does not starve selection.
const candidateFactor = 3

type scoredSegment struct {
	media.Segment
	index int
	score float64
}

// Engine selects highlight windows from a transcript.
type Engine struct {
	minDuration  float64
	maxDuration  float64
	allowOverlap bool
	logger       *slog.Logger
}

// NewEngine builds an Engine from the highlights configuration.
func NewEngine(cfg config.Highlights, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Engine{
		minDuration:  cfg.MinDuration,
		maxDuration:  cfg.MaxDuration,
		allowOverlap: cfg.AllowOverlap,
		logger:       logger,
	}
}

// Select scores every segment, expands the strongest candidates, and
// returns up to count highlights in descending score order. Candidates
// whose expansion falls outside the duration bounds are dropped; when
// overlap rejection is enabled, candidates overlapping an already accepted
// highlight are dropped as well.
func (e *Engine) Select(segments []media.Segment, count int) []media.Highlight {
	if len(segments) == 0 || count <= 0 {
		return nil
	}

	scored := make([]scoredSegment, len(segments))
	for i, segment := range segments {
		scored[i] = scoredSegment{
			Segment: segment,
			index:   i,
			score:   Score(segment, i),
		}
	}
	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].score > scored[b].score
	})

	candidates := scored
	if limit := count * candidateFactor; len(candidates) > limit {
		candidates = candidates[:limit]
	}

	var selected []media.Highlight
	for _, candidate := range candidates {
		highlight := e.expand(candidate, segments)

		duration := highlight.Duration()
		if duration < e.minDuration || duration > e.maxDuration {
			e.logger.Debug("candidate rejected on duration",
				logging.Int("segment_index", candidate.index),
				logging.Float64("duration", duration))
			continue
		}
		if !e.allowOverlap && overlapsAny(highlight, selected) {
			e.logger.Debug("candidate rejected on overlap",
				logging.Int("segment_index", candidate.index))
			continue
		}

		selected = append(selected, highlight)
		if len(selected) >= count {
			break
		}
	}

	e.logger.Info("highlight selection complete",
		logging.Int("segments", len(segments)),
		logging.Int("selected", len(selected)))
	return selected
}

func overlapsAny(highlight media.Highlight, accepted []media.Highlight) bool {
	for _, other := range accepted {
		if highlight.Overlaps(other) {
			return true
		}
	}
	return false
}
