// Package media defines the transcript and highlight types shared by the
// analysis and rendering stages, plus helpers for loading and persisting
// their JSON artifact files.
package media

import (
	"strings"
)

// Segment is a single transcript span with word-level timing collapsed to
// segment boundaries.
type Segment struct {
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// Duration returns the segment length in seconds.
func (s Segment) Duration() float64 {
	return s.End - s.Start
}

// WordCount returns the number of whitespace-delimited words in the segment.
func (s Segment) WordCount() int {
	return len(strings.Fields(s.Text))
}

// Transcript is the full transcription of an uploaded audio file.
type Transcript struct {
	Text     string    `json:"text"`
	Language string    `json:"language"`
	Segments []Segment `json:"segments"`
}

// Duration returns the end timestamp of the final segment, or 0 for an
// empty transcript.
func (t Transcript) Duration() float64 {
	if len(t.Segments) == 0 {
		return 0
	}
	return t.Segments[len(t.Segments)-1].End
}

// Highlight is a selected span of the source audio worth clipping.
type Highlight struct {
	StartTime  float64 `json:"start_time"`
	EndTime    float64 `json:"end_time"`
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
}

// Duration returns the highlight length in seconds.
func (h Highlight) Duration() float64 {
	return h.EndTime - h.StartTime
}

// Overlaps reports whether two highlights share any span of time.
func (h Highlight) Overlaps(other Highlight) bool {
	return h.StartTime < other.EndTime && other.StartTime < h.EndTime
}
