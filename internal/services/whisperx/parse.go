package whisperx

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"shortcast/internal/media"
)

// whisperXWord is a single aligned word from WhisperX output.
type whisperXWord struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Score float64 `json:"score"`
}

// whisperXSegment is a transcribed segment from WhisperX JSON output.
// AvgLogProb is present in unaligned output; aligned output carries
// per-word scores instead.
type whisperXSegment struct {
	Text       string         `json:"text"`
	Start      float64        `json:"start"`
	End        float64        `json:"end"`
	AvgLogProb float64        `json:"avg_logprob"`
	Words      []whisperXWord `json:"words"`
}

type whisperXPayload struct {
	Segments []whisperXSegment `json:"segments"`
	Language string            `json:"language"`
}

// LoadTranscript parses a WhisperX JSON file into a media.Transcript.
func LoadTranscript(jsonPath string) (*media.Transcript, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("whisperx: read output: %w", err)
	}
	var payload whisperXPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("whisperx: parse output json: %w", err)
	}

	transcript := &media.Transcript{
		Language: payload.Language,
		Segments: make([]media.Segment, 0, len(payload.Segments)),
	}
	var parts []string
	for _, seg := range payload.Segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		parts = append(parts, text)
		transcript.Segments = append(transcript.Segments, media.Segment{
			Start:      seg.Start,
			End:        seg.End,
			Text:       text,
			Confidence: segmentConfidence(seg),
		})
	}
	transcript.Text = strings.Join(parts, " ")
	return transcript, nil
}

// segmentConfidence prefers the segment's avg_logprob and falls back to
// the mean aligned word score.
func segmentConfidence(seg whisperXSegment) float64 {
	if seg.AvgLogProb != 0 {
		return seg.AvgLogProb
	}
	if len(seg.Words) == 0 {
		return 0
	}
	var total float64
	for _, word := range seg.Words {
		total += word.Score
	}
	return total / float64(len(seg.Words))
}

// Transcribe runs WhisperX on a prepared WAV file and parses the result.
func (s *Service) Transcribe(ctx context.Context, source, outputDir string) (*media.Transcript, error) {
	jsonPath, err := s.TranscribeFile(ctx, source, outputDir)
	if err != nil {
		return nil, err
	}
	transcript, err := LoadTranscript(jsonPath)
	if err != nil {
		return nil, err
	}
	if transcript.Language == "" {
		transcript.Language = s.cfg.Language
	}
	return transcript, nil
}
