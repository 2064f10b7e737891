// Package audio shells out to ffmpeg for audio extraction and conversion.
package audio

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Extractor wraps the ffmpeg binary for audio operations.
type Extractor struct {
	ffmpeg string
}

// NewExtractor returns an Extractor using the provided ffmpeg binary, or
// "ffmpeg" from PATH when empty.
func NewExtractor(ffmpegPath string) *Extractor {
	if strings.TrimSpace(ffmpegPath) == "" {
		ffmpegPath = "ffmpeg"
	}
	return &Extractor{ffmpeg: ffmpegPath}
}

// ExtractSegment writes the [start, start+duration) span of the source audio
// to outPath as mono 44.1kHz WAV, which both the clip encoder and the
// waveform renderer consume.
func (e *Extractor) ExtractSegment(ctx context.Context, sourcePath string, start, duration float64, outPath string) error {
	if duration <= 0 {
		return fmt.Errorf("extract segment: non-positive duration %g", duration)
	}
	cmd := exec.CommandContext(ctx, e.ffmpeg,
		"-y",
		"-ss", formatSeconds(start),
		"-t", formatSeconds(duration),
		"-i", sourcePath,
		"-vn",
		"-ac", "1",
		"-ar", "44100",
		"-f", "wav",
		outPath,
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg extract segment: %w\n%s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

// ConvertForTranscription writes the full source audio to outPath as mono
// 16kHz WAV, the input format the transcriber expects.
func (e *Extractor) ConvertForTranscription(ctx context.Context, sourcePath, outPath string) error {
	cmd := exec.CommandContext(ctx, e.ffmpeg,
		"-y",
		"-i", sourcePath,
		"-vn",
		"-ac", "1",
		"-ar", "16000",
		"-f", "wav",
		outPath,
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg convert audio: %w\n%s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

func formatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', 3, 64)
}
