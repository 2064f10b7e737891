package artifacts

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"shortcast/internal/media"
)

// Artifact file names inside a job's output directory.
const (
	TranscriptFile = "transcript.json"
	HighlightsFile = "highlights.json"
)

// VideoFileName formats the 1-based highlight video file name.
func VideoFileName(index int) string {
	return fmt.Sprintf("highlight_%d.mp4", index)
}

// BackgroundFileName formats a generated background image name for the
// 1-based highlight index and variant.
func BackgroundFileName(highlight, variant int) string {
	return fmt.Sprintf("background_%d_%d.png", highlight, variant)
}

// TranscriptRecord is the on-disk transcript.json payload.
type TranscriptRecord struct {
	Text      string          `json:"text"`
	Language  string          `json:"language"`
	Segments  []media.Segment `json:"segments"`
	CreatedAt time.Time       `json:"created_at"`
}

// HighlightsRecord is the on-disk highlights.json payload. The enhancement
// flags record which optional features were enabled when the analyzer ran,
// so the renderer and status reporting agree on what to expect.
type HighlightsRecord struct {
	Highlights    []media.Highlight `json:"highlights"`
	HooksEnabled  bool              `json:"hooks_enabled"`
	ImagesEnabled bool              `json:"images_enabled"`
	CreatedAt     time.Time         `json:"created_at"`
}

// WriteTranscript persists the transcript artifact for a job.
func WriteTranscript(jobDir string, transcript *media.Transcript) (string, error) {
	record := TranscriptRecord{
		Text:      transcript.Text,
		Language:  transcript.Language,
		Segments:  transcript.Segments,
		CreatedAt: time.Now().UTC(),
	}
	path := filepath.Join(jobDir, TranscriptFile)
	if err := writeJSON(path, record); err != nil {
		return "", err
	}
	return path, nil
}

// ReadTranscript loads the transcript artifact from a job directory.
func ReadTranscript(jobDir string) (*media.Transcript, error) {
	var record TranscriptRecord
	if err := readJSON(filepath.Join(jobDir, TranscriptFile), &record); err != nil {
		return nil, err
	}
	return &media.Transcript{
		Text:     record.Text,
		Language: record.Language,
		Segments: record.Segments,
	}, nil
}

// WriteHighlights persists the highlights artifact for a job.
func WriteHighlights(jobDir string, record HighlightsRecord) (string, error) {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	path := filepath.Join(jobDir, HighlightsFile)
	if err := writeJSON(path, record); err != nil {
		return "", err
	}
	return path, nil
}

// ReadHighlights loads the highlights artifact from a job directory.
func ReadHighlights(jobDir string) (HighlightsRecord, error) {
	var record HighlightsRecord
	err := readJSON(filepath.Join(jobDir, HighlightsFile), &record)
	return record, err
}

// VideoFiles lists rendered highlight videos in the job directory, in
// index order.
func VideoFiles(jobDir string) ([]string, error) {
	entries, err := os.ReadDir(jobDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("artifacts: list job dir: %w", err)
	}
	indexed := map[int]string{}
	var order []int
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		index, ok := parseVideoFileName(entry.Name())
		if !ok {
			continue
		}
		indexed[index] = entry.Name()
		order = append(order, index)
	}
	sort.Ints(order)
	var files []string
	for _, index := range order {
		files = append(files, indexed[index])
	}
	return files, nil
}

// parseVideoFileName reports the highlight index encoded in a rendered
// video file name, or false for anything else.
func parseVideoFileName(name string) (int, bool) {
	rest, ok := strings.CutPrefix(name, "highlight_")
	if !ok {
		return 0, false
	}
	digits, ok := strings.CutSuffix(rest, ".mp4")
	if !ok || digits == "" {
		return 0, false
	}
	index, err := strconv.Atoi(digits)
	if err != nil || index < 1 {
		return 0, false
	}
	return index, true
}

func writeJSON(path string, payload any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("artifacts: ensure dir: %w", err)
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("artifacts: encode %s: %w", filepath.Base(path), err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("artifacts: write %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("artifacts: replace %s: %w", filepath.Base(path), err)
	}
	return nil
}

func readJSON(path string, target any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("artifacts: read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("artifacts: parse %s: %w", filepath.Base(path), err)
	}
	return nil
}
