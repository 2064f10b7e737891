package artifacts

import (
	"os"
	"path/filepath"
	"testing"

	"shortcast/internal/media"
	"shortcast/internal/queue"
)

func sampleTranscript() *media.Transcript {
	return &media.Transcript{
		Text:     "Hello world. Second sentence.",
		Language: "en",
		Segments: []media.Segment{
			{Start: 0, End: 3, Text: "Hello world.", Confidence: -0.1},
			{Start: 3, End: 7, Text: "Second sentence.", Confidence: -0.3},
		},
	}
}

func TestTranscriptRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteTranscript(dir, sampleTranscript())
	if err != nil {
		t.Fatalf("WriteTranscript: %v", err)
	}
	if filepath.Base(path) != TranscriptFile {
		t.Fatalf("unexpected artifact path %s", path)
	}

	loaded, err := ReadTranscript(dir)
	if err != nil {
		t.Fatalf("ReadTranscript: %v", err)
	}
	if loaded.Text != "Hello world. Second sentence." {
		t.Fatalf("unexpected text %q", loaded.Text)
	}
	if len(loaded.Segments) != 2 || loaded.Segments[1].End != 7 {
		t.Fatalf("unexpected segments %+v", loaded.Segments)
	}
}

func TestHighlightsRoundTripKeepsFlags(t *testing.T) {
	dir := t.TempDir()
	record := HighlightsRecord{
		Highlights: []media.Highlight{
			{StartTime: 5, EndTime: 30, Text: "great part", Confidence: 0.7, Reason: "Engaging question"},
		},
		HooksEnabled:  true,
		ImagesEnabled: false,
	}
	if _, err := WriteHighlights(dir, record); err != nil {
		t.Fatalf("WriteHighlights: %v", err)
	}

	loaded, err := ReadHighlights(dir)
	if err != nil {
		t.Fatalf("ReadHighlights: %v", err)
	}
	if !loaded.HooksEnabled || loaded.ImagesEnabled {
		t.Fatalf("enhancement flags lost: %+v", loaded)
	}
	if loaded.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be stamped")
	}
	if len(loaded.Highlights) != 1 || loaded.Highlights[0].EndTime != 30 {
		t.Fatalf("unexpected highlights %+v", loaded.Highlights)
	}
}

func TestVideoFilesOrdered(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"highlight_2.mp4", "highlight_1.mp4", "transcript.json"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	files, err := VideoFiles(dir)
	if err != nil {
		t.Fatalf("VideoFiles: %v", err)
	}
	if len(files) != 2 || files[0] != "highlight_1.mp4" || files[1] != "highlight_2.mp4" {
		t.Fatalf("unexpected video files %v", files)
	}
}

func TestVideoFilesSparseOrdinals(t *testing.T) {
	uploadDir := t.TempDir()
	outputDir := t.TempDir()
	if _, err := WriteTranscript(outputDir, sampleTranscript()); err != nil {
		t.Fatal(err)
	}
	if _, err := WriteHighlights(outputDir, HighlightsRecord{}); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"highlight_5.mp4", "highlight_10.mp4", "highlight_x.mp4", "highlight_.mp4"} {
		if err := os.WriteFile(filepath.Join(outputDir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	files, err := VideoFiles(outputDir)
	if err != nil {
		t.Fatalf("VideoFiles: %v", err)
	}
	if len(files) != 2 || files[0] != "highlight_5.mp4" || files[1] != "highlight_10.mp4" {
		t.Fatalf("unexpected video files %v", files)
	}

	snap, ok := Reconstruct(uploadDir, outputDir)
	if !ok || snap.Status != queue.StatusCompleted {
		t.Fatalf("expected completed snapshot, got %+v ok=%v", snap, ok)
	}
}

func TestReconstructStatusLadder(t *testing.T) {
	uploadDir := t.TempDir()
	outputDir := t.TempDir()

	if _, ok := Reconstruct(uploadDir, outputDir); ok {
		t.Fatal("expected no snapshot for empty directories")
	}

	if err := os.WriteFile(filepath.Join(uploadDir, "audio.mp3"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	snap, ok := Reconstruct(uploadDir, outputDir)
	if !ok || snap.Status != queue.StatusPending {
		t.Fatalf("expected pending, got %+v ok=%v", snap, ok)
	}

	if _, err := WriteTranscript(outputDir, sampleTranscript()); err != nil {
		t.Fatal(err)
	}
	snap, _ = Reconstruct(uploadDir, outputDir)
	if snap.Status != queue.StatusTranscribed {
		t.Fatalf("expected transcribed, got %s", snap.Status)
	}

	if _, err := WriteHighlights(outputDir, HighlightsRecord{}); err != nil {
		t.Fatal(err)
	}
	snap, _ = Reconstruct(uploadDir, outputDir)
	if snap.Status != queue.StatusAnalyzed {
		t.Fatalf("expected analyzed, got %s", snap.Status)
	}

	if err := os.WriteFile(filepath.Join(outputDir, VideoFileName(1)), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	snap, _ = Reconstruct(uploadDir, outputDir)
	if snap.Status != queue.StatusCompleted || len(snap.VideoFiles) != 1 {
		t.Fatalf("expected completed with one video, got %+v", snap)
	}
}
