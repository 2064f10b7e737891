package analyzer

import (
	"context"
	"errors"
	"testing"

	"shortcast/internal/artifacts"
	"shortcast/internal/logging"
	"shortcast/internal/media"
	"shortcast/internal/services"
	"shortcast/internal/testsupport"
)

func seedTranscript(t *testing.T, dir string) {
	t.Helper()
	transcript := &media.Transcript{
		Text:     "Welcome back. Here is the big announcement. Thanks for listening.",
		Language: "en",
		Segments: []media.Segment{
			{Start: 0, End: 12, Text: "Welcome back to the show.", Confidence: 0.9},
			{Start: 12, End: 26, Text: "Here is the big announcement everyone has been waiting for!", Confidence: 0.95},
			{Start: 26, End: 40, Text: "Thanks for listening, see you next week.", Confidence: 0.85},
		},
	}
	if _, err := artifacts.WriteTranscript(dir, transcript); err != nil {
		t.Fatalf("WriteTranscript: %v", err)
	}
}

func TestPrepareRequiresTranscript(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	handler := NewAnalyzerWithDependencies(cfg, store, logging.NewNop(), nil)
	ctx := context.Background()

	item, err := store.NewJob(ctx, "/tmp/input.mp3", "Input")
	if err != nil {
		t.Fatalf("NewJob: %v", err)
	}
	if err := handler.Prepare(ctx, item); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error without transcript, got %v", err)
	}

	seedTranscript(t, cfg.JobOutputDir(item.JobID))
	if err := handler.Prepare(ctx, item); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if item.ProgressStage != "Analyzing" {
		t.Fatalf("unexpected progress stage: %s", item.ProgressStage)
	}
}

func TestExecuteWritesHighlights(t *testing.T) {
	cfg := testsupport.NewConfig(t,
		testsupport.WithHighlightBounds(2, 5, 60),
		testsupport.WithHookKey("test-key"))
	cfg.Backgrounds.Enabled = true
	store := testsupport.MustOpenStore(t, cfg)
	notifier := &testsupport.RecordingNotifier{}
	handler := NewAnalyzerWithDependencies(cfg, store, logging.NewNop(), notifier)
	ctx := context.Background()

	item, err := store.NewJob(ctx, "/tmp/input.mp3", "Input")
	if err != nil {
		t.Fatalf("NewJob: %v", err)
	}
	outputDir := cfg.JobOutputDir(item.JobID)
	seedTranscript(t, outputDir)

	if err := handler.Execute(ctx, item); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	record, err := artifacts.ReadHighlights(outputDir)
	if err != nil {
		t.Fatalf("ReadHighlights: %v", err)
	}
	if len(record.Highlights) == 0 {
		t.Fatal("expected at least one highlight")
	}
	if !record.HooksEnabled || !record.ImagesEnabled {
		t.Fatalf("expected feature flags recorded, got hooks=%v images=%v",
			record.HooksEnabled, record.ImagesEnabled)
	}
	for _, h := range record.Highlights {
		if d := h.Duration(); d < 5 || d > 60 {
			t.Fatalf("highlight duration %f outside bounds", d)
		}
	}
	if item.HighlightsPath == "" {
		t.Fatal("expected highlights path on item")
	}
	if item.ProgressPercent != 100 {
		t.Fatalf("expected progress 100, got %f", item.ProgressPercent)
	}
	if notifier.Highlights != 1 {
		t.Fatalf("expected 1 highlights notification, got %d", notifier.Highlights)
	}
}

func TestExecuteFailsWhenBoundsUnmeetable(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithHighlightBounds(3, 500, 600))
	store := testsupport.MustOpenStore(t, cfg)
	handler := NewAnalyzerWithDependencies(cfg, store, logging.NewNop(), nil)
	ctx := context.Background()

	item, err := store.NewJob(ctx, "/tmp/input.mp3", "Input")
	if err != nil {
		t.Fatalf("NewJob: %v", err)
	}
	seedTranscript(t, cfg.JobOutputDir(item.JobID))

	if err := handler.Execute(ctx, item); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for unmeetable bounds, got %v", err)
	}
}
