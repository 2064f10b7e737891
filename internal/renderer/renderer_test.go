package renderer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"shortcast/internal/artifacts"
	"shortcast/internal/config"
	"shortcast/internal/logging"
	"shortcast/internal/media"
	"shortcast/internal/queue"
	"shortcast/internal/render"
	"shortcast/internal/services"
	"shortcast/internal/testsupport"
)

type stubExtractor struct{}

func (stubExtractor) ExtractSegment(_ context.Context, _ string, _, _ float64, outPath string) error {
	return os.WriteFile(outPath, []byte("wav"), 0o644)
}

// recordingExtractor captures the windows it is asked to cut.
type recordingExtractor struct {
	starts    []float64
	durations []float64
}

func (r *recordingExtractor) ExtractSegment(_ context.Context, _ string, start, duration float64, outPath string) error {
	r.starts = append(r.starts, start)
	r.durations = append(r.durations, duration)
	return os.WriteFile(outPath, []byte("wav"), 0o644)
}

// stubProber reports a fixed source audio duration.
type stubProber struct {
	duration float64
}

func (s stubProber) Duration(context.Context, string) (float64, error) {
	return s.duration, nil
}

// stubEncoder fails encoding for any clip whose output name appears in
// failFor, and writes a placeholder file otherwise.
type stubEncoder struct {
	failFor   map[string]bool
	calls     int
	durations []float64
}

func (s *stubEncoder) Encode(_ context.Context, tl *render.Timeline, _, outPath string) error {
	s.calls++
	s.durations = append(s.durations, tl.Duration)
	if s.failFor[filepath.Base(outPath)] {
		return errors.New("encode failed")
	}
	return os.WriteFile(outPath, []byte("video"), 0o644)
}

type stubTitler struct {
	title string
}

func (s stubTitler) TitleFor(context.Context, string) string {
	return s.title
}

func seedHighlights(t *testing.T, dir string, spans ...[2]float64) {
	t.Helper()
	record := artifacts.HighlightsRecord{}
	for _, span := range spans {
		record.Highlights = append(record.Highlights, media.Highlight{
			StartTime: span[0],
			EndTime:   span[1],
			Text:      "An unmissable moment from the episode.",
			Reason:    "lexical",
		})
	}
	if _, err := artifacts.WriteHighlights(dir, record); err != nil {
		t.Fatalf("WriteHighlights: %v", err)
	}
}

func newTestJob(t *testing.T, cfg *config.Config, store *queue.Store) *queue.Item {
	t.Helper()
	ctx := context.Background()
	audioPath := filepath.Join(t.TempDir(), "episode.mp3")
	testsupport.WriteFile(t, audioPath, 128)
	item, err := store.NewJob(ctx, audioPath, "Episode")
	if err != nil {
		t.Fatalf("NewJob: %v", err)
	}
	return item
}

func TestPrepareRequiresHighlights(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	handler := NewRendererWithDependencies(cfg, store, logging.NewNop(),
		stubExtractor{}, &stubEncoder{}, nil, stubProber{duration: 600}, nil, nil)
	ctx := context.Background()

	item := newTestJob(t, cfg, store)
	if err := handler.Prepare(ctx, item); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error without highlights, got %v", err)
	}

	seedHighlights(t, cfg.JobOutputDir(item.JobID), [2]float64{0, 20})
	if err := handler.Prepare(ctx, item); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if item.ProgressStage != "Rendering" {
		t.Fatalf("unexpected progress stage: %s", item.ProgressStage)
	}
}

func TestExecuteRendersAllHighlights(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	notifier := &testsupport.RecordingNotifier{}
	encoder := &stubEncoder{}
	handler := NewRendererWithDependencies(cfg, store, logging.NewNop(),
		stubExtractor{}, encoder, stubTitler{title: "Big Reveal"}, stubProber{duration: 600}, nil, notifier)
	ctx := context.Background()

	item := newTestJob(t, cfg, store)
	outputDir := cfg.JobOutputDir(item.JobID)
	seedHighlights(t, outputDir, [2]float64{0, 20}, [2]float64{40, 65})

	if err := handler.Execute(ctx, item); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	files := item.VideoFiles()
	if len(files) != 2 {
		t.Fatalf("expected 2 video files, got %v", files)
	}
	for n, name := range []string{"highlight_1.mp4", "highlight_2.mp4"} {
		if files[n] != name {
			t.Fatalf("expected file %s at index %d, got %s", name, n, files[n])
		}
		if _, err := os.Stat(filepath.Join(outputDir, name)); err != nil {
			t.Fatalf("rendered clip missing: %v", err)
		}
	}
	if encoder.calls != 2 {
		t.Fatalf("expected 2 encode calls, got %d", encoder.calls)
	}
	if item.ProgressPercent != 100 {
		t.Fatalf("expected progress 100, got %f", item.ProgressPercent)
	}
	if notifier.Videos != 2 || notifier.Completions != 1 {
		t.Fatalf("expected 2 video + 1 completion notifications, got %d/%d",
			notifier.Videos, notifier.Completions)
	}
}

func TestExecuteSkipsFailedClips(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	notifier := &testsupport.RecordingNotifier{}
	encoder := &stubEncoder{failFor: map[string]bool{"highlight_1.mp4": true}}
	handler := NewRendererWithDependencies(cfg, store, logging.NewNop(),
		stubExtractor{}, encoder, nil, stubProber{duration: 600}, nil, notifier)
	ctx := context.Background()

	item := newTestJob(t, cfg, store)
	seedHighlights(t, cfg.JobOutputDir(item.JobID), [2]float64{0, 20}, [2]float64{40, 65})

	if err := handler.Execute(ctx, item); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	files := item.VideoFiles()
	if len(files) != 1 || files[0] != "highlight_2.mp4" {
		t.Fatalf("expected only highlight_2.mp4, got %v", files)
	}
	if notifier.Videos != 1 || notifier.Completions != 1 {
		t.Fatalf("expected 1 video + 1 completion notifications, got %d/%d",
			notifier.Videos, notifier.Completions)
	}
}

func TestExecuteFailsWhenAllClipsFail(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	encoder := &stubEncoder{failFor: map[string]bool{
		"highlight_1.mp4": true,
		"highlight_2.mp4": true,
	}}
	handler := NewRendererWithDependencies(cfg, store, logging.NewNop(),
		stubExtractor{}, encoder, nil, stubProber{duration: 600}, nil, nil)
	ctx := context.Background()

	item := newTestJob(t, cfg, store)
	seedHighlights(t, cfg.JobOutputDir(item.JobID), [2]float64{0, 20}, [2]float64{40, 65})

	if err := handler.Execute(ctx, item); !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient error when every render fails, got %v", err)
	}
	if len(item.VideoFiles()) != 0 {
		t.Fatalf("expected no video files, got %v", item.VideoFiles())
	}
}

func TestExecuteRejectsShortSourceAudio(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	handler := NewRendererWithDependencies(cfg, store, logging.NewNop(),
		stubExtractor{}, &stubEncoder{}, nil, stubProber{duration: 0.5}, nil, nil)
	ctx := context.Background()

	item := newTestJob(t, cfg, store)
	seedHighlights(t, cfg.JobOutputDir(item.JobID), [2]float64{0, 20})

	if err := handler.Execute(ctx, item); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for sub-second source, got %v", err)
	}
}

func TestExecuteRejectsWindowBeyondAudio(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	extractor := &recordingExtractor{}
	encoder := &stubEncoder{}
	handler := NewRendererWithDependencies(cfg, store, logging.NewNop(),
		extractor, encoder, nil, stubProber{duration: 5}, nil, nil)
	ctx := context.Background()

	item := newTestJob(t, cfg, store)
	seedHighlights(t, cfg.JobOutputDir(item.JobID), [2]float64{4.5, 19.5})

	if err := handler.Execute(ctx, item); !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected render failure for window past end of audio, got %v", err)
	}
	if len(extractor.starts) != 0 {
		t.Fatalf("expected no extraction for rejected window, got %v", extractor.starts)
	}
	if encoder.calls != 0 {
		t.Fatalf("expected no encode calls, got %d", encoder.calls)
	}
}

func TestExecuteClampsWindowToAudioBounds(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	extractor := &recordingExtractor{}
	encoder := &stubEncoder{}
	handler := NewRendererWithDependencies(cfg, store, logging.NewNop(),
		extractor, encoder, nil, stubProber{duration: 25}, nil, nil)
	ctx := context.Background()

	item := newTestJob(t, cfg, store)
	seedHighlights(t, cfg.JobOutputDir(item.JobID), [2]float64{10, 40})

	if err := handler.Execute(ctx, item); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(extractor.starts) != 1 || extractor.starts[0] != 10 {
		t.Fatalf("expected extraction at 10s, got %v", extractor.starts)
	}
	if extractor.durations[0] != 15 {
		t.Fatalf("expected 15s cut after clamping to audio end, got %v", extractor.durations)
	}
	if len(encoder.durations) != 1 || encoder.durations[0] != 15 {
		t.Fatalf("expected 15s timeline, got %v", encoder.durations)
	}
}
