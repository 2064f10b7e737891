package renderer

import (
	"context"
	"fmt"
	"image"
	"math"
	"os"
	"os/exec"
	"path/filepath"

	"log/slog"

	"shortcast/internal/artifacts"
	"shortcast/internal/config"
	"shortcast/internal/logging"
	"shortcast/internal/media"
	"shortcast/internal/media/audio"
	"shortcast/internal/media/ffprobe"
	"shortcast/internal/notifications"
	"shortcast/internal/queue"
	"shortcast/internal/render"
	"shortcast/internal/services"
	"shortcast/internal/services/diffusion"
	"shortcast/internal/services/hook"
	"shortcast/internal/stage"
)

// Titler produces a short display title for a highlight, falling back
// internally when generation is unavailable.
type Titler interface {
	TitleFor(ctx context.Context, highlightText string) string
}

// Encoder renders a timeline with an audio track into a video file.
type Encoder interface {
	Encode(ctx context.Context, tl *render.Timeline, audioPath, outPath string) error
}

// SegmentExtractor cuts a time window out of the source audio.
type SegmentExtractor interface {
	ExtractSegment(ctx context.Context, sourcePath string, start, duration float64, outPath string) error
}

// Prober reports the playable duration of a media file in seconds.
type Prober interface {
	Duration(ctx context.Context, path string) (float64, error)
}

// ffprobeProber probes media durations with the configured ffprobe binary.
type ffprobeProber struct {
	binary string
}

func (p ffprobeProber) Duration(ctx context.Context, path string) (float64, error) {
	result, err := ffprobe.Inspect(ctx, p.binary, path)
	if err != nil {
		return 0, err
	}
	return result.DurationSeconds(), nil
}

// Renderer produces one vertical clip per selected highlight.
type Renderer struct {
	store     *queue.Store
	cfg       *config.Config
	logger    *slog.Logger
	extractor SegmentExtractor
	encoder   Encoder
	titler    Titler
	prober    Prober
	images    *diffusion.Chain
	notifier  notifications.Service
}

// NewRenderer constructs the renderer stage handler using default dependencies.
func NewRenderer(cfg *config.Config, store *queue.Store, logger *slog.Logger) (*Renderer, error) {
	var titler Titler
	if cfg.Hooks.Enabled {
		titler = hook.NewService(hook.NewClient(cfg.Hooks), true, logger)
	}

	var chain *diffusion.Chain
	if cfg.Backgrounds.Enabled {
		local, err := diffusion.NewLocalClient(cfg.Backgrounds)
		if err != nil {
			return nil, err
		}
		remote, err := diffusion.NewRemoteClient(cfg.Backgrounds)
		if err != nil {
			return nil, err
		}
		var sources []diffusion.ImageSource
		if local != nil {
			sources = append(sources, local)
		}
		if remote != nil {
			sources = append(sources, remote)
		}
		chain = diffusion.NewChain(logger, sources...)
	}

	encoder := render.NewEncoder(cfg.FFmpegBinary(), cfg.Video.Bitrate, logger)
	extractor := audio.NewExtractor(cfg.FFmpegBinary())
	prober := ffprobeProber{binary: cfg.FFprobeBinary()}
	return NewRendererWithDependencies(cfg, store, logger, extractor, encoder, titler, prober, chain, notifications.NewService(cfg)), nil
}

// NewRendererWithDependencies allows injecting collaborators (used in tests).
func NewRendererWithDependencies(cfg *config.Config, store *queue.Store, logger *slog.Logger, extractor SegmentExtractor, encoder Encoder, titler Titler, prober Prober, images *diffusion.Chain, notifier notifications.Service) *Renderer {
	stageLogger := logger
	if stageLogger != nil {
		stageLogger = stageLogger.With(logging.String(logging.FieldComponent, "renderer"))
	}
	return &Renderer{
		store:     store,
		cfg:       cfg,
		logger:    stageLogger,
		extractor: extractor,
		encoder:   encoder,
		titler:    titler,
		prober:    prober,
		images:    images,
		notifier:  notifier,
	}
}

// Prepare verifies the highlights artifact and source audio before rendering.
func (r *Renderer) Prepare(ctx context.Context, item *queue.Item) error {
	outputDir := r.cfg.JobOutputDir(item.JobID)
	record, err := artifacts.ReadHighlights(outputDir)
	if err != nil {
		return services.Wrap(services.ErrValidation, "renderer", "prepare",
			"highlights artifact unavailable", err)
	}
	if len(record.Highlights) == 0 {
		return services.Wrap(services.ErrValidation, "renderer", "prepare",
			"highlights artifact is empty", nil)
	}
	if _, err := os.Stat(item.SourcePath); err != nil {
		return services.Wrap(services.ErrValidation, "renderer", "prepare",
			fmt.Sprintf("source audio %q unavailable", item.SourcePath), err)
	}
	item.InitProgress("Rendering", fmt.Sprintf("Rendering %d highlight clips", len(record.Highlights)))
	return nil
}

// Execute renders every highlight, skipping individual failures.
func (r *Renderer) Execute(ctx context.Context, item *queue.Item) error {
	logger := logging.WithContext(ctx, r.logger)

	outputDir := r.cfg.JobOutputDir(item.JobID)
	record, err := artifacts.ReadHighlights(outputDir)
	if err != nil {
		return services.Wrap(services.ErrValidation, "renderer", "read highlights", "", err)
	}

	audioDuration, err := r.prober.Duration(ctx, item.SourcePath)
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "renderer", "probe source audio", "", err)
	}
	if audioDuration < render.MinClipSeconds {
		return services.Wrap(services.ErrValidation, "renderer", "probe source audio",
			fmt.Sprintf("source audio is %.2fs, below the %.1fs minimum", audioDuration, render.MinClipSeconds), nil)
	}

	workDir, err := os.MkdirTemp("", "shortcast-render-*")
	if err != nil {
		return services.Wrap(services.ErrTransient, "renderer", "create work dir", "", err)
	}
	defer os.RemoveAll(workDir)

	total := len(record.Highlights)
	var rendered []string
	for idx, highlight := range record.Highlights {
		if err := ctx.Err(); err != nil {
			return err
		}
		n := idx + 1
		clipLogger := logger.With(logging.Int(logging.FieldHighlight, n))

		item.SetProgress("Rendering", fmt.Sprintf("Rendering clip %d of %d", n, total),
			float64(n-1)/float64(total)*100)
		r.persistProgress(ctx, item, clipLogger)

		fileName, err := r.renderClip(ctx, item, highlight, audioDuration, n, outputDir, workDir, clipLogger)
		if err != nil {
			clipLogger.Error("highlight render failed, skipping clip", logging.Error(err))
			continue
		}
		rendered = append(rendered, fileName)
		if r.notifier != nil {
			if err := r.notifier.NotifyVideoRendered(ctx, item.Title, fileName); err != nil {
				clipLogger.Warn("video notification failed", logging.Error(err))
			}
		}
	}

	if len(rendered) == 0 {
		return services.Wrap(services.ErrTransient, "renderer", "render clips",
			fmt.Sprintf("all %d highlight renders failed", total), nil)
	}

	if err := item.SetVideoFiles(rendered); err != nil {
		return services.Wrap(services.ErrTransient, "renderer", "record videos", "", err)
	}
	item.SetProgressComplete("Rendering", fmt.Sprintf("Rendered %d of %d clips", len(rendered), total))

	logger.Info("render complete",
		logging.Int("rendered", len(rendered)),
		logging.Int("requested", total))
	if r.notifier != nil {
		if err := r.notifier.NotifyJobCompleted(ctx, item.Title, len(rendered)); err != nil {
			logger.Warn("completion notification failed", logging.Error(err))
		}
	}
	return nil
}

// renderClip produces a single highlight video and returns its file name.
// The highlight window is clamped to the real audio bounds before anything
// is built; a clamped window shorter than the minimum is an input error.
func (r *Renderer) renderClip(ctx context.Context, item *queue.Item, highlight media.Highlight, audioDuration float64, n int, outputDir, workDir string, logger *slog.Logger) (string, error) {
	start := math.Max(0, highlight.StartTime)
	end := math.Min(highlight.EndTime, audioDuration)
	duration := end - start
	if duration < render.MinClipSeconds {
		return "", services.Wrap(services.ErrValidation, "renderer", "clamp window",
			fmt.Sprintf("window [%.2f, %.2f] leaves %.2fs of audio, below the %.1fs minimum",
				highlight.StartTime, highlight.EndTime, duration, render.MinClipSeconds), nil)
	}

	title := hook.DefaultTitle
	if r.titler != nil {
		title = r.titler.TitleFor(ctx, highlight.Text)
	}

	background := r.generateBackgrounds(ctx, highlight, n, outputDir, logger)

	segmentPath := filepath.Join(workDir, fmt.Sprintf("segment_%d.wav", n))
	if err := r.extractor.ExtractSegment(ctx, item.SourcePath, start, duration, segmentPath); err != nil {
		return "", fmt.Errorf("extract audio segment: %w", err)
	}
	defer os.Remove(segmentPath)

	tl, err := render.NewHighlightTimeline(r.cfg.Video, render.HighlightOptions{
		Duration:   duration,
		Title:      title,
		Text:       highlight.Text,
		Background: background,
		ImageIndex: n - 1,
	}, logger)
	if err != nil {
		return "", fmt.Errorf("build timeline: %w", err)
	}

	fileName := artifacts.VideoFileName(n)
	outPath := filepath.Join(outputDir, fileName)
	if err := r.encoder.Encode(ctx, tl, segmentPath, outPath); err != nil {
		_ = os.Remove(outPath)
		return "", fmt.Errorf("encode clip: %w", err)
	}
	logger.Info("clip rendered",
		logging.String("file", fileName),
		logging.Float64("duration_seconds", duration))
	return fileName, nil
}

// generateBackgrounds produces the configured number of background
// variants for a highlight, persists them, and returns the first one for
// the clip background. Any failure falls back to the animated gradient.
func (r *Renderer) generateBackgrounds(ctx context.Context, highlight media.Highlight, n int, outputDir string, logger *slog.Logger) image.Image {
	if r.images == nil || r.images.Empty() {
		return nil
	}

	prompt := diffusion.BuildPrompt(highlight.Text)
	variants := r.cfg.Backgrounds.Variants
	if variants <= 0 {
		variants = 1
	}

	var first image.Image
	for m := 1; m <= variants; m++ {
		seed := int64(n)*1000 + int64(m)
		img, err := r.images.Generate(ctx, prompt, seed)
		if err != nil {
			logger.Warn("background generation failed, using gradient",
				logging.Int("variant", m),
				logging.Error(err))
			continue
		}
		path := filepath.Join(outputDir, artifacts.BackgroundFileName(n, m))
		if err := writePNG(path, img); err != nil {
			logger.Warn("failed to persist background image", logging.Error(err))
		}
		if first == nil {
			first = img
		}
	}
	return first
}

// HealthCheck verifies ffmpeg is available for encoding.
func (r *Renderer) HealthCheck(ctx context.Context) stage.Health {
	const name = "renderer"
	if _, err := exec.LookPath(r.cfg.FFmpegBinary()); err != nil {
		return stage.Unhealthy(name, "ffmpeg not found in PATH")
	}
	return stage.Healthy(name)
}

func (r *Renderer) persistProgress(ctx context.Context, item *queue.Item, logger *slog.Logger) {
	if r.store == nil {
		return
	}
	if err := r.store.Update(ctx, item); err != nil {
		logger.Warn("failed to persist progress", logging.Error(err))
	}
}
