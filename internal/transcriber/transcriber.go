package transcriber

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"log/slog"

	"shortcast/internal/artifacts"
	"shortcast/internal/config"
	"shortcast/internal/logging"
	"shortcast/internal/media"
	"shortcast/internal/media/audio"
	"shortcast/internal/media/ffprobe"
	"shortcast/internal/notifications"
	"shortcast/internal/queue"
	"shortcast/internal/services"
	"shortcast/internal/services/whisperx"
	"shortcast/internal/stage"
)

var transcribeProbe = ffprobe.Inspect

// Speech produces a transcript for an audio file.
type Speech interface {
	Transcribe(ctx context.Context, source, outputDir string) (*media.Transcript, error)
}

// Converter resamples source audio into the mono 16 kHz WAV WhisperX expects.
type Converter interface {
	ConvertForTranscription(ctx context.Context, sourcePath, outPath string) error
}

// Transcriber converts uploaded audio into a persisted transcript.
type Transcriber struct {
	store     *queue.Store
	cfg       *config.Config
	logger    *slog.Logger
	converter Converter
	speech    Speech
	notifier  notifications.Service
}

// NewTranscriber constructs the transcriber stage handler using default dependencies.
func NewTranscriber(cfg *config.Config, store *queue.Store, logger *slog.Logger) *Transcriber {
	service := whisperx.NewService(cfg.Transcription, whisperx.UVXCommand)
	extractor := audio.NewExtractor(cfg.FFmpegBinary())
	return NewTranscriberWithDependencies(cfg, store, logger, extractor, service, notifications.NewService(cfg))
}

// NewTranscriberWithDependencies allows injecting collaborators (used in tests).
func NewTranscriberWithDependencies(cfg *config.Config, store *queue.Store, logger *slog.Logger, converter Converter, speech Speech, notifier notifications.Service) *Transcriber {
	stageLogger := logger
	if stageLogger != nil {
		stageLogger = stageLogger.With(logging.String(logging.FieldComponent, "transcriber"))
	}
	return &Transcriber{
		store:     store,
		cfg:       cfg,
		logger:    stageLogger,
		converter: converter,
		speech:    speech,
		notifier:  notifier,
	}
}

// Prepare validates the uploaded audio before transcription starts.
func (t *Transcriber) Prepare(ctx context.Context, item *queue.Item) error {
	logger := logging.WithContext(ctx, t.logger)

	source := strings.TrimSpace(item.SourcePath)
	if source == "" {
		return services.Wrap(services.ErrValidation, "transcriber", "prepare", "queue item missing source path", nil)
	}
	if _, err := os.Stat(source); err != nil {
		return services.Wrap(services.ErrValidation, "transcriber", "prepare",
			fmt.Sprintf("source audio %q unavailable", source), err)
	}

	probe, err := transcribeProbe(ctx, t.cfg.FFprobeBinary(), source)
	if err != nil {
		return services.Wrap(services.ErrValidation, "transcriber", "probe source",
			"source audio could not be inspected", err)
	}
	if probe.AudioStreamCount() == 0 {
		return services.Wrap(services.ErrValidation, "transcriber", "probe source",
			"source file has no audio stream", nil)
	}
	if probe.DurationSeconds() <= 0 {
		return services.Wrap(services.ErrValidation, "transcriber", "probe source",
			"source audio has no duration", nil)
	}

	item.InitProgress("Transcribing", "Preparing audio for transcription")
	logger.Info("audio validated",
		logging.String("source", source),
		logging.Float64("duration_seconds", probe.DurationSeconds()))
	return nil
}

// Execute runs speech-to-text and writes the transcript artifact.
func (t *Transcriber) Execute(ctx context.Context, item *queue.Item) error {
	logger := logging.WithContext(ctx, t.logger)

	outputDir := t.cfg.JobOutputDir(item.JobID)
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return services.Wrap(services.ErrTransient, "transcriber", "create output dir", "", err)
	}

	workDir, err := os.MkdirTemp("", "shortcast-transcribe-*")
	if err != nil {
		return services.Wrap(services.ErrTransient, "transcriber", "create work dir", "", err)
	}
	defer os.RemoveAll(workDir)

	item.SetProgress("Transcribing", "Converting audio", 10)
	t.persistProgress(ctx, item, logger)

	wavPath := filepath.Join(workDir, "speech.wav")
	if err := t.converter.ConvertForTranscription(ctx, item.SourcePath, wavPath); err != nil {
		return services.Wrap(services.ErrExternalTool, "transcriber", "convert audio",
			"audio conversion failed", err)
	}

	item.SetProgress("Transcribing", "Running speech recognition", 30)
	t.persistProgress(ctx, item, logger)

	transcript, err := t.speech.Transcribe(ctx, wavPath, workDir)
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "transcriber", "transcribe",
			"speech recognition failed", err)
	}
	if transcript == nil || len(transcript.Segments) == 0 {
		return services.Wrap(services.ErrValidation, "transcriber", "transcribe",
			"no speech detected in source audio", nil)
	}

	transcriptPath, err := artifacts.WriteTranscript(outputDir, transcript)
	if err != nil {
		return services.Wrap(services.ErrTransient, "transcriber", "write transcript", "", err)
	}
	item.TranscriptPath = transcriptPath
	item.SetProgressComplete("Transcribing", fmt.Sprintf("Transcribed %d segments", len(transcript.Segments)))

	logger.Info("transcription complete",
		logging.Int("segments", len(transcript.Segments)),
		logging.String("language", transcript.Language),
		logging.String("transcript", transcriptPath))
	if t.notifier != nil {
		if err := t.notifier.NotifyTranscriptionCompleted(ctx, item.Title, len(transcript.Segments)); err != nil {
			logger.Warn("transcription notification failed", logging.Error(err))
		}
	}
	return nil
}

// HealthCheck verifies the external tools transcription depends on.
func (t *Transcriber) HealthCheck(ctx context.Context) stage.Health {
	const name = "transcriber"
	if _, err := exec.LookPath(t.cfg.FFmpegBinary()); err != nil {
		return stage.Unhealthy(name, "ffmpeg not found in PATH")
	}
	if _, err := exec.LookPath(whisperx.UVXCommand); err != nil {
		return stage.Unhealthy(name, "uvx not found in PATH")
	}
	return stage.Healthy(name)
}

func (t *Transcriber) persistProgress(ctx context.Context, item *queue.Item, logger *slog.Logger) {
	if t.store == nil {
		return
	}
	if err := t.store.Update(ctx, item); err != nil {
		logger.Warn("failed to persist progress", logging.Error(err))
	}
}
