package analyzer

import (
	"context"
	"fmt"
	"os"

	"log/slog"

	"shortcast/internal/artifacts"
	"shortcast/internal/config"
	"shortcast/internal/highlights"
	"shortcast/internal/logging"
	"shortcast/internal/notifications"
	"shortcast/internal/queue"
	"shortcast/internal/services"
	"shortcast/internal/stage"
)

// Analyzer selects highlight windows from a persisted transcript.
type Analyzer struct {
	store    *queue.Store
	cfg      *config.Config
	logger   *slog.Logger
	engine   *highlights.Engine
	notifier notifications.Service
}

// NewAnalyzer constructs the analyzer stage handler using default dependencies.
func NewAnalyzer(cfg *config.Config, store *queue.Store, logger *slog.Logger) *Analyzer {
	return NewAnalyzerWithDependencies(cfg, store, logger, notifications.NewService(cfg))
}

// NewAnalyzerWithDependencies allows injecting collaborators (used in tests).
func NewAnalyzerWithDependencies(cfg *config.Config, store *queue.Store, logger *slog.Logger, notifier notifications.Service) *Analyzer {
	stageLogger := logger
	if stageLogger != nil {
		stageLogger = stageLogger.With(logging.String(logging.FieldComponent, "analyzer"))
	}
	return &Analyzer{
		store:    store,
		cfg:      cfg,
		logger:   stageLogger,
		engine:   highlights.NewEngine(cfg.Highlights, stageLogger),
		notifier: notifier,
	}
}

// Prepare verifies the transcript artifact exists before analysis starts.
func (a *Analyzer) Prepare(ctx context.Context, item *queue.Item) error {
	outputDir := a.cfg.JobOutputDir(item.JobID)
	transcript, err := artifacts.ReadTranscript(outputDir)
	if err != nil {
		return services.Wrap(services.ErrValidation, "analyzer", "prepare",
			"transcript artifact unavailable", err)
	}
	if len(transcript.Segments) == 0 {
		return services.Wrap(services.ErrValidation, "analyzer", "prepare",
			"transcript has no segments", nil)
	}
	item.InitProgress("Analyzing", "Scoring transcript segments")
	return nil
}

// Execute scores the transcript and writes the highlights artifact.
func (a *Analyzer) Execute(ctx context.Context, item *queue.Item) error {
	logger := logging.WithContext(ctx, a.logger)

	outputDir := a.cfg.JobOutputDir(item.JobID)
	transcript, err := artifacts.ReadTranscript(outputDir)
	if err != nil {
		return services.Wrap(services.ErrValidation, "analyzer", "read transcript", "", err)
	}

	item.SetProgress("Analyzing", "Selecting highlights", 40)
	a.persistProgress(ctx, item, logger)

	selected := a.engine.Select(transcript.Segments, a.cfg.Highlights.Count)
	if len(selected) == 0 {
		return services.Wrap(services.ErrValidation, "analyzer", "select highlights",
			"no highlight candidates met the duration bounds", nil)
	}

	record := artifacts.HighlightsRecord{
		Highlights:    selected,
		HooksEnabled:  a.cfg.Hooks.Enabled,
		ImagesEnabled: a.cfg.Backgrounds.Enabled,
	}
	highlightsPath, err := artifacts.WriteHighlights(outputDir, record)
	if err != nil {
		return services.Wrap(services.ErrTransient, "analyzer", "write highlights", "", err)
	}
	item.HighlightsPath = highlightsPath
	item.SetProgressComplete("Analyzing", fmt.Sprintf("Selected %d highlights", len(selected)))

	logger.Info("highlight selection complete",
		logging.Int("highlights", len(selected)),
		logging.String("highlights_file", highlightsPath))
	if a.notifier != nil {
		if err := a.notifier.NotifyHighlightsSelected(ctx, item.Title, len(selected)); err != nil {
			logger.Warn("highlights notification failed", logging.Error(err))
		}
	}
	return nil
}

// HealthCheck verifies the analyzer can reach its output directory.
func (a *Analyzer) HealthCheck(ctx context.Context) stage.Health {
	const name = "analyzer"
	if err := os.MkdirAll(a.cfg.Paths.OutputDir, 0o755); err != nil {
		return stage.Unhealthy(name, fmt.Sprintf("output directory unavailable: %v", err))
	}
	return stage.Healthy(name)
}

func (a *Analyzer) persistProgress(ctx context.Context, item *queue.Item, logger *slog.Logger) {
	if a.store == nil {
		return
	}
	if err := a.store.Update(ctx, item); err != nil {
		logger.Warn("failed to persist progress", logging.Error(err))
	}
}
