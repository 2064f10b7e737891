package main

import (
	"path/filepath"

	"log/slog"

	"shortcast/internal/analyzer"
	"shortcast/internal/config"
	"shortcast/internal/logging"
	"shortcast/internal/queue"
	"shortcast/internal/renderer"
	"shortcast/internal/transcriber"
	"shortcast/internal/workflow"
)

// socketPath returns the IPC socket location for the given configuration.
func socketPath(cfg *config.Config) string {
	if cfg == nil {
		return filepath.Join("", "shortcastd.sock")
	}
	return filepath.Join(cfg.Paths.LogDir, "shortcastd.sock")
}

func loggerOptions(cfg *config.Config) logging.Options {
	opts := logging.Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: []string{"stdout"},
	}
	if cfg.Paths.LogDir != "" {
		opts.OutputPaths = append(opts.OutputPaths, filepath.Join(cfg.Paths.LogDir, "shortcast.log"))
	}
	return opts
}

func configureStages(manager *workflow.Manager, cfg *config.Config, store *queue.Store, logger *slog.Logger) error {
	rend, err := renderer.NewRenderer(cfg, store, logger)
	if err != nil {
		return err
	}
	manager.ConfigureStages(workflow.StageSet{
		Transcriber: transcriber.NewTranscriber(cfg, store, logger),
		Analyzer:    analyzer.NewAnalyzer(cfg, store, logger),
		Renderer:    rend,
	})
	return nil
}
