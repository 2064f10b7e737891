package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"shortcast/internal/services"
)

func TestPrettyHandlerFormatsRecord(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	logger := slog.New(newPrettyHandler(&buf, lvl, false, false))

	logger.Info("stage started", String(FieldComponent, "renderer"), Int("highlight", 2))

	out := buf.String()
	if !strings.Contains(out, "INFO renderer: stage started") {
		t.Fatalf("unexpected console output: %q", out)
	}
	if !strings.Contains(out, "highlight=2") {
		t.Fatalf("expected attr in output: %q", out)
	}
}

func TestPrettyHandlerQuotesValuesWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	logger := slog.New(newPrettyHandler(&buf, lvl, false, false))

	logger.Warn("render failed", String("reason", "ffmpeg exited 1"))

	if !strings.Contains(buf.String(), `reason="ffmpeg exited 1"`) {
		t.Fatalf("expected quoted attr, got %q", buf.String())
	}
}

func TestWithContextAddsFields(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	logger := slog.New(newPrettyHandler(&buf, lvl, false, false))

	ctx := services.WithItemID(context.Background(), 7)
	ctx = services.WithStage(ctx, "analyzing")
	WithContext(ctx, logger).Info("scored segments")

	out := buf.String()
	if !strings.Contains(out, "item_id=7") || !strings.Contains(out, "stage=analyzing") {
		t.Fatalf("expected context fields, got %q", out)
	}
}

func TestParseLevelDefaultsToInfo(t *testing.T) {
	if parseLevel("bogus") != slog.LevelInfo {
		t.Fatal("unknown levels must default to info")
	}
	if parseLevel("debug") != slog.LevelDebug {
		t.Fatal("debug not parsed")
	}
}
