package render

import (
	"fmt"
	"image"
	"log/slog"

	"shortcast/internal/config"
	"shortcast/internal/logging"
	"shortcast/internal/services"
)

// MinClipSeconds is the shortest audio segment worth rendering.
const MinClipSeconds = 1.0

// Timeline is an ordered stack of layers plus the canvas geometry for one
// rendered clip. Built once per highlight and consumed exactly once.
type Timeline struct {
	Width    int
	Height   int
	FPS      int
	Duration float64
	Layers   []Layer
}

// FrameCount returns the number of frames the encoder will consume.
func (tl *Timeline) FrameCount() int {
	return int(tl.Duration * float64(tl.FPS))
}

// Composite renders the full canvas at time t: black base, then every
// layer whose window covers t, in stack order.
func (tl *Timeline) Composite(t float64) *image.RGBA {
	canvas := image.NewRGBA(image.Rect(0, 0, tl.Width, tl.Height))
	for i := 3; i < len(canvas.Pix); i += 4 {
		canvas.Pix[i] = 255
	}
	for _, layer := range tl.Layers {
		if !covers(layer, t) {
			continue
		}
		frame, at := layer.RenderFrame(t)
		blendOver(canvas, frame, at)
	}
	return canvas
}

// HighlightOptions carries the per-clip inputs for timeline assembly.
type HighlightOptions struct {
	Duration   float64
	Title      string
	Text       string
	Background image.Image // nil falls back to the animated gradient
	ImageIndex int
}

// NewHighlightTimeline assembles the layer stack for one highlight clip:
// background, decorations, waveform, title, subtitles, in that z-order.
// Optional layers that fail to build are logged and skipped; background
// and subtitles are required.
func NewHighlightTimeline(cfg config.Video, opts HighlightOptions, logger *slog.Logger) (*Timeline, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	if opts.Duration < MinClipSeconds {
		return nil, services.Wrap(services.ErrValidation, "render", "build timeline",
			fmt.Sprintf("clip duration %.2fs below %.1fs minimum", opts.Duration, MinClipSeconds), nil)
	}

	tl := &Timeline{
		Width:    cfg.Width,
		Height:   cfg.Height,
		FPS:      cfg.FPS,
		Duration: opts.Duration,
	}

	if opts.Background != nil {
		tl.Layers = append(tl.Layers, NewImageLayer(opts.Background, cfg.Width, cfg.Height, opts.Duration, opts.ImageIndex))
	} else {
		tl.Layers = append(tl.Layers, NewGradientLayer(cfg.Width, cfg.Height, opts.Duration))
	}

	tl.Layers = append(tl.Layers, NewDecorationLayer(cfg.Width, cfg.Height, opts.Duration))
	tl.Layers = append(tl.Layers, NewWaveformLayer(cfg.Width, cfg.Height, cfg.WaveformBars, opts.Duration))

	if opts.Title != "" {
		title, err := NewTitleLayer(opts.Title, cfg.Width, opts.Duration)
		if err != nil {
			logger.Debug("title layer skipped", logging.Error(err))
		} else {
			tl.Layers = append(tl.Layers, title)
		}
	}

	subtitles, err := NewSubtitleLayers(opts.Text, cfg.Width, cfg.Height, opts.Duration, cfg.WordsPerChunk)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "render", "build subtitles", "subtitle layer construction failed", err)
	}
	tl.Layers = append(tl.Layers, subtitles...)

	return tl, nil
}
