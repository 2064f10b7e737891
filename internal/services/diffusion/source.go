package diffusion

import (
	"context"
	"errors"
	"image"
	"log/slog"

	"shortcast/internal/logging"
)

// ImageSource produces one background image for a prompt. The seed makes
// repeated variants of the same prompt distinct where the backend
// supports it.
type ImageSource interface {
	Name() string
	Generate(ctx context.Context, prompt string, seed int64) (image.Image, error)
}

// Chain tries each source in order and returns the first image produced.
type Chain struct {
	sources []ImageSource
	logger  *slog.Logger
}

// NewChain builds a source chain. Nil sources are skipped.
func NewChain(logger *slog.Logger, sources ...ImageSource) *Chain {
	if logger == nil {
		logger = logging.NewNop()
	}
	kept := make([]ImageSource, 0, len(sources))
	for _, src := range sources {
		if src != nil {
			kept = append(kept, src)
		}
	}
	return &Chain{sources: kept, logger: logger}
}

// Empty reports whether the chain has no usable sources.
func (c *Chain) Empty() bool {
	return c == nil || len(c.sources) == 0
}

// Generate returns the first image any source produces for the prompt.
func (c *Chain) Generate(ctx context.Context, prompt string, seed int64) (image.Image, error) {
	if c.Empty() {
		return nil, errors.New("diffusion: no image sources configured")
	}
	var lastErr error
	for _, src := range c.sources {
		img, err := src.Generate(ctx, prompt, seed)
		if err == nil && img != nil {
			return img, nil
		}
		if err == nil {
			err = errors.New("source returned no image")
		}
		c.logger.Warn("background source failed, trying next",
			logging.String("source", src.Name()),
			logging.Error(err))
		lastErr = err
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	return nil, lastErr
}
