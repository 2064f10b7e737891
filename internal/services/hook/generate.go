package hook

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"shortcast/internal/logging"
	"shortcast/internal/textutil"
)

// DefaultTitle is used whenever hook generation is disabled or fails.
const DefaultTitle = "Podcast Highlight"

const (
	maxHookWords    = 7
	maxExcerptRunes = 300
)

const hookSystemPrompt = `You write short viral hooks for vertical podcast clips.
Given a transcript excerpt, produce one attention-grabbing title of at most seven words.
Respond with JSON only, in the form {"hook": "<title>"}.`

// Generate produces a sanitized hook title for the supplied highlight text.
func (c *Client) Generate(ctx context.Context, highlightText string) (string, error) {
	highlightText = strings.TrimSpace(highlightText)
	if highlightText == "" {
		return "", fmt.Errorf("hook generate: highlight text required")
	}
	userPrompt := fmt.Sprintf("Transcript excerpt:\n%s", textutil.Truncate(highlightText, maxExcerptRunes))
	content, err := c.CompleteJSON(ctx, hookSystemPrompt, userPrompt)
	if err != nil {
		return "", err
	}
	var parsed struct {
		Hook string `json:"hook"`
	}
	if err := decodeModelJSON(content, &parsed); err != nil {
		return "", fmt.Errorf("hook generate: parse payload: %w", err)
	}
	line := textutil.NormalizeHookLine(parsed.Hook, maxHookWords)
	if line == "" {
		return "", fmt.Errorf("hook generate: model returned no usable title")
	}
	return textutil.TitleCase(line), nil
}

// Service wraps a Client with enable/disable and fallback semantics.
// A nil Service is valid and always returns DefaultTitle.
type Service struct {
	client *Client
	logger *slog.Logger
}

// NewService returns a hook Service, or nil when disabled or unconfigured.
func NewService(client *Client, enabled bool, logger *slog.Logger) *Service {
	if !enabled || client == nil {
		return nil
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Service{client: client, logger: logger}
}

// TitleFor returns a hook title for the highlight text, degrading to
// DefaultTitle on any failure. It never returns an error: hook generation
// is a best-effort enhancement and must not fail the render.
func (s *Service) TitleFor(ctx context.Context, highlightText string) string {
	if s == nil || s.client == nil {
		return DefaultTitle
	}
	title, err := s.client.Generate(ctx, highlightText)
	if err != nil {
		s.logger.Warn("hook generation failed, using default title", logging.Error(err))
		return DefaultTitle
	}
	return title
}
