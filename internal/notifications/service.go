package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"shortcast/internal/config"
)

const userAgent = "Shortcast/0.1.0"

// Service defines the notification surface exposed to pipeline components.
type Service interface {
	NotifyJobQueued(ctx context.Context, title string) error
	NotifyTranscriptionCompleted(ctx context.Context, title string, segments int) error
	NotifyHighlightsSelected(ctx context.Context, title string, count int) error
	NotifyVideoRendered(ctx context.Context, title, fileName string) error
	NotifyJobCompleted(ctx context.Context, title string, videos int) error
	NotifyJobFailed(ctx context.Context, title, reason string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint: topic,
		toggles:  cfg.Notifications,
		client:   &http.Client{Timeout: timeout},
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	toggles  config.Notifications
	client   *http.Client
}

func (n *ntfyService) NotifyJobQueued(ctx context.Context, title string) error {
	data := payload{
		title:   "Shortcast - Queued",
		message: fmt.Sprintf("Queued for processing: %s", strings.TrimSpace(title)),
		tags:    []string{"shortcast", "queue", "added"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyTranscriptionCompleted(ctx context.Context, title string, segments int) error {
	if !n.toggles.Transcription {
		return nil
	}
	data := payload{
		title:   "Shortcast - Transcribed",
		message: fmt.Sprintf("Transcription complete: %s (%d segments)", strings.TrimSpace(title), segments),
		tags:    []string{"shortcast", "transcription", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyHighlightsSelected(ctx context.Context, title string, count int) error {
	if !n.toggles.Highlights {
		return nil
	}
	data := payload{
		title:   "Shortcast - Highlights",
		message: fmt.Sprintf("Selected %d highlights: %s", count, strings.TrimSpace(title)),
		tags:    []string{"shortcast", "highlights", "selected"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyVideoRendered(ctx context.Context, title, fileName string) error {
	if !n.toggles.Videos {
		return nil
	}
	data := payload{
		title:   "Shortcast - Video Rendered",
		message: fmt.Sprintf("Rendered %s: %s", strings.TrimSpace(fileName), strings.TrimSpace(title)),
		tags:    []string{"shortcast", "render", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyJobCompleted(ctx context.Context, title string, videos int) error {
	data := payload{
		title:    "Shortcast - Complete",
		message:  fmt.Sprintf("Ready to share: %s (%d clips)", strings.TrimSpace(title), videos),
		tags:     []string{"shortcast", "job", "completed"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyJobFailed(ctx context.Context, title, reason string) error {
	if !n.toggles.Errors {
		return nil
	}
	message := fmt.Sprintf("Processing failed: %s", strings.TrimSpace(title))
	if reason = strings.TrimSpace(reason); reason != "" {
		message = fmt.Sprintf("%s\n%s", message, reason)
	}
	data := payload{
		title:    "Shortcast - Failed",
		message:  message,
		tags:     []string{"shortcast", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Shortcast - Test",
		message:  "Notification system test",
		tags:     []string{"shortcast", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyJobQueued(context.Context, string) error { return nil }
func (noopService) NotifyTranscriptionCompleted(context.Context, string, int) error { return nil }
func (noopService) NotifyHighlightsSelected(context.Context, string, int) error { return nil }
func (noopService) NotifyVideoRendered(context.Context, string, string) error { return nil }
func (noopService) NotifyJobCompleted(context.Context, string, int) error { return nil }
func (noopService) NotifyJobFailed(context.Context, string, string) error { return nil }
func (noopService) TestNotification(context.Context) error { return nil }
