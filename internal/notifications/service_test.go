package notifications_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"shortcast/internal/config"
	"shortcast/internal/notifications"
)

func TestNewServiceReturnsNoopWhenTopicMissing(t *testing.T) {
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = ""
	svc := notifications.NewService(&cfg)
	if err := svc.NotifyJobCompleted(context.Background(), "Example", 2); err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
}

func TestNtfyServiceFormatsPayloads(t *testing.T) {
	var captured struct {
		title    string
		tags     string
		priority string
		body     string
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		captured.title = r.Header.Get("Title")
		captured.tags = r.Header.Get("Tags")
		captured.priority = r.Header.Get("Priority")
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		captured.body = string(body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL
	cfg.Notifications.RequestTimeout = 5

	svc := notifications.NewService(&cfg)
	if err := svc.NotifyJobCompleted(context.Background(), "My Episode", 3); err != nil {
		t.Fatalf("notification returned error: %v", err)
	}

	if captured.title != "Shortcast - Complete" {
		t.Fatalf("unexpected title %q", captured.title)
	}
	if captured.body != "Ready to share: My Episode (3 clips)" {
		t.Fatalf("unexpected message %q", captured.body)
	}
	if captured.tags != "shortcast,job,completed" {
		t.Fatalf("unexpected tags %q", captured.tags)
	}
	if captured.priority != "high" {
		t.Fatalf("unexpected priority %q", captured.priority)
	}
}

func TestNtfyServiceHonorsEventToggles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("unexpected call for disabled event: %s", r.URL.String())
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL
	cfg.Notifications.Transcription = false
	cfg.Notifications.Highlights = false
	cfg.Notifications.Videos = false
	cfg.Notifications.Errors = false

	svc := notifications.NewService(&cfg)
	ctx := context.Background()
	if err := svc.NotifyTranscriptionCompleted(ctx, "ep", 10); err != nil {
		t.Fatalf("disabled transcription event errored: %v", err)
	}
	if err := svc.NotifyHighlightsSelected(ctx, "ep", 3); err != nil {
		t.Fatalf("disabled highlights event errored: %v", err)
	}
	if err := svc.NotifyVideoRendered(ctx, "ep", "highlight_1.mp4"); err != nil {
		t.Fatalf("disabled video event errored: %v", err)
	}
	if err := svc.NotifyJobFailed(ctx, "ep", "boom"); err != nil {
		t.Fatalf("disabled error event errored: %v", err)
	}
}
