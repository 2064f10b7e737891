package queue_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"shortcast/internal/queue"
	"shortcast/internal/testsupport"
)

func TestNewJobAssignsIdentifiers(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	item, err := store.NewJob(ctx, "/tmp/episode_42.mp3", "")
	if err != nil {
		t.Fatalf("NewJob failed: %v", err)
	}
	if item.ID == 0 {
		t.Fatal("expected item ID to be assigned")
	}
	if item.JobID == "" {
		t.Fatal("expected job ID to be assigned")
	}
	if item.Title != "Episode 42" {
		t.Fatalf("expected title inferred from path, got %q", item.Title)
	}
	if item.Status != queue.StatusPending {
		t.Fatalf("expected pending status, got %s", item.Status)
	}

	fetched, err := store.GetByJobID(ctx, item.JobID)
	if err != nil {
		t.Fatalf("GetByJobID failed: %v", err)
	}
	if fetched == nil || fetched.ID != item.ID {
		t.Fatalf("expected to find inserted item, got %#v", fetched)
	}
}

func TestGetByJobIDMissingReturnsNil(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	item, err := store.GetByJobID(context.Background(), "no-such-job")
	if err != nil {
		t.Fatalf("GetByJobID failed: %v", err)
	}
	if item != nil {
		t.Fatalf("expected nil for unknown job, got %#v", item)
	}
}

func TestUpdatePersistsArtifactPaths(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	item := testsupport.NewJob(t, store, "/tmp/show.m4a", "My Show")
	item.Status = queue.StatusTranscribed
	item.TranscriptPath = "/out/job/transcript.json"
	if err := item.SetVideoFiles([]string{"/out/job/highlight_1.mp4"}); err != nil {
		t.Fatalf("SetVideoFiles failed: %v", err)
	}
	if err := store.Update(ctx, item); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	updated, err := store.GetByID(ctx, item.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if updated.TranscriptPath != "/out/job/transcript.json" {
		t.Fatalf("expected transcript path persisted, got %q", updated.TranscriptPath)
	}
	files := updated.VideoFiles()
	if len(files) != 1 || files[0] != "/out/job/highlight_1.mp4" {
		t.Fatalf("expected video files round-trip, got %v", files)
	}
}

func TestResetStuckProcessing(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	cases := []struct {
		name          string
		initialStatus queue.Status
		expected      queue.Status
	}{
		{"transcribing", queue.StatusTranscribing, queue.StatusPending},
		{"analyzing", queue.StatusAnalyzing, queue.StatusTranscribed},
		{"rendering", queue.StatusRendering, queue.StatusAnalyzed},
	}
	var ids []int64
	for i, tc := range cases {
		item := testsupport.NewJob(t, store, fmt.Sprintf("/tmp/job-%d.mp3", i), "")
		item.Status = tc.initialStatus
		item.ProgressStage = tc.name
		if err := store.Update(ctx, item); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		ids = append(ids, item.ID)
	}

	count, err := store.ResetStuckProcessing(ctx)
	if err != nil {
		t.Fatalf("ResetStuckProcessing failed: %v", err)
	}
	if int(count) != len(cases) {
		t.Fatalf("expected %d items reset, got %d", len(cases), count)
	}

	for idx, tc := range cases {
		updated, err := store.GetByID(ctx, ids[idx])
		if err != nil {
			t.Fatalf("GetByID failed: %v", err)
		}
		if updated.Status != tc.expected {
			t.Fatalf("%s: expected status %s, got %s", tc.name, tc.expected, updated.Status)
		}
		if updated.LastHeartbeat != nil {
			t.Fatalf("%s: expected heartbeat cleared", tc.name)
		}
	}
}

func TestReclaimStaleProcessingHonorsCutoff(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	stale := testsupport.NewJob(t, store, "/tmp/stale.mp3", "")
	stale.Status = queue.StatusTranscribing
	past := time.Now().UTC().Add(-10 * time.Minute)
	stale.LastHeartbeat = &past
	if err := store.Update(ctx, stale); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	fresh := testsupport.NewJob(t, store, "/tmp/fresh.mp3", "")
	fresh.Status = queue.StatusRendering
	now := time.Now().UTC()
	fresh.LastHeartbeat = &now
	if err := store.Update(ctx, fresh); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	count, err := store.ReclaimStaleProcessing(ctx, time.Now().UTC().Add(-time.Minute))
	if err != nil {
		t.Fatalf("ReclaimStaleProcessing failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one reclaimed item, got %d", count)
	}

	reclaimed, err := store.GetByID(ctx, stale.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if reclaimed.Status != queue.StatusPending {
		t.Fatalf("expected stale item back to pending, got %s", reclaimed.Status)
	}

	untouched, err := store.GetByID(ctx, fresh.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if untouched.Status != queue.StatusRendering {
		t.Fatalf("expected fresh item untouched, got %s", untouched.Status)
	}
}

func TestRetryFailed(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	failed := testsupport.NewJob(t, store, "/tmp/failed.mp3", "")
	failed.SetFailed("transcription exploded")
	if err := store.Update(ctx, failed); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	completed := testsupport.NewJob(t, store, "/tmp/done.mp3", "")
	completed.Status = queue.StatusCompleted
	if err := store.Update(ctx, completed); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	count, err := store.RetryFailed(ctx)
	if err != nil {
		t.Fatalf("RetryFailed failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one retried item, got %d", count)
	}

	retried, err := store.GetByID(ctx, failed.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if retried.Status != queue.StatusPending {
		t.Fatalf("expected pending after retry, got %s", retried.Status)
	}
	if retried.ErrorMessage != "" {
		t.Fatalf("expected error cleared, got %q", retried.ErrorMessage)
	}
}

func TestNextForStatusesReturnsOldest(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	first := testsupport.NewJob(t, store, "/tmp/first.mp3", "")
	testsupport.NewJob(t, store, "/tmp/second.mp3", "")

	next, err := store.NextForStatuses(ctx, queue.StatusPending)
	if err != nil {
		t.Fatalf("NextForStatuses failed: %v", err)
	}
	if next == nil || next.ID != first.ID {
		t.Fatalf("expected oldest pending item, got %#v", next)
	}
}

func TestHealthSummaryCounts(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	testsupport.NewJob(t, store, "/tmp/a.mp3", "")
	b := testsupport.NewJob(t, store, "/tmp/b.mp3", "")
	b.Status = queue.StatusRendering
	if err := store.Update(ctx, b); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	c := testsupport.NewJob(t, store, "/tmp/c.mp3", "")
	c.SetFailed("boom")
	if err := store.Update(ctx, c); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	health, err := store.Health(ctx)
	if err != nil {
		t.Fatalf("Health failed: %v", err)
	}
	if health.Total != 3 || health.Pending != 1 || health.Processing != 1 || health.Failed != 1 {
		t.Fatalf("unexpected health summary: %#v", health)
	}
}

func TestCheckHealthReportsReadableDatabase(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	testsupport.NewJob(t, store, "/tmp/a.mp3", "")

	health, err := store.CheckHealth(ctx)
	if err != nil {
		t.Fatalf("CheckHealth failed: %v", err)
	}
	if !health.DatabaseExists || !health.DatabaseReadable || !health.IntegrityCheck {
		t.Fatalf("unexpected database health: %#v", health)
	}
	if health.TotalItems != 1 {
		t.Fatalf("expected 1 item, got %d", health.TotalItems)
	}
}

func TestReopenKeepsExistingSchema(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	item := testsupport.NewJob(t, store, "/tmp/a.mp3", "Episode")
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := queue.Open(cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.GetByID(ctx, item.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got == nil || got.JobID != item.JobID {
		t.Fatalf("expected persisted item after reopen, got %#v", got)
	}
}

func TestClearVariants(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	done := testsupport.NewJob(t, store, "/tmp/done.mp3", "")
	done.Status = queue.StatusCompleted
	if err := store.Update(ctx, done); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	failed := testsupport.NewJob(t, store, "/tmp/failed.mp3", "")
	failed.SetFailed("boom")
	if err := store.Update(ctx, failed); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	testsupport.NewJob(t, store, "/tmp/pending.mp3", "")

	if count, err := store.ClearCompleted(ctx); err != nil || count != 1 {
		t.Fatalf("ClearCompleted = %d, %v", count, err)
	}
	if count, err := store.ClearFailed(ctx); err != nil || count != 1 {
		t.Fatalf("ClearFailed = %d, %v", count, err)
	}
	if count, err := store.Clear(ctx); err != nil || count != 1 {
		t.Fatalf("Clear = %d, %v", count, err)
	}
}

func TestParseStatus(t *testing.T) {
	if status, ok := queue.ParseStatus(" Rendering "); !ok || status != queue.StatusRendering {
		t.Fatalf("expected rendering, got %s ok=%v", status, ok)
	}
	if _, ok := queue.ParseStatus("uploading"); ok {
		t.Fatal("expected unknown status to be rejected")
	}
}
