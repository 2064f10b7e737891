package testsupport

import (
	"context"
	"sync"
)

// RecordingNotifier counts notification events so tests can assert on the
// notification surface without a live ntfy endpoint.
type RecordingNotifier struct {
	mu             sync.Mutex
	Queued         int
	Transcriptions int
	Highlights     int
	Videos         int
	Completions    int
	Failures       int
	Tests          int
	LastReason     string
}

func (r *RecordingNotifier) NotifyJobQueued(_ context.Context, _ string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Queued++
	return nil
}

func (r *RecordingNotifier) NotifyTranscriptionCompleted(_ context.Context, _ string, _ int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Transcriptions++
	return nil
}

func (r *RecordingNotifier) NotifyHighlightsSelected(_ context.Context, _ string, _ int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Highlights++
	return nil
}

func (r *RecordingNotifier) NotifyVideoRendered(_ context.Context, _ string, _ string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Videos++
	return nil
}

func (r *RecordingNotifier) NotifyJobCompleted(_ context.Context, _ string, _ int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Completions++
	return nil
}

func (r *RecordingNotifier) NotifyJobFailed(_ context.Context, _ string, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Failures++
	r.LastReason = reason
	return nil
}

func (r *RecordingNotifier) TestNotification(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Tests++
	return nil
}
