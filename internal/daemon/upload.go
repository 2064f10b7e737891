package daemon

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"shortcast/internal/queue"
)

// maxUploadBytes caps uploaded audio files at 100 MiB.
const maxUploadBytes = 100 << 20

// createJob stores an audio stream under a fresh job directory and enqueues
// it. The uploaded file is always named audio.<ext> so artifact
// reconstruction can find it without the queue row.
func (d *Daemon) createJob(ctx context.Context, source io.Reader, originalName string) (*queue.Item, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if _, ok := audioFileExtensions[ext]; !ok {
		return nil, fmt.Errorf("unsupported file extension %q", ext)
	}

	jobID := uuid.NewString()
	jobDir := d.cfg.JobUploadDir(jobID)
	if err := os.MkdirAll(jobDir, 0o755); err != nil {
		return nil, fmt.Errorf("create job directory: %w", err)
	}

	destPath := filepath.Join(jobDir, "audio"+ext)
	dest, err := os.Create(destPath)
	if err != nil {
		return nil, fmt.Errorf("create upload file: %w", err)
	}
	written, err := io.Copy(dest, io.LimitReader(source, maxUploadBytes+1))
	closeErr := dest.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && written > maxUploadBytes {
		err = fmt.Errorf("file exceeds maximum size of %d MB", maxUploadBytes/(1<<20))
	}
	if err == nil && written == 0 {
		err = fmt.Errorf("uploaded file is empty")
	}
	if err != nil {
		_ = os.RemoveAll(jobDir)
		return nil, err
	}

	item, err := d.store.NewJobWithID(ctx, jobID, destPath, queue.InferTitle(originalName))
	if err != nil {
		_ = os.RemoveAll(jobDir)
		return nil, fmt.Errorf("enqueue job: %w", err)
	}
	if d.notifier != nil {
		_ = d.notifier.NotifyJobQueued(ctx, item.Title)
	}
	return item, nil
}
