package artifacts

import (
	"os"
	"path/filepath"

	"shortcast/internal/queue"
)

// Snapshot is a job state derived purely from flat files, used when the
// queue row for a job no longer exists.
type Snapshot struct {
	Status         queue.Status
	TranscriptPath string
	HighlightsPath string
	VideoFiles     []string
}

// Reconstruct derives a job's status from its upload and output
// directories. The queue database is transient; the flat files are the
// durable record, so a wiped queue still yields a truthful status:
//
//	rendered videos      -> completed
//	highlights.json      -> analyzed
//	transcript.json      -> transcribed
//	uploaded audio only  -> pending
//
// Returns ok=false when neither directory holds anything for the job.
func Reconstruct(uploadDir, outputDir string) (Snapshot, bool) {
	var snap Snapshot

	videos, _ := VideoFiles(outputDir)
	if len(videos) > 0 {
		snap.VideoFiles = videos
		snap.Status = queue.StatusCompleted
	}

	if path := filepath.Join(outputDir, HighlightsFile); fileExists(path) {
		snap.HighlightsPath = path
		if snap.Status == "" {
			snap.Status = queue.StatusAnalyzed
		}
	}
	if path := filepath.Join(outputDir, TranscriptFile); fileExists(path) {
		snap.TranscriptPath = path
		if snap.Status == "" {
			snap.Status = queue.StatusTranscribed
		}
	}
	if snap.Status != "" {
		return snap, true
	}

	if dirHasFiles(uploadDir) {
		snap.Status = queue.StatusPending
		return snap, true
	}
	return snap, false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirHasFiles(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			return true
		}
	}
	return false
}
