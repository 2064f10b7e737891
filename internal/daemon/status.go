package daemon

import (
	"context"
	"strings"

	"shortcast/internal/api"
	"shortcast/internal/artifacts"
	"shortcast/internal/queue"
)

// JobStatus assembles the pipeline status for a job. The queue row is
// authoritative while it exists; once it is gone the status is
// reconstructed from the flat artifacts on disk. The boolean reports
// whether the job was found in either place.
func (d *Daemon) JobStatus(ctx context.Context, jobID string) (api.JobStatusResponse, bool, error) {
	payload := api.JobStatusResponse{JobID: jobID}
	if strings.TrimSpace(jobID) == "" {
		return payload, false, nil
	}

	item, err := d.GetJob(ctx, jobID)
	if err != nil {
		return payload, false, err
	}

	outputDir := d.cfg.JobOutputDir(jobID)
	if item != nil {
		payload.Title = item.Title
		payload.Status = string(item.Status)
		payload.Progress = api.QueueProgress{
			Stage:   item.ProgressStage,
			Percent: item.ProgressPercent,
			Message: item.ProgressMessage,
		}
		payload.Error = item.ErrorMessage
		payload.VideoFiles = item.VideoFiles()
	} else {
		// The queue row can be gone while artifacts remain on disk.
		snapshot, ok := artifacts.Reconstruct(d.cfg.JobUploadDir(jobID), outputDir)
		if !ok {
			return payload, false, nil
		}
		payload.Status = string(snapshot.Status)
		payload.VideoFiles = snapshot.VideoFiles
		if snapshot.Status == queue.StatusCompleted {
			payload.Progress = api.QueueProgress{Percent: 100, Message: "Processing completed"}
		}
	}

	if record, err := artifacts.ReadHighlights(outputDir); err == nil {
		payload.Highlights = record.Highlights
	}
	if transcript, err := artifacts.ReadTranscript(outputDir); err == nil {
		payload.Transcript = transcript.Text
	}
	return payload, true, nil
}
