package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"shortcast/internal/api"
	"shortcast/internal/artifacts"
	"shortcast/internal/ipc"
	"shortcast/internal/media"
	"shortcast/internal/queue"
)

func runJobStatus(ctx *commandContext, cmd *cobra.Command, jobID string) error {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return errors.New("job id is required")
	}
	stdout := cmd.OutOrStdout()

	if client, err := ctx.dialClient(); err == nil {
		defer client.Close()
		resp, err := client.JobStatus(jobID)
		if err != nil {
			return err
		}
		if !resp.Found {
			return fmt.Errorf("job %s not found", jobID)
		}
		printJobStatus(stdout, resp.Status)
		return nil
	}

	// Daemon unreachable: rebuild the status from the flat artifacts.
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	outputDir := cfg.JobOutputDir(jobID)
	snapshot, ok := artifacts.Reconstruct(cfg.JobUploadDir(jobID), outputDir)
	if !ok {
		return fmt.Errorf("job %s not found (daemon not running and no artifacts on disk)", jobID)
	}
	payload := api.JobStatusResponse{
		JobID:      jobID,
		Status:     string(snapshot.Status),
		VideoFiles: snapshot.VideoFiles,
	}
	if snapshot.Status == queue.StatusCompleted {
		payload.Progress = api.QueueProgress{Percent: 100, Message: "Processing completed"}
	}
	if record, err := artifacts.ReadHighlights(outputDir); err == nil {
		payload.Highlights = record.Highlights
	}
	if transcript, err := artifacts.ReadTranscript(outputDir); err == nil {
		payload.Transcript = transcript.Text
	}
	printJobStatus(stdout, payload)
	return nil
}

func printJobStatus(stdout io.Writer, status api.JobStatusResponse) {
	fmt.Fprintf(stdout, "Job:    %s\n", status.JobID)
	if strings.TrimSpace(status.Title) != "" {
		fmt.Fprintf(stdout, "Title:  %s\n", status.Title)
	}
	fmt.Fprintf(stdout, "Status: %s\n", status.Status)
	if status.Progress.Percent > 0 || strings.TrimSpace(status.Progress.Message) != "" {
		fmt.Fprintf(stdout, "Progress: %.0f%% %s\n", status.Progress.Percent, status.Progress.Message)
	}
	if strings.TrimSpace(status.Error) != "" {
		fmt.Fprintf(stdout, "Error:  %s\n", status.Error)
	}

	if len(status.Highlights) > 0 {
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, renderTable(
			[]string{"#", "Start", "End", "Confidence", "Reason"},
			highlightRows(status.Highlights),
			[]columnAlignment{alignRight, alignRight, alignRight, alignRight, alignLeft},
		))
	}

	if len(status.VideoFiles) > 0 {
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "Videos:")
		for _, file := range status.VideoFiles {
			fmt.Fprintf(stdout, "  %s\n", file)
		}
	}
}

func highlightRows(items []media.Highlight) [][]string {
	rows := make([][]string, 0, len(items))
	for i, h := range items {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			formatSeconds(h.StartTime),
			formatSeconds(h.EndTime),
			fmt.Sprintf("%.2f", h.Confidence),
			h.Reason,
		})
	}
	return rows
}

func formatSeconds(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <item-id>",
		Short: "Show details for a queue item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(strings.TrimSpace(args[0]), 10, 64)
			if err != nil {
				return fmt.Errorf("invalid item id %q", args[0])
			}
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.QueueDescribe(id)
				if err != nil {
					return err
				}
				item := resp.Item
				stdout := cmd.OutOrStdout()
				fmt.Fprintf(stdout, "Item:    #%d\n", item.ID)
				fmt.Fprintf(stdout, "Job:     %s\n", item.JobID)
				fmt.Fprintf(stdout, "Title:   %s\n", item.Title)
				fmt.Fprintf(stdout, "Source:  %s\n", item.SourcePath)
				fmt.Fprintf(stdout, "Status:  %s\n", item.Status)
				if strings.TrimSpace(item.Progress.Message) != "" {
					fmt.Fprintf(stdout, "Progress: %.0f%% (%s) %s\n", item.Progress.Percent, item.Progress.Stage, item.Progress.Message)
				}
				if strings.TrimSpace(item.ErrorMessage) != "" {
					fmt.Fprintf(stdout, "Error:   %s\n", item.ErrorMessage)
				}
				for _, file := range item.VideoFiles {
					fmt.Fprintf(stdout, "Video:   %s\n", file)
				}
				return nil
			})
		},
	}
}
