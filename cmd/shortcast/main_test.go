package main

import (
	"bytes"
	"strings"
	"testing"

	"shortcast/internal/api"
	"shortcast/internal/media"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := newRootCommand()
	names := make(map[string]bool)
	for _, cmd := range root.Commands() {
		names[cmd.Name()] = true
	}
	for _, want := range []string{
		"start", "stop", "status", "add", "queue", "show",
		"config", "test-notify", "render-slideshow", "version",
	} {
		if !names[want] {
			t.Errorf("root command missing subcommand %q", want)
		}
	}
}

func TestVersionCommandPrints(t *testing.T) {
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})
	if err := root.Execute(); err != nil {
		t.Fatalf("version command: %v", err)
	}
	if !strings.HasPrefix(out.String(), "shortcast ") {
		t.Fatalf("unexpected version output %q", out.String())
	}
}

func TestRenderTableIncludesHeadersAndRows(t *testing.T) {
	out := renderTable(
		[]string{"Status", "Count"},
		[][]string{{"pending", "2"}, {"completed", "5"}},
		[]columnAlignment{alignLeft, alignRight},
	)
	for _, want := range []string{"STATUS", "COUNT", "pending", "completed", "5"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestQueueStatsRowsSkipsZeroCounts(t *testing.T) {
	rows := queueStatsRows(map[string]int{"pending": 2, "failed": 0, "completed": 1})
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d: %v", len(rows), rows)
	}
	// Sorted alphabetically for stable output.
	if rows[0][0] != "completed" || rows[1][0] != "pending" {
		t.Fatalf("unexpected row order: %v", rows)
	}
}

func TestShortJobID(t *testing.T) {
	if got := shortJobID("123e4567-e89b-12d3-a456-426614174000"); got != "123e4567" {
		t.Fatalf("shortJobID = %q", got)
	}
	if got := shortJobID("plain"); got != "plain" {
		t.Fatalf("shortJobID passthrough = %q", got)
	}
}

func TestFormatSeconds(t *testing.T) {
	if got := formatSeconds(75.4); got != "1:15" {
		t.Fatalf("formatSeconds(75.4) = %q", got)
	}
	if got := formatSeconds(5); got != "0:05" {
		t.Fatalf("formatSeconds(5) = %q", got)
	}
}

func TestPrintJobStatusRendersHighlightsAndVideos(t *testing.T) {
	var out bytes.Buffer
	printJobStatus(&out, api.JobStatusResponse{
		JobID:  "job-1",
		Title:  "Episode 12",
		Status: "completed",
		Highlights: []media.Highlight{
			{StartTime: 10, EndTime: 40, Confidence: 0.8, Reason: "Contains interesting keywords: amazing"},
		},
		VideoFiles: []string{"/out/highlight_1.mp4"},
	})
	text := out.String()
	for _, want := range []string{"job-1", "Episode 12", "completed", "amazing", "highlight_1.mp4"} {
		if !strings.Contains(text, want) {
			t.Errorf("status output missing %q:\n%s", want, text)
		}
	}
}
