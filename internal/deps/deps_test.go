package deps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"shortcast/internal/config"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(present, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Unset", Command: "  "},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}

	if !results[0].Available {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[0].Detail != "" {
		t.Fatalf("unexpected detail for available dependency: %s", results[0].Detail)
	}

	if results[1].Available {
		t.Fatalf("expected missing binary to be unavailable")
	}
	if results[1].Detail == "" {
		t.Fatalf("expected detail message for missing binary")
	}

	if results[2].Detail != "command not configured" {
		t.Fatalf("unexpected detail for blank command: %s", results[2].Detail)
	}
}

func TestRequirementsListsCoreTools(t *testing.T) {
	cfg := &config.Config{}
	reqs := Requirements(cfg)
	names := make(map[string]bool, len(reqs))
	for _, req := range reqs {
		names[req.Name] = true
	}
	for _, want := range []string{"FFmpeg", "FFprobe", "uvx"} {
		if !names[want] {
			t.Fatalf("missing requirement %s in %#v", want, reqs)
		}
	}
}

func TestCheckDirectoryAccess(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("Output directory", dir)
	if !result.Passed {
		t.Fatalf("expected writable temp dir to pass, got %#v", result)
	}

	result = CheckDirectoryAccess("Output directory", filepath.Join(dir, "missing"))
	if result.Passed {
		t.Fatalf("expected missing directory to fail")
	}

	file := filepath.Join(dir, "file")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	result = CheckDirectoryAccess("Output directory", file)
	if result.Passed {
		t.Fatalf("expected non-directory to fail")
	}
}

func TestCheckDiskSpace(t *testing.T) {
	result := CheckDiskSpace("Output disk space", t.TempDir())
	if result.Detail == "" {
		t.Fatalf("expected detail with free space")
	}

	result = CheckDiskSpace("Output disk space", filepath.Join(t.TempDir(), "missing"))
	if result.Passed {
		t.Fatalf("expected statfs on missing path to fail")
	}
}

func TestCheckHookAPIRequiresKey(t *testing.T) {
	result := CheckHookAPI(context.Background(), config.Hooks{})
	if result.Passed {
		t.Fatalf("expected missing API key to fail")
	}
	if result.Detail != "API key missing" {
		t.Fatalf("unexpected detail: %s", result.Detail)
	}
}

func TestCheckHookAPIReachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{\"ok\":true}"}}]}`))
	}))
	defer server.Close()

	result := CheckHookAPI(context.Background(), config.Hooks{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "test-model",
	})
	if !result.Passed {
		t.Fatalf("expected health check to pass, got %#v", result)
	}
}

func TestCheckImageServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sdapi/v1/options" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	result := CheckImageServer(context.Background(), server.URL)
	if !result.Passed {
		t.Fatalf("expected reachable server to pass, got %#v", result)
	}
}
