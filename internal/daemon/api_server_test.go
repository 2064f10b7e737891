package daemon

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"shortcast/internal/api"
	"shortcast/internal/artifacts"
)

func startTestDaemon(t *testing.T) (*Daemon, string) {
	t.Helper()
	d := newTestDaemon(t)
	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(d.Stop)
	addr := d.apiSrv.addr()
	if addr == "" {
		t.Fatal("expected api server to be listening")
	}
	return d, "http://" + addr
}

func uploadAudio(t *testing.T, baseURL, fileName string, payload []byte) api.UploadResponse {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(payload); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	resp, err := http.Post(baseURL+"/api/upload", writer.FormDataContentType(), &body)
	if err != nil {
		t.Fatalf("upload request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		t.Fatalf("upload status %d: %s", resp.StatusCode, data)
	}
	var decoded api.UploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("decode upload response: %v", err)
	}
	return decoded
}

func TestAPIUploadAndStatus(t *testing.T) {
	d, baseURL := startTestDaemon(t)

	uploaded := uploadAudio(t, baseURL, "deep_dive.mp3", []byte("mp3-bytes"))
	if uploaded.JobID == "" {
		t.Fatal("expected job ID")
	}
	if uploaded.Title != "Deep Dive" {
		t.Fatalf("unexpected title: %s", uploaded.Title)
	}

	savedPath := filepath.Join(d.cfg.JobUploadDir(uploaded.JobID), "audio.mp3")
	if _, err := os.Stat(savedPath); err != nil {
		t.Fatalf("expected saved upload: %v", err)
	}

	resp, err := http.Get(baseURL + "/api/status/" + uploaded.JobID)
	if err != nil {
		t.Fatalf("status request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status code %d", resp.StatusCode)
	}
	var status api.JobStatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if status.JobID != uploaded.JobID {
		t.Fatalf("unexpected job id: %s", status.JobID)
	}
	if status.Status == "" {
		t.Fatal("expected status value")
	}
}

func TestAPIUploadRejectsBadExtension(t *testing.T) {
	_, baseURL := startTestDaemon(t)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, _ := writer.CreateFormFile("file", "document.pdf")
	_, _ = part.Write([]byte("pdf"))
	_ = writer.Close()

	resp, err := http.Post(baseURL+"/api/upload", writer.FormDataContentType(), &body)
	if err != nil {
		t.Fatalf("upload request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestAPIQueueAndProcess(t *testing.T) {
	_, baseURL := startTestDaemon(t)

	uploaded := uploadAudio(t, baseURL, "town_hall.wav", []byte("wav-bytes"))

	resp, err := http.Get(baseURL + "/api/queue")
	if err != nil {
		t.Fatalf("queue request: %v", err)
	}
	defer resp.Body.Close()
	var list api.QueueListResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("decode queue: %v", err)
	}
	if len(list.Items) == 0 {
		t.Fatal("expected queued item")
	}

	procResp, err := http.Post(baseURL+"/api/process/"+uploaded.JobID, "application/json", nil)
	if err != nil {
		t.Fatalf("process request: %v", err)
	}
	defer procResp.Body.Close()
	if procResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", procResp.StatusCode)
	}

	missing, err := http.Post(baseURL+"/api/process/not-a-job", "application/json", nil)
	if err != nil {
		t.Fatalf("process request: %v", err)
	}
	defer missing.Body.Close()
	if missing.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", missing.StatusCode)
	}
}

func TestAPIStatusReconstructsFromArtifacts(t *testing.T) {
	d, baseURL := startTestDaemon(t)

	jobID := "orphan-job"
	uploadDir := d.cfg.JobUploadDir(jobID)
	outputDir := d.cfg.JobOutputDir(jobID)
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		t.Fatalf("mkdir upload: %v", err)
	}
	if err := os.WriteFile(filepath.Join(uploadDir, "audio.mp3"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write audio: %v", err)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		t.Fatalf("mkdir output: %v", err)
	}
	video := filepath.Join(outputDir, artifacts.VideoFileName(1))
	if err := os.WriteFile(video, []byte("vid"), 0o644); err != nil {
		t.Fatalf("write video: %v", err)
	}

	resp, err := http.Get(baseURL + "/api/status/" + jobID)
	if err != nil {
		t.Fatalf("status request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var status api.JobStatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if status.Status != "completed" {
		t.Fatalf("expected completed, got %s", status.Status)
	}
	if len(status.VideoFiles) != 1 {
		t.Fatalf("expected one video file, got %v", status.VideoFiles)
	}
}

func TestAPIVideoDownload(t *testing.T) {
	d, baseURL := startTestDaemon(t)

	jobID := "video-job"
	outputDir := d.cfg.JobOutputDir(jobID)
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		t.Fatalf("mkdir output: %v", err)
	}
	name := artifacts.VideoFileName(1)
	if err := os.WriteFile(filepath.Join(outputDir, name), []byte("video-data"), 0o644); err != nil {
		t.Fatalf("write video: %v", err)
	}

	resp, err := http.Get(fmt.Sprintf("%s/api/videos/%s/%s", baseURL, jobID, name))
	if err != nil {
		t.Fatalf("video request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if string(data) != "video-data" {
		t.Fatalf("unexpected body: %q", data)
	}

	traversal, err := http.Get(baseURL + "/api/videos/" + jobID + "/..%2Fsecret")
	if err != nil {
		t.Fatalf("traversal request: %v", err)
	}
	defer traversal.Body.Close()
	if traversal.StatusCode == http.StatusOK {
		t.Fatal("expected traversal attempt to be rejected")
	}
}
