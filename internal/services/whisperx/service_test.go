package whisperx

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"shortcast/internal/config"
)

func TestBuildArgsCPUDefaults(t *testing.T) {
	svc := NewService(config.Transcription{Model: "base", Language: "en"}, "")
	args := svc.buildArgs("/tmp/audio.wav", "/tmp/out")

	joined := strings.Join(args, " ")
	for _, want := range []string{
		"--index-url https://pypi.org/simple",
		"whisperx /tmp/audio.wav",
		"--model base",
		"--vad_method silero",
		"--language en",
		"--device cpu --compute_type float32",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("args missing %q: %s", want, joined)
		}
	}
}

func TestBuildArgsCUDAAndHFToken(t *testing.T) {
	svc := NewService(config.Transcription{
		CUDAEnabled: true,
		VADMethod:   VADMethodPyannote,
		HFToken:     "hf_secret",
	}, "")
	args := svc.buildArgs("in.wav", "out")

	joined := strings.Join(args, " ")
	for _, want := range []string{
		"--index-url https://download.pytorch.org/whl/cu128",
		"--vad_method pyannote",
		"--hf_token hf_secret",
		"--device cuda",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("args missing %q: %s", want, joined)
		}
	}
}

func TestTranscribeParsesOutput(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "episode.wav")
	if err := os.WriteFile(source, []byte("wav"), 0o644); err != nil {
		t.Fatal(err)
	}

	payload := `{
		"language": "en",
		"segments": [
			{"text": " Hello there. ", "start": 0, "end": 4.5, "avg_logprob": -0.2},
			{"text": "Second part.", "start": 4.5, "end": 9,
			 "words": [{"word": "Second", "start": 4.5, "end": 5, "score": 0.9},
			           {"word": "part.", "start": 5, "end": 6, "score": 0.7}]},
			{"text": "   ", "start": 9, "end": 10}
		]
	}`

	svc := NewService(config.Transcription{Model: "base"}, "uvx")
	svc.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		// Stand in for WhisperX: drop the JSON output where the real tool would.
		return os.WriteFile(filepath.Join(dir, "episode.json"), []byte(payload), 0o644)
	})

	transcript, err := svc.Transcribe(context.Background(), source, dir)
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if transcript.Language != "en" {
		t.Fatalf("unexpected language %q", transcript.Language)
	}
	if len(transcript.Segments) != 2 {
		t.Fatalf("expected blank segment dropped, got %d segments", len(transcript.Segments))
	}
	if transcript.Text != "Hello there. Second part." {
		t.Fatalf("unexpected text %q", transcript.Text)
	}
	if transcript.Segments[0].Confidence != -0.2 {
		t.Fatalf("expected avg_logprob confidence, got %g", transcript.Segments[0].Confidence)
	}
	if got := transcript.Segments[1].Confidence; got < 0.79 || got > 0.81 {
		t.Fatalf("expected mean word score confidence, got %g", got)
	}
}

func TestTranscribeFailsWhenToolFails(t *testing.T) {
	svc := NewService(config.Transcription{}, "uvx")
	svc.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		return os.ErrPermission
	})
	if _, err := svc.Transcribe(context.Background(), "in.wav", t.TempDir()); err == nil {
		t.Fatal("expected transcription failure to propagate")
	}
}
