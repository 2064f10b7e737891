package diffusion

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"shortcast/internal/config"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 40, G: 80, B: 160, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestBuildPromptMoodBuckets(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"This is an amazing breakthrough in science", "energetic and dynamic"},
		{"We have a serious problem with this", "serious and focused"},
		{"The future of technology and innovation", "futuristic and tech-inspired"},
		{"We talked about gardening", "engaging and contemporary"},
	}
	for _, tc := range cases {
		prompt := BuildPrompt(tc.text)
		if !strings.Contains(prompt, tc.want) {
			t.Errorf("BuildPrompt(%q) missing mood %q: %s", tc.text, tc.want, prompt)
		}
		if !strings.Contains(prompt, "no text or faces") {
			t.Errorf("prompt missing base suffix: %s", prompt)
		}
	}
}

func TestBuildPromptIncludesKeywords(t *testing.T) {
	prompt := BuildPrompt("Quantum computing reshapes encryption standards everywhere")
	if !strings.Contains(prompt, "inspired by themes of") {
		t.Fatalf("expected keyword theme in prompt: %s", prompt)
	}
	if !strings.Contains(prompt, "quantum") {
		t.Fatalf("expected 'quantum' keyword in prompt: %s", prompt)
	}
}

func TestLocalClientGeneratesImage(t *testing.T) {
	var gotReq txt2imgRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sdapi/v1/txt2img" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		encoded := base64.StdEncoding.EncodeToString(encodePNG(t, 64, 112))
		_ = json.NewEncoder(w).Encode(txt2imgResponse{Images: []string{encoded}})
	}))
	defer server.Close()

	client, err := NewLocalClient(config.Backgrounds{
		LocalURL: server.URL,
		Width:    512, Height: 904,
		Steps: 20, GuidanceScale: 7.5,
	})
	if err != nil {
		t.Fatalf("NewLocalClient: %v", err)
	}
	img, err := client.Generate(context.Background(), BuildPrompt("an exciting episode"), 7)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 112 {
		t.Fatalf("unexpected image bounds %v", img.Bounds())
	}
	if gotReq.Width != 512 || gotReq.Height != 904 {
		t.Fatalf("unexpected requested size %dx%d", gotReq.Width, gotReq.Height)
	}
	if gotReq.Seed != 7 {
		t.Fatalf("unexpected seed %d", gotReq.Seed)
	}
	if gotReq.NegativePrompt == "" {
		t.Fatal("expected negative prompt to be set")
	}
}

func TestLocalClientRejectsBadDimensions(t *testing.T) {
	if _, err := NewLocalClient(config.Backgrounds{LocalURL: "http://localhost:7860", Width: 500, Height: 904}); err == nil {
		t.Fatal("expected error for width not divisible by 8")
	}
}

func TestLocalClientNilWithoutURL(t *testing.T) {
	client, err := NewLocalClient(config.Backgrounds{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client != nil {
		t.Fatal("expected nil client without local URL")
	}
}

func TestRemoteClientDownloadsImage(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/v1/images/generations", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer remote-key" {
			t.Errorf("unexpected authorization header %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []any{map[string]any{"url": server.URL + "/image.png"}},
		})
	})
	mux.HandleFunc("/image.png", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(encodePNG(t, 32, 56))
	})

	client, err := NewRemoteClient(config.Backgrounds{
		RemoteAPIKey:  "remote-key",
		RemoteBaseURL: server.URL + "/v1",
		RemoteModel:   "dall-e-3",
		Width:         1024, Height: 1792,
	})
	if err != nil {
		t.Fatalf("NewRemoteClient: %v", err)
	}
	img, err := client.Generate(context.Background(), "abstract background", 0)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if img.Bounds().Dx() != 32 {
		t.Fatalf("unexpected image bounds %v", img.Bounds())
	}
}

func TestChainFallsThroughFailures(t *testing.T) {
	failing := sourceFunc{name: "broken", fn: func(context.Context, string, int64) (image.Image, error) {
		return nil, context.DeadlineExceeded
	}}
	working := sourceFunc{name: "working", fn: func(context.Context, string, int64) (image.Image, error) {
		return image.NewRGBA(image.Rect(0, 0, 8, 8)), nil
	}}

	chain := NewChain(nil, failing, working)
	img, err := chain.Generate(context.Background(), "prompt", 1)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if img == nil {
		t.Fatal("expected image from fallback source")
	}
}

func TestChainEmpty(t *testing.T) {
	chain := NewChain(nil)
	if !chain.Empty() {
		t.Fatal("expected empty chain")
	}
	if _, err := chain.Generate(context.Background(), "prompt", 0); err == nil {
		t.Fatal("expected error from empty chain")
	}
}

type sourceFunc struct {
	name string
	fn   func(context.Context, string, int64) (image.Image, error)
}

func (s sourceFunc) Name() string { return s.name }

func (s sourceFunc) Generate(ctx context.Context, prompt string, seed int64) (image.Image, error) {
	return s.fn(ctx, prompt, seed)
}
