package diffusion

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	_ "image/jpeg"
	_ "image/png"

	"shortcast/internal/config"
)

const (
	defaultImageTimeout  = 120 * time.Second
	negativePrompt       = "blurry, bad quality, distorted, ugly, low resolution"
	defaultSteps         = 20
	defaultGuidanceScale = 7.5
)

// LocalClient talks to a Stable Diffusion txt2img HTTP server
// (AUTOMATIC1111-compatible API).
type LocalClient struct {
	endpoint   string
	width      int
	height     int
	steps      int
	guidance   float64
	httpClient *http.Client
}

// NewLocalClient returns a local diffusion client, or nil when no local
// URL is configured. Width and height must be divisible by 8.
func NewLocalClient(cfg config.Backgrounds) (*LocalClient, error) {
	base := strings.TrimSpace(cfg.LocalURL)
	if base == "" {
		return nil, nil
	}
	if cfg.Width%8 != 0 || cfg.Height%8 != 0 {
		return nil, fmt.Errorf("diffusion local: dimensions %dx%d must be divisible by 8", cfg.Width, cfg.Height)
	}
	endpoint, err := url.JoinPath(base, "/sdapi/v1/txt2img")
	if err != nil {
		return nil, fmt.Errorf("diffusion local: build endpoint: %w", err)
	}
	timeout := defaultImageTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	steps := cfg.Steps
	if steps <= 0 {
		steps = defaultSteps
	}
	guidance := cfg.GuidanceScale
	if guidance <= 0 {
		guidance = defaultGuidanceScale
	}
	return &LocalClient{
		endpoint:   endpoint,
		width:      cfg.Width,
		height:     cfg.Height,
		steps:      steps,
		guidance:   guidance,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Name implements ImageSource.
func (c *LocalClient) Name() string { return "stable-diffusion-local" }

type txt2imgRequest struct {
	Prompt         string  `json:"prompt"`
	NegativePrompt string  `json:"negative_prompt"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	Steps          int     `json:"steps"`
	CFGScale       float64 `json:"cfg_scale"`
	Seed           int64   `json:"seed"`
	BatchSize      int     `json:"batch_size"`
}

type txt2imgResponse struct {
	Images []string `json:"images"`
}

// Generate implements ImageSource via the txt2img endpoint. The reply
// carries base64-encoded PNG data.
func (c *LocalClient) Generate(ctx context.Context, prompt string, seed int64) (image.Image, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, errors.New("diffusion local: prompt required")
	}
	payload := txt2imgRequest{
		Prompt:         prompt,
		NegativePrompt: negativePrompt,
		Width:          c.width,
		Height:         c.height,
		Steps:          c.steps,
		CFGScale:       c.guidance,
		Seed:           seed,
		BatchSize:      1,
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("diffusion local: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("diffusion local: new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("diffusion local: http error: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("diffusion local: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("diffusion local: http %d: %s", resp.StatusCode, snippet(body))
	}
	var parsed txt2imgResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("diffusion local: decode response: %w", err)
	}
	if len(parsed.Images) == 0 || strings.TrimSpace(parsed.Images[0]) == "" {
		return nil, errors.New("diffusion local: response carried no images")
	}
	raw, err := base64.StdEncoding.DecodeString(parsed.Images[0])
	if err != nil {
		return nil, fmt.Errorf("diffusion local: decode image data: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("diffusion local: decode image: %w", err)
	}
	return img, nil
}

func snippet(body []byte) string {
	text := strings.Join(strings.Fields(string(body)), " ")
	if len(text) > 200 {
		text = text[:200] + "..."
	}
	return text
}
