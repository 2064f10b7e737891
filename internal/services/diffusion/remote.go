package diffusion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"shortcast/internal/config"
)

const defaultRemoteBaseURL = "https://api.openai.com/v1"

// RemoteClient talks to an OpenAI-style image generation endpoint. The
// reply carries a URL which is downloaded separately.
type RemoteClient struct {
	endpoint   string
	apiKey     string
	model      string
	size       string
	httpClient *http.Client
}

// NewRemoteClient returns a remote diffusion client, or nil when no API
// key is configured.
func NewRemoteClient(cfg config.Backgrounds) (*RemoteClient, error) {
	apiKey := strings.TrimSpace(cfg.RemoteAPIKey)
	if apiKey == "" {
		return nil, nil
	}
	base := strings.TrimSpace(cfg.RemoteBaseURL)
	if base == "" {
		base = defaultRemoteBaseURL
	}
	endpoint, err := url.JoinPath(base, "/images/generations")
	if err != nil {
		return nil, fmt.Errorf("diffusion remote: build endpoint: %w", err)
	}
	timeout := defaultImageTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	return &RemoteClient{
		endpoint:   endpoint,
		apiKey:     apiKey,
		model:      strings.TrimSpace(cfg.RemoteModel),
		size:       fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Name implements ImageSource.
func (c *RemoteClient) Name() string { return "images-api-remote" }

type imageGenerationRequest struct {
	Model  string `json:"model,omitempty"`
	Prompt string `json:"prompt"`
	Size   string `json:"size"`
	N      int    `json:"n"`
}

type imageGenerationResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate implements ImageSource. The remote API picks its own seed, so
// the supplied one is ignored.
func (c *RemoteClient) Generate(ctx context.Context, prompt string, _ int64) (image.Image, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, errors.New("diffusion remote: prompt required")
	}
	payload := imageGenerationRequest{
		Model:  c.model,
		Prompt: prompt,
		Size:   c.size,
		N:      1,
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("diffusion remote: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("diffusion remote: new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("diffusion remote: http error: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("diffusion remote: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("diffusion remote: http %d: %s", resp.StatusCode, snippet(body))
	}
	var parsed imageGenerationResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("diffusion remote: decode response: %w", err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("diffusion remote: api error: %s", strings.TrimSpace(parsed.Error.Message))
	}
	if len(parsed.Data) == 0 || strings.TrimSpace(parsed.Data[0].URL) == "" {
		return nil, errors.New("diffusion remote: response carried no image URL")
	}
	return c.download(ctx, parsed.Data[0].URL)
}

func (c *RemoteClient) download(ctx context.Context, imageURL string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("diffusion remote: download request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("diffusion remote: download: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("diffusion remote: download http %d", resp.StatusCode)
	}
	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("diffusion remote: decode image: %w", err)
	}
	return img, nil
}
