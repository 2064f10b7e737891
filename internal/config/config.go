package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and bind address configuration.
type Paths struct {
	UploadDir string `toml:"upload_dir"`
	OutputDir string `toml:"output_dir"`
	LogDir    string `toml:"log_dir"`
	APIBind   string `toml:"api_bind"`
}

// Transcription contains WhisperX speech-to-text settings.
type Transcription struct {
	Model       string `toml:"model"`
	CUDAEnabled bool   `toml:"cuda_enabled"`
	VADMethod   string `toml:"vad_method"`
	Language    string `toml:"language"`
	HFToken     string `toml:"hf_token"`
}

// Highlights contains highlight selection settings.
type Highlights struct {
	Count       int     `toml:"count"`
	MinDuration float64 `toml:"min_duration"`
	MaxDuration float64 `toml:"max_duration"`
	// AllowOverlap permits returned highlight windows to overlap in time.
	// Off by default: overlapping clips waste the viewer's feed.
	AllowOverlap bool `toml:"allow_overlap"`
}

// Video contains canvas and encoding settings for rendered clips.
type Video struct {
	Width         int     `toml:"width"`
	Height        int     `toml:"height"`
	FPS           int     `toml:"fps"`
	Bitrate       string  `toml:"bitrate"`
	WordsPerChunk int     `toml:"words_per_chunk"`
	WaveformBars  int     `toml:"waveform_bars"`
	SlideSeconds  float64 `toml:"slide_seconds"`
}

// Hooks contains LLM settings for short-hook title generation.
type Hooks struct {
	Enabled        bool   `toml:"enabled"`
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	Model          string `toml:"model"`
	Referer        string `toml:"referer"`
	Title          string `toml:"title"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Backgrounds contains settings for generated background images.
type Backgrounds struct {
	Enabled  bool `toml:"enabled"`
	Variants int  `toml:"variants"`

	// Local Stable Diffusion HTTP server (txt2img API).
	LocalURL string `toml:"local_url"`

	// Remote image generation endpoint (OpenAI-style images API).
	RemoteAPIKey  string `toml:"remote_api_key"`
	RemoteBaseURL string `toml:"remote_base_url"`
	RemoteModel   string `toml:"remote_model"`

	Width          int     `toml:"width"`
	Height         int     `toml:"height"`
	Steps          int     `toml:"steps"`
	GuidanceScale  float64 `toml:"guidance_scale"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
}

// Workflow contains daemon timing and interval settings.
type Workflow struct {
	QueuePollInterval  int `toml:"queue_poll_interval"`
	ErrorRetryInterval int `toml:"error_retry_interval"`
	HeartbeatInterval  int `toml:"heartbeat_interval"`
	HeartbeatTimeout   int `toml:"heartbeat_timeout"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Notifications contains configuration for ntfy push notifications.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
	Transcription  bool   `toml:"transcription"`
	Highlights     bool   `toml:"highlights"`
	Videos         bool   `toml:"videos"`
	Errors         bool   `toml:"errors"`
}

// Config encapsulates all configuration values for shortcast.
//
// Configuration sections by subsystem:
//   - Paths: upload/output/log directories and API bind address
//   - Transcription: WhisperX model and runtime options
//   - Highlights: selection count, duration window, overlap policy
//   - Video: canvas, frame rate, encode bitrate, subtitle chunking
//   - Hooks: LLM hook-title generation
//   - Backgrounds: diffusion background image generation
//   - Workflow: daemon polling intervals and heartbeats
//   - Logging: log format and level
//   - Notifications: ntfy push notification settings
type Config struct {
	Paths         Paths         `toml:"paths"`
	Transcription Transcription `toml:"transcription"`
	Highlights    Highlights    `toml:"highlights"`
	Video         Video         `toml:"video"`
	Hooks         Hooks         `toml:"hooks"`
	Backgrounds   Backgrounds   `toml:"backgrounds"`
	Workflow      Workflow      `toml:"workflow"`
	Logging       Logging       `toml:"logging"`
	Notifications Notifications `toml:"notifications"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/shortcast/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded, environment overrides applied, and
// invariants validated.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	// .env is optional; secrets and feature toggles may live there instead
	// of the TOML file.
	_ = godotenv.Load()

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("shortcast.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates required directories for daemon operation.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.UploadDir, c.Paths.OutputDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// JobUploadDir returns the upload directory for a given job.
func (c *Config) JobUploadDir(jobID string) string {
	return filepath.Join(c.Paths.UploadDir, jobID)
}

// JobOutputDir returns the output directory for a given job.
func (c *Config) JobOutputDir(jobID string) string {
	return filepath.Join(c.Paths.OutputDir, jobID)
}

// FFmpegBinary returns the ffmpeg executable name used for media processing.
func (c *Config) FFmpegBinary() string {
	return "ffmpeg"
}

// FFprobeBinary returns the ffprobe executable name used for media inspection.
func (c *Config) FFprobeBinary() string {
	return "ffprobe"
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
