package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks configuration invariants. It returns the first violation
// found so the daemon refuses to start on a broken config instead of failing
// mid-job.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Paths.UploadDir) == "" {
		return errors.New("paths.upload_dir is required")
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		return errors.New("paths.output_dir is required")
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return errors.New("paths.log_dir is required")
	}

	if c.Highlights.Count <= 0 {
		return fmt.Errorf("highlights.count must be positive, got %d", c.Highlights.Count)
	}
	if c.Highlights.MinDuration <= 0 {
		return fmt.Errorf("highlights.min_duration must be positive, got %g", c.Highlights.MinDuration)
	}
	if c.Highlights.MaxDuration < c.Highlights.MinDuration {
		return fmt.Errorf("highlights.max_duration %g is below min_duration %g",
			c.Highlights.MaxDuration, c.Highlights.MinDuration)
	}

	if c.Video.Width <= 0 || c.Video.Height <= 0 {
		return fmt.Errorf("video canvas %dx%d is invalid", c.Video.Width, c.Video.Height)
	}
	if c.Video.FPS <= 0 {
		return fmt.Errorf("video.fps must be positive, got %d", c.Video.FPS)
	}
	if c.Video.WordsPerChunk <= 0 {
		return fmt.Errorf("video.words_per_chunk must be positive, got %d", c.Video.WordsPerChunk)
	}
	if c.Video.WaveformBars <= 0 {
		return fmt.Errorf("video.waveform_bars must be positive, got %d", c.Video.WaveformBars)
	}
	if c.Video.SlideSeconds <= 0 {
		return fmt.Errorf("video.slide_seconds must be positive, got %g", c.Video.SlideSeconds)
	}

	switch c.Transcription.VADMethod {
	case "", "silero", "pyannote":
	default:
		return fmt.Errorf("transcription.vad_method %q is not supported", c.Transcription.VADMethod)
	}

	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format %q is not supported", c.Logging.Format)
	}

	if c.Hooks.Enabled && c.Hooks.APIKey == "" {
		return errors.New("hooks.enabled requires hooks.api_key (or SHORTCAST_HOOK_API_KEY)")
	}
	if c.Backgrounds.Enabled && c.Backgrounds.LocalURL == "" && c.Backgrounds.RemoteAPIKey == "" {
		return errors.New("backgrounds.enabled requires a local_url or remote_api_key")
	}
	if c.Backgrounds.Width%8 != 0 || c.Backgrounds.Height%8 != 0 {
		return fmt.Errorf("backgrounds size %dx%d must be divisible by 8",
			c.Backgrounds.Width, c.Backgrounds.Height)
	}

	if c.Workflow.QueuePollInterval <= 0 {
		return fmt.Errorf("workflow.queue_poll_interval must be positive, got %d", c.Workflow.QueuePollInterval)
	}
	if c.Workflow.HeartbeatInterval <= 0 || c.Workflow.HeartbeatTimeout <= c.Workflow.HeartbeatInterval {
		return fmt.Errorf("workflow heartbeat interval %d / timeout %d are inconsistent",
			c.Workflow.HeartbeatInterval, c.Workflow.HeartbeatTimeout)
	}
	return nil
}
