package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// normalize expands paths, trims string fields, and applies environment
// overrides. Called once during Load; the process never re-reads the
// environment afterwards.
func (c *Config) normalize() error {
	var err error
	if c.Paths.UploadDir, err = expandPath(c.Paths.UploadDir); err != nil {
		return err
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return err
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return err
	}

	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	c.Transcription.Model = strings.TrimSpace(c.Transcription.Model)
	c.Transcription.VADMethod = strings.ToLower(strings.TrimSpace(c.Transcription.VADMethod))
	c.Transcription.Language = strings.TrimSpace(c.Transcription.Language)
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Hooks.APIKey = strings.TrimSpace(c.Hooks.APIKey)
	c.Hooks.BaseURL = strings.TrimSpace(c.Hooks.BaseURL)
	c.Hooks.Model = strings.TrimSpace(c.Hooks.Model)
	c.Backgrounds.LocalURL = strings.TrimSpace(c.Backgrounds.LocalURL)
	c.Backgrounds.RemoteAPIKey = strings.TrimSpace(c.Backgrounds.RemoteAPIKey)
	c.Backgrounds.RemoteBaseURL = strings.TrimSpace(c.Backgrounds.RemoteBaseURL)
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)

	c.applyEnvOverrides()

	if c.Video.Bitrate == "" {
		c.Video.Bitrate = defaultBitrate
	}
	if c.Backgrounds.Variants <= 0 {
		c.Backgrounds.Variants = defaultBackgroundVariants
	}
	return nil
}

// applyEnvOverrides reads the SHORTCAST_* environment toggles. These are the
// only knobs read from the environment; everything else lives in the TOML
// file.
func (c *Config) applyEnvOverrides() {
	if v, ok := lookupBool("SHORTCAST_USE_HOOK"); ok {
		c.Hooks.Enabled = v
	}
	if v, ok := lookupBool("SHORTCAST_USE_BACKGROUND"); ok {
		c.Backgrounds.Enabled = v
	}
	if v := strings.TrimSpace(os.Getenv("SHORTCAST_HOOK_API_KEY")); v != "" {
		c.Hooks.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("SHORTCAST_IMAGE_API_KEY")); v != "" {
		c.Backgrounds.RemoteAPIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("SHORTCAST_SD_URL")); v != "" {
		c.Backgrounds.LocalURL = v
	}
	if v := strings.TrimSpace(os.Getenv("SHORTCAST_BACKGROUND_SIZE")); v != "" {
		if w, h, err := parseSize(v); err == nil {
			c.Backgrounds.Width, c.Backgrounds.Height = w, h
		}
	}
	if v := strings.TrimSpace(os.Getenv("SHORTCAST_BACKGROUND_STEPS")); v != "" {
		if steps, err := strconv.Atoi(v); err == nil && steps > 0 {
			c.Backgrounds.Steps = steps
		}
	}
}

func lookupBool(key string) (bool, bool) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return false, false
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	default:
		return false, false
	}
}

func parseSize(value string) (int, int, error) {
	parts := strings.SplitN(strings.ToLower(value), "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("size %q: want WIDTHxHEIGHT", value)
	}
	w, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("size %q: %w", value, err)
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("size %q: %w", value, err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("size %q: dimensions must be positive", value)
	}
	return w, h, nil
}
