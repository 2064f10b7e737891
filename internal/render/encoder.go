package render

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"

	"shortcast/internal/logging"
	"shortcast/internal/services"
)

// Encoder streams composited frames to ffmpeg and muxes the audio segment.
type Encoder struct {
	ffmpeg  string
	bitrate string
	logger  *slog.Logger
}

// NewEncoder builds an Encoder around the given ffmpeg binary.
func NewEncoder(ffmpegPath, bitrate string, logger *slog.Logger) *Encoder {
	if strings.TrimSpace(ffmpegPath) == "" {
		ffmpegPath = "ffmpeg"
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Encoder{ffmpeg: ffmpegPath, bitrate: bitrate, logger: logger}
}

// fadeSeconds returns the global fade applied to both ends of the clip.
func fadeSeconds(duration float64) float64 {
	fade := duration / 4
	if fade > 0.5 {
		fade = 0.5
	}
	return fade
}

// Encode renders every timeline frame, pipes them to ffmpeg as raw RGBA,
// muxes audioPath, applies the global fade to video and audio, and writes
// outPath as H.264/AAC at the configured bitrate.
func (e *Encoder) Encode(ctx context.Context, tl *Timeline, audioPath, outPath string) error {
	frames := tl.FrameCount()
	if frames <= 0 {
		return services.Wrap(services.ErrValidation, "render", "encode", "timeline has no frames", nil)
	}

	fade := fadeSeconds(tl.Duration)
	fadeOutStart := tl.Duration - fade
	videoFilter := fmt.Sprintf("fade=t=in:st=0:d=%.3f,fade=t=out:st=%.3f:d=%.3f", fade, fadeOutStart, fade)
	audioFilter := fmt.Sprintf("afade=t=in:st=0:d=%.3f,afade=t=out:st=%.3f:d=%.3f", fade, fadeOutStart, fade)

	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-s", fmt.Sprintf("%dx%d", tl.Width, tl.Height),
		"-r", strconv.Itoa(tl.FPS),
		"-i", "-",
		"-i", audioPath,
		"-vf", videoFilter,
		"-af", audioFilter,
		"-c:v", "libx264",
		"-preset", "medium",
		"-b:v", e.bitrate,
		"-pix_fmt", "yuv420p",
		"-c:a", "aac",
		"-shortest",
		outPath,
	}

	cmd := exec.CommandContext(ctx, e.ffmpeg, args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "render", "encode", "open ffmpeg stdin", err)
	}
	var stderr strings.Builder
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return services.Wrap(services.ErrExternalTool, "render", "encode", "start ffmpeg", err)
	}

	e.logger.Debug("encoding clip",
		logging.Int("frames", frames),
		logging.String("output", outPath))

	writeErr := func() error {
		defer stdin.Close()
		step := 1.0 / float64(tl.FPS)
		for frame := 0; frame < frames; frame++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			canvas := tl.Composite(float64(frame) * step)
			if _, err := stdin.Write(canvas.Pix); err != nil {
				return fmt.Errorf("write frame %d: %w", frame, err)
			}
		}
		return nil
	}()

	waitErr := cmd.Wait()
	if waitErr != nil {
		detail := strings.TrimSpace(stderr.String())
		if len(detail) > 800 {
			detail = detail[len(detail)-800:]
		}
		return services.Wrap(services.ErrExternalTool, "render", "encode",
			fmt.Sprintf("ffmpeg failed: %s", detail), waitErr)
	}
	if writeErr != nil {
		return services.Wrap(services.ErrExternalTool, "render", "encode", "stream frames", writeErr)
	}
	return nil
}
