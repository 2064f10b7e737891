package main

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"shortcast/internal/logging"
	"shortcast/internal/media/ffprobe"
	"shortcast/internal/render"
)

func newRenderSlideshowCommand(ctx *commandContext) *cobra.Command {
	var audioPath string
	var outPath string

	cmd := &cobra.Command{
		Use:   "render-slideshow <image>...",
		Short: "Render a Ken-Burns slideshow over an audio track",
		Long: "Sequences the given images over the audio track: each image holds for the " +
			"configured slide length with a slow zoom, consecutive slides cross-fade, and " +
			"the sequence loops until the audio ends.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if strings.TrimSpace(audioPath) == "" {
				return fmt.Errorf("--audio is required")
			}
			audio, err := filepath.Abs(audioPath)
			if err != nil {
				return fmt.Errorf("resolve audio path: %w", err)
			}
			if strings.TrimSpace(outPath) == "" {
				outPath = "slideshow.mp4"
			}

			images := make([]image.Image, 0, len(args))
			for _, arg := range args {
				img, err := loadImage(arg)
				if err != nil {
					return err
				}
				images = append(images, img)
			}

			probe, err := ffprobe.Inspect(cmd.Context(), cfg.FFprobeBinary(), audio)
			if err != nil {
				return fmt.Errorf("probe audio: %w", err)
			}
			duration := probe.DurationSeconds()

			tl, err := render.NewSlideshowTimeline(cfg.Video, images, duration)
			if err != nil {
				return err
			}

			logger, err := logging.New(logging.Options{Level: cfg.Logging.Level, Format: "console"})
			if err != nil {
				return err
			}
			encoder := render.NewEncoder(cfg.FFmpegBinary(), cfg.Video.Bitrate, logger)
			if err := encoder.Encode(cmd.Context(), tl, audio, outPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rendered %d slide(s) over %.1fs of audio to %s\n",
				len(images), duration, outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&audioPath, "audio", "a", "", "Audio track to score the slideshow with")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output video path (default slideshow.mp4)")
	return cmd
}

func loadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image %s: %w", path, err)
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	return img, nil
}
