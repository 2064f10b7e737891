package render

import (
	"image"

	"shortcast/internal/config"
	"shortcast/internal/services"
)

// slideshowCrossFade is the overlap between consecutive slides.
const slideshowCrossFade = 0.5

// NewSlideshowTimeline sequences the supplied images over an audio track:
// each image holds for the configured slide length with the Ken-Burns
// zoom (direction alternating per slide), consecutive slides cross-fade,
// and the sequence loops over the image list until the audio runs out.
func NewSlideshowTimeline(cfg config.Video, images []image.Image, audioDuration float64) (*Timeline, error) {
	if len(images) == 0 {
		return nil, services.Wrap(services.ErrValidation, "render", "build slideshow", "no images supplied", nil)
	}
	if audioDuration < MinClipSeconds {
		return nil, services.Wrap(services.ErrValidation, "render", "build slideshow", "audio too short", nil)
	}

	slide := cfg.SlideSeconds
	if slide <= slideshowCrossFade {
		slide = slideshowCrossFade * 2
	}

	tl := &Timeline{
		Width:    cfg.Width,
		Height:   cfg.Height,
		FPS:      cfg.FPS,
		Duration: audioDuration,
	}

	// Later slides sit above earlier ones, so a slide's fade-in doubles as
	// the cross-fade over its predecessor.
	stride := slide - slideshowCrossFade
	for k := 0; ; k++ {
		start := float64(k) * stride
		if start >= audioDuration {
			break
		}
		end := start + slide
		if end > audioDuration {
			end = audioDuration
		}
		fadeIn := slideshowCrossFade
		if k == 0 {
			fadeIn = 0
		}
		img := images[k%len(images)]
		tl.Layers = append(tl.Layers, newImageLayerAt(img, cfg.Width, cfg.Height, start, end, k, fadeIn, 0))
	}

	return tl, nil
}
