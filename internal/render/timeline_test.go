package render

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"shortcast/internal/config"
	"shortcast/internal/services"
)

func testVideoConfig() config.Video {
	return config.Video{
		Width:         1080,
		Height:        1920,
		FPS:           30,
		Bitrate:       "2500k",
		WordsPerChunk: 6,
		WaveformBars:  40,
		SlideSeconds:  4.0,
	}
}

func solidImage(c color.RGBA, w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = 255
	}
	return img
}

func TestNewHighlightTimelineRejectsShortClip(t *testing.T) {
	_, err := NewHighlightTimeline(testVideoConfig(), HighlightOptions{
		Duration: 0.8,
		Title:    "Short",
		Text:     "too short to render",
	}, nil)
	if err == nil {
		t.Fatal("expected error for sub-second clip")
	}
	if !services.IsInputError(err) {
		t.Fatalf("expected input error classification, got %v", err)
	}
}

func TestNewHighlightTimelineLayerStack(t *testing.T) {
	tl, err := NewHighlightTimeline(testVideoConfig(), HighlightOptions{
		Duration: 20,
		Title:    "A Great Hook",
		Text:     "some words to show as subtitles over the clip runtime",
	}, nil)
	if err != nil {
		t.Fatalf("NewHighlightTimeline failed: %v", err)
	}
	if len(tl.Layers) == 0 {
		t.Fatal("expected layers")
	}
	if tl.Layers[0].Name() != "gradient" {
		t.Fatalf("expected gradient background, got %q", tl.Layers[0].Name())
	}
	names := map[string]bool{}
	for _, layer := range tl.Layers {
		names[layer.Name()] = true
	}
	for _, want := range []string{"decorations", "waveform", "title", "subtitle"} {
		if !names[want] {
			t.Fatalf("missing layer %q in stack", want)
		}
	}
}

func TestBackgroundImageTakesPriorityOverGradient(t *testing.T) {
	tl, err := NewHighlightTimeline(testVideoConfig(), HighlightOptions{
		Duration:   20,
		Text:       "subtitled words",
		Background: solidImage(color.RGBA{R: 200, G: 10, B: 10, A: 255}, 540, 960),
	}, nil)
	if err != nil {
		t.Fatalf("NewHighlightTimeline failed: %v", err)
	}
	if tl.Layers[0].Name() != "image" {
		t.Fatalf("expected image background, got %q", tl.Layers[0].Name())
	}
}

func TestTitleSkippedOnVeryShortClip(t *testing.T) {
	// 0.3 × 1.2s = 0.36s, below the half-second minimum.
	tl, err := NewHighlightTimeline(testVideoConfig(), HighlightOptions{
		Duration: 1.2,
		Title:    "Hook",
		Text:     "words",
	}, nil)
	if err != nil {
		t.Fatalf("NewHighlightTimeline failed: %v", err)
	}
	for _, layer := range tl.Layers {
		if layer.Name() == "title" {
			t.Fatal("title should be skipped on very short clips")
		}
	}
}

func TestTitleDuration(t *testing.T) {
	if got := TitleDuration(20); got != 3.0 {
		t.Fatalf("TitleDuration(20) = %g, want 3", got)
	}
	if got := TitleDuration(5); got != 1.5 {
		t.Fatalf("TitleDuration(5) = %g, want 1.5", got)
	}
}

func TestGradientDeterministicAndDriftIndependentOfDuration(t *testing.T) {
	short := NewGradientLayer(64, 128, 5)
	long := NewGradientLayer(64, 128, 500)

	a, _ := short.RenderFrame(1.25)
	b, _ := short.RenderFrame(1.25)
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Fatal("gradient frame not deterministic")
	}

	c, _ := long.RenderFrame(1.25)
	if !bytes.Equal(a.Pix, c.Pix) {
		t.Fatal("gradient phase must not depend on clip duration")
	}

	later, _ := short.RenderFrame(2.5)
	if bytes.Equal(a.Pix, later.Pix) {
		t.Fatal("gradient should drift over time")
	}
}

func TestCompositeCoversCanvas(t *testing.T) {
	tl := &Timeline{Width: 32, Height: 64, FPS: 30, Duration: 5}
	tl.Layers = append(tl.Layers, NewGradientLayer(32, 64, 5))

	frame := tl.Composite(2.0)
	if frame.Rect.Dx() != 32 || frame.Rect.Dy() != 64 {
		t.Fatalf("unexpected canvas size %v", frame.Rect)
	}
	for i := 3; i < len(frame.Pix); i += 4 {
		if frame.Pix[i] != 255 {
			t.Fatal("composite canvas must be fully opaque")
		}
	}
}

func TestFadeSeconds(t *testing.T) {
	if got := fadeSeconds(10); got != 0.5 {
		t.Fatalf("fadeSeconds(10) = %g, want 0.5", got)
	}
	if got := fadeSeconds(1.2); got != 0.3 {
		t.Fatalf("fadeSeconds(1.2) = %g, want 0.3", got)
	}
}

func TestKenBurnsZoomDirectionAlternates(t *testing.T) {
	src := solidImage(color.RGBA{R: 50, G: 100, B: 150, A: 255}, 300, 500)

	zoomIn := NewImageLayer(src, 120, 200, 10, 0)
	zoomOut := NewImageLayer(src, 120, 200, 10, 1)

	inStart, _ := zoomIn.RenderFrame(0)
	if inStart.Rect.Dx() != 120 || inStart.Rect.Dy() != 200 {
		t.Fatalf("frame not canvas sized: %v", inStart.Rect)
	}

	if zoomIn.zoomIn == zoomOut.zoomIn {
		t.Fatal("consecutive image indexes must alternate zoom direction")
	}
}

func TestSlideshowCoversAudioDuration(t *testing.T) {
	images := []image.Image{
		solidImage(color.RGBA{R: 255, A: 255}, 100, 180),
		solidImage(color.RGBA{G: 255, A: 255}, 100, 180),
	}
	tl, err := NewSlideshowTimeline(testVideoConfig(), images, 15.0)
	if err != nil {
		t.Fatalf("NewSlideshowTimeline failed: %v", err)
	}
	if tl.Duration != 15.0 {
		t.Fatalf("expected duration 15, got %g", tl.Duration)
	}

	// Every instant of the audio must be covered by at least one slide.
	for _, probe := range []float64{0, 3.9, 7.4, 11.2, 14.9} {
		covered := false
		for _, layer := range tl.Layers {
			if covers(layer, probe) {
				covered = true
				break
			}
		}
		if !covered {
			t.Fatalf("no slide covers t=%g", probe)
		}
	}
}

func TestSlideshowRequiresImages(t *testing.T) {
	if _, err := NewSlideshowTimeline(testVideoConfig(), nil, 15.0); err == nil {
		t.Fatal("expected error when no images supplied")
	}
}
