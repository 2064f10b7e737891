package render

import (
	"fmt"
	"image"
)

const (
	titleFontSize   = 80.0
	titleSideInset  = 100
	titleTopOffset  = 100
	titleFadeLength = 0.5
	titleMaxSeconds = 3.0
	titleShare      = 0.3
	titleMinSeconds = 0.5
)

// TitleLayer shows the hook text near the top of the canvas for the
// opening seconds of the clip, fading in and out over half a second.
type TitleLayer struct {
	rendered *image.RGBA
	width    int
	visible  float64
}

// TitleDuration returns how long the title stays on screen for a clip of
// the given duration; a result below the minimum means no title is shown.
func TitleDuration(duration float64) float64 {
	visible := titleShare * duration
	if visible > titleMaxSeconds {
		visible = titleMaxSeconds
	}
	return visible
}

// NewTitleLayer renders the title text once and wraps it in a layer. It
// returns an error when the clip is too short to show a title at all.
func NewTitleLayer(title string, canvasWidth int, duration float64) (*TitleLayer, error) {
	visible := TitleDuration(duration)
	if visible < titleMinSeconds {
		return nil, fmt.Errorf("title window %.2fs below minimum", visible)
	}
	rendered, err := renderText(title, canvasWidth-titleSideInset, titleFontSize)
	if err != nil {
		return nil, err
	}
	return &TitleLayer{rendered: rendered, width: canvasWidth, visible: visible}, nil
}

func (l *TitleLayer) Name() string { return "title" }

func (l *TitleLayer) Window() (float64, float64) { return 0, l.visible }

func (l *TitleLayer) RenderFrame(t float64) (*image.RGBA, image.Point) {
	frame := cloneRGBA(l.rendered)

	alpha := 1.0
	if t < titleFadeLength {
		alpha = t / titleFadeLength
	} else if t > l.visible-titleFadeLength {
		alpha = (l.visible - t) / titleFadeLength
	}
	scaleAlpha(frame, clampFloat(alpha, 0, 1))

	x := (l.width - frame.Rect.Dx()) / 2
	return frame, image.Point{X: x, Y: titleTopOffset}
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	out := image.NewRGBA(src.Rect)
	copy(out.Pix, src.Pix)
	return out
}
