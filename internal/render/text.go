package render

import (
	"fmt"
	"image"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const textStrokeWidth = 3

// newFace builds a font face at the requested point size from the bundled
// bold font, so rendering never depends on system font paths.
func newFace(size float64) (font.Face, error) {
	parsed, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("build font face: %w", err)
	}
	return face, nil
}

// renderText draws wrapped, centered text with a dark outline onto a
// transparent buffer of the given width. The buffer height grows with the
// wrapped line count.
func renderText(text string, width int, size float64) (*image.RGBA, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("render text: empty string")
	}
	face, err := newFace(size)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	maxLineWidth := fixed.I(width - 2*textStrokeWidth)
	lines := wrapText(face, text, maxLineWidth)

	metrics := face.Metrics()
	lineHeight := metrics.Height.Ceil() + 10
	imgHeight := len(lines)*lineHeight + 20

	img := image.NewRGBA(image.Rect(0, 0, width, imgHeight))

	strokeSrc := image.NewUniform(textStroke)
	fillSrc := image.NewUniform(textWhite)

	y := 10 + metrics.Ascent.Ceil()
	for _, line := range lines {
		lineWidth := font.MeasureString(face, line).Ceil()
		x := (width - lineWidth) / 2

		drawer := font.Drawer{Dst: img, Face: face}
		for dx := -textStrokeWidth; dx <= textStrokeWidth; dx += textStrokeWidth {
			for dy := -textStrokeWidth; dy <= textStrokeWidth; dy += textStrokeWidth {
				if dx == 0 && dy == 0 {
					continue
				}
				drawer.Src = strokeSrc
				drawer.Dot = fixed.P(x+dx, y+dy)
				drawer.DrawString(line)
			}
		}
		drawer.Src = fillSrc
		drawer.Dot = fixed.P(x, y)
		drawer.DrawString(line)

		y += lineHeight
	}
	return img, nil
}

// wrapText greedily packs words into lines no wider than maxWidth. A word
// wider than the limit gets its own line rather than being split.
func wrapText(face font.Face, text string, maxWidth fixed.Int26_6) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if font.MeasureString(face, candidate) <= maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	return append(lines, current)
}
