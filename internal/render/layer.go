package render

import (
	"image"
	"image/color"
)

// Layer is a time-parameterized image source. RenderFrame must be a pure
// function of t and construction parameters; the returned buffer is owned
// by the caller and the point is the layer's top-left position on the
// canvas. A layer is only sampled for t inside its window.
type Layer interface {
	Name() string
	Window() (start, end float64)
	RenderFrame(t float64) (*image.RGBA, image.Point)
}

// Palette used across all built-in layers.
var (
	gradientTop    = color.RGBA{R: 59, G: 130, B: 246, A: 255}
	gradientBottom = color.RGBA{R: 147, G: 51, B: 234, A: 255}
	textWhite      = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	textStroke     = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	accentCyan     = color.RGBA{R: 34, G: 211, B: 238, A: 255}
)

// covers reports whether a layer window contains t.
func covers(layer Layer, t float64) bool {
	start, end := layer.Window()
	return t >= start && t < end
}

// blendOver alpha-composites src over dst at the given offset. Pixels
// follow image.RGBA's premultiplied-alpha convention.
func blendOver(dst *image.RGBA, src *image.RGBA, at image.Point) {
	bounds := src.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		dy := at.Y + y - bounds.Min.Y
		if dy < 0 || dy >= dst.Rect.Dy() {
			continue
		}
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			dx := at.X + x - bounds.Min.X
			if dx < 0 || dx >= dst.Rect.Dx() {
				continue
			}
			si := src.PixOffset(x, y)
			alpha := uint32(src.Pix[si+3])
			if alpha == 0 {
				continue
			}
			di := dst.PixOffset(dx, dy)
			if alpha == 255 {
				copy(dst.Pix[di:di+4], src.Pix[si:si+4])
				continue
			}
			inv := 255 - alpha
			for c := 0; c < 4; c++ {
				dst.Pix[di+c] = uint8(uint32(src.Pix[si+c]) + uint32(dst.Pix[di+c])*inv/255)
			}
		}
	}
}

// scaleAlpha fades a premultiplied-alpha image by factor in [0, 1].
func scaleAlpha(img *image.RGBA, factor float64) {
	if factor >= 1 {
		return
	}
	if factor < 0 {
		factor = 0
	}
	scaled := uint32(factor * 256)
	for i := 0; i < len(img.Pix); i++ {
		img.Pix[i] = uint8(uint32(img.Pix[i]) * scaled / 256)
	}
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
