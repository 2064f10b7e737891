package render

import (
	"image"
	"math"
)

const decorationCircles = 3

// DecorationLayer draws a few colored circles following closed periodic
// paths. Purely cosmetic; the renderer drops it on any construction
// failure.
type DecorationLayer struct {
	width    int
	height   int
	duration float64
}

// NewDecorationLayer builds the circle decoration overlay.
func NewDecorationLayer(width, height int, duration float64) *DecorationLayer {
	return &DecorationLayer{width: width, height: height, duration: duration}
}

func (d *DecorationLayer) Name() string { return "decorations" }

func (d *DecorationLayer) Window() (float64, float64) { return 0, d.duration }

func (d *DecorationLayer) RenderFrame(t float64) (*image.RGBA, image.Point) {
	img := image.NewRGBA(image.Rect(0, 0, d.width, d.height))

	for i := 0; i < decorationCircles; i++ {
		fi := float64(i)
		angle := math.Mod(t*0.5+fi*2.1, 2*math.Pi)
		cx := float64(d.width)/2 + 400*math.Cos(angle)
		cy := 300 + 200*math.Sin(angle*1.5)

		radius := 20 + 10*math.Sin(t*2+fi)
		radius = clampFloat(radius, 5, 50)

		intensity := 100 + 50*math.Sin(t*3+fi)
		intensity = clampFloat(intensity, 50, 150)

		r := uint8(float64(accentCyan.R) * intensity / 255)
		g := uint8(float64(accentCyan.G) * intensity / 255)
		b := uint8(float64(accentCyan.B) * intensity / 255)

		fillCircle(img, int(cx), int(cy), int(radius), r, g, b)
	}
	return img, image.Point{}
}

func fillCircle(img *image.RGBA, cx, cy, radius int, r, g, b uint8) {
	if radius <= 0 {
		return
	}
	rsq := radius * radius
	for y := cy - radius; y <= cy+radius; y++ {
		if y < 0 || y >= img.Rect.Dy() {
			continue
		}
		dy := y - cy
		for x := cx - radius; x <= cx+radius; x++ {
			if x < 0 || x >= img.Rect.Dx() {
				continue
			}
			dx := x - cx
			if dx*dx+dy*dy > rsq {
				continue
			}
			i := img.PixOffset(x, y)
			img.Pix[i] = r
			img.Pix[i+1] = g
			img.Pix[i+2] = b
			img.Pix[i+3] = 255
		}
	}
}
