package render

import (
	"image"
	"math"
)

// gradientDriftRate is how fast the gradient phase moves, in canvas rows
// per second. The drift period depends only on canvas height, never on
// clip duration.
const gradientDriftRate = 60.0

// GradientLayer fills the whole canvas with a two-color vertical gradient
// whose phase drifts continuously with time.
type GradientLayer struct {
	width    int
	height   int
	duration float64
}

// NewGradientLayer builds the default animated background.
func NewGradientLayer(width, height int, duration float64) *GradientLayer {
	return &GradientLayer{width: width, height: height, duration: duration}
}

func (g *GradientLayer) Name() string { return "gradient" }

func (g *GradientLayer) Window() (float64, float64) { return 0, g.duration }

func (g *GradientLayer) RenderFrame(t float64) (*image.RGBA, image.Point) {
	img := image.NewRGBA(image.Rect(0, 0, g.width, g.height))
	period := float64(g.height * 2)
	offset := math.Mod(t*gradientDriftRate, period)

	for y := 0; y < g.height; y++ {
		progress := math.Mod(float64(y)+offset, period) / period
		progress = clampFloat(progress, 0, 1)

		r := uint8(float64(gradientTop.R) + (float64(gradientBottom.R)-float64(gradientTop.R))*progress)
		gc := uint8(float64(gradientTop.G) + (float64(gradientBottom.G)-float64(gradientTop.G))*progress)
		b := uint8(float64(gradientTop.B) + (float64(gradientBottom.B)-float64(gradientTop.B))*progress)

		rowStart := img.PixOffset(0, y)
		for x := 0; x < g.width; x++ {
			i := rowStart + x*4
			img.Pix[i] = r
			img.Pix[i+1] = gc
			img.Pix[i+2] = b
			img.Pix[i+3] = 255
		}
	}
	return img, image.Point{}
}
