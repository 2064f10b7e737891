package render

import (
	"image"
	"math"
)

const (
	waveformStripHeight = 200
	waveformSideMargin  = 100
	waveformBaseHeight  = 80.0
	waveformTimeRate    = 3.0
	waveformBarPhase    = 0.5
)

// WaveformLayer renders a row of vertical bars whose heights oscillate
// with time. The motion is a stylized animation driven purely by t, not by
// the real audio amplitude.
type WaveformLayer struct {
	width    int
	bars     int
	duration float64
	position image.Point
}

// NewWaveformLayer builds the bar animation strip, vertically centered at
// 40% of the canvas height.
func NewWaveformLayer(width, height, bars int, duration float64) *WaveformLayer {
	return &WaveformLayer{
		width:    width,
		bars:     bars,
		duration: duration,
		position: image.Point{X: 0, Y: int(float64(height)*0.4) - waveformStripHeight/2},
	}
}

func (w *WaveformLayer) Name() string { return "waveform" }

func (w *WaveformLayer) Window() (float64, float64) { return 0, w.duration }

func (w *WaveformLayer) RenderFrame(t float64) (*image.RGBA, image.Point) {
	img := image.NewRGBA(image.Rect(0, 0, w.width, waveformStripHeight))

	barWidth := (w.width - 2*waveformSideMargin) / w.bars
	if barWidth < 1 {
		barWidth = 1
	}
	centerY := waveformStripHeight / 2

	for i := 0; i < w.bars; i++ {
		phase := t*waveformTimeRate + float64(i)*waveformBarPhase
		variation := math.Sin(phase)*0.3 + 0.7
		barHeight := int(waveformBaseHeight * variation)

		x := waveformSideMargin + i*barWidth
		yTop := centerY - barHeight/2
		yBottom := centerY + barHeight/2

		intensity := variation
		r := uint8(float64(accentCyan.R) * intensity)
		g := uint8(float64(accentCyan.G) * intensity)
		b := uint8(float64(accentCyan.B) * intensity)

		fillRect(img, x, yTop, x+barWidth-2, yBottom, r, g, b)
	}
	return img, w.position
}

func fillRect(img *image.RGBA, x0, y0, x1, y1 int, r, g, b uint8) {
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > img.Rect.Dx() {
		x1 = img.Rect.Dx()
	}
	if y1 > img.Rect.Dy() {
		y1 = img.Rect.Dy()
	}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			i := img.PixOffset(x, y)
			img.Pix[i] = r
			img.Pix[i+1] = g
			img.Pix[i+2] = b
			img.Pix[i+3] = 255
		}
	}
}
