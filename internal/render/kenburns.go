package render

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// kenBurnsDelta is the total zoom change applied across an image layer's
// lifetime.
const kenBurnsDelta = 0.1

// ImageLayer renders a still image stretched to the canvas with a slow
// linear zoom (the Ken-Burns effect). Zoom direction alternates by image
// index so consecutive slides do not all move the same way.
type ImageLayer struct {
	source  *image.RGBA
	width   int
	height  int
	start   float64
	end     float64
	zoomIn  bool
	fadeIn  float64
	fadeOut float64
}

// NewImageLayer builds a full-window background from a supplied image.
// index selects the zoom direction: even zooms in, odd zooms out.
func NewImageLayer(src image.Image, width, height int, duration float64, index int) *ImageLayer {
	return newImageLayerAt(src, width, height, 0, duration, index, 0, 0)
}

func newImageLayerAt(src image.Image, width, height int, start, end float64, index int, fadeIn, fadeOut float64) *ImageLayer {
	return &ImageLayer{
		source:  cropToAspect(src, width, height),
		width:   width,
		height:  height,
		start:   start,
		end:     end,
		zoomIn:  index%2 == 0,
		fadeIn:  fadeIn,
		fadeOut: fadeOut,
	}
}

func (l *ImageLayer) Name() string { return "image" }

func (l *ImageLayer) Window() (float64, float64) { return l.start, l.end }

func (l *ImageLayer) RenderFrame(t float64) (*image.RGBA, image.Point) {
	span := l.end - l.start
	progress := 0.0
	if span > 0 {
		progress = clampFloat((t-l.start)/span, 0, 1)
	}

	zoom := 1.0 + kenBurnsDelta*progress
	if !l.zoomIn {
		zoom = 1.0 + kenBurnsDelta*(1-progress)
	}

	// Center-crop the source by the zoom factor, then rescale to canvas.
	srcW := l.source.Rect.Dx()
	srcH := l.source.Rect.Dy()
	cropW := int(float64(srcW) / zoom)
	cropH := int(float64(srcH) / zoom)
	if cropW < 1 {
		cropW = 1
	}
	if cropH < 1 {
		cropH = 1
	}
	x0 := l.source.Rect.Min.X + (srcW-cropW)/2
	y0 := l.source.Rect.Min.Y + (srcH-cropH)/2
	crop := l.source.SubImage(image.Rect(x0, y0, x0+cropW, y0+cropH))

	frame := image.NewRGBA(image.Rect(0, 0, l.width, l.height))
	xdraw.CatmullRom.Scale(frame, frame.Bounds(), crop, crop.Bounds(), xdraw.Src, nil)

	if fade := l.fadeFactor(t); fade < 1 {
		scaleAlpha(frame, fade)
	}
	return frame, image.Point{}
}

func (l *ImageLayer) fadeFactor(t float64) float64 {
	rel := t - l.start
	span := l.end - l.start
	factor := 1.0
	if l.fadeIn > 0 && rel < l.fadeIn {
		factor = rel / l.fadeIn
	}
	if l.fadeOut > 0 && span-rel < l.fadeOut {
		out := (span - rel) / l.fadeOut
		if out < factor {
			factor = out
		}
	}
	return clampFloat(factor, 0, 1)
}

// cropToAspect center-crops src to the canvas aspect ratio and converts it
// to RGBA so per-frame zoom crops are cheap.
func cropToAspect(src image.Image, width, height int) *image.RGBA {
	bounds := src.Bounds()
	srcW := bounds.Dx()
	srcH := bounds.Dy()

	targetRatio := float64(width) / float64(height)
	srcRatio := float64(srcW) / float64(srcH)

	cropW, cropH := srcW, srcH
	if srcRatio > targetRatio {
		cropW = int(float64(srcH) * targetRatio)
	} else {
		cropH = int(float64(srcW) / targetRatio)
	}
	x0 := bounds.Min.X + (srcW-cropW)/2
	y0 := bounds.Min.Y + (srcH-cropH)/2

	out := image.NewRGBA(image.Rect(0, 0, cropW, cropH))
	xdraw.Draw(out, out.Bounds(), src, image.Point{X: x0, Y: y0}, xdraw.Src)
	return out
}
