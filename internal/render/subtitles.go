package render

import (
	"fmt"
	"image"
	"strings"
)

const (
	subtitleFontSize  = 65.0
	subtitleSideInset = 120
	subtitleBoxPadX   = 20
	subtitleBoxPadY   = 15
	subtitleBoxAlpha  = 160
	subtitleMaxFade   = 0.3
	subtitleYShare    = 0.72
)

// SubtitleChunk is one word group with its time slice on the clip.
type SubtitleChunk struct {
	Text  string
	Start float64
	End   float64
	First bool
	Last  bool
}

// Duration returns the chunk's slice length.
func (c SubtitleChunk) Duration() float64 {
	return c.End - c.Start
}

// FadeLength returns the cross-fade applied at this chunk's boundaries.
func (c SubtitleChunk) FadeLength() float64 {
	fade := c.Duration() / 3
	if fade > subtitleMaxFade {
		fade = subtitleMaxFade
	}
	return fade
}

// ChunkSubtitles splits text into fixed-size word groups, each occupying an
// equal slice of the total duration. The slices always sum to duration
// exactly; chunk boundaries land on multiples of duration/chunkCount.
func ChunkSubtitles(text string, duration float64, wordsPerChunk int) []SubtitleChunk {
	words := strings.Fields(text)
	if len(words) == 0 || duration <= 0 || wordsPerChunk <= 0 {
		return nil
	}

	count := (len(words) + wordsPerChunk - 1) / wordsPerChunk
	slice := duration / float64(count)

	chunks := make([]SubtitleChunk, 0, count)
	for i := 0; i < count; i++ {
		startWord := i * wordsPerChunk
		endWord := startWord + wordsPerChunk
		if endWord > len(words) {
			endWord = len(words)
		}
		end := float64(i+1) * slice
		if i == count-1 {
			end = duration
		}
		chunks = append(chunks, SubtitleChunk{
			Text:  strings.Join(words[startWord:endWord], " "),
			Start: float64(i) * slice,
			End:   end,
			First: i == 0,
			Last:  i == count-1,
		})
	}
	return chunks
}

// subtitleLayer renders one chunk's text over a translucent box in the
// lower third of the canvas.
type subtitleLayer struct {
	chunk    SubtitleChunk
	rendered *image.RGBA
	width    int
	posY     int
}

// NewSubtitleLayers builds one layer per subtitle chunk. Consecutive
// chunks cross-fade at their shared boundary; the first chunk has no
// fade-in and the last no fade-out.
func NewSubtitleLayers(text string, canvasWidth, canvasHeight int, duration float64, wordsPerChunk int) ([]Layer, error) {
	chunks := ChunkSubtitles(text, duration, wordsPerChunk)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("subtitles: no renderable text")
	}

	layers := make([]Layer, 0, len(chunks))
	for _, chunk := range chunks {
		textImg, err := renderText(chunk.Text, canvasWidth-subtitleSideInset, subtitleFontSize)
		if err != nil {
			return nil, fmt.Errorf("subtitles: render chunk: %w", err)
		}
		layers = append(layers, &subtitleLayer{
			chunk:    chunk,
			rendered: boxBehind(textImg),
			width:    canvasWidth,
			posY:     int(float64(canvasHeight) * subtitleYShare),
		})
	}
	return layers, nil
}

func (l *subtitleLayer) Name() string { return "subtitle" }

func (l *subtitleLayer) Window() (float64, float64) { return l.chunk.Start, l.chunk.End }

func (l *subtitleLayer) RenderFrame(t float64) (*image.RGBA, image.Point) {
	frame := cloneRGBA(l.rendered)

	rel := t - l.chunk.Start
	fade := l.chunk.FadeLength()
	alpha := 1.0
	if !l.chunk.First && rel < fade {
		alpha = rel / fade
	} else if !l.chunk.Last && rel > l.chunk.Duration()-fade {
		alpha = (l.chunk.Duration() - rel) / fade
	}
	scaleAlpha(frame, clampFloat(alpha, 0, 1))

	x := (l.width - frame.Rect.Dx()) / 2
	return frame, image.Point{X: x, Y: l.posY}
}

// boxBehind composites the rendered text over a translucent dark box with
// padding, so subtitles stay readable on bright backgrounds.
func boxBehind(text *image.RGBA) *image.RGBA {
	w := text.Rect.Dx() + 2*subtitleBoxPadX
	h := text.Rect.Dy() + 2*subtitleBoxPadY
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(out.Pix); i += 4 {
		out.Pix[i+3] = subtitleBoxAlpha
	}
	blendOver(out, text, image.Point{X: subtitleBoxPadX, Y: subtitleBoxPadY})
	return out
}
