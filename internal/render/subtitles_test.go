package render

import (
	"image"
	"math"
	"strings"
	"testing"
)

func TestChunkSubtitlesEqualSlices(t *testing.T) {
	text := strings.TrimSpace(strings.Repeat("word ", 18))
	chunks := ChunkSubtitles(text, 10.0, 6)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}

	var total float64
	for i, chunk := range chunks {
		slice := chunk.Duration()
		if math.Abs(slice-10.0/3) > 1e-9 {
			t.Fatalf("chunk %d slice = %g, want %g", i, slice, 10.0/3)
		}
		total += slice
	}
	if math.Abs(total-10.0) > 1e-9 {
		t.Fatalf("slices sum to %g, want 10", total)
	}

	if !chunks[0].First || chunks[0].Last {
		t.Fatal("first chunk flags wrong")
	}
	if !chunks[2].Last || chunks[2].First {
		t.Fatal("last chunk flags wrong")
	}
}

func TestChunkSubtitlesUnevenTail(t *testing.T) {
	chunks := ChunkSubtitles("one two three four five six seven", 7.0, 6)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[1].Text != "seven" {
		t.Fatalf("expected single-word tail, got %q", chunks[1].Text)
	}
	if chunks[1].End != 7.0 {
		t.Fatalf("expected final boundary at duration, got %g", chunks[1].End)
	}
}

func TestChunkSubtitlesEmptyText(t *testing.T) {
	if chunks := ChunkSubtitles("   ", 10, 6); chunks != nil {
		t.Fatalf("expected nil for blank text, got %v", chunks)
	}
}

func TestSubtitleFadeRules(t *testing.T) {
	layers, err := NewSubtitleLayers(strings.TrimSpace(strings.Repeat("word ", 12)), 1080, 1920, 8.0, 6)
	if err != nil {
		t.Fatalf("NewSubtitleLayers failed: %v", err)
	}
	if len(layers) != 2 {
		t.Fatalf("expected 2 subtitle layers, got %d", len(layers))
	}

	first := layers[0].(*subtitleLayer)
	last := layers[1].(*subtitleLayer)

	// First chunk at its own start must be fully opaque (no fade-in).
	frameStart, _ := first.RenderFrame(0)
	refFrame, _ := first.RenderFrame(2.0) // mid-chunk, full opacity
	if maxAlpha(frameStart) != maxAlpha(refFrame) {
		t.Fatal("first chunk should not fade in")
	}

	// First chunk near its end must be fading out.
	fadingOut, _ := first.RenderFrame(3.95)
	if maxAlpha(fadingOut) >= maxAlpha(refFrame) {
		t.Fatal("first chunk should fade out into the second")
	}

	// Last chunk at the very end must remain opaque (no fade-out).
	endFrame, _ := last.RenderFrame(7.99)
	lastRef, _ := last.RenderFrame(6.0)
	if maxAlpha(endFrame) != maxAlpha(lastRef) {
		t.Fatal("last chunk should not fade out")
	}
}

func maxAlpha(img *image.RGBA) uint8 {
	var max uint8
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] > max {
			max = img.Pix[i]
		}
	}
	return max
}
