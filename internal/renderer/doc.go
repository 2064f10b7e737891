// Package renderer implements the final pipeline stage: it turns each
// selected highlight into a vertical video clip by composing background,
// decoration, waveform, title, and subtitle layers over the extracted
// audio segment.
//
// Hook titles and generated background images are optional enhancements.
// Their failures never fail the clip; the renderer substitutes the
// documented fallbacks (default title, animated gradient). Individual clip
// failures are logged and skipped; the job completes when at least one
// clip renders.
package renderer
