// Package analyzer implements the second pipeline stage: it loads the
// transcript artifact, scores and selects highlight windows, and persists
// the highlights artifact for the renderer.
package analyzer
