// Package textutil provides small text helpers shared across the pipeline:
// filesystem-safe name sanitization, title casing for inferred episode
// titles, and normalization of model-generated hook lines.
package textutil
