// Package logging centralizes slog configuration for the daemon and CLI.
//
// It provides the console and JSON handlers, attr helper constructors, and
// context-aware logger derivation so every component reports job IDs, stages,
// and correlation IDs under the same keys.
package logging
