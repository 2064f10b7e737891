// Package config loads, normalizes, and validates the shortcast TOML
// configuration.
//
// Defaults live in defaults.go, path expansion and environment overrides in
// normalize.go, and invariant checks in validate.go. Feature toggles (hook
// generation, diffusion backgrounds) are environment-level and read exactly
// once at startup; nothing here hot-reloads.
package config
