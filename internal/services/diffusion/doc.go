// Package diffusion generates abstract background images for highlight
// clips. Two sources implement the same interface: a local Stable
// Diffusion HTTP server (txt2img) and a remote OpenAI-style images
// endpoint. Sources are tried in priority order; when all fail the
// renderer falls back to the procedural gradient background.
package diffusion
