// Package hook generates short attention-grabbing titles for highlight
// clips via an OpenRouter-compatible chat completion API.
//
// Hook generation is an optional enhancement: any failure (missing key,
// network error, unusable model output) degrades to a default title and
// is never surfaced to the caller as a job failure.
package hook
