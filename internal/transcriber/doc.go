// Package transcriber implements the first pipeline stage: it converts the
// uploaded audio to a WhisperX-friendly format, runs speech-to-text, and
// persists the transcript artifact for the analyzer.
package transcriber
