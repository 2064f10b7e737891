// Package whisperx invokes WhisperX via uvx to transcribe episode audio.
//
// The input is a mono 16kHz WAV prepared by the audio extractor. WhisperX
// writes its results next to the input; the JSON output is parsed into a
// media.Transcript for highlight selection.
package whisperx
