// Package artifacts reads and writes the flat per-job files under the
// output directory: transcript.json, highlights.json, and the rendered
// highlight videos. These files are the durable record of a job; the
// sqlite queue can be rebuilt from them.
package artifacts
