// Package daemon coordinates background job processing and exposes the
// HTTP API. It enforces single-instance execution with a file lock, owns
// the workflow manager lifecycle, and mediates queue operations for the
// IPC and HTTP surfaces.
package daemon
