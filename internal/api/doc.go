// Package api defines transport-friendly DTOs shared by the HTTP API and
// the IPC surface, plus conversions from queue and workflow types.
package api
