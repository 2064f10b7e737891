// Package stage defines the contract between the workflow manager and
// the pipeline stages (transcriber, analyzer, renderer). Prepare runs
// inside the claiming transaction's window to validate inputs cheaply;
// Execute does the heavy lifting; HealthCheck feeds daemon status.
package stage
