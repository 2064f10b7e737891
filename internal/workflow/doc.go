// Package workflow advances queue items through the processing stages.
//
// The Manager polls the queue, claims the oldest actionable item, and
// feeds it through the registered stage handlers (transcriber, analyzer,
// renderer) while capturing progress and failure metadata. Stuck
// processing items are rolled back to the start of their interrupted
// stage on startup, and a heartbeat monitor reclaims items whose worker
// died mid-stage. It also aggregates queue stats and stage health for
// the daemon status surface.
package workflow
