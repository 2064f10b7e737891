// Package queue persists clip jobs in SQLite and exposes helpers for
// driving their lifecycle.
//
// The Store manages database connections, schema initialization, stats
// queries, heartbeat tracking, stuck-item recovery, and status transitions
// that mirror the public workflow enum. Queue items capture progress,
// artifact paths, and error state so stages can coordinate without
// additional shared state.
//
// The database is treated as transient storage for in-flight jobs rather
// than a long-term archive; the flat-file artifacts under the output
// directory are the durable record. Schema changes bump the version in
// schema.go; users clear the database to adopt the new schema.
package queue
