// Package highlights scores transcript segments for shareability and
// selects duration-bounded highlight windows for clipping.
//
// Selection is a pure, single-pass batch computation: every segment is
// scored with a deterministic lexical heuristic, the top candidates are
// expanded to meet the configured duration bounds by pulling in neighboring
// segments, and the survivors are returned in descending score order. There
// is no retry or partial-result machinery; a segment either contributes a
// highlight or is dropped.
package highlights
