// Package mark maintains the set of user-marked patterns and answers match
// queries against line content.
//
// A mark is identified by its pattern text alone; marking the same pattern
// again removes it. Each mark carries a role deciding what its matches
// contribute: Marking is pure highlight, Tagging and Hiding drive the
// line-level derived flags, and Search is the single active search pattern.
// Display slots come from a bounded palette and are reused
// least-recently-assigned first when the palette is exhausted.
//
// The store bumps a generation counter on every mutation. Consumers cache
// per-line derived flags stamped with the generation and recompute lazily
// instead of rescanning the file on each change.
package mark
