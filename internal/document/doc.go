// Package document provides random access to the physical lines of a large,
// read-only log file without keeping the file resident in memory.
//
// # Overview
//
// Two pieces cooperate:
//
//   - Index: a one-time scan of the file producing an ordered table of
//     line-start byte offsets. Lookups in both directions (line number to
//     byte span, byte offset to line number) are O(log n).
//   - Cache: a demand-paged LRU cache of decoded line content. Lines are
//     grouped into fixed-size "splits" (ranges of consecutive physical
//     lines); a split is read and decoded as a unit and evicted as a unit
//     when the configured byte budget is exceeded.
//
// # Indexing
//
// Build scans the file once, in parallel over byte chunks, and merges the
// discovered newline positions in order. The scan is cancellable through
// its context and reports progress (fraction of bytes scanned) through an
// optional callback so a UI can stay responsive while a multi-gigabyte file
// is indexed.
//
// The file is treated as immutable for the lifetime of the session. A file
// that grows or changes underneath a running session is not tracked.
//
// # Splits
//
// A split covers SplitLines consecutive physical lines. Splits are immutable
// once decoded and inserted, so concurrent readers never observe a partially
// loaded entry; the cache mutex only guards the lookup table and LRU order,
// not the decode itself.
package document
