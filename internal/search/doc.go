// Package search finds pattern matches across the full file, line by line,
// with wraparound at the file boundaries.
//
// Matching ignores the display filter entirely: hidden lines are searched
// and a matching line is forced visible by the caller. Successive forward
// searches resume strictly after the end of the previous match, so
// back-to-back occurrences are each found exactly once and adjacent
// occurrences are never skipped.
//
// Find is synchronous but cancellable through its context and reports
// progress for long scans; the caller runs it as a background task and
// discards results that a newer search has superseded.
package search
