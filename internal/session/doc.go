// Package session orchestrates the document, mark, search, and reflow
// layers behind the command surface the UI consumes.
//
// # Single writer
//
// All mutations run serially on the controller in response to one command
// at a time. Background work (index construction, long search scans) is
// handed out as cancellable jobs; their results carry a sequence number
// and are discarded when a newer command has superseded them, so stale
// work is never merged back into the session.
//
// # Derived line state
//
// Per-line flags split into manual (explicit tag/hide on one line) and
// mark-derived (any tagging/hiding mark matches the line). Derived flags
// are cached per line and stamped with the mark store's generation; a mark
// mutation invalidates the whole cache in one counter bump and lines are
// recomputed lazily when next queried. The display filter therefore never
// observes a stale flag, and a mark toggle never costs a full-file pass.
//
// # Display modes
//
// Modes order by restrictiveness: All shows everything, Normal suppresses
// hidden lines, Tagged additionally requires a tag or search match, Manual
// accepts only explicit tags and search matches. Sessions start in Normal.
// In the restrictive modes the visibility walk consults a per-split match
// screen before descending into a split, so navigation skips whole splits
// that provably hold no visible line. Lines matching the active
// search are forced visible in every mode regardless of hide flags.
// Mode switches keep the cursor on its line when still visible, otherwise
// move it to the nearest visible line, preferring forward.
package session
