// Package app provides the orchestration layer for logrok.
//
// # Overview
//
// This package wires together configuration, preferences, progress
// tracking, and the UI into the complete viewer. It is the composition
// root where all dependencies are initialized and connected.
//
// # Startup Sequence
//
//  1. Validate the log file path (must exist, must not be a directory)
//  2. Load viewer configuration from ~/.config/logrok/config.toml
//  3. Load sticky preferences from ~/.config/logrok/prefs.toml
//  4. Create the shared progress store for background tasks
//  5. Start the Bubble Tea program; the UI builds the line index in the
//     background and shows a progress bar until it finishes
//  6. Block until the user quits or the context cancels
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Log file missing, unreadable, a directory, or empty
//   - Configuration file present but invalid
//   - Index build failures (I/O errors while scanning)
//
// Recoverable conditions (surfaced in the status bar, session continues):
//   - Invalid search patterns
//   - Ambiguous mark selections
//   - Mode switches that would display nothing
//
// A cancelled context is a clean shutdown, not an error.
package app
