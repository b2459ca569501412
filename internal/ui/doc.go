// Package ui provides the Bubble Tea terminal interface for logrok.
//
// # Overview
//
// The UI is a single full-screen view over the session controller. All
// state mutations happen through controller commands on the update loop;
// the view renders whatever the controller reports visible.
//
// # Structure
//
//   - Model: root Bubble Tea model, key dispatch, scroll anchoring
//   - view rendering: log rows with mark highlights, gutters, status bar
//   - keyMap: vim-style bindings declared with bubbles/key
//   - Theme: lipgloss palette including the mark slot colors
//
// # Background work
//
// The line index builds in a goroutine before the controller exists; the
// model polls the progress store on a tick and renders a progress bar.
// Quitting works during the build. Search scans run as tea commands and
// deliver their result as a message; the controller discards results a
// newer search has superseded.
package ui
