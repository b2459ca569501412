// Package config handles loading and parsing the logrok configuration file.
//
// # Overview
//
// This package reads an optional TOML file holding viewer tunables. All
// fields have sensible defaults, so logrok works without a config file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/logrok/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/zero, use defaults
//
// # TOML Format
//
// Example config.toml:
//
//	cache_budget_mb = 64
//	palette_size = 12
//	indent_column = 0
//	fold_rows = 2
//	theme = "dark"
//
// All fields are optional. Tilde paths are expanded automatically.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors
//
// Missing config files are NOT an error - defaults are used instead.
package config
