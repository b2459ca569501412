package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.CacheBudgetMB != defaultCacheBudget {
		t.Fatalf("CacheBudgetMB = %d, want %d", cfg.CacheBudgetMB, defaultCacheBudget)
	}
	if cfg.PaletteSize != defaultPalette {
		t.Fatalf("PaletteSize = %d, want %d", cfg.PaletteSize, defaultPalette)
	}
	if cfg.FoldRows != defaultFoldRows {
		t.Fatalf("FoldRows = %d, want %d", cfg.FoldRows, defaultFoldRows)
	}
	if cfg.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", cfg.Theme, defaultTheme)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
cache_budget_mb = 128
palette_size = 8
indent_column = 20
fold_rows = 4
theme = "  light  "
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.CacheBudgetMB != 128 {
		t.Fatalf("CacheBudgetMB = %d, want 128", cfg.CacheBudgetMB)
	}
	if cfg.PaletteSize != 8 {
		t.Fatalf("PaletteSize = %d, want 8", cfg.PaletteSize)
	}
	if cfg.IndentColumn != 20 {
		t.Fatalf("IndentColumn = %d, want 20", cfg.IndentColumn)
	}
	if cfg.FoldRows != 4 {
		t.Fatalf("FoldRows = %d, want 4", cfg.FoldRows)
	}
	if cfg.Theme != "light" {
		t.Fatalf("Theme = %q, want light", cfg.Theme)
	}
	if cfg.CacheBudgetBytes() != 128<<20 {
		t.Fatalf("CacheBudgetBytes = %d, want %d", cfg.CacheBudgetBytes(), int64(128<<20))
	}
}

func TestLoad_ZeroAndEmptyValuesUseDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
cache_budget_mb = 0
palette_size = -1
theme = "   "
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.CacheBudgetMB != defaultCacheBudget {
		t.Fatalf("CacheBudgetMB = %d, want %d", cfg.CacheBudgetMB, defaultCacheBudget)
	}
	if cfg.PaletteSize != defaultPalette {
		t.Fatalf("PaletteSize = %d, want %d", cfg.PaletteSize, defaultPalette)
	}
	if cfg.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", cfg.Theme, defaultTheme)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`palette_size = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
