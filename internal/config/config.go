package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the tunables logrok reads at startup.
type Config struct {
	// CacheBudgetMB bounds the resident bytes of decoded line content.
	CacheBudgetMB int
	// PaletteSize is the number of mark highlight slots.
	PaletteSize int
	// IndentColumn is the continuation indent for wrapped rows.
	IndentColumn int
	// FoldRows is the collapsed row budget for overlong lines.
	FoldRows int
	// Theme selects the color theme by name.
	Theme string
}

const (
	defaultConfigPath  = "~/.config/logrok/config.toml"
	defaultCacheBudget = 64
	defaultPalette     = 12
	defaultFoldRows    = 2
	defaultTheme       = "dark"
)

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		CacheBudgetMB: defaultCacheBudget,
		PaletteSize:   defaultPalette,
		FoldRows:      defaultFoldRows,
		Theme:         defaultTheme,
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		CacheBudgetMB int    `toml:"cache_budget_mb"`
		PaletteSize   int    `toml:"palette_size"`
		IndentColumn  int    `toml:"indent_column"`
		FoldRows      int    `toml:"fold_rows"`
		Theme         string `toml:"theme"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if raw.CacheBudgetMB > 0 {
		cfg.CacheBudgetMB = raw.CacheBudgetMB
	}
	if raw.PaletteSize > 0 {
		cfg.PaletteSize = raw.PaletteSize
	}
	if raw.IndentColumn > 0 {
		cfg.IndentColumn = raw.IndentColumn
	}
	if raw.FoldRows > 0 {
		cfg.FoldRows = raw.FoldRows
	}
	if theme := strings.TrimSpace(raw.Theme); theme != "" {
		cfg.Theme = theme
	}

	return cfg, nil
}

// CacheBudgetBytes returns the cache budget in bytes.
func (c Config) CacheBudgetBytes() int64 {
	return int64(c.CacheBudgetMB) << 20
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
