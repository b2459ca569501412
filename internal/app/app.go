package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sensille/logrok/internal/config"
	"github.com/sensille/logrok/internal/prefs"
	"github.com/sensille/logrok/internal/state"
	"github.com/sensille/logrok/internal/ui"
)

// Options configure the logrok application.
type Options struct {
	// Path is the log file to view.
	Path string
	// ConfigPath overrides the default config location when non-empty.
	ConfigPath string
	// PrefsPath overrides the default prefs location when non-empty.
	PrefsPath string
}

// Run boots the viewer until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	if opts.Path == "" {
		return fmt.Errorf("no log file given")
	}
	info, err := os.Stat(opts.Path)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", opts.Path)
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		return fmt.Errorf("load prefs: %w", err)
	}

	model := ui.New(ui.Options{
		Context:   ctx,
		Path:      opts.Path,
		Config:    cfg,
		Prefs:     userPrefs,
		PrefsPath: opts.PrefsPath,
		Progress:  &state.Store{},
	})

	prog := tea.NewProgram(model, tea.WithContext(ctx))
	final, err := prog.Run()
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("run ui: %w", err)
	}
	if m, ok := final.(ui.Model); ok {
		defer m.Close()
		if err := m.Err(); err != nil {
			return err
		}
	}
	return nil
}
