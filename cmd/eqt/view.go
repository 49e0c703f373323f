package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/vanderheijden86/eqtree/pkg/loader"
	"github.com/vanderheijden86/eqtree/pkg/tree"
	"github.com/vanderheijden86/eqtree/pkg/ui"
)

func newViewCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Open the interactive tree browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, flags)
		},
	}
}

func runView(cmd *cobra.Command, flags *rootFlags) error {
	ac, err := loadAppContext(cmd, flags)
	if err != nil {
		return err
	}
	roots, err := ac.loadForest("open tree", true)
	if err != nil {
		return err
	}

	ac.ignoreStateDir()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	var watcher *loader.Watcher
	if ac.cfg.IsWatchEnabled() {
		watcher, err = startWatcher(ctx, ac)
		if err != nil {
			ac.log.Warnf(err, "live reload disabled")
		} else {
			defer watcher.Close()
		}
	}

	app := ui.NewApp(ui.Options{
		Title:    ac.title(),
		Roots:    roots,
		Theme:    ac.theme,
		StateDir: ac.cfg.GetStateDir(),
		Logger:   ac.log,
		Watcher:  watcher,
		OnChange: func(f tree.Forest) error {
			return loader.Save(ac.treePath, f)
		},
	})

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return newCommandError("run viewer", "terminal program", err, "Run eqt in an interactive terminal.")
	}
	return nil
}

func startWatcher(ctx context.Context, ac *appContext) (*loader.Watcher, error) {
	w, err := loader.NewWatcher(ac.treePath, loader.WithLogger(ac.log))
	if err != nil {
		return nil, err
	}
	if err := w.Start(ctx); err != nil {
		_ = w.Close()
		return nil, err
	}
	return w, nil
}
