package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vanderheijden86/eqtree/pkg/config"
	"github.com/vanderheijden86/eqtree/pkg/loader"
	"github.com/vanderheijden86/eqtree/pkg/logging"
	"github.com/vanderheijden86/eqtree/pkg/theme"
	"github.com/vanderheijden86/eqtree/pkg/tree"
)

// appContext is what every command needs after flags and config are merged.
type appContext struct {
	root     string
	cfg      config.Config
	log      *logging.Logger
	theme    theme.Theme
	treePath string
}

func loadAppContext(cmd *cobra.Command, flags *rootFlags) (*appContext, error) {
	root, ok := config.DetectRoot()
	if !ok {
		wd, err := os.Getwd()
		if err != nil {
			return nil, newCommandError("start", "resolving working directory", err, "")
		}
		root = wd
	}

	cfgPath := flags.config
	if cfgPath == "" {
		cfgPath = config.ConfigPath(root)
	}
	cfg, err := config.Load(cfgPath, root)
	if err != nil {
		return nil, newCommandError("start", "loading config", err, "Fix the reported field in "+cfgPath+".")
	}

	level := cfg.Log.Level
	if flags.verbose {
		level = "debug"
	}
	log, err := logging.New(logging.Options{Level: level, HumanReadable: cfg.Log.Human, Writer: cmd.ErrOrStderr()})
	if err != nil {
		return nil, newCommandError("start", "creating logger", err, "Use one of trace, debug, info, warn, error for log.level.")
	}

	var th theme.Theme
	if flags.theme != "" {
		th, err = theme.Parse(flags.theme)
		if err != nil {
			return nil, newCommandError("start", "selecting theme", err, "Run 'eqt themes' to list the built-in themes.")
		}
	} else {
		th, err = cfg.ThemeSelection()
		if err != nil {
			log.Warnf(err, "falling back to the default theme")
		}
	}

	treePath := cfg.GetTreeFile()
	if flags.file != "" {
		treePath = flags.file
	}

	log.WithFields(map[string]any{"root": root, "config": cfgPath, "tree": treePath}).Debug("resolved paths")

	return &appContext{root: root, cfg: cfg, log: log, theme: th, treePath: treePath}, nil
}

// loadForest reads the tree file. With allowMissing, an absent file is an
// empty forest.
func (ac *appContext) loadForest(operation string, allowMissing bool) (tree.Forest, error) {
	roots, err := loader.Load(ac.treePath)
	if err != nil {
		if allowMissing && errors.Is(err, os.ErrNotExist) {
			ac.log.With("path", ac.treePath).Info("tree file not found, starting empty")
			return nil, nil
		}
		return nil, newCommandError(operation, "loading "+ac.treePath, err, "Pass --file or set tree_file in the config.")
	}
	return tree.Forest(roots), nil
}

func (ac *appContext) saveForest(operation string, f tree.Forest) error {
	if err := loader.Save(ac.treePath, f); err != nil {
		return newCommandError(operation, "saving "+ac.treePath, err, "Check disk space and file permissions, then retry.")
	}
	return nil
}

// ignoreStateDir keeps the state directory out of git when it lives inside
// the project root.
func (ac *appContext) ignoreStateDir() {
	rel, err := filepath.Rel(ac.root, ac.cfg.GetStateDir())
	if err != nil {
		return
	}
	changed, err := config.EnsureIgnored(ac.root, rel)
	if err != nil {
		ac.log.Warnf(err, "could not update .gitignore")
		return
	}
	if changed {
		ac.log.With("dir", rel).Info("added state directory to .gitignore")
	}
}

// title names the tree after its file.
func (ac *appContext) title() string {
	base := filepath.Base(ac.treePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
