// Package config loads the eqt configuration file (.eqt/config.yaml).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/eqtree/pkg/theme"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// DirName is the per-project configuration directory.
const DirName = ".eqt"

// FileName is the configuration file inside DirName.
const FileName = "config.yaml"

// EnvDir overrides the configuration directory location.
const EnvDir = "EQT_DIR"

// Config is the on-disk configuration.
//
//	theme: nord
//	custom_css: themes/mine.css
//	tree_file: tree.yaml
//	database: trees.db
//	state_dir: .eqt
//	log:
//	  level: info
//	  human: true
//	watch: true
type Config struct {
	// Theme is a built-in theme name (see `eqt themes`).
	Theme string `yaml:"theme,omitempty" validate:"omitempty,theme_name"`

	// CustomCSS is a stylesheet path; when set it overrides Theme.
	CustomCSS string `yaml:"custom_css,omitempty"`

	// TreeFile is the hierarchy file used when --file is not given.
	TreeFile string `yaml:"tree_file,omitempty" validate:"omitempty,tree_ext"`

	// Database is an optional SQLite file for `eqt db`.
	Database string `yaml:"database,omitempty"`

	// StateDir holds tree-state.json (default: .eqt).
	StateDir string `yaml:"state_dir,omitempty"`

	Log LogConfig `yaml:"log,omitempty"`

	// Watch reloads the tree when its file changes (default: true).
	Watch *bool `yaml:"watch,omitempty"`

	// root is the directory paths are resolved against.
	root string
}

// LogConfig controls the logger.
type LogConfig struct {
	Level string `yaml:"level,omitempty" validate:"omitempty,oneof=trace debug info warn error"`
	Human bool   `yaml:"human,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Theme:    theme.Default().Name(),
		TreeFile: "tree.yaml",
		StateDir: DirName,
		Log:      LogConfig{Level: "info", Human: true},
	}
}

// Load reads path. A missing file yields Default(); a present but invalid one
// is an error. Relative paths in the file resolve against root.
func Load(path, root string) (Config, error) {
	cfg := Default()
	cfg.root = root

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	err := validatorInstance().Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "theme_name":
		return fmt.Sprintf("theme %q is not a built-in theme", fe.Value())
	case "tree_ext":
		return fmt.Sprintf("tree_file %q must end in .json, .yaml or .yml", fe.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", strings.ToLower(fe.Field()), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag())
	}
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("theme_name", func(fl validator.FieldLevel) bool {
			_, err := theme.Parse(fl.Field().String())
			return err == nil
		})
		_ = v.RegisterValidation("tree_ext", func(fl validator.FieldLevel) bool {
			switch strings.ToLower(filepath.Ext(fl.Field().String())) {
			case ".json", ".yaml", ".yml":
				return true
			}
			return false
		})
		validateInst = v
	})
	return validateInst
}

// Root returns the directory relative paths resolve against.
func (c Config) Root() string {
	return c.root
}

// WithRoot returns a copy resolving paths against root.
func (c Config) WithRoot(root string) Config {
	c.root = root
	return c
}

// Resolve makes p absolute relative to the config root.
func (c Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || c.root == "" {
		return p
	}
	return filepath.Join(c.root, p)
}

// GetTreeFile returns the resolved hierarchy file path.
func (c Config) GetTreeFile() string {
	if c.TreeFile == "" {
		return c.Resolve("tree.yaml")
	}
	return c.Resolve(c.TreeFile)
}

// GetStateDir returns the resolved view-state directory. EQT_DIR wins over
// the file setting.
func (c Config) GetStateDir() string {
	if dir := os.Getenv(EnvDir); dir != "" {
		return dir
	}
	if c.StateDir == "" {
		return c.Resolve(DirName)
	}
	return c.Resolve(c.StateDir)
}

// GetDatabase returns the resolved SQLite path, defaulting to .eqt/trees.db.
func (c Config) GetDatabase() string {
	if c.Database == "" {
		return filepath.Join(c.GetStateDir(), "trees.db")
	}
	return c.Resolve(c.Database)
}

// IsWatchEnabled reports whether file watching is on.
func (c Config) IsWatchEnabled() bool {
	if c.Watch == nil {
		return true
	}
	return *c.Watch
}

// ThemeSelection resolves the configured theme, reading custom CSS when set.
func (c Config) ThemeSelection() (theme.Theme, error) {
	if c.CustomCSS != "" {
		path := c.Resolve(c.CustomCSS)
		data, err := os.ReadFile(path)
		if err != nil {
			return theme.Default(), fmt.Errorf("read custom css %s: %w", path, err)
		}
		return theme.NewCustom(string(data)), nil
	}
	if c.Theme == "" {
		return theme.Default(), nil
	}
	return theme.Parse(c.Theme)
}
