package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vanderheijden86/eqtree/pkg/config"
	"github.com/vanderheijden86/eqtree/pkg/loader"
	"github.com/vanderheijden86/eqtree/pkg/tree"
)

// setupProject creates a project root holding .eqt/ and tree.yaml and makes
// it the working directory.
func setupProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, config.DirName), 0o755))
	t.Setenv(config.EnvDir, "")
	t.Chdir(dir)

	roots := []*tree.Node{
		tree.NewBranch("eng", "Engineering",
			tree.NewBranch("backend", "Backend",
				tree.NewLeaf("api", "API"),
				tree.NewLeaf("db", "Database"),
			),
			tree.NewLeaf("frontend", "Frontend"),
		),
		tree.NewLeaf("ops", "Operations"),
	}
	require.NoError(t, loader.Save(filepath.Join(dir, "tree.yaml"), roots))
	return dir
}

func executeCommand(args ...string) (string, string, error) {
	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func loadTree(t *testing.T, dir string) tree.Forest {
	t.Helper()
	roots, err := loader.Load(filepath.Join(dir, "tree.yaml"))
	require.NoError(t, err)
	return tree.Forest(roots)
}

func TestVersionCommandOutputsBuildInfo(t *testing.T) {
	originalVersion := version
	originalCommit := commit
	originalDate := date
	t.Cleanup(func() {
		version = originalVersion
		commit = originalCommit
		date = originalDate
	})

	version = "1.2.3"
	commit = "abcdef1"
	date = "2026-10-17"

	stdout, _, err := executeCommand("version")
	require.NoError(t, err)
	require.Contains(t, stdout, "eqt 1.2.3")
	require.Contains(t, stdout, "abcdef1")
	require.Contains(t, stdout, "2026-10-17")
}

func TestPrintCommand(t *testing.T) {
	setupProject(t)

	stdout, _, err := executeCommand("print")
	require.NoError(t, err)
	require.Contains(t, stdout, "Engineering  (eng)")
	require.Contains(t, stdout, "│   └── Database  (db)")
	require.Contains(t, stdout, "6 nodes, 4 leaves")
}

func TestPrintCommandMissingFile(t *testing.T) {
	setupProject(t)

	_, _, err := executeCommand("print", "--file", "nope.yaml")
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
	require.Contains(t, err.Error(), "Suggestion:")
}

func TestShowCommand(t *testing.T) {
	setupProject(t)

	stdout, _, err := executeCommand("show", "db")
	require.NoError(t, err)
	require.Contains(t, stdout, "Parent:   backend")
	require.Contains(t, stdout, "Depth:    2")
	require.Contains(t, stdout, "Kind:     leaf")
	require.Contains(t, stdout, "Path:     Engineering / Backend / Database")

	_, _, err = executeCommand("show", "ghost")
	require.ErrorIs(t, err, tree.ErrNodeNotFound)
}

func TestAddCommand(t *testing.T) {
	dir := setupProject(t)

	stdout, _, err := executeCommand("add", "--parent", "backend", "--id", "cache", "Cache", "layer")
	require.NoError(t, err)
	require.Contains(t, stdout, "Added Cache layer (cache)")

	forest := loadTree(t, dir)
	parent := forest.FindParentOf("cache")
	require.NotNil(t, parent)
	require.Equal(t, "backend", parent.ID)
	require.Equal(t, "Cache layer", forest.FindByID("cache").Label)

	_, _, err = executeCommand("add", "--id", "cache", "Again")
	require.ErrorIs(t, err, tree.ErrDuplicateID)

	_, _, err = executeCommand("add", "--parent", "ghost", "Orphan")
	require.ErrorIs(t, err, tree.ErrParentNotFound)
}

func TestAddCommandCreatesRootWithGeneratedID(t *testing.T) {
	dir := setupProject(t)

	_, _, err := executeCommand("add", "Finance")
	require.NoError(t, err)

	forest := loadTree(t, dir)
	require.Len(t, forest, 3)
	last := forest[2]
	require.Equal(t, "Finance", last.Label)
	require.Len(t, last.ID, 36)
	require.Empty(t, last.ParentID)
}

func TestMoveCommand(t *testing.T) {
	dir := setupProject(t)

	stdout, _, err := executeCommand("move", "frontend", "ops")
	require.NoError(t, err)
	require.Contains(t, stdout, "Moved frontend under ops")

	forest := loadTree(t, dir)
	require.Equal(t, "ops", forest.FindParentOf("frontend").ID)
	require.Equal(t, 6, forest.Len())
}

func TestMoveCommandRefusals(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"self", []string{"move", "eng", "eng"}, tree.ErrSelfMove},
		{"into descendant", []string{"move", "eng", "api"}, tree.ErrCycle},
		{"missing node", []string{"move", "ghost", "ops"}, tree.ErrNodeNotFound},
		{"missing parent", []string{"move", "api", "ghost"}, tree.ErrParentNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := setupProject(t)
			before, err := os.ReadFile(filepath.Join(dir, "tree.yaml"))
			require.NoError(t, err)

			_, _, err = executeCommand(tt.args...)
			require.ErrorIs(t, err, tt.want)

			after, err := os.ReadFile(filepath.Join(dir, "tree.yaml"))
			require.NoError(t, err)
			require.Equal(t, string(before), string(after))
		})
	}
}

func TestRemoveAndEmptyCommands(t *testing.T) {
	dir := setupProject(t)

	stdout, _, err := executeCommand("remove", "backend")
	require.NoError(t, err)
	require.Contains(t, stdout, "Removed backend (3 nodes)")
	require.Nil(t, loadTree(t, dir).FindByID("api"))

	_, _, err = executeCommand("rm", "backend")
	require.ErrorIs(t, err, tree.ErrNodeNotFound)

	stdout, _, err = executeCommand("empty", "eng")
	require.NoError(t, err)
	require.Contains(t, stdout, "1 children removed")

	forest := loadTree(t, dir)
	require.True(t, forest.FindByID("eng").IsLeaf())
	require.Equal(t, 2, forest.Len())
}

func TestExportCommand(t *testing.T) {
	dir := setupProject(t)

	stdout, _, err := executeCommand("export", "--title", "Org")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(stdout, "# Org\n"))
	require.Contains(t, stdout, "- **Engineering** (`eng`)")

	out := filepath.Join(dir, "out", "tree.svg")
	_, stderr, err := executeCommand("export", "-o", out)
	require.NoError(t, err)
	require.Contains(t, stderr, "Exported 6 nodes")
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Contains(t, string(data), "<svg")

	stdout, _, err = executeCommand("export", "--format", "json")
	require.NoError(t, err)
	roots, err := loader.Decode(loader.FormatJSON, []byte(stdout))
	require.NoError(t, err)
	require.Equal(t, 6, tree.Forest(roots).Len())

	_, _, err = executeCommand("export", "--format", "pdf")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown format")
}

func TestExportFormat(t *testing.T) {
	tests := []struct {
		format, out, want string
	}{
		{"", "", "md"},
		{"", "a.svg", "svg"},
		{"", "a.JSON", "json"},
		{"", "a.yml", "yaml"},
		{"", "a.txt", "md"},
		{"SVG", "a.json", "svg"},
	}
	for _, tt := range tests {
		if got := exportFormat(tt.format, tt.out); got != tt.want {
			t.Errorf("exportFormat(%q, %q) = %q, want %q", tt.format, tt.out, got, tt.want)
		}
	}
}

func TestThemesCommand(t *testing.T) {
	setupProject(t)

	stdout, _, err := executeCommand("themes")
	require.NoError(t, err)
	require.Contains(t, stdout, "* Unghosty")
	require.Contains(t, stdout, "  TokyoNight")

	stdout, _, err = executeCommand("themes", "--theme", "nord")
	require.NoError(t, err)
	require.Contains(t, stdout, "* Nord")

	stdout, _, err = executeCommand("themes", "--css", "tokyo-night")
	require.NoError(t, err)
	require.Contains(t, stdout, "/* Theme: TokyoNight */")
	require.Contains(t, stdout, "--color-primary:")

	_, _, err = executeCommand("themes", "--css", "nope")
	require.Error(t, err)
}

func TestConfigSelectsThemeAndRejectsInvalid(t *testing.T) {
	dir := setupProject(t)
	cfgPath := filepath.Join(dir, config.DirName, config.FileName)

	require.NoError(t, os.WriteFile(cfgPath, []byte("theme: dracula\n"), 0o644))
	stdout, _, err := executeCommand("themes")
	require.NoError(t, err)
	require.Contains(t, stdout, "* Dracula")

	require.NoError(t, os.WriteFile(cfgPath, []byte("theme: neon\n"), 0o644))
	_, _, err = executeCommand("print")
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestDBCommands(t *testing.T) {
	dir := setupProject(t)

	stdout, _, err := executeCommand("db", "list")
	require.NoError(t, err)
	require.Contains(t, stdout, "No snapshots stored.")

	stdout, _, err = executeCommand("db", "save", "baseline")
	require.NoError(t, err)
	require.Contains(t, stdout, "Saved baseline (6 nodes)")
	require.FileExists(t, filepath.Join(dir, config.DirName, "trees.db"))

	_, _, err = executeCommand("remove", "eng")
	require.NoError(t, err)
	require.Equal(t, 1, loadTree(t, dir).Len())

	stdout, _, err = executeCommand("db", "ls")
	require.NoError(t, err)
	require.Contains(t, stdout, "baseline")
	require.Contains(t, stdout, "6")

	_, _, err = executeCommand("db", "load", "baseline")
	require.NoError(t, err)
	forest := loadTree(t, dir)
	require.Equal(t, 6, forest.Len())
	require.Equal(t, "backend", forest.FindParentOf("db").ID)

	_, _, err = executeCommand("db", "rm", "baseline")
	require.NoError(t, err)
	_, _, err = executeCommand("db", "rm", "baseline")
	require.Error(t, err)
}

func TestProjectsCommand(t *testing.T) {
	base := t.TempDir()
	for _, p := range []string{"a", "b/c", "d"} {
		require.NoError(t, os.MkdirAll(filepath.Join(base, p), 0o755))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(base, "a", config.DirName), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(base, "b", "c", config.DirName), 0o755))

	stdout, _, err := executeCommand("projects", base)
	require.NoError(t, err)
	require.Contains(t, stdout, filepath.Join(base, "a"))
	require.Contains(t, stdout, filepath.Join(base, "b", "c"))
	require.NotContains(t, stdout, filepath.Join(base, "d"))

	stdout, _, err = executeCommand("projects", filepath.Join(base, "d"))
	require.NoError(t, err)
	require.Contains(t, stdout, "No projects under")
}

func TestDBSaveIgnoresStateDirInGitRepo(t *testing.T) {
	dir := setupProject(t)
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))

	_, _, err := executeCommand("db", "save", "snap")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	require.Contains(t, string(data), ".eqt/")
}
