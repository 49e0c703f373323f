package config

import (
	"os"
	"path/filepath"
	"strings"
)

// DetectRoot finds the project root by walking up from the working
// directory looking for .eqt/.
func DetectRoot() (string, bool) {
	dir, err := os.Getwd()
	if err != nil {
		return "", false
	}
	return DiscoverRoot(dir)
}

// DiscoverRoot walks up from dir looking for a .eqt/ directory. It stops at
// the filesystem root or the user's home directory.
func DiscoverRoot(dir string) (string, bool) {
	home, _ := os.UserHomeDir()
	dir = filepath.Clean(dir)

	for {
		if isDir(filepath.Join(dir, DirName)) {
			return dir, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		if home != "" && dir == home {
			break
		}
		dir = parent
	}
	return "", false
}

// ScanProjects walks root up to maxDepth levels deep and returns the
// directories that contain a .eqt/ subdirectory. Hidden directories are
// skipped and matches are not descended into.
func ScanProjects(root string, maxDepth int) []string {
	if maxDepth <= 0 {
		maxDepth = 3
	}
	root = expandHome(root)
	var results []string

	rootDepth := strings.Count(filepath.Clean(root), string(filepath.Separator))

	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return filepath.SkipDir
		}
		if !d.IsDir() {
			return nil
		}

		depth := strings.Count(filepath.Clean(path), string(filepath.Separator)) - rootDepth
		if depth > maxDepth {
			return filepath.SkipDir
		}

		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}

		if isDir(filepath.Join(path, DirName)) {
			results = append(results, path)
			return filepath.SkipDir
		}
		return nil
	})

	return results
}

// ConfigPath returns the config file location for a project root, honouring
// EQT_DIR.
func ConfigPath(root string) string {
	if dir := os.Getenv(EnvDir); dir != "" {
		return filepath.Join(dir, FileName)
	}
	return filepath.Join(root, DirName, FileName)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
