package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnsureIgnored adds dir (relative to root) to root/.gitignore when root is a
// git work tree. It is idempotent: patterns that already cover dir (dir,
// dir/, dir/*, dir/**, with or without a leading slash) are left alone. It
// reports whether the file was changed.
func EnsureIgnored(root, dir string) (bool, error) {
	if root == "" || dir == "" || filepath.IsAbs(dir) || strings.HasPrefix(dir, "..") {
		return false, nil
	}
	if _, err := os.Stat(filepath.Join(root, ".git")); err != nil {
		return false, nil
	}

	dir = strings.Trim(filepath.ToSlash(filepath.Clean(dir)), "/")
	path := filepath.Join(root, ".gitignore")

	covered, err := gitignoreCovers(path, dir)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return false, err
	}
	if covered {
		return false, nil
	}
	if err := appendToGitignore(path, dir+"/"); err != nil {
		return false, fmt.Errorf("update %s: %w", path, err)
	}
	return true, nil
}

func gitignoreCovers(path, dir string) (bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if matchesDirPattern(line, dir) {
			return true, nil
		}
	}
	return false, scanner.Err()
}

func matchesDirPattern(line, dir string) bool {
	normalized := strings.TrimPrefix(line, "/")
	for _, suffix := range []string{"", "/", "/*", "/**", "/**/*"} {
		if normalized == dir+suffix {
			return true
		}
	}
	return false
}

func appendToGitignore(path, pattern string) error {
	content, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	var toWrite string
	if len(content) == 0 {
		toWrite = "# eqt view state and snapshots\n" + pattern + "\n"
	} else {
		if content[len(content)-1] != '\n' {
			toWrite = "\n"
		}
		toWrite += "\n# eqt view state and snapshots\n" + pattern + "\n"
	}

	_, err = file.WriteString(toWrite)
	return err
}
