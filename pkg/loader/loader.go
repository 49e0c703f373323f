// Package loader reads and writes hierarchy files and watches them for
// changes.
package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vanderheijden86/eqtree/pkg/tree"
)

// ErrUnsupportedFormat is returned for file extensions other than .json,
// .yaml and .yml.
var ErrUnsupportedFormat = errors.New("unsupported tree file format")

// Format identifies a hierarchy file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatOf picks the encoding from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load reads a forest from path.
func Load(path string) ([]*tree.Node, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	roots, err := Decode(format, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return roots, nil
}

// Decode parses data in the given format.
func Decode(format Format, data []byte) ([]*tree.Node, error) {
	switch format {
	case FormatJSON:
		return tree.UnmarshalJSON(data)
	case FormatYAML:
		return tree.UnmarshalYAML(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Encode serializes roots in the given format.
func Encode(format Format, roots []*tree.Node) ([]byte, error) {
	switch format {
	case FormatJSON:
		return tree.MarshalJSON(roots)
	case FormatYAML:
		return tree.MarshalYAML(roots)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Save writes roots to path atomically (temp file + rename), creating parent
// directories as needed.
func Save(path string, roots []*tree.Node) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	data, err := Encode(format, roots)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return writeAtomic(path, data)
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename into %s: %w", path, err)
	}
	return nil
}
