package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vanderheijden86/eqtree/pkg/export"
	"github.com/vanderheijden86/eqtree/pkg/loader"
	"github.com/vanderheijden86/eqtree/pkg/tree"
)

type exportOptions struct {
	format string
	out    string
	title  string
}

func newExportCmd(flags *rootFlags) *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the tree as Markdown, SVG, JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ac, err := loadAppContext(cmd, flags)
			if err != nil {
				return err
			}
			roots, err := ac.loadForest("export tree", false)
			if err != nil {
				return err
			}
			if opts.title == "" {
				opts.title = ac.title()
			}
			data, err := renderExport(roots, ac, opts)
			if err != nil {
				return err
			}
			if opts.out == "" || opts.out == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if dir := filepath.Dir(opts.out); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return newCommandError("export tree", "creating "+dir, err, "")
				}
			}
			if err := os.WriteFile(opts.out, data, 0o644); err != nil {
				return newCommandError("export tree", "writing "+opts.out, err, "Check the output path and permissions.")
			}
			ac.log.WithFields(map[string]any{"format": opts.format, "out": opts.out, "bytes": len(data)}).Info("export written")
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d nodes to %s\n", roots.Len(), opts.out)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "", "md, svg, json or yaml (default: from --out extension, else md)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&opts.title, "title", "", "Document title (default: tree file name)")

	return cmd
}

// exportFormat picks the format from the flag or the output extension.
func exportFormat(format, out string) string {
	if format != "" {
		return strings.ToLower(format)
	}
	switch strings.ToLower(filepath.Ext(out)) {
	case ".svg":
		return "svg"
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "md"
	}
}

func renderExport(roots tree.Forest, ac *appContext, opts *exportOptions) ([]byte, error) {
	opts.format = exportFormat(opts.format, opts.out)
	switch opts.format {
	case "md", "markdown":
		return []byte(export.Markdown(roots, opts.title)), nil
	case "svg":
		var buf bytes.Buffer
		if err := export.SVG(&buf, roots, ac.theme.Palette()); err != nil {
			return nil, newCommandError("export tree", "rendering svg", err, "")
		}
		return buf.Bytes(), nil
	case "json":
		data, err := loader.Encode(loader.FormatJSON, roots)
		if err != nil {
			return nil, newCommandError("export tree", "encoding json", err, "")
		}
		return append(data, '\n'), nil
	case "yaml", "yml":
		data, err := loader.Encode(loader.FormatYAML, roots)
		if err != nil {
			return nil, newCommandError("export tree", "encoding yaml", err, "")
		}
		return data, nil
	default:
		return nil, newCommandError("export tree", "choosing format", fmt.Errorf("unknown format %q", opts.format), "Use one of md, svg, json, yaml.")
	}
}
