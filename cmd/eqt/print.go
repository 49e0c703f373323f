package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vanderheijden86/eqtree/pkg/tree"
	"github.com/vanderheijden86/eqtree/pkg/ui"
)

type printOptions struct {
	width int
}

func newPrintCmd(flags *rootFlags) *cobra.Command {
	opts := &printOptions{}

	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print the whole tree as an outline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ac, err := loadAppContext(cmd, flags)
			if err != nil {
				return err
			}
			roots, err := ac.loadForest("print tree", false)
			if err != nil {
				return err
			}
			width := opts.width
			if width == 0 {
				width = terminalWidth(cmd.OutOrStdout())
			}
			out := cmd.OutOrStdout()
			if len(roots) == 0 {
				_, _ = fmt.Fprintln(out, "Tree is empty.")
				return nil
			}
			_, _ = io.WriteString(out, ui.Outline(roots, width))
			_, _ = fmt.Fprintf(out, "\n%d nodes, %d leaves\n", roots.Len(), roots.LeafCount())
			return nil
		},
	}

	cmd.Flags().IntVarP(&opts.width, "width", "w", 0, "Truncate lines to this many columns (default: terminal width)")

	return cmd
}

// terminalWidth returns the width of out when it is a terminal, else 0.
func terminalWidth(out io.Writer) int {
	f, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return w
}

func newShowCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one node with its path and depth",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ac, err := loadAppContext(cmd, flags)
			if err != nil {
				return err
			}
			roots, err := ac.loadForest("show node", false)
			if err != nil {
				return err
			}
			return runShow(cmd.OutOrStdout(), roots, args[0])
		},
	}
}

func runShow(out io.Writer, roots tree.Forest, id string) error {
	path := roots.FindPathTo(id)
	if len(path) == 0 {
		return newCommandError("show node", fmt.Sprintf("looking up %q", id), tree.ErrNodeNotFound, "Run 'eqt print' to list node ids.")
	}
	n := path[len(path)-1]

	labels := make([]string, len(path))
	for i, p := range path {
		labels[i] = p.Label
	}
	parent := "(root)"
	if p := roots.FindParentOf(id); p != nil {
		parent = p.ID
	}
	kind := "branch"
	if n.IsLeaf() {
		kind = "leaf"
	}

	_, _ = fmt.Fprintf(out, "ID:       %s\n", n.ID)
	_, _ = fmt.Fprintf(out, "Label:    %s\n", n.Label)
	_, _ = fmt.Fprintf(out, "Parent:   %s\n", parent)
	_, _ = fmt.Fprintf(out, "Depth:    %d\n", len(path)-1)
	_, _ = fmt.Fprintf(out, "Kind:     %s\n", kind)
	_, _ = fmt.Fprintf(out, "Children: %d\n", len(n.Children))
	_, _ = fmt.Fprintf(out, "Leaves:   %d\n", n.LeafCount())
	_, _ = fmt.Fprintf(out, "Path:     %s\n", strings.Join(labels, " / "))
	return nil
}
