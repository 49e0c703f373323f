package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vanderheijden86/eqtree/pkg/config"
)

type projectsOptions struct {
	depth int
}

func newProjectsCmd() *cobra.Command {
	opts := &projectsOptions{}

	cmd := &cobra.Command{
		Use:   "projects [dir]",
		Short: "Find directories that contain an .eqt project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			} else if wd, err := os.Getwd(); err == nil {
				dir = wd
			}
			found := config.ScanProjects(dir, opts.depth)
			if len(found) == 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "No projects under %s\n", dir)
				return nil
			}
			for _, p := range found {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.depth, "depth", 3, "Maximum directory depth to scan")

	return cmd
}
