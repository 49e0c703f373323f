package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	file    string
	config  string
	theme   string
	verbose bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "eqt",
		Short:         "eqt browses and edits labelled trees in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand opens the browser.
			return runView(cmd, flags)
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.file, "file", "f", "", "Tree file to open (default: tree_file from config)")
	cmd.PersistentFlags().StringVarP(&flags.config, "config", "c", "", "Config file (default: .eqt/config.yaml in the project root)")
	cmd.PersistentFlags().StringVarP(&flags.theme, "theme", "t", "", "Built-in theme name, overrides the config")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(newViewCmd(flags))
	cmd.AddCommand(newPrintCmd(flags))
	cmd.AddCommand(newShowCmd(flags))
	cmd.AddCommand(newAddCmd(flags))
	cmd.AddCommand(newMoveCmd(flags))
	cmd.AddCommand(newRemoveCmd(flags))
	cmd.AddCommand(newEmptyCmd(flags))
	cmd.AddCommand(newExportCmd(flags))
	cmd.AddCommand(newServeCmd(flags))
	cmd.AddCommand(newThemesCmd(flags))
	cmd.AddCommand(newDBCmd(flags))
	cmd.AddCommand(newProjectsCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}
