package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vanderheijden86/eqtree/pkg/theme"
)

type themesOptions struct {
	css string
}

func newThemesCmd(flags *rootFlags) *cobra.Command {
	opts := &themesOptions{}

	cmd := &cobra.Command{
		Use:   "themes",
		Short: "List the built-in themes, or print one as CSS",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if opts.css != "" {
				t, err := theme.Parse(opts.css)
				if err != nil {
					return newCommandError("print theme", "selecting theme", err, "Run 'eqt themes' to list the built-in themes.")
				}
				_, _ = fmt.Fprint(out, theme.RenderCSS(t.Name(), t.Palette()))
				return nil
			}

			ac, err := loadAppContext(cmd, flags)
			if err != nil {
				return err
			}
			current := ac.theme.Name()
			for _, v := range theme.BuiltinVariants() {
				marker := "  "
				if v.Name == current {
					marker = "* "
				}
				_, _ = fmt.Fprintf(out, "%s%-20s %s\n", marker, v.Name, v.Theme.Palette().Primary)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.css, "css", "", "Print the stylesheet of the named theme")

	return cmd
}
