package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/vanderheijden86/eqtree/pkg/storage"
)

func newDBCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Keep named snapshots of the tree in a SQLite database",
	}

	cmd.AddCommand(newDBSaveCmd(flags))
	cmd.AddCommand(newDBLoadCmd(flags))
	cmd.AddCommand(newDBListCmd(flags))
	cmd.AddCommand(newDBRemoveCmd(flags))

	return cmd
}

// openStore opens the configured database for cmd.
func openStore(cmd *cobra.Command, ac *appContext, operation string) (*storage.Store, error) {
	path := ac.cfg.GetDatabase()
	store, err := storage.Open(cmd.Context(), path)
	if err != nil {
		return nil, newCommandError(operation, "opening "+path, err, "Check the database path in the config.")
	}
	ac.log.With("database", path).Debug("store opened")
	return store, nil
}

func newDBSaveCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "save <name>",
		Short: "Store the current tree file under name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ac, err := loadAppContext(cmd, flags)
			if err != nil {
				return err
			}
			roots, err := ac.loadForest("save snapshot", false)
			if err != nil {
				return err
			}
			ac.ignoreStateDir()
			store, err := openStore(cmd, ac, "save snapshot")
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Save(cmd.Context(), args[0], roots); err != nil {
				return newCommandError("save snapshot", fmt.Sprintf("saving %q", args[0]), err, "")
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%d nodes)\n", args[0], roots.Len())
			return nil
		},
	}
}

func newDBLoadCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "load <name>",
		Short: "Replace the tree file with a stored snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ac, err := loadAppContext(cmd, flags)
			if err != nil {
				return err
			}
			store, err := openStore(cmd, ac, "load snapshot")
			if err != nil {
				return err
			}
			defer store.Close()

			roots, err := store.Load(cmd.Context(), args[0])
			if err != nil {
				return newCommandError("load snapshot", fmt.Sprintf("loading %q", args[0]), err, "Run 'eqt db list' to see stored snapshots.")
			}
			if err := ac.saveForest("load snapshot", roots); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Restored %s into %s\n", args[0], ac.treePath)
			return nil
		},
	}
}

func newDBListCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored snapshots",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ac, err := loadAppContext(cmd, flags)
			if err != nil {
				return err
			}
			store, err := openStore(cmd, ac, "list snapshots")
			if err != nil {
				return err
			}
			defer store.Close()

			infos, err := store.List(cmd.Context())
			if err != nil {
				return newCommandError("list snapshots", "querying database", err, "")
			}
			if len(infos) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No snapshots stored.")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "NAME\tNODES\tUPDATED")
			for _, info := range infos {
				_, _ = fmt.Fprintf(tw, "%s\t%d\t%s\n", info.Name, info.Nodes, info.UpdatedAt.Local().Format(time.DateTime))
			}
			return tw.Flush()
		},
	}
}

func newDBRemoveCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <name>",
		Aliases: []string{"remove"},
		Short:   "Delete a stored snapshot",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ac, err := loadAppContext(cmd, flags)
			if err != nil {
				return err
			}
			store, err := openStore(cmd, ac, "delete snapshot")
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Delete(cmd.Context(), args[0]); err != nil {
				return newCommandError("delete snapshot", fmt.Sprintf("deleting %q", args[0]), err, "Run 'eqt db list' to see stored snapshots.")
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}
