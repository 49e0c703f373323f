package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vanderheijden86/eqtree/pkg/tree"
)

type addOptions struct {
	parent string
	id     string
}

func newAddCmd(flags *rootFlags) *cobra.Command {
	opts := &addOptions{}

	cmd := &cobra.Command{
		Use:   "add <label>...",
		Short: "Add a node under --parent, or as a new root",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ac, err := loadAppContext(cmd, flags)
			if err != nil {
				return err
			}
			roots, err := ac.loadForest("add node", true)
			if err != nil {
				return err
			}
			n, err := addNode(&roots, opts, strings.Join(args, " "))
			if err != nil {
				return err
			}
			if err := ac.saveForest("add node", roots); err != nil {
				return err
			}
			ac.log.WithFields(map[string]any{"id": n.ID, "parent": opts.parent}).Debug("node added")
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", n.Label, n.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.parent, "parent", "p", "", "Parent node id (default: new root)")
	cmd.Flags().StringVar(&opts.id, "id", "", "Node id (default: random UUID)")

	return cmd
}

func addNode(roots *tree.Forest, opts *addOptions, label string) (*tree.Node, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, newCommandError("add node", "validating label", errors.New("label cannot be empty"), "Pass the label as the argument.")
	}
	id := strings.TrimSpace(opts.id)
	if id == "" {
		id = uuid.NewString()
	}
	if roots.FindByID(id) != nil {
		return nil, newCommandError("add node", fmt.Sprintf("adding %q", id), tree.ErrDuplicateID, "Choose an id that is not in the tree.")
	}
	n := tree.NewLeaf(id, label)
	if !roots.Add(opts.parent, n) {
		return nil, newCommandError("add node", fmt.Sprintf("adding under %q", opts.parent), tree.ErrParentNotFound, "Run 'eqt print' to list node ids.")
	}
	return n, nil
}

func newMoveCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "move <id> <new-parent-id>",
		Short: "Move a node and its subtree under another node",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ac, err := loadAppContext(cmd, flags)
			if err != nil {
				return err
			}
			roots, err := ac.loadForest("move node", false)
			if err != nil {
				return err
			}
			if err := roots.Move(args[0], args[1]); err != nil {
				return newCommandError("move node", fmt.Sprintf("moving %q under %q", args[0], args[1]), err, moveSuggestion(err))
			}
			if err := ac.saveForest("move node", roots); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Moved %s under %s\n", args[0], args[1])
			return nil
		},
	}
}

func moveSuggestion(err error) string {
	switch {
	case errors.Is(err, tree.ErrSelfMove), errors.Is(err, tree.ErrCycle):
		return "Pick a target outside the node's own subtree."
	case errors.Is(err, tree.ErrNodeNotFound), errors.Is(err, tree.ErrParentNotFound):
		return "Run 'eqt print' to list node ids."
	default:
		return ""
	}
}

func newRemoveCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a node and its subtree",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ac, err := loadAppContext(cmd, flags)
			if err != nil {
				return err
			}
			roots, err := ac.loadForest("remove node", false)
			if err != nil {
				return err
			}
			removed := roots.Remove(args[0])
			if removed == nil {
				return newCommandError("remove node", fmt.Sprintf("looking up %q", args[0]), tree.ErrNodeNotFound, "Run 'eqt print' to list node ids.")
			}
			if err := ac.saveForest("remove node", roots); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed %s (%d nodes)\n", removed.ID, removed.Len())
			return nil
		},
	}
}

func newEmptyCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "empty <id>",
		Short: "Remove every child of a node, keeping the node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ac, err := loadAppContext(cmd, flags)
			if err != nil {
				return err
			}
			roots, err := ac.loadForest("empty node", false)
			if err != nil {
				return err
			}
			n := roots.FindByID(args[0])
			if n == nil {
				return newCommandError("empty node", fmt.Sprintf("looking up %q", args[0]), tree.ErrNodeNotFound, "Run 'eqt print' to list node ids.")
			}
			removed := n.EmptyNode()
			if err := ac.saveForest("empty node", roots); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Emptied %s (%d children removed)\n", n.ID, len(removed))
			return nil
		},
	}
}
