package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/vanderheijden86/eqtree/pkg/tree"
)

// nodeDraft collects the fields of a node being added.
type nodeDraft struct {
	parentID string // "" adds a root
	id       string
	label    string
}

// newNodeForm builds the add-node form. The id defaults to a fresh UUID and
// must not already exist in forest.
func newNodeForm(d *nodeDraft, forest tree.Forest, width int) *huh.Form {
	d.id = uuid.NewString()

	title := "New root node"
	if d.parentID != "" {
		title = "New child of " + d.parentID
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Description("Label").
				Value(&d.label).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("label is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Id").
				Value(&d.id).
				Validate(func(s string) error {
					return validateNodeID(forest, s)
				}),
		),
	).WithShowHelp(true)

	if width > 0 {
		form = form.WithWidth(width)
	}
	return form
}

func validateNodeID(forest tree.Forest, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errors.New("id is required")
	}
	if forest.FindByID(id) != nil {
		return errors.New("id already exists")
	}
	return nil
}
