package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

var helpSections = []string{"Navigation", "Selection", "Editing", "Display"}

const helpIntro = `# eqt

Branches toggle open and closed when activated. Leaves become the
selection. Mark a node with **m**, move the cursor to the new parent and
press **p** to move it; moves into the node's own subtree are refused.
`

// helpMarkdown renders the key bindings as a Markdown reference.
func helpMarkdown(k keyMap) string {
	var sb strings.Builder
	sb.WriteString(helpIntro)
	for i, group := range k.FullHelp() {
		title := "More"
		if i < len(helpSections) {
			title = helpSections[i]
		}
		sb.WriteString(fmt.Sprintf("\n## %s\n\n| Key | Action |\n|---|---|\n", title))
		for _, b := range group {
			h := b.Help()
			sb.WriteString(fmt.Sprintf("| `%s` | %s |\n", h.Key, h.Desc))
		}
	}
	sb.WriteString("\nPress `esc` or `?` to close.\n")
	return sb.String()
}

// renderHelp renders the help page for a terminal of the given width. A
// rendering failure falls back to the raw Markdown.
func renderHelp(k keyMap, width int) string {
	md := helpMarkdown(k)
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
