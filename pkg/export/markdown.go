// Package export renders trees as Markdown outlines and SVG diagrams.
package export

import (
	"fmt"
	"strings"

	"github.com/vanderheijden86/eqtree/pkg/tree"
)

var mdEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"`", "\\`",
)

// Markdown renders roots as a nested bullet outline under a level-one
// heading. Branches are bold; every entry carries its id in code span.
func Markdown(roots []*tree.Node, title string) string {
	var sb strings.Builder

	if title != "" {
		sb.WriteString(fmt.Sprintf("# %s\n\n", title))
	}

	forest := tree.Forest(roots)
	sb.WriteString(fmt.Sprintf("%d nodes, %d leaves\n\n", forest.Len(), forest.LeafCount()))

	for _, root := range roots {
		root.Walk(func(n *tree.Node, depth int) bool {
			sb.WriteString(strings.Repeat("  ", depth))
			sb.WriteString("- ")
			label := mdEscaper.Replace(n.Label)
			if n.IsLeaf() {
				sb.WriteString(label)
			} else {
				sb.WriteString("**" + label + "**")
			}
			sb.WriteString(" (`" + strings.ReplaceAll(n.ID, "`", "'") + "`)\n")
			return true
		})
	}

	return sb.String()
}
