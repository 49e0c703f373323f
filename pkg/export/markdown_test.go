package export

import (
	"strings"
	"testing"

	"github.com/vanderheijden86/eqtree/pkg/tree"
)

func sampleForest() []*tree.Node {
	return []*tree.Node{
		tree.NewBranch("r", "Root",
			tree.NewLeaf("a", "Alpha_1"),
			tree.NewBranch("b", "Beta", tree.NewLeaf("c", "Gamma [x]")),
		),
		tree.NewLeaf("z", "Loose"),
	}
}

func TestMarkdownOutline(t *testing.T) {
	got := Markdown(sampleForest(), "Org")
	want := strings.Join([]string{
		"# Org",
		"",
		"5 nodes, 3 leaves",
		"",
		"- **Root** (`r`)",
		`  - Alpha\_1 (` + "`a`)",
		"  - **Beta** (`b`)",
		`    - Gamma \[x\] (` + "`c`)",
		"- Loose (`z`)",
		"",
	}, "\n")
	if got != want {
		t.Errorf("Markdown() =\n%s\nwant\n%s", got, want)
	}
}

func TestMarkdownEmpty(t *testing.T) {
	got := Markdown(nil, "")
	if got != "0 nodes, 0 leaves\n\n" {
		t.Errorf("Markdown(nil) = %q", got)
	}
}
