package ui

import (
	"strings"
	"testing"
)

func TestHelpMarkdownListsEveryBinding(t *testing.T) {
	k := newKeyMap()
	md := helpMarkdown(k)

	for _, section := range helpSections {
		if !strings.Contains(md, "## "+section) {
			t.Errorf("help missing section %q", section)
		}
	}
	for _, group := range k.FullHelp() {
		for _, b := range group {
			if !strings.Contains(md, b.Help().Desc) {
				t.Errorf("help missing %q", b.Help().Desc)
			}
		}
	}
}

func TestRenderHelp(t *testing.T) {
	out := renderHelp(newKeyMap(), 60)
	if !strings.Contains(out, "Navigation") || !strings.Contains(out, "move here") {
		t.Errorf("rendered help missing content:\n%s", out)
	}
}
