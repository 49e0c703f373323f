package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles are the terminal counterparts of the tree stylesheet classes,
// derived from a palette.
type Styles struct {
	Renderer *lipgloss.Renderer
	Palette  Palette

	Tree       lipgloss.Style // outer container
	Row        lipgloss.Style // branch or leaf row
	ActiveRow  lipgloss.Style // selected row
	Cursor     lipgloss.Style // row under the keyboard cursor
	Chevron    lipgloss.Style
	LeafSpacer lipgloss.Style
	Label      lipgloss.Style
	Guide      lipgloss.Style // ├── └── │ prefixes
	Title      lipgloss.Style
	Muted      lipgloss.Style
	Status     lipgloss.Style
	Error      lipgloss.Style
	Modal      lipgloss.Style
}

// NewStyles builds styles for p. A nil renderer means the default one.
func NewStyles(r *lipgloss.Renderer, p Palette) Styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	primary := color(p.Primary)
	label := color(p.Label)
	muted := color(p.LabelSecondary)
	border := color(p.CardBorder)

	return Styles{
		Renderer:   r,
		Palette:    p,
		Tree:       r.NewStyle().Foreground(label),
		Row:        r.NewStyle().Foreground(label),
		ActiveRow:  r.NewStyle().Foreground(primary).Bold(true),
		Cursor:     r.NewStyle().Background(color(p.Card)).Foreground(color(p.LabelPrimary)),
		Chevron:    r.NewStyle().Foreground(color(p.HoverButton)),
		LeafSpacer: r.NewStyle().Foreground(border),
		Label:      r.NewStyle().Foreground(label),
		Guide:      r.NewStyle().Foreground(border),
		Title:      r.NewStyle().Foreground(color(p.LabelBold)).Bold(true),
		Muted:      r.NewStyle().Foreground(muted),
		Status:     r.NewStyle().Foreground(muted).Italic(true),
		Error:      r.NewStyle().Foreground(lipgloss.Color("#F85149")),
		Modal: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary).
			Padding(1, 2),
	}
}

// StylesFor builds styles for a theme.
func StylesFor(r *lipgloss.Renderer, t Theme) Styles {
	return NewStyles(r, t.Palette())
}

// color maps a CSS colour to a terminal colour. Only hex colours translate;
// anything else (rgb(), named colours, var()) renders uncoloured.
func color(v string) lipgloss.TerminalColor {
	v = strings.TrimSpace(v)
	if strings.HasPrefix(v, "#") && (len(v) == 4 || len(v) == 7) {
		return lipgloss.Color(v)
	}
	return lipgloss.NoColor{}
}
