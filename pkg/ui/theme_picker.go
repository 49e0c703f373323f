package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/eqtree/pkg/theme"
)

// ThemePickerModel is a modal list of the built-in themes. Moving the
// highlight previews nothing; enter applies.
type ThemePickerModel struct {
	variants      []theme.Named
	current       theme.Kind
	selectedIndex int
	width         int
	height        int
	styles        theme.Styles
}

// NewThemePickerModel creates a picker highlighting current. A custom theme
// starts on the first entry.
func NewThemePickerModel(current theme.Theme, styles theme.Styles) ThemePickerModel {
	variants := theme.BuiltinVariants()
	selected := 0
	for i, v := range variants {
		if v.Theme.Kind == current.Kind {
			selected = i
			break
		}
	}
	return ThemePickerModel{
		variants:      variants,
		current:       current.Kind,
		selectedIndex: selected,
		styles:        styles,
	}
}

// SetSize updates the picker dimensions.
func (m *ThemePickerModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// MoveUp moves the highlight up.
func (m *ThemePickerModel) MoveUp() {
	if m.selectedIndex > 0 {
		m.selectedIndex--
	}
}

// MoveDown moves the highlight down.
func (m *ThemePickerModel) MoveDown() {
	if m.selectedIndex < len(m.variants)-1 {
		m.selectedIndex++
	}
}

// Selected returns the highlighted theme.
func (m *ThemePickerModel) Selected() theme.Theme {
	if m.selectedIndex >= 0 && m.selectedIndex < len(m.variants) {
		return m.variants[m.selectedIndex].Theme
	}
	return theme.Default()
}

// window returns the slice of variants to draw so the highlight stays on
// screen.
func (m *ThemePickerModel) window() (start, end int) {
	visible := m.height - 10
	if visible < 5 {
		visible = 5
	}
	if visible >= len(m.variants) {
		return 0, len(m.variants)
	}
	start = m.selectedIndex - visible/2
	if start < 0 {
		start = 0
	}
	end = start + visible
	if end > len(m.variants) {
		end = len(m.variants)
		start = end - visible
	}
	return start, end
}

// View renders the picker centred in its area.
func (m *ThemePickerModel) View() string {
	if m.width == 0 {
		m.width = 60
	}
	if m.height == 0 {
		m.height = 20
	}

	s := m.styles
	boxWidth := 32
	if m.width < 42 {
		boxWidth = m.width - 10
	}
	if boxWidth < 22 {
		boxWidth = 22
	}

	var lines []string
	lines = append(lines, s.Title.Render("Theme"), "")

	start, end := m.window()
	if start > 0 {
		lines = append(lines, s.Muted.Render("  ↑ more"))
	}
	for i := start; i < end; i++ {
		v := m.variants[i]
		prefix := "  "
		style := s.Label
		if i == m.selectedIndex {
			prefix = "> "
			style = s.ActiveRow
		}
		suffix := ""
		if v.Theme.Kind == m.current {
			suffix = " " + s.Chevron.Render("✓")
		}
		lines = append(lines, style.Render(prefix+v.Name)+suffix)
	}
	if end < len(m.variants) {
		lines = append(lines, s.Muted.Render("  ↓ more"))
	}

	lines = append(lines, "", s.Status.Render("j/k: navigate | enter: apply | esc: cancel"))

	box := s.Modal.Width(boxWidth).Render(strings.Join(lines, "\n"))

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		box,
	)
}
