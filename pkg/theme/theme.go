// Package theme holds the catalogue of built-in themes, custom CSS themes and
// the explicit State object a rendering root uses to read and switch the active
// theme.
package theme

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTheme is returned by Parse for names outside the catalogue.
var ErrUnknownTheme = errors.New("unknown theme")

// Kind identifies a theme variant.
type Kind int

const (
	Unghosty Kind = iota // default
	Burgundy
	Gold
	PurplePink
	Monochrome
	Watermelon
	Sunset
	Ocean
	Spacetime
	Gruvbox
	Monokai
	Hellas
	Egypt
	Dometrain
	Catppuccin
	Dracula
	Nord
	OneDark
	RosePine
	SolarizedDark
	TokyoNight
	Custom // user-provided CSS
)

var kindNames = [...]string{
	Unghosty:      "Unghosty",
	Burgundy:      "Burgundy",
	Gold:          "Gold",
	PurplePink:    "PurplePink",
	Monochrome:    "Monochrome",
	Watermelon:    "Watermelon",
	Sunset:        "Sunset",
	Ocean:         "Ocean",
	Spacetime:     "Spacetime",
	Gruvbox:       "Gruvbox",
	Monokai:       "Monokai",
	Hellas:        "Hellas",
	Egypt:         "Egypt",
	Dometrain:     "Dometrain",
	Catppuccin:    "Catppuccin",
	Dracula:       "Dracula",
	Nord:          "Nord",
	OneDark:       "OneDark",
	RosePine:      "RosePine",
	SolarizedDark: "SolarizedDark",
	TokyoNight:    "TokyoNight",
	Custom:        "Custom",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// IsBuiltin reports whether k has a bundled stylesheet.
func (k Kind) IsBuiltin() bool {
	return k >= Unghosty && k < Custom
}

// Theme is a selected variant. CSS is only meaningful for Custom.
type Theme struct {
	Kind Kind
	CSS  string
}

// Default returns the Unghosty theme.
func Default() Theme {
	return Theme{Kind: Unghosty}
}

// Builtin returns the built-in theme of the given kind.
// Custom and out-of-range kinds fall back to the default.
func Builtin(kind Kind) Theme {
	if !kind.IsBuiltin() {
		return Default()
	}
	return Theme{Kind: kind}
}

// NewCustom wraps user-provided CSS.
func NewCustom(css string) Theme {
	return Theme{Kind: Custom, CSS: css}
}

// Name is the catalogue name, "Custom" for injected CSS.
func (t Theme) Name() string {
	return t.Kind.String()
}

func (t Theme) String() string {
	return t.Name()
}

// CSSContent returns the bundled stylesheet of a built-in theme.
// It reports false for custom themes.
func (t Theme) CSSContent() (string, bool) {
	if !t.Kind.IsBuiltin() {
		return "", false
	}
	return stylesheets[t.Kind], true
}

// CustomCSS returns the injected CSS of a custom theme.
func (t Theme) CustomCSS() (string, bool) {
	if t.Kind != Custom {
		return "", false
	}
	return t.CSS, true
}

// Palette returns the colour tokens of the theme. Custom themes take what
// they define from their CSS and the default palette for the rest.
func (t Theme) Palette() Palette {
	if t.Kind == Custom {
		return ParsePalette(t.CSS)
	}
	if p, ok := palettes[t.Kind]; ok {
		return p
	}
	return palettes[Unghosty]
}

// Named pairs a catalogue name with its theme.
type Named struct {
	Name  string
	Theme Theme
}

// BuiltinVariants lists the built-in themes in catalogue order.
func BuiltinVariants() []Named {
	out := make([]Named, 0, int(Custom))
	for k := Unghosty; k < Custom; k++ {
		out = append(out, Named{Name: k.String(), Theme: Theme{Kind: k}})
	}
	return out
}

// Parse resolves a built-in theme by name. Matching ignores case, spaces,
// dashes and underscores, so "tokyo-night" and "TokyoNight" are equal.
func Parse(name string) (Theme, error) {
	key := normalizeName(name)
	for k := Unghosty; k < Custom; k++ {
		if normalizeName(k.String()) == key {
			return Theme{Kind: k}, nil
		}
	}
	return Theme{}, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
}

// ParseOrDefault is Parse with unknown names mapped to the default theme.
func ParseOrDefault(name string) Theme {
	t, err := Parse(name)
	if err != nil {
		return Default()
	}
	return t
}

// Names returns the built-in catalogue names.
func Names() []string {
	out := make([]string, 0, int(Custom))
	for k := Unghosty; k < Custom; k++ {
		out = append(out, k.String())
	}
	return out
}

func normalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(s)
}
