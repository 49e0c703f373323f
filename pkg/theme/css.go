package theme

import (
	"fmt"
	"strings"
)

// cssVar binds a palette field to its CSS custom property.
type cssVar struct {
	name string
	get  func(*Palette) *string
}

var cssVars = []cssVar{
	{"--color-primary-dark", func(p *Palette) *string { return &p.PrimaryDark }},
	{"--color-primary", func(p *Palette) *string { return &p.Primary }},
	{"--color-tertiary-dark", func(p *Palette) *string { return &p.TertiaryDark }},
	{"--color-card", func(p *Palette) *string { return &p.Card }},
	{"--color-card-border", func(p *Palette) *string { return &p.CardBorder }},
	{"--color-hover-button", func(p *Palette) *string { return &p.HoverButton }},
	{"--color-label", func(p *Palette) *string { return &p.Label }},
	{"--color-label-primary", func(p *Palette) *string { return &p.LabelPrimary }},
	{"--color-label-secondary", func(p *Palette) *string { return &p.LabelSecondary }},
	{"--color-label-bold", func(p *Palette) *string { return &p.LabelBold }},
	{"--gradient-background", func(p *Palette) *string { return &p.GradientBackground }},
}

var stylesheets = renderStylesheets()

func renderStylesheets() map[Kind]string {
	out := make(map[Kind]string, len(palettes))
	for kind, p := range palettes {
		out[kind] = RenderCSS(kind.String(), p)
	}
	return out
}

// RenderCSS renders a palette as a :root block of custom properties.
func RenderCSS(name string, p Palette) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "/* Theme: %s */\n:root {\n", name)
	for _, v := range cssVars {
		value := *v.get(&p)
		if value == "" {
			continue
		}
		fmt.Fprintf(&sb, "  %s: %s;\n", v.name, value)
	}
	sb.WriteString("}\n")
	return sb.String()
}

// ParsePalette reads the theme custom properties from a stylesheet.
// Properties the CSS does not declare keep their default palette value; when
// a property is declared more than once the last declaration wins.
func ParsePalette(css string) Palette {
	p := DefaultPalette()
	for _, decl := range declarations(css) {
		for _, v := range cssVars {
			if decl.name == v.name {
				*v.get(&p) = decl.value
			}
		}
	}
	return p
}

type declaration struct {
	name  string
	value string
}

// declarations extracts "--name: value" pairs, ignoring comments and
// selectors.
func declarations(css string) []declaration {
	css = stripComments(css)
	var out []declaration
	for _, chunk := range strings.FieldsFunc(css, func(r rune) bool {
		return r == ';' || r == '{' || r == '}'
	}) {
		chunk = strings.TrimSpace(chunk)
		if !strings.HasPrefix(chunk, "--") {
			continue
		}
		name, value, ok := strings.Cut(chunk, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		out = append(out, declaration{name: strings.TrimSpace(name), value: value})
	}
	return out
}

func stripComments(css string) string {
	var sb strings.Builder
	for {
		start := strings.Index(css, "/*")
		if start == -1 {
			sb.WriteString(css)
			return sb.String()
		}
		sb.WriteString(css[:start])
		end := strings.Index(css[start+2:], "*/")
		if end == -1 {
			return sb.String()
		}
		css = css[start+2+end+2:]
	}
}
