// Package tui renders component trees for terminals: an ANSI preview, a
// markdown description and the CLI banner.
package tui

import (
	"strings"

	"github.com/muesli/termenv"

	"github.com/aretw0/calinea/pkg/component"
	"github.com/aretw0/calinea/pkg/translate"
)

// obfuscatedGlyph stands in for every non-space rune of obfuscated text.
const obfuscatedGlyph = "▒"

// Previewer renders trees as styled terminal text.
type Previewer struct {
	profile    termenv.Profile
	translator *translate.Translator
}

// NewPreviewer creates a previewer for the given color profile. Translatable
// and keybind content is resolved with tr, or with an empty pack when nil.
func NewPreviewer(profile termenv.Profile, tr *translate.Translator) *Previewer {
	if tr == nil {
		tr = translate.New(nil)
	}
	return &Previewer{profile: profile, translator: tr}
}

// Render returns the tree's text with its effective styles as ANSI sequences.
// Links become OSC 8 hyperlinks. The Ascii profile yields plain text, with
// obfuscated runs masked.
func (p *Previewer) Render(root *component.Node) string {
	var sb strings.Builder
	resolved := p.translator.Resolve(root)
	component.WalkEffective(resolved, component.EmptyStyle, func(n *component.Node, eff component.Style, _ int) bool {
		if n.Kind() != component.KindText || n.Content().Text() == "" {
			return true
		}
		var link string
		if c := n.Interaction().Click; c != nil && c.Action == component.OpenURL {
			link = c.Value
		}
		p.write(&sb, n.Content().Text(), eff, link)
		return true
	})
	return sb.String()
}

func (p *Previewer) write(sb *strings.Builder, text string, s component.Style, link string) {
	if s.HasDecoration(component.Obfuscated) {
		text = obfuscate(text)
	}
	// Style each line on its own so sequences never span a line break.
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			sb.WriteByte('\n')
		}
		if line == "" {
			continue
		}
		out := p.style(line, s)
		if link != "" && p.profile != termenv.Ascii {
			out = termenv.Hyperlink(link, out)
		}
		sb.WriteString(out)
	}
}

func (p *Previewer) style(text string, s component.Style) string {
	if p.profile == termenv.Ascii {
		return text
	}
	out := p.profile.String(text)
	if c, ok := s.Color(); ok {
		out = out.Foreground(p.profile.Color(c.Hex()))
	}
	if s.HasDecoration(component.Bold) {
		out = out.Bold()
	}
	if s.HasDecoration(component.Italic) {
		out = out.Italic()
	}
	if s.HasDecoration(component.Underlined) {
		out = out.Underline()
	}
	if s.HasDecoration(component.Strikethrough) {
		out = out.CrossOut()
	}
	return out.String()
}

func obfuscate(text string) string {
	var sb strings.Builder
	for _, r := range text {
		switch r {
		case ' ', '\n':
			sb.WriteRune(r)
		default:
			sb.WriteString(obfuscatedGlyph)
		}
	}
	return sb.String()
}
