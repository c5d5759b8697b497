package component

import (
	"fmt"
	"strings"
)

// Decoration identifies one of the boolean formatting flags.
type Decoration uint8

const (
	Bold Decoration = iota
	Italic
	Underlined
	Strikethrough
	Obfuscated

	decorationCount
)

// Decorations lists every decoration in canonical order.
var Decorations = []Decoration{Bold, Italic, Underlined, Strikethrough, Obfuscated}

var decorationNames = [decorationCount]string{"bold", "italic", "underlined", "strikethrough", "obfuscated"}

func (d Decoration) String() string {
	if d < decorationCount {
		return decorationNames[d]
	}
	return fmt.Sprintf("decoration(%d)", uint8(d))
}

// ParseDecoration resolves a decoration by its canonical name.
func ParseDecoration(name string) (Decoration, bool) {
	name = strings.ToLower(name)
	for i, n := range decorationNames {
		if n == name {
			return Decoration(i), true
		}
	}
	return 0, false
}

// Style holds formatting attributes. Every attribute is optional; the zero
// value is the empty style. Style is comparable with ==.
type Style struct {
	color       Color
	hasColor    bool
	decorations [decorationCount]TriState
	font        string
}

// EmptyStyle is the style with every attribute unset.
var EmptyStyle = Style{}

// NewStyle builds a style from a color and a set of enabled decorations.
func NewStyle(color Color, decorations ...Decoration) Style {
	s := Style{color: color, hasColor: true}
	for _, d := range decorations {
		s.decorations[d] = True
	}
	return s
}

// Color returns the color and whether it is set.
func (s Style) Color() (Color, bool) {
	return s.color, s.hasColor
}

// WithColor returns a copy with the color set.
func (s Style) WithColor(c Color) Style {
	s.color, s.hasColor = c, true
	return s
}

// WithoutColor returns a copy with the color unset.
func (s Style) WithoutColor() Style {
	s.color, s.hasColor = Color{}, false
	return s
}

// Decoration returns the state of a decoration.
func (s Style) Decoration(d Decoration) TriState {
	if d >= decorationCount {
		return Unset
	}
	return s.decorations[d]
}

// HasDecoration reports whether d is explicitly enabled.
func (s Style) HasDecoration(d Decoration) bool {
	return s.Decoration(d) == True
}

// WithDecoration returns a copy with d set to state.
func (s Style) WithDecoration(d Decoration, state TriState) Style {
	if d < decorationCount {
		s.decorations[d] = state
	}
	return s
}

// Font returns the font identifier and whether it is set.
func (s Style) Font() (string, bool) {
	return s.font, s.font != ""
}

// WithFont returns a copy with the font set. An empty identifier unsets it.
func (s Style) WithFont(font string) Style {
	s.font = font
	return s
}

// IsEmpty reports whether every attribute is unset.
func (s Style) IsEmpty() bool {
	return s == EmptyStyle
}

// Merge fills the attributes left unset in s with the parent's values.
func (s Style) Merge(parent Style) Style {
	return Merge(s, parent)
}

// Merge combines a child style with its parent: per attribute the child's
// value wins when set, otherwise the parent's value is used.
func Merge(child, parent Style) Style {
	out := child
	if !out.hasColor && parent.hasColor {
		out.color, out.hasColor = parent.color, true
	}
	for i := range out.decorations {
		if out.decorations[i] == Unset {
			out.decorations[i] = parent.decorations[i]
		}
	}
	if out.font == "" {
		out.font = parent.font
	}
	return out
}

// Fold merges styles ordered from the most specific to the least specific.
func Fold(styles ...Style) Style {
	out := EmptyStyle
	for i := len(styles) - 1; i >= 0; i-- {
		out = Merge(styles[i], out)
	}
	return out
}

// Without returns a copy of s where every attribute that is equal in other is
// unset. It yields the minimal style that, merged onto other, reproduces s.
func (s Style) Without(other Style) Style {
	out := s
	if out.hasColor && other.hasColor && out.color == other.color {
		out.color, out.hasColor = Color{}, false
	}
	for i := range out.decorations {
		if out.decorations[i] == other.decorations[i] {
			out.decorations[i] = Unset
		}
	}
	if out.font == other.font {
		out.font = ""
	}
	return out
}

func (s Style) String() string {
	if s.IsEmpty() {
		return "{}"
	}
	parts := make([]string, 0, 7)
	if s.hasColor {
		parts = append(parts, "color="+s.color.String())
	}
	for _, d := range Decorations {
		if st := s.decorations[d]; st.IsSet() {
			parts = append(parts, d.String()+"="+st.String())
		}
	}
	if s.font != "" {
		parts = append(parts, "font="+s.font)
	}
	return "{" + strings.Join(parts, " ") + "}"
}
