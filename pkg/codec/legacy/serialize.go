package legacy

import (
	"fmt"
	"strings"

	"github.com/aretw0/calinea/pkg/codec"
	"github.com/aretw0/calinea/pkg/component"
)

// Serialize implements codec.Codec. Every text-bearing node is written with
// its effective style; codes are only emitted when the style changes.
// Translatable nodes are written as their fallback (or key), keybind nodes as
// their key. Fonts and interactions are dropped.
func (c *Codec) Serialize(node *component.Node) (string, error) {
	w := writer{codec: c}
	var err error
	component.WalkEffective(node, component.EmptyStyle, func(n *component.Node, eff component.Style, _ int) bool {
		if err != nil {
			return false
		}
		if err = c.checkSupported(n, eff); err != nil {
			return false
		}
		content := n.Content()
		switch content.Kind() {
		case component.KindText:
			w.text(content.Text(), eff)
		case component.KindTranslatable:
			if content.Fallback() != "" {
				w.text(content.Fallback(), eff)
			} else {
				w.text(content.Key(), eff)
			}
		case component.KindKeybind:
			w.text(content.Key(), eff)
		}
		return true
	})
	if err != nil {
		return "", err
	}
	return w.sb.String(), nil
}

func (c *Codec) checkSupported(n *component.Node, eff component.Style) error {
	if !c.strictSerialize {
		return nil
	}
	if !n.Interaction().IsEmpty() {
		return fmt.Errorf("%w: interaction on %s", codec.ErrUnsupportedAttribute, n.Content())
	}
	if font, ok := eff.Font(); ok {
		return fmt.Errorf("%w: font %s", codec.ErrUnsupportedAttribute, font)
	}
	if color, ok := eff.Color(); ok && !color.IsNamed() && !c.hexColors {
		return fmt.Errorf("%w: rgb color %s", codec.ErrUnsupportedAttribute, color.Hex())
	}
	return nil
}

// state is what the emitted codes have established so far.
type state struct {
	color    component.Color
	hasColor bool
	decs     [5]bool
}

type writer struct {
	codec *Codec
	sb    strings.Builder
	cur   state
}

func (w *writer) target(eff component.Style) state {
	var s state
	if color, ok := eff.Color(); ok {
		if !color.IsNamed() && !w.codec.hexColors {
			color = color.Nearest()
		}
		s.color, s.hasColor = color, true
	}
	for i, d := range component.Decorations {
		s.decs[i] = eff.HasDecoration(d)
	}
	return s
}

func (w *writer) text(text string, eff component.Style) {
	if text == "" {
		return
	}
	want := w.target(eff)
	if want != w.cur {
		w.transition(want)
	}
	for _, r := range text {
		if r == w.codec.control || r == escape {
			w.sb.WriteRune(escape)
		}
		w.sb.WriteRune(r)
	}
}

func (w *writer) transition(want state) {
	needReset := want.hasColor != w.cur.hasColor || want.color != w.cur.color
	for i := range want.decs {
		if w.cur.decs[i] && !want.decs[i] {
			needReset = true
		}
	}
	if needReset {
		if want.hasColor {
			w.color(want.color)
		} else {
			w.code('r')
		}
		w.cur = state{color: want.color, hasColor: want.hasColor}
	}
	for i, d := range component.Decorations {
		if want.decs[i] && !w.cur.decs[i] {
			w.code(codeByDecoration[d])
		}
	}
	w.cur = want
}

func (w *writer) color(c component.Color) {
	if code, ok := c.Code(); ok {
		w.code(code)
		return
	}
	w.sb.WriteRune(w.codec.control)
	w.sb.WriteString(c.Hex())
}

func (w *writer) code(code rune) {
	w.sb.WriteRune(w.codec.control)
	w.sb.WriteRune(code)
}
