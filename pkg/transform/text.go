package transform

import (
	"strings"

	"github.com/aretw0/calinea/pkg/component"
)

// FlattenText concatenates the literal text of the tree, depth-first and left
// to right. Style, interaction, translatable and keybind content are ignored.
func FlattenText(root *component.Node) string {
	var sb strings.Builder
	Walk(root, VisitorFunc(func(n *component.Node, _ int) bool {
		if n.Kind() == component.KindText {
			sb.WriteString(n.Content().Text())
		}
		return true
	}))
	return sb.String()
}

// TextResolver renders a translatable or keybind node as text. ok reports
// whether it produced a value; otherwise PlainText falls back to its default.
type TextResolver func(n *component.Node) (text string, ok bool)

type plainOptions struct {
	resolve TextResolver
}

// PlainOption configures PlainText.
type PlainOption func(*plainOptions)

// WithResolver renders translatable and keybind nodes through r.
func WithResolver(r TextResolver) PlainOption {
	return func(o *plainOptions) {
		o.resolve = r
	}
}

// PlainText extracts readable text from the tree. Unlike FlattenText it
// includes non-literal content: translatable nodes render as their fallback
// (or key) followed by their arguments, keybind nodes as their key, unless a
// resolver supplies the text.
func PlainText(root *component.Node, opts ...PlainOption) string {
	var o plainOptions
	for _, opt := range opts {
		opt(&o)
	}
	var sb strings.Builder
	writePlain(&sb, root, &o)
	return sb.String()
}

func writePlain(sb *strings.Builder, n *component.Node, o *plainOptions) {
	if n == nil {
		return
	}
	c := n.Content()
	switch c.Kind() {
	case component.KindText:
		sb.WriteString(c.Text())
	case component.KindTranslatable, component.KindKeybind:
		if o.resolve != nil {
			if s, ok := o.resolve(n); ok {
				sb.WriteString(s)
				break
			}
		}
		if c.Kind() == component.KindKeybind {
			sb.WriteString(c.Key())
			break
		}
		if c.Fallback() != "" {
			sb.WriteString(c.Fallback())
		} else {
			sb.WriteString(c.Key())
		}
		for i := 0; i < c.ArgCount(); i++ {
			sb.WriteByte(' ')
			writePlain(sb, c.Arg(i), o)
		}
	}
	for i := 0; i < n.ChildCount(); i++ {
		writePlain(sb, n.Child(i), o)
	}
}
