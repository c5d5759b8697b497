package markup

import (
	"strings"

	"github.com/aretw0/calinea/pkg/component"
	"github.com/aretw0/calinea/pkg/transform"
)

// Serialize implements codec.Codec. The tree is compacted first, then
// written node by node: a node's own attributes open tags in a fixed order
// (color, decorations, font, click, hover) that close after its children.
// Empty nodes without style or interaction produce no tags.
func (c *Codec) Serialize(node *component.Node) (string, error) {
	var sb strings.Builder
	writeNode(&sb, transform.Compact(node))
	return sb.String(), nil
}

type tagPair struct {
	open, close string
}

func writeNode(sb *strings.Builder, n *component.Node) {
	if n == nil {
		return
	}
	pairs := tagsFor(n)
	for _, t := range pairs {
		sb.WriteString(t.open)
	}

	content := n.Content()
	switch content.Kind() {
	case component.KindText:
		sb.WriteString(escapeText(content.Text()))
	case component.KindTranslatable:
		writeTranslatable(sb, content)
	case component.KindKeybind:
		sb.WriteString("<key:" + bareOrQuoted(content.Key(), "") + ">")
	}
	for i := 0; i < n.ChildCount(); i++ {
		writeNode(sb, n.Child(i))
	}

	for i := len(pairs) - 1; i >= 0; i-- {
		sb.WriteString(pairs[i].close)
	}
}

func writeTranslatable(sb *strings.Builder, content component.Content) {
	if content.Fallback() != "" {
		sb.WriteString("<lang_or:" + bareOrQuoted(content.Key(), ":") + ":" + quoteArg(content.Fallback()))
	} else {
		sb.WriteString("<lang:" + bareOrQuoted(content.Key(), ":"))
	}
	for i := 0; i < content.ArgCount(); i++ {
		var arg strings.Builder
		writeNode(&arg, content.Arg(i))
		sb.WriteString(":" + quoteArg(arg.String()))
	}
	sb.WriteString(">")
}

func tagsFor(n *component.Node) []tagPair {
	var out []tagPair
	s := n.Style()
	if c, ok := s.Color(); ok {
		name := c.Name()
		if name == "" {
			name = c.Hex()
		}
		out = append(out, tagPair{"<" + name + ">", "</" + name + ">"})
	}
	for _, d := range component.Decorations {
		switch s.Decoration(d) {
		case component.True:
			out = append(out, tagPair{"<" + d.String() + ">", "</" + d.String() + ">"})
		case component.False:
			out = append(out, tagPair{"<!" + d.String() + ">", "</!" + d.String() + ">"})
		}
	}
	if font, ok := s.Font(); ok {
		out = append(out, tagPair{"<font:" + bareOrQuoted(font, "") + ">", "</font>"})
	}
	inter := n.Interaction()
	if inter.Click != nil {
		out = append(out, tagPair{"<click:" + string(inter.Click.Action) + ":" + quoteArg(inter.Click.Value) + ">", "</click>"})
	}
	if inter.Hover != nil {
		value := inter.Hover.Value
		if inter.Hover.Action == component.ShowText {
			var text strings.Builder
			writeNode(&text, inter.Hover.Text)
			value = text.String()
		}
		out = append(out, tagPair{"<hover:" + string(inter.Hover.Action) + ":" + quoteArg(value) + ">", "</hover>"})
	}
	return out
}

// bareOrQuoted quotes identifiers that the lexer would otherwise split or
// terminate early. Colons stay bare unless listed in special, since font and
// keybind tags rejoin their arguments.
func bareOrQuoted(s, special string) string {
	if s == "" || strings.ContainsAny(s, `'"<>\ `+special) {
		return quoteArg(s)
	}
	return s
}
