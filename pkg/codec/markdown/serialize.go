package markdown

import (
	"strings"

	"github.com/aretw0/calinea/pkg/component"
	"github.com/aretw0/calinea/pkg/transform"
)

const punctuation = "\\`*_[]~<>#!"

// Serialize implements codec.Codec. Bold, italic and strikethrough become
// delimiters, open_url clicks become links; color, font and other
// interactions are dropped.
func (c *Codec) Serialize(node *component.Node) (string, error) {
	var sb strings.Builder
	writeNode(&sb, transform.Compact(node))
	return sb.String(), nil
}

func writeNode(sb *strings.Builder, n *component.Node) {
	if n == nil {
		return
	}
	var open, close []string
	if transform.PlainText(n) != "" {
		s := n.Style()
		if s.HasDecoration(component.Bold) {
			open, close = append(open, "**"), append([]string{"**"}, close...)
		}
		if s.HasDecoration(component.Italic) {
			open, close = append(open, "*"), append([]string{"*"}, close...)
		}
		if s.HasDecoration(component.Strikethrough) {
			open, close = append(open, "~~"), append([]string{"~~"}, close...)
		}
		if click := n.Interaction().Click; click != nil && click.Action == component.OpenURL {
			open, close = append(open, "["), append([]string{"](" + escapeURL(click.Value) + ")"}, close...)
		}
	}
	for _, o := range open {
		sb.WriteString(o)
	}
	content := n.Content()
	switch content.Kind() {
	case component.KindText:
		sb.WriteString(escape(content.Text()))
	case component.KindTranslatable:
		if content.Fallback() != "" {
			sb.WriteString(escape(content.Fallback()))
		} else {
			sb.WriteString(escape(content.Key()))
		}
	case component.KindKeybind:
		sb.WriteString(escape(content.Key()))
	}
	for i := 0; i < n.ChildCount(); i++ {
		writeNode(sb, n.Child(i))
	}
	for _, c := range close {
		sb.WriteString(c)
	}
}

func escape(s string) string {
	if !strings.ContainsAny(s, punctuation) {
		return s
	}
	var sb strings.Builder
	for _, r := range s {
		if strings.ContainsRune(punctuation, r) {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func escapeURL(u string) string {
	return strings.NewReplacer("(", "%28", ")", "%29", " ", "%20").Replace(u)
}
