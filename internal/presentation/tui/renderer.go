package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/aretw0/calinea/pkg/component"
	"github.com/aretw0/calinea/pkg/transform"
	"github.com/aretw0/calinea/pkg/translate"
)

// NewRenderer returns a function that renders markdown using glamour,
// wrapped at width columns (0 keeps glamour's default).
func NewRenderer(width int) (func(string) (string, error), error) {
	opts := []glamour.TermRendererOption{
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("markdown renderer: %w", err)
	}
	return r.Render, nil
}

// Describe writes a markdown report of the tree: its resolved plain text and
// a table with one row per node.
func Describe(title string, root *component.Node, tr *translate.Translator) string {
	if tr == nil {
		tr = translate.New(nil)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)
	fmt.Fprintf(&sb, "**Plain text:** `%s`\n\n", strings.ReplaceAll(tr.PlainText(root), "`", "'"))

	sb.WriteString("| Depth | Kind | Content | Style | Interaction |\n")
	sb.WriteString("|---|---|---|---|---|\n")
	transform.Walk(root, transform.VisitorFunc(func(n *component.Node, depth int) bool {
		fmt.Fprintf(&sb, "| %d | %s | %s | %s | %s |\n",
			depth, n.Kind(), cell(describeContent(n.Content())), cell(describeStyle(n.Style())), cell(describeInteraction(n.Interaction())))
		return true
	}))
	return sb.String()
}

func describeContent(c component.Content) string {
	switch c.Kind() {
	case component.KindText:
		return fmt.Sprintf("%q", c.Text())
	case component.KindTranslatable:
		s := fmt.Sprintf("%s (%d args)", c.Key(), c.ArgCount())
		if c.Fallback() != "" {
			s += fmt.Sprintf(", fallback %q", c.Fallback())
		}
		return s
	case component.KindKeybind:
		return c.Key()
	}
	return ""
}

func describeStyle(s component.Style) string {
	var parts []string
	if c, ok := s.Color(); ok {
		parts = append(parts, "color "+c.String())
	}
	for _, d := range component.Decorations {
		switch s.Decoration(d) {
		case component.True:
			parts = append(parts, d.String())
		case component.False:
			parts = append(parts, "not "+d.String())
		}
	}
	if f, ok := s.Font(); ok {
		parts = append(parts, "font "+f)
	}
	return strings.Join(parts, ", ")
}

func describeInteraction(i component.Interaction) string {
	var parts []string
	if i.Click != nil {
		parts = append(parts, fmt.Sprintf("click %s %q", i.Click.Action, i.Click.Value))
	}
	if i.Hover != nil {
		v := i.Hover.Value
		if i.Hover.Text != nil {
			v = transform.FlattenText(i.Hover.Text)
		}
		parts = append(parts, fmt.Sprintf("hover %s %q", i.Hover.Action, v))
	}
	return strings.Join(parts, ", ")
}

func cell(s string) string {
	if s == "" {
		return "-"
	}
	return strings.NewReplacer("|", "\\|", "\n", " ").Replace(s)
}
