// Package graph renders component trees as Mermaid flowcharts.
package graph

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/aretw0/calinea/pkg/component"
)

// maxLabel bounds the text shown inside a node box.
const maxLabel = 24

// GraphOverlay marks nodes by path (the same paths the linter reports: child
// indexes joined by dots, with "args[i]" and "hover" steps).
type GraphOverlay struct {
	Flagged []string
}

// GenerateMermaid produces a Mermaid flowchart syntax string for a tree.
// It applies semantic styling:
// - Empty (group): ((Circle))
// - Translatable: [[Subroutine]]
// - Keybind: [/Parallelogram/]
// - Text: [Rectangle]
// Children hang off solid arrows; translation arguments and hover text off
// dotted, labeled ones.
func GenerateMermaid(root *component.Node, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	if root != nil {
		writeNode(&sb, root, "")
	}

	if overlay != nil && len(overlay.Flagged) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef flagged fill:#ffebee,stroke:#c62828,stroke-width:2px,color:#000;\n")
		seen := make(map[string]bool)
		for _, p := range overlay.Flagged {
			id := nodeID(p)
			if !seen[id] {
				seen[id] = true
				sb.WriteString(fmt.Sprintf("    class %s flagged;\n", id))
			}
		}
	}
	return sb.String()
}

func writeNode(sb *strings.Builder, n *component.Node, path string) {
	id := nodeID(path)

	opener, closer := "[", "]"
	switch n.Kind() {
	case component.KindEmpty:
		opener, closer = "((", "))"
	case component.KindTranslatable:
		opener, closer = "[[", "]]"
	case component.KindKeybind:
		opener, closer = "[/", "/]"
	}
	sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", id, opener, label(n), closer))

	c := n.Content()
	for i := 0; i < c.ArgCount(); i++ {
		child := join(path, fmt.Sprintf("args[%d]", i))
		writeNode(sb, c.Arg(i), child)
		sb.WriteString(fmt.Sprintf("    %s -. \"arg %d\" .-> %s\n", id, i, nodeID(child)))
	}
	if h := n.Interaction().Hover; h != nil && h.Text != nil {
		child := join(path, "hover")
		writeNode(sb, h.Text, child)
		sb.WriteString(fmt.Sprintf("    %s -. \"hover\" .-> %s\n", id, nodeID(child)))
	}
	for i := 0; i < n.ChildCount(); i++ {
		child := join(path, strconv.Itoa(i))
		writeNode(sb, n.Child(i), child)
		sb.WriteString(fmt.Sprintf("    %s --> %s\n", id, nodeID(child)))
	}
}

func label(n *component.Node) string {
	c := n.Content()
	var parts []string
	switch n.Kind() {
	case component.KindText:
		parts = append(parts, quote(c.Text()))
	case component.KindTranslatable:
		parts = append(parts, "tr "+quote(c.Key()))
	case component.KindKeybind:
		parts = append(parts, "key "+quote(c.Key()))
	default:
		parts = append(parts, "group")
	}
	if s := styleSummary(n.Style()); s != "" {
		parts = append(parts, s)
	}
	if click := n.Interaction().Click; click != nil {
		parts = append(parts, "🖱 "+string(click.Action))
	}
	return strings.Join(parts, " <br/> ")
}

func styleSummary(s component.Style) string {
	var out []string
	if c, ok := s.Color(); ok {
		out = append(out, c.String())
	}
	for _, d := range component.Decorations {
		switch s.Decoration(d) {
		case component.True:
			out = append(out, d.String())
		case component.False:
			out = append(out, "!"+d.String())
		}
	}
	if f, ok := s.Font(); ok {
		out = append(out, f)
	}
	return strings.Join(out, " ")
}

// quote shortens text for display and swaps characters Mermaid labels cannot hold.
func quote(s string) string {
	if utf8.RuneCountInString(s) > maxLabel {
		s = string([]rune(s)[:maxLabel-1]) + "…"
	}
	s = strings.NewReplacer("\"", "'", "\n", "⏎", "<", "‹", ">", "›").Replace(s)
	return "'" + s + "'"
}

func join(path, step string) string {
	if path == "" {
		return step
	}
	return path + "." + step
}

func nodeID(path string) string {
	if path == "" {
		return "root"
	}
	return "n_" + sanitizeMermaidID(path)
}

func sanitizeMermaidID(id string) string {
	return strings.NewReplacer(".", "_", "[", "_", "]", "", "-", "_").Replace(id)
}
