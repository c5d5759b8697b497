package component

import (
	"fmt"
	"strings"
)

// Node is an immutable element of a component tree. Nodes never reference
// their parent, so any subtree can be reused in other trees.
type Node struct {
	content     Content
	style       Style
	children    []*Node
	interaction Interaction
}

// Text returns a literal text node. At most one style is applied.
func Text(text string, style ...Style) *Node {
	n := &Node{content: TextContent(text)}
	if len(style) > 0 {
		n.style = style[0]
	}
	return n
}

// Translatable returns a translatable node. It panics on an empty key; use
// the Builder to get an error instead.
func Translatable(key string, args ...*Node) *Node {
	c, err := NewTranslatableContent(key, "", args...)
	if err != nil {
		panic(err)
	}
	return &Node{content: c}
}

// Keybind returns a key binding node.
func Keybind(key string) *Node {
	return &Node{content: KeybindContent(key)}
}

// Empty returns a structural node grouping the given children.
func Empty(children ...*Node) *Node {
	return &Node{children: compactNil(children)}
}

// Newline returns a text node containing a single line feed.
func Newline() *Node {
	return Text("\n")
}

// Content returns the node payload.
func (n *Node) Content() Content { return n.content }

// Kind is a shortcut for Content().Kind().
func (n *Node) Kind() ContentKind { return n.content.kind }

// Style returns the node's own (non-inherited) style.
func (n *Node) Style() Style { return n.style }

// Interaction returns a copy of the node's click and hover behavior.
func (n *Node) Interaction() Interaction { return n.interaction.clone() }

// Children returns a copy of the child list.
func (n *Node) Children() []*Node { return copyNodes(n.children) }

// ChildCount returns the number of children.
func (n *Node) ChildCount() int { return len(n.children) }

// Child returns the i-th child.
func (n *Node) Child(i int) *Node { return n.children[i] }

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.children) == 0 }

// WithStyle returns a copy of the node with its own style replaced.
// Children are shared with the receiver.
func (n *Node) WithStyle(s Style) *Node {
	out := *n
	out.style = s
	return &out
}

// WithContent returns a copy with the content replaced.
func (n *Node) WithContent(c Content) (*Node, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}
	out := *n
	out.content = c
	return &out, nil
}

// WithChildren returns a copy with the child list replaced.
func (n *Node) WithChildren(children ...*Node) *Node {
	out := *n
	out.children = compactNil(children)
	return &out
}

// Append returns a copy with extra children appended.
func (n *Node) Append(children ...*Node) *Node {
	out := *n
	merged := make([]*Node, 0, len(n.children)+len(children))
	merged = append(merged, n.children...)
	merged = append(merged, compactNil(children)...)
	out.children = merged
	return &out
}

// WithInteraction returns a copy with the interaction replaced.
func (n *Node) WithInteraction(i Interaction) *Node {
	out := *n
	out.interaction = i.clone()
	return &out
}

// ToBuilder returns a builder seeded with the node's state.
func (n *Node) ToBuilder() *Builder {
	b := NewBuilder()
	b.content = n.content
	b.style = n.style
	b.interaction = n.interaction.clone()
	for _, c := range n.children {
		b.children = append(b.children, child{node: c})
	}
	return b
}

// Equal reports structural equality: content, style, interaction and
// children compared recursively. Two nil nodes are equal.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n == o {
		return true
	}
	return n.style == o.style &&
		n.content.Equal(o.content) &&
		n.interaction.Equal(o.interaction) &&
		nodesEqual(n.children, o.children)
}

// String renders a compact debug representation of the tree.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	var sb strings.Builder
	n.writeDebug(&sb, 0)
	return sb.String()
}

func (n *Node) writeDebug(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(n.content.String())
	if !n.style.IsEmpty() {
		sb.WriteString(" ")
		sb.WriteString(n.style.String())
	}
	if n.interaction.Click != nil {
		fmt.Fprintf(sb, " click=%s:%q", n.interaction.Click.Action, n.interaction.Click.Value)
	}
	if n.interaction.Hover != nil {
		fmt.Fprintf(sb, " hover=%s", n.interaction.Hover.Action)
	}
	sb.WriteString("\n")
	for _, c := range n.children {
		c.writeDebug(sb, depth+1)
	}
}

func nodesEqual(a, b []*Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func compactNil(nodes []*Node) []*Node {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if n != nil {
			out = append(out, n)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
