package transform

import (
	"github.com/aretw0/calinea/pkg/component"
)

// Visitor is called for every node during Walk. Returning false skips the
// node's children.
type Visitor interface {
	Visit(node *component.Node, depth int) bool
}

// VisitorFunc adapts a function to the Visitor interface.
type VisitorFunc func(node *component.Node, depth int) bool

// Visit calls f.
func (f VisitorFunc) Visit(node *component.Node, depth int) bool {
	return f(node, depth)
}

// Walk visits the tree in pre-order, left to right. Translatable arguments
// are not children and are not visited.
func Walk(root *component.Node, v Visitor) {
	if root == nil {
		return
	}
	walk(root, 0, v)
}

func walk(n *component.Node, depth int, v Visitor) {
	if !v.Visit(n, depth) {
		return
	}
	for i := 0; i < n.ChildCount(); i++ {
		walk(n.Child(i), depth+1, v)
	}
}

// Collect returns every node matching pred, in pre-order.
func Collect(root *component.Node, pred func(*component.Node) bool) []*component.Node {
	var out []*component.Node
	Walk(root, VisitorFunc(func(n *component.Node, _ int) bool {
		if pred(n) {
			out = append(out, n)
		}
		return true
	}))
	return out
}

// MapFunc rewrites the content and style of a single node.
type MapFunc func(content component.Content, style component.Style) (component.Content, component.Style)

// Map applies fn to every node, children before their parent, and rebuilds
// the path from the leaves to the root. Translatable arguments are mapped
// before the node that owns them. A node whose children, content and style
// come back unchanged is returned as is.
//
// An error is returned when fn produces structurally invalid content.
func Map(root *component.Node, fn MapFunc) (*component.Node, error) {
	if root == nil {
		return nil, nil
	}
	return mapNode(root, fn)
}

func mapNode(n *component.Node, fn MapFunc) (*component.Node, error) {
	children, childrenChanged, err := mapAll(n.Children(), fn)
	if err != nil {
		return nil, err
	}

	content := n.Content()
	if content.ArgCount() > 0 {
		args, argsChanged, err := mapAll(content.Args(), fn)
		if err != nil {
			return nil, err
		}
		if argsChanged {
			if content, err = content.WithArgs(args...); err != nil {
				return nil, err
			}
		}
	}

	mappedContent, mappedStyle := fn(content, n.Style())
	if !childrenChanged && mappedStyle == n.Style() && mappedContent.Equal(n.Content()) {
		return n, nil
	}

	out, err := n.WithContent(mappedContent)
	if err != nil {
		return nil, err
	}
	out = out.WithStyle(mappedStyle)
	if childrenChanged {
		out = out.WithChildren(children...)
	}
	return out, nil
}

func mapAll(nodes []*component.Node, fn MapFunc) ([]*component.Node, bool, error) {
	changed := false
	for i, c := range nodes {
		mapped, err := mapNode(c, fn)
		if err != nil {
			return nil, false, err
		}
		if mapped != c {
			nodes[i] = mapped
			changed = true
		}
	}
	return nodes, changed, nil
}

// MapStyle is Map restricted to styles, which cannot fail.
func MapStyle(root *component.Node, fn func(component.Style) component.Style) *component.Node {
	out, _ := Map(root, func(c component.Content, s component.Style) (component.Content, component.Style) {
		return c, fn(s)
	})
	return out
}

// ReplaceFunc decides whether a node is substituted. When ok is true the
// returned node takes the original's place (nil removes it) and its subtree
// is not visited further.
type ReplaceFunc func(n *component.Node) (replacement *component.Node, ok bool)

// Replace substitutes whole nodes in pre-order. The root can be replaced too;
// removing the root yields nil.
func Replace(root *component.Node, fn ReplaceFunc) *component.Node {
	if root == nil {
		return nil
	}
	if r, ok := fn(root); ok {
		return r
	}
	return replaceChildren(root, fn)
}

func replaceChildren(n *component.Node, fn ReplaceFunc) *component.Node {
	if n.IsLeaf() {
		return n
	}
	children := make([]*component.Node, 0, n.ChildCount())
	changed := false
	for i := 0; i < n.ChildCount(); i++ {
		c := n.Child(i)
		r, ok := fn(c)
		if !ok {
			r = replaceChildren(c, fn)
		}
		if r != c {
			changed = true
		}
		if r != nil {
			children = append(children, r)
		}
	}
	if !changed {
		return n
	}
	return n.WithChildren(children...)
}
