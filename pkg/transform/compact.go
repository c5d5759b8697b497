package transform

import (
	"github.com/aretw0/calinea/pkg/component"
)

// Compact normalizes a tree without changing how it renders:
//
//   - empty text leaves without interaction are dropped, as are childless
//     empty-content nodes without interaction;
//   - empty-content nodes with no style and no interaction are replaced by
//     their children;
//   - adjacent text leaves with equal style and no interaction are merged;
//   - adjacent empty-content nodes with equal style and interaction have their
//     children concatenated.
//
// The root itself is never removed or spliced. Unchanged subtrees are shared.
func Compact(root *component.Node) *component.Node {
	if root == nil {
		return nil
	}
	return compactNode(root)
}

func compactNode(n *component.Node) *component.Node {
	if n.IsLeaf() {
		return n
	}
	orig := n.Children()
	children := compactList(orig)
	if sameNodes(orig, children) {
		return n
	}
	return n.WithChildren(children...)
}

func compactList(nodes []*component.Node) []*component.Node {
	out := make([]*component.Node, 0, len(nodes))
	for _, c := range nodes {
		c = compactNode(c)
		if droppable(c) {
			continue
		}
		if transparent(c) {
			for _, gc := range c.Children() {
				out = appendMerged(out, gc)
			}
			continue
		}
		out = appendMerged(out, c)
	}
	return out
}

// appendMerged appends n, folding it into the last element when possible.
func appendMerged(out []*component.Node, n *component.Node) []*component.Node {
	if len(out) == 0 {
		return append(out, n)
	}
	last := out[len(out)-1]
	switch {
	case mergeableText(last, n):
		merged := component.Text(last.Content().Text()+n.Content().Text(), last.Style())
		out[len(out)-1] = merged
	case mergeableGroup(last, n):
		kids := append(last.Children(), n.Children()...)
		out[len(out)-1] = last.WithChildren(compactList(kids)...)
	default:
		out = append(out, n)
	}
	return out
}

func droppable(n *component.Node) bool {
	if !n.IsLeaf() || !n.Interaction().IsEmpty() {
		return false
	}
	switch n.Kind() {
	case component.KindText:
		return n.Content().Text() == ""
	case component.KindEmpty:
		return true
	}
	return false
}

func transparent(n *component.Node) bool {
	return n.Kind() == component.KindEmpty && n.Style().IsEmpty() && n.Interaction().IsEmpty()
}

func mergeableText(a, b *component.Node) bool {
	return a.Kind() == component.KindText && b.Kind() == component.KindText &&
		a.IsLeaf() && b.IsLeaf() &&
		a.Style() == b.Style() &&
		a.Interaction().IsEmpty() && b.Interaction().IsEmpty()
}

func mergeableGroup(a, b *component.Node) bool {
	return a.Kind() == component.KindEmpty && b.Kind() == component.KindEmpty &&
		a.Style() == b.Style() &&
		a.Interaction().Equal(b.Interaction())
}

func sameNodes(a, b []*component.Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Join returns an empty-content node whose children are nodes separated by
// separator. A nil separator concatenates. Nil entries are skipped.
func Join(separator *component.Node, nodes ...*component.Node) *component.Node {
	children := make([]*component.Node, 0, 2*len(nodes))
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if len(children) > 0 && separator != nil {
			children = append(children, separator)
		}
		children = append(children, n)
	}
	return component.Empty(children...)
}
