package component

// Resolve computes the effective style of node given its ancestors, listed
// root-first (the path from the root down to the node's parent). The node's
// own style has the highest precedence; the root only contributes attributes
// left unset by every descendant on the path.
func Resolve(node *Node, ancestors ...*Node) Style {
	out := EmptyStyle
	if node != nil {
		out = node.style
	}
	for i := len(ancestors) - 1; i >= 0; i-- {
		if ancestors[i] != nil {
			out = Merge(out, ancestors[i].style)
		}
	}
	return out
}

// ResolveChain folds styles ordered from the most specific to the root.
func ResolveChain(styles ...Style) Style {
	return Fold(styles...)
}

// EffectiveFunc is called for each node during WalkEffective. Returning false
// skips the node's children.
type EffectiveFunc func(node *Node, effective Style, depth int) bool

// WalkEffective visits the tree in pre-order, passing each node's effective
// style computed from base (the style inherited from outside the tree).
func WalkEffective(root *Node, base Style, fn EffectiveFunc) {
	if root == nil {
		return
	}
	walkEffective(root, base, 0, fn)
}

func walkEffective(n *Node, parent Style, depth int, fn EffectiveFunc) {
	effective := Merge(n.style, parent)
	if !fn(n, effective, depth) {
		return
	}
	for _, c := range n.children {
		walkEffective(c, effective, depth+1, fn)
	}
}
