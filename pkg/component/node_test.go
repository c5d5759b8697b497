package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNode_Equal(t *testing.T) {
	build := func() *Node {
		return NewBuilder().
			Translatable("death.attack.mob").
			Args(Text("Alex"), Keybind("key.jump")).
			Color(DarkRed).
			HoverText(Text("tooltip", NewStyle(Gray))).
			AppendChild(Text("!")).
			MustBuild()
	}
	a, b := build(), build()
	assert.True(t, a.Equal(b))

	assert.False(t, a.Equal(a.WithStyle(EmptyStyle)))
	assert.False(t, a.Equal(a.Append(Text("?"))))
	assert.False(t, a.Equal(a.WithInteraction(Interaction{})))
	assert.False(t, a.Equal(nil))

	var nilNode *Node
	assert.True(t, nilNode.Equal(nil))
}

func TestNode_ImmutableAccessors(t *testing.T) {
	n := Empty(Text("a"), Text("b"))
	kids := n.Children()
	kids[0] = Text("changed")
	assert.Equal(t, "a", n.Child(0).Content().Text())

	i := NewBuilder().Click(OpenURL, "https://example.com").MustBuild()
	inter := i.Interaction()
	inter.Click.Value = "https://evil.example"
	assert.Equal(t, "https://example.com", i.Interaction().Click.Value)
}

func TestNode_WithStyleSharesChildren(t *testing.T) {
	child := Text("shared")
	n := Empty(child)
	restyled := n.WithStyle(NewStyle(Red))
	assert.Same(t, child, restyled.Child(0))
	assert.True(t, n.Style().IsEmpty())
}

func TestNode_EmptyDropsNilChildren(t *testing.T) {
	n := Empty(nil, Text("x"), nil)
	assert.Equal(t, 1, n.ChildCount())
}
