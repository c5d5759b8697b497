package transform

import (
	"testing"

	"github.com/aretw0/calinea/pkg/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *component.Node {
	return component.NewBuilder().
		WithStyle(component.NewStyle(component.Red)).
		AppendChild(component.Text("Hello ")).
		AppendChild(component.Empty(component.Text("World", component.EmptyStyle.WithDecoration(component.Bold, component.True)))).
		MustBuild()
}

func TestFlattenText(t *testing.T) {
	tree := component.Empty(component.Text("Hello "), component.Text("World"))
	assert.Equal(t, "Hello World", FlattenText(tree))
	assert.Equal(t, "Hello World", FlattenText(sample()))
	assert.Equal(t, "", FlattenText(nil))
}

func TestWalk_PreOrderAndSkip(t *testing.T) {
	var order []string
	var depths []int
	Walk(sample(), VisitorFunc(func(n *component.Node, depth int) bool {
		order = append(order, n.Content().String())
		depths = append(depths, depth)
		return true
	}))
	assert.Equal(t, []string{"empty", `text("Hello ")`, "empty", `text("World")`}, order)
	assert.Equal(t, []int{0, 1, 1, 2}, depths)

	count := 0
	Walk(sample(), VisitorFunc(func(n *component.Node, depth int) bool {
		count++
		return depth == 0
	}))
	assert.Equal(t, 3, count)
}

func TestMap_PostOrderAndSharing(t *testing.T) {
	tree := sample()
	untouched := tree.Child(0)

	var visited []string
	out, err := Map(tree, func(c component.Content, s component.Style) (component.Content, component.Style) {
		visited = append(visited, c.String())
		if c.Kind() == component.KindText && c.Text() == "World" {
			return component.TextContent("Gopher"), s
		}
		return c, s
	})
	require.NoError(t, err)

	assert.Equal(t, []string{`text("Hello ")`, `text("World")`, "empty", "empty"}, visited)
	assert.Equal(t, "Hello Gopher", FlattenText(out))
	assert.Equal(t, "Hello World", FlattenText(tree), "input must not change")
	assert.Same(t, untouched, out.Child(0))
	assert.NotSame(t, tree, out)
}

func TestMap_IdentityReturnsSameTree(t *testing.T) {
	tree := sample()
	out, err := Map(tree, func(c component.Content, s component.Style) (component.Content, component.Style) {
		return c, s
	})
	require.NoError(t, err)
	assert.Same(t, tree, out)
}

func TestMap_InvalidContent(t *testing.T) {
	_, err := Map(sample(), func(c component.Content, s component.Style) (component.Content, component.Style) {
		return component.KeybindContent(""), s
	})
	assert.ErrorIs(t, err, component.ErrInvalidContentKind)
}

func TestMap_TranslatableArgs(t *testing.T) {
	tree := component.Translatable("chat.type.text", component.Text("steve"), component.Text("hi"))
	out := MapStyle(tree, func(s component.Style) component.Style {
		return s.WithDecoration(component.Italic, component.True)
	})
	require.Equal(t, 2, out.Content().ArgCount())
	assert.True(t, out.Content().Arg(0).Style().HasDecoration(component.Italic))
	assert.True(t, out.Style().HasDecoration(component.Italic))
}

func TestReplace(t *testing.T) {
	tree := component.Empty(component.Text("a"), component.Keybind("key.jump"), component.Text("c"))
	out := Replace(tree, func(n *component.Node) (*component.Node, bool) {
		if n.Kind() == component.KindKeybind {
			return component.Text("[Space]"), true
		}
		return nil, false
	})
	assert.Equal(t, "a[Space]c", FlattenText(out))

	removed := Replace(tree, func(n *component.Node) (*component.Node, bool) {
		if n.Kind() == component.KindKeybind {
			return nil, true
		}
		return nil, false
	})
	assert.Equal(t, 2, removed.ChildCount())

	same := Replace(tree, func(*component.Node) (*component.Node, bool) { return nil, false })
	assert.Same(t, tree, same)
}

func TestPlainText(t *testing.T) {
	tree := component.Empty(
		component.Text("Press "),
		component.Keybind("key.jump"),
		component.Text(": "),
		component.Translatable("death.attack.fall", component.Text("Alex")),
	)
	assert.Equal(t, "Press key.jump: death.attack.fall Alex", PlainText(tree))

	resolved := PlainText(tree, WithResolver(func(n *component.Node) (string, bool) {
		if n.Kind() == component.KindKeybind {
			return "Space", true
		}
		return "", false
	}))
	assert.Equal(t, "Press Space: death.attack.fall Alex", resolved)
}

func TestCompact(t *testing.T) {
	red := component.NewStyle(component.Red)
	tree := component.Empty(
		component.Text("a", red),
		component.Text("b", red),
		component.Text(""),
		component.Empty(component.Text("c", red)),
		component.Empty(),
		component.Text("d"),
	)
	out := Compact(tree)

	require.Equal(t, 2, out.ChildCount())
	assert.True(t, out.Child(0).Equal(component.Text("abc", red)))
	assert.True(t, out.Child(1).Equal(component.Text("d")))
	assert.Equal(t, FlattenText(tree), FlattenText(out))
}

func TestCompact_MergesEqualGroups(t *testing.T) {
	bold := component.EmptyStyle.WithDecoration(component.Bold, component.True)
	tree := component.Empty(
		component.Empty(component.Text("x")).WithStyle(bold),
		component.Empty(component.Text("y")).WithStyle(bold),
	)
	out := Compact(tree)
	require.Equal(t, 1, out.ChildCount())
	group := out.Child(0)
	assert.Equal(t, bold, group.Style())
	require.Equal(t, 1, group.ChildCount())
	assert.Equal(t, "xy", group.Child(0).Content().Text())
}

func TestCompact_KeepsInteractions(t *testing.T) {
	link := component.NewBuilder().Text("a").Click(component.OpenURL, "https://example.com").MustBuild()
	tree := component.Empty(link, component.Text("b"))
	out := Compact(tree)
	assert.Same(t, tree, out)
}

func TestJoin(t *testing.T) {
	sep := component.Text(", ")
	out := Join(sep, component.Text("a"), nil, component.Text("b"), component.Text("c"))
	assert.Equal(t, "a, b, c", FlattenText(out))
	assert.Equal(t, "ab", FlattenText(Join(nil, component.Text("a"), component.Text("b"))))
}
