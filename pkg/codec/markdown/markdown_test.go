package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/calinea/pkg/codec"
	"github.com/aretw0/calinea/pkg/component"
	"github.com/aretw0/calinea/pkg/transform"
)

func styleOf(t *testing.T, root *component.Node, text string) (component.Style, component.Interaction) {
	t.Helper()
	var style *component.Style
	var inter component.Interaction
	var walk func(n *component.Node, parent component.Style, parentInter component.Interaction)
	walk = func(n *component.Node, parent component.Style, parentInter component.Interaction) {
		eff := component.Merge(n.Style(), parent)
		in := n.Interaction()
		if in.IsEmpty() {
			in = parentInter
		}
		if style == nil && n.Kind() == component.KindText && n.Content().Text() == text {
			style, inter = &eff, in
		}
		for _, c := range n.Children() {
			walk(c, eff, in)
		}
	}
	walk(root, component.EmptyStyle, component.Interaction{})
	require.NotNil(t, style, "no text %q in\n%s", text, root)
	return *style, inter
}

func TestParse_Inline(t *testing.T) {
	node, err := New().Parse("plain *it* **bold** ~~gone~~ `code` [site](https://example.com)")
	require.NoError(t, err)

	assert.Equal(t, "plain it bold gone code site", transform.FlattenText(node))
	s, _ := styleOf(t, node, "it")
	assert.True(t, s.HasDecoration(component.Italic))
	s, _ = styleOf(t, node, "bold")
	assert.True(t, s.HasDecoration(component.Bold))
	s, _ = styleOf(t, node, "gone")
	assert.True(t, s.HasDecoration(component.Strikethrough))
	s, _ = styleOf(t, node, "code")
	font, _ := s.Font()
	assert.Equal(t, CodeFont, font)
	s, in := styleOf(t, node, "site")
	assert.True(t, s.HasDecoration(component.Underlined))
	require.NotNil(t, in.Click)
	assert.Equal(t, "https://example.com", in.Click.Value)
}

func TestParse_BlocksAndHeadings(t *testing.T) {
	node, err := New().Parse("# Title\n\nfirst\nline\n\nsecond")
	require.NoError(t, err)
	assert.Equal(t, "Title\n\nfirst\nline\n\nsecond", transform.FlattenText(node))
	s, _ := styleOf(t, node, "Title")
	assert.True(t, s.HasDecoration(component.Bold))
}

func TestParse_StrictRejectsUnsupported(t *testing.T) {
	for _, in := range []string{"```\ncode\n```", "![alt](img.png)", "a <span>b</span>"} {
		_, err := New().Parse(in, codec.StrictMode())
		assert.ErrorIs(t, err, codec.ErrParse, in)

		node, err := New().Parse(in)
		require.NoError(t, err, in)
		assert.NotEmpty(t, transform.FlattenText(node), in)
	}
}

func TestSerialize(t *testing.T) {
	tree := component.Empty(
		component.Text("a*b "),
		component.NewBuilder().Bold().AppendChild(component.Text("strong")).MustBuild(),
		component.Text(" "),
		component.NewBuilder().Text("link").Click(component.OpenURL, "https://example.com").MustBuild(),
	)
	out, err := New().Serialize(tree)
	require.NoError(t, err)
	assert.Equal(t, `a\*b **strong** [link](https://example.com)`, out)

	back, err := New().Parse(out)
	require.NoError(t, err)
	assert.Equal(t, "a*b strong link", transform.FlattenText(back))
}
