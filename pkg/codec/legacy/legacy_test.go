package legacy

import (
	"testing"

	"github.com/aretw0/calinea/pkg/codec"
	"github.com/aretw0/calinea/pkg/component"
	"github.com/aretw0/calinea/pkg/transform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Runs(t *testing.T) {
	node, err := New().Parse("&cHello &lworld&r!")
	require.NoError(t, err)

	require.Equal(t, 3, node.ChildCount())
	assert.True(t, node.Child(0).Equal(component.Text("Hello ", component.NewStyle(component.Red))))
	assert.True(t, node.Child(1).Equal(component.Text("world", component.NewStyle(component.Red, component.Bold))))
	assert.True(t, node.Child(2).Equal(component.Text("!")))
}

func TestParse_ColorResetsDecorations(t *testing.T) {
	node, err := New().Parse("&l&ax")
	require.NoError(t, err)
	require.Equal(t, 1, node.ChildCount())
	assert.Equal(t, component.NewStyle(component.Green), node.Child(0).Style())
}

func TestParse_CaseInsensitiveAndCoalesced(t *testing.T) {
	node, err := New().Parse("&Ca&cb&L&lc")
	require.NoError(t, err)
	require.Equal(t, 2, node.ChildCount())
	assert.Equal(t, "ab", node.Child(0).Content().Text())
	assert.Equal(t, "c", node.Child(1).Content().Text())
}

func TestParse_Escape(t *testing.T) {
	c := New()
	node, err := c.Parse(`\&cred`)
	require.NoError(t, err)
	assert.Equal(t, "&cred", transform.FlattenText(node))
	require.Equal(t, 1, node.ChildCount())
	assert.True(t, node.Child(0).Style().IsEmpty())

	out, err := c.Serialize(node)
	require.NoError(t, err)
	assert.Equal(t, `\&cred`, out)

	again, err := c.Parse(out)
	require.NoError(t, err)
	assert.True(t, node.Equal(again))
	assert.Equal(t, "&cred", transform.FlattenText(again))
}

func TestParse_InvalidUTF8(t *testing.T) {
	in := "&cok\xffbad"
	node, err := New().Parse(in)
	require.NoError(t, err)
	assert.Equal(t, "ok\uFFFDbad", transform.FlattenText(node))

	_, err = New().Parse(in, codec.StrictMode())
	pe, ok := codec.AsParseError(err)
	require.True(t, ok, "expected parse error, got %v", err)
	assert.Equal(t, 4, pe.Pos)
	assert.Equal(t, codec.ReasonInvalidEncoding, pe.Reason)
}

func TestParse_LenientVsStrict(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		text   string
		pos    int
		reason string
	}{
		{name: "unknown code", input: "ab&zc", text: "ab&zc", pos: 2, reason: codec.ReasonUnknownCode},
		{name: "dangling", input: "abc&", text: "abc&", pos: 3, reason: codec.ReasonUnknownCode},
		{name: "hex disabled", input: "&#ff0000x", text: "&#ff0000x", pos: 0, reason: codec.ReasonUnknownCode},
		{name: "lone backslash", input: `a\b`, text: `a\b`, pos: 1, reason: codec.ReasonMalformedEscape},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := New().Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.text, transform.FlattenText(node))

			_, err = New().Parse(tt.input, codec.StrictMode())
			require.ErrorIs(t, err, codec.ErrParse)
			pe, ok := codec.AsParseError(err)
			require.True(t, ok)
			assert.Equal(t, tt.pos, pe.Pos)
			assert.Equal(t, tt.reason, pe.Reason)
			assert.Equal(t, codec.FormatLegacy, pe.Format)
		})
	}
}

func TestParse_Deterministic(t *testing.T) {
	c := New()
	a, err := c.Parse("&6gold &oitalic")
	require.NoError(t, err)
	b, err := c.Parse("&6gold &oitalic")
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
}

func TestHexColors(t *testing.T) {
	c := New(WithHexColors())
	node, err := c.Parse("&#ff8800orange")
	require.NoError(t, err)
	color, ok := node.Child(0).Style().Color()
	require.True(t, ok)
	assert.Equal(t, component.RGB(0xff, 0x88, 0x00), color)

	out, err := c.Serialize(node)
	require.NoError(t, err)
	assert.Equal(t, "&#ff8800orange", out)

	downsampled, err := New().Serialize(node)
	require.NoError(t, err)
	assert.Equal(t, "&6orange", downsampled)
}

func TestSerialize_ResolvesInheritance(t *testing.T) {
	tree := component.NewBuilder().
		Color(component.Red).
		AppendChild(component.Text("a")).
		AppendBuilder(component.TextBuilder("b").Bold()).
		AppendChild(component.Text("c", component.NewStyle(component.Blue))).
		AppendChild(component.Text("d")).
		MustBuild()

	out, err := New().Serialize(tree)
	require.NoError(t, err)
	assert.Equal(t, "&ca&lb&9c&cd", out)
}

func TestSerialize_TranslatableAndKeybind(t *testing.T) {
	n, err := component.NewBuilder().Translatable("menu.quit").Fallback("Quit").Build()
	require.NoError(t, err)
	tree := component.Empty(n, component.Text(" "), component.Keybind("key.jump"))

	out, err := New().Serialize(tree)
	require.NoError(t, err)
	assert.Equal(t, "Quit key.jump", out)
}

func TestSerialize_SectionControlChar(t *testing.T) {
	c := New(WithControlChar(Section))
	out, err := c.Serialize(component.Text("hi & bye", component.NewStyle(component.Gold)))
	require.NoError(t, err)
	assert.Equal(t, "§6hi & bye", out)
}

func TestSerialize_StrictUnsupported(t *testing.T) {
	link := component.NewBuilder().Text("x").Click(component.OpenURL, "https://example.com").MustBuild()

	out, err := New().Serialize(link)
	require.NoError(t, err)
	assert.Equal(t, "x", out)

	_, err = New(WithStrictSerialize()).Serialize(link)
	assert.ErrorIs(t, err, codec.ErrUnsupportedAttribute)
}

func TestIdempotence(t *testing.T) {
	inputs := []string{
		"&cHello &lworld&r!",
		"&l&nfancy&r plain &a&mdone",
		`esc \\ and \& plus &9&oblue italic`,
		"&kx&ly&mz&nw&ov&r",
	}
	c := New()
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			first, err := c.Parse(in)
			require.NoError(t, err)
			round, err := codec.RoundTrip(c, first, codec.StrictMode())
			require.NoError(t, err)
			assert.True(t, first.Equal(round), "got\n%s\nwant\n%s", round, first)
		})
	}
}
