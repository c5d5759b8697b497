package tree

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/calinea/pkg/codec"
	"github.com/aretw0/calinea/pkg/component"
)

func fixtures() map[string]*component.Node {
	bold := component.EmptyStyle.WithDecoration(component.Bold, component.True)
	return map[string]*component.Node{
		"text":  component.Text("hello"),
		"empty": component.Empty(),
		"blank": component.Text(""),
		"styled": component.Text("x", component.NewStyle(component.RGB(1, 2, 3)).
			WithDecoration(component.Italic, component.False).
			WithDecoration(component.Obfuscated, component.True).
			WithFont("minecraft:alt")),
		"nested": component.NewBuilder().
			Color(component.Gold).
			AppendChild(component.Text("a", bold)).
			AppendChild(component.Empty(component.Text("b"), component.Keybind("key.jump"))).
			MustBuild(),
		"translatable": component.NewBuilder().
			Translatable("chat.type.text").
			Fallback("<%s> %s").
			Args(component.Text("Steve", component.NewStyle(component.Yellow)), component.Translatable("x.y")).
			MustBuild(),
		"interaction": component.NewBuilder().
			Text("click me").
			Click(component.CopyToClipboard, "secret").
			HoverText(component.Empty(component.Text("tip", bold))).
			AppendBuilder(component.TextBuilder("item").Hover(component.ShowItem, `{"id":"minecraft:stone"}`)).
			MustBuild(),
	}
}

func TestRoundTrip(t *testing.T) {
	codecs := []codec.Codec{NewJSON(), NewJSON(WithIndent("  ")), NewYAML()}
	for _, c := range codecs {
		for name, tree := range fixtures() {
			t.Run(string(c.Format())+"/"+name, func(t *testing.T) {
				for _, mode := range []codec.Mode{codec.Lenient, codec.Strict} {
					got, err := codec.RoundTrip(c, tree, codec.WithMode(mode))
					require.NoError(t, err)
					assert.True(t, tree.Equal(got), "mode %s\ngot\n%s\nwant\n%s", mode, got, tree)
				}
			})
		}
	}
}

func TestCBORRoundTrip(t *testing.T) {
	for name, tree := range fixtures() {
		t.Run(name, func(t *testing.T) {
			data, err := MarshalCBOR(tree)
			require.NoError(t, err)
			again, err := MarshalCBOR(tree)
			require.NoError(t, err)
			assert.Equal(t, data, again, "encoding must be deterministic")

			got, err := UnmarshalCBOR(data)
			require.NoError(t, err)
			assert.True(t, tree.Equal(got))
		})
	}
}

func TestJSON_Shape(t *testing.T) {
	tree := component.NewBuilder().
		Text("hi").
		Color(component.Red).
		Decorate(component.Bold, component.False).
		Click(component.OpenURL, "https://example.com").
		MustBuild()
	out, err := NewJSON().Serialize(tree)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"content": {"type": "text", "text": "hi"},
		"style": {"color": "red", "bold": false},
		"interaction": {"click": {"action": "open_url", "value": "https://example.com"}}
	}`, out)
}

func TestJSON_ShorthandsAndComments(t *testing.T) {
	c := NewJSON()

	n, err := c.Parse(`"plain"`)
	require.NoError(t, err)
	assert.True(t, n.Equal(component.Text("plain")))

	n, err = c.Parse(`[{"content":{"type":"text","text":"a"}}, "b"]`)
	require.Error(t, err, "array entries must be records")

	n, err = c.Parse(`[{"content":{"type":"text","text":"a"}},{"content":{"type":"text","text":"b"}}]`)
	require.NoError(t, err)
	assert.Equal(t, 2, n.ChildCount())

	n, err = c.Parse(`{
		// greeting
		"content": {"type": "text", "text": "hi", "extra": 1},
		"style": {"color": "red",},
	}`)
	require.NoError(t, err)
	col, _ := n.Style().Color()
	assert.Equal(t, component.Red, col)
}

func TestJSON_LenientDropsUnknownValues(t *testing.T) {
	n, err := NewJSON().Parse(`{"content":{"type":"text","text":"x"},"style":{"color":"octarine"},"interaction":{"click":{"action":"teleport","value":"1"}}}`)
	require.NoError(t, err)
	assert.True(t, n.Equal(component.Text("x")))

	n, err = NewJSON().Parse(`{"content":{"type":"weird","text":"x"}}`)
	require.NoError(t, err)
	assert.Equal(t, component.KindText, n.Kind())
}

func TestJSON_StrictErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		pos   int
	}{
		{name: "unknown field", input: `{"content":{"type":"text"},"colour":"red"}`, pos: -1},
		{name: "syntax", input: `{"content": }`, pos: -1},
		{name: "unknown type", input: `{"content":{"type":"score"}}`, pos: 0},
		{name: "unknown color", input: `{"content":{"type":"text"},"style":{"color":"nope"}}`, pos: 0},
		{name: "missing key", input: `{"content":{"type":"translatable"}}`, pos: 0},
		{name: "comments", input: "{/* c */\"content\":{\"type\":\"text\"}}", pos: -1},
		{name: "trailing", input: `{"content":{"type":"text"}} {}`, pos: -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewJSON().Parse(tt.input, codec.StrictMode())
			require.ErrorIs(t, err, codec.ErrParse)
			pe, ok := codec.AsParseError(err)
			require.True(t, ok)
			if tt.pos >= 0 {
				assert.Equal(t, tt.pos, pe.Pos)
			}
		})
	}
}

func TestJSON_StrictPath(t *testing.T) {
	_, err := NewJSON().Parse(`{"content":{"type":"empty"},"children":[{"content":{"type":"text"}},{"content":{"type":"keybind"}}]}`, codec.StrictMode())
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "children[1].content", de.Path)
}

func TestYAML_Document(t *testing.T) {
	n, err := NewYAML().Parse(`
content: {type: text, text: "Hello "}
style: {color: gold}
children:
  - content: {type: keybind, key: key.jump}
    style: {bold: true}
`, codec.StrictMode())
	require.NoError(t, err)
	require.Equal(t, 1, n.ChildCount())
	assert.Equal(t, "key.jump", n.Child(0).Content().Key())

	_, err = NewYAML().Parse("content: {type: text}\nbogus: 1\n", codec.StrictMode())
	require.ErrorIs(t, err, codec.ErrParse)
	pe, _ := codec.AsParseError(err)
	assert.Equal(t, len("content: {type: text}\n"), pe.Pos)

	n, err = NewYAML().Parse("just words")
	require.NoError(t, err)
	assert.True(t, n.Equal(component.Text("just words")))
}

type envelope struct {
	ID      string    `json:"id" yaml:"id"`
	Message Component `json:"message" yaml:"message"`
}

func TestComponentWrapper(t *testing.T) {
	msg := fixtures()["interaction"]

	data, err := json.Marshal(envelope{ID: "welcome", Message: Wrap(msg)})
	require.NoError(t, err)
	var fromJSON envelope
	require.NoError(t, json.Unmarshal(data, &fromJSON))
	assert.True(t, msg.Equal(fromJSON.Message.Node))

	out, err := yaml.Marshal(envelope{ID: "welcome", Message: Wrap(msg)})
	require.NoError(t, err)
	var fromYAML envelope
	require.NoError(t, yaml.Unmarshal(out, &fromYAML))
	assert.True(t, msg.Equal(fromYAML.Message.Node))

	var short envelope
	require.NoError(t, yaml.Unmarshal([]byte("id: x\nmessage: hi\n"), &short))
	assert.True(t, short.Message.Node.Equal(component.Text("hi")))
}
