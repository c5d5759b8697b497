package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/calinea/pkg/component"
	"github.com/aretw0/calinea/pkg/pack"
	"github.com/aretw0/calinea/pkg/transform"
)

func testPack() *pack.Pack {
	return pack.New(
		pack.WithTranslations("en_us", map[string]string{
			"chat.type.text":  "<%s> %s",
			"swapped":         "%2$s then %1$s",
			"percent":         "100%% of %s",
			"menu.quit":       "Quit",
			"only.in.english": "English",
		}),
		pack.WithTranslations("pt_br", map[string]string{
			"menu.quit": "Sair",
		}),
		pack.WithKeybind("key.jump", "Space"),
	)
}

func TestFormat(t *testing.T) {
	a := component.Text("A")
	b := component.Text("B")

	tests := []struct {
		name    string
		pattern string
		args    []*component.Node
		want    string
	}{
		{"sequential", "<%s> %s", []*component.Node{a, b}, "<A> B"},
		{"positional", "%2$s then %1$s", []*component.Node{a, b}, "B then A"},
		{"percent", "100%% sure", nil, "100% sure"},
		{"missing args kept", "%s and %s", []*component.Node{a}, "A and %s"},
		{"positional out of range", "%3$s", []*component.Node{a}, "%3$s"},
		{"digit verb", "%d items", []*component.Node{b}, "B items"},
		{"unknown verb literal", "50%x", nil, "50%x"},
		{"no placeholders", "plain", []*component.Node{a}, "plain"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parts := Format(tt.pattern, tt.args...)
			assert.Equal(t, tt.want, transform.FlattenText(component.Empty(parts...)))
		})
	}
}

func TestFormat_SharesArgumentNodes(t *testing.T) {
	arg := component.Text("x", component.NewStyle(component.Red))
	parts := Format("[%s]", arg)
	require.Len(t, parts, 3)
	assert.Same(t, arg, parts[1])
}

func TestResolve_Translatable(t *testing.T) {
	tr := New(testPack())
	red := component.NewStyle(component.Red)
	root := component.Translatable("chat.type.text",
		component.Text("Steve", red),
		component.Text("hello"),
	).WithStyle(component.NewStyle(component.Gray))

	out := tr.Resolve(root)

	assert.Equal(t, "<Steve> hello", transform.FlattenText(out))
	assert.Equal(t, component.KindEmpty, out.Kind())
	assert.Equal(t, root.Style(), out.Style())

	var styled *component.Node
	transform.Walk(out, transform.VisitorFunc(func(n *component.Node, _ int) bool {
		if n.Kind() == component.KindText && n.Content().Text() == "Steve" {
			styled = n
		}
		return true
	}))
	require.NotNil(t, styled)
	assert.Equal(t, red, styled.Style())
}

func TestResolve_Nested(t *testing.T) {
	tr := New(testPack())
	root := component.Empty(
		component.Text("Press "),
		component.Keybind("key.jump"),
		component.Text(": "),
		component.Translatable("swapped", component.Translatable("menu.quit"), component.Text("x")),
	)
	out := tr.Resolve(root)

	assert.Equal(t, "Press Space: x then Quit", transform.FlattenText(out))
	assert.Empty(t, transform.Collect(out, func(n *component.Node) bool {
		return n.Kind() == component.KindTranslatable || n.Kind() == component.KindKeybind
	}))
}

func TestResolve_KeepsChildrenAndInteraction(t *testing.T) {
	tr := New(testPack())
	click := component.Interaction{Click: &component.ClickEvent{Action: component.RunCommand, Value: "/quit"}}
	root := component.Translatable("menu.quit").
		WithInteraction(click).
		Append(component.Text("!"))

	out := tr.Resolve(root)
	assert.Equal(t, "Quit!", transform.FlattenText(out))
	assert.True(t, click.Equal(out.Interaction()))
}

func TestResolve_Fallbacks(t *testing.T) {
	tr := New(testPack())

	withFallback, err := component.NewBuilder().Translatable("unknown.key").Fallback("Hi %s").Args(component.Text("Bob")).Build()
	require.NoError(t, err)
	assert.Equal(t, "Hi Bob", transform.FlattenText(tr.Resolve(withFallback)))

	assert.Equal(t, "unknown.key", transform.FlattenText(tr.Resolve(component.Translatable("unknown.key"))))
	assert.Equal(t, "key.unknown", transform.FlattenText(tr.Resolve(component.Keybind("key.unknown"))))
}

func TestResolve_NoClientContentIsShared(t *testing.T) {
	tr := New(testPack())
	root := component.Empty(component.Text("a"), component.Text("b"))
	assert.Same(t, root, tr.Resolve(root))
}

func TestLanguages(t *testing.T) {
	p := testPack()

	pt := New(p, WithLanguage("pt_br"))
	assert.Equal(t, "Sair", pt.PlainText(component.Translatable("menu.quit")))
	assert.Equal(t, "English", pt.PlainText(component.Translatable("only.in.english")))

	strictPT := New(p, WithLanguage("pt_br"), WithFallbackLanguage(""))
	assert.Equal(t, "only.in.english", strictPT.PlainText(component.Translatable("only.in.english")))
}

func TestText(t *testing.T) {
	tr := New(testPack())

	s, ok := tr.Text(component.Translatable("chat.type.text", component.Text("a"), component.Text("b")).Append(component.Text("tail")))
	assert.True(t, ok)
	assert.Equal(t, "<a> b", s)

	s, ok = tr.Text(component.Keybind("key.jump"))
	assert.True(t, ok)
	assert.Equal(t, "Space", s)

	_, ok = tr.Text(component.Text("plain"))
	assert.False(t, ok)

	plain := transform.PlainText(
		component.Empty(component.Translatable("menu.quit"), component.Text(" / "), component.Keybind("key.jump")),
		transform.WithResolver(tr.Text),
	)
	assert.Equal(t, "Quit / Space", plain)
}

func TestNew_NilPack(t *testing.T) {
	tr := New(nil)
	assert.Equal(t, "menu.quit", tr.PlainText(component.Translatable("menu.quit")))
	assert.Equal(t, pack.DefaultLanguage, tr.Language())
}

func TestArgCount(t *testing.T) {
	tests := map[string]int{
		"plain":          0,
		"<%s> %s":        2,
		"%2$s then %1$s": 2,
		"%3$s":           3,
		"100%% of %s":    1,
		"%d/%d":          2,
	}
	for pattern, want := range tests {
		assert.Equal(t, want, ArgCount(pattern), pattern)
	}
}
