package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/calinea/pkg/component"
	"github.com/aretw0/calinea/pkg/pack"
)

func lintPack() *pack.Pack {
	return pack.New(
		pack.WithFont(pack.DefaultFont, map[rune]float64{'a': 5}),
		pack.WithKeybind("key.jump", "Space"),
		pack.WithTranslations("en_us", map[string]string{
			"chat.type.text": "<%s> %s",
			"menu.quit":      "Quit",
		}),
	)
}

func click(action component.ClickAction, value string) component.Interaction {
	return component.Interaction{Click: &component.ClickEvent{Action: action, Value: value}}
}

func TestLint_Clean(t *testing.T) {
	root := component.Empty(
		component.Translatable("chat.type.text", component.Text("Alex"), component.Text("hi")),
		component.Keybind("key.jump"),
		component.Text("docs").WithInteraction(click(component.OpenURL, "https://example.com/docs")),
		component.Text("x").WithStyle(component.EmptyStyle.WithFont("default")),
	)
	assert.Empty(t, New(lintPack()).Lint(root))
}

func TestLint_Findings(t *testing.T) {
	hover := component.Interaction{Hover: &component.HoverEvent{
		Action: component.ShowText,
		Text:   component.Keybind("key.sneak"),
	}}
	root := component.Empty(
		component.Translatable("chat.type.text", component.Text("Alex")),
		component.Translatable("menu.quit", component.Text("extra")),
		component.Translatable("unknown.key"),
		component.Text("x").WithStyle(component.EmptyStyle.WithFont("uniform")),
		component.Text("bad").WithInteraction(click(component.OpenURL, "javascript:alert(1)")),
		component.Text("page").WithInteraction(click(component.ChangePage, "0")),
		component.Text("run").WithInteraction(click(component.RunCommand, "  ")),
		component.Text("tip").WithInteraction(hover),
	)

	issues := New(lintPack()).Lint(root)
	require.Len(t, issues, 8)

	want := []Issue{
		{Path: "0", Severity: Error, Message: `translation "chat.type.text" needs 2 arguments, got 1`},
		{Path: "1", Severity: Warning, Message: `translation "menu.quit" ignores 1 of its 1 arguments`},
		{Path: "2", Severity: Warning, Message: `translation "unknown.key" missing for en_us`},
		{Path: "3", Severity: Warning, Message: `font "minecraft:uniform" is not in the pack`},
		{Path: "4", Severity: Error, Message: `open_url needs an absolute http(s) URL, got "javascript:alert(1)"`},
		{Path: "5", Severity: Error, Message: `change_page needs a positive page number, got "0"`},
		{Path: "6", Severity: Error, Message: `run_command has an empty value`},
		{Path: "7.hover", Severity: Warning, Message: `unknown keybind "key.sneak"`},
	}
	assert.Equal(t, want, issues)

	err := Check(issues)
	assert.ErrorIs(t, err, ErrLint)
	assert.Contains(t, err.Error(), "found 4 errors")
}

func TestLint_NestedArgs(t *testing.T) {
	inner := component.Translatable("chat.type.text")
	root := component.Translatable("chat.type.text", inner, component.Text("b"))

	issues := New(lintPack()).Lint(root)
	require.Len(t, issues, 1)
	assert.Equal(t, "args[0]", issues[0].Path)
	assert.Equal(t, "args[0]: error: translation \"chat.type.text\" needs 2 arguments, got 0", issues[0].String())
}

func TestLint_FallbackPattern(t *testing.T) {
	n, err := component.NewBuilder().Translatable("custom.greet").Fallback("Hi %s").Build()
	require.NoError(t, err)

	issues := New(lintPack()).Lint(n)
	require.Len(t, issues, 1)
	assert.Equal(t, Error, issues[0].Severity)
}

func TestLint_EmptyPackSkipsPackChecks(t *testing.T) {
	root := component.Empty(
		component.Translatable("anything"),
		component.Keybind("key.whatever"),
		component.Text("x").WithStyle(component.EmptyStyle.WithFont("alt")),
	)
	issues := New(nil).Lint(root)
	assert.Empty(t, issues)
	assert.NoError(t, Check(issues))
	assert.Equal(t, "root: warning: w", Issue{Severity: Warning, Message: "w"}.String())
}
