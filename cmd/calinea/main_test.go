package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/calinea"
	"github.com/aretw0/calinea/internal/cli"
	"github.com/aretw0/calinea/internal/validator"
)

const testPack = `{
	"format": "calinea-config",
	"version": 1,
	"fonts": {
		"default_width": 6,
		"entries": [{"fontKey": "minecraft:default", "widths": {"a": 5, " ": 3}}]
	},
	"keybinds": {"key.jump": "Space"},
	"translations": [
		{"language": "en_us", "entries": {"chat.type.text": "<%s> %s", "menu.quit": "Quit"}},
		{"language": "pt_br", "entries": {"menu.quit": "Sair"}}
	]
}`

// run executes the CLI with args and returns stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv(cli.PackEnv, "")

	packPath := filepath.Join(t.TempDir(), "pack.json")
	require.NoError(t, os.WriteFile(packPath, []byte(testPack), 0644))

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--pack", packPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestConvert(t *testing.T) {
	out, err := run(t, "", "convert", "--to", "legacy", "<red><b>Hello</b> world")
	require.NoError(t, err)
	assert.Equal(t, "&c&lHello&c world\n", out)

	out, err = run(t, "&6gold\n", "convert", "--from", "legacy", "--to", "legacy")
	require.NoError(t, err)
	assert.Equal(t, "&6gold\n", out)

	_, err = run(t, "", "convert", "--to", "bbcode", "x")
	assert.Error(t, err)

	_, err = run(t, "", "convert", "--strict", "--from", "markup", "<blink>x")
	assert.Error(t, err)
}

func TestPlain(t *testing.T) {
	out, err := run(t, "", "plain", "--lang", "pt_br", "<lang:menu.quit> <key:key.jump>")
	require.NoError(t, err)
	assert.Equal(t, "Sair Space\n", out)
}

func TestMeasure(t *testing.T) {
	out, err := run(t, "", "measure", "aa")
	require.NoError(t, err)
	assert.Equal(t, "12\n", out)
}

func TestLayout(t *testing.T) {
	out, err := run(t, "", "layout", "--width", "14", "--lines", "aa aa")
	require.NoError(t, err)
	assert.Equal(t, "  12.0  aa\n  12.0  aa\n", out)

	out, err = run(t, "", "layout", "--width", "20", "--align", "right", "aa")
	require.NoError(t, err)
	assert.Equal(t, "  aa\n", out)

	_, err = run(t, "", "layout", "--align", "justify", "aa")
	assert.Error(t, err)

	_, err = run(t, "", "layout", "--width", "4", "--padding", "2", "aa")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	out, err := run(t, "", "validate", "<lang:chat.type.text:'Steve'> <key:key.jump>")
	assert.ErrorIs(t, err, validator.ErrLint)
	assert.Contains(t, out, `needs 2 arguments, got 1`)

	out, err = run(t, "", "validate", "<lang:menu.quit>")
	require.NoError(t, err)
	assert.Contains(t, out, "Message is valid!")

	out, err = run(t, "", "validate", "--graph", "<lang:nope.key>")
	require.NoError(t, err, "missing translations are warnings")
	assert.Contains(t, out, "graph TD")
	assert.Contains(t, out, "flagged;")
}

func TestPreview(t *testing.T) {
	out, err := run(t, "", "preview", "--color", "never", "<red>Hello</red> <key:key.jump>")
	require.NoError(t, err)
	assert.Equal(t, "Hello Space\n", out)

	out, err = run(t, "", "preview", "--color", "always", "<red>Hi")
	require.NoError(t, err)
	assert.Contains(t, out, "\x1b[")

	_, err = run(t, "", "preview", "--color", "sometimes", "x")
	assert.Error(t, err)

	_, err = run(t, "", "preview", "--watch", "x")
	assert.Error(t, err)
}

func TestDescribe(t *testing.T) {
	out, err := run(t, "", "describe", "--raw", "--title", "Greeting", "<gold>Hi")
	require.NoError(t, err)
	assert.Contains(t, out, "# Greeting")
	assert.Contains(t, out, "| Depth | Kind | Content | Style | Interaction |")
}

func TestCatalog(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "motd.md"), []byte(`---
format: legacy
description: Message of the day
---
&cHello
`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rules.md"), []byte(`---
tags: [moderation]
---
<gold>Be nice
`), 0644))

	out, err := run(t, "", "catalog", "list", "--dir", dir)
	require.NoError(t, err)
	assert.Equal(t, "motd\tlegacy\tMessage of the day\nrules\tmarkup\t[moderation]\n", out)

	out, err = run(t, "", "catalog", "get", "--dir", dir, "--to", "legacy", "motd")
	require.NoError(t, err)
	assert.Equal(t, "&cHello\n", out)

	out, err = run(t, "", "preview", "--dir", dir, "--id", "rules", "--color", "never")
	require.NoError(t, err)
	assert.Equal(t, "Be nice\n", out)

	_, err = run(t, "", "catalog", "get", "--dir", dir, "missing")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "calinea version "+calinea.Version+"\n", out)
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := run(t, "", "--log-level", "loud", "plain", "x")
	assert.Error(t, err)
}
