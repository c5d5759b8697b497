package measure

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/calinea/pkg/component"
	"github.com/aretw0/calinea/pkg/pack"
	"github.com/aretw0/calinea/pkg/translate"
)

func testPack() *pack.Pack {
	return pack.New(
		pack.WithDefaultWidth(6),
		pack.WithFont(pack.DefaultFont, map[rune]float64{'a': 5, 'b': 4, ' ': 3}),
		pack.WithFont("minecraft:uniform", map[rune]float64{'a': 7}),
		pack.WithTranslations("en_us", map[string]string{"menu.quit": "ab"}),
		pack.WithKeybind("key.jump", "a"),
	)
}

func TestPackMeasurer_MeasureText(t *testing.T) {
	m := NewPackMeasurer(testPack())
	bold := component.EmptyStyle.WithDecoration(component.Bold, component.True)
	uniform := component.EmptyStyle.WithFont("minecraft:uniform")

	tests := []struct {
		name  string
		text  string
		style component.Style
		want  float64
	}{
		{"plain", "ab", component.EmptyStyle, 11},
		{"space", "a b", component.EmptyStyle, 15},
		{"bold", "ab", bold, 13},
		{"bold space", " ", bold, 5},
		{"other font", "ab", uniform, 15},
		{"bare font key", "a", component.EmptyStyle.WithFont("uniform"), 8},
		{"unknown font uses default font", "a", component.EmptyStyle.WithFont("custom:x"), 6},
		{"missing glyph", "z", component.EmptyStyle, 7},
		{"newline", "a\nb", component.EmptyStyle, 11},
		{"empty", "", component.EmptyStyle, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.MeasureText(tt.text, tt.style))
		})
	}
}

func TestPackMeasurer_LetterSpacing(t *testing.T) {
	m := NewPackMeasurer(testPack(), WithLetterSpacing(0))
	assert.Equal(t, 9.0, m.MeasureText("ab", component.EmptyStyle))
}

func TestPackMeasurer_Measure(t *testing.T) {
	m := NewPackMeasurer(testPack())

	tree := component.Empty(
		component.Text("a"),
		component.Text("b", component.EmptyStyle.WithDecoration(component.Bold, component.True)),
	)
	assert.Equal(t, 12.0, m.Measure(tree))

	inherited := component.Empty(component.Text("ab")).
		WithStyle(component.EmptyStyle.WithDecoration(component.Bold, component.True))
	assert.Equal(t, 13.0, m.Measure(inherited))

	assert.Equal(t, 11.0, m.Measure(component.Translatable("menu.quit")))
	assert.Equal(t, 6.0, m.Measure(component.Keybind("key.jump")))
	assert.Equal(t, 14.0, m.Measure(component.Translatable("zz")))
	assert.Equal(t, 0.0, m.Measure(component.Empty()))
}

func TestPackMeasurer_WarnsOnce(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	m := NewPackMeasurer(testPack(), WithLogger(logger))

	m.MeasureText("zz", component.EmptyStyle)
	m.MeasureText("z", component.EmptyStyle)
	m.Measure(component.Translatable("missing.key"))
	m.Measure(component.Translatable("missing.key"))
	m.Measure(component.Keybind("key.unknown"))

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, `char=z`))
	assert.Equal(t, 1, strings.Count(out, "translation missing"))
	assert.Equal(t, 1, strings.Count(out, "keybind missing"))
	assert.Contains(t, out, "level=WARN")
}

func TestPackMeasurer_NilPack(t *testing.T) {
	m := NewPackMeasurer(nil)
	assert.Equal(t, 12.0, m.MeasureText("ab", component.EmptyStyle))
}

func TestPackMeasurer_Concurrent(t *testing.T) {
	m := NewPackMeasurer(testPack())
	tree := component.Empty(component.Text("abz"), component.Translatable("missing"))
	want := m.Measure(tree)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, m.Measure(tree))
		}()
	}
	wg.Wait()
}

func TestCellMeasurer(t *testing.T) {
	m := NewCellMeasurer(nil)
	assert.Equal(t, 5.0, m.MeasureText("héllo", component.EmptyStyle))
	assert.Equal(t, 4.0, m.MeasureText("漢字", component.EmptyStyle))
	assert.Equal(t, 2.0, m.MeasureText("a\nb", component.EmptyStyle))
	assert.Equal(t, 9.0, m.Measure(component.Translatable("menu.quit")))

	tr := NewCellMeasurer(translate.New(testPack()))
	assert.Equal(t, 2.0, tr.Measure(component.Translatable("menu.quit")))
	assert.Equal(t, 1.0, tr.Measure(component.Keybind("key.jump")))
}

func TestTextualImplementations(t *testing.T) {
	var _ Textual = NewPackMeasurer(nil)
	var _ Textual = NewCellMeasurer(nil)
}
