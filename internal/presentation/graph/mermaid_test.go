package graph_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/calinea/internal/presentation/graph"
	"github.com/aretw0/calinea/pkg/component"
)

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		root     *component.Node
		contains []string
	}{
		{
			name: "Shapes",
			root: component.Empty(
				component.Text("hi"),
				component.Translatable("menu.quit"),
				component.Keybind("key.jump"),
			),
			contains: []string{
				`root(("group"))`,
				`n_0["'hi'"]`,
				`n_1[["tr 'menu.quit'"]]`,
				`n_2[/"key 'key.jump'"/]`,
				"root --> n_0",
				"root --> n_2",
			},
		},
		{
			name: "Arguments",
			root: component.Translatable("chat.type.text", component.Text("Alex"), component.Text("hi")),
			contains: []string{
				`n_args_0_["'Alex'"]`,
				`root -. "arg 1" .-> n_args_1_`,
			},
		},
		{
			name: "Style And Click",
			root: component.Text("go", component.NewStyle(component.Red, component.Bold)).
				WithInteraction(component.Interaction{Click: &component.ClickEvent{Action: component.RunCommand, Value: "/go"}}),
			contains: []string{
				`root["'go' <br/> red bold <br/> 🖱 run_command"]`,
			},
		},
		{
			name: "Escaping",
			root: component.Text(`say "<hi>"` + "\n" + strings.Repeat("x", 40)),
			contains: []string{
				`root["'say '‹hi›'⏎xxxxxxxxxxxx…'"]`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := graph.GenerateMermaid(tt.root, nil)
			assert.True(t, strings.HasPrefix(out, "graph TD\n"))
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestGenerateMermaid_Hover(t *testing.T) {
	root := component.Text("tip").WithInteraction(component.Interaction{
		Hover: &component.HoverEvent{Action: component.ShowText, Text: component.Text("more")},
	})
	out := graph.GenerateMermaid(root, nil)
	assert.Contains(t, out, `n_hover["'more'"]`)
	assert.Contains(t, out, `root -. "hover" .-> n_hover`)
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	root := component.Empty(component.Text("a"), component.Text("b"))
	out := graph.GenerateMermaid(root, &graph.GraphOverlay{Flagged: []string{"1", "1", ""}})

	assert.Contains(t, out, "classDef flagged")
	assert.Equal(t, 1, strings.Count(out, "class n_1 flagged;"))
	assert.Contains(t, out, "class root flagged;")
	assert.NotContains(t, out, "class n_0 flagged;")
}

func TestGenerateMermaid_Nil(t *testing.T) {
	assert.Equal(t, "graph TD\n", graph.GenerateMermaid(nil, nil))
}
