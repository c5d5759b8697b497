// Package measure computes the rendered width of component trees, either in
// client pixels from pack font data or in terminal cells.
package measure

import (
	"github.com/aretw0/calinea/pkg/component"
)

// Measurer reports rendered widths. Implementations must be safe for
// concurrent use.
type Measurer interface {
	// MeasureText returns the width of text rendered with an effective style.
	// Line feeds have no width.
	MeasureText(text string, style component.Style) float64
	// Measure returns the width of a whole tree rendered on one line.
	Measure(root *component.Node) float64
}

// Textual is a Measurer that can flatten client-side content before
// measurement. Layout uses it to split translatable and keybind nodes.
type Textual interface {
	Measurer
	Resolve(root *component.Node) *component.Node
}

// measureResolved sums text widths over a tree that contains only literal
// content.
func measureResolved(m Measurer, root *component.Node) float64 {
	var total float64
	component.WalkEffective(root, component.EmptyStyle, func(n *component.Node, eff component.Style, _ int) bool {
		if n.Kind() == component.KindText {
			total += m.MeasureText(n.Content().Text(), eff)
		}
		return true
	})
	return total
}
