package measure

import (
	"github.com/mattn/go-runewidth"

	"github.com/aretw0/calinea/pkg/component"
	"github.com/aretw0/calinea/pkg/translate"
)

// CellMeasurer measures in terminal cells. Style does not affect width;
// East Asian wide runes take two cells.
type CellMeasurer struct {
	translator *translate.Translator
}

// NewCellMeasurer returns a cell measurer. When translator is nil,
// translatable and keybind content is measured as identifiers.
func NewCellMeasurer(translator *translate.Translator) *CellMeasurer {
	if translator == nil {
		translator = translate.New(nil)
	}
	return &CellMeasurer{translator: translator}
}

// MeasureText implements Measurer.
func (m *CellMeasurer) MeasureText(text string, _ component.Style) float64 {
	var total int
	for _, r := range text {
		if r == '\n' {
			continue
		}
		total += runewidth.RuneWidth(r)
	}
	return float64(total)
}

// Measure implements Measurer.
func (m *CellMeasurer) Measure(root *component.Node) float64 {
	return measureResolved(m, m.Resolve(root))
}

// Resolve implements Textual.
func (m *CellMeasurer) Resolve(root *component.Node) *component.Node {
	return m.translator.Resolve(root)
}
