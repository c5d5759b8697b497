package layout

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/aretw0/calinea/pkg/component"
	"github.com/aretw0/calinea/pkg/measure"
	"github.com/aretw0/calinea/pkg/transform"
)

// DefaultWidth is the width of a standard dialog body in client pixels.
const DefaultWidth = 150

// ErrInvalidWidth is returned when padding leaves no room for content.
var ErrInvalidWidth = errors.New("content width must be positive")

// Alignment positions each line within the content width.
type Alignment uint8

const (
	Left Alignment = iota
	Center
	Right
)

func (a Alignment) String() string {
	switch a {
	case Center:
		return "center"
	case Right:
		return "right"
	default:
		return "left"
	}
}

// ParseAlignment resolves "left", "center" or "right".
func ParseAlignment(s string) (Alignment, error) {
	switch strings.ToLower(s) {
	case "left", "":
		return Left, nil
	case "center", "centre":
		return Center, nil
	case "right":
		return Right, nil
	}
	return Left, fmt.Errorf("unknown alignment %q", s)
}

// Spacer produces a node that advances by approximately px. It may return
// nil when px rounds to nothing.
type Spacer func(px float64) *component.Node

// Spaces returns a Spacer emitting unstyled space characters, as many as
// best approximate px with the measurer's space width.
func Spaces(m measure.Measurer) Spacer {
	return func(px float64) *component.Node {
		sw := m.MeasureText(" ", component.EmptyStyle)
		if sw <= 0 || px <= 0 {
			return nil
		}
		n := int(math.Round(px / sw))
		if n <= 0 {
			return nil
		}
		return component.Text(strings.Repeat(" ", n))
	}
}

// Builder lays out a tree: wrap to the content width, then align and pad each
// line, joining lines with line feeds. Setters are chainable.
type Builder struct {
	root         *component.Node
	m            measure.Measurer
	width        float64
	align        Alignment
	paddingLeft  float64
	paddingRight float64
	fill         bool
	spacer       Spacer
	splitOpts    []SplitOption
}

// New returns a builder for root measured by m.
func New(root *component.Node, m measure.Measurer) *Builder {
	return &Builder{root: root, m: m, width: DefaultWidth}
}

// Width sets the total width of the display area, padding included.
func (b *Builder) Width(px float64) *Builder {
	b.width = px
	return b
}

// Align sets the alignment. Defaults to Left.
func (b *Builder) Align(a Alignment) *Builder {
	b.align = a
	return b
}

// Padding sets the same padding on both sides.
func (b *Builder) Padding(px float64) *Builder {
	return b.PaddingLR(px, px)
}

// PaddingLR sets left and right padding.
func (b *Builder) PaddingLR(left, right float64) *Builder {
	b.paddingLeft, b.paddingRight = left, right
	return b
}

// FillLines pads every line on the right up to the full width.
func (b *Builder) FillLines(fill bool) *Builder {
	b.fill = fill
	return b
}

// Spacer replaces the default Spaces spacer.
func (b *Builder) Spacer(s Spacer) *Builder {
	b.spacer = s
	return b
}

// Tokenizer replaces the default Tokenize.
func (b *Builder) Tokenizer(t Tokenizer) *Builder {
	b.splitOpts = append(b.splitOpts, WithTokenizer(t))
	return b
}

// ContentWidth is the width left for text after padding.
func (b *Builder) ContentWidth() float64 {
	return b.width - b.paddingLeft - b.paddingRight
}

// Lines wraps the tree to the content width without aligning it.
func (b *Builder) Lines() ([]Line, error) {
	cw := b.ContentWidth()
	if cw <= 0 {
		return nil, fmt.Errorf("%w: width %g, padding %g+%g", ErrInvalidWidth, b.width, b.paddingLeft, b.paddingRight)
	}
	return Split(b.root, cw, b.m, b.splitOpts...), nil
}

// Build returns the laid-out tree.
func (b *Builder) Build() (*component.Node, error) {
	lines, err := b.Lines()
	if err != nil {
		return nil, err
	}
	spacer := b.spacer
	if spacer == nil {
		spacer = Spaces(b.m)
	}
	cw := b.ContentWidth()

	parts := make([]*component.Node, 0, len(lines)*4)
	for i, line := range lines {
		if i > 0 {
			parts = append(parts, component.Newline())
		}
		var offset float64
		switch b.align {
		case Center:
			offset = (cw - line.Width) / 2
		case Right:
			offset = cw - line.Width
		}
		if left := b.paddingLeft + offset; left > 0 {
			parts = append(parts, spacer(left))
		}
		parts = append(parts, line.Node)
		if b.fill {
			if right := cw - offset - line.Width + b.paddingRight; right > 0 {
				parts = append(parts, spacer(right))
			}
		}
	}
	return transform.Compact(component.Empty(parts...)), nil
}
