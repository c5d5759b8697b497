package legacy

import (
	"strings"
	"unicode/utf8"

	"github.com/aretw0/calinea/pkg/codec"
	"github.com/aretw0/calinea/pkg/component"
)

// Parse implements codec.Codec. The result is an empty root whose children
// are text runs carrying absolute styles; adjacent runs never share a style.
// Invalid UTF-8 is replaced with U+FFFD, or rejected in strict mode.
func (c *Codec) Parse(input string, opts ...codec.ParseOption) (*component.Node, error) {
	p := parser{
		codec:  c,
		input:  input,
		strict: codec.Apply(opts...).Mode == codec.Strict,
	}
	if p.strict {
		if err := codec.CheckUTF8(codec.FormatLegacy, input); err != nil {
			return nil, err
		}
	}
	if err := p.run(); err != nil {
		return nil, err
	}
	return component.Empty(p.runs...), nil
}

type parser struct {
	codec  *Codec
	input  string
	strict bool

	style component.Style
	buf   strings.Builder
	runs  []*component.Node
}

func (p *parser) run() error {
	for i := 0; i < len(p.input); {
		r, size := utf8.DecodeRuneInString(p.input[i:])
		switch r {
		case escape:
			next, nsize := utf8.DecodeRuneInString(p.input[i+size:])
			if i+size < len(p.input) && (next == escape || next == p.codec.control) {
				p.buf.WriteRune(next)
				i += size + nsize
				continue
			}
			if p.strict {
				return codec.NewParseError(codec.FormatLegacy, i, codec.ReasonMalformedEscape, "backslash must precede the control character or a backslash")
			}
			p.buf.WriteRune(r)
			i += size
		case p.codec.control:
			consumed, err := p.code(i, size)
			if err != nil {
				return err
			}
			if consumed == 0 {
				p.buf.WriteRune(r)
				consumed = size
			}
			i += consumed
		default:
			p.buf.WriteRune(r)
			i += size
		}
	}
	p.flush()
	return nil
}

// code applies the sequence starting at the control character at pos and
// returns the number of bytes consumed, or 0 when the sequence is kept as
// literal text.
func (p *parser) code(pos, size int) (int, error) {
	rest := p.input[pos+size:]
	if rest == "" {
		return p.reject(pos, codec.ReasonUnknownCode, "dangling control character")
	}
	code, csize := utf8.DecodeRuneInString(rest)
	lower := code
	if lower >= 'A' && lower <= 'Z' {
		lower += 'a' - 'A'
	}

	if color, ok := component.ColorByCode(lower); ok {
		p.setStyle(component.EmptyStyle.WithColor(color))
		return size + csize, nil
	}
	if d, ok := decorationCodes[lower]; ok {
		p.setStyle(p.style.WithDecoration(d, component.True))
		return size + csize, nil
	}
	switch {
	case lower == 'r':
		p.setStyle(component.EmptyStyle)
		return size + csize, nil
	case lower == '#' && p.codec.hexColors:
		hex := rest[csize:]
		if len(hex) < 6 {
			return p.reject(pos, codec.ReasonInvalidArgument, "hex color needs six digits")
		}
		color, err := component.ParseColor("#" + hex[:6])
		if err != nil {
			return p.reject(pos, codec.ReasonInvalidArgument, err.Error())
		}
		p.setStyle(component.EmptyStyle.WithColor(color))
		return size + csize + 6, nil
	}
	return p.reject(pos, codec.ReasonUnknownCode, "code "+string(code))
}

func (p *parser) reject(pos int, reason, detail string) (int, error) {
	if p.strict {
		return 0, codec.NewParseError(codec.FormatLegacy, pos, reason, detail)
	}
	return 0, nil
}

func (p *parser) setStyle(s component.Style) {
	if s == p.style {
		return
	}
	p.flush()
	p.style = s
}

func (p *parser) flush() {
	if p.buf.Len() == 0 {
		return
	}
	text := p.buf.String()
	p.buf.Reset()
	if n := len(p.runs); n > 0 && p.runs[n-1].Style() == p.style {
		p.runs[n-1] = component.Text(p.runs[n-1].Content().Text()+text, p.style)
		return
	}
	p.runs = append(p.runs, component.Text(text, p.style))
}
