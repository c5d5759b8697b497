package markup

import (
	"errors"

	"github.com/aretw0/calinea/pkg/codec"
	"github.com/aretw0/calinea/pkg/component"
	"github.com/aretw0/calinea/pkg/transform"
)

// Parse implements codec.Codec. Every style or interaction tag becomes an
// empty-content node carrying that single attribute; the result is
// compacted with transform.Compact.
//
// The result is always rooted at an unstyled empty node, so the
// round-trip guarantee is parse(serialize(parse(s))) == parse(s). A tree
// built by hand serializes to markup that renders the same, but parsing it
// back may differ structurally. Invalid UTF-8 is kept as is, or rejected in
// strict mode.
func (c *Codec) Parse(input string, opts ...codec.ParseOption) (*component.Node, error) {
	return c.parse(input, c.options(opts))
}

func (c *Codec) parse(input string, opts codec.ParseOptions) (*component.Node, error) {
	strict := opts.Mode == codec.Strict
	if strict {
		if err := codec.CheckUTF8(codec.FormatMarkup, input); err != nil {
			return nil, err
		}
	}
	toks, err := lex(input, strict)
	if err != nil {
		return nil, err
	}
	p := &parser{codec: c, opts: opts, strict: strict}
	p.stack = []*frame{{}}
	for _, tok := range toks {
		if err := p.token(tok); err != nil {
			return nil, err
		}
	}
	if len(p.stack) > 1 {
		if strict {
			open := p.stack[1]
			return nil, codec.NewParseError(codec.FormatMarkup, open.pos, codec.ReasonUnclosedTag, "<"+open.name+"> is never closed")
		}
		p.closeTo(1)
	}
	return transform.Compact(component.Empty(p.stack[0].children...)), nil
}

type frame struct {
	name        string
	canonical   string
	pos         int
	style       component.Style
	interaction component.Interaction
	children    []*component.Node
}

func (f *frame) node() *component.Node {
	return component.Empty(f.children...).WithStyle(f.style).WithInteraction(f.interaction)
}

type parser struct {
	codec  *Codec
	opts   codec.ParseOptions
	strict bool
	stack  []*frame
}

func (p *parser) top() *frame {
	return p.stack[len(p.stack)-1]
}

func (p *parser) emit(n *component.Node) {
	f := p.top()
	f.children = append(f.children, n)
}

func (p *parser) token(tok token) error {
	switch tok.kind {
	case tokText:
		p.emit(component.Text(tok.text))
		return nil
	case tokClose:
		return p.close(tok)
	}
	return p.open(tok)
}

func (p *parser) open(tok token) error {
	if n, ok := p.opts.Placeholder(tok.name); ok {
		p.emit(n)
		return nil
	}
	fn, ok := lookup(tok.name)
	if !ok {
		return p.literal(tok, codec.ReasonUnknownTag, "<"+tok.name+">")
	}
	r, err := fn(p, tok.name, tok.args)
	if err != nil {
		var pe *codec.ParseError
		if errors.As(err, &pe) {
			return codec.NewParseError(codec.FormatMarkup, tok.pos, pe.Reason, "in argument of <"+tok.name+">: "+pe.Error())
		}
		return p.literal(tok, codec.ReasonInvalidArgument, err.Error())
	}
	switch r.kind {
	case kindInsert:
		p.emit(r.insert)
	case kindReset:
		p.closeTo(1)
	default:
		f := &frame{name: tok.name, canonical: r.canonical, pos: tok.pos, style: r.style, interaction: r.interaction}
		if tok.selfClose {
			p.emit(f.node())
			return nil
		}
		p.stack = append(p.stack, f)
	}
	return nil
}

func (p *parser) close(tok token) error {
	match := -1
	for i := len(p.stack) - 1; i >= 1; i-- {
		f := p.stack[i]
		if tok.name == "" || tok.name == f.name || tok.name == f.canonical {
			match = i
			break
		}
	}
	if match < 0 {
		return p.literal(tok, codec.ReasonUnbalanced, "no open tag matches </"+tok.name+">")
	}
	if match != len(p.stack)-1 && p.strict {
		return codec.NewParseError(codec.FormatMarkup, tok.pos, codec.ReasonUnbalanced, "</"+tok.name+"> closes <"+p.stack[match].name+"> across <"+p.top().name+">")
	}
	p.closeTo(match)
	return nil
}

// closeTo pops frames until the stack has depth frames left.
func (p *parser) closeTo(depth int) {
	for len(p.stack) > depth {
		f := p.top()
		p.stack = p.stack[:len(p.stack)-1]
		p.emit(f.node())
	}
}

// literal keeps a rejected tag as text in lenient mode.
func (p *parser) literal(tok token, reason, detail string) error {
	if p.strict {
		return codec.NewParseError(codec.FormatMarkup, tok.pos, reason, detail)
	}
	p.emit(component.Text(tok.raw))
	return nil
}

// nested parses a tag argument as markup. A single transparent wrapper is
// unwrapped so plain arguments become plain text nodes.
func (p *parser) nested(input string) (*component.Node, error) {
	n, err := p.codec.parse(input, p.opts)
	if err != nil {
		return nil, err
	}
	return unwrap(n), nil
}

func unwrap(n *component.Node) *component.Node {
	if n.ChildCount() == 1 && n.Style().IsEmpty() && n.Interaction().IsEmpty() && n.Kind() == component.KindEmpty {
		return n.Child(0)
	}
	return n
}
