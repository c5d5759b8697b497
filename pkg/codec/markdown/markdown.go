// Package markdown bridges CommonMark and component trees. Emphasis, strong
// emphasis and ~~strikethrough~~ map to decorations, links to underlined
// text that opens the URL, code spans to the uniform font.
package markdown

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/aretw0/calinea/pkg/codec"
	"github.com/aretw0/calinea/pkg/component"
	"github.com/aretw0/calinea/pkg/transform"
)

// CodeFont is applied to code spans and code blocks.
const CodeFont = "minecraft:uniform"

// Codec converts markdown. Block structure beyond paragraphs and headings
// is flattened in lenient mode and rejected in strict mode.
type Codec struct {
	md goldmark.Markdown
}

// New returns a markdown codec.
func New() *Codec {
	return &Codec{
		md: goldmark.New(goldmark.WithExtensions(extension.Strikethrough, extension.Linkify)),
	}
}

var _ codec.Codec = (*Codec)(nil)

// Format implements codec.Codec.
func (c *Codec) Format() codec.Format { return codec.FormatMarkdown }

// Parse implements codec.Codec.
func (c *Codec) Parse(input string, opts ...codec.ParseOption) (*component.Node, error) {
	source := []byte(input)
	doc := c.md.Parser().Parse(text.NewReader(source))
	p := &mdParser{source: source, strict: codec.Apply(opts...).Mode == codec.Strict}

	var children []*component.Node
	for block := doc.FirstChild(); block != nil; block = block.NextSibling() {
		nodes, err := p.block(block)
		if err != nil {
			return nil, err
		}
		if len(nodes) == 0 {
			continue
		}
		if len(children) > 0 {
			children = append(children, component.Text("\n\n"))
		}
		children = append(children, nodes...)
	}
	return transform.Compact(component.Empty(children...)), nil
}

type mdParser struct {
	source []byte
	strict bool
}

func (p *mdParser) unsupported(n ast.Node, what string) error {
	return codec.NewParseError(codec.FormatMarkdown, position(n), codec.ReasonUnknownTag, what+" is not supported")
}

// position returns the first source offset covered by n. Inline nodes have
// no lines of their own, so the first text segment below them is used.
func position(n ast.Node) int {
	if n.Type() == ast.TypeBlock {
		if lines := n.Lines(); lines != nil && lines.Len() > 0 {
			return lines.At(0).Start
		}
	}
	if t, ok := n.(*ast.Text); ok {
		return t.Segment.Start
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if pos := position(c); pos > 0 {
			return pos
		}
	}
	return 0
}

func (p *mdParser) block(n ast.Node) ([]*component.Node, error) {
	switch b := n.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		return p.inlines(b)
	case *ast.Heading:
		kids, err := p.inlines(b)
		if err != nil {
			return nil, err
		}
		return []*component.Node{component.Empty(kids...).WithStyle(component.EmptyStyle.WithDecoration(component.Bold, component.True))}, nil
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		if p.strict {
			return nil, p.unsupported(n, "code block")
		}
		return []*component.Node{component.Text(strings.TrimSuffix(p.lines(n), "\n"), component.EmptyStyle.WithFont(CodeFont))}, nil
	case *ast.HTMLBlock:
		if p.strict {
			return nil, p.unsupported(n, "raw HTML")
		}
		return []*component.Node{component.Text(strings.TrimSuffix(p.lines(n), "\n"))}, nil
	case *ast.ThematicBreak:
		if p.strict {
			return nil, p.unsupported(n, "thematic break")
		}
		return nil, nil
	}
	if p.strict {
		return nil, p.unsupported(n, fmt.Sprintf("block %s", n.Kind()))
	}
	// Lists, quotes and other containers: their blocks, one per line.
	var out []*component.Node
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		nodes, err := p.block(c)
		if err != nil {
			return nil, err
		}
		if len(nodes) == 0 {
			continue
		}
		if len(out) > 0 {
			out = append(out, component.Newline())
		}
		out = append(out, nodes...)
	}
	return out, nil
}

func (p *mdParser) lines(n ast.Node) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(p.source))
	}
	return sb.String()
}

func (p *mdParser) inlines(parent ast.Node) ([]*component.Node, error) {
	var out []*component.Node
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		nodes, err := p.inline(c)
		if err != nil {
			return nil, err
		}
		out = append(out, nodes...)
	}
	return out, nil
}

func (p *mdParser) group(n ast.Node, style component.Style) ([]*component.Node, error) {
	kids, err := p.inlines(n)
	if err != nil {
		return nil, err
	}
	return []*component.Node{component.Empty(kids...).WithStyle(style)}, nil
}

func (p *mdParser) inline(n ast.Node) ([]*component.Node, error) {
	switch t := n.(type) {
	case *ast.Text:
		value := util.UnescapePunctuations(t.Segment.Value(p.source))
		value = util.ResolveNumericReferences(util.ResolveEntityNames(value))
		out := []*component.Node{component.Text(string(value))}
		if t.SoftLineBreak() || t.HardLineBreak() {
			out = append(out, component.Newline())
		}
		return out, nil
	case *ast.String:
		return []*component.Node{component.Text(string(t.Value))}, nil
	case *ast.CodeSpan:
		var sb strings.Builder
		for c := t.FirstChild(); c != nil; c = c.NextSibling() {
			if seg, ok := c.(*ast.Text); ok {
				sb.Write(seg.Segment.Value(p.source))
			}
		}
		return []*component.Node{component.Text(sb.String(), component.EmptyStyle.WithFont(CodeFont))}, nil
	case *ast.Emphasis:
		d := component.Italic
		if t.Level >= 2 {
			d = component.Bold
		}
		return p.group(t, component.EmptyStyle.WithDecoration(d, component.True))
	case *extast.Strikethrough:
		return p.group(t, component.EmptyStyle.WithDecoration(component.Strikethrough, component.True))
	case *ast.Link:
		kids, err := p.inlines(t)
		if err != nil {
			return nil, err
		}
		return []*component.Node{link(string(t.Destination), kids...)}, nil
	case *ast.AutoLink:
		url := string(t.URL(p.source))
		return []*component.Node{link(url, component.Text(string(t.Label(p.source))))}, nil
	case *ast.Image:
		if p.strict {
			return nil, p.unsupported(n, "image")
		}
		return p.inlines(t)
	case *ast.RawHTML:
		if p.strict {
			return nil, codec.NewParseError(codec.FormatMarkdown, rawHTMLPos(t), codec.ReasonUnknownTag, "raw HTML is not supported")
		}
		var sb strings.Builder
		for i := 0; i < t.Segments.Len(); i++ {
			seg := t.Segments.At(i)
			sb.Write(seg.Value(p.source))
		}
		return []*component.Node{component.Text(sb.String())}, nil
	}
	return p.inlines(n)
}

func rawHTMLPos(t *ast.RawHTML) int {
	if t.Segments.Len() > 0 {
		return t.Segments.At(0).Start
	}
	return 0
}

func link(url string, kids ...*component.Node) *component.Node {
	return component.NewBuilder().
		Underlined().
		Click(component.OpenURL, url).
		AppendChildren(kids...).
		MustBuild()
}
