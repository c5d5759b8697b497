// Package layout wraps component trees into lines of a maximum width and
// aligns them within a display area.
package layout

import (
	"strings"

	"github.com/aretw0/calinea/pkg/component"
	"github.com/aretw0/calinea/pkg/measure"
	"github.com/aretw0/calinea/pkg/translate"
)

// Line is one wrapped line. Node carries absolute styles: it renders the same
// regardless of where it is placed.
type Line struct {
	Node  *component.Node
	Width float64
}

// Tokenizer splits text into wrap units. Every input character must appear in
// exactly one token; line feeds must be their own token.
type Tokenizer func(text string) []string

// Tokenize splits on spaces and line feeds, which become single-character
// tokens, and after each dash so hyphenated words can wrap.
//
//	Tokenize("Hello well-known\nWorld") == ["Hello", " ", "well-", "known", "\n", "World"]
func Tokenize(text string) []string {
	var tokens []string
	start := 0
	for i, r := range text {
		switch r {
		case ' ', '\n':
			if i > start {
				tokens = append(tokens, text[start:i])
			}
			tokens = append(tokens, text[i:i+1])
			start = i + 1
		case '-':
			tokens = append(tokens, text[start:i+1])
			start = i + 1
		}
	}
	if start < len(text) {
		tokens = append(tokens, text[start:])
	}
	return tokens
}

type splitConfig struct {
	tokenize Tokenizer
}

// SplitOption configures Split.
type SplitOption func(*splitConfig)

// WithTokenizer replaces Tokenize.
func WithTokenizer(t Tokenizer) SplitOption {
	return func(c *splitConfig) { c.tokenize = t }
}

// Split wraps root into lines no wider than maxWidth. Text is broken at token
// boundaries; whitespace that would start a wrapped line is dropped, and a
// token wider than a whole line is broken between runes. Translatable and
// keybind content is resolved first, through the measurer when it implements
// measure.Textual. Split always returns at least one line.
func Split(root *component.Node, maxWidth float64, m measure.Measurer, opts ...SplitOption) []Line {
	cfg := splitConfig{tokenize: Tokenize}
	for _, opt := range opts {
		opt(&cfg)
	}
	if t, ok := m.(measure.Textual); ok {
		root = t.Resolve(root)
	} else {
		root = translate.New(nil).Resolve(root)
	}

	s := &splitter{m: m, max: maxWidth, tokenize: cfg.tokenize}
	if root != nil {
		s.traverse(root, component.EmptyStyle, component.Interaction{})
	}
	return s.finish()
}

type splitter struct {
	m        measure.Measurer
	max      float64
	tokenize Tokenizer

	lines []Line
	nodes []*component.Node
	width float64

	pending      strings.Builder
	pendingStyle component.Style
	pendingInter component.Interaction
}

func (s *splitter) traverse(n *component.Node, parent component.Style, inherited component.Interaction) {
	style := component.Merge(n.Style(), parent)
	inter := inherited
	if !n.Interaction().IsEmpty() {
		inter = n.Interaction()
	}
	if n.Kind() == component.KindText && n.Content().Text() != "" {
		s.text(n.Content().Text(), style, inter)
	}
	for i := 0; i < n.ChildCount(); i++ {
		s.traverse(n.Child(i), style, inter)
	}
}

func (s *splitter) text(text string, style component.Style, inter component.Interaction) {
	for _, tok := range s.tokenize(text) {
		if tok == "\n" {
			s.newLine()
			continue
		}
		w := s.m.MeasureText(tok, style)
		if s.width+w <= s.max {
			s.append(tok, w, style, inter)
			continue
		}
		if s.width > 0 {
			s.newLine()
		}
		if strings.TrimSpace(tok) == "" {
			continue
		}
		if w <= s.max {
			s.append(tok, w, style, inter)
			continue
		}
		s.splitRunes(tok, style, inter)
	}
}

func (s *splitter) splitRunes(tok string, style component.Style, inter component.Interaction) {
	for _, r := range tok {
		ch := string(r)
		w := s.m.MeasureText(ch, style)
		if s.width > 0 && s.width+w > s.max {
			s.newLine()
		}
		s.append(ch, w, style, inter)
	}
}

func (s *splitter) append(text string, w float64, style component.Style, inter component.Interaction) {
	if s.pending.Len() > 0 && (style != s.pendingStyle || !inter.Equal(s.pendingInter)) {
		s.flush()
	}
	if s.pending.Len() == 0 {
		s.pendingStyle, s.pendingInter = style, inter
	}
	s.pending.WriteString(text)
	s.width += w
}

func (s *splitter) flush() {
	if s.pending.Len() == 0 {
		return
	}
	n := component.Text(s.pending.String(), s.pendingStyle)
	if !s.pendingInter.IsEmpty() {
		n = n.WithInteraction(s.pendingInter)
	}
	s.nodes = append(s.nodes, n)
	s.pending.Reset()
}

func (s *splitter) newLine() {
	s.flush()
	s.lines = append(s.lines, Line{Node: s.lineNode(), Width: s.width})
	s.nodes = nil
	s.width = 0
}

func (s *splitter) finish() []Line {
	s.flush()
	if s.width > 0 || len(s.nodes) > 0 || len(s.lines) == 0 {
		s.lines = append(s.lines, Line{Node: s.lineNode(), Width: s.width})
	}
	return s.lines
}

func (s *splitter) lineNode() *component.Node {
	switch len(s.nodes) {
	case 0:
		return component.Empty()
	case 1:
		return s.nodes[0]
	default:
		return component.Empty(s.nodes...)
	}
}
