package markup

import (
	"strings"

	"github.com/aretw0/calinea/pkg/codec"
)

type tokenKind uint8

const (
	tokText tokenKind = iota
	tokOpen
	tokClose
)

type token struct {
	kind      tokenKind
	pos       int
	raw       string
	text      string
	name      string
	args      []string
	selfClose bool
}

type lexer struct {
	input  string
	pos    int
	strict bool
}

// lex splits the input into text runs and tags. Escapes are resolved in text
// runs; tag arguments are unquoted.
func lex(input string, strict bool) ([]token, error) {
	l := &lexer{input: input, strict: strict}
	var out []token
	var text strings.Builder
	textStart := 0

	flushText := func() {
		if text.Len() > 0 {
			out = append(out, token{kind: tokText, pos: textStart, text: text.String()})
			text.Reset()
		}
	}

	for l.pos < len(input) {
		ch := input[l.pos]
		switch {
		case ch == '\\':
			if l.pos+1 < len(input) && (input[l.pos+1] == '<' || input[l.pos+1] == '\\') {
				if text.Len() == 0 {
					textStart = l.pos
				}
				text.WriteByte(input[l.pos+1])
				l.pos += 2
				continue
			}
			if strict {
				return nil, codec.NewParseError(codec.FormatMarkup, l.pos, codec.ReasonMalformedEscape, "backslash must precede '<' or a backslash")
			}
		case ch == '<' && l.pos+1 < len(input) && isTagStart(input[l.pos+1]):
			tok, end, ok := l.tag(l.pos)
			if ok {
				flushText()
				out = append(out, tok)
				l.pos = end
				textStart = end
				continue
			}
			if strict {
				return nil, codec.NewParseError(codec.FormatMarkup, l.pos, codec.ReasonUnterminatedTag, "missing '>'")
			}
		}
		if text.Len() == 0 {
			textStart = l.pos
		}
		text.WriteByte(ch)
		l.pos++
	}
	flushText()
	return out, nil
}

func isTagStart(c byte) bool {
	return c == '/' || c == '#' || c == '!' || c == '_' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// tag scans a tag starting at the '<' at start. It reports false when no
// unquoted '>' closes the tag before the end of input or the next '<'.
func (l *lexer) tag(start int) (token, int, bool) {
	var quote byte
	for i := start + 1; i < len(l.input); i++ {
		c := l.input[i]
		switch {
		case quote != 0:
			if c == '\\' && i+1 < len(l.input) {
				i++
				continue
			}
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '<':
			return token{}, 0, false
		case c == '>':
			raw := l.input[start : i+1]
			return parseTag(raw, start), i + 1, true
		}
	}
	return token{}, 0, false
}

func parseTag(raw string, pos int) token {
	inner := raw[1 : len(raw)-1]
	tok := token{pos: pos, raw: raw, kind: tokOpen}
	if strings.HasPrefix(inner, "/") {
		tok.kind = tokClose
		tok.name = strings.ToLower(strings.TrimSpace(inner[1:]))
		return tok
	}
	if strings.HasSuffix(inner, "/") {
		tok.selfClose = true
		inner = inner[:len(inner)-1]
	}
	parts := splitArgs(inner)
	tok.name = strings.ToLower(parts[0])
	tok.args = parts[1:]
	return tok
}

// splitArgs splits on unquoted ':' and removes quotes. Inside quotes a
// backslash escapes the quote character or a backslash.
func splitArgs(s string) []string {
	var parts []string
	var cur strings.Builder
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == '\\' && i+1 < len(s) && (s[i+1] == quote || s[i+1] == '\\') {
				cur.WriteByte(s[i+1])
				i++
				continue
			}
			if c == quote {
				quote = 0
				continue
			}
			cur.WriteByte(c)
		case c == '\'' || c == '"':
			quote = c
		case c == ':':
			parts = append(parts, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	return append(parts, cur.String())
}

// quoteArg is the inverse of the unquoting done by splitArgs.
func quoteArg(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('\'')
	for i := 0; i < len(s); i++ {
		if s[i] == '\'' || s[i] == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteByte(s[i])
	}
	sb.WriteByte('\'')
	return sb.String()
}

func escapeText(s string) string {
	if !strings.ContainsAny(s, `<\`) {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '<' || s[i] == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}
