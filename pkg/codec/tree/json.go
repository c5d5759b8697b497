package tree

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/aretw0/calinea/pkg/codec"
	"github.com/aretw0/calinea/pkg/component"
)

// JSONCodec reads and writes records as JSON.
//
// Besides a record object, Parse accepts a bare string (a text node) and an
// array (an empty node with those children). Lenient mode also accepts
// comments and trailing commas and ignores unknown fields.
type JSONCodec struct {
	indent string
}

// Option configures the JSON codec.
type Option func(*JSONCodec)

// WithIndent pretty-prints output using indent per level.
func WithIndent(indent string) Option {
	return func(c *JSONCodec) {
		c.indent = indent
	}
}

// NewJSON returns a JSON codec producing compact output unless configured.
func NewJSON(opts ...Option) *JSONCodec {
	c := &JSONCodec{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ codec.Codec = (*JSONCodec)(nil)

// Format implements codec.Codec.
func (c *JSONCodec) Format() codec.Format { return codec.FormatJSON }

// Parse implements codec.Codec.
func (c *JSONCodec) Parse(input string, opts ...codec.ParseOption) (*component.Node, error) {
	strict := codec.Apply(opts...).Mode == codec.Strict
	data := []byte(input)
	if !strict {
		data = jsonc.ToJSON(data)
	}

	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0:
		return nil, codec.NewParseError(codec.FormatJSON, 0, codec.ReasonSyntax, "empty document")
	case trimmed[0] == '"':
		var s string
		if err := decodeJSON(data, strict, &s); err != nil {
			return nil, err
		}
		return component.Text(s), nil
	case trimmed[0] == '[':
		var recs []Record
		if err := decodeJSON(data, strict, &recs); err != nil {
			return nil, err
		}
		return toNodes(codec.FormatJSON, recs, strict)
	}

	var rec Record
	if err := decodeJSON(data, strict, &rec); err != nil {
		return nil, err
	}
	return toNode(codec.FormatJSON, rec, strict)
}

func decodeJSON(data []byte, strict bool, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(v); err != nil {
		return jsonParseError(err, dec.InputOffset())
	}
	if dec.More() {
		return codec.NewParseError(codec.FormatJSON, int(dec.InputOffset()), codec.ReasonSyntax, "unexpected data after document")
	}
	return nil
}

func jsonParseError(err error, fallback int64) error {
	pos := fallback
	var syntax *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntax):
		pos = syntax.Offset
	case errors.As(err, &typeErr):
		pos = typeErr.Offset
	}
	pe := codec.NewParseError(codec.FormatJSON, int(pos), codec.ReasonSyntax, "")
	pe.Err = err
	return pe
}

func toNode(format codec.Format, rec Record, strict bool) (*component.Node, error) {
	n, err := rec.ToNode(strict)
	if err != nil {
		return nil, recordError(format, err)
	}
	return n, nil
}

func toNodes(format codec.Format, recs []Record, strict bool) (*component.Node, error) {
	children := make([]*component.Node, 0, len(recs))
	for _, r := range recs {
		n, err := toNode(format, r, strict)
		if err != nil {
			return nil, err
		}
		children = append(children, n)
	}
	return component.Empty(children...), nil
}

func recordError(format codec.Format, err error) error {
	pe := codec.NewParseError(format, 0, codec.ReasonInvalidArgument, "")
	pe.Err = err
	return pe
}

// Serialize implements codec.Codec.
func (c *JSONCodec) Serialize(node *component.Node) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if c.indent != "" {
		enc.SetIndent("", c.indent)
	}
	if err := enc.Encode(FromNode(node)); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
