package tree

import (
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/calinea/pkg/codec"
	"github.com/aretw0/calinea/pkg/component"
)

// YAMLCodec reads and writes records as YAML. Like the JSON codec it
// accepts a bare string or a sequence of records. Strict mode rejects
// unknown fields.
type YAMLCodec struct{}

// NewYAML returns a YAML codec.
func NewYAML() *YAMLCodec {
	return &YAMLCodec{}
}

var _ codec.Codec = (*YAMLCodec)(nil)

// Format implements codec.Codec.
func (c *YAMLCodec) Format() codec.Format { return codec.FormatYAML }

// Parse implements codec.Codec.
func (c *YAMLCodec) Parse(input string, opts ...codec.ParseOption) (*component.Node, error) {
	strict := codec.Apply(opts...).Mode == codec.Strict

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(input), &doc); err != nil {
		return nil, yamlParseError(input, err)
	}
	if len(doc.Content) == 0 {
		return nil, codec.NewParseError(codec.FormatYAML, 0, codec.ReasonSyntax, "empty document")
	}

	root := doc.Content[0]
	switch root.Kind {
	case yaml.ScalarNode:
		return component.Text(root.Value), nil
	case yaml.SequenceNode:
		var recs []Record
		if err := decodeYAML(input, strict, &recs); err != nil {
			return nil, err
		}
		return toNodes(codec.FormatYAML, recs, strict)
	}

	var rec Record
	if err := decodeYAML(input, strict, &rec); err != nil {
		return nil, err
	}
	return toNode(codec.FormatYAML, rec, strict)
}

func decodeYAML(input string, strict bool, v any) error {
	dec := yaml.NewDecoder(strings.NewReader(input))
	dec.KnownFields(strict)
	if err := dec.Decode(v); err != nil {
		return yamlParseError(input, err)
	}
	return nil
}

var yamlLine = regexp.MustCompile(`line (\d+)`)

// yamlParseError converts the first "line N" of a yaml error into a byte
// offset.
func yamlParseError(input string, err error) error {
	pos := 0
	if m := yamlLine.FindStringSubmatch(err.Error()); m != nil {
		if line, convErr := strconv.Atoi(m[1]); convErr == nil {
			pos = lineOffset(input, line)
		}
	}
	pe := codec.NewParseError(codec.FormatYAML, pos, codec.ReasonSyntax, "")
	pe.Err = err
	return pe
}

func lineOffset(input string, line int) int {
	off := 0
	for l := 1; l < line; l++ {
		i := strings.IndexByte(input[off:], '\n')
		if i < 0 {
			return off
		}
		off += i + 1
	}
	return off
}

// Serialize implements codec.Codec.
func (c *YAMLCodec) Serialize(node *component.Node) (string, error) {
	out, err := yaml.Marshal(FromNode(node))
	if err != nil {
		return "", err
	}
	return string(out), nil
}
