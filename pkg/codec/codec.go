package codec

import (
	"fmt"
	"strings"

	"github.com/aretw0/calinea/pkg/component"
)

// Format names a textual encoding of component trees.
type Format string

const (
	FormatLegacy   Format = "legacy"
	FormatMarkup   Format = "markup"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

// Formats lists the built-in formats.
var Formats = []Format{FormatLegacy, FormatMarkup, FormatJSON, FormatYAML, FormatMarkdown}

// ParseFormat resolves a format name, case-insensitively. "mini" and
// "minimessage" are accepted as aliases of markup, "md" of markdown and
// "yml" of yaml.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "legacy", "ampersand", "section":
		return FormatLegacy, nil
	case "markup", "mini", "minimessage":
		return FormatMarkup, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Codec converts between component trees and one textual format.
//
// Parse never panics on malformed input: in lenient mode it returns a
// best-effort tree, in strict mode a *ParseError. Serialize drops the
// attributes the format cannot represent.
type Codec interface {
	Format() Format
	Parse(input string, opts ...ParseOption) (*component.Node, error)
	Serialize(node *component.Node) (string, error)
}

// Middleware wraps a Codec to add behavior.
type Middleware func(Codec) Codec

// Chain applies middlewares so that the first one is the outermost.
func Chain(c Codec, mws ...Middleware) Codec {
	for i := len(mws) - 1; i >= 0; i-- {
		c = mws[i](c)
	}
	return c
}

// RoundTrip serializes node and parses the result back with c.
func RoundTrip(c Codec, node *component.Node, opts ...ParseOption) (*component.Node, error) {
	s, err := c.Serialize(node)
	if err != nil {
		return nil, err
	}
	return c.Parse(s, opts...)
}

// Convert parses input with from and serializes the tree with to.
func Convert(from, to Codec, input string, opts ...ParseOption) (string, error) {
	node, err := from.Parse(input, opts...)
	if err != nil {
		return "", err
	}
	return to.Serialize(node)
}
