// Package markup implements the nested tag format:
//
//	<gold>Hello <bold>world</bold></gold> <click:run_command:'/spawn'>[spawn]</click>
//
// Tags map to exactly one style attribute or interaction each and nest
// freely. Self-closing tags insert content: <lang:key:'arg'>, <key:id>,
// <newline>, and caller-supplied placeholders. A backslash escapes '<' and
// itself.
package markup

import (
	"github.com/aretw0/calinea/pkg/codec"
	"github.com/aretw0/calinea/pkg/component"
)

// Codec parses and serializes tag markup.
type Codec struct {
	placeholders map[string]*component.Node
}

// Option configures a Codec.
type Option func(*Codec)

// WithDefaultPlaceholders registers insertions available to every Parse
// call. Placeholders passed to Parse take precedence.
func WithDefaultPlaceholders(p map[string]*component.Node) Option {
	return func(c *Codec) {
		for name, n := range p {
			c.placeholders[name] = n
		}
	}
}

// New returns a markup codec.
func New(opts ...Option) *Codec {
	c := &Codec{placeholders: map[string]*component.Node{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ codec.Codec = (*Codec)(nil)

// Format implements codec.Codec.
func (c *Codec) Format() codec.Format { return codec.FormatMarkup }

func (c *Codec) options(opts []codec.ParseOption) codec.ParseOptions {
	o := codec.Apply(append([]codec.ParseOption{codec.WithPlaceholders(c.placeholders)}, opts...)...)
	return o
}
