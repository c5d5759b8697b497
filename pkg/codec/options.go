package codec

import (
	"strings"

	"github.com/aretw0/calinea/pkg/component"
)

// Mode selects how parsers treat malformed input.
type Mode uint8

const (
	// Lenient keeps unrecognized sequences as literal text and never fails.
	Lenient Mode = iota
	// Strict fails with a *ParseError at the first malformed sequence.
	Strict
)

func (m Mode) String() string {
	if m == Strict {
		return "strict"
	}
	return "lenient"
}

// ParseOptions is the resolved parse configuration.
type ParseOptions struct {
	Mode         Mode
	Placeholders map[string]*component.Node
}

// ParseOption configures a single Parse call.
type ParseOption func(*ParseOptions)

// WithMode sets the error tolerance.
func WithMode(m Mode) ParseOption {
	return func(o *ParseOptions) {
		o.Mode = m
	}
}

// StrictMode is shorthand for WithMode(Strict).
func StrictMode() ParseOption {
	return WithMode(Strict)
}

// WithPlaceholders registers named insertions. Names are case-insensitive.
// Formats without placeholder support ignore them.
func WithPlaceholders(p map[string]*component.Node) ParseOption {
	return func(o *ParseOptions) {
		for name, n := range p {
			o.setPlaceholder(name, n)
		}
	}
}

// WithPlaceholder registers a single named insertion.
func WithPlaceholder(name string, n *component.Node) ParseOption {
	return func(o *ParseOptions) {
		o.setPlaceholder(name, n)
	}
}

func (o *ParseOptions) setPlaceholder(name string, n *component.Node) {
	if o.Placeholders == nil {
		o.Placeholders = make(map[string]*component.Node)
	}
	o.Placeholders[strings.ToLower(name)] = n
}

// Apply resolves opts over the defaults.
func Apply(opts ...ParseOption) ParseOptions {
	var o ParseOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Placeholder looks up a named insertion, ignoring case.
func (o ParseOptions) Placeholder(name string) (*component.Node, bool) {
	n, ok := o.Placeholders[strings.ToLower(name)]
	return n, ok && n != nil
}
