// Package legacy implements the flat control-code format: a control
// character followed by a one-character code switches the color or turns on
// a decoration for all following text.
//
//	&cHello &l&nworld&r!
//
// Codes 0-9 and a-f select the sixteen named colors and reset decorations,
// k l m n o enable obfuscated, bold, strikethrough, underlined and italic,
// r resets everything. A backslash escapes the control character or itself.
package legacy

import (
	"github.com/aretw0/calinea/pkg/codec"
	"github.com/aretw0/calinea/pkg/component"
)

const (
	// Ampersand is the default control character.
	Ampersand = '&'
	// Section is the control character used on the wire by game clients.
	Section = '§'

	escape = '\\'
)

var decorationCodes = map[rune]component.Decoration{
	'k': component.Obfuscated,
	'l': component.Bold,
	'm': component.Strikethrough,
	'n': component.Underlined,
	'o': component.Italic,
}

var codeByDecoration = map[component.Decoration]rune{
	component.Obfuscated:    'k',
	component.Bold:          'l',
	component.Strikethrough: 'm',
	component.Underlined:    'n',
	component.Italic:        'o',
}

// Codec parses and serializes legacy strings.
type Codec struct {
	control         rune
	hexColors       bool
	strictSerialize bool
}

// Option configures a Codec.
type Option func(*Codec)

// WithControlChar replaces the control character.
func WithControlChar(r rune) Option {
	return func(c *Codec) {
		c.control = r
	}
}

// WithHexColors accepts and emits &#rrggbb. Without it, RGB colors are
// written as the nearest named color.
func WithHexColors() Option {
	return func(c *Codec) {
		c.hexColors = true
	}
}

// WithStrictSerialize makes Serialize fail with codec.ErrUnsupportedAttribute
// instead of dropping fonts, interactions and (without hex support) RGB colors.
func WithStrictSerialize() Option {
	return func(c *Codec) {
		c.strictSerialize = true
	}
}

// New returns a legacy codec using '&' unless configured otherwise.
func New(opts ...Option) *Codec {
	c := &Codec{control: Ampersand}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ codec.Codec = (*Codec)(nil)

// Format implements codec.Codec.
func (c *Codec) Format() codec.Format { return codec.FormatLegacy }

// ControlChar returns the configured control character.
func (c *Codec) ControlChar() rune { return c.control }
