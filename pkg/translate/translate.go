// Package translate replaces translatable and keybind nodes with literal text
// taken from pack data, so trees can be measured or displayed outside a
// client that knows the translations.
package translate

import (
	"io"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/aretw0/calinea/pkg/component"
	"github.com/aretw0/calinea/pkg/pack"
	"github.com/aretw0/calinea/pkg/transform"
)

// Translator resolves client-side content against a pack. It is safe for
// concurrent use.
type Translator struct {
	pack     *pack.Pack
	lang     string
	fallback string
	logger   *slog.Logger
}

// Option configures a Translator.
type Option func(*Translator)

// WithLanguage selects the language tried first. Defaults to en_us.
func WithLanguage(lang string) Option {
	return func(t *Translator) { t.lang = lang }
}

// WithFallbackLanguage selects the language tried when the primary one has no
// entry. An empty value disables the second lookup.
func WithFallbackLanguage(lang string) Option {
	return func(t *Translator) { t.fallback = lang }
}

// WithLogger sets the logger used to report missing translations.
func WithLogger(l *slog.Logger) Option {
	return func(t *Translator) { t.logger = l }
}

// New returns a translator. A nil pack behaves like an empty one.
func New(p *pack.Pack, opts ...Option) *Translator {
	if p == nil {
		p = pack.New()
	}
	t := &Translator{
		pack:     p,
		lang:     pack.DefaultLanguage,
		fallback: pack.DefaultLanguage,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Language returns the primary language.
func (t *Translator) Language() string { return t.lang }

// Lookup returns the translation pattern for key.
func (t *Translator) Lookup(key string) (string, bool) {
	if v, ok := t.pack.Translation(t.lang, key); ok {
		return v, true
	}
	if t.fallback != "" && t.fallback != t.lang {
		return t.pack.Translation(t.fallback, key)
	}
	return "", false
}

// Pattern returns the pattern used to render translatable content: the pack
// translation, else the content's fallback, else its key.
func (t *Translator) Pattern(c component.Content) string {
	if v, ok := t.Lookup(c.Key()); ok {
		return v
	}
	t.logger.Debug("translation missing", "key", c.Key(), "lang", t.lang)
	if c.Fallback() != "" {
		return c.Fallback()
	}
	return c.Key()
}

// KeybindName returns the display name of a key binding, or the identifier
// itself when the pack does not know it.
func (t *Translator) KeybindName(key string) string {
	if name, ok := t.pack.KeybindName(key); ok {
		return name
	}
	t.logger.Debug("keybind missing", "key", key)
	return key
}

// Resolve returns a tree without translatable or keybind content. A
// translatable node becomes an empty-content group holding the formatted
// pattern with its arguments spliced in, followed by the node's own children.
// A keybind node becomes text. Style and interaction are preserved.
func (t *Translator) Resolve(root *component.Node) *component.Node {
	return transform.Replace(root, func(n *component.Node) (*component.Node, bool) {
		switch n.Kind() {
		case component.KindTranslatable:
			return t.translatable(n), true
		case component.KindKeybind:
			return t.keybind(n), true
		}
		return nil, false
	})
}

func (t *Translator) translatable(n *component.Node) *component.Node {
	c := n.Content()
	args := make([]*component.Node, c.ArgCount())
	for i := range args {
		args[i] = t.Resolve(c.Arg(i))
	}
	parts := Format(t.Pattern(c), args...)
	parts = append(parts, t.children(n)...)
	group := component.Empty(parts...).
		WithStyle(n.Style()).
		WithInteraction(n.Interaction())
	return transform.Compact(group)
}

func (t *Translator) keybind(n *component.Node) *component.Node {
	return component.Text(t.KeybindName(n.Content().Key()), n.Style()).
		WithInteraction(n.Interaction()).
		WithChildren(t.children(n)...)
}

func (t *Translator) children(n *component.Node) []*component.Node {
	out := make([]*component.Node, 0, n.ChildCount())
	for i := 0; i < n.ChildCount(); i++ {
		out = append(out, t.Resolve(n.Child(i)))
	}
	return out
}

// Text renders a single translatable or keybind node as plain text, without
// its children. It matches transform.TextResolver.
func (t *Translator) Text(n *component.Node) (string, bool) {
	switch n.Kind() {
	case component.KindTranslatable:
		return transform.PlainText(t.translatable(n.WithChildren())), true
	case component.KindKeybind:
		return t.KeybindName(n.Content().Key()), true
	}
	return "", false
}

// PlainText resolves the tree and extracts its text.
func (t *Translator) PlainText(root *component.Node) string {
	return transform.PlainText(root, transform.WithResolver(t.Text))
}

var placeholder = regexp.MustCompile(`%(?:([0-9]+)\$)?([sd%])`)

// Format splits a translation pattern into nodes. "%s" and "%d" consume
// arguments in order, "%N$s" selects argument N (1-based) and "%%" is a
// literal percent sign. A placeholder without a matching argument is kept
// as literal text.
func Format(pattern string, args ...*component.Node) []*component.Node {
	var out []*component.Node
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			out = append(out, component.Text(lit.String()))
			lit.Reset()
		}
	}

	next := 0
	last := 0
	for _, m := range placeholder.FindAllStringSubmatchIndex(pattern, -1) {
		lit.WriteString(pattern[last:m[0]])
		last = m[1]
		verb := pattern[m[4]:m[5]]
		if verb == "%" {
			if m[2] >= 0 {
				lit.WriteString(pattern[m[0]:m[1]])
			} else {
				lit.WriteByte('%')
			}
			continue
		}
		idx := next
		if m[2] >= 0 {
			n, err := strconv.Atoi(pattern[m[2]:m[3]])
			if err != nil || n < 1 {
				lit.WriteString(pattern[m[0]:m[1]])
				continue
			}
			idx = n - 1
		} else {
			next++
		}
		if idx >= len(args) || args[idx] == nil {
			lit.WriteString(pattern[m[0]:m[1]])
			continue
		}
		flush()
		out = append(out, args[idx])
	}
	lit.WriteString(pattern[last:])
	flush()
	return out
}

// ArgCount reports how many arguments pattern consumes: the number of
// sequential placeholders or the highest positional index, whichever is larger.
func ArgCount(pattern string) int {
	seq, max := 0, 0
	for _, m := range placeholder.FindAllStringSubmatchIndex(pattern, -1) {
		if pattern[m[4]:m[5]] == "%" {
			continue
		}
		if m[2] >= 0 {
			if n, err := strconv.Atoi(pattern[m[2]:m[3]]); err == nil && n > max {
				max = n
			}
			continue
		}
		seq++
	}
	if seq > max {
		return seq
	}
	return max
}
