package measure

import (
	"io"
	"log/slog"
	"sync"

	"github.com/aretw0/calinea/pkg/component"
	"github.com/aretw0/calinea/pkg/pack"
	"github.com/aretw0/calinea/pkg/translate"
)

// PackMeasurer measures in client pixels using font widths from a pack.
//
// Every glyph advances by its font width plus the letter spacing; bold adds
// one more pixel. A style without a font uses pack.DefaultFont, and a font
// the pack does not know falls back to the default font before the pack's
// default width. Translatable and keybind content is measured as rendered
// in the measurer's language.
type PackMeasurer struct {
	pack       *pack.Pack
	translator *translate.Translator
	spacing    float64
	logger     *slog.Logger

	mu     sync.Mutex
	warned map[string]struct{}
}

// PackOption configures a PackMeasurer.
type PackOption func(*packConfig)

type packConfig struct {
	lang    string
	spacing float64
	logger  *slog.Logger
}

// WithLanguage selects the language used for translatable content.
func WithLanguage(lang string) PackOption {
	return func(c *packConfig) { c.lang = lang }
}

// WithLetterSpacing sets the per-glyph spacing in pixels. Defaults to 1.
func WithLetterSpacing(px float64) PackOption {
	return func(c *packConfig) { c.spacing = px }
}

// WithLogger sets the logger used for missing-data warnings. Each missing
// glyph, font or key is reported once.
func WithLogger(l *slog.Logger) PackOption {
	return func(c *packConfig) { c.logger = l }
}

// NewPackMeasurer returns a measurer over p. A nil pack measures every glyph
// with pack.DefaultCharWidth.
func NewPackMeasurer(p *pack.Pack, opts ...PackOption) *PackMeasurer {
	cfg := packConfig{
		lang:    pack.DefaultLanguage,
		spacing: 1,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if p == nil {
		p = pack.New()
	}
	return &PackMeasurer{
		pack:       p,
		translator: translate.New(p, translate.WithLanguage(cfg.lang), translate.WithLogger(cfg.logger)),
		spacing:    cfg.spacing,
		logger:     cfg.logger,
		warned:     make(map[string]struct{}),
	}
}

// Pack returns the underlying pack.
func (m *PackMeasurer) Pack() *pack.Pack { return m.pack }

// GlyphWidth returns the advance of a single rune.
func (m *PackMeasurer) GlyphWidth(r rune, style component.Style) float64 {
	if r == '\n' {
		return 0
	}
	font, ok := style.Font()
	if !ok {
		font = pack.DefaultFont
	}
	font = pack.NormalizeKey(font)
	res := m.pack.Width(font, r)
	if res.Status == pack.MissingFont && font != pack.DefaultFont {
		m.warnOnce("font:"+font, "font missing from pack", "font", font)
		res = m.pack.Width(pack.DefaultFont, r)
	}
	if res.Status == pack.MissingWidth {
		m.warnOnce("glyph:"+font+":"+string(r), "glyph width missing",
			"font", font, "char", string(r), "default_width", res.Width)
	}
	w := res.Width + m.spacing
	if style.HasDecoration(component.Bold) {
		w++
	}
	return w
}

// MeasureText implements Measurer.
func (m *PackMeasurer) MeasureText(text string, style component.Style) float64 {
	var total float64
	for _, r := range text {
		total += m.GlyphWidth(r, style)
	}
	return total
}

// Measure implements Measurer.
func (m *PackMeasurer) Measure(root *component.Node) float64 {
	return measureResolved(m, m.Resolve(root))
}

// Resolve flattens translatable and keybind content, warning once per key
// that the pack cannot resolve.
func (m *PackMeasurer) Resolve(root *component.Node) *component.Node {
	component.WalkEffective(root, component.EmptyStyle, func(n *component.Node, _ component.Style, _ int) bool {
		key := n.Content().Key()
		switch n.Kind() {
		case component.KindTranslatable:
			if _, ok := m.translator.Lookup(key); !ok {
				m.warnOnce("tr:"+key, "translation missing, measuring fallback", "key", key, "lang", m.translator.Language())
			}
		case component.KindKeybind:
			if _, ok := m.pack.KeybindName(key); !ok {
				m.warnOnce("kb:"+key, "keybind missing, measuring identifier", "key", key)
			}
		}
		return true
	})
	return m.translator.Resolve(root)
}

func (m *PackMeasurer) warnOnce(id, msg string, args ...any) {
	m.mu.Lock()
	_, seen := m.warned[id]
	if !seen {
		m.warned[id] = struct{}{}
	}
	m.mu.Unlock()
	if !seen {
		m.logger.Warn(msg, args...)
	}
}
