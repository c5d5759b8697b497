// Package pack holds client resource data used to measure and resolve
// component trees: per-font glyph widths, key binding display names and
// translation tables.
//
// A Pack is immutable once built and safe for concurrent use.
package pack

import (
	"sort"
	"strings"
)

const (
	// FormatName is the value of the "format" field of a pack file.
	FormatName = "calinea-config"
	// CurrentVersion is the newest pack file version understood by Read.
	CurrentVersion = 1
	// DefaultFont is the font used when a style does not name one.
	DefaultFont = "minecraft:default"
	// DefaultLanguage is the language used for measurement.
	DefaultLanguage = "en_us"
	// DefaultCharWidth is the width used when no pack data covers a glyph.
	DefaultCharWidth = 5.0
)

// SupportedVersions lists the pack file versions Read accepts.
var SupportedVersions = []int{1}

// Status describes the outcome of a width lookup.
type Status uint8

const (
	Found Status = iota
	MissingWidth
	MissingFont
	CircularReference
)

func (s Status) String() string {
	switch s {
	case Found:
		return "found"
	case MissingWidth:
		return "missing_width"
	case MissingFont:
		return "missing_font"
	case CircularReference:
		return "circular_reference"
	default:
		return "unknown"
	}
}

// WidthResult is the width of a glyph and how it was obtained. When the
// status is not Found, Width holds the pack's default width.
type WidthResult struct {
	Width  float64
	Status Status
}

// OK reports whether the width came from font data.
func (r WidthResult) OK() bool { return r.Status == Found }

// Font is the width table of one font. References name other fonts consulted
// in order when a glyph has no direct width.
type Font struct {
	Key        string
	References []string
	Widths     map[rune]float64
}

// Pack is a set of fonts, keybind names and translations.
type Pack struct {
	defaultWidth float64
	fonts        map[string]*Font
	keybinds     map[string]string
	translations map[string]map[string]string
}

// Option configures a Pack built with New.
type Option func(*Pack)

// WithDefaultWidth sets the width used when no font data covers a glyph.
func WithDefaultWidth(w float64) Option {
	return func(p *Pack) { p.defaultWidth = w }
}

// WithFont adds or replaces a font.
func WithFont(key string, widths map[rune]float64, references ...string) Option {
	return func(p *Pack) {
		p.addFont(key, widths, references)
	}
}

// WithKeybind maps a key binding identifier to its display name.
func WithKeybind(key, name string) Option {
	return func(p *Pack) { p.keybinds[key] = name }
}

// WithTranslations adds entries to a language. Existing keys are overwritten.
func WithTranslations(lang string, entries map[string]string) Option {
	return func(p *Pack) { p.addTranslations(lang, entries) }
}

// New builds a pack. Without options it has no data and every lookup falls
// back to DefaultCharWidth.
func New(opts ...Option) *Pack {
	p := &Pack{
		defaultWidth: DefaultCharWidth,
		fonts:        make(map[string]*Font),
		keybinds:     make(map[string]string),
		translations: make(map[string]map[string]string),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Pack) addFont(key string, widths map[rune]float64, references []string) {
	f := &Font{Key: NormalizeKey(key), Widths: make(map[rune]float64, len(widths))}
	for r, w := range widths {
		f.Widths[r] = w
	}
	seen := make(map[string]bool, len(references))
	for _, ref := range references {
		ref = NormalizeKey(ref)
		if seen[ref] {
			continue
		}
		seen[ref] = true
		f.References = append(f.References, ref)
	}
	p.fonts[f.Key] = f
}

func (p *Pack) addTranslations(lang string, entries map[string]string) {
	lang = strings.ToLower(lang)
	table, ok := p.translations[lang]
	if !ok {
		table = make(map[string]string, len(entries))
		p.translations[lang] = table
	}
	for k, v := range entries {
		table[k] = v
	}
}

// NormalizeKey qualifies a bare resource key with the "minecraft" namespace.
func NormalizeKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" || strings.Contains(key, ":") {
		return key
	}
	return "minecraft:" + key
}

// DefaultWidth returns the fallback glyph width.
func (p *Pack) DefaultWidth() float64 { return p.defaultWidth }

// Font returns the font registered under key.
func (p *Pack) Font(key string) (*Font, bool) {
	f, ok := p.fonts[NormalizeKey(key)]
	return f, ok
}

// Fonts returns the registered font keys, sorted.
func (p *Pack) Fonts() []string {
	return sortedKeys(p.fonts)
}

// Width looks up the width of r in font. The font's own table is consulted
// first, then each reference depth-first in declaration order. A font that
// is already being searched is skipped, so reference cycles terminate.
func (p *Pack) Width(font string, r rune) WidthResult {
	res := p.width(NormalizeKey(font), r, make(map[string]bool))
	if res.Status != Found {
		res.Width = p.defaultWidth
	}
	return res
}

func (p *Pack) width(key string, r rune, visiting map[string]bool) WidthResult {
	f, ok := p.fonts[key]
	if !ok {
		return WidthResult{Status: MissingFont}
	}
	if visiting[key] {
		return WidthResult{Status: CircularReference}
	}
	visiting[key] = true
	defer delete(visiting, key)

	if w, ok := f.Widths[r]; ok {
		return WidthResult{Width: w, Status: Found}
	}
	for _, ref := range f.References {
		if visiting[ref] {
			continue
		}
		if res := p.width(ref, r, visiting); res.Status == Found {
			return res
		}
	}
	return WidthResult{Status: MissingWidth}
}

// KeybindName returns the display name of a key binding.
func (p *Pack) KeybindName(key string) (string, bool) {
	name, ok := p.keybinds[key]
	return name, ok
}

// Keybinds returns a copy of the keybind table.
func (p *Pack) Keybinds() map[string]string {
	out := make(map[string]string, len(p.keybinds))
	for k, v := range p.keybinds {
		out[k] = v
	}
	return out
}

// Translation returns the pattern for key in lang.
func (p *Pack) Translation(lang, key string) (string, bool) {
	table, ok := p.translations[strings.ToLower(lang)]
	if !ok {
		return "", false
	}
	v, ok := table[key]
	return v, ok
}

// Languages returns the languages that have translations, sorted.
func (p *Pack) Languages() []string {
	return sortedKeys(p.translations)
}

// TranslationCount returns the number of keys defined for lang.
func (p *Pack) TranslationCount(lang string) int {
	return len(p.translations[strings.ToLower(lang)])
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
