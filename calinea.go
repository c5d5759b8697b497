package calinea

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/calinea/pkg/codec"
	"github.com/aretw0/calinea/pkg/component"
	"github.com/aretw0/calinea/pkg/layout"
	"github.com/aretw0/calinea/pkg/measure"
	"github.com/aretw0/calinea/pkg/observability"
	"github.com/aretw0/calinea/pkg/pack"
	"github.com/aretw0/calinea/pkg/registry"
	"github.com/aretw0/calinea/pkg/translate"
)

// Toolkit is the high-level entry point for the library.
// It wires a codec registry, resource pack data, a translator and a pixel
// measurer behind a small API. It is safe for concurrent use once built.
type Toolkit struct {
	registry   *registry.Registry
	pack       *pack.Pack
	packPath   string
	language   string
	translator *translate.Translator
	measurer   *measure.PackMeasurer
	metrics    *observability.Metrics
	registerer prometheus.Registerer
	codecs     []codec.Codec
	mws        []codec.Middleware
	logger     *slog.Logger
}

// Option defines a functional option for configuring the Toolkit.
type Option func(*Toolkit)

// WithLogger sets a custom structured logger. Codec calls are logged at
// debug level and pack gaps as warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Toolkit) {
		t.logger = logger
	}
}

// WithPack uses already loaded pack data.
func WithPack(p *pack.Pack) Option {
	return func(t *Toolkit) {
		t.pack = p
	}
}

// WithPackFile loads pack data from a JSON(C) or YAML file during New.
func WithPackFile(path string) Option {
	return func(t *Toolkit) {
		t.packPath = path
	}
}

// WithLanguage selects the translation language (default en_us).
func WithLanguage(lang string) Option {
	return func(t *Toolkit) {
		t.language = lang
	}
}

// WithCodec registers an extra codec, replacing any built-in one for the
// same format.
func WithCodec(c codec.Codec) Option {
	return func(t *Toolkit) {
		t.codecs = append(t.codecs, c)
	}
}

// WithCodecMiddleware wraps every registered codec with mw.
func WithCodecMiddleware(mw codec.Middleware) Option {
	return func(t *Toolkit) {
		t.mws = append(t.mws, mw)
	}
}

// WithMetrics registers Prometheus collectors on reg and instruments every codec.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(t *Toolkit) {
		t.registerer = reg
	}
}

// New builds a Toolkit. It fails when the pack file cannot be loaded or the
// metrics cannot be registered.
func New(opts ...Option) (*Toolkit, error) {
	t := &Toolkit{language: pack.DefaultLanguage}
	for _, opt := range opts {
		opt(t)
	}

	// Ensure logger is initialized so components never receive nil.
	if t.logger == nil {
		t.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if t.packPath != "" {
		p, err := pack.Load(t.packPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load pack: %w", err)
		}
		t.pack = p
		t.logger.Debug("pack loaded", "path", t.packPath, "fonts", len(p.Fonts()), "languages", len(p.Languages()))
	}
	if t.pack == nil {
		t.pack = pack.New()
	}

	t.registry = registry.Default()
	for _, c := range t.codecs {
		t.registry.Register(c)
	}
	t.registry.Wrap(codec.WithLogging(t.logger))
	for _, mw := range t.mws {
		t.registry.Wrap(mw)
	}
	if t.registerer != nil {
		m, err := observability.NewMetrics(t.registerer)
		if err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		t.metrics = m
		t.registry.Wrap(observability.Instrument(m))
	}

	t.translator = translate.New(t.pack,
		translate.WithLanguage(t.language),
		translate.WithLogger(t.logger),
	)
	t.measurer = measure.NewPackMeasurer(t.pack,
		measure.WithLanguage(t.language),
		measure.WithLogger(t.logger),
	)
	return t, nil
}

// Registry returns the codec registry.
func (t *Toolkit) Registry() *registry.Registry { return t.registry }

// Pack returns the resource pack data.
func (t *Toolkit) Pack() *pack.Pack { return t.pack }

// Translator returns the translator for the configured language.
func (t *Toolkit) Translator() *translate.Translator { return t.translator }

// Measurer returns the pixel width measurer.
func (t *Toolkit) Measurer() *measure.PackMeasurer { return t.measurer }

// Metrics returns the registered collectors, or nil without WithMetrics.
func (t *Toolkit) Metrics() *observability.Metrics { return t.metrics }

// Logger returns the configured logger.
func (t *Toolkit) Logger() *slog.Logger { return t.logger }

// Parse reads input in the given format.
func (t *Toolkit) Parse(format codec.Format, input string, opts ...codec.ParseOption) (*component.Node, error) {
	c, err := t.registry.Get(format)
	if err != nil {
		return nil, err
	}
	return c.Parse(input, opts...)
}

// ParseAuto detects the format of input, then parses it.
func (t *Toolkit) ParseAuto(input string, opts ...codec.ParseOption) (*component.Node, codec.Format, error) {
	f := codec.Detect(input)
	n, err := t.Parse(f, input, opts...)
	return n, f, err
}

// Serialize writes node in the given format.
func (t *Toolkit) Serialize(format codec.Format, node *component.Node) (string, error) {
	c, err := t.registry.Get(format)
	if err != nil {
		return "", err
	}
	return c.Serialize(node)
}

// Convert parses input in one format and serializes it in another.
func (t *Toolkit) Convert(from, to codec.Format, input string, opts ...codec.ParseOption) (string, error) {
	src, err := t.registry.Get(from)
	if err != nil {
		return "", err
	}
	dst, err := t.registry.Get(to)
	if err != nil {
		return "", err
	}
	return codec.Convert(src, dst, input, opts...)
}

// Resolve replaces translatable and keybind content with literal text.
func (t *Toolkit) Resolve(node *component.Node) *component.Node {
	return t.translator.Resolve(node)
}

// PlainText returns the text a client would display, without styling.
func (t *Toolkit) PlainText(node *component.Node) string {
	return t.translator.PlainText(node)
}

// Width measures node in client pixels.
func (t *Toolkit) Width(node *component.Node) float64 {
	return t.measurer.Measure(node)
}

// Layout starts a layout of node measured with the pack.
func (t *Toolkit) Layout(node *component.Node) *layout.Builder {
	return layout.New(node, t.measurer)
}

// Wrap splits node into lines no wider than maxWidth pixels.
func (t *Toolkit) Wrap(node *component.Node, maxWidth float64) []layout.Line {
	return layout.Split(node, maxWidth, t.measurer)
}
