package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/calinea/pkg/codec"
	"github.com/aretw0/calinea/pkg/codec/legacy"
	"github.com/aretw0/calinea/pkg/codec/markdown"
	"github.com/aretw0/calinea/pkg/codec/markup"
	"github.com/aretw0/calinea/pkg/codec/tree"
)

// Registry maps formats to codecs. It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	codecs map[codec.Format]codec.Codec
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[codec.Format]codec.Codec),
	}
}

// Default returns a registry holding every built-in codec with default
// settings.
func Default() *Registry {
	r := NewRegistry()
	r.Register(legacy.New())
	r.Register(markup.New())
	r.Register(tree.NewJSON())
	r.Register(tree.NewYAML())
	r.Register(markdown.New())
	return r
}

// Register adds a codec under its format.
// If a codec for the same format exists, it is overwritten.
func (r *Registry) Register(c codec.Codec) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codecs[c.Format()] = c
}

// Get looks up the codec for a format.
// Returns an error wrapping codec.ErrUnknownFormat if none is registered.
func (r *Registry) Get(f codec.Format) (codec.Codec, error) {
	r.mu.RLock()
	c, ok := r.codecs[f]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", codec.ErrUnknownFormat, f)
	}
	return c, nil
}

// Lookup resolves a format name (aliases included) and returns its codec.
func (r *Registry) Lookup(name string) (codec.Codec, error) {
	f, err := codec.ParseFormat(name)
	if err != nil {
		return nil, err
	}
	return r.Get(f)
}

// Formats lists the registered formats in sorted order.
func (r *Registry) Formats() []codec.Format {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]codec.Format, 0, len(r.codecs))
	for f := range r.codecs {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Wrap replaces every registered codec with mw applied to it.
func (r *Registry) Wrap(mw codec.Middleware) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for f, c := range r.codecs {
		r.codecs[f] = mw(c)
	}
}
