package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/aretw0/calinea/pkg/codec"
	"github.com/aretw0/calinea/pkg/codec/markup"
	"github.com/aretw0/calinea/pkg/component"
	"github.com/aretw0/calinea/pkg/ports"
)

// Catalog implements ports.Catalog over in-memory sources, all written in
// the same format.
type Catalog struct {
	sources map[string]string
	codec   codec.Codec
	opts    []codec.ParseOption
}

// NewCatalog creates a catalog parsing sources with c, or with the markup
// codec when c is nil. Parse options apply to every Get.
func NewCatalog(sources map[string]string, c codec.Codec, opts ...codec.ParseOption) *Catalog {
	if c == nil {
		c = markup.New()
	}
	copied := make(map[string]string, len(sources))
	for k, v := range sources {
		copied[k] = v
	}
	return &Catalog{sources: copied, codec: c, opts: opts}
}

// Get parses the source stored under id.
func (c *Catalog) Get(ctx context.Context, id string) (*component.Node, error) {
	src, ok := c.sources[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ports.ErrNotFound, id)
	}
	node, err := c.codec.Parse(src, c.opts...)
	if err != nil {
		return nil, fmt.Errorf("message %s: %w", id, err)
	}
	return node, nil
}

// List returns all message IDs.
func (c *Catalog) List(ctx context.Context) ([]string, error) {
	keys := make([]string, 0, len(c.sources))
	for k := range c.sources {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys, nil
}
