// Package loam serves component catalogs from a Loam document repository.
//
// Each document is one message: the frontmatter carries MessageMetadata and
// the body is the message source in the format it names.
package loam

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"

	"github.com/aretw0/calinea/pkg/codec"
	"github.com/aretw0/calinea/pkg/component"
	"github.com/aretw0/calinea/pkg/ports"
	"github.com/aretw0/calinea/pkg/registry"
)

// DefaultFormat is used for documents without a format key.
const DefaultFormat = codec.FormatMarkup

// Entry describes a cataloged message without parsing it.
type Entry struct {
	ID          string
	Path        string
	Format      codec.Format
	Description string
	Tags        []string
}

// Catalog adapts the Loam library to the ports.Catalog interface.
type Catalog struct {
	Repo     *loam.TypedRepository[MessageMetadata]
	registry *registry.Registry
	opts     []codec.ParseOption
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithRegistry selects the codecs used to parse bodies. Defaults to registry.Default().
func WithRegistry(r *registry.Registry) Option {
	return func(c *Catalog) { c.registry = r }
}

// WithParseOptions applies opts to every parse.
func WithParseOptions(opts ...codec.ParseOption) Option {
	return func(c *Catalog) { c.opts = append(c.opts, opts...) }
}

// New creates a new Loam catalog.
func New(repo *loam.TypedRepository[MessageMetadata], opts ...Option) *Catalog {
	c := &Catalog{Repo: repo}
	for _, opt := range opts {
		opt(c)
	}
	if c.registry == nil {
		c.registry = registry.Default()
	}
	return c
}

// Open initializes a read-only repository at path and returns its catalog.
func Open(path string, opts ...Option) (*Catalog, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	repo, err := loam.Init(abs,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[MessageMetadata](repo), opts...), nil
}

// Get retrieves the document listed under id and parses its body with the
// codec named by its format. Surrounding whitespace in the body is ignored.
// IDs that no document declares are looked up by path.
func (c *Catalog) Get(ctx context.Context, id string) (*component.Node, error) {
	paths, err := c.index(ctx)
	if err != nil {
		return nil, err
	}
	path, ok := paths[id]
	if !ok {
		// Loam finds welcome.md when asked for "welcome".
		path = id
	}

	doc, err := c.Repo.Get(ctx, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ports.ErrNotFound, id)
		}
		return nil, fmt.Errorf("loam get failed for %s: %w", id, err)
	}

	cd, err := c.codecFor(doc.Data.Format)
	if err != nil {
		return nil, fmt.Errorf("message %s: %w", id, err)
	}
	node, err := cd.Parse(strings.TrimSpace(doc.Content), c.opts...)
	if err != nil {
		return nil, fmt.Errorf("message %s: %w", id, err)
	}
	return node, nil
}

func (c *Catalog) codecFor(format string) (codec.Codec, error) {
	if format == "" {
		return c.registry.Get(DefaultFormat)
	}
	return c.registry.Lookup(format)
}

// List returns every message ID.
func (c *Catalog) List(ctx context.Context) ([]string, error) {
	entries, err := c.Entries(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids, nil
}

// Entries lists the metadata of every message, sorted by ID.
// Two documents resolving to the same ID are reported as a collision.
func (c *Catalog) Entries(ctx context.Context) ([]Entry, error) {
	docs, err := c.documents(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(docs))
	for _, doc := range docs {
		id := messageID(doc)
		format := DefaultFormat
		if doc.Data.Format != "" {
			f, err := codec.ParseFormat(doc.Data.Format)
			if err != nil {
				return nil, fmt.Errorf("message %s: %w", id, err)
			}
			format = f
		}
		entries = append(entries, Entry{
			ID:          id,
			Path:        doc.ID,
			Format:      format,
			Description: doc.Data.Description,
			Tags:        doc.Data.Tags,
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries, nil
}

// documents lists the repository, rejecting ID collisions.
func (c *Catalog) documents(ctx context.Context) ([]*loam.DocumentModel[MessageMetadata], error) {
	docs, err := c.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}
	seen := make(map[string]string, len(docs))
	for _, doc := range docs {
		id := messageID(doc)
		if existingPath, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existingPath, doc.ID)
		}
		seen[id] = doc.ID
	}
	return docs, nil
}

// index maps each message ID to its document path.
func (c *Catalog) index(ctx context.Context) (map[string]string, error) {
	docs, err := c.documents(ctx)
	if err != nil {
		return nil, err
	}
	paths := make(map[string]string, len(docs))
	for _, doc := range docs {
		paths[messageID(doc)] = doc.ID
	}
	return paths, nil
}

// messageID prefers the frontmatter id over the document path.
func messageID(doc *loam.DocumentModel[MessageMetadata]) string {
	if doc.Data.ID != "" {
		return trimExtension(doc.Data.ID)
	}
	return trimExtension(doc.ID)
}

// Put serializes node with the codec for format and saves it as a document
// under id.
func (c *Catalog) Put(ctx context.Context, id string, node *component.Node, format codec.Format, description string) error {
	cd, err := c.registry.Get(format)
	if err != nil {
		return err
	}
	body, err := cd.Serialize(node)
	if err != nil {
		return fmt.Errorf("serialize %s: %w", id, err)
	}
	return c.Repo.Save(ctx, &loam.DocumentModel[MessageMetadata]{
		ID:      id,
		Content: body,
		Data: MessageMetadata{
			ID:          id,
			Format:      string(format),
			Description: description,
		},
	})
}

// Watch implements ports.Watchable, sending the message ID of each change.
// Paths are translated through the catalog index, so events carry the same
// IDs as List.
func (c *Catalog) Watch(ctx context.Context) (<-chan string, error) {
	events, err := c.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	known := make(map[string]string)
	c.remember(ctx, known)

	ch := make(chan string, 1)

	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				c.remember(ctx, known)
				select {
				case ch <- resolveEvent(known, evt.ID):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}

// remember records the path-to-ID mapping of the current documents. Deleted
// documents keep their last known ID.
func (c *Catalog) remember(ctx context.Context, known map[string]string) {
	paths, err := c.index(ctx)
	if err != nil {
		return
	}
	for id, path := range paths {
		known[filepath.ToSlash(path)] = id
	}
}

func resolveEvent(known map[string]string, path string) string {
	if id, ok := known[filepath.ToSlash(path)]; ok {
		return id
	}
	return trimExtension(path)
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
