// Package file stores component trees as documents in a local directory.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/calinea/pkg/codec"
	"github.com/aretw0/calinea/pkg/codec/tree"
	"github.com/aretw0/calinea/pkg/component"
	"github.com/aretw0/calinea/pkg/ports"
)

// DefaultDir is used when New is given an empty base path.
var DefaultDir = filepath.Join(".calinea", "components")

// ErrInvalidID is returned for empty IDs and IDs that would escape the base path.
var ErrInvalidID = errors.New("invalid component id")

const tmpPrefix = "tmp-"

// Store implements ports.ComponentStore using the local filesystem.
// Each tree is one file named after its ID, written with the store's codec.
type Store struct {
	BasePath string
	codec    codec.Codec
	ext      string
}

// Option configures a Store.
type Option func(*Store)

// WithCodec writes files with c instead of indented JSON. Lossy codecs
// (legacy, markup) drop whatever their format cannot express.
func WithCodec(c codec.Codec) Option {
	return func(s *Store) {
		s.codec = c
	}
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to DefaultDir.
func New(basePath string, opts ...Option) *Store {
	if basePath == "" {
		basePath = DefaultDir
	}
	s := &Store{BasePath: basePath, codec: tree.NewJSON(tree.WithIndent("  "))}
	for _, opt := range opts {
		opt(s)
	}
	s.ext = "." + string(s.codec.Format())
	return s
}

var _ ports.ComponentStore = (*Store)(nil)

func (s *Store) path(id string) (string, error) {
	if id == "" || strings.ContainsAny(id, `/\`) || id == "." || id == ".." || strings.HasPrefix(id, tmpPrefix) {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return filepath.Join(s.BasePath, id+s.ext), nil
}

// Save writes the tree atomically: to a temporary file first, synced, then
// renamed over the destination.
func (s *Store) Save(ctx context.Context, id string, node *component.Node) error {
	destPath, err := s.path(id)
	if err != nil {
		return err
	}
	if node == nil {
		return fmt.Errorf("cannot save nil component %s", id)
	}

	data, err := s.codec.Serialize(node)
	if err != nil {
		return fmt.Errorf("failed to encode component %s: %w", id, err)
	}

	// Ensure directory exists
	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure component directory: %w", err)
	}

	// Same directory keeps the rename on one filesystem.
	tmpFile, err := os.CreateTemp(s.BasePath, tmpPrefix+id+"-*"+s.ext)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath) // no-op after a successful rename
	}()

	if _, err := tmpFile.WriteString(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Cannot rename an open file on Windows.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// On Windows, os.Rename fails if dest exists.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing component file for overwrite: %w", err)
		}
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// Load reads and decodes the tree stored under id.
func (s *Store) Load(ctx context.Context, id string) (*component.Node, error) {
	filePath, err := s.path(id)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ports.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to read component file: %w", err)
	}
	node, err := s.codec.Parse(string(data), codec.StrictMode())
	if err != nil {
		return nil, fmt.Errorf("failed to decode component %s: %w", id, err)
	}
	return node, nil
}

// Delete removes the file. Deleting a missing component is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	filePath, err := s.path(id)
	if err != nil {
		return err
	}
	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete component file: %w", err)
	}
	return nil
}

// List returns the stored IDs in sorted order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list components: %w", err)
	}

	ids := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != s.ext || strings.HasPrefix(name, tmpPrefix) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, s.ext))
	}
	sort.Strings(ids)
	return ids, nil
}
