package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/calinea/pkg/component"
	"github.com/aretw0/calinea/pkg/ports"
)

// Store implements ports.ComponentStore in memory.
// Nodes are immutable, so they are kept by reference. Safe for concurrent use.
type Store struct {
	data map[string]*component.Node
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*component.Node),
	}
}

// Save stores the tree.
func (s *Store) Save(ctx context.Context, id string, node *component.Node) error {
	if node == nil {
		return fmt.Errorf("save %s: nil node", id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[id] = node
	return nil
}

// Load retrieves the tree.
func (s *Store) Load(ctx context.Context, id string) (*component.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	node, ok := s.data[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ports.ErrNotFound, id)
	}
	return node, nil
}

// Delete removes the tree.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns the stored IDs in sorted order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
