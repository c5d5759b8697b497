package ports

import (
	"context"
	"errors"

	"github.com/aretw0/calinea/pkg/component"
)

// ErrNotFound is returned when no tree is stored or cataloged under an ID.
var ErrNotFound = errors.New("component not found")

// ComponentStore defines the interface for persisting component trees.
// Trees are immutable, so implementations may keep them by reference.
type ComponentStore interface {
	// Save persists the tree under id, replacing any previous value.
	Save(ctx context.Context, id string, node *component.Node) error

	// Load retrieves the tree stored under id.
	// Returns ErrNotFound if nothing is stored.
	Load(ctx context.Context, id string) (*component.Node, error)

	// Delete removes the tree stored under id. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of all stored trees.
	List(ctx context.Context) ([]string, error)
}
