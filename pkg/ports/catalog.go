package ports

import (
	"context"

	"github.com/aretw0/calinea/pkg/component"
)

// Catalog defines how authored messages are looked up by ID.
// Sources hold text in one of the codec formats; Get returns the parsed tree.
type Catalog interface {
	// Get parses and returns the message with the given ID.
	Get(ctx context.Context, id string) (*component.Node, error)

	// List returns the IDs of every message in the catalog.
	List(ctx context.Context) ([]string, error)
}

// Watchable defines an interface for catalogs that can notify about backend changes.
// This is typically used to reload previews while authoring.
type Watchable interface {
	// Watch returns a channel that receives the ID of each changed message.
	Watch(ctx context.Context) (<-chan string, error)
}
