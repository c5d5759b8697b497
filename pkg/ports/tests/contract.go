package tests

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/calinea/pkg/component"
	"github.com/aretw0/calinea/pkg/ports"
)

// RunComponentStoreContract runs a suite of tests to verify that a ComponentStore
// implementation adheres to the defined interface contract.
func RunComponentStoreContract(t *testing.T, store ports.ComponentStore) {
	t.Helper()

	ctx := context.Background()
	id := "contract-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		click := component.Interaction{Click: &component.ClickEvent{Action: component.RunCommand, Value: "/spawn"}}
		tree := component.Empty(
			component.Text("Hello ", component.NewStyle(component.Gold, component.Bold)),
			component.Translatable("chat.type.text", component.Text("Alex"), component.Text("hi")),
			component.Keybind("key.jump").WithInteraction(click),
		).WithStyle(component.EmptyStyle.WithFont("minecraft:uniform"))

		require.NoError(t, store.Save(ctx, id, tree), "Save should not return error")

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err, "Load should not return error")
		assert.True(t, tree.Equal(loaded), "loaded tree should equal the saved one")
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, id, component.Text("first")))
		require.NoError(t, store.Save(ctx, id, component.Text("second")))

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.True(t, component.Text("second").Equal(loaded))
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+id)
		assert.ErrorIs(t, err, ports.ErrNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, id, component.Text("bye")))

		require.NoError(t, store.Delete(ctx, id), "Delete should not return error")

		_, err := store.Load(ctx, id)
		assert.ErrorIs(t, err, ports.ErrNotFound, "Load after Delete should return ErrNotFound")

		assert.NoError(t, store.Delete(ctx, id), "deleting twice should not fail")
	})

	t.Run("List", func(t *testing.T) {
		id1 := id + "-1"
		id2 := id + "-2"
		require.NoError(t, store.Save(ctx, id1, component.Text("one")))
		require.NoError(t, store.Save(ctx, id2, component.Text("two")))
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
		assert.NotContains(t, ids, id)
	})
}

// RunCatalogContract verifies that a Catalog serves exactly the trees in want,
// keyed by message ID.
func RunCatalogContract(t *testing.T, catalog ports.Catalog, want map[string]*component.Node) {
	t.Helper()

	ctx := context.Background()

	t.Run("Get_Success", func(t *testing.T) {
		for id, expected := range want {
			got, err := catalog.Get(ctx, id)
			require.NoError(t, err, "unexpected error getting %s", id)
			assert.True(t, expected.Equal(got), "tree mismatch for %s", id)
		}
	})

	t.Run("Get_NotFound", func(t *testing.T) {
		_, err := catalog.Get(ctx, "non-existent-message")
		assert.Error(t, err, "expected error for non-existent message")
	})

	t.Run("List", func(t *testing.T) {
		ids, err := catalog.List(ctx)
		require.NoError(t, err)
		assert.Len(t, ids, len(want))
		for id := range want {
			assert.Contains(t, ids, id, "message %s missing from list", id)
		}
	})
}
