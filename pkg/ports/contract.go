package ports

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luthierlabs/fretbridge/pkg/domain"
)

// RunTemplateStoreContract runs a suite of tests to verify that a
// TemplateStore implementation adheres to the interface contract, including
// slug derivation, collision suffixing, and traversal rejection.
func RunTemplateStoreContract(t *testing.T, store TemplateStore) {
	ctx := context.Background()

	t.Run("Save and Load", func(t *testing.T) {
		id, err := store.Save(ctx, domain.Template{
			Name:          "My Template",
			Description:   "contract fixture",
			SchemaVersion: "0.3.0",
			Parameters:    map[string]string{"NumFrets": "24"},
		})
		require.NoError(t, err)
		assert.Equal(t, "my_template", id)

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "My Template", loaded.Name)
		assert.Equal(t, "24", loaded.Parameters["NumFrets"])
		assert.False(t, loaded.Readonly)
	})

	t.Run("Same Name Overwrites", func(t *testing.T) {
		first, err := store.Save(ctx, domain.Template{
			Name:       "Overwrite Me",
			Parameters: map[string]string{"NumFrets": "21"},
		})
		require.NoError(t, err)

		second, err := store.Save(ctx, domain.Template{
			Name:       "Overwrite Me",
			Parameters: map[string]string{"NumFrets": "22"},
		})
		require.NoError(t, err)
		assert.Equal(t, first, second)

		loaded, err := store.Load(ctx, second)
		require.NoError(t, err)
		assert.Equal(t, "22", loaded.Parameters["NumFrets"])
	})

	t.Run("Collision Appends Counter", func(t *testing.T) {
		_, err := store.Save(ctx, domain.Template{Name: "Shared Slug"})
		require.NoError(t, err)

		// Different name, same derived slug.
		id, err := store.Save(ctx, domain.Template{Name: "shared   slug"})
		require.NoError(t, err)
		assert.Equal(t, "shared_slug_2", id)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "never_saved")
		assert.ErrorIs(t, err, domain.ErrTemplateNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		id, err := store.Save(ctx, domain.Template{Name: "Delete Me"})
		require.NoError(t, err)

		require.NoError(t, store.Delete(ctx, id))

		_, err = store.Load(ctx, id)
		assert.ErrorIs(t, err, domain.ErrTemplateNotFound)

		assert.ErrorIs(t, store.Delete(ctx, id), domain.ErrTemplateNotFound)
	})

	t.Run("Traversal Rejected", func(t *testing.T) {
		_, err := store.Load(ctx, "../../evil")
		assert.ErrorIs(t, err, domain.ErrPathTraversal)

		assert.ErrorIs(t, store.Delete(ctx, "../../evil"), domain.ErrPathTraversal)

		list, err := store.List(ctx)
		require.NoError(t, err)
		for _, tpl := range list {
			assert.NotContains(t, tpl.ID, "..")
		}
	})

	t.Run("List Sorted By Name", func(t *testing.T) {
		_, err := store.Save(ctx, domain.Template{Name: "Zebra Board"})
		require.NoError(t, err)
		_, err = store.Save(ctx, domain.Template{Name: "Alder Board"})
		require.NoError(t, err)

		list, err := store.List(ctx)
		require.NoError(t, err)

		var prev string
		for _, tpl := range list {
			if prev != "" {
				assert.LessOrEqual(t, prev, tpl.Name)
			}
			prev = tpl.Name
		}
	})
}
