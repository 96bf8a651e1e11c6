package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luthierlabs/fretbridge/pkg/adapters/file"
	"github.com/luthierlabs/fretbridge/pkg/domain"
	"github.com/luthierlabs/fretbridge/pkg/ports"
)

func TestFileStore_Contract(t *testing.T) {
	store := file.New(t.TempDir())
	ports.RunTemplateStoreContract(t, store)
}

func TestSlugRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := file.New(t.TempDir())

	id, err := store.Save(ctx, domain.Template{
		Name:       "My Template",
		Parameters: map[string]string{"NumFrets": "24"},
	})
	require.NoError(t, err)
	assert.Equal(t, "my_template", id)

	id2, err := store.Save(ctx, domain.Template{
		Name:       "My-Template!",
		Parameters: map[string]string{"NumFrets": "21"},
	})
	require.NoError(t, err)
	assert.Equal(t, "my_template_2", id2)

	// Degenerate names fall back to the fixed placeholder.
	id3, err := store.Save(ctx, domain.Template{Name: "!!!"})
	require.NoError(t, err)
	assert.Equal(t, "template", id3)
}

func TestDeleteTraversalLeavesStoreUntouched(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := file.New(dir)

	id, err := store.Save(ctx, domain.Template{Name: "Keeper"})
	require.NoError(t, err)

	require.ErrorIs(t, store.Delete(ctx, "../../evil"), domain.ErrPathTraversal)
	require.ErrorIs(t, store.Delete(ctx, `..\..\evil`), domain.ErrPathTraversal)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, id+".json", entries[0].Name())
}

func TestCreatedAtDefaults(t *testing.T) {
	ctx := context.Background()
	store := file.New(t.TempDir())

	id, err := store.Save(ctx, domain.Template{Name: "Dated"})
	require.NoError(t, err)

	loaded, err := store.Load(ctx, id)
	require.NoError(t, err)
	assert.NotEmpty(t, loaded.CreatedAt)
}

func TestListSkipsUnreadableFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := file.New(dir)

	_, err := store.Save(ctx, domain.Template{Name: "Good"})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "junk.json"), []byte("{not json"), 0o644))

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Good", list[0].Name)
}

func TestEmbeddedPresets(t *testing.T) {
	ctx := context.Background()
	presets := file.NewPresets("")

	list, err := presets.List(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, list)

	var prev string
	for _, p := range list {
		assert.True(t, p.Readonly)
		if prev != "" {
			assert.LessOrEqual(t, prev, p.Name)
		}
		prev = p.Name
	}

	tpl, err := presets.Load(ctx, "modern_25_5")
	require.NoError(t, err)
	assert.Equal(t, "25.5", tpl.Parameters["ScaleLengthTreble"])

	// Metric variants drive unit-dependent display.
	metric, ok := tpl.MetricValue("ScaleLengthTreble")
	require.True(t, ok)
	assert.Equal(t, "648", metric)
	assert.NotEqual(t, tpl.DisplayName(domain.UnitMetric), tpl.DisplayName(domain.UnitImperial))

	_, err = presets.Load(ctx, "no_such_preset")
	assert.ErrorIs(t, err, domain.ErrTemplateNotFound)

	_, err = presets.Load(ctx, "../escape")
	assert.ErrorIs(t, err, domain.ErrPathTraversal)
}
