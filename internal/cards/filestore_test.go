package cards

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.json")
	store, err := NewFileStore(path)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = store.Get(ctx, "Shock")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Put(ctx, &RawCard{
		Name:       "Shock",
		TypeLine:   "Instant",
		OracleText: "Shock deals 2 damage to any target.",
	}))

	card, err := store.Get(ctx, "SHOCK")
	require.NoError(t, err)
	assert.Equal(t, "Shock", card.Name)
}

func TestFileStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.json")
	ctx := context.Background()

	first, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, first.Put(ctx, &RawCard{Name: "Opt", TypeLine: "Instant"}))

	second, err := NewFileStore(path)
	require.NoError(t, err)
	card, err := second.Get(ctx, "Opt")
	require.NoError(t, err)
	assert.Equal(t, "Opt", card.Name)
}

func TestFileStoreImportMergesRecords(t *testing.T) {
	dir := t.TempDir()
	importPath := filepath.Join(dir, "import.json")
	list := []*RawCard{
		{Name: "Opt", TypeLine: "Instant"},
		{Name: "Shock", TypeLine: "Instant"},
	}
	data, err := json.Marshal(list)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(importPath, data, 0o644))

	store, err := NewFileStore(filepath.Join(dir, "cards.json"))
	require.NoError(t, err)

	count, err := store.ImportFile(importPath)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, 2, store.Len())
}

func TestFileStoreRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, err := NewFileStore(path)
	assert.Error(t, err)
}
