package bolt_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aretw0/grunberg/pkg/adapters/bolt"
	"github.com/aretw0/grunberg/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T, path string) *bolt.Store {
	t.Helper()
	store, err := bolt.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestBoltStore_Contract(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "saves.db"))
	ports.RunSaveStoreContract(t, store)
}

func TestBoltStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saves.db")
	ctx := context.Background()

	first, err := bolt.Open(path)
	require.NoError(t, err)
	require.NoError(t, first.Put(ctx, "grunberg_save", []byte(`{"version":"1.0.0"}`)))
	require.NoError(t, first.Close())

	second := openStore(t, path)
	data, err := second.Get(ctx, "grunberg_save")
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":"1.0.0"}`, string(data))
}

func TestBoltStore_RequiresPath(t *testing.T) {
	_, err := bolt.Open("  ")
	assert.Error(t, err)
}

func TestBoltStore_CanceledContext(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "saves.db"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, store.Put(ctx, "k", []byte("v")), context.Canceled)
	_, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}
