package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/grunberg/internal/adapters/file"
	"github.com/aretw0/grunberg/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Contract(t *testing.T) {
	store := file.New(t.TempDir())
	ports.RunSaveStoreContract(t, store)
}

func TestFileStore_Layout(t *testing.T) {
	dir := t.TempDir()
	store := file.New(filepath.Join(dir, "nested"))
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "grunberg_save", []byte(`{"version":"1.0.0"}`)))

	data, err := os.ReadFile(filepath.Join(dir, "nested", "grunberg_save.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":"1.0.0"}`, string(data))

	entries, err := os.ReadDir(filepath.Join(dir, "nested"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileStore_RejectsPathKeys(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	for _, key := range []string{"", "../escape", `a\b`, ".."} {
		assert.Error(t, store.Put(ctx, key, []byte("x")), "key %q", key)
	}
}

func TestFileStore_ListMissingDir(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "absent"))
	keys, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, keys)
}
