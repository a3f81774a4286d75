package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *LocalStorage {
	t.Helper()
	store, err := NewLocalStorage(t.TempDir(), "/api/v1/files")
	require.NoError(t, err)
	return store
}

func TestLocalStorageRoundTrip(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	err := store.Save(ctx, "2026/01/photo.png", strings.NewReader("png-bytes"), "image/png")
	require.NoError(t, err)

	exists, err := store.Exists(ctx, "2026/01/photo.png")
	require.NoError(t, err)
	assert.True(t, exists)

	reader, err := store.Get(ctx, "2026/01/photo.png")
	require.NoError(t, err)
	defer reader.Close()
	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, store.Delete(ctx, "2026/01/photo.png"))
	exists, err = store.Exists(ctx, "2026/01/photo.png")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalStorageDeleteMissingFile(t *testing.T) {
	store := newTestStorage(t)
	// Deleting a file that is already gone is not an error.
	assert.NoError(t, store.Delete(context.Background(), "nope.txt"))
}

func TestLocalStorageTraversalStaysInside(t *testing.T) {
	base := t.TempDir()
	store, err := NewLocalStorage(base, "")
	require.NoError(t, err)
	ctx := context.Background()

	// A sibling file outside the storage root must be unreachable.
	outside := filepath.Join(filepath.Dir(base), "secret.txt")
	require.NoError(t, os.WriteFile(outside, []byte("secret"), 0600))

	_, err = store.Get(ctx, "../secret.txt")
	assert.Error(t, err)

	// Writes with traversal keys land inside the root, never above it.
	require.NoError(t, store.Save(ctx, "../escaped.txt", strings.NewReader("x"), "text/plain"))
	_, statErr := os.Stat(filepath.Join(filepath.Dir(base), "escaped.txt"))
	assert.True(t, os.IsNotExist(statErr))
	exists, err := store.Exists(ctx, "escaped.txt")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestLocalStorageURL(t *testing.T) {
	store := newTestStorage(t)
	assert.Equal(t, "/api/v1/files/abc", store.URL("abc"))

	bare, err := NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)
	assert.Equal(t, "/files/abc", bare.URL("abc"))
}
