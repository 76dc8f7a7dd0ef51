package kvstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set("token", "abc123"))

	value, err := store.Get("token")
	require.NoError(t, err)
	assert.Equal(t, "abc123", value)

	require.NoError(t, store.Set("token", "def456"))
	value, err = store.Get("token")
	require.NoError(t, err)
	assert.Equal(t, "def456", value)

	require.NoError(t, store.Remove("token"))
	_, err = store.Get("token")
	assert.ErrorIs(t, err, ErrNotFound)

	// Removing a missing key is not an error.
	assert.NoError(t, store.Remove("token"))
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")
	store := NewFileStore(path)

	_, err := store.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set("spotify_refresh", "tok-1"))
	require.NoError(t, store.Set("spotify_access", "tok-2"))

	// A fresh store over the same file sees persisted values.
	reopened := NewFileStore(path)
	value, err := reopened.Get("spotify_refresh")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", value)

	require.NoError(t, reopened.Remove("spotify_refresh"))
	_, err = reopened.Get("spotify_refresh")
	assert.ErrorIs(t, err, ErrNotFound)

	value, err = reopened.Get("spotify_access")
	require.NoError(t, err)
	assert.Equal(t, "tok-2", value)
}
