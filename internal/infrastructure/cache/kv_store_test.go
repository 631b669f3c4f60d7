package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/librestock/backend/internal/urlkit"
)

func TestInMemoryKVStore(t *testing.T) {
	store := NewInMemoryKVStore()
	ctx := context.Background()

	t.Run("missing key reads as empty string", func(t *testing.T) {
		value, err := store.GetItem(ctx, "server_url")
		require.NoError(t, err)
		assert.Empty(t, value)
	})

	t.Run("set then get round-trips", func(t *testing.T) {
		require.NoError(t, store.SetItem(ctx, "server_url", "http://example.com"))

		value, err := store.GetItem(ctx, "server_url")
		require.NoError(t, err)
		assert.Equal(t, "http://example.com", value)
	})

	t.Run("remove deletes the key", func(t *testing.T) {
		require.NoError(t, store.SetItem(ctx, "server_url", "http://example.com"))
		require.NoError(t, store.RemoveItem(ctx, "server_url"))

		value, err := store.GetItem(ctx, "server_url")
		require.NoError(t, err)
		assert.Empty(t, value)
	})

	t.Run("removing a missing key is not an error", func(t *testing.T) {
		assert.NoError(t, store.RemoveItem(ctx, "never-set"))
	})
}

func TestInMemoryKVStore_WithReadStoredURL(t *testing.T) {
	store := NewInMemoryKVStore()
	ctx := context.Background()

	t.Run("valid saved URL is returned normalized", func(t *testing.T) {
		require.NoError(t, store.SetItem(ctx, "server_url", "example.com:8080"))

		resolved, warning, err := urlkit.ReadStoredURL(ctx, store, "server_url")
		require.NoError(t, err)
		assert.Empty(t, warning)
		assert.Equal(t, "http://example.com:8080", resolved)
	})

	t.Run("invalid saved URL is cleared with a warning", func(t *testing.T) {
		require.NoError(t, store.SetItem(ctx, "server_url", "not a url"))

		resolved, warning, err := urlkit.ReadStoredURL(ctx, store, "server_url")
		require.NoError(t, err)
		assert.Empty(t, resolved)
		assert.Equal(t, urlkit.InvalidSavedURLMessage, warning)

		value, err := store.GetItem(ctx, "server_url")
		require.NoError(t, err)
		assert.Empty(t, value, "invalid value is removed from the store")
	})
}
