package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore("https://cdn.example.com/")

	res, err := store.Upload(ctx, "snapshots/abc.json", "application/json", strings.NewReader(`{"a":1}`))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/snapshots/abc.json", res.Location)
	assert.Len(t, res.ETag, 32)

	ok, err := store.Exists(ctx, "snapshots/abc.json")
	require.NoError(t, err)
	assert.True(t, ok)

	body, err := store.Download(ctx, "snapshots/abc.json")
	require.NoError(t, err)
	data, err := io.ReadAll(body)
	require.NoError(t, err)
	require.NoError(t, body.Close())
	assert.Equal(t, `{"a":1}`, string(data))

	require.NoError(t, store.Delete(ctx, "snapshots/abc.json"))
	_, err = store.Download(ctx, "snapshots/abc.json")
	assert.ErrorIs(t, err, ErrNotFound)

	ok, err = store.Exists(ctx, "snapshots/abc.json")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStoreWithoutBaseURL(t *testing.T) {
	assert.Empty(t, NewMemoryStore("").GetPublicURL("x"))
}
