package services

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/Dosada05/matchday-predictor/models"
	"github.com/Dosada05/matchday-predictor/repositories"
	"github.com/Dosada05/matchday-predictor/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenStore struct{}

func (brokenStore) Upload(context.Context, string, string, io.Reader) (*storage.UploadResult, error) {
	return nil, errors.New("bucket unreachable")
}

func (brokenStore) Download(context.Context, string) (io.ReadCloser, error) {
	return nil, errors.New("bucket unreachable")
}

func (brokenStore) Exists(context.Context, string) (bool, error) { return false, nil }

func (brokenStore) Delete(context.Context, string) error { return nil }

func (brokenStore) GetPublicURL(key string) string { return "" }

func newTestSnapshots() (SnapshotService, *storage.MemoryStore) {
	store := storage.NewMemoryStore("http://blobs.local")
	return NewSnapshotService(store, repositories.NewMemorySnapshotRefRepository(), discardLogger()), store
}

func TestContentID(t *testing.T) {
	a := ContentID([]byte(`{"a":1}`))
	assert.Equal(t, a, ContentID([]byte(`{"a":1}`)))
	assert.NotEqual(t, a, ContentID([]byte(`{"a":2}`)))
	assert.True(t, IsContentID(a))

	assert.False(t, IsContentID("fifa_final_guest"))
	assert.False(t, IsContentID("sha256-xyz"))
	assert.False(t, IsContentID(a[:len(a)-2]))
}

func TestSnapshotSaveLoad(t *testing.T) {
	ctx := context.Background()
	snaps, store := newTestSnapshots()

	doc := map[string]int{"goals": 3}
	cid, err := snaps.Save(ctx, "fifa_groups_alice", models.SnapshotKindGroups, doc)
	require.NoError(t, err)

	exists, err := store.Exists(ctx, "snapshots/"+cid+".json")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, "http://blobs.local/snapshots/"+cid+".json", snaps.URL(cid))
	assert.Empty(t, snaps.URL(""))

	t.Run("by name", func(t *testing.T) {
		var got map[string]int
		ref, err := snaps.Load(ctx, "fifa_groups_alice", &got)
		require.NoError(t, err)
		assert.Equal(t, doc, got)
		assert.Equal(t, cid, ref.CID)
		assert.Equal(t, models.SnapshotKindGroups, ref.Kind)
	})

	t.Run("by cid", func(t *testing.T) {
		var got map[string]int
		ref, err := snaps.Load(ctx, cid, &got)
		require.NoError(t, err)
		assert.Equal(t, doc, got)
		assert.Equal(t, cid, ref.CID)
	})

	t.Run("same content same cid", func(t *testing.T) {
		again, err := snaps.Save(ctx, "fifa_groups_bob", models.SnapshotKindGroups, map[string]int{"goals": 3})
		require.NoError(t, err)
		assert.Equal(t, cid, again)
	})

	t.Run("name points at latest", func(t *testing.T) {
		newer, err := snaps.Save(ctx, "fifa_groups_alice", models.SnapshotKindGroups, map[string]int{"goals": 4})
		require.NoError(t, err)
		ref, err := snaps.Latest(ctx, "fifa_groups_alice")
		require.NoError(t, err)
		assert.Equal(t, newer, ref.CID)
	})
}

func TestSnapshotNotFound(t *testing.T) {
	ctx := context.Background()
	snaps, _ := newTestSnapshots()

	var v map[string]int
	_, err := snaps.Load(ctx, "nobody", &v)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = snaps.Load(ctx, ContentID([]byte("never stored")), &v)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSnapshotSaveFailure(t *testing.T) {
	snaps := NewSnapshotService(brokenStore{}, repositories.NewMemorySnapshotRefRepository(), discardLogger())

	_, err := snaps.Save(context.Background(), "fifa_final_guest", models.SnapshotKindFinal, map[string]int{})
	assert.ErrorIs(t, err, ErrSnapshotFailed)
}
