package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/Dosada05/matchday-predictor/db"
	"github.com/Dosada05/matchday-predictor/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteRepo(t *testing.T) SnapshotRefRepository {
	t.Helper()
	conn, err := db.Connect(db.DriverSQLite, ":memory:", time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, db.Migrate(context.Background(), conn, db.DriverSQLite))
	return NewSQLiteSnapshotRefRepository(conn)
}

func TestSnapshotRefRepositories(t *testing.T) {
	repos := map[string]func(t *testing.T) SnapshotRefRepository{
		"memory": func(*testing.T) SnapshotRefRepository { return NewMemorySnapshotRefRepository() },
		"sqlite": newSQLiteRepo,
	}

	for name, newRepo := range repos {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := newRepo(t)
			at := time.Date(2026, 7, 19, 20, 0, 0, 0, time.UTC)

			_, err := repo.GetByName(ctx, "fifa_final_guest")
			assert.ErrorIs(t, err, ErrSnapshotRefNotFound)

			require.NoError(t, repo.Upsert(ctx, nil, &models.SnapshotRef{Name: "fifa_final_guest", CID: "sha256-aa", Kind: models.SnapshotKindFinal, UpdatedAt: at}))
			require.NoError(t, repo.Upsert(ctx, nil, &models.SnapshotRef{Name: "fifa_final_guest", CID: "sha256-bb", Kind: models.SnapshotKindFinal, UpdatedAt: at.Add(time.Hour)}))
			require.NoError(t, repo.Upsert(ctx, nil, &models.SnapshotRef{Name: "UEL_matches", CID: "sha256-cc", Kind: models.SnapshotKindSchedule}))

			ref, err := repo.GetByName(ctx, "fifa_final_guest")
			require.NoError(t, err)
			assert.Equal(t, "sha256-bb", ref.CID, "latest cid wins")
			assert.True(t, at.Add(time.Hour).Equal(ref.UpdatedAt))

			refs, err := repo.ListByKind(ctx, models.SnapshotKindSchedule)
			require.NoError(t, err)
			require.Len(t, refs, 1)
			assert.Equal(t, "UEL_matches", refs[0].Name)

			err = repo.Upsert(ctx, nil, &models.SnapshotRef{Name: "", CID: "x"})
			assert.ErrorIs(t, err, ErrSnapshotRefNameInvalid)

			require.NoError(t, repo.Delete(ctx, "UEL_matches"))
			assert.ErrorIs(t, repo.Delete(ctx, "UEL_matches"), ErrSnapshotRefNotFound)
		})
	}
}

func TestBindPlaceholders(t *testing.T) {
	lite := &sqlSnapshotRefRepository{driver: "sqlite3"}
	assert.Equal(t, "SELECT ? , ? FROM t WHERE a = ?", lite.bind("SELECT $1 , $2 FROM t WHERE a = $12"))

	pg := &sqlSnapshotRefRepository{driver: "postgres"}
	assert.Equal(t, "a = $1", pg.bind("a = $1"))
}
