package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectSQLiteAndMigrate(t *testing.T) {
	conn, err := Connect(DriverSQLite, ":memory:", time.Second)
	require.NoError(t, err)
	defer conn.Close()

	ctx := context.Background()
	require.NoError(t, Migrate(ctx, conn, DriverSQLite))
	require.NoError(t, Migrate(ctx, conn, DriverSQLite), "migrations are repeatable")

	var n int
	require.NoError(t, conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM snapshot_refs`).Scan(&n))
	assert.Zero(t, n)
}

func TestConnectUnknownDriver(t *testing.T) {
	_, err := Connect("mysql", "x", time.Second)
	assert.Error(t, err)
}
