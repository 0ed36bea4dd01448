package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/sandevgo/pastcast/internal/config"
	"github.com/sandevgo/pastcast/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitStorage_SQLite(t *testing.T) {
	ctx := context.Background()
	cfg := &config.AppConfig{RuntimePath: t.TempDir(), Storage: config.StorageSQLite}

	repo, closer, err := initStorage(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = closer.Shutdown(ctx) })

	require.NoError(t, repo.AddTurn(ctx, core.Turn{SessionID: "s", Role: core.RoleUser, Content: "hi"}))
	turns, err := repo.RecentTurns(ctx, "s", 10)
	require.NoError(t, err)
	assert.Len(t, turns, 1)
	assert.FileExists(t, cfg.GetDatabasePath())
}

func TestInitStorage_RedisTrimsSessions(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	cfg := &config.AppConfig{Storage: config.StorageRedis, RedisURL: "redis://" + mr.Addr() + "/0", RedisMaxTurns: 2}

	repo, closer, err := initStorage(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = closer.Shutdown(ctx) })

	for _, msg := range []string{"one", "two", "three"} {
		require.NoError(t, repo.AddTurn(ctx, core.Turn{SessionID: "s", Role: core.RoleUser, Content: msg}))
	}
	turns, err := repo.RecentTurns(ctx, "s", 10)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, "two", turns[0].Content)
}

func TestInitStorage_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, _, err := initStorage(context.Background(), &config.AppConfig{Storage: config.StorageRedis, RedisURL: "redis://" + addr + "/0"})
	assert.ErrorContains(t, err, "connect redis")
}

func TestInitStorage_Unknown(t *testing.T) {
	_, _, err := initStorage(context.Background(), &config.AppConfig{Storage: "mongo"})
	assert.ErrorContains(t, err, `unknown storage backend "mongo"`)
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, loadEnv(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PASTCAST_TEST_LOADENV=yes\n"), 0600))
	t.Cleanup(func() { os.Unsetenv("PASTCAST_TEST_LOADENV") })

	require.NoError(t, loadEnv(dir))
	assert.Equal(t, "yes", os.Getenv("PASTCAST_TEST_LOADENV"))
}
