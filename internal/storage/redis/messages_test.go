package redis_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/sandevgo/pastcast/internal/core"
	"github.com/sandevgo/pastcast/internal/storage/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T, opts ...redis.Option) (*redis.MessagesRepo, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return redis.NewFromClient(client, opts...), mr
}

func TestMessagesRepo_AppendAndRead(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)

	for i := 0; i < 4; i++ {
		require.NoError(t, repo.AddTurn(ctx, core.Turn{SessionID: "web", Role: core.RoleUser, Content: fmt.Sprintf("m%d", i)}))
	}

	turns, err := repo.RecentTurns(ctx, "web", 2)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, "m2", turns[0].Content)
	assert.Equal(t, "m3", turns[1].Content)
	assert.False(t, turns[1].CreatedAt.IsZero())
}

func TestMessagesRepo_MaxLen(t *testing.T) {
	ctx := context.Background()
	repo, mr := newRepo(t, redis.WithMaxLen(3), redis.WithPrefix("test:"))

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.AddTurn(ctx, core.Turn{SessionID: "s", Role: core.RoleAssistant, Content: fmt.Sprintf("m%d", i)}))
	}

	list, err := mr.List("test:s")
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestMessagesRepo_ClearAll(t *testing.T) {
	ctx := context.Background()
	repo, mr := newRepo(t)

	require.NoError(t, repo.AddTurn(ctx, core.Turn{SessionID: "a", Role: core.RoleUser, Content: "1"}))
	require.NoError(t, repo.AddTurn(ctx, core.Turn{SessionID: "b", Role: core.RoleUser, Content: "2"}))
	require.NoError(t, mr.Set("unrelated", "keep"))

	require.NoError(t, repo.Clear(ctx, ""))

	a, err := repo.RecentTurns(ctx, "a", 10)
	require.NoError(t, err)
	assert.Empty(t, a)
	assert.True(t, mr.Exists("unrelated"))
}

func TestMessagesRepo_ClearSession(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)

	require.NoError(t, repo.AddTurn(ctx, core.Turn{SessionID: "a", Role: core.RoleUser, Content: "1"}))
	require.NoError(t, repo.AddTurn(ctx, core.Turn{SessionID: "b", Role: core.RoleUser, Content: "2"}))
	require.NoError(t, repo.Clear(ctx, "a"))

	b, err := repo.RecentTurns(ctx, "b", 10)
	require.NoError(t, err)
	assert.Len(t, b, 1)
}

func TestNew_InvalidURL(t *testing.T) {
	_, err := redis.New("not-a-url://")
	assert.Error(t, err)
}
