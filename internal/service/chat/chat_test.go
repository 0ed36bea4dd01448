package chat

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/sandevgo/pastcast/internal/config"
	"github.com/sandevgo/pastcast/internal/core"
	"github.com/sandevgo/pastcast/internal/service/memory"
	"github.com/sandevgo/pastcast/internal/service/router"
	"github.com/sandevgo/pastcast/internal/storage/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("database/sql.(*DB).connectionOpener"))
}

type echoRouter struct {
	mu    sync.Mutex
	reqs  []router.Request
	delay time.Duration
}

func (e *echoRouter) Respond(_ context.Context, req router.Request) router.Reply {
	e.mu.Lock()
	e.reqs = append(e.reqs, req)
	e.mu.Unlock()
	if e.delay > 0 {
		time.Sleep(e.delay)
	}
	return router.Reply{Decision: router.GeneralGeneration{Query: req.Text}, Text: "echo: " + req.Text}
}

func newService(t *testing.T, r Responder, opts ...Option) *Service {
	t.Helper()
	db, err := sqlite.NewDB(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mem := memory.NewMemory(&config.AppConfig{HistoryLimit: 20, ContextWindowSize: 6}, sqlite.NewMessagesRepo(db))
	return New(mem, r, opts...)
}

func TestHandle_EmptyInputSkipsStore(t *testing.T) {
	r := &echoRouter{}
	svc := newService(t, r)
	ctx := context.Background()

	ex := svc.Handle(ctx, "", "   ")

	assert.True(t, ex.Empty)
	assert.Equal(t, core.EmptyMessageReply, ex.Reply)
	assert.False(t, ex.Timestamp.IsZero())
	assert.Empty(t, r.reqs)

	turns, err := svc.History(ctx, "", 0)
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestHandle_StoresBothTurns(t *testing.T) {
	svc := newService(t, &echoRouter{})
	ctx := context.Background()

	ex := svc.Handle(ctx, "", "  hello  ")

	assert.Equal(t, "echo: hello", ex.Reply)
	assert.Equal(t, router.IntentGeneral, ex.Intent)

	turns, err := svc.History(ctx, DefaultSession, 0)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, core.RoleUser, turns[0].Role)
	assert.Equal(t, "hello", turns[0].Content)
	assert.Equal(t, core.RoleAssistant, turns[1].Role)
	assert.Equal(t, "echo: hello", turns[1].Content)
}

func TestHandle_SerializesPerSession(t *testing.T) {
	svc := newService(t, &echoRouter{delay: 2 * time.Millisecond})
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			svc.Handle(ctx, "web", fmt.Sprintf("q%d", i))
		}(i)
	}
	wg.Wait()

	turns, err := svc.History(ctx, "web", 50)
	require.NoError(t, err)
	require.Len(t, turns, 16)

	for i := 0; i < len(turns); i += 2 {
		assert.Equal(t, core.RoleUser, turns[i].Role)
		assert.Equal(t, core.RoleAssistant, turns[i+1].Role)
		assert.Equal(t, "echo: "+turns[i].Content, turns[i+1].Content)
	}
	assert.Zero(t, svc.locks.size())
}

func TestHandle_HistoryInPrompt(t *testing.T) {
	r := &echoRouter{}
	svc := newService(t, r, WithHistoryInPrompt(true))
	ctx := context.Background()

	svc.Handle(ctx, "s1", "first")
	svc.Handle(ctx, "s1", "second")

	require.Len(t, r.reqs, 2)
	assert.Equal(t, "USER: first\nASSISTANT: echo: first\nUSER: second", r.reqs[1].History)
}

func TestHandle_HistoryOffByDefault(t *testing.T) {
	r := &echoRouter{}
	svc := newService(t, r)

	svc.Handle(context.Background(), "s1", "first")
	svc.Handle(context.Background(), "s1", "second")

	assert.Empty(t, r.reqs[1].History)
}

func TestClear_ThenHistoryEmpty(t *testing.T) {
	svc := newService(t, &echoRouter{})
	ctx := context.Background()

	svc.Handle(ctx, "a", "one")
	svc.Handle(ctx, "b", "two")

	require.NoError(t, svc.Clear(ctx, ""))

	for _, s := range []string{"a", "b"} {
		turns, err := svc.History(ctx, s, 0)
		require.NoError(t, err)
		assert.Empty(t, turns)
	}
}

type brokenRepo struct{}

func (brokenRepo) AddTurn(context.Context, core.Turn) error { return errors.New("read-only") }
func (brokenRepo) RecentTurns(context.Context, string, int) ([]core.Turn, error) {
	return nil, errors.New("read-only")
}
func (brokenRepo) Clear(context.Context, string) error { return errors.New("read-only") }

func TestHandle_StoreFailureStillReplies(t *testing.T) {
	mem := memory.NewMemory(&config.AppConfig{HistoryLimit: 20, ContextWindowSize: 6}, brokenRepo{})
	svc := New(mem, &echoRouter{}, WithHistoryInPrompt(true))

	ex := svc.Handle(context.Background(), "web", "hello")

	assert.Equal(t, "echo: hello", ex.Reply)
	assert.Error(t, svc.Clear(context.Background(), ""))
}
