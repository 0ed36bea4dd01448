package command

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sandevgo/pastcast/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	turns   []core.Turn
	limit   int
	cleared []string
	err     error
}

func (f *fakeStore) Recent(_ context.Context, _ string, limit int) ([]core.Turn, error) {
	f.limit = limit
	return f.turns, f.err
}

func (f *fakeStore) Clear(_ context.Context, sessionID string) error {
	f.cleared = append(f.cleared, sessionID)
	return f.err
}

type fakeModel string

func (m fakeModel) Model() string { return string(m) }

func TestRouter_PlainTextIsNotACommand(t *testing.T) {
	r := NewRouter(&fakeStore{}, fakeModel("ollama/qwen"))

	for _, in := range []string{"hello", "", "/", "what is 1/2"} {
		_, ok := r.Execute(context.Background(), "s", in)
		assert.False(t, ok, in)
	}
}

func TestRouter_UnknownCommand(t *testing.T) {
	r := NewRouter(&fakeStore{}, fakeModel("ollama/qwen"))

	out, ok := r.Execute(context.Background(), "s", "/dance now")
	assert.True(t, ok)
	assert.Equal(t, "Unknown command: /dance", out)
}

func TestRouter_ListCommandsSorted(t *testing.T) {
	r := NewRouter(&fakeStore{}, fakeModel("m"))

	var names []string
	for _, c := range r.ListCommands() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"clear", "help", "history", "languages", "model"}, names)
}

func TestHistoryCommand(t *testing.T) {
	at := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	store := &fakeStore{turns: []core.Turn{
		{Role: core.RoleUser, Content: "weather in\nPune", CreatedAt: at},
		{Role: core.RoleAssistant, Content: "Sunny", CreatedAt: at},
	}}
	r := NewRouter(store, fakeModel("m"))
	ctx := context.Background()

	out, ok := r.Execute(ctx, "telegram-1", "/history 5")
	require.True(t, ok)
	assert.Equal(t, 5, store.limit)
	assert.Contains(t, out, "Last 2 messages")
	assert.Contains(t, out, "09:30 **user**: weather in Pune")
	assert.Contains(t, out, "**assistant**: Sunny")

	_, _ = r.Execute(ctx, "telegram-1", "/history")
	assert.Equal(t, defaultHistoryItems, store.limit)

	out, _ = r.Execute(ctx, "telegram-1", "/history abc")
	assert.Contains(t, out, "/history [count]")
}

func TestHistoryCommand_Empty(t *testing.T) {
	r := NewRouter(&fakeStore{}, fakeModel("m"))

	out, _ := r.Execute(context.Background(), "s", "/history")
	assert.Contains(t, out, "History is empty")
}

func TestClearCommand(t *testing.T) {
	store := &fakeStore{}
	r := NewRouter(store, fakeModel("m"))

	out, ok := r.Execute(context.Background(), "telegram-7", "/clear@pastcast_bot")
	require.True(t, ok)
	assert.Contains(t, out, core.HistoryClearedMsg)
	assert.Equal(t, []string{"telegram-7"}, store.cleared)
}

func TestClearCommand_Error(t *testing.T) {
	r := NewRouter(&fakeStore{err: errors.New("locked")}, fakeModel("m"))

	out, ok := r.Execute(context.Background(), "s", "/clear")
	require.True(t, ok)
	assert.Equal(t, "Error: failed to clear history: locked", out)
}

func TestModelAndLanguagesCommands(t *testing.T) {
	r := NewRouter(&fakeStore{}, fakeModel("ollama/qwen2.5:1.5b-instruct"))
	ctx := context.Background()

	out, _ := r.Execute(ctx, "s", "/model")
	assert.Contains(t, out, "`ollama/qwen2.5:1.5b-instruct`")

	out, _ = r.Execute(ctx, "s", "/languages")
	assert.Contains(t, out, "› hindi\n")
	assert.Contains(t, out, "› telugu\n")
}

func TestHelpCommand(t *testing.T) {
	r := NewRouter(&fakeStore{}, fakeModel("m"))

	out, _ := r.Execute(context.Background(), "s", "/help")
	assert.Contains(t, out, "/clear - Forget the messages of this chat")
	assert.Contains(t, out, "/help - List commands")
}
