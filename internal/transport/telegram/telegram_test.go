package telegram

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/sandevgo/pastcast/internal/core"
	"github.com/sandevgo/pastcast/internal/service/chat"
	"github.com/stretchr/testify/assert"
)

type fakeChat struct {
	sessions []string
}

func (f *fakeChat) Handle(_ context.Context, sessionID, text string) chat.Exchange {
	f.sessions = append(f.sessions, sessionID)
	return chat.Exchange{Reply: "routed: " + text}
}

type fakeCommands struct{}

func (fakeCommands) Execute(_ context.Context, _ string, input string) (string, bool) {
	if strings.HasPrefix(input, "/") {
		return "command " + input, true
	}
	return "", false
}

func (fakeCommands) ListCommands() []core.Command { return nil }

func TestAnswer(t *testing.T) {
	fc := &fakeChat{}
	b := &Bot{chat: fc, commands: fakeCommands{}}
	ctx := context.Background()

	assert.Equal(t, "command /history", b.answer(ctx, "telegram-1", "/history"))
	assert.Empty(t, fc.sessions)

	assert.Equal(t, "routed: hi", b.answer(ctx, "telegram-1", "hi"))
	assert.Equal(t, []string{"telegram-1"}, fc.sessions)
}

func TestSessionID(t *testing.T) {
	assert.Equal(t, "telegram-42", SessionID(42))
	assert.Equal(t, "telegram--100123", SessionID(-100123))
}

func TestSplitHTML(t *testing.T) {
	t.Run("short text is one chunk", func(t *testing.T) {
		assert.Equal(t, []string{"hello"}, splitHTML("hello", 10))
	})

	t.Run("prefers newline", func(t *testing.T) {
		text := "aaaaaaa\nbbbbbbbbbb"
		chunks := splitHTML(text, 10)
		assert.Equal(t, []string{"aaaaaaa", "bbbbbbbbbb"}, chunks)
	})

	t.Run("keeps runes whole", func(t *testing.T) {
		text := strings.Repeat("é", 20)
		chunks := splitHTML(text, 7)
		for _, c := range chunks {
			assert.True(t, utf8.ValidString(c))
			assert.LessOrEqual(t, len(c), 7)
		}
		assert.Equal(t, text, strings.Join(chunks, ""))
	})
}
