package command

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/sandevgo/pastcast/internal/core"
)

const defaultHistoryItems = 10

type HistoryStore interface {
	Recent(ctx context.Context, sessionID string, limit int) ([]core.Turn, error)
	Clear(ctx context.Context, sessionID string) error
}

type HistoryCommand struct {
	store     HistoryStore
	formatter *ResponseFormatter
}

func NewHistoryCommand(store HistoryStore) *HistoryCommand {
	return &HistoryCommand{
		store:     store,
		formatter: NewResponseFormatter(),
	}
}

func (c *HistoryCommand) Name() string {
	return "history"
}

func (c *HistoryCommand) Description() string {
	return "Show recent messages of this chat"
}

func (c *HistoryCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	limit := defaultHistoryItems
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return c.formatter.Combine(
				c.formatter.Usage("/history [count]"),
				c.formatter.Examples([]string{"/history", "/history 5"}),
			), nil
		}
		limit = n
	}

	turns, err := c.store.Recent(ctx, sessionID, limit)
	if err != nil {
		return "", fmt.Errorf("failed to read history: %w", err)
	}

	if len(turns) == 0 {
		return c.formatter.Info("History is empty"), nil
	}

	items := make([]string, 0, len(turns))
	for _, t := range turns {
		items = append(items, fmt.Sprintf("%s **%s**: %s", t.CreatedAt.Format("15:04"), t.Role, oneLine(t.Content)))
	}

	return c.formatter.Combine(
		c.formatter.Info(fmt.Sprintf("Last %d messages", len(turns))),
		c.formatter.List(items),
	), nil
}

func oneLine(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > 120 {
		return string(r[:120]) + "…"
	}
	return s
}
