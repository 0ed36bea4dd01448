package command

import (
	"context"
	"fmt"

	"github.com/sandevgo/pastcast/internal/core"
)

type ClearCommand struct {
	store     HistoryStore
	formatter *ResponseFormatter
}

func NewClearCommand(store HistoryStore) *ClearCommand {
	return &ClearCommand{
		store:     store,
		formatter: NewResponseFormatter(),
	}
}

func (c *ClearCommand) Name() string {
	return "clear"
}

func (c *ClearCommand) Description() string {
	return "Forget the messages of this chat"
}

func (c *ClearCommand) Execute(ctx context.Context, sessionID string, _ []string) (string, error) {
	if err := c.store.Clear(ctx, sessionID); err != nil {
		return "", fmt.Errorf("failed to clear history: %w", err)
	}
	return c.formatter.Success(core.HistoryClearedMsg), nil
}
