package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/pastcast/internal/config"
	"github.com/sandevgo/pastcast/internal/core"
)

// Memory is the conversation log seen by the chat service. It owns the
// window sizes; the repository only stores and orders turns.
type Memory struct {
	cfg  *config.AppConfig
	repo core.MessagesRepository
}

func NewMemory(cfg *config.AppConfig, repo core.MessagesRepository) *Memory {
	return &Memory{
		cfg:  cfg,
		repo: repo,
	}
}

func (m *Memory) Save(ctx context.Context, sessionID, role, content string) error {
	if err := m.repo.AddTurn(ctx, core.Turn{
		SessionID: sessionID,
		Role:      role,
		Content:   content,
	}); err != nil {
		return fmt.Errorf("save %s turn: %w", role, err)
	}
	return nil
}

// Recent returns up to limit turns, oldest first. A non-positive limit
// means the configured history limit.
func (m *Memory) Recent(ctx context.Context, sessionID string, limit int) ([]core.Turn, error) {
	if limit <= 0 {
		limit = m.cfg.HistoryLimit
	}
	turns, err := m.repo.RecentTurns(ctx, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}
	return turns, nil
}

// Window renders the last few turns as "ROLE: content" lines for prompt context.
func (m *Memory) Window(ctx context.Context, sessionID string) (string, error) {
	turns, err := m.Recent(ctx, sessionID, m.cfg.ContextWindowSize)
	if err != nil {
		return "", err
	}
	return FormatWindow(turns), nil
}

func (m *Memory) Clear(ctx context.Context, sessionID string) error {
	if err := m.repo.Clear(ctx, sessionID); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

func FormatWindow(turns []core.Turn) string {
	lines := make([]string, 0, len(turns))
	for _, t := range turns {
		lines = append(lines, strings.ToUpper(t.Role)+": "+t.Content)
	}
	return strings.Join(lines, "\n")
}
