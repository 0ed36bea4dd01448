package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sandevgo/pastcast/internal/core"
	"github.com/sandevgo/pastcast/pkg/log"
)

type MessagesRepo struct {
	db  *sql.DB
	now func() time.Time
}

func NewMessagesRepo(db *sql.DB) *MessagesRepo {
	return &MessagesRepo{db: db, now: time.Now}
}

func (h *MessagesRepo) AddTurn(ctx context.Context, turn core.Turn) error {
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = h.now()
	}

	query := `INSERT INTO chat_history (session_id, role, content, timestamp) VALUES (?, ?, ?, ?)`
	_, err := h.db.ExecContext(ctx, query, turn.SessionID, turn.Role, turn.Content, turn.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert turn: %w", err)
	}
	return nil
}

func (h *MessagesRepo) RecentTurns(ctx context.Context, sessionID string, limit int) ([]core.Turn, error) {
	// newest first, reversed below
	query := `SELECT id, session_id, role, content, timestamp FROM chat_history WHERE session_id = ? ORDER BY id DESC LIMIT ?`

	rows, err := h.db.QueryContext(ctx, query, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query turns: %w", err)
	}
	defer rows.Close()

	turns := make([]core.Turn, 0, limit)
	for rows.Next() {
		var t core.Turn
		if err := rows.Scan(&t.ID, &t.SessionID, &t.Role, &t.Content, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}
		turns = append(turns, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}

	log.FromCtx(ctx).Debug().Str("session", sessionID).Int("count", len(turns)).Msg("loaded history turns")
	return turns, nil
}

func (h *MessagesRepo) Clear(ctx context.Context, sessionID string) error {
	var (
		res sql.Result
		err error
	)
	if sessionID == "" {
		res, err = h.db.ExecContext(ctx, `DELETE FROM chat_history`)
	} else {
		res, err = h.db.ExecContext(ctx, `DELETE FROM chat_history WHERE session_id = ?`, sessionID)
	}
	if err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}

	n, _ := res.RowsAffected()
	log.FromCtx(ctx).Info().Str("session", sessionID).Int64("deleted", n).Msg("history cleared")
	return nil
}
