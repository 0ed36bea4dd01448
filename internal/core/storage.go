package core

import "context"

type MessagesRepository interface {
	AddTurn(ctx context.Context, turn Turn) error
	// RecentTurns returns at most limit turns of a session, oldest first.
	RecentTurns(ctx context.Context, sessionID string, limit int) ([]Turn, error)
	// Clear removes the turns of sessionID, or of every session when sessionID is empty.
	Clear(ctx context.Context, sessionID string) error
}
