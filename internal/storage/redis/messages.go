package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"
	"github.com/sandevgo/pastcast/internal/core"
	"github.com/sandevgo/pastcast/pkg/log"
)

// MessagesRepo keeps each session as a Redis list of JSON turns, appended with RPUSH.
type MessagesRepo struct {
	client *backend.Client
	prefix string
	maxLen int64
	now    func() time.Time
}

type Option func(*MessagesRepo)

// WithPrefix sets the key prefix for session lists.
func WithPrefix(prefix string) Option {
	return func(r *MessagesRepo) {
		r.prefix = prefix
	}
}

// WithMaxLen trims each session list to the newest n turns; 0 keeps everything.
func WithMaxLen(n int64) Option {
	return func(r *MessagesRepo) {
		r.maxLen = n
	}
}

// New connects using a redis:// URL.
func New(url string, opts ...Option) (*MessagesRepo, error) {
	o, err := backend.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return NewFromClient(backend.NewClient(o), opts...), nil
}

func NewFromClient(client *backend.Client, opts ...Option) *MessagesRepo {
	r := &MessagesRepo{
		client: client,
		prefix: "pastcast:history:",
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *MessagesRepo) key(sessionID string) string {
	return r.prefix + sessionID
}

func (r *MessagesRepo) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *MessagesRepo) Close() error {
	return r.client.Close()
}

func (r *MessagesRepo) AddTurn(ctx context.Context, turn core.Turn) error {
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = r.now()
	}
	turn.CreatedAt = turn.CreatedAt.UTC()

	data, err := json.Marshal(turn)
	if err != nil {
		return fmt.Errorf("failed to marshal turn: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.RPush(ctx, r.key(turn.SessionID), data)
	if r.maxLen > 0 {
		pipe.LTrim(ctx, r.key(turn.SessionID), -r.maxLen, -1)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append turn: %w", err)
	}
	return nil
}

func (r *MessagesRepo) RecentTurns(ctx context.Context, sessionID string, limit int) ([]core.Turn, error) {
	if limit <= 0 {
		return []core.Turn{}, nil
	}

	raw, err := r.client.LRange(ctx, r.key(sessionID), int64(-limit), -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read turns: %w", err)
	}

	turns := make([]core.Turn, 0, len(raw))
	for _, item := range raw {
		var t core.Turn
		if err := json.Unmarshal([]byte(item), &t); err != nil {
			return nil, fmt.Errorf("failed to decode turn: %w", err)
		}
		turns = append(turns, t)
	}

	log.FromCtx(ctx).Debug().Str("session", sessionID).Int("count", len(turns)).Msg("loaded history turns")
	return turns, nil
}

func (r *MessagesRepo) Clear(ctx context.Context, sessionID string) error {
	if sessionID != "" {
		if err := r.client.Del(ctx, r.key(sessionID)).Err(); err != nil {
			return fmt.Errorf("failed to clear session: %w", err)
		}
		return nil
	}

	var deleted int
	iter := r.client.Scan(ctx, 0, r.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete %s: %w", iter.Val(), err)
		}
		deleted++
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan sessions: %w", err)
	}

	log.FromCtx(ctx).Info().Int("sessions", deleted).Msg("history cleared")
	return nil
}
