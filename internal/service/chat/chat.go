package chat

import (
	"context"
	"strings"
	"time"

	"github.com/sandevgo/pastcast/internal/core"
	"github.com/sandevgo/pastcast/internal/service/memory"
	"github.com/sandevgo/pastcast/internal/service/router"
	"github.com/sandevgo/pastcast/pkg/log"
)

const DefaultSession = "web"

type Responder interface {
	Respond(ctx context.Context, req router.Request) router.Reply
}

// Exchange is the outcome of one message.
type Exchange struct {
	Reply     string
	Intent    router.Intent
	Timestamp time.Time
	// Empty is set when the input was blank and nothing was stored.
	Empty bool
}

type Service struct {
	memory          *memory.Memory
	router          Responder
	historyInPrompt bool
	locks           *sessionLocks
	now             func() time.Time
}

type Option func(*Service)

// WithHistoryInPrompt passes the recent window to general generation.
func WithHistoryInPrompt(on bool) Option {
	return func(s *Service) { s.historyInPrompt = on }
}

func New(mem *memory.Memory, r Responder, opts ...Option) *Service {
	s := &Service{
		memory: mem,
		router: r,
		locks:  newSessionLocks(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handle answers text for sessionID. It never fails: store errors are logged
// and routing always yields text.
func (s *Service) Handle(ctx context.Context, sessionID, text string) Exchange {
	if sessionID == "" {
		sessionID = DefaultSession
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Exchange{Reply: core.EmptyMessageReply, Timestamp: s.now(), Empty: true}
	}

	ctx = log.WithStr(ctx, "session", sessionID)
	logger := log.FromCtx(ctx)

	unlock := s.locks.lock(sessionID)
	defer unlock()

	if err := s.memory.Save(ctx, sessionID, core.RoleUser, text); err != nil {
		logger.Error().Err(err).Msg("failed to store user turn")
	}

	req := router.Request{Text: text}
	if s.historyInPrompt {
		window, err := s.memory.Window(ctx, sessionID)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to read context window")
		}
		req.History = window
	}

	reply := s.router.Respond(ctx, req)

	if err := s.memory.Save(ctx, sessionID, core.RoleAssistant, reply.Text); err != nil {
		logger.Error().Err(err).Msg("failed to store assistant turn")
	}

	return Exchange{
		Reply:     reply.Text,
		Intent:    reply.Intent(),
		Timestamp: s.now(),
	}
}

func (s *Service) History(ctx context.Context, sessionID string, limit int) ([]core.Turn, error) {
	if sessionID == "" {
		sessionID = DefaultSession
	}
	return s.memory.Recent(ctx, sessionID, limit)
}

// Clear wipes sessionID, or every session when it is empty.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	if err := s.memory.Clear(ctx, sessionID); err != nil {
		return err
	}
	log.FromCtx(ctx).Info().Str("session", sessionID).Msg("chat memory cleared")
	return nil
}
