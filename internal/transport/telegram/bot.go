package telegram

import (
	"context"
	"fmt"
	"time"

	"github.com/sandevgo/pastcast/internal/config"
	"github.com/sandevgo/pastcast/internal/core"
	"github.com/sandevgo/pastcast/internal/service/chat"
	"github.com/sandevgo/pastcast/pkg/log"
	tele "gopkg.in/telebot.v3"
)

const baseContextKey = "base_context"

type ChatService interface {
	Handle(ctx context.Context, sessionID, text string) chat.Exchange
}

type Bot struct {
	bot      *tele.Bot
	chat     ChatService
	commands core.CmdRouter
	sender   *sender
	ownerID  int64
}

func NewBot(
	ctx context.Context,
	cfg *config.TelegramConfig,
	chatSvc ChatService,
	commands core.CmdRouter,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:      b,
		chat:     chatSvc,
		commands: commands,
		sender:   newSender(b),
		ownerID:  cfg.OwnerID,
	}

	// Use context from Signal with logger
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	if bot.ownerID != 0 {
		b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
			return func(c tele.Context) error {
				if c.Sender() == nil || c.Sender().ID != bot.ownerID {
					return nil
				}
				return next(c)
			}
		})
	}

	b.Handle(tele.OnText, bot.handleMessage)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

func (b *Bot) handleMessage(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	sessionID := SessionID(c.Chat().ID)
	ctx = log.WithStr(ctx, "session", sessionID)

	_ = c.Notify(tele.Typing)

	reply := b.answer(ctx, sessionID, c.Text())
	if reply == "" {
		return nil
	}
	return b.sender.sendMarkdown(ctx, c.Chat(), reply, false)
}

// answer runs slash commands first and routes everything else through chat.
func (b *Bot) answer(ctx context.Context, sessionID, text string) string {
	if b.commands != nil {
		if out, ok := b.commands.Execute(ctx, sessionID, text); ok {
			return out
		}
	}
	return b.chat.Handle(ctx, sessionID, text).Reply
}

func SessionID(chatID int64) string {
	return fmt.Sprintf("telegram-%d", chatID)
}
