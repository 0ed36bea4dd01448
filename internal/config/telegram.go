package config

import (
	"context"
)

type TelegramConfig struct {
	Token string `env:"PASTCAST_TELEGRAM_TOKEN,required,notEmpty"`
	// OwnerID restricts the bot to one user; 0 serves everyone.
	OwnerID int64 `env:"PASTCAST_TELEGRAM_OWNER_ID" envDefault:"0"`
}

func ParseTelegramConfig() (*TelegramConfig, error) {
	return parse[TelegramConfig]()
}

func NewTelegramConfig(ctx context.Context) *TelegramConfig {
	return mustParse[TelegramConfig](ctx, "Telegram")
}
