package config

import (
	"context"
	"time"
)

type TranslationConfig struct {
	BaseURL      string        `env:"PASTCAST_TRANSLATION_URL" envDefault:"https://api-inference.huggingface.co"`
	Token        string        `env:"HF_TOKEN"`
	MaxNewTokens int           `env:"PASTCAST_TRANSLATION_MAX_TOKENS" envDefault:"80"`
	Timeout      time.Duration `env:"PASTCAST_TRANSLATION_TIMEOUT" envDefault:"30s"`
}

func ParseTranslationConfig() (*TranslationConfig, error) {
	return parse[TranslationConfig]()
}

func NewTranslationConfig(ctx context.Context) *TranslationConfig {
	return mustParse[TranslationConfig](ctx, "Translation")
}
