package config

import (
	"context"
	"time"
)

const (
	ProviderOllama     = "ollama"
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderAnthropic  = "anthropic"
	ProviderGemini     = "gemini"
	ProviderCustom     = "custom"
)

type LLMConfig struct {
	Provider string `env:"PASTCAST_LLM_PROVIDER" envDefault:"ollama"`
	Model    string `env:"PASTCAST_LLM_MODEL" envDefault:"qwen2.5:1.5b-instruct"`

	OllamaBaseURL    string `env:"PASTCAST_OLLAMA_BASE_URL" envDefault:"http://localhost:11434"`
	OllamaAPIKey     string `env:"PASTCAST_OLLAMA_API_KEY"`
	OpenAIAPIKey     string `env:"PASTCAST_OPENAI_API_KEY"`
	OpenRouterAPIKey string `env:"PASTCAST_OPENROUTER_API_KEY"`
	AnthropicAPIKey  string `env:"PASTCAST_ANTHROPIC_API_KEY"`
	GeminiAPIKey     string `env:"PASTCAST_GEMINI_API_KEY"`
	CustomBaseURL    string `env:"PASTCAST_CUSTOM_OPENAI_BASE_URL"`
	CustomAPIKey     string `env:"PASTCAST_CUSTOM_OPENAI_API_KEY"`

	// Decoding
	MaxTokens     int           `env:"PASTCAST_LLM_MAX_TOKENS" envDefault:"200"`
	Seed          int           `env:"PASTCAST_LLM_SEED" envDefault:"42"`
	ContextTokens int           `env:"PASTCAST_LLM_CONTEXT_TOKENS" envDefault:"1024"`
	Timeout       time.Duration `env:"PASTCAST_LLM_TIMEOUT" envDefault:"120s"`
}

func ParseLLMConfig() (*LLMConfig, error) {
	return parse[LLMConfig]()
}

func NewLLMConfig(ctx context.Context) *LLMConfig {
	return mustParse[LLMConfig](ctx, "LLM")
}

// Identity is reported by /health.
func (c LLMConfig) Identity() string {
	return c.Provider + "/" + c.Model
}
