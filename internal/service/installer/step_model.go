package installer

import (
	"github.com/sandevgo/pastcast/internal/config"
)

var defaultModels = map[string]string{
	config.ProviderOllama:     "qwen2.5:1.5b-instruct",
	config.ProviderOpenAI:     "gpt-3.5-turbo-instruct",
	config.ProviderOpenRouter: "qwen/qwen-2.5-7b-instruct",
	config.ProviderAnthropic:  "claude-3-5-haiku-latest",
	config.ProviderGemini:     "gemini-2.0-flash",
	config.ProviderCustom:     "qwen2.5-1.5b-instruct",
}

func NewModelStep() Step {
	return NewInputStep("PASTCAST_LLM_MODEL", "the model name",
		withDefault(func(state *InstallState) string { return defaultModels[state.provider()] }),
	)
}

func NewOllamaURLStep() Step {
	return NewInputStep("PASTCAST_OLLAMA_BASE_URL", "the Ollama base URL",
		withDefault(func(*InstallState) string { return "http://localhost:11434" }),
		skipUnless(func(state *InstallState) bool { return state.provider() == config.ProviderOllama }),
	)
}

func NewCustomURLStep() Step {
	return NewInputStep("PASTCAST_CUSTOM_OPENAI_BASE_URL", "the OpenAI-compatible base URL",
		placeholder("https://api.example.com"),
		skipUnless(func(state *InstallState) bool { return state.provider() == config.ProviderCustom }),
	)
}
