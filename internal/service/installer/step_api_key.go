package installer

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/pastcast/internal/config"
)

type providerKey struct {
	envKey      string
	title       string
	placeholder string
	optional    bool
}

var providerKeys = map[string]providerKey{
	config.ProviderOllama:     {"PASTCAST_OLLAMA_API_KEY", "Ollama API key", "", true},
	config.ProviderOpenAI:     {"PASTCAST_OPENAI_API_KEY", "OpenAI API key", "sk-...", false},
	config.ProviderOpenRouter: {"PASTCAST_OPENROUTER_API_KEY", "OpenRouter API key", "sk-or-v1-...", false},
	config.ProviderAnthropic:  {"PASTCAST_ANTHROPIC_API_KEY", "Anthropic API key", "sk-ant-...", false},
	config.ProviderGemini:     {"PASTCAST_GEMINI_API_KEY", "Gemini API key", "AIza...", false},
	config.ProviderCustom:     {"PASTCAST_CUSTOM_OPENAI_API_KEY", "API key for the custom endpoint", "", true},
}

// APIKeyStep asks for the key of the selected provider.
type APIKeyStep struct {
	*InputStep
}

func NewAPIKeyStep() Step {
	return &APIKeyStep{}
}

func (s *APIKeyStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *APIKeyStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.InputStep == nil {
		pk, ok := providerKeys[state.provider()]
		if !ok {
			return nil, nil
		}
		opts := []inputOption{secret(), placeholder(pk.placeholder)}
		if pk.optional {
			opts = append(opts, optional())
		}
		s.InputStep = NewInputStep(pk.envKey, pk.title, opts...)
	}

	next, cmd := s.InputStep.Update(msg, state, width, height)
	if next == nil {
		return nil, cmd
	}
	return s, cmd
}

func (s *APIKeyStep) View(state *InstallState) string {
	if s.InputStep == nil {
		return "Loading...\n"
	}
	return s.InputStep.View(state)
}
