package llm

import (
	"context"
	"time"

	"github.com/sandevgo/pastcast/internal/core"
)

// Ollama uses /api/generate in raw mode so the prompt template is sent verbatim.
type Ollama struct {
	baseProvider
}

func NewOllama(baseURL, apiKey, model string, timeout time.Duration) *Ollama {
	return &Ollama{
		baseProvider: newBaseProvider(baseURL, apiKey, model, timeout),
	}
}

func (o *Ollama) Name() string {
	return "ollama/" + o.model
}

func (o *Ollama) Complete(ctx context.Context, req core.CompletionRequest) (string, error) {
	options := map[string]any{
		"temperature": req.Temperature,
		"seed":        req.Seed,
		"num_predict": req.MaxTokens,
	}
	if len(req.Stop) > 0 {
		options["stop"] = req.Stop
	}

	payload := map[string]any{
		"model":   o.model,
		"prompt":  req.Prompt,
		"raw":     true,
		"stream":  false,
		"options": options,
	}

	headers := make(map[string]string)
	if o.apiKey != "" {
		headers["Authorization"] = "Bearer " + o.apiKey
	}

	var result struct {
		Response string `json:"response"`
	}
	if err := o.postJSON(ctx, "/api/generate", payload, headers, &result); err != nil {
		return "", err
	}
	return result.Response, nil
}
