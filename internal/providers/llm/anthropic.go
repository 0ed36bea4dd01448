package llm

import (
	"context"
	"strings"
	"time"

	"github.com/sandevgo/pastcast/internal/core"
)

type Anthropic struct {
	baseProvider
}

func NewAnthropic(apiKey, model string, timeout time.Duration) *Anthropic {
	return newAnthropicWithURL("https://api.anthropic.com", apiKey, model, timeout)
}

func newAnthropicWithURL(baseURL, apiKey, model string, timeout time.Duration) *Anthropic {
	return &Anthropic{
		baseProvider: newBaseProvider(baseURL, apiKey, model, timeout),
	}
}

func (a *Anthropic) Name() string {
	return "anthropic/" + a.model
}

// Complete sends the templated prompt as a single user message. The messages API
// has no seed, so determinism rests on temperature 0.
func (a *Anthropic) Complete(ctx context.Context, req core.CompletionRequest) (string, error) {
	type msg struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}

	payload := map[string]any{
		"model":       a.model,
		"max_tokens":  req.MaxTokens,
		"temperature": req.Temperature,
		"messages":    []msg{{Role: core.RoleUser, Content: req.Prompt}},
	}
	if len(req.Stop) > 0 {
		payload["stop_sequences"] = req.Stop
	}

	headers := map[string]string{
		"x-api-key":         a.apiKey,
		"anthropic-version": "2023-06-01",
	}

	var result struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := a.postJSON(ctx, "/v1/messages", payload, headers, &result); err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, c := range result.Content {
		if c.Type == "text" {
			sb.WriteString(c.Text)
		}
	}
	return sb.String(), nil
}
