package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sandevgo/pastcast/internal/config"
	"github.com/sandevgo/pastcast/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
	return body
}

func TestOpenAICompatible_Complete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/completions", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "yes", r.Header.Get("X-Extra"))

		body := decodeBody(t, r)
		assert.Equal(t, "m1", body["model"])
		assert.Equal(t, "<|user|> hi", body["prompt"])
		assert.EqualValues(t, 0, body["temperature"])
		assert.EqualValues(t, 42, body["seed"])
		assert.EqualValues(t, 200, body["max_tokens"])

		_, _ = w.Write([]byte(`{"choices":[{"text":" hello there"}]}`))
	}))
	defer srv.Close()

	c := NewOpenAICompatible(OpenAICompatibleConfig{
		Name:         "custom",
		BaseURL:      srv.URL + "/",
		APIKey:       "secret",
		Model:        "m1",
		AuthHeader:   "Authorization",
		AuthPrefix:   "Bearer ",
		ExtraHeaders: map[string]string{"X-Extra": "yes"},
	})

	out, err := c.Complete(context.Background(), core.CompletionRequest{
		Prompt:    "<|user|> hi",
		MaxTokens: 200,
		Seed:      42,
	})
	require.NoError(t, err)
	assert.Equal(t, " hello there", out)
	assert.Equal(t, "custom/m1", c.Name())
}

func TestOpenAICompatible_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewCustomOpenAI(srv.URL, "", "m1", 0)
	_, err := c.Complete(context.Background(), core.CompletionRequest{Prompt: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 503")
}

func TestOpenAICompatible_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := NewCustomOpenAI(srv.URL, "", "m1", 0)
	_, err := c.Complete(context.Background(), core.CompletionRequest{Prompt: "x"})
	assert.Error(t, err)
}

func TestOllama_Complete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		body := decodeBody(t, r)
		assert.Equal(t, true, body["raw"])
		assert.Equal(t, false, body["stream"])
		opts, ok := body["options"].(map[string]any)
		require.True(t, ok)
		assert.EqualValues(t, 0, opts["temperature"])
		assert.EqualValues(t, 7, opts["seed"])
		assert.EqualValues(t, 50, opts["num_predict"])

		_, _ = w.Write([]byte(`{"response":"Paris is the capital.","done":true}`))
	}))
	defer srv.Close()

	o := NewOllama(srv.URL, "", "qwen", 0)
	out, err := o.Complete(context.Background(), core.CompletionRequest{
		Prompt:    "p",
		MaxTokens: 50,
		Seed:      7,
	})
	require.NoError(t, err)
	assert.Equal(t, "Paris is the capital.", out)
	assert.Equal(t, "ollama/qwen", o.Name())
}

func TestAnthropic_Complete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "k", r.Header.Get("x-api-key"))
		assert.NotEmpty(t, r.Header.Get("anthropic-version"))

		body := decodeBody(t, r)
		msgs, ok := body["messages"].([]any)
		require.True(t, ok)
		require.Len(t, msgs, 1)

		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"one "},{"type":"tool_use"},{"type":"text","text":"two"}]}`))
	}))
	defer srv.Close()

	a := newAnthropicWithURL(srv.URL, "k", "claude", 0)
	out, err := a.Complete(context.Background(), core.CompletionRequest{Prompt: "p", MaxTokens: 10})
	require.NoError(t, err)
	assert.Equal(t, "one two", out)
}

func TestNewCompleter(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		cfg      config.LLMConfig
		wantName string
		wantErr  bool
	}{
		{"ollama", config.LLMConfig{Provider: config.ProviderOllama, Model: "qwen", OllamaBaseURL: "http://x"}, "ollama/qwen", false},
		{"openai", config.LLMConfig{Provider: config.ProviderOpenAI, Model: "gpt"}, "openai/gpt", false},
		{"openrouter", config.LLMConfig{Provider: config.ProviderOpenRouter, Model: "q"}, "openrouter/q", false},
		{"anthropic", config.LLMConfig{Provider: config.ProviderAnthropic, Model: "c"}, "anthropic/c", false},
		{"custom", config.LLMConfig{Provider: config.ProviderCustom, Model: "m", CustomBaseURL: "http://x"}, "custom/m", false},
		{"custom without url", config.LLMConfig{Provider: config.ProviderCustom, Model: "m"}, "", true},
		{"unknown", config.LLMConfig{Provider: "bogus"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCompleter(ctx, &tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, c.Name())
		})
	}
}
