package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sandevgo/pastcast/internal/config"
	"github.com/sandevgo/pastcast/internal/core"
	"github.com/sandevgo/pastcast/pkg/log"
)

// HuggingFace loads translation models served by the Hugging Face inference API.
type HuggingFace struct {
	client  *http.Client
	baseURL string
	token   string
}

func NewHuggingFace(cfg *config.TranslationConfig) *HuggingFace {
	return &HuggingFace{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
	}
}

func (h *HuggingFace) Name() string {
	return "huggingface"
}

// Load checks that the model endpoint answers and returns a handle bound to it.
// A warm-up call makes the first user request as fast as later ones.
func (h *HuggingFace) Load(ctx context.Context, modelID string) (core.TranslationModel, error) {
	m := &model{hf: h, id: modelID}

	start := time.Now()
	if _, err := m.Translate(ctx, "Hello", 8); err != nil {
		return nil, fmt.Errorf("load %s: %w", modelID, err)
	}

	log.FromCtx(ctx).Info().
		Str("model", modelID).
		Dur("took", time.Since(start)).
		Msg("translation model loaded")

	return m, nil
}

type model struct {
	hf *HuggingFace
	id string
}

func (m *model) Translate(ctx context.Context, text string, maxNewTokens int) (string, error) {
	payload := map[string]any{
		"inputs": text,
		"parameters": map[string]any{
			"max_new_tokens": maxNewTokens,
		},
		"options": map[string]any{
			"wait_for_model": true,
		},
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.hf.baseURL+"/models/"+m.id, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", core.AppUserAgent)
	if m.hf.token != "" {
		req.Header.Set("Authorization", "Bearer "+m.hf.token)
	}

	resp, err := m.hf.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("http %d: %s", resp.StatusCode, string(body))
	}

	var out []struct {
		TranslationText string `json:"translation_text"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}
	if len(out) == 0 {
		return "", fmt.Errorf("empty translation")
	}

	return strings.TrimSpace(out[0].TranslationText), nil
}
