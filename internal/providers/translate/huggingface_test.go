package translate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sandevgo/pastcast/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHuggingFace_LoadAndTranslate(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/models/Helsinki-NLP/opus-mt-en-hi", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var body struct {
			Inputs     string `json:"inputs"`
			Parameters struct {
				MaxNewTokens int `json:"max_new_tokens"`
			} `json:"parameters"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		if body.Inputs == "good morning" {
			assert.Equal(t, 80, body.Parameters.MaxNewTokens)
			_, _ = w.Write([]byte(`[{"translation_text":" सुप्रभात "}]`))
			return
		}
		_, _ = w.Write([]byte(`[{"translation_text":"नमस्ते"}]`))
	}))
	defer srv.Close()

	hf := NewHuggingFace(&config.TranslationConfig{BaseURL: srv.URL + "/", Token: "tok", Timeout: time.Second})
	ctx := context.Background()

	m, err := hf.Load(ctx, "Helsinki-NLP/opus-mt-en-hi")
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())

	out, err := m.Translate(ctx, "good morning", 80)
	require.NoError(t, err)
	assert.Equal(t, "सुप्रभात", out)
}

func TestHuggingFace_LoadFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"Model not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	hf := NewHuggingFace(&config.TranslationConfig{BaseURL: srv.URL, Timeout: time.Second})
	_, err := hf.Load(context.Background(), "Helsinki-NLP/opus-mt-en-xx")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 404")
}

func TestHuggingFace_EmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	hf := NewHuggingFace(&config.TranslationConfig{BaseURL: srv.URL, Timeout: time.Second})
	m := &model{hf: hf, id: "x"}
	_, err := m.Translate(context.Background(), "hi", 10)

	assert.Error(t, err)
}
