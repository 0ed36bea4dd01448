package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAppConfig_Defaults(t *testing.T) {
	cfg, err := ParseAppConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.HTTPAddr)
	assert.Equal(t, 20, cfg.HistoryLimit)
	assert.Equal(t, 6, cfg.ContextWindowSize)
	assert.Equal(t, StorageSQLite, cfg.Storage)
	assert.Equal(t, "data/trends.csv", cfg.TrendsPath)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.CORSOrigins)
	assert.False(t, cfg.HistoryInPrompt)
}

func TestAppConfig_Paths(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PASTCAST_RUNTIME_PATH", dir)

	cfg, err := ParseAppConfig()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "pastcast.db"), cfg.GetDatabasePath())
	assert.Equal(t, filepath.Join(dir, ".env"), cfg.GetEnvPath())
	assert.Equal(t, dir, GetRuntimePath())
}

func TestResolveRuntimePath_Relative(t *testing.T) {
	got := resolveRuntimePath("")
	assert.True(t, filepath.IsAbs(got))
	assert.Equal(t, defaultRuntimeDir, filepath.Base(got))
}

func TestParseFactsConfig(t *testing.T) {
	t.Setenv("PASTCAST_FACTS_TIMEOUT", "2s")

	cfg, err := ParseFactsConfig()
	require.NoError(t, err)

	assert.Equal(t, 2*time.Second, cfg.Timeout)
	assert.Equal(t, 3, cfg.Sentences)
	assert.Equal(t, []string{"centennial light", "light bulb", "lamp", "incandescent"}, cfg.Denylist)
}

func TestWeatherConfig_Key(t *testing.T) {
	t.Run("legacy name", func(t *testing.T) {
		t.Setenv("OPENWEATHER_API", "legacy")
		cfg, err := ParseWeatherConfig()
		require.NoError(t, err)
		assert.Equal(t, "legacy", cfg.Key())
		assert.Equal(t, 8*time.Second, cfg.Timeout)
	})

	t.Run("new name wins", func(t *testing.T) {
		t.Setenv("OPENWEATHER_API", "legacy")
		t.Setenv("OPENWEATHER_API_KEY", "current")
		cfg, err := ParseWeatherConfig()
		require.NoError(t, err)
		assert.Equal(t, "current", cfg.Key())
	})
}

func TestParseLLMConfig(t *testing.T) {
	t.Setenv("PASTCAST_LLM_PROVIDER", ProviderGemini)
	t.Setenv("PASTCAST_LLM_MODEL", "gemini-2.0-flash")

	cfg, err := ParseLLMConfig()
	require.NoError(t, err)

	assert.Equal(t, 200, cfg.MaxTokens)
	assert.Equal(t, "gemini/gemini-2.0-flash", cfg.Identity())
}

func TestParseTelegramConfig_RequiresToken(t *testing.T) {
	t.Setenv("PASTCAST_TELEGRAM_TOKEN", "")
	_, err := ParseTelegramConfig()
	assert.Error(t, err)

	t.Setenv("PASTCAST_TELEGRAM_TOKEN", "123:abc")
	cfg, err := ParseTelegramConfig()
	require.NoError(t, err)
	assert.Equal(t, int64(0), cfg.OwnerID)
}
