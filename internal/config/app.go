package config

import (
	"context"
	"path/filepath"
	"time"
)

const (
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
)

type AppConfig struct {
	RuntimePath string `env:"PASTCAST_RUNTIME_PATH" envDefault:".pastcast"`

	// HTTP
	HTTPAddr       string        `env:"PASTCAST_HTTP_ADDR" envDefault:":8000"`
	CORSOrigins    []string      `env:"PASTCAST_CORS_ORIGINS" envDefault:"http://localhost:3000,http://localhost:5173"`
	RequestTimeout time.Duration `env:"PASTCAST_REQUEST_TIMEOUT" envDefault:"60s"`
	EnableMetrics  bool          `env:"PASTCAST_ENABLE_METRICS" envDefault:"true"`
	LogJSON        bool          `env:"PASTCAST_LOG_JSON" envDefault:"false"`

	// Memory
	Storage           string `env:"PASTCAST_STORAGE" envDefault:"sqlite"`
	RedisURL          string `env:"PASTCAST_REDIS_URL" envDefault:"redis://localhost:6379/0"`
	RedisMaxTurns     int64  `env:"PASTCAST_REDIS_MAX_TURNS" envDefault:"1000"`
	HistoryLimit      int    `env:"PASTCAST_HISTORY_LIMIT" envDefault:"20"`
	ContextWindowSize int    `env:"PASTCAST_CONTEXT_WINDOW_SIZE" envDefault:"6"`
	// HistoryInPrompt feeds the recent window to general generation. Off by default
	// so identical questions get identical answers.
	HistoryInPrompt bool `env:"PASTCAST_HISTORY_IN_PROMPT" envDefault:"false"`

	TrendsPath string `env:"PASTCAST_TRENDS_PATH" envDefault:"data/trends.csv"`

	// Transports
	EnableTelegram bool `env:"PASTCAST_ENABLE_TELEGRAM" envDefault:"false"`
}

func ParseAppConfig() (*AppConfig, error) {
	return parse[AppConfig]()
}

func NewAppConfig(ctx context.Context) *AppConfig {
	return mustParse[AppConfig](ctx, "App")
}

func (c AppConfig) GetRuntimePath() string {
	return resolveRuntimePath(c.RuntimePath)
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.GetRuntimePath(), "pastcast.db")
}

func (c AppConfig) GetEnvPath() string {
	return filepath.Join(c.GetRuntimePath(), ".env")
}
