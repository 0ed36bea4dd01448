package main

import (
	"context"
	"fmt"
	"time"

	"github.com/sandevgo/pastcast/internal/config"
	"github.com/sandevgo/pastcast/internal/core"
	"github.com/sandevgo/pastcast/internal/metrics"
	"github.com/sandevgo/pastcast/internal/providers/facts"
	"github.com/sandevgo/pastcast/internal/providers/llm"
	"github.com/sandevgo/pastcast/internal/providers/translate"
	"github.com/sandevgo/pastcast/internal/service/chat"
	"github.com/sandevgo/pastcast/internal/service/climate"
	"github.com/sandevgo/pastcast/internal/service/command"
	"github.com/sandevgo/pastcast/internal/service/generation"
	"github.com/sandevgo/pastcast/internal/service/memory"
	"github.com/sandevgo/pastcast/internal/service/router"
	"github.com/sandevgo/pastcast/internal/service/translation"
	"github.com/sandevgo/pastcast/internal/storage/redis"
	"github.com/sandevgo/pastcast/internal/storage/sqlite"
	"github.com/sandevgo/pastcast/internal/transport/api"
	"github.com/sandevgo/pastcast/pkg/log"
	"github.com/sandevgo/pastcast/pkg/retry"
	"github.com/sandevgo/pastcast/pkg/srv"
)

// App holds the wired services shared by every command.
type App struct {
	Config    *config.AppConfig
	LLM       *config.LLMConfig
	Metrics   *metrics.Metrics
	Memory    *memory.Memory
	Chat      *chat.Service
	Commands  *command.Router
	Estimator *climate.Estimator
	Health    api.Health

	// cleanup holds storage handles, closed last on shutdown.
	cleanup []srv.Service
}

func NewApp(ctx context.Context) (*App, error) {
	appCfg := config.NewAppConfig(ctx)
	llmCfg := config.NewLLMConfig(ctx)
	factsCfg := config.NewFactsConfig(ctx)
	weatherCfg := config.NewWeatherConfig(ctx)
	trCfg := config.NewTranslationConfig(ctx)

	var m *metrics.Metrics
	if appCfg.EnableMetrics {
		m = metrics.New()
	}

	repo, closer, err := initStorage(ctx, appCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	completer, err := llm.NewCompleter(ctx, llmCfg)
	if err != nil {
		_ = closer.Shutdown(ctx)
		return nil, fmt.Errorf("failed to initialize LLM provider: %w", err)
	}

	gen := generation.New(completer, llmCfg, generation.WithMetrics(m))
	loader := translate.NewHuggingFace(trCfg)
	weather := facts.NewOpenWeather(weatherCfg, retry.NewLookupConfig())

	r := router.New(router.Deps{
		Encyclopedia: facts.NewWikipedia(factsCfg, retry.NewLookupConfig()),
		Web:          facts.NewDuckDuckGo(factsCfg, retry.NewLookupConfig()),
		Weather:      weather,
		Trends:       facts.NewTrends(appCfg.TrendsPath),
		Translator:   translation.New(loader, trCfg.MaxNewTokens, m),
		Generator:    gen,
	},
		router.WithDenylist(factsCfg.Denylist),
		router.WithSentences(factsCfg.Sentences),
		router.WithMetrics(m),
	)

	mem := memory.NewMemory(appCfg, repo)

	log.FromCtx(ctx).Debug().
		Str("model", gen.Model()).
		Str("storage", appCfg.Storage).
		Bool("weather", weather.Configured()).
		Msg("services wired")

	return &App{
		Config:    appCfg,
		LLM:       llmCfg,
		Metrics:   m,
		Memory:    mem,
		Chat:      chat.New(mem, r, chat.WithHistoryInPrompt(appCfg.HistoryInPrompt)),
		Commands:  command.NewRouter(mem, gen),
		Estimator: climate.NewEstimator(nil),
		Health: api.Health{
			Model:       gen.Model(),
			WeatherAPI:  weather.Configured(),
			Translation: loader.Name(),
			Storage:     appCfg.Storage,
		},
		cleanup: []srv.Service{closer},
	}, nil
}

// Close releases storage for one-shot commands.
func (a *App) Close(ctx context.Context) {
	for _, c := range a.cleanup {
		if err := c.Shutdown(ctx); err != nil {
			log.FromCtx(ctx).Error().Err(err).Msg("failed to release storage")
		}
	}
}

const redisPingTimeout = 3 * time.Second

func initStorage(ctx context.Context, cfg *config.AppConfig) (core.MessagesRepository, srv.Service, error) {
	switch cfg.Storage {
	case config.StorageRedis:
		repo, err := redis.New(cfg.RedisURL, redis.WithMaxLen(cfg.RedisMaxTurns))
		if err != nil {
			return nil, nil, err
		}
		pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
		defer cancel()
		if err := repo.Ping(pingCtx); err != nil {
			_ = repo.Close()
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		return repo, srv.NewCleanup(repo.Close), nil
	case config.StorageSQLite, "":
		db, err := sqlite.NewDB(ctx, cfg.GetDatabasePath())
		if err != nil {
			return nil, nil, err
		}
		return sqlite.NewMessagesRepo(db), srv.NewCleanup(db.Close), nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}
}
