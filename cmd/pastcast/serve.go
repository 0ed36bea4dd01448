package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sandevgo/pastcast/internal/config"
	"github.com/sandevgo/pastcast/internal/transport/api"
	"github.com/sandevgo/pastcast/internal/transport/telegram"
	"github.com/sandevgo/pastcast/pkg/log"
	"github.com/sandevgo/pastcast/pkg/srv"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API (and the Telegram bot when enabled)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting pastcast")

		app, err := NewApp(ctx)
		if err != nil {
			return err
		}

		services, err := initTransports(ctx, app)
		if err != nil {
			app.Close(ctx)
			return err
		}

		srv.StartServices(ctx, services)
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		srv.ShutdownServices(ctx, shutdownCtx, services)

		logger.Info().Msg("pastcast has been shut down gracefully")
		return nil
	},
}

// initTransports returns storage cleanup first so it is shut down last.
func initTransports(ctx context.Context, app *App) ([]srv.Service, error) {
	services := append([]srv.Service{}, app.cleanup...)

	services = append(services, api.NewServer(app.Config, api.Deps{
		Chat:    app.Chat,
		Climate: app.Estimator,
		Metrics: app.Metrics,
		Health:  app.Health,
	}))

	if app.Config.EnableTelegram {
		tgCfg := config.NewTelegramConfig(ctx)
		bot, err := telegram.NewBot(ctx, tgCfg, app.Chat, app.Commands)
		if err != nil {
			return nil, err
		}
		services = append(services, bot)
	}

	return services, nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
