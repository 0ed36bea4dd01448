package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/pastcast/pkg/log"
)

func parse[T any]() (*T, error) {
	c, err := env.ParseAs[T]()
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func mustParse[T any](ctx context.Context, name string) *T {
	c, err := parse[T]()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msgf("failed to parse %s config", name)
	}
	return c
}
