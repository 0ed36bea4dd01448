package config

import (
	"context"
	"time"
)

type WeatherConfig struct {
	BaseURL string `env:"PASTCAST_OPENWEATHER_URL" envDefault:"https://api.openweathermap.org/data/2.5"`
	APIKey  string `env:"OPENWEATHER_API_KEY"`
	// LegacyAPIKey is the variable name older deployments used.
	LegacyAPIKey string        `env:"OPENWEATHER_API"`
	Timeout      time.Duration `env:"PASTCAST_WEATHER_TIMEOUT" envDefault:"8s"`
}

func ParseWeatherConfig() (*WeatherConfig, error) {
	return parse[WeatherConfig]()
}

func NewWeatherConfig(ctx context.Context) *WeatherConfig {
	return mustParse[WeatherConfig](ctx, "Weather")
}

func (c WeatherConfig) Key() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	return c.LegacyAPIKey
}
