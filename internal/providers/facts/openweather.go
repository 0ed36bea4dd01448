package facts

import (
	"context"
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sandevgo/pastcast/internal/config"
	"github.com/sandevgo/pastcast/internal/core"
	"github.com/sandevgo/pastcast/pkg/log"
	"github.com/sandevgo/pastcast/pkg/retry"
)

// OpenWeather reads current conditions in metric units.
type OpenWeather struct {
	fetch   *fetcher
	baseURL string
	apiKey  string
}

func NewOpenWeather(cfg *config.WeatherConfig, retryCfg *retry.Config) *OpenWeather {
	return &OpenWeather{
		fetch:   newFetcher(cfg.Timeout, retryCfg),
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.Key(),
	}
}

func (o *OpenWeather) Configured() bool {
	return o.apiKey != ""
}

func (o *OpenWeather) Current(ctx context.Context, city string) core.Result[core.WeatherReport] {
	if !o.Configured() {
		return core.Result[core.WeatherReport]{Outcome: core.Fault, Err: core.ErrNotConfigured}
	}

	params := url.Values{
		"q":     {city},
		"appid": {o.apiKey},
		"units": {"metric"},
	}

	var resp struct {
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
		Main *struct {
			Temp     float64 `json:"temp"`
			Humidity int     `json:"humidity"`
		} `json:"main"`
	}
	if err := o.fetch.getJSON(ctx, o.baseURL+"/weather", params, &resp); err != nil {
		log.FromCtx(ctx).Warn().Err(err).Str("city", city).Msg("weather lookup failed")
		return core.Failed[core.WeatherReport](err)
	}

	if resp.Main == nil {
		return core.Missing[core.WeatherReport]()
	}

	var desc string
	if len(resp.Weather) > 0 {
		desc = capitalize(resp.Weather[0].Description)
	}

	return core.Found(core.WeatherReport{
		City:        city,
		Description: desc,
		TempC:       resp.Main.Temp,
		Humidity:    resp.Main.Humidity,
	})
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
