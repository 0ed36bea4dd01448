package config

import (
	"context"
	"time"
)

type FactsConfig struct {
	WikipediaURL  string        `env:"PASTCAST_WIKIPEDIA_URL" envDefault:"https://en.wikipedia.org/w/api.php"`
	DuckDuckGoURL string        `env:"PASTCAST_DUCKDUCKGO_URL" envDefault:"https://api.duckduckgo.com/"`
	Timeout       time.Duration `env:"PASTCAST_FACTS_TIMEOUT" envDefault:"5s"`
	Sentences     int           `env:"PASTCAST_WIKIPEDIA_SENTENCES" envDefault:"3"`
	SearchLimit   int           `env:"PASTCAST_WIKIPEDIA_SEARCH_LIMIT" envDefault:"5"`
	// Denylist drops search titles that keep hijacking unrelated questions.
	Denylist []string `env:"PASTCAST_WIKIPEDIA_DENYLIST" envDefault:"centennial light,light bulb,lamp,incandescent"`
}

func ParseFactsConfig() (*FactsConfig, error) {
	return parse[FactsConfig]()
}

func NewFactsConfig(ctx context.Context) *FactsConfig {
	return mustParse[FactsConfig](ctx, "Facts")
}
