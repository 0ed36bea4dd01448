package facts

import (
	"context"
	"net/url"
	"strings"

	"github.com/inbucket/html2text"
	"github.com/sandevgo/pastcast/internal/config"
	"github.com/sandevgo/pastcast/internal/core"
	"github.com/sandevgo/pastcast/pkg/log"
	"github.com/sandevgo/pastcast/pkg/retry"
)

// DuckDuckGo queries the Instant Answer API.
type DuckDuckGo struct {
	fetch    *fetcher
	endpoint string
}

func NewDuckDuckGo(cfg *config.FactsConfig, retryCfg *retry.Config) *DuckDuckGo {
	return &DuckDuckGo{
		fetch:    newFetcher(cfg.Timeout, retryCfg),
		endpoint: cfg.DuckDuckGoURL,
	}
}

type ddgTopic struct {
	Text string `json:"Text"`
	// Category groups carry nested topics instead of text.
	Topics []ddgTopic `json:"Topics"`
}

// Lookup returns the abstract, or the first related topic that carries text.
func (d *DuckDuckGo) Lookup(ctx context.Context, query string) core.Result[string] {
	params := url.Values{
		"q":             {query},
		"format":        {"json"},
		"no_html":       {"1"},
		"skip_disambig": {"1"},
	}

	var resp struct {
		AbstractText  string     `json:"AbstractText"`
		RelatedTopics []ddgTopic `json:"RelatedTopics"`
	}
	if err := d.fetch.getJSON(ctx, d.endpoint, params, &resp); err != nil {
		log.FromCtx(ctx).Warn().Err(err).Str("query", query).Msg("duckduckgo lookup failed")
		return core.Failed[string](err)
	}

	if text := flatten(resp.AbstractText); text != "" {
		return core.Found(text)
	}

	for _, topic := range resp.RelatedTopics {
		if text := flatten(topic.Text); text != "" {
			return core.Found(text)
		}
	}

	return core.Missing[string]()
}

func flatten(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || !strings.ContainsAny(s, "<&") {
		return s
	}
	text, err := html2text.FromString(s, html2text.Options{OmitLinks: true})
	if err != nil {
		return s
	}
	return strings.TrimSpace(text)
}
