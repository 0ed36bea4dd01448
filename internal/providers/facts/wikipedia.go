package facts

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/sandevgo/pastcast/internal/config"
	"github.com/sandevgo/pastcast/internal/core"
	"github.com/sandevgo/pastcast/pkg/log"
	"github.com/sandevgo/pastcast/pkg/retry"
)

// Wikipedia reads the MediaWiki action API.
type Wikipedia struct {
	fetch    *fetcher
	endpoint string
	limit    int
}

func NewWikipedia(cfg *config.FactsConfig, retryCfg *retry.Config) *Wikipedia {
	limit := cfg.SearchLimit
	if limit <= 0 {
		limit = 5
	}

	return &Wikipedia{
		fetch:    newFetcher(cfg.Timeout, retryCfg),
		endpoint: cfg.WikipediaURL,
		limit:    limit,
	}
}

func (w *Wikipedia) Search(ctx context.Context, query string) core.Result[[]string] {
	params := url.Values{
		"action":        {"query"},
		"list":          {"search"},
		"srsearch":      {query},
		"srlimit":       {strconv.Itoa(w.limit)},
		"format":        {"json"},
		"formatversion": {"2"},
	}

	var resp struct {
		Query struct {
			Search []struct {
				Title string `json:"title"`
			} `json:"search"`
		} `json:"query"`
	}
	if err := w.fetch.getJSON(ctx, w.endpoint, params, &resp); err != nil {
		log.FromCtx(ctx).Warn().Err(err).Str("query", query).Msg("wikipedia search failed")
		return core.Failed[[]string](err)
	}

	titles := make([]string, 0, len(resp.Query.Search))
	for _, s := range resp.Query.Search {
		titles = append(titles, s.Title)
	}
	if len(titles) == 0 {
		return core.Missing[[]string]()
	}
	return core.Found(titles)
}

func (w *Wikipedia) Summary(ctx context.Context, title string, sentences int) core.Result[core.Fact] {
	if sentences <= 0 {
		sentences = 3
	}

	params := url.Values{
		"action":        {"query"},
		"prop":          {"extracts|pageprops"},
		"exsentences":   {strconv.Itoa(sentences)},
		"explaintext":   {"1"},
		"redirects":     {"1"},
		"titles":        {title},
		"format":        {"json"},
		"formatversion": {"2"},
	}

	var resp struct {
		Query struct {
			Pages []struct {
				Title     string         `json:"title"`
				Missing   bool           `json:"missing"`
				Invalid   bool           `json:"invalid"`
				Extract   string         `json:"extract"`
				PageProps map[string]any `json:"pageprops"`
			} `json:"pages"`
		} `json:"query"`
	}
	if err := w.fetch.getJSON(ctx, w.endpoint, params, &resp); err != nil {
		log.FromCtx(ctx).Warn().Err(err).Str("title", title).Msg("wikipedia summary failed")
		return core.Failed[core.Fact](err)
	}

	if len(resp.Query.Pages) == 0 {
		return core.Missing[core.Fact]()
	}

	page := resp.Query.Pages[0]
	if _, ambiguous := page.PageProps["disambiguation"]; ambiguous {
		return core.Missing[core.Fact]()
	}

	extract := strings.TrimSpace(page.Extract)
	if page.Missing || page.Invalid || extract == "" {
		return core.Missing[core.Fact]()
	}

	return core.Found(core.Fact{Title: page.Title, Body: extract})
}
