package facts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sandevgo/pastcast/internal/core"
	"github.com/sandevgo/pastcast/pkg/retry"
)

const maxResponseSize = 1 << 20 // 1MB limit

// fetcher issues GET requests for JSON APIs with a short retry. The timeout
// bounds the whole lookup, retries included.
type fetcher struct {
	client  *http.Client
	retrier *retry.Retrier
	timeout time.Duration
}

func newFetcher(timeout time.Duration, retryCfg *retry.Config) *fetcher {
	if retryCfg == nil {
		retryCfg = retry.NewLookupConfig()
	}
	return &fetcher{
		client: &http.Client{
			Timeout: timeout,
		},
		retrier: retry.NewRetrier(retryCfg),
		timeout: timeout,
	}
}

func (f *fetcher) getJSON(ctx context.Context, endpoint string, params url.Values, out any) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("parse url: %w", err)
	}
	u.RawQuery = params.Encode()

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	return f.retrier.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return retry.Permanent(fmt.Errorf("failed to create request: %w", err))
		}
		req.Header.Set("User-Agent", core.AppUserAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := f.client.Do(req)
		if err != nil {
			if ctx.Err() != nil || core.IsTimeout(err) {
				return retry.Permanent(err)
			}
			return fmt.Errorf("failed to fetch: %w", err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return retry.Permanent(core.ErrNotFound)
		case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
			return fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
		case resp.StatusCode >= 400:
			return retry.Permanent(fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status))
		}

		if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(out); err != nil {
			return retry.Permanent(fmt.Errorf("decode: %w", err))
		}
		return nil
	})
}
