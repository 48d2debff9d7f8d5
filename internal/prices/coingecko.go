package prices

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m3rciful/swapstream/core/logger"
)

// HTTPDoer is the subset of *http.Client used by CoinGecko.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// CoinGecko queries the /simple/price endpoint.
type CoinGecko struct {
	client   HTTPDoer
	endpoint string
	apiKey   string
}

// NewCoinGecko builds a client for endpoint. A non-empty apiKey is sent as the
// demo API key header.
func NewCoinGecko(client HTTPDoer, endpoint, apiKey string) *CoinGecko {
	if client == nil {
		client = http.DefaultClient
	}
	return &CoinGecko{client: client, endpoint: endpoint, apiKey: apiKey}
}

type simplePrice struct {
	USD       *float64 `json:"usd"`
	Change24h *float64 `json:"usd_24h_change"`
}

// Prices fetches USD prices and 24h changes for keys in one request.
func (g *CoinGecko) Prices(ctx context.Context, keys []string) (map[string]Price, error) {
	if len(keys) == 0 {
		return map[string]Price{}, nil
	}

	u, err := url.Parse(g.endpoint)
	if err != nil {
		return nil, fmt.Errorf("prices: endpoint: %w", err)
	}
	q := u.Query()
	q.Set("ids", strings.Join(keys, ","))
	q.Set("vs_currencies", "usd")
	q.Set("include_24hr_change", "true")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("prices: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if g.apiKey != "" {
		req.Header.Set("x-cg-demo-api-key", g.apiKey)
	}

	start := time.Now()
	resp, err := g.client.Do(req)
	if err != nil {
		logger.Warn(ctx, "prices", "prices.fetch",
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
			slog.Duration("duration", time.Since(start)),
		)
		return nil, fmt.Errorf("prices: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		logger.Warn(ctx, "prices", "prices.fetch",
			slog.String("status", "fail"),
			slog.Int("http_code", resp.StatusCode),
			slog.Duration("duration", time.Since(start)),
		)
		return nil, fmt.Errorf("prices: unexpected status %s", resp.Status)
	}

	var body map[string]simplePrice
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("prices: decode response: %w", err)
	}

	out := make(map[string]Price, len(body))
	for key, p := range body {
		if p.USD == nil {
			continue
		}
		price := Price{USD: *p.USD}
		if p.Change24h != nil {
			price.Change24h = *p.Change24h
		}
		out[key] = price
	}
	logger.Debug(ctx, "prices", "prices.fetch",
		slog.String("status", "ok"),
		slog.Int("coins", len(out)),
		slog.Duration("duration", time.Since(start)),
	)
	return out, nil
}
