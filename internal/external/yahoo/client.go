// Package yahoo fetches price history, fundamentals and news for a
// symbol from the Yahoo Finance public endpoints plus the Google News
// RSS feed.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/equitylens/backend/internal/contracts"
	"github.com/equitylens/backend/pkg/config"
	"github.com/equitylens/backend/pkg/httputil"
	"github.com/equitylens/backend/pkg/logger"
	"github.com/equitylens/backend/pkg/redis"
)

// Client talks to the market data endpoints. All Yahoo and news-feed
// calls in the codebase go through this client.
type Client struct {
	httpClient   *httputil.Client
	cache        *redis.Cache
	chartBaseURL string
	quoteBaseURL string
	newsBaseURL  string
	logger       *logger.Logger
}

var (
	_ contracts.MarketDataProvider = (*Client)(nil)
	_ contracts.BarProvider        = (*Client)(nil)
)

// NewClient creates a new market data client. The cache may be backed
// by a disabled redis client, in which case every call goes straight
// to the network.
func NewClient(httpClient *httputil.Client, cache *redis.Cache, cfg config.YahooConfig, log *logger.Logger) *Client {
	return &Client{
		httpClient:   httpClient,
		cache:        cache,
		chartBaseURL: cfg.ChartBaseURL,
		quoteBaseURL: cfg.QuoteBaseURL,
		newsBaseURL:  cfg.NewsBaseURL,
		logger:       log,
	}
}

// browser-like headers; the chart endpoint rejects default Go agents
var requestHeaders = map[string]string{
	"User-Agent": "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36",
	"Accept":     "application/json, text/xml, */*",
}

// fetchBody GETs a URL and returns the response body.
func (c *Client) fetchBody(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.httpClient.GetWithHeaders(ctx, url, requestHeaders)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, nil
}

// fetchJSON GETs a URL and decodes the JSON body into dest.
func (c *Client) fetchJSON(ctx context.Context, url string, dest interface{}) error {
	body, err := c.fetchBody(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
