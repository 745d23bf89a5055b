package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/equitylens/backend/internal/contracts"
	"github.com/equitylens/backend/internal/indicators"
	"github.com/equitylens/backend/pkg/redis"
)

// snapshotDays is the price history window behind a technical
// snapshot: enough bars for the 50-bar trend fit and both EMAs to
// settle.
const snapshotDays = 180

type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchBars fetches up to days of daily OHLCV bars, oldest first.
// Sessions with a null close are dropped.
func (c *Client) FetchBars(ctx context.Context, symbol string, days int) ([]contracts.Bar, error) {
	rangeSpec := fmt.Sprintf("%dd", days)
	cacheKey := redis.ChartKey(symbol, rangeSpec)

	var cached []contracts.Bar
	if hit, err := c.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		c.logger.WithField("symbol", symbol).Debug("Chart served from cache")
		return cached, nil
	}

	fullURL := fmt.Sprintf("%s/%s?range=%s&interval=1d",
		c.chartBaseURL, url.PathEscape(symbol), rangeSpec)

	var resp chartResponse
	if err := c.fetchJSON(ctx, fullURL, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch chart for %s: %w", symbol, err)
	}

	bars, err := parseChart(&resp)
	if err != nil {
		return nil, fmt.Errorf("failed to parse chart for %s: %w", symbol, err)
	}

	if err := c.cache.Set(ctx, cacheKey, bars, redis.TTLDaily); err != nil {
		c.logger.WithError(err).Warn("Failed to cache chart")
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"bars":   len(bars),
	}).Debug("Fetched chart")

	return bars, nil
}

// FetchSnapshot fetches recent bars and computes the technical
// snapshot from them.
func (c *Client) FetchSnapshot(ctx context.Context, symbol string) (*contracts.TechnicalSnapshot, error) {
	bars, err := c.FetchBars(ctx, symbol, snapshotDays)
	if err != nil {
		return nil, err
	}
	return indicators.BuildSnapshot(symbol, bars)
}

func parseChart(resp *chartResponse) ([]contracts.Bar, error) {
	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("chart API error: %s", resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("chart API returned no result")
	}

	result := resp.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("chart API returned no quote data")
	}
	quote := result.Indicators.Quote[0]

	bars := make([]contracts.Bar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		closePrice := at(quote.Close, i)
		if closePrice == nil {
			continue // unfilled session
		}

		bar := contracts.Bar{
			Date:  time.Unix(ts, 0).UTC(),
			Close: *closePrice,
		}
		if v := at(quote.Open, i); v != nil {
			bar.Open = *v
		}
		if v := at(quote.High, i); v != nil {
			bar.High = *v
		}
		if v := at(quote.Low, i); v != nil {
			bar.Low = *v
		}
		if v := at(quote.Volume, i); v != nil {
			bar.Volume = *v
		}
		bars = append(bars, bar)
	}

	return bars, nil
}

func at(vals []*float64, i int) *float64 {
	if i >= len(vals) {
		return nil
	}
	return vals[i]
}
