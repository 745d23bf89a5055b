package yahoo

import (
	"context"
	"fmt"
	"net/url"

	"github.com/equitylens/backend/internal/contracts"
	"github.com/equitylens/backend/pkg/redis"
)

const quoteModules = "defaultKeyStatistics,financialData,summaryDetail"

// rawValue is Yahoo's numeric wrapper; absent fields decode to a nil
// pointer.
type rawValue struct {
	Raw *float64 `json:"raw"`
}

func (r *rawValue) value() *float64 {
	if r == nil {
		return nil
	}
	return r.Raw
}

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			DefaultKeyStatistics struct {
				TrailingEps             *rawValue `json:"trailingEps"`
				HeldPercentInstitutions *rawValue `json:"heldPercentInstitutions"`
				WeekChange52            *rawValue `json:"52WeekChange"`
			} `json:"defaultKeyStatistics"`
			FinancialData struct {
				DebtToEquity   *rawValue `json:"debtToEquity"`
				ReturnOnEquity *rawValue `json:"returnOnEquity"`
			} `json:"financialData"`
			SummaryDetail struct {
				TrailingPE *rawValue `json:"trailingPE"`
			} `json:"summaryDetail"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

// FetchFundamentals fetches valuation and balance-sheet ratios for a
// symbol. Fields the API omits come back nil and score neutrally.
func (c *Client) FetchFundamentals(ctx context.Context, symbol string) (*contracts.FundamentalSnapshot, error) {
	cacheKey := redis.FundamentalsKey(symbol)

	var cached contracts.FundamentalSnapshot
	if hit, err := c.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		c.logger.WithField("symbol", symbol).Debug("Fundamentals served from cache")
		return &cached, nil
	}

	fullURL := fmt.Sprintf("%s/%s?modules=%s",
		c.quoteBaseURL, url.PathEscape(symbol), quoteModules)

	var resp quoteSummaryResponse
	if err := c.fetchJSON(ctx, fullURL, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch fundamentals for %s: %w", symbol, err)
	}

	snap, err := parseQuoteSummary(symbol, &resp)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fundamentals for %s: %w", symbol, err)
	}

	if err := c.cache.Set(ctx, cacheKey, snap, redis.TTLMedium); err != nil {
		c.logger.WithError(err).Warn("Failed to cache fundamentals")
	}

	return snap, nil
}

// FetchPeerFundamentals fetches a sector peer's fundamentals. Same
// endpoint as the subject stock; named separately so callers can fail
// per peer.
func (c *Client) FetchPeerFundamentals(ctx context.Context, peerSymbol string) (*contracts.FundamentalSnapshot, error) {
	return c.FetchFundamentals(ctx, peerSymbol)
}

func parseQuoteSummary(symbol string, resp *quoteSummaryResponse) (*contracts.FundamentalSnapshot, error) {
	if resp.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("quote API error: %s", resp.QuoteSummary.Error.Description)
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("quote API returned no result")
	}

	result := resp.QuoteSummary.Result[0]
	return &contracts.FundamentalSnapshot{
		Symbol:               symbol,
		EPS:                  result.DefaultKeyStatistics.TrailingEps.value(),
		PERatio:              result.SummaryDetail.TrailingPE.value(),
		DebtToEquity:         result.FinancialData.DebtToEquity.value(),
		ROE:                  result.FinancialData.ReturnOnEquity.value(),
		InstitutionalHolding: result.DefaultKeyStatistics.HeldPercentInstitutions.value(),
		YearReturn:           result.DefaultKeyStatistics.WeekChange52.value(),
	}, nil
}
