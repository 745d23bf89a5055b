package contracts

import (
	"context"
	"time"
)

// Bar is a single daily OHLCV candle.
type Bar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// MarketDataProvider supplies the raw inputs to an analysis. Each call
// is independently fallible; peer fetches in particular fail per peer
// without aborting the caller.
type MarketDataProvider interface {
	FetchSnapshot(ctx context.Context, symbol string) (*TechnicalSnapshot, error)
	FetchNews(ctx context.Context, symbol string) ([]NewsItem, error)
	FetchFundamentals(ctx context.Context, symbol string) (*FundamentalSnapshot, error)
	FetchPeerFundamentals(ctx context.Context, peerSymbol string) (*FundamentalSnapshot, error)
}

// BarProvider supplies historical daily bars, used by the backtester
// and the bar collector.
type BarProvider interface {
	FetchBars(ctx context.Context, symbol string, days int) ([]Bar, error)
}

// BarStore persists daily bars so backtests do not refetch them.
type BarStore interface {
	SaveBars(ctx context.Context, symbol string, bars []Bar) error
	GetBars(ctx context.Context, symbol string, from, to time.Time) ([]Bar, error)
}

// ReportWriter consumes finished analyses. Implementations read only
// ScoreBundle and TradeRecommendation fields plus the echoed inputs.
type ReportWriter interface {
	Write(analysis *Analysis) (string, error)
}
