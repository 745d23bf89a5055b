package contracts

// Trend classifies the overall price direction.
type Trend string

const (
	TrendUp       Trend = "uptrend"
	TrendDown     Trend = "downtrend"
	TrendSideways Trend = "sideways"
)

// Pattern classifies the recent chart shape.
type Pattern string

const (
	PatternAscendingChannel  Pattern = "ascending channel"
	PatternDescendingChannel Pattern = "descending channel"
	PatternBreakout          Pattern = "potential breakout"
	PatternBreakdown         Pattern = "potential breakdown"
	PatternNone              Pattern = "no clear pattern"
)

// TechnicalSnapshot is a point-in-time view of a symbol's price action
// and derived indicators, consumed by the technical scorer and the
// recommendation engine.
type TechnicalSnapshot struct {
	Symbol       string  `json:"symbol"`
	CurrentPrice float64 `json:"current_price"`

	RSI        float64 `json:"rsi"` // 0-100
	MACD       float64 `json:"macd"`
	MACDSignal float64 `json:"macd_signal"`
	EMA50      float64 `json:"ema50"`
	EMA200     float64 `json:"ema200"`

	// Last 5 sessions, oldest first.
	Volume5D []float64 `json:"volume_5d"`

	// Detected price levels; either list may be empty, the
	// recommendation engine falls back to +/-5% of the current price.
	SupportLevels    []float64 `json:"support_levels"`
	ResistanceLevels []float64 `json:"resistance_levels"`

	Trend   Trend   `json:"trend"`
	Pattern Pattern `json:"pattern"`
}
