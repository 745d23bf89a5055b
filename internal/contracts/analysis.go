package contracts

import "time"

// Rating is the discrete trade recommendation tier.
type Rating string

const (
	RatingStrongBuy Rating = "Strong Buy"
	RatingBuy       Rating = "Buy"
	RatingWait      Rating = "Wait & Watch"
	RatingAvoid     Rating = "Avoid"
)

// Tier returns the rating as an ordinal, higher is better.
func (r Rating) Tier() int {
	switch r {
	case RatingStrongBuy:
		return 3
	case RatingBuy:
		return 2
	case RatingWait:
		return 1
	case RatingAvoid:
		return 0
	}
	return -1
}

// ScoreBundle holds the per-axis scores and their weighted combination.
// All four values are in [0, 1].
type ScoreBundle struct {
	TechnicalScore   float64 `json:"technical_score"`
	NewsScore        float64 `json:"news_score"`
	FundamentalScore float64 `json:"fundamental_score"`
	OverallScore     float64 `json:"overall_score"`
}

// TradeRecommendation is the immutable output of the recommendation
// engine. Monetary values are rounded to 2 decimals in the currency of
// the input prices.
type TradeRecommendation struct {
	EntryPrice      float64 `json:"entry_price"`
	TargetPrice     float64 `json:"target_price"`
	StopLoss        float64 `json:"stop_loss"`
	RiskRewardRatio float64 `json:"risk_reward_ratio"` // 0 when risk <= 0
	Rating          Rating  `json:"rating"`
	Reason          string  `json:"reason"`
}

// Analysis is the full result of analyzing one symbol.
type Analysis struct {
	Symbol         string              `json:"symbol"`
	AnalyzedAt     time.Time           `json:"analyzed_at"`
	Scores         ScoreBundle         `json:"scores"`
	Recommendation TradeRecommendation `json:"recommendation"`

	// Inputs echoed for downstream presentation.
	Technical     *TechnicalSnapshot   `json:"technical,omitempty"`
	Fundamentals  *FundamentalSnapshot `json:"fundamentals,omitempty"`
	News          []NewsItem           `json:"news,omitempty"`
	SectorSummary *SectorSummary       `json:"sector_summary,omitempty"`
}
