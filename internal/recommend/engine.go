// Package recommend turns analysis scores and price structure into a
// trade recommendation with entry, target and stop levels.
package recommend

import (
	"fmt"
	"math"
	"strings"

	"github.com/equitylens/backend/internal/contracts"
	"github.com/equitylens/backend/pkg/logger"
)

const (
	defaultMinRiskReward      = 1.5
	defaultStrongBuyThreshold = 0.8
	defaultBuyThreshold       = 0.6
	defaultAvoidThreshold     = 0.3
)

// Engine generates trade recommendations.
type Engine struct {
	minRiskReward      float64
	strongBuyThreshold float64
	buyThreshold       float64
	avoidThreshold     float64
	logger             *logger.Logger
}

// NewEngine creates a recommendation engine with the default rating
// cutoffs and a minimum reward-to-risk ratio of 1.5:1.
func NewEngine(log *logger.Logger) *Engine {
	return &Engine{
		minRiskReward:      defaultMinRiskReward,
		strongBuyThreshold: defaultStrongBuyThreshold,
		buyThreshold:       defaultBuyThreshold,
		avoidThreshold:     defaultAvoidThreshold,
		logger:             log,
	}
}

// WithMinRiskReward overrides the reward-to-risk threshold below
// which buy-side ratings are downgraded.
func (e *Engine) WithMinRiskReward(ratio float64) *Engine {
	if ratio > 0 {
		e.minRiskReward = ratio
	}
	return e
}

// WithThresholds overrides the overall-score rating cutoffs.
func (e *Engine) WithThresholds(strongBuy, buy, avoid float64) *Engine {
	e.strongBuyThreshold = strongBuy
	e.buyThreshold = buy
	e.avoidThreshold = avoid
	return e
}

// Generate builds the recommendation from the overall score, the
// technical snapshot and the optional sector summary.
func (e *Engine) Generate(technical *contracts.TechnicalSnapshot, overallScore float64, sectorSummary *contracts.SectorSummary) *contracts.TradeRecommendation {
	currentPrice := technical.CurrentPrice

	rating := e.rateScore(overallScore)
	rating = applySectorContext(rating, sectorSummary)

	lv := computeLevels(currentPrice, technical.SupportLevels, technical.ResistanceLevels)

	entry := currentPrice
	target := math.Max(lv.NearestResistance, currentPrice*1.02)
	stop := math.Min(lv.NearestSupport*0.99, currentPrice*0.98)

	risk := entry - stop
	reward := target - entry
	riskReward := 0.0
	if risk > 0 {
		riskReward = round2(reward / risk)
	}

	if riskReward < e.minRiskReward {
		if rating == contracts.RatingStrongBuy || rating == contracts.RatingBuy {
			e.logger.WithFields(map[string]interface{}{
				"symbol":      technical.Symbol,
				"risk_reward": riskReward,
			}).Debug("Reward-to-risk below threshold, downgrading")
			rating = contracts.RatingWait
		}
	}

	rec := &contracts.TradeRecommendation{
		EntryPrice:      round2(entry),
		TargetPrice:     round2(target),
		StopLoss:        round2(stop),
		RiskRewardRatio: riskReward,
		Rating:          rating,
		Reason:          buildReason(technical, rating, overallScore),
	}

	e.logger.WithFields(map[string]interface{}{
		"symbol": technical.Symbol,
		"rating": string(rating),
		"entry":  rec.EntryPrice,
		"target": rec.TargetPrice,
		"stop":   rec.StopLoss,
	}).Info("Trade recommendation generated")

	return rec
}

// rateScore maps the overall score to a rating tier.
func (e *Engine) rateScore(score float64) contracts.Rating {
	switch {
	case score >= e.strongBuyThreshold:
		return contracts.RatingStrongBuy
	case score >= e.buyThreshold:
		return contracts.RatingBuy
	case score <= e.avoidThreshold:
		return contracts.RatingAvoid
	default:
		return contracts.RatingWait
	}
}

// applySectorContext downgrades the rating by one tier when the stock
// shows two or more concerns against its sector peers.
func applySectorContext(rating contracts.Rating, summary *contracts.SectorSummary) contracts.Rating {
	if summary == nil || summary.ConcernCount() < 2 {
		return rating
	}
	switch rating {
	case contracts.RatingStrongBuy:
		return contracts.RatingBuy
	case contracts.RatingBuy:
		return contracts.RatingWait
	default:
		return rating
	}
}

// buildReason assembles the human-readable justification string.
func buildReason(technical *contracts.TechnicalSnapshot, rating contracts.Rating, score float64) string {
	var reasons []string

	if technical.Trend == contracts.TrendUp {
		reasons = append(reasons, "Stock is in an uptrend")
	}
	if technical.MACD > technical.MACDSignal {
		reasons = append(reasons, "MACD shows bullish momentum")
	}
	switch {
	case technical.RSI >= 30 && technical.RSI <= 70:
		reasons = append(reasons, "RSI indicates balanced conditions")
	case technical.RSI < 30:
		reasons = append(reasons, "Stock is oversold")
	default:
		reasons = append(reasons, "Stock is overbought")
	}
	if technical.Pattern != contracts.PatternNone {
		reasons = append(reasons, fmt.Sprintf("Showing %s pattern", technical.Pattern))
	}

	if len(reasons) > 0 {
		return fmt.Sprintf("%s recommendation (%.2f) because: %s", rating, score, strings.Join(reasons, "; "))
	}
	return fmt.Sprintf("%s recommendation based on overall analysis score of %.2f", rating, score)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
