// Package scoring turns raw snapshots into the per-axis scores that
// feed the recommendation engine. Every scorer is stateless and pure:
// identical inputs always produce identical scores.
package scoring

import (
	"fmt"

	"github.com/equitylens/backend/internal/contracts"
	"github.com/equitylens/backend/pkg/logger"
)

// TechnicalScorer scores price-action technicals on a 0-1 scale.
type TechnicalScorer struct {
	logger *logger.Logger
}

// NewTechnicalScorer creates a new technical scorer.
func NewTechnicalScorer(log *logger.Logger) *TechnicalScorer {
	return &TechnicalScorer{logger: log}
}

// Score evaluates every rule independently and returns the clamped sum.
func (s *TechnicalScorer) Score(snap *contracts.TechnicalSnapshot) float64 {
	score := 0.0

	rules := []struct {
		delta float64
		note  string
	}{
		rsiRule(snap.RSI),
		macdRule(snap.MACD, snap.MACDSignal),
		emaRule(snap.CurrentPrice, snap.EMA50, snap.EMA200),
		volumeRule(snap.Volume5D),
		trendRule(snap.Trend),
		patternRule(snap.Pattern),
	}

	for _, r := range rules {
		score += r.delta
		s.logger.WithFields(map[string]interface{}{
			"symbol": snap.Symbol,
			"delta":  r.delta,
		}).Debug(r.note)
	}

	final := Clamp01(score)

	s.logger.WithFields(map[string]interface{}{
		"symbol": snap.Symbol,
		"score":  final,
	}).Debug("Technical score calculated")

	return final
}

type ruleResult struct {
	delta float64
	note  string
}

// rsiRule rewards balanced momentum, partially rewards oversold
// conditions, and gives nothing for overbought readings.
func rsiRule(rsi float64) ruleResult {
	switch {
	case rsi >= 30 && rsi <= 70:
		return ruleResult{0.2, fmt.Sprintf("RSI at %.2f - balanced conditions", rsi)}
	case rsi < 30:
		return ruleResult{0.15, fmt.Sprintf("RSI at %.2f - oversold condition", rsi)}
	default:
		return ruleResult{0, fmt.Sprintf("RSI at %.2f - overbought condition", rsi)}
	}
}

func macdRule(macd, signal float64) ruleResult {
	if macd > signal {
		return ruleResult{0.2, fmt.Sprintf("MACD (%.3f) above signal (%.3f) - bullish", macd, signal)}
	}
	return ruleResult{0, fmt.Sprintf("MACD (%.3f) below signal (%.3f) - bearish", macd, signal)}
}

// emaRule checks the price/EMA50/EMA200 ordering. A fully stacked
// uptrend earns the bonus, a fully inverted stack is penalized, and
// anything mixed is neutral.
func emaRule(price, ema50, ema200 float64) ruleResult {
	switch {
	case price > ema50 && ema50 > ema200:
		return ruleResult{0.2, "Price > EMA50 > EMA200 - strong uptrend"}
	case ema50 < ema200 && price < ema50:
		return ruleResult{-0.1, "Price < EMA50 < EMA200 - strong downtrend"}
	default:
		return ruleResult{0, "EMAs show mixed signals"}
	}
}

func volumeRule(volume5d []float64) ruleResult {
	if len(volume5d) == 0 {
		return ruleResult{0, "No volume data"}
	}

	var sum float64
	for _, v := range volume5d {
		sum += v
	}
	avg := sum / float64(len(volume5d))
	latest := volume5d[len(volume5d)-1]

	if latest > avg {
		return ruleResult{0.1, fmt.Sprintf("Volume (%.0f) above 5-day average (%.0f)", latest, avg)}
	}
	return ruleResult{0, fmt.Sprintf("Volume (%.0f) below 5-day average (%.0f)", latest, avg)}
}

func trendRule(trend contracts.Trend) ruleResult {
	switch trend {
	case contracts.TrendUp:
		return ruleResult{0.2, "Price in uptrend"}
	case contracts.TrendDown:
		return ruleResult{-0.1, "Price in downtrend"}
	default:
		return ruleResult{0, "Price moving sideways"}
	}
}

func patternRule(pattern contracts.Pattern) ruleResult {
	if pattern == contracts.PatternBreakout || pattern == contracts.PatternAscendingChannel {
		return ruleResult{0.1, fmt.Sprintf("Detected %s pattern", pattern)}
	}
	return ruleResult{0, fmt.Sprintf("Pattern: %s", pattern)}
}

// Clamp01 clamps v into [0, 1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
