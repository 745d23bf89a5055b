package indicators

import (
	"fmt"

	"github.com/equitylens/backend/internal/contracts"
)

// MinBars is the minimum history needed to build a snapshot. Trend and
// EMA windows shrink gracefully below their nominal lengths, but
// anything shorter than this produces meaningless indicators.
const MinBars = 20

// srWindow is how many trailing bars feed support/resistance detection.
const srWindow = 30

// BuildSnapshot derives a TechnicalSnapshot from daily bars, oldest
// bar first.
func BuildSnapshot(symbol string, bars []contracts.Bar) (*contracts.TechnicalSnapshot, error) {
	if len(bars) < MinBars {
		return nil, fmt.Errorf("need at least %d bars for %s, got %d", MinBars, symbol, len(bars))
	}

	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}

	macd, signal := MACD(closes)

	srBars := bars
	if len(srBars) > srWindow {
		srBars = srBars[len(srBars)-srWindow:]
	}

	volumes := make([]float64, 0, 5)
	for _, b := range bars[len(bars)-min(5, len(bars)):] {
		volumes = append(volumes, b.Volume)
	}

	return &contracts.TechnicalSnapshot{
		Symbol:           symbol,
		CurrentPrice:     closes[len(closes)-1],
		RSI:              RSI(closes, 14),
		MACD:             macd,
		MACDSignal:       signal,
		EMA50:            EMA(closes, 50),
		EMA200:           EMA(closes, 200),
		Volume5D:         volumes,
		SupportLevels:    SupportLevels(srBars),
		ResistanceLevels: ResistanceLevels(srBars),
		Trend:            Classify(closes),
		Pattern:          DetectPattern(bars),
	}, nil
}

// Classify determines the overall trend from the least-squares slope
// of the last 50 closes.
func Classify(closes []float64) contracts.Trend {
	window := closes
	if len(window) > 50 {
		window = window[len(window)-50:]
	}
	if len(window) < 2 {
		return contracts.TrendSideways
	}

	slope := lsqSlope(window)

	if slope > -0.1 && slope < 0.1 {
		return contracts.TrendSideways
	}
	if slope > 0 {
		return contracts.TrendUp
	}
	return contracts.TrendDown
}

// DetectPattern runs a simple shape check over the last 20 bars.
func DetectPattern(bars []contracts.Bar) contracts.Pattern {
	window := bars
	if len(window) > 20 {
		window = window[len(window)-20:]
	}
	if len(window) < 2 {
		return contracts.PatternNone
	}

	ascending, descending := true, true
	maxHigh, minLow := window[0].High, window[0].Low

	for i := 1; i < len(window); i++ {
		if window[i].High <= window[i-1].High {
			ascending = false
		}
		if window[i].High >= window[i-1].High {
			descending = false
		}
		if window[i].High > maxHigh {
			maxHigh = window[i].High
		}
		if window[i].Low < minLow {
			minLow = window[i].Low
		}
	}

	last := window[len(window)-1]

	switch {
	case ascending:
		return contracts.PatternAscendingChannel
	case descending:
		return contracts.PatternDescendingChannel
	case last.High == maxHigh:
		return contracts.PatternBreakout
	case last.Low == minLow:
		return contracts.PatternBreakdown
	}

	return contracts.PatternNone
}

// lsqSlope returns the slope of the least-squares line through the
// values indexed 0..n-1.
func lsqSlope(values []float64) float64 {
	n := float64(len(values))

	var sumX, sumY, sumXY, sumXX float64
	for i, v := range values {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / denom
}
