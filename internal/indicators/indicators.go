// Package indicators computes the technical indicators behind a
// TechnicalSnapshot from raw daily bars.
package indicators

// RSI calculates the Relative Strength Index over the trailing period.
// Returns 50 (neutral) when there is not enough data.
func RSI(closes []float64, period int) float64 {
	if len(closes) < period+1 {
		return 50.0
	}

	var gains, losses float64
	start := len(closes) - period

	for i := start; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains += change
		} else {
			losses += -change
		}
	}

	if losses == 0 {
		return 100.0
	}

	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)

	rs := avgGain / avgLoss
	return 100 - (100 / (1 + rs))
}

// EMASeries calculates the exponential moving average for every point
// of the input, seeded with the first value.
func EMASeries(values []float64, period int) []float64 {
	if len(values) == 0 {
		return nil
	}

	multiplier := 2.0 / (float64(period) + 1.0)
	out := make([]float64, len(values))
	out[0] = values[0]

	for i := 1; i < len(values); i++ {
		out[i] = values[i]*multiplier + out[i-1]*(1-multiplier)
	}

	return out
}

// EMA returns the latest exponential moving average value.
func EMA(values []float64, period int) float64 {
	series := EMASeries(values, period)
	if len(series) == 0 {
		return 0
	}
	return series[len(series)-1]
}

// MACD calculates the latest MACD value (EMA12 - EMA26) and its
// 9-period signal line.
func MACD(closes []float64) (macd, signal float64) {
	if len(closes) < 2 {
		return 0, 0
	}

	ema12 := EMASeries(closes, 12)
	ema26 := EMASeries(closes, 26)

	macdSeries := make([]float64, len(closes))
	for i := range closes {
		macdSeries[i] = ema12[i] - ema26[i]
	}

	signalSeries := EMASeries(macdSeries, 9)

	return macdSeries[len(macdSeries)-1], signalSeries[len(signalSeries)-1]
}
