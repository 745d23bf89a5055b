package indicators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equitylens/backend/internal/contracts"
)

func TestRSI(t *testing.T) {
	t.Run("insufficient data returns neutral", func(t *testing.T) {
		assert.Equal(t, 50.0, RSI([]float64{100, 101}, 14))
	})

	t.Run("all gains returns 100", func(t *testing.T) {
		closes := make([]float64, 20)
		for i := range closes {
			closes[i] = 100 + float64(i)
		}
		assert.Equal(t, 100.0, RSI(closes, 14))
	})

	t.Run("equal gains and losses returns 50", func(t *testing.T) {
		// Alternate +1/-1 so avg gain == avg loss
		closes := make([]float64, 21)
		closes[0] = 100
		for i := 1; i < len(closes); i++ {
			if i%2 == 1 {
				closes[i] = closes[i-1] + 1
			} else {
				closes[i] = closes[i-1] - 1
			}
		}
		assert.InDelta(t, 50.0, RSI(closes, 14), 0.0001)
	})

	t.Run("result stays in range", func(t *testing.T) {
		closes := []float64{44, 44.3, 44.1, 43.6, 44.3, 44.8, 45.1, 45.4, 45.8, 46.1, 45.9, 46.3, 46.4, 46.2, 46.0, 46.6}
		rsi := RSI(closes, 14)
		assert.GreaterOrEqual(t, rsi, 0.0)
		assert.LessOrEqual(t, rsi, 100.0)
	})
}

func TestEMASeries(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		assert.Nil(t, EMASeries(nil, 12))
	})

	t.Run("seeded with first value", func(t *testing.T) {
		series := EMASeries([]float64{10, 10, 10}, 5)
		require.Len(t, series, 3)
		assert.Equal(t, 10.0, series[0])
		assert.Equal(t, 10.0, series[2])
	})

	t.Run("converges toward constant tail", func(t *testing.T) {
		values := []float64{0}
		for i := 0; i < 100; i++ {
			values = append(values, 50)
		}
		assert.InDelta(t, 50.0, EMA(values, 10), 0.01)
	})
}

func TestMACD(t *testing.T) {
	t.Run("flat series yields zero", func(t *testing.T) {
		closes := make([]float64, 60)
		for i := range closes {
			closes[i] = 100
		}
		macd, signal := MACD(closes)
		assert.InDelta(t, 0.0, macd, 1e-9)
		assert.InDelta(t, 0.0, signal, 1e-9)
	})

	t.Run("rising series yields positive MACD above signal", func(t *testing.T) {
		closes := make([]float64, 60)
		for i := range closes {
			closes[i] = 100 + 2*float64(i)
		}
		macd, signal := MACD(closes)
		assert.Greater(t, macd, 0.0)
		assert.Greater(t, macd, signal)
	})
}

func TestSupportResistanceLevels(t *testing.T) {
	bars := []contracts.Bar{
		{High: 105, Low: 100},
		{High: 104, Low: 98}, // local min low
		{High: 106, Low: 101},
		{High: 110, Low: 102}, // local max high
		{High: 107, Low: 99},  // local min low
		{High: 108, Low: 103},
	}

	supports := SupportLevels(bars)
	assert.Equal(t, []float64{98, 99}, supports)

	resistances := ResistanceLevels(bars)
	assert.Equal(t, []float64{110}, resistances)
}

func TestSupportLevels_Deduplicates(t *testing.T) {
	bars := []contracts.Bar{
		{Low: 100, High: 110},
		{Low: 95.123, High: 108},
		{Low: 101, High: 112},
		{Low: 95.1249, High: 109}, // rounds to the same 95.12
		{Low: 102, High: 111},
	}

	supports := SupportLevels(bars)
	assert.Equal(t, []float64{95.12}, supports)
}

func TestClassify(t *testing.T) {
	t.Run("uptrend", func(t *testing.T) {
		closes := make([]float64, 50)
		for i := range closes {
			closes[i] = 100 + float64(i)
		}
		assert.Equal(t, contracts.TrendUp, Classify(closes))
	})

	t.Run("downtrend", func(t *testing.T) {
		closes := make([]float64, 50)
		for i := range closes {
			closes[i] = 200 - float64(i)
		}
		assert.Equal(t, contracts.TrendDown, Classify(closes))
	})

	t.Run("sideways", func(t *testing.T) {
		closes := make([]float64, 50)
		for i := range closes {
			closes[i] = 100 + 0.05*math.Sin(float64(i))
		}
		assert.Equal(t, contracts.TrendSideways, Classify(closes))
	})
}

func TestDetectPattern(t *testing.T) {
	mkBars := func(highs, lows []float64) []contracts.Bar {
		bars := make([]contracts.Bar, len(highs))
		for i := range highs {
			bars[i] = contracts.Bar{High: highs[i], Low: lows[i]}
		}
		return bars
	}

	t.Run("ascending channel", func(t *testing.T) {
		highs := make([]float64, 20)
		lows := make([]float64, 20)
		for i := range highs {
			highs[i] = 100 + float64(i)
			lows[i] = 95 + float64(i)
		}
		assert.Equal(t, contracts.PatternAscendingChannel, DetectPattern(mkBars(highs, lows)))
	})

	t.Run("descending channel", func(t *testing.T) {
		highs := make([]float64, 20)
		lows := make([]float64, 20)
		for i := range highs {
			highs[i] = 120 - float64(i)
			lows[i] = 115 - float64(i)
		}
		assert.Equal(t, contracts.PatternDescendingChannel, DetectPattern(mkBars(highs, lows)))
	})

	t.Run("potential breakout", func(t *testing.T) {
		highs := []float64{100, 105, 102, 103, 101, 106}
		lows := []float64{95, 97, 96, 98, 96, 99}
		assert.Equal(t, contracts.PatternBreakout, DetectPattern(mkBars(highs, lows)))
	})

	t.Run("potential breakdown", func(t *testing.T) {
		highs := []float64{100, 105, 102, 103, 101, 102}
		lows := []float64{95, 97, 96, 98, 96, 94}
		assert.Equal(t, contracts.PatternBreakdown, DetectPattern(mkBars(highs, lows)))
	})

	t.Run("no clear pattern", func(t *testing.T) {
		highs := []float64{100, 105, 102, 103, 101, 102}
		lows := []float64{95, 97, 96, 98, 96, 97}
		assert.Equal(t, contracts.PatternNone, DetectPattern(mkBars(highs, lows)))
	})
}

func TestBuildSnapshot(t *testing.T) {
	t.Run("too few bars", func(t *testing.T) {
		_, err := BuildSnapshot("AAPL", make([]contracts.Bar, 5))
		assert.Error(t, err)
	})

	t.Run("full snapshot", func(t *testing.T) {
		bars := make([]contracts.Bar, 60)
		for i := range bars {
			price := 100 + float64(i)
			bars[i] = contracts.Bar{
				Open:   price - 0.5,
				High:   price + 1,
				Low:    price - 1,
				Close:  price,
				Volume: 1000 + float64(i*10),
			}
		}

		snap, err := BuildSnapshot("AAPL", bars)
		require.NoError(t, err)

		assert.Equal(t, "AAPL", snap.Symbol)
		assert.Equal(t, 159.0, snap.CurrentPrice)
		assert.Len(t, snap.Volume5D, 5)
		assert.Equal(t, contracts.TrendUp, snap.Trend)
		assert.Equal(t, contracts.PatternAscendingChannel, snap.Pattern)
		assert.GreaterOrEqual(t, snap.RSI, 0.0)
		assert.LessOrEqual(t, snap.RSI, 100.0)
		// Monotone rising closes keep both EMAs below price
		assert.Greater(t, snap.CurrentPrice, snap.EMA50)
		assert.Greater(t, snap.EMA50, snap.EMA200)
	})
}
