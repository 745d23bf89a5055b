package indicators

import (
	"math"
	"sort"

	"github.com/equitylens/backend/internal/contracts"
)

// SupportLevels finds potential support prices from local minima of
// the bar lows. Levels are rounded to 2 decimals, de-duplicated and
// returned in ascending order.
func SupportLevels(bars []contracts.Bar) []float64 {
	seen := make(map[float64]bool)
	var levels []float64

	for i := 1; i < len(bars)-1; i++ {
		if bars[i].Low < bars[i-1].Low && bars[i].Low < bars[i+1].Low {
			level := round2(bars[i].Low)
			if !seen[level] {
				seen[level] = true
				levels = append(levels, level)
			}
		}
	}

	sort.Float64s(levels)
	return levels
}

// ResistanceLevels finds potential resistance prices from local maxima
// of the bar highs, rounded, de-duplicated and sorted ascending.
func ResistanceLevels(bars []contracts.Bar) []float64 {
	seen := make(map[float64]bool)
	var levels []float64

	for i := 1; i < len(bars)-1; i++ {
		if bars[i].High > bars[i-1].High && bars[i].High > bars[i+1].High {
			level := round2(bars[i].High)
			if !seen[level] {
				seen[level] = true
				levels = append(levels, level)
			}
		}
	}

	sort.Float64s(levels)
	return levels
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
