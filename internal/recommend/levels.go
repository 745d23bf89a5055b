package recommend

import "math"

// Levels summarizes the support/resistance structure around the
// current price. Entry, target and stop derive from the nearest
// levels; the strongest clusters are reported for context.
type Levels struct {
	StrongestSupport    float64
	StrongestResistance float64
	NearestSupport      float64
	NearestResistance   float64
}

// computeLevels selects nearest and strongest levels. Support
// strength favors the most-touched cluster while resistance strength
// favors the least-touched one; ties keep the lowest cluster key.
// When no level sits on the right side of the price, a 5% band around
// it stands in.
func computeLevels(currentPrice float64, supports, resistances []float64) Levels {
	lv := Levels{
		NearestSupport:    currentPrice * 0.95,
		NearestResistance: currentPrice * 1.05,
	}

	nearestSup := math.Inf(-1)
	for _, s := range supports {
		if s < currentPrice && s > nearestSup {
			nearestSup = s
		}
	}
	if !math.IsInf(nearestSup, -1) {
		lv.NearestSupport = nearestSup
	}

	nearestRes := math.Inf(1)
	for _, r := range resistances {
		if r > currentPrice && r < nearestRes {
			nearestRes = r
		}
	}
	if !math.IsInf(nearestRes, 1) {
		lv.NearestResistance = nearestRes
	}

	lv.StrongestSupport = strongestCluster(supports, true)
	lv.StrongestResistance = strongestCluster(resistances, false)

	return lv
}

// strongestCluster groups levels to one decimal and picks the cluster
// with the highest touch count (maxCount) or the lowest (minCount for
// resistance). Returns 0 for an empty level list.
func strongestCluster(levels []float64, maxCount bool) float64 {
	if len(levels) == 0 {
		return 0
	}

	clusters := make(map[float64]int)
	for _, l := range levels {
		key := math.Round(l*10) / 10
		clusters[key]++
	}

	var bestKey float64
	bestCount := -1
	first := true
	for key, count := range clusters {
		better := false
		switch {
		case first:
			better = true
		case maxCount && count > bestCount:
			better = true
		case !maxCount && count < bestCount:
			better = true
		case count == bestCount && key < bestKey:
			better = true
		}
		if better {
			bestKey = key
			bestCount = count
			first = false
		}
	}
	return bestKey
}
