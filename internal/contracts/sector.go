package contracts

// Assessment says how a stock's ratio sits against the sector median.
type Assessment string

const (
	AssessmentHigh Assessment = "high"
	AssessmentLow  Assessment = "low"
)

// PeerSet maps peer symbols to display names. It is an immutable
// configuration value; comparators never mutate it.
type PeerSet map[string]string

// RatioStats holds aggregate statistics for one ratio across peers.
type RatioStats struct {
	Median float64            `json:"median"`
	Mean   float64            `json:"mean"`
	Min    float64            `json:"min"`
	Max    float64            `json:"max"`
	Values map[string]float64 `json:"values"` // peer symbol -> value
}

// RatioComparison compares the subject stock's ratio to its sector.
// Percentile is the fraction of peers strictly below the stock value.
type RatioComparison struct {
	Stock        float64    `json:"stock"`
	SectorMedian float64    `json:"sector_median"`
	Percentile   float64    `json:"percentile"`
	Assessment   Assessment `json:"assessment"`
}

// SectorSummary is the per-ratio comparison consumed by the
// recommendation engine. A nil entry means the ratio had no valid
// peer values (or the stock value was missing) and is omitted.
type SectorSummary struct {
	PERatio    *RatioComparison `json:"pe_ratio,omitempty"`
	DebtEquity *RatioComparison `json:"debt_equity,omitempty"`
	ROE        *RatioComparison `json:"roe,omitempty"`
}

// ConcernCount counts sector-relative concerns: expensive vs peers,
// more levered than peers, or below-sector profitability.
func (s *SectorSummary) ConcernCount() int {
	if s == nil {
		return 0
	}

	count := 0
	if s.PERatio != nil && s.PERatio.Assessment == AssessmentHigh {
		count++
	}
	if s.DebtEquity != nil && s.DebtEquity.Assessment == AssessmentHigh {
		count++
	}
	if s.ROE != nil && s.ROE.Assessment == AssessmentLow {
		count++
	}
	return count
}
