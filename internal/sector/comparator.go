// Package sector compares a stock's fundamentals to its sector peers.
package sector

import (
	"context"
	"sort"
	"sync"

	"github.com/equitylens/backend/internal/contracts"
	"github.com/equitylens/backend/pkg/logger"
)

// PeerFetcher fetches fundamentals for a single peer. Each call fails
// independently; the comparator skips failed peers and keeps going.
type PeerFetcher interface {
	FetchPeerFundamentals(ctx context.Context, peerSymbol string) (*contracts.FundamentalSnapshot, error)
}

// Comparator computes peer-group statistics and the per-ratio
// high/low assessment consumed by the recommendation engine.
type Comparator struct {
	fetcher PeerFetcher
	logger  *logger.Logger
}

// NewComparator creates a new sector comparator.
func NewComparator(fetcher PeerFetcher, log *logger.Logger) *Comparator {
	return &Comparator{
		fetcher: fetcher,
		logger:  log,
	}
}

// Data holds the gathered per-ratio statistics for one invocation.
// Peers are fetched fresh every time; nothing is cached across calls.
type Data struct {
	PERatio    *contracts.RatioStats
	DebtEquity *contracts.RatioStats
	ROE        *contracts.RatioStats
	YearReturn *contracts.RatioStats
}

// Compare fetches all peers and summarizes how the subject stock's
// ratios sit against them. A ratio with no valid peer values, or with
// no value on the subject stock, is omitted from the summary.
func (c *Comparator) Compare(ctx context.Context, fundamentals *contracts.FundamentalSnapshot, peers contracts.PeerSet) (*contracts.SectorSummary, error) {
	data := c.Gather(ctx, peers)

	summary := &contracts.SectorSummary{
		PERatio:    compareRatio(fundamentals.PERatio, data.PERatio),
		DebtEquity: compareRatio(fundamentals.DebtToEquity, data.DebtEquity),
		ROE:        compareRatio(fundamentals.ROE, data.ROE),
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol":   fundamentals.Symbol,
		"peers":    len(peers),
		"concerns": summary.ConcernCount(),
	}).Info("Sector comparison completed")

	return summary, nil
}

// Gather fetches every peer's fundamentals concurrently and collects
// per-ratio statistics. A single peer failure is logged and skipped;
// the remaining peers still contribute.
func (c *Comparator) Gather(ctx context.Context, peers contracts.PeerSet) *Data {
	type peerResult struct {
		symbol string
		snap   *contracts.FundamentalSnapshot
	}

	results := make(chan peerResult, len(peers))

	var wg sync.WaitGroup
	for symbol, name := range peers {
		wg.Add(1)
		go func(symbol, name string) {
			defer wg.Done()

			snap, err := c.fetcher.FetchPeerFundamentals(ctx, symbol)
			if err != nil {
				c.logger.WithFields(map[string]interface{}{
					"peer":  name,
					"error": err.Error(),
				}).Warn("Peer fetch failed, skipping")
				return
			}

			results <- peerResult{symbol: symbol, snap: snap}
		}(symbol, name)
	}

	wg.Wait()
	close(results)

	pe := make(map[string]float64)
	de := make(map[string]float64)
	roe := make(map[string]float64)
	ret := make(map[string]float64)

	for r := range results {
		if r.snap.PERatio != nil {
			pe[r.symbol] = *r.snap.PERatio
		}
		if r.snap.DebtToEquity != nil {
			de[r.symbol] = *r.snap.DebtToEquity
		}
		if r.snap.ROE != nil {
			roe[r.symbol] = *r.snap.ROE
		}
		if r.snap.YearReturn != nil {
			ret[r.symbol] = *r.snap.YearReturn
		}
	}

	return &Data{
		PERatio:    ratioStats(pe),
		DebtEquity: ratioStats(de),
		ROE:        ratioStats(roe),
		YearReturn: ratioStats(ret),
	}
}

// compareRatio builds the comparison for one ratio, or nil when
// either side has no data.
func compareRatio(stockValue *float64, stats *contracts.RatioStats) *contracts.RatioComparison {
	if stockValue == nil || stats == nil {
		return nil
	}

	assessment := contracts.AssessmentLow
	if *stockValue > stats.Median {
		assessment = contracts.AssessmentHigh
	}

	return &contracts.RatioComparison{
		Stock:        *stockValue,
		SectorMedian: stats.Median,
		Percentile:   percentile(*stockValue, stats.Values),
		Assessment:   assessment,
	}
}

// percentile is the fraction of peer values strictly below the stock
// value.
func percentile(stockValue float64, values map[string]float64) float64 {
	if len(values) == 0 {
		return 0
	}

	below := 0
	for _, v := range values {
		if v < stockValue {
			below++
		}
	}
	return float64(below) / float64(len(values))
}

// ratioStats aggregates peer values, or nil when there are none.
func ratioStats(values map[string]float64) *contracts.RatioStats {
	if len(values) == 0 {
		return nil
	}

	sorted := make([]float64, 0, len(values))
	for _, v := range values {
		sorted = append(sorted, v)
	}
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}

	return &contracts.RatioStats{
		Median: median(sorted),
		Mean:   sum / float64(len(sorted)),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Values: values,
	}
}

// median of a sorted slice; the mean of the two middle values for
// even lengths.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
