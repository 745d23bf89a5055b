// Package analysis orchestrates the full scoring pipeline for one or
// more symbols: technical, news and fundamental scores combined into
// an overall score and a trade recommendation.
package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/equitylens/backend/internal/contracts"
	"github.com/equitylens/backend/internal/recommend"
	"github.com/equitylens/backend/internal/scoring"
	"github.com/equitylens/backend/internal/sector"
	"github.com/equitylens/backend/internal/strategyconfig"
	"github.com/equitylens/backend/pkg/logger"
)

// Analyzer runs the analysis pipeline. The technical snapshot is the
// only hard dependency; missing news or fundamentals degrade to their
// neutral scores instead of failing the symbol.
type Analyzer struct {
	provider    contracts.MarketDataProvider
	techScorer  *scoring.TechnicalScorer
	newsScorer  *scoring.NewsScorer
	fundScorer  *scoring.FundamentalScorer
	comparator  *sector.Comparator
	engine      *recommend.Engine
	cfg         *strategyconfig.Config
	logger      *logger.Logger
	nowFn       func() time.Time
}

// NewAnalyzer wires the pipeline from a market data provider and a
// strategy configuration.
func NewAnalyzer(provider contracts.MarketDataProvider, cfg *strategyconfig.Config, log *logger.Logger) *Analyzer {
	engine := recommend.NewEngine(log).
		WithMinRiskReward(cfg.MinRiskReward).
		WithThresholds(cfg.Thresholds.StrongBuy, cfg.Thresholds.Buy, cfg.Thresholds.Avoid)

	return &Analyzer{
		provider:   provider,
		techScorer: scoring.NewTechnicalScorer(log),
		newsScorer: scoring.NewNewsScorer(log),
		fundScorer: scoring.NewFundamentalScorer(log),
		comparator: sector.NewComparator(provider, log),
		engine:     engine,
		cfg:        cfg,
		logger:     log,
		nowFn:      time.Now,
	}
}

// WithClock pins the analysis timestamp, for tests.
func (a *Analyzer) WithClock(nowFn func() time.Time) *Analyzer {
	a.nowFn = nowFn
	a.newsScorer.WithClock(nowFn)
	return a
}

// Analyze runs the full pipeline for one symbol.
func (a *Analyzer) Analyze(ctx context.Context, symbol string) (*contracts.Analysis, error) {
	log := a.logger.WithField("symbol", symbol)
	log.Info("Starting analysis")

	technical, err := a.provider.FetchSnapshot(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch technical snapshot for %s: %w", symbol, err)
	}

	news, err := a.provider.FetchNews(ctx, symbol)
	if err != nil {
		log.WithError(err).Warn("News fetch failed, scoring without news")
		news = nil
	}

	fundamentals, err := a.provider.FetchFundamentals(ctx, symbol)
	if err != nil {
		log.WithError(err).Warn("Fundamentals fetch failed, scoring with neutral fundamentals")
		fundamentals = &contracts.FundamentalSnapshot{Symbol: symbol}
	}

	var sectorSummary *contracts.SectorSummary
	if len(a.cfg.Peers) > 0 {
		sectorSummary, err = a.comparator.Compare(ctx, fundamentals, a.cfg.Peers)
		if err != nil {
			log.WithError(err).Warn("Sector comparison failed, rating without sector context")
			sectorSummary = nil
		}
	}

	technicalScore := a.techScorer.Score(technical)
	newsScore := a.newsScorer.Score(news)
	fundamentalScore := a.fundScorer.Score(fundamentals)
	scores := a.cfg.Weights.Combine(technicalScore, newsScore, fundamentalScore)

	recommendation := a.engine.Generate(technical, scores.OverallScore, sectorSummary)

	log.WithFields(map[string]interface{}{
		"overall_score": scores.OverallScore,
		"rating":        string(recommendation.Rating),
	}).Info("Analysis completed")

	return &contracts.Analysis{
		Symbol:         symbol,
		AnalyzedAt:     a.nowFn(),
		Scores:         scores,
		Recommendation: *recommendation,
		Technical:      technical,
		Fundamentals:   fundamentals,
		News:           news,
		SectorSummary:  sectorSummary,
	}, nil
}

// AnalyzeBatch analyzes each symbol in order. A failed symbol is
// logged and skipped; the rest of the batch still completes.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, symbols []string) []*contracts.Analysis {
	results := make([]*contracts.Analysis, 0, len(symbols))

	for _, symbol := range symbols {
		if ctx.Err() != nil {
			a.logger.Warn("Batch analysis canceled")
			break
		}

		result, err := a.Analyze(ctx, symbol)
		if err != nil {
			a.logger.WithFields(map[string]interface{}{
				"symbol": symbol,
				"error":  err.Error(),
			}).Error("Symbol analysis failed, skipping")
			continue
		}
		results = append(results, result)
	}

	a.logger.WithFields(map[string]interface{}{
		"requested": len(symbols),
		"completed": len(results),
	}).Info("Batch analysis finished")

	return results
}
