// Package backtest replays the analysis pipeline over historical bars
// and simulates the resulting trades.
package backtest

import (
	"context"
	"fmt"
	"math"

	"github.com/equitylens/backend/internal/contracts"
	"github.com/equitylens/backend/internal/indicators"
	"github.com/equitylens/backend/internal/recommend"
	"github.com/equitylens/backend/internal/scoring"
	"github.com/equitylens/backend/internal/strategyconfig"
	"github.com/equitylens/backend/pkg/logger"
)

const (
	contextBars = 30 // indicator warmup window per step
	holdingBars = 5  // forward bars a trade may run
)

// Outcome classifies how a simulated trade exited.
type Outcome string

const (
	OutcomeTarget Outcome = "Target"
	OutcomeStop   Outcome = "Stop Loss"
	OutcomeHold   Outcome = "Hold"
)

// Trade is one simulated round trip.
type Trade struct {
	Entry   float64 `json:"entry"`
	Target  float64 `json:"target"`
	Stop    float64 `json:"stop"`
	Exit    float64 `json:"exit"`
	PnL     float64 `json:"pnl"`
	Outcome Outcome `json:"outcome"`
}

// Result summarizes a backtest run.
type Result struct {
	Symbol      string    `json:"symbol"`
	Trades      []Trade   `json:"trades"`
	Wins        int       `json:"wins"`
	Losses      int       `json:"losses"`
	AvgGain     float64   `json:"avg_gain"`
	AvgLoss     float64   `json:"avg_loss"`
	NetPnL      float64   `json:"net_pnl"`
	EquityCurve []float64 `json:"equity_curve"`
}

// Engine walks a rolling window over historical bars, analyzes each
// window, and simulates buy-side recommendations against the bars
// that follow. News is skipped and fundamentals are fixed to neutral
// mid-range values, so only the technical picture varies across
// steps.
type Engine struct {
	provider   contracts.BarProvider
	techScorer *scoring.TechnicalScorer
	newsScorer *scoring.NewsScorer
	fundScorer *scoring.FundamentalScorer
	engine     *recommend.Engine
	cfg        *strategyconfig.Config
	logger     *logger.Logger
}

// NewEngine creates a backtest engine.
func NewEngine(provider contracts.BarProvider, cfg *strategyconfig.Config, log *logger.Logger) *Engine {
	rec := recommend.NewEngine(log).
		WithMinRiskReward(cfg.MinRiskReward).
		WithThresholds(cfg.Thresholds.StrongBuy, cfg.Thresholds.Buy, cfg.Thresholds.Avoid)

	return &Engine{
		provider:   provider,
		techScorer: scoring.NewTechnicalScorer(log),
		newsScorer: scoring.NewNewsScorer(log),
		fundScorer: scoring.NewFundamentalScorer(log),
		engine:     rec,
		cfg:        cfg,
		logger:     log,
	}
}

// backtestFundamentals stand in for real filings during a replay.
func backtestFundamentals(symbol string) *contracts.FundamentalSnapshot {
	return &contracts.FundamentalSnapshot{
		Symbol:               symbol,
		PERatio:              contracts.Float64Ptr(20),
		DebtToEquity:         contracts.Float64Ptr(0.5),
		ROE:                  contracts.Float64Ptr(0.18),
		InstitutionalHolding: contracts.Float64Ptr(0.6),
	}
}

// Run fetches lookbackDays of history and replays the strategy over
// it.
func (e *Engine) Run(ctx context.Context, symbol string, lookbackDays int) (*Result, error) {
	bars, err := e.provider.FetchBars(ctx, symbol, lookbackDays)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch history for %s: %w", symbol, err)
	}
	return e.RunOnBars(ctx, symbol, bars)
}

// RunOnBars replays the strategy over an already-fetched bar series.
func (e *Engine) RunOnBars(ctx context.Context, symbol string, bars []contracts.Bar) (*Result, error) {
	if len(bars) <= contextBars+holdingBars {
		return nil, fmt.Errorf("need more than %d bars to backtest, got %d",
			contextBars+holdingBars, len(bars))
	}

	result := &Result{Symbol: symbol}

	for i := contextBars; i < len(bars)-holdingBars; i++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		window := bars[i-contextBars : i+1]
		future := bars[i+1 : i+1+holdingBars]

		snapshot, err := indicators.BuildSnapshot(symbol, window)
		if err != nil {
			e.logger.WithFields(map[string]interface{}{
				"symbol": symbol,
				"step":   i,
				"error":  err.Error(),
			}).Warn("Skipping step, snapshot failed")
			continue
		}

		technicalScore := e.techScorer.Score(snapshot)
		newsScore := e.newsScorer.Score(nil)
		fundamentalScore := e.fundScorer.Score(backtestFundamentals(symbol))
		scores := e.cfg.Weights.Combine(technicalScore, newsScore, fundamentalScore)

		reco := e.engine.Generate(snapshot, scores.OverallScore, nil)
		if reco.Rating != contracts.RatingStrongBuy && reco.Rating != contracts.RatingBuy {
			continue
		}

		result.Trades = append(result.Trades, simulateTrade(reco, future))
	}

	summarize(result)

	e.logger.WithFields(map[string]interface{}{
		"symbol":  symbol,
		"trades":  len(result.Trades),
		"wins":    result.Wins,
		"losses":  result.Losses,
		"net_pnl": result.NetPnL,
	}).Info("Backtest completed")

	return result, nil
}

// simulateTrade walks the forward bars in order. The stop is checked
// before the target on each bar; a trade still open after the holding
// window exits at the last close.
func simulateTrade(reco *contracts.TradeRecommendation, future []contracts.Bar) Trade {
	entry := reco.EntryPrice
	target := reco.TargetPrice
	stop := reco.StopLoss

	outcome := OutcomeHold
	for _, bar := range future {
		if bar.Low <= stop {
			outcome = OutcomeStop
			break
		}
		if bar.High >= target {
			outcome = OutcomeTarget
			break
		}
	}

	var pnl float64
	switch outcome {
	case OutcomeTarget:
		pnl = target - entry
	case OutcomeStop:
		pnl = stop - entry
	default:
		pnl = future[len(future)-1].Close - entry
	}

	return Trade{
		Entry:   entry,
		Target:  target,
		Stop:    stop,
		Exit:    entry + pnl,
		PnL:     pnl,
		Outcome: outcome,
	}
}

func summarize(result *Result) {
	var gains, losses []float64
	cumulative := 0.0

	for _, trade := range result.Trades {
		cumulative += trade.PnL
		result.EquityCurve = append(result.EquityCurve, round2(cumulative))
		result.NetPnL += trade.PnL

		switch trade.Outcome {
		case OutcomeTarget:
			result.Wins++
		case OutcomeStop:
			result.Losses++
		}
		if trade.PnL > 0 {
			gains = append(gains, trade.PnL)
		} else if trade.PnL < 0 {
			losses = append(losses, trade.PnL)
		}
	}

	result.NetPnL = round2(result.NetPnL)
	result.AvgGain = round2(mean(gains))
	result.AvgLoss = round2(mean(losses))
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
