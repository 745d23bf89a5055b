// Package jobs holds the concrete scheduled jobs.
package jobs

import (
	"context"
	"fmt"

	"github.com/equitylens/backend/internal/analysis"
	"github.com/equitylens/backend/internal/contracts"
	"github.com/equitylens/backend/pkg/config"
	"github.com/equitylens/backend/pkg/logger"
)

// WatchlistAnalysisJob analyzes every watchlist symbol and writes a
// report per completed analysis.
type WatchlistAnalysisJob struct {
	analyzer *analysis.Analyzer
	writer   contracts.ReportWriter
	config   *config.Config
	logger   *logger.Logger
}

// NewWatchlistAnalysisJob creates the watchlist job.
func NewWatchlistAnalysisJob(analyzer *analysis.Analyzer, writer contracts.ReportWriter, cfg *config.Config, log *logger.Logger) *WatchlistAnalysisJob {
	return &WatchlistAnalysisJob{
		analyzer: analyzer,
		writer:   writer,
		config:   cfg,
		logger:   log,
	}
}

// Name returns the job name.
func (j *WatchlistAnalysisJob) Name() string {
	return "watchlist_analysis"
}

// Schedule returns the configured cron expression.
func (j *WatchlistAnalysisJob) Schedule() string {
	return j.config.ScheduleSpec
}

// Run analyzes the watchlist. A report write failure fails the job so
// the scheduler retries it; analysis failures inside the batch are
// already isolated per symbol.
func (j *WatchlistAnalysisJob) Run(ctx context.Context) error {
	if len(j.config.Watchlist) == 0 {
		j.logger.Warn("Watchlist is empty, nothing to analyze")
		return nil
	}

	results := j.analyzer.AnalyzeBatch(ctx, j.config.Watchlist)
	if len(results) == 0 {
		return fmt.Errorf("no watchlist symbol could be analyzed")
	}

	for _, result := range results {
		path, err := j.writer.Write(result)
		if err != nil {
			return fmt.Errorf("write report for %s: %w", result.Symbol, err)
		}
		j.logger.WithFields(map[string]interface{}{
			"symbol": result.Symbol,
			"rating": string(result.Recommendation.Rating),
			"path":   path,
		}).Info("Watchlist report written")
	}

	return nil
}
