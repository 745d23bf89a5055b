package jobs

import (
	"context"
	"fmt"

	"github.com/equitylens/backend/internal/contracts"
	"github.com/equitylens/backend/pkg/config"
	"github.com/equitylens/backend/pkg/logger"
)

// barCollectionDays is how far back the nightly collection reaches;
// overlap with stored history is harmless because saves upsert.
const barCollectionDays = 30

// BarCollectionJob fetches recent daily bars for the watchlist and
// persists them for later backtests.
type BarCollectionJob struct {
	provider contracts.BarProvider
	store    contracts.BarStore
	config   *config.Config
	logger   *logger.Logger
}

// NewBarCollectionJob creates the bar collection job.
func NewBarCollectionJob(provider contracts.BarProvider, store contracts.BarStore, cfg *config.Config, log *logger.Logger) *BarCollectionJob {
	return &BarCollectionJob{
		provider: provider,
		store:    store,
		config:   cfg,
		logger:   log,
	}
}

// Name returns the job name.
func (j *BarCollectionJob) Name() string {
	return "bar_collection"
}

// Schedule runs nightly after the session close.
func (j *BarCollectionJob) Schedule() string {
	return "0 0 18 * * 1-5"
}

// Run collects bars per symbol, skipping symbols that fail and
// reporting an error only when every symbol failed.
func (j *BarCollectionJob) Run(ctx context.Context) error {
	if len(j.config.Watchlist) == 0 {
		j.logger.Warn("Watchlist is empty, nothing to collect")
		return nil
	}

	saved := 0
	for _, symbol := range j.config.Watchlist {
		bars, err := j.provider.FetchBars(ctx, symbol, barCollectionDays)
		if err != nil {
			j.logger.WithFields(map[string]interface{}{
				"symbol": symbol,
				"error":  err.Error(),
			}).Warn("Bar fetch failed, skipping")
			continue
		}

		if err := j.store.SaveBars(ctx, symbol, bars); err != nil {
			j.logger.WithFields(map[string]interface{}{
				"symbol": symbol,
				"error":  err.Error(),
			}).Warn("Bar save failed, skipping")
			continue
		}
		saved++
	}

	if saved == 0 {
		return fmt.Errorf("no watchlist symbol could be collected")
	}

	j.logger.WithFields(map[string]interface{}{
		"symbols": saved,
		"total":   len(j.config.Watchlist),
	}).Info("Bar collection completed")

	return nil
}
