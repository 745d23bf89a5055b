// Package store persists daily price bars in PostgreSQL so repeated
// backtests do not refetch the same history.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/equitylens/backend/internal/contracts"
	"github.com/equitylens/backend/pkg/database"
	"github.com/equitylens/backend/pkg/logger"
)

// BarStore reads and writes daily bars.
type BarStore struct {
	db     *database.DB
	logger *logger.Logger
}

var _ contracts.BarStore = (*BarStore)(nil)

// NewBarStore creates a bar store on an existing pool.
func NewBarStore(db *database.DB, log *logger.Logger) *BarStore {
	return &BarStore{
		db:     db,
		logger: log,
	}
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS daily_bars (
    symbol     TEXT             NOT NULL,
    trade_date DATE             NOT NULL,
    open       DOUBLE PRECISION NOT NULL,
    high       DOUBLE PRECISION NOT NULL,
    low        DOUBLE PRECISION NOT NULL,
    close      DOUBLE PRECISION NOT NULL,
    volume     DOUBLE PRECISION NOT NULL,
    PRIMARY KEY (symbol, trade_date)
);
CREATE INDEX IF NOT EXISTS idx_daily_bars_date ON daily_bars (trade_date);
`

// InitSchema creates the bars table if it does not exist.
func (s *BarStore) InitSchema(ctx context.Context) error {
	if _, err := s.db.Pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to init schema: %w", err)
	}
	return nil
}

const upsertBarSQL = `
INSERT INTO daily_bars (symbol, trade_date, open, high, low, close, volume)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (symbol, trade_date) DO UPDATE SET
    open = EXCLUDED.open,
    high = EXCLUDED.high,
    low = EXCLUDED.low,
    close = EXCLUDED.close,
    volume = EXCLUDED.volume
`

// SaveBars upserts a batch of bars for one symbol.
func (s *BarStore) SaveBars(ctx context.Context, symbol string, bars []contracts.Bar) error {
	if len(bars) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, bar := range bars {
		batch.Queue(upsertBarSQL,
			symbol, bar.Date, bar.Open, bar.High, bar.Low, bar.Close, bar.Volume)
	}

	results := s.db.Pool.SendBatch(ctx, batch)
	defer results.Close()

	for range bars {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to save bars for %s: %w", symbol, err)
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"bars":   len(bars),
	}).Debug("Saved bars")

	return nil
}

const selectBarsSQL = `
SELECT trade_date, open, high, low, close, volume
FROM daily_bars
WHERE symbol = $1 AND trade_date >= $2 AND trade_date <= $3
ORDER BY trade_date ASC
`

// GetBars returns the stored bars for a symbol between from and to
// inclusive, oldest first.
func (s *BarStore) GetBars(ctx context.Context, symbol string, from, to time.Time) ([]contracts.Bar, error) {
	rows, err := s.db.Pool.Query(ctx, selectBarsSQL, symbol, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query bars for %s: %w", symbol, err)
	}
	defer rows.Close()

	var bars []contracts.Bar
	for rows.Next() {
		var bar contracts.Bar
		if err := rows.Scan(&bar.Date, &bar.Open, &bar.High, &bar.Low, &bar.Close, &bar.Volume); err != nil {
			return nil, fmt.Errorf("failed to scan bar: %w", err)
		}
		bars = append(bars, bar)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read bars for %s: %w", symbol, err)
	}

	return bars, nil
}
