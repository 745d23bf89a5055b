package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equitylens/backend/internal/contracts"
	"github.com/equitylens/backend/pkg/logger"
)

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	w := NewJSONWriter(dir, logger.Nop()).
		WithClock(func() time.Time { return now })

	analysis := &contracts.Analysis{
		Symbol:     "TEST.NS",
		AnalyzedAt: now,
		Scores: contracts.ScoreBundle{
			TechnicalScore:   0.8,
			NewsScore:        0.6,
			FundamentalScore: 0.7,
			OverallScore:     0.72,
		},
		Recommendation: contracts.TradeRecommendation{
			EntryPrice:      100,
			TargetPrice:     110,
			StopLoss:        95,
			RiskRewardRatio: 2.0,
			Rating:          contracts.RatingBuy,
			Reason:          "Buy recommendation (0.72) because: Stock is in an uptrend",
		},
	}

	path, err := w.Write(analysis)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "20250602", "TEST.NS_analysis_20250602.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded contracts.Analysis
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "TEST.NS", decoded.Symbol)
	assert.Equal(t, contracts.RatingBuy, decoded.Recommendation.Rating)
	assert.InDelta(t, 0.72, decoded.Scores.OverallScore, 1e-9)
}

func TestWrite_BadDirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "occupied")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	// baseDir points at a regular file; MkdirAll must fail
	w := NewJSONWriter(file, logger.Nop())
	_, err := w.Write(&contracts.Analysis{Symbol: "TEST.NS"})
	require.Error(t, err)
}
