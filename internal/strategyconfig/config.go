// Package strategyconfig holds the tunable analysis strategy
// parameters loaded from YAML.
package strategyconfig

import (
	"fmt"

	"github.com/equitylens/backend/internal/contracts"
	"github.com/equitylens/backend/internal/scoring"
)

// Config is the full analysis strategy configuration.
type Config struct {
	Weights       scoring.Weights   `yaml:"weights" json:"weights"`
	Thresholds    Thresholds        `yaml:"thresholds" json:"thresholds"`
	MinRiskReward float64           `yaml:"min_risk_reward" json:"min_risk_reward"`
	Peers         contracts.PeerSet `yaml:"peers" json:"peers"`
}

// Thresholds are the overall-score cutoffs for each rating tier.
type Thresholds struct {
	StrongBuy float64 `yaml:"strong_buy" json:"strong_buy"`
	Buy       float64 `yaml:"buy" json:"buy"`
	Avoid     float64 `yaml:"avoid" json:"avoid"`
}

// DefaultConfig returns the built-in strategy used when no YAML file
// is supplied.
func DefaultConfig() *Config {
	return &Config{
		Weights: scoring.DefaultWeights(),
		Thresholds: Thresholds{
			StrongBuy: 0.8,
			Buy:       0.6,
			Avoid:     0.3,
		},
		MinRiskReward: 1.5,
		Peers: contracts.PeerSet{
			"NTPC.NS":       "NTPC",
			"TATAPOWER.NS":  "Tata Power",
			"TORNTPOWER.NS": "Torrent Power",
			"ADANIGREEN.NS": "Adani Green Energy",
			"NHPC.NS":       "NHPC",
			"POWERGRID.NS":  "Power Grid Corporation",
		},
	}
}

// Validate rejects configurations that would produce nonsense
// ratings.
func Validate(cfg *Config) error {
	if !cfg.Weights.Valid() {
		return fmt.Errorf("score weights must sum to 1.0, got %.4f",
			cfg.Weights.Technical+cfg.Weights.News+cfg.Weights.Fundamental)
	}
	if cfg.Thresholds.StrongBuy <= cfg.Thresholds.Buy {
		return fmt.Errorf("strong_buy threshold (%.2f) must exceed buy threshold (%.2f)",
			cfg.Thresholds.StrongBuy, cfg.Thresholds.Buy)
	}
	if cfg.Thresholds.Buy <= cfg.Thresholds.Avoid {
		return fmt.Errorf("buy threshold (%.2f) must exceed avoid threshold (%.2f)",
			cfg.Thresholds.Buy, cfg.Thresholds.Avoid)
	}
	if cfg.MinRiskReward <= 0 {
		return fmt.Errorf("min_risk_reward must be positive, got %.2f", cfg.MinRiskReward)
	}
	return nil
}
