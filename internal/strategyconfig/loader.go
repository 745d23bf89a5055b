package strategyconfig

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/equitylens/backend/internal/scoring"
)

// Load reads a strategy YAML file. Unknown fields fail immediately so
// a typoed threshold never silently falls back to a default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read strategy file: %w", err)
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse strategy file: %w", err)
	}

	applyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid strategy config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults fills sections the file left out entirely. A peer
// list in the file replaces the default one rather than merging.
func applyDefaults(cfg *Config) {
	def := DefaultConfig()
	if cfg.Weights == (scoring.Weights{}) {
		cfg.Weights = def.Weights
	}
	if cfg.Thresholds == (Thresholds{}) {
		cfg.Thresholds = def.Thresholds
	}
	if cfg.MinRiskReward == 0 {
		cfg.MinRiskReward = def.MinRiskReward
	}
	if len(cfg.Peers) == 0 {
		cfg.Peers = def.Peers
	}
}

// LoadOrDefault loads from path when given, otherwise returns the
// built-in defaults.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	return Load(path)
}
