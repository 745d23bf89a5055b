package commands

import (
	"fmt"

	"github.com/equitylens/backend/internal/external/yahoo"
	"github.com/equitylens/backend/internal/strategyconfig"
	"github.com/equitylens/backend/pkg/config"
	"github.com/equitylens/backend/pkg/httputil"
	"github.com/equitylens/backend/pkg/logger"
	"github.com/equitylens/backend/pkg/redis"
)

// appDeps bundles the shared wiring every command starts from.
type appDeps struct {
	cfg      *config.Config
	log      *logger.Logger
	strategy *strategyconfig.Config
	provider *yahoo.Client
	cache    *redis.Client
}

// buildDeps loads configuration and wires the market data provider.
func buildDeps() (*appDeps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	log := logger.New(cfg)

	strategy, err := strategyconfig.LoadOrDefault(strategyFile)
	if err != nil {
		return nil, fmt.Errorf("load strategy: %w", err)
	}

	cacheClient, err := redis.New(cfg)
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, continuing without cache")
		cacheClient = redis.Disabled()
	}

	httpClient := httputil.New(log).
		WithRateLimit(cfg.Yahoo.RateLimit, cfg.Yahoo.RateBurst)

	provider := yahoo.NewClient(httpClient, redis.NewCache(cacheClient, "equitylens"), cfg.Yahoo, log)

	return &appDeps{
		cfg:      cfg,
		log:      log,
		strategy: strategy,
		provider: provider,
		cache:    cacheClient,
	}, nil
}

// close releases shared resources.
func (d *appDeps) close() {
	if d.cache != nil {
		_ = d.cache.Close()
	}
}
