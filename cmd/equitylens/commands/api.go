package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/equitylens/backend/internal/analysis"
	"github.com/equitylens/backend/internal/api"
	"github.com/equitylens/backend/internal/api/handlers"
	"github.com/equitylens/backend/internal/backtest"
)

// apiCmd starts the REST API server.
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the REST API server",
	Long: `Starts the HTTP API server.

Endpoints:
  GET  /health                  - Health check
  GET  /api/analysis/{symbol}   - Analyze one symbol
  POST /api/analysis            - Analyze a batch of symbols
  GET  /api/backtest/{symbol}   - Backtest one symbol

Example:
  go run ./cmd/equitylens api
  go run ./cmd/equitylens api --port 8090`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (default: PORT env)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	deps, err := buildDeps()
	if err != nil {
		return err
	}
	defer deps.close()

	if apiPort != "" {
		deps.cfg.Port = apiPort
	}

	analyzer := analysis.NewAnalyzer(deps.provider, deps.strategy, deps.log)
	backtester := backtest.NewEngine(deps.provider, deps.strategy, deps.log)

	handler := handlers.NewAnalysisHandler(analyzer, backtester, deps.log)
	router := api.NewRouter(handler, deps.log)
	server := api.New(deps.cfg, deps.log, router)

	// Shut down cleanly on SIGINT/SIGTERM
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		deps.log.WithField("signal", sig.String()).Info("Shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}
