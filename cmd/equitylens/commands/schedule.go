package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/equitylens/backend/internal/analysis"
	"github.com/equitylens/backend/internal/report"
	"github.com/equitylens/backend/internal/scheduler"
	"github.com/equitylens/backend/internal/scheduler/jobs"
	"github.com/equitylens/backend/internal/store"
	"github.com/equitylens/backend/pkg/database"
)

// scheduleCmd runs the recurring job daemon.
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run scheduled analysis and collection jobs",
	Long: `Runs the job scheduler in the foreground.

Jobs:
  watchlist_analysis - analyze the configured watchlist and write reports
  bar_collection     - persist daily bars (only when DATABASE_URL is set)

Example:
  go run ./cmd/equitylens schedule`,
	RunE: runSchedule,
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, args []string) error {
	deps, err := buildDeps()
	if err != nil {
		return err
	}
	defer deps.close()

	analyzer := analysis.NewAnalyzer(deps.provider, deps.strategy, deps.log)
	writer := report.NewJSONWriter(deps.cfg.OutputDir, deps.log)

	sched := scheduler.New(deps.log)

	if err := sched.AddJob(jobs.NewWatchlistAnalysisJob(analyzer, writer, deps.cfg, deps.log)); err != nil {
		return fmt.Errorf("add watchlist job: %w", err)
	}

	if deps.cfg.Database.URL != "" {
		db, err := database.New(deps.cfg)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close()

		barStore := store.NewBarStore(db, deps.log)
		if err := barStore.InitSchema(cmd.Context()); err != nil {
			return err
		}

		if err := sched.AddJob(jobs.NewBarCollectionJob(deps.provider, barStore, deps.cfg, deps.log)); err != nil {
			return fmt.Errorf("add bar collection job: %w", err)
		}
	} else {
		deps.log.Warn("DATABASE_URL not set, bar collection job disabled")
	}

	sched.Start()
	fmt.Println("Scheduler started. Press Ctrl+C to stop.")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	deps.log.Info("Stopping scheduler")
	sched.Stop()

	return nil
}
