package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/equitylens/backend/internal/store"
	"github.com/equitylens/backend/pkg/database"
)

// collectCmd fetches daily bars and persists them.
var collectCmd = &cobra.Command{
	Use:   "collect [SYMBOL...]",
	Short: "Fetch daily bars and store them in PostgreSQL",
	Long: `Fetches recent daily bars for the given symbols (or the
configured watchlist when none are given) and upserts them into the
bar store. Requires DATABASE_URL.

Example:
  go run ./cmd/equitylens collect TATAPOWER.NS NTPC.NS
  go run ./cmd/equitylens collect --days 365`,
	RunE: runCollect,
}

var collectDays int

func init() {
	rootCmd.AddCommand(collectCmd)

	collectCmd.Flags().IntVar(&collectDays, "days", 120, "history window in days")
}

func runCollect(cmd *cobra.Command, args []string) error {
	deps, err := buildDeps()
	if err != nil {
		return err
	}
	defer deps.close()

	symbols := args
	if len(symbols) == 0 {
		symbols = deps.cfg.Watchlist
	}
	if len(symbols) == 0 {
		return fmt.Errorf("no symbols given and WATCHLIST is empty")
	}

	db, err := database.New(deps.cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	barStore := store.NewBarStore(db, deps.log)
	if err := barStore.InitSchema(cmd.Context()); err != nil {
		return err
	}

	saved := 0
	for _, raw := range symbols {
		symbol := strings.ToUpper(strings.TrimSpace(raw))

		bars, err := deps.provider.FetchBars(cmd.Context(), symbol, collectDays)
		if err != nil {
			deps.log.WithFields(map[string]interface{}{
				"symbol": symbol,
				"error":  err.Error(),
			}).Error("Bar fetch failed, skipping")
			continue
		}

		if err := barStore.SaveBars(cmd.Context(), symbol, bars); err != nil {
			deps.log.WithFields(map[string]interface{}{
				"symbol": symbol,
				"error":  err.Error(),
			}).Error("Bar save failed, skipping")
			continue
		}

		fmt.Printf("  %s: %d bars saved\n", symbol, len(bars))
		saved++
	}

	if saved == 0 {
		return fmt.Errorf("no symbol could be collected")
	}

	fmt.Printf("\nCollected %d of %d symbols\n", saved, len(symbols))
	return nil
}
