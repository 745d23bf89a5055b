package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/equitylens/backend/internal/backtest"
)

// backtestCmd replays the strategy over historical bars.
var backtestCmd = &cobra.Command{
	Use:   "backtest SYMBOL",
	Short: "Replay the strategy over historical bars",
	Long: `Walks a rolling window over the symbol's price history,
analyzes each window, and simulates every buy-side recommendation
against the bars that follow.

Example:
  go run ./cmd/equitylens backtest TATAPOWER.NS
  go run ./cmd/equitylens backtest TATAPOWER.NS --days 250`,
	Args: cobra.ExactArgs(1),
	RunE: runBacktestCmd,
}

var backtestDays int

func init() {
	rootCmd.AddCommand(backtestCmd)

	backtestCmd.Flags().IntVar(&backtestDays, "days", 120, "lookback window in days")
}

func runBacktestCmd(cmd *cobra.Command, args []string) error {
	deps, err := buildDeps()
	if err != nil {
		return err
	}
	defer deps.close()

	symbol := strings.ToUpper(strings.TrimSpace(args[0]))

	engine := backtest.NewEngine(deps.provider, deps.strategy, deps.log)
	result, err := engine.Run(cmd.Context(), symbol, backtestDays)
	if err != nil {
		return fmt.Errorf("backtest %s: %w", symbol, err)
	}

	fmt.Printf("\nBacktest: %s over %d days\n", symbol, backtestDays)
	if len(result.Trades) == 0 {
		fmt.Println("  No trades simulated.")
		return nil
	}

	fmt.Printf("  Trades:   %d\n", len(result.Trades))
	fmt.Printf("  Wins:     %d\n", result.Wins)
	fmt.Printf("  Losses:   %d\n", result.Losses)
	fmt.Printf("  Avg Gain: %.2f\n", result.AvgGain)
	fmt.Printf("  Avg Loss: %.2f\n", result.AvgLoss)
	fmt.Printf("  Net PnL:  %.2f\n", result.NetPnL)

	fmt.Println("\n  Equity curve:")
	for i, v := range result.EquityCurve {
		fmt.Printf("    trade %2d: %8.2f (%s)\n", i+1, v, result.Trades[i].Outcome)
	}

	return nil
}
