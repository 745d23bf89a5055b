// Package commands implements the EquityLens CLI.
package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	strategyFile string
	verbose      bool
)

// rootCmd represents the base command when called without any
// subcommands.
var rootCmd = &cobra.Command{
	Use:   "equitylens",
	Short: "EquityLens - stock scoring and trade recommendation engine",
	Long: `EquityLens scores stocks on technicals, news sentiment and
fundamentals, compares them against sector peers, and turns the
combined score into a trade recommendation with entry, target and
stop levels.

Usage:
  go run ./cmd/equitylens [command]

Examples:
  go run ./cmd/equitylens analyze TATAPOWER.NS
  go run ./cmd/equitylens backtest TATAPOWER.NS --days 120
  go run ./cmd/equitylens api
  go run ./cmd/equitylens schedule`,
}

// Execute runs the root command. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&strategyFile, "strategy", "", "strategy YAML file (default: built-in strategy)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
