package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/equitylens/backend/internal/analysis"
	"github.com/equitylens/backend/internal/report"
)

// analyzeCmd runs the full pipeline for one or more symbols.
var analyzeCmd = &cobra.Command{
	Use:   "analyze SYMBOL [SYMBOL...]",
	Short: "Analyze one or more symbols and write JSON reports",
	Long: `Runs the full analysis pipeline for each symbol: technical,
news and fundamental scoring, sector comparison, and a trade
recommendation. Writes one JSON report per symbol under the output
directory.

Example:
  go run ./cmd/equitylens analyze TATAPOWER.NS
  go run ./cmd/equitylens analyze TATAPOWER.NS NTPC.NS --strategy strategy.yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	deps, err := buildDeps()
	if err != nil {
		return err
	}
	defer deps.close()

	symbols := make([]string, 0, len(args))
	for _, arg := range args {
		symbols = append(symbols, strings.ToUpper(strings.TrimSpace(arg)))
	}

	analyzer := analysis.NewAnalyzer(deps.provider, deps.strategy, deps.log)
	writer := report.NewJSONWriter(deps.cfg.OutputDir, deps.log)

	results := analyzer.AnalyzeBatch(cmd.Context(), symbols)
	if len(results) == 0 {
		return fmt.Errorf("no symbol could be analyzed")
	}

	for _, result := range results {
		path, err := writer.Write(result)
		if err != nil {
			return fmt.Errorf("write report for %s: %w", result.Symbol, err)
		}

		rec := result.Recommendation
		fmt.Printf("\n%s\n", result.Symbol)
		fmt.Printf("  Rating:      %s\n", rec.Rating)
		fmt.Printf("  Score:       %.2f (T %.2f / N %.2f / F %.2f)\n",
			result.Scores.OverallScore,
			result.Scores.TechnicalScore,
			result.Scores.NewsScore,
			result.Scores.FundamentalScore)
		fmt.Printf("  Entry:       %.2f\n", rec.EntryPrice)
		fmt.Printf("  Target:      %.2f\n", rec.TargetPrice)
		fmt.Printf("  Stop Loss:   %.2f\n", rec.StopLoss)
		fmt.Printf("  Risk/Reward: %.2f\n", rec.RiskRewardRatio)
		fmt.Printf("  Reason:      %s\n", rec.Reason)
		fmt.Printf("  Report:      %s\n", path)
	}

	if len(results) < len(symbols) {
		fmt.Printf("\n%d of %d symbols failed, see logs\n", len(symbols)-len(results), len(symbols))
	}

	return nil
}
